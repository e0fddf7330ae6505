package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/akhilyln/pulses-trader/models"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// Rate sheets are the spreadsheet form of the board: one row per brand with
// the product names, brand name and price. Import merges rows into the
// existing catalog by product name, so a sheet row for an already-listed
// product adds a brand instead of duplicating the product.

var rateSheetHeader = []string{"Product (EN)", "Product (TE)", "Brand", "Price"}

// ImportRateSheet parses a CSV rate sheet and merges its rows into the
// catalog. Imported rows get generated IDs and are prepended to the
// flattened current catalog; the combined row set is then regrouped and
// saved, so an imported row whose product name already exists adds a brand
// to that product rather than duplicating it. Row-level problems are
// collected, not fatal.
func (s *CatalogService) ImportRateSheet(ctx context.Context, file io.Reader) (*models.RateImportResult, error) {
	r := csv.NewReader(file)
	headers, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("CSV must include a header row")
	}

	// Map header indexes for flexible column order.
	index := make(map[string]int)
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	nameCol, ok := index["product (en)"]
	if !ok {
		return nil, fmt.Errorf("CSV must include a 'Product (EN)' column")
	}
	teluguCol, hasTelugu := index["product (te)"]
	brandCol, hasBrand := index["brand"]
	priceCol, hasPrice := index["price"]

	result := &models.RateImportResult{}
	now := time.Now().UTC()
	var imported []models.GridRow

	rowNum := 2 // Start after header
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Errors = append(result.Errors, map[string]interface{}{"row": rowNum, "error": "Failed to parse CSV row"})
			rowNum++
			continue
		}

		name := strings.TrimSpace(cell(row, nameCol))
		if name == "" {
			result.Errors = append(result.Errors, map[string]interface{}{"row": rowNum, "error": "Product name is required"})
			rowNum++
			continue
		}

		brandName := "Default"
		if hasBrand {
			if v := strings.TrimSpace(cell(row, brandCol)); v != "" {
				brandName = v
			}
		}

		price := "0"
		if hasPrice {
			raw := strings.TrimSpace(cell(row, priceCol))
			if _, err := strconv.ParseFloat(raw, 64); err != nil {
				result.Errors = append(result.Errors, map[string]interface{}{"row": rowNum, "error": "Invalid price"})
				rowNum++
				continue
			}
			price = raw
		}

		teluguName := ""
		if hasTelugu {
			teluguName = strings.TrimSpace(cell(row, teluguCol))
		}

		imported = append(imported, models.GridRow{
			ProductID:         "p-" + uuid.NewString(),
			ProductName:       name,
			ProductTeluguName: teluguName,
			BrandID:           "b-" + uuid.NewString(),
			BrandName:         brandName,
			Price:             price,
			UpdatedAt:         now,
		})
		result.RowsParsed++
		rowNum++
	}

	result.ErrorsCount = len(result.Errors)
	if len(imported) == 0 {
		result.Message = "No rows imported"
		return result, nil
	}

	existing, err := s.GridRows(ctx)
	if err != nil {
		return nil, err
	}

	rows := append(imported, existing...)
	if err := s.SaveGridRows(ctx, rows); err != nil {
		return nil, err
	}

	result.BrandsCreated = len(imported)
	result.Message = fmt.Sprintf("Imported %d rows", len(imported))
	return result, nil
}

// WriteCSV writes the flattened catalog as a CSV rate sheet.
func (s *CatalogService) WriteCSV(ctx context.Context, w io.Writer) error {
	rows, err := s.GridRows(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(rateSheetHeader); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{row.ProductName, row.ProductTeluguName, row.BrandName, row.Price}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportXLSX builds an Excel workbook with one "Rates" sheet holding the
// flattened catalog.
func (s *CatalogService) ExportXLSX(ctx context.Context) (*excelize.File, error) {
	rows, err := s.GridRows(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const sheet = "Rates"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	for i, h := range rateSheetHeader {
		cellName, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cellName, h); err != nil {
			return nil, err
		}
	}

	for i, row := range rows {
		values := []interface{}{row.ProductName, row.ProductTeluguName, row.BrandName, row.Price}
		for j, v := range values {
			cellName, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cellName, v); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
