package models

// RateImportResult reports the outcome of a CSV rate-sheet import.
type RateImportResult struct {
	RowsParsed    int                      `json:"rows_parsed"`
	BrandsCreated int                      `json:"brands_created"`
	ErrorsCount   int                      `json:"errors_count"`
	Errors        []map[string]interface{} `json:"errors,omitempty"`
	Message       string                   `json:"message"`
}
