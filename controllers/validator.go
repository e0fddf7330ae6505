package controllers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/akhilyln/pulses-trader/models"

	"github.com/go-playground/validator/v10"
)

// Validation constants
const (
	MaxUploadSize   = 5 * 1024 * 1024 // 5MB; rate sheets are small
	MaxHistoryLimit = 100
)

var allowedCSVExtensions = map[string]bool{
	".csv": true,
	".txt": true,
}

// BulkUpdateRequest is the body of the bulk catalog save.
type BulkUpdateRequest struct {
	Password string           `json:"password"`
	Products []models.Product `json:"products" validate:"required"`
}

// GridSaveRequest is the body of the admin grid save.
type GridSaveRequest struct {
	Password string           `json:"password"`
	Rows     []models.GridRow `json:"rows" validate:"required"`
}

// RateUpdateRequest is the body of the single-rate update.
type RateUpdateRequest struct {
	Password string  `json:"password"`
	BrandID  string  `json:"brandId" validate:"required"`
	NewPrice float64 `json:"newPrice"`
}

// LoginRequest is the body of the admin login.
type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

// RequestValidator handles all input validation
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{
		validate: validator.New(),
	}
}

// ValidateStruct runs the tag-based validation rules on a request body.
func (rv *RequestValidator) ValidateStruct(v interface{}) error {
	if err := rv.validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("invalid field %q", strings.ToLower(verrs[0].Field()))
		}
		return err
	}
	return nil
}

// IsValidCSVFile checks the uploaded file's extension.
func (rv *RequestValidator) IsValidCSVFile(file *multipart.FileHeader) bool {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	return allowedCSVExtensions[ext]
}

// ValidateFileSize rejects uploads over the limit.
func (rv *RequestValidator) ValidateFileSize(file *multipart.FileHeader) error {
	if file.Size > MaxUploadSize {
		return fmt.Errorf("file too large. Maximum size is %dMB", MaxUploadSize/(1024*1024))
	}
	return nil
}
