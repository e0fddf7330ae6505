package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/akhilyln/pulses-trader/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminController handles the password-gated editing surface: bulk catalog
// saves, the grid round trip, session login and rate-sheet import/export.
type AdminController struct {
	service   CatalogAPI
	cache     *CacheManager
	gate      credentialGate
	validator *RequestValidator
	timeout   time.Duration
}

func NewAdminController(service CatalogAPI, cache *CacheManager, cfg AuthConfig, validator *RequestValidator) *AdminController {
	return &AdminController{
		service:   service,
		cache:     cache,
		gate:      credentialGate{cfg: cfg},
		validator: validator,
		timeout:   DefaultContextTimeout,
	}
}

// Login exchanges the shared secret for an expiring session token --> POST /api/admin/login
func (ac *AdminController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	if req.Password != ac.gate.cfg.AdminPassword {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	token, expiresAt, err := auth.IssueSessionToken(ac.gate.cfg.JWTSecret, ac.gate.cfg.SessionTTL)
	if err != nil {
		zap.L().Error("Failed to issue session token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"expiresAt": expiresAt.UTC().Format(time.RFC3339),
	})
}

// BulkUpdate replaces the whole catalog --> POST /api/admin/update
func (ac *AdminController) BulkUpdate(c *gin.Context) {
	var req BulkUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	if !ac.gate.authorize(c, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), ac.timeout)
	defer cancel()

	if err := ac.service.ReplaceCatalog(ctx, req.Products); err != nil {
		// Detail is echoed deliberately: this surface is admin-only and the
		// underlying store error is what makes a failed save debuggable.
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update products", "details": err.Error()})
		return
	}

	if err := ac.cache.Invalidate(ctx); err != nil {
		zap.L().Warn("Failed to invalidate cache after bulk update", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetGrid returns the catalog flattened into editable rows --> GET /api/admin/grid
func (ac *AdminController) GetGrid(c *gin.Context) {
	if !ac.gate.authorizeHeader(c) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), ac.timeout)
	defer cancel()

	rows, err := ac.service.GridRows(ctx)
	if err != nil {
		zap.L().Error("Failed to build grid rows", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load grid"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rows": rows})
}

// SaveGrid regroups edited rows and replaces the catalog --> POST /api/admin/grid
func (ac *AdminController) SaveGrid(c *gin.Context) {
	var req GridSaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	if !ac.gate.authorize(c, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), ac.timeout)
	defer cancel()

	if err := ac.service.SaveGridRows(ctx, req.Rows); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update products", "details": err.Error()})
		return
	}

	if err := ac.cache.Invalidate(ctx); err != nil {
		zap.L().Warn("Failed to invalidate cache after grid save", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ImportRateSheet merges a CSV rate sheet into the catalog --> POST /api/admin/import
func (ac *AdminController) ImportRateSheet(c *gin.Context) {
	if !ac.gate.authorize(c, c.PostForm("password")) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if !ac.validator.IsValidCSVFile(file) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file type. Only CSV files are allowed"})
		return
	}
	if err := ac.validator.ValidateFileSize(file); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fileHandle, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open file"})
		return
	}
	defer fileHandle.Close()

	ctx, cancel := context.WithTimeout(c.Request.Context(), ac.timeout)
	defer cancel()

	result, err := ac.service.ImportRateSheet(ctx, fileHandle)
	if err != nil {
		zap.L().Error("Rate sheet import failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if result.BrandsCreated > 0 {
		if err := ac.cache.Invalidate(ctx); err != nil {
			zap.L().Warn("Failed to invalidate cache after import", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, result)
}

// ExportRateSheet streams the catalog as CSV or XLSX --> GET /api/admin/export
func (ac *AdminController) ExportRateSheet(c *gin.Context) {
	if !ac.gate.authorizeHeader(c) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), ac.timeout)
	defer cancel()

	if c.DefaultQuery("format", "csv") == "xlsx" {
		f, err := ac.service.ExportXLSX(ctx)
		if err != nil {
			zap.L().Error("XLSX export failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export rates"})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="pulses_rates.xlsx"`)
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := f.Write(c.Writer); err != nil {
			zap.L().Error("Failed to stream XLSX", zap.Error(err))
		}
		return
	}

	c.Header("Content-Disposition", `attachment; filename="pulses_rates.csv"`)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	if err := ac.service.WriteCSV(ctx, c.Writer); err != nil {
		zap.L().Error("CSV export failed", zap.Error(err))
	}
}
