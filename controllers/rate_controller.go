package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/akhilyln/pulses-trader/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateController handles single-rate updates.
type RateController struct {
	service   CatalogAPI
	cache     *CacheManager
	gate      credentialGate
	validator *RequestValidator
	timeout   time.Duration
}

func NewRateController(service CatalogAPI, cache *CacheManager, cfg AuthConfig, validator *RequestValidator) *RateController {
	return &RateController{
		service:   service,
		cache:     cache,
		gate:      credentialGate{cfg: cfg},
		validator: validator,
		timeout:   DefaultContextTimeout,
	}
}

// UpdateRate updates one brand's quoted price --> POST /api/rates/update
func (rc *RateController) UpdateRate(c *gin.Context) {
	var req RateUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	if !rc.gate.authorize(c, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := rc.validator.ValidateStruct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), rc.timeout)
	defer cancel()

	brand, err := rc.service.UpdateRate(ctx, req.BrandID, req.NewPrice)
	if err != nil {
		if errors.Is(err, services.ErrBrandNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Brand not found"})
			return
		}
		zap.L().Error("Failed to update rate", zap.Error(err), zap.String("brand_id", req.BrandID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update rate"})
		return
	}

	if err := rc.cache.Invalidate(ctx); err != nil {
		zap.L().Warn("Failed to invalidate cache after rate update", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "brand": brand})
}
