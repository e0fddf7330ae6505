package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CatalogController serves the public read side of the price board.
type CatalogController struct {
	service CatalogAPI
	cache   *CacheManager
	timeout time.Duration
}

func NewCatalogController(service CatalogAPI, cache *CacheManager) *CatalogController {
	return &CatalogController{
		service: service,
		cache:   cache,
		timeout: DefaultContextTimeout,
	}
}

// GetProducts returns the current catalog as a plain array --> GET /api/products
func (cc *CatalogController) GetProducts(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), cc.timeout)
	defer cancel()

	if products, ok := cc.cache.GetCatalog(ctx); ok {
		c.JSON(http.StatusOK, products)
		return
	}

	products, err := cc.service.Catalog(ctx)
	if err != nil {
		zap.L().Error("Failed to fetch products", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	cc.cache.SetCatalogAsync(products)
	c.JSON(http.StatusOK, products)
}

// GetRateHistory returns recent price history --> GET /api/rates/history
func (cc *CatalogController) GetRateHistory(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit < 1 || limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), cc.timeout)
	defer cancel()

	history, err := cc.service.RecentHistory(ctx, limit)
	if err != nil {
		zap.L().Error("Failed to fetch rate history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rate history"})
		return
	}

	c.JSON(http.StatusOK, history)
}
