package routes

import (
	"github.com/akhilyln/pulses-trader/controllers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires all application routes.
func RegisterRoutes(r *gin.Engine, catalog *controllers.CatalogController, admin *controllers.AdminController, rates *controllers.RateController) {
	api := r.Group("/api")
	{
		api.GET("/products", catalog.GetProducts)

		rateRoutes := api.Group("/rates")
		{
			rateRoutes.POST("/update", rates.UpdateRate)
			rateRoutes.GET("/history", catalog.GetRateHistory)
		}

		adminRoutes := api.Group("/admin")
		{
			adminRoutes.POST("/login", admin.Login)
			adminRoutes.POST("/update", admin.BulkUpdate)
			adminRoutes.GET("/grid", admin.GetGrid)
			adminRoutes.POST("/grid", admin.SaveGrid)
			adminRoutes.POST("/import", admin.ImportRateSheet)
			adminRoutes.GET("/export", admin.ExportRateSheet)
		}
	}
}
