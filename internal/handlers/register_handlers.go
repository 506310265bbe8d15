package handlers

import (
	"net/http"

	"github.com/SscSPs/purchase_settlement_app/cmd/docs"
	portssvc "github.com/SscSPs/purchase_settlement_app/internal/core/ports/services"
	"github.com/SscSPs/purchase_settlement_app/internal/middleware"
	"github.com/SscSPs/purchase_settlement_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	if cfg.MetricsEnabled {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))
	registerLiquidationRoutes(v1, services)

	setupSwaggerRoutes(r, cfg)
}

// registerLiquidationRoutes registers the liquidation and tax line routes on rg.
func registerLiquidationRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	lh := newLiquidationHandler(services.Liquidation)
	th := newLiquidationTaxHandler(services.LiquidationTax)

	liquidations := rg.Group("/companies/:companyID/liquidations")
	{
		liquidations.POST("", lh.createLiquidation)
		liquidations.GET("", lh.listLiquidations)
		liquidations.POST("/delete", lh.deleteLiquidations)
		liquidations.POST("/validate", lh.validateLiquidations)
		liquidations.POST("/post", lh.postLiquidations)
		liquidations.POST("/amounts", lh.getAmounts)
		liquidations.GET("/:liquidationID", lh.getLiquidation)
		liquidations.PUT("/:liquidationID", lh.updateLiquidation)
		liquidations.DELETE("/:liquidationID", lh.deleteLiquidation)

		taxes := liquidations.Group("/:liquidationID/taxes")
		taxes.POST("", th.addTaxLines)
		taxes.POST("/preview", th.previewTaxLine)
		taxes.PUT("/:taxLineID", th.updateTaxLine)
		taxes.DELETE("/:taxLineID", th.deleteTaxLine)
	}
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
