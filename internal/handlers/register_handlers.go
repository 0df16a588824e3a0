package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/quipuerp/accounting/cmd/docs"
	portssvc "github.com/quipuerp/accounting/internal/core/ports/services"
	"github.com/quipuerp/accounting/internal/middleware"
	"github.com/quipuerp/accounting/internal/platform/config"
	"github.com/quipuerp/accounting/internal/utils/periods"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service container.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	registerPeriodValidator()

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, services)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to the entity
// route registrations. Every accounting route requires the tenant headers.
func setupAPIV1Routes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	v1 := r.Group("/api/v1", middleware.TenantContextMiddleware())

	registerAccountRoutes(v1, services.Account)
	registerEntryRoutes(v1, services.Entry, services.Posting)
	registerLedgerRoutes(v1, services.Ledger)

	// Book exports are heavier than the rest of the API, cap them per IP.
	rate, _ := limiter.NewRateFromFormatted("10-M")
	exportLimiter := limiter.New(memory.NewStore(), rate)
	export := v1.Group("", middleware.RateLimit(exportLimiter))
	registerExportRoutes(export, services.Export)
}

// registerPeriodValidator teaches the binding engine the "period" tag so
// query params like ?period=2025-02 are validated before reaching services.
func registerPeriodValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("period", func(fl validator.FieldLevel) bool {
			_, _, err := periods.MonthBounds(fl.Field().String(), time.UTC)
			return err == nil
		})
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
