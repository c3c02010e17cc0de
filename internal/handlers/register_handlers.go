package handlers

import (
	"net/http"

	"github.com/enpointe-io/bank_backend/cmd/docs"
	portssvc "github.com/enpointe-io/bank_backend/internal/core/ports/services"
	"github.com/enpointe-io/bank_backend/internal/middleware"
	"github.com/enpointe-io/bank_backend/pkg/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service facades.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Server is running"})
	})

	api := r.Group("/api")

	// Public credential routes
	registerAuthRoutes(api, cfg, services.User)

	// Authenticated routes
	authed := api.Group("", middleware.AuthMiddleware(cfg.JWTSecret))
	registerAccountRoutes(authed, services.Account)
	registerTransactionRoutes(authed, services.Ledger)

	setupSwaggerRoutes(r, cfg)
}

// setupSwaggerRoutes configures the swagger documentation routes.
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
