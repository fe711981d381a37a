// Package server assembles the gateway API: services, handlers and routes.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"eventplanner/internal/config"
	_ "eventplanner/internal/docs" // swagger docs
	"eventplanner/internal/gateway"
	"eventplanner/internal/handlers"
	"eventplanner/internal/middleware"
	"eventplanner/internal/services"
	"eventplanner/internal/validator"
)

// NewRouter builds the HTTP router over db.
func NewRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	validator.Register()

	// Services
	auditService := services.NewAuditService(db)
	userService := services.NewUserService(db, cfg)
	documentService := services.NewDocumentService(gateway.NewGormGateway(db), auditService)
	adminService := services.NewAdminService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	collectionHandler := handlers.NewCollectionHandler(documentService)
	adminHandler := handlers.NewAdminHandler(adminService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)

	collections := protected.Group("/collections")
	collections.POST("/:collection", collectionHandler.Create)
	collections.GET("/:collection", collectionHandler.List)
	collections.GET("/:collection/:id", collectionHandler.Get)
	collections.PATCH("/:collection/:id", collectionHandler.Update)
	collections.DELETE("/:collection/:id", collectionHandler.Delete)

	admin := protected.Group("/admin")
	admin.Use(middleware.AdminOnly())
	admin.GET("/stats", adminHandler.GetStats)
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/events", adminHandler.ListEvents)

	return router
}
