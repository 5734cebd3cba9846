// Package router assembles the HTTP API from services and handlers.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "github.com/vignesh678/stock-glass-visualizer/internal/docs" // Import swagger docs
	"github.com/vignesh678/stock-glass-visualizer/internal/handlers"
	"github.com/vignesh678/stock-glass-visualizer/internal/middleware"
	"github.com/vignesh678/stock-glass-visualizer/internal/services"
	"github.com/vignesh678/stock-glass-visualizer/internal/validator"
)

// Options carries the dependencies of the API.
type Options struct {
	DB *gorm.DB
	// EmailPublisher receives notify requests. Nil disables publishing.
	EmailPublisher services.EmailPublisher
}

// New builds the gin engine with every route mounted under /api.
func New(opts Options) *gin.Engine {
	validator.Register()

	userService := services.NewUserService(opts.DB)
	portfolioService := services.NewPortfolioService(opts.DB)
	notificationService := services.NewNotificationService(opts.EmailPublisher)
	auditService := services.NewAuditService(opts.DB)

	authHandler := handlers.NewAuthHandler(userService)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService, auditService)
	notifyHandler := handlers.NewNotifyHandler(notificationService, auditService)
	stockHandler := handlers.NewStockHandler()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public routes
	api.POST("/signup", authHandler.Signup)
	api.POST("/signin", authHandler.Signin)
	api.GET("/stocks", stockHandler.ListStocks)
	api.GET("/stocks/:id", stockHandler.GetStock)

	// Protected routes
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/user", authHandler.GetUser)

	portfolio := protected.Group("/portfolio")
	portfolio.GET("", portfolioHandler.ListLots)
	portfolio.POST("", portfolioHandler.AddLot)
	portfolio.GET("/summary", portfolioHandler.Summary)
	portfolio.GET("/activity", portfolioHandler.Activity)
	portfolio.PUT("/:id", portfolioHandler.UpdateLot)
	portfolio.DELETE("/:id", portfolioHandler.RemoveLot)

	protected.POST("/notify/email", notifyHandler.SendEmail)

	return router
}
