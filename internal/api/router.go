package api

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/truong-kyle/ht6/internal/api/handlers"
	"github.com/truong-kyle/ht6/internal/api/middleware"
	"github.com/truong-kyle/ht6/internal/config"
	"github.com/truong-kyle/ht6/internal/service"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, svc *service.CheckoutService, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(customRecovery(logger))
	router.Use(loggingMiddleware(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{cfg.Frontend.Origin},
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Content-Type", middleware.IdempotencyKeyHeader},
		ExposeHeaders: []string{"Content-Length"},
	}))
	router.Use(middleware.IdempotencyMiddleware(logger))

	// Root: friendly response so GET / returns 200 instead of 404
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "Checkout API",
			"endpoints": []string{
				"GET /health",
				"POST /create-checkout-session",
				"POST /create-payment-intent",
				"GET /session-status",
			},
		})
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	router.POST("/create-checkout-session", handlers.HandleCreateCheckoutSession(svc, logger))
	router.POST("/create-payment-intent", handlers.HandleCreatePaymentIntent(svc, logger))
	router.GET("/session-status", handlers.HandleSessionStatus(svc, logger))

	return router
}

// customRecovery is a custom recovery middleware that logs panics
func customRecovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal server error",
			"details": fmt.Sprintf("%v", recovered),
		})
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
