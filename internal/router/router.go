// Package router sets up all HTTP routes for the API.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Shimizu-Technology/pdfhustle-api/internal/handlers"
	"github.com/Shimizu-Technology/pdfhustle-api/internal/middleware"
)

// Options carries what the routes need besides the handlers.
type Options struct {
	Credentials    middleware.Credentials
	RateLimiter    *middleware.RateLimiter
	JWTSecret      string
	AllowedOrigins []string
}

// Setup creates and configures the Gin router with all routes.
func Setup(h *handlers.Handler, opts Options) *gin.Engine {
	r := gin.Default()
	if len(opts.AllowedOrigins) > 0 {
		r.Use(middleware.CORS(opts.AllowedOrigins))
	}

	// --- Public Routes (no auth required) ---
	r.GET("/api/v1/health", h.HealthCheck)
	r.POST("/api/v1/keys", h.CreateAPIKey)

	r.GET("/api/docs", h.ServeSwaggerUI)
	r.GET("/api/docs/openapi.yaml", h.ServeOpenAPISpec)

	// --- Protected Routes (API key OR JWT) ---
	protected := r.Group("/api/v1")
	protected.Use(middleware.DualAuth(opts.Credentials, opts.JWTSecret))
	if opts.RateLimiter != nil {
		protected.Use(opts.RateLimiter.RateLimit())
	}
	{
		protected.POST("/convert/pdf-to-excel", h.ConvertPDFToExcel)

		protected.GET("/conversions", h.ListConversions)
		protected.GET("/conversions/:id", h.GetConversion)
		protected.GET("/usage", h.GetUsage)

		protected.GET("/keys", h.ListAPIKeys)
		protected.DELETE("/keys/:id", h.RevokeAPIKey)
	}

	return r
}
