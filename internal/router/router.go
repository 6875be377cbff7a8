// Package router sets up all HTTP routes for the API.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Shimizu-Technology/pdf-text-service/internal/handlers"
	"github.com/Shimizu-Technology/pdf-text-service/internal/middleware"
)

// Setup creates and configures the Gin router with all routes.
func Setup(h *handlers.Handler, auth *middleware.Authenticator, rateLimiter *middleware.RateLimiter, allowedOrigins []string) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.CORS(allowedOrigins))

	// Uploads are held in memory by the handler; keep multipart parsing
	// from spilling a second copy to disk below that size.
	r.MaxMultipartMemory = h.MaxUploadBytes

	// --- Public Routes (no auth required) ---
	r.GET("/", h.Root)
	r.GET("/health", h.HealthCheck)
	r.GET("/api/v1/health", h.HealthCheck)

	// The editor frontend posts here directly.
	r.POST("/extract-pdf", h.ExtractPDF)

	// API Documentation
	r.GET("/api/docs", h.ServeSwaggerUI)
	r.GET("/api/docs/openapi.yaml", h.ServeOpenAPISpec)

	// --- Protected Routes (API key OR JWT, when configured) ---
	protected := r.Group("/api/v1/pdf")
	protected.Use(auth.Authenticate())
	protected.Use(rateLimiter.RateLimit())
	{
		protected.POST("/extract", h.ExtractPDF)

		// History only exists when a database is configured
		if h.DB != nil {
			protected.GET("/extractions", h.ListPDFExtractions)
			protected.GET("/extractions/:id", h.GetPDFExtraction)
			protected.DELETE("/extractions/:id", h.DeletePDFExtraction)
		}
	}

	return r
}
