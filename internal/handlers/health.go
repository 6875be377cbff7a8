// Package handlers contains HTTP handler functions for the API.
//
// Go Pattern: Handlers in Gin receive a *gin.Context which provides:
// - Request data (params, query, body, headers)
// - Response methods (JSON, String, Status)
// - Middleware data (c.Get/c.Set)
//
// We group related handlers into a struct (Handler) that holds shared dependencies.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Shimizu-Technology/pdf-text-service/internal/database"
	"github.com/Shimizu-Technology/pdf-text-service/internal/models"
	pdfservice "github.com/Shimizu-Technology/pdf-text-service/internal/services/pdf"
)

// Handler holds shared dependencies for all HTTP handlers.
// Go Pattern: Dependency injection via struct fields. Instead of global
// variables or service locators, we pass dependencies explicitly.
type Handler struct {
	Extractor      *pdfservice.Extractor
	DB             *database.DB // nil when extraction history is disabled
	MaxUploadBytes int64
	Version        string
}

// NewHandler creates a new handler with all dependencies.
func NewHandler(extractor *pdfservice.Extractor, db *database.DB, maxUploadBytes int64, version string) *Handler {
	return &Handler{
		Extractor:      extractor,
		DB:             db,
		MaxUploadBytes: maxUploadBytes,
		Version:        version,
	}
}

// Root identifies the service.
// GET /
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, models.RootResponse{
		Message: "Document Processing Service",
		Status:  "running",
	})
}

// HealthCheck returns the API health status.
// GET /health and GET /api/v1/health
func (h *Handler) HealthCheck(c *gin.Context) {
	dbStatus := "disabled"
	if h.DB != nil {
		dbStatus = "healthy"
		if err := h.DB.HealthCheck(c.Request.Context()); err != nil {
			dbStatus = "unhealthy: " + err.Error()
		}
	}

	c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Version:   h.Version,
		Database:  dbStatus,
	})
}
