// Package handlers contains HTTP handler functions for the API.
//
// Go Pattern: Handlers in Gin receive a *gin.Context which provides:
// - Request data (params, query, body, headers)
// - Response methods (JSON, Data, Status)
// - Middleware data (c.Get/c.Set)
//
// We group related handlers into a struct (Handler) that holds shared dependencies.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shimizu-Technology/pdfhustle-api/internal/middleware"
	"github.com/Shimizu-Technology/pdfhustle-api/internal/models"
	"github.com/Shimizu-Technology/pdfhustle-api/internal/services/converter"
	"github.com/Shimizu-Technology/pdfhustle-api/internal/services/usage"
	"github.com/Shimizu-Technology/pdfhustle-api/internal/services/worker"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// Store is the persistence the handlers need. *database.DB implements it.
type Store interface {
	HealthCheck(ctx context.Context) error

	CreateAPIKey(ctx context.Context, key *models.APIKey) error
	ListAPIKeys(ctx context.Context) ([]models.APIKey, error)
	RevokeAPIKey(ctx context.Context, id string) error

	CreateConversion(ctx context.Context, c *models.Conversion) error
	GetConversion(ctx context.Context, id string, owner models.Owner) (*models.Conversion, error)
	ListConversions(ctx context.Context, owner models.Owner, params models.ConversionListParams) ([]models.Conversion, int, error)
}

// Handler holds shared dependencies for all HTTP handlers.
// Go Pattern: Dependency injection via struct fields. Tests build a Handler
// with in-memory fakes.
type Handler struct {
	DB        Store
	Pool      *worker.Pool
	Converter *converter.Converter
	Meter     *usage.Meter

	Owner            middleware.OwnerOverride
	AdminAPIKey      string
	DefaultRateLimit int
	MaxUploadBytes   int64
}

// HealthCheck returns the API health status.
// GET /api/v1/health
func (h *Handler) HealthCheck(c *gin.Context) {
	dbStatus := "healthy"
	if err := h.DB.HealthCheck(c.Request.Context()); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	c.JSON(http.StatusOK, models.HealthResponse{
		Status:   "ok",
		Version:  Version,
		Database: dbStatus,
		Workers:  h.Pool.WorkerCount(),
	})
}

// errorJSON writes the standard error body.
func errorJSON(c *gin.Context, status int, code, message string) {
	c.JSON(status, models.ErrorResponse{
		Error:   code,
		Message: message,
		Code:    status,
	})
}
