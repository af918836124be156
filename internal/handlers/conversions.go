// conversions.go serves conversion history and the usage summary.
//
// GET /api/v1/conversions      paginated history, newest first
// GET /api/v1/conversions/:id  single record
// GET /api/v1/usage            today's quota
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Shimizu-Technology/pdfhustle-api/internal/database"
	"github.com/Shimizu-Technology/pdfhustle-api/internal/middleware"
	"github.com/Shimizu-Technology/pdfhustle-api/internal/models"
)

// ListConversions returns the caller's conversions.
// GET /api/v1/conversions?page=1&per_page=20&status=failed
func (h *Handler) ListConversions(c *gin.Context) {
	owner, _, ok := middleware.Caller(c)
	if !ok {
		errorJSON(c, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	var params models.ConversionListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid_request", "page and per_page must be integers")
		return
	}
	if params.Status != "" && params.Status != models.StatusCompleted && params.Status != models.StatusFailed {
		errorJSON(c, http.StatusBadRequest, "invalid_request", "status must be 'completed' or 'failed'")
		return
	}
	params.Normalize()

	conversions, total, err := h.DB.ListConversions(c.Request.Context(), owner, params)
	if err != nil {
		log.Error().Err(err).Str("subject", owner.Subject()).Msg("❌ Failed to list conversions")
		errorJSON(c, http.StatusInternalServerError, "database_error", "Failed to list conversions")
		return
	}
	if conversions == nil {
		conversions = []models.Conversion{}
	}

	// Integer ceiling division: (total + perPage - 1) / perPage
	totalPages := (total + params.PerPage - 1) / params.PerPage

	c.JSON(http.StatusOK, models.PaginatedResponse[models.Conversion]{
		Data:       conversions,
		Page:       params.Page,
		PerPage:    params.PerPage,
		TotalItems: total,
		TotalPages: totalPages,
	})
}

// GetConversion returns one of the caller's conversions.
// GET /api/v1/conversions/:id
func (h *Handler) GetConversion(c *gin.Context) {
	owner, _, ok := middleware.Caller(c)
	if !ok {
		errorJSON(c, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	conv, err := h.DB.GetConversion(c.Request.Context(), c.Param("id"), owner)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			errorJSON(c, http.StatusNotFound, "not_found", "Conversion not found")
			return
		}
		log.Error().Err(err).Str("id", c.Param("id")).Msg("❌ Failed to get conversion")
		errorJSON(c, http.StatusInternalServerError, "database_error", "Failed to get conversion")
		return
	}

	c.JSON(http.StatusOK, conv)
}

// GetUsage reports today's usage against the caller's plan.
// GET /api/v1/usage
func (h *Handler) GetUsage(c *gin.Context) {
	owner, plan, ok := middleware.Caller(c)
	if !ok {
		errorJSON(c, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}
	if h.Owner.Request(c) {
		plan = models.PlanPro
	}

	quota, err := h.Meter.Check(c.Request.Context(), owner, plan)
	if err != nil {
		log.Error().Err(err).Str("subject", owner.Subject()).Msg("❌ Usage check failed")
		errorJSON(c, http.StatusInternalServerError, "usage_error", "Failed to read usage")
		return
	}

	c.JSON(http.StatusOK, quota.Response())
}
