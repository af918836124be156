// apikeys.go handles API key management endpoints.
package handlers

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Shimizu-Technology/pdfhustle-api/internal/database"
	"github.com/Shimizu-Technology/pdfhustle-api/internal/middleware"
	"github.com/Shimizu-Technology/pdfhustle-api/internal/models"
)

// apiKeyPrefix marks keys issued by this service.
const apiKeyPrefix = "pdh_"

// CreateAPIKey generates a new API key.
// POST /api/v1/keys
//
// Requires the X-Admin-Key header when ADMIN_API_KEY is configured (always
// in release mode). In development without an admin key the endpoint is
// open for bootstrapping, but only issues free keys.
//
// Request body:
//
//	{"name": "Invoices bot", "rate_limit": 200, "plan": "pro"}
//
// The response includes the raw key. It is only shown once.
func (h *Handler) CreateAPIKey(c *gin.Context) {
	if h.AdminAPIKey != "" && !h.requireAdmin(c) {
		return
	}

	var req models.CreateAPIKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid_request", "name is required; plan must be 'free' or 'pro'")
		return
	}

	rawKey, err := generateAPIKey()
	if err != nil {
		log.Error().Err(err).Msg("❌ Failed to generate API key")
		errorJSON(c, http.StatusInternalServerError, "generation_error", "Failed to generate API key")
		return
	}

	rateLimit := req.RateLimit
	if rateLimit <= 0 {
		rateLimit = h.DefaultRateLimit
	}
	plan := req.Plan
	if plan == "" {
		plan = models.PlanFree
	}
	if h.AdminAPIKey == "" && plan != models.PlanFree {
		log.Warn().Str("requested_plan", string(plan)).Msg("⚠️  No ADMIN_API_KEY configured, issuing a free key instead")
		plan = models.PlanFree
	}

	// Store the HASH, never the raw key
	key := &models.APIKey{
		KeyHash:   middleware.HashAPIKey(rawKey),
		KeyPrefix: rawKey[:8] + "...",
		Name:      req.Name,
		Active:    true,
		RateLimit: rateLimit,
		Plan:      plan,
	}

	if err := h.DB.CreateAPIKey(c.Request.Context(), key); err != nil {
		log.Error().Err(err).Msg("❌ Failed to create API key")
		errorJSON(c, http.StatusInternalServerError, "database_error", "Failed to create API key")
		return
	}

	log.Info().Str("api_key_id", key.ID).Str("plan", string(key.Plan)).Msg("🔑 API key created")
	c.JSON(http.StatusCreated, models.CreateAPIKeyResponse{
		APIKey: *key,
		RawKey: rawKey,
	})
}

// ListAPIKeys returns all API keys (without the raw key values).
// GET /api/v1/keys, admin only.
func (h *Handler) ListAPIKeys(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	keys, err := h.DB.ListAPIKeys(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("❌ Failed to list API keys")
		errorJSON(c, http.StatusInternalServerError, "database_error", "Failed to list API keys")
		return
	}

	if keys == nil {
		keys = []models.APIKey{}
	}
	c.JSON(http.StatusOK, keys)
}

// RevokeAPIKey deactivates an API key.
// DELETE /api/v1/keys/:id, admin only.
func (h *Handler) RevokeAPIKey(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	id := c.Param("id")

	if err := h.DB.RevokeAPIKey(c.Request.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			errorJSON(c, http.StatusNotFound, "not_found", "API key not found")
			return
		}
		log.Error().Err(err).Str("api_key_id", id).Msg("❌ Failed to revoke API key")
		errorJSON(c, http.StatusInternalServerError, "database_error", "Failed to revoke API key")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "API key revoked"})
}

// requireAdmin checks the X-Admin-Key header against ADMIN_API_KEY and
// writes the error response when it does not match. Without a configured
// admin key nobody is an admin.
func (h *Handler) requireAdmin(c *gin.Context) bool {
	providedKey := c.GetHeader("X-Admin-Key")
	if providedKey == "" {
		errorJSON(c, http.StatusUnauthorized, "unauthorized", "X-Admin-Key header is required to manage API keys")
		return false
	}
	if h.AdminAPIKey == "" || subtle.ConstantTimeCompare([]byte(providedKey), []byte(h.AdminAPIKey)) != 1 {
		errorJSON(c, http.StatusForbidden, "forbidden", "Invalid admin key")
		return false
	}
	return true
}

// generateAPIKey creates a cryptographically secure random API key:
// "pdh_" + 32 hex characters.
func generateAPIKey() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return apiKeyPrefix + hex.EncodeToString(b), nil
}
