// Package middleware provides HTTP middleware for the API.
//
// Go Pattern: Middleware in Gin is a gin.HandlerFunc that calls c.Next() to
// continue the chain, or c.Abort() to stop processing.
package middleware

import (
	"context"
	"crypto/sha256"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Shimizu-Technology/pdfhustle-api/internal/models"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	apiKeyContextKey contextKey = "api_key"
	userContextKey   contextKey = "user"
)

// Credentials is what authentication needs from storage.
// *database.DB satisfies it; tests pass an in-memory fake.
type Credentials interface {
	GetAPIKeyByHash(ctx context.Context, hash string) (*models.APIKey, error)
	UpdateAPIKeyLastUsed(ctx context.Context, id string) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// DualAuth returns middleware that accepts EITHER an X-API-Key header OR an
// Authorization: Bearer <jwt> header. Integrations use API keys; the web
// dashboard uses tokens issued by the sign-in service.
func DualAuth(creds Credentials, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Try API key first
		if rawKey := c.GetHeader("X-API-Key"); rawKey != "" {
			apiKey, err := creds.GetAPIKeyByHash(c.Request.Context(), HashAPIKey(rawKey))
			if err == nil {
				c.Set(string(apiKeyContextKey), apiKey)
				touchAPIKey(creds, apiKey.ID)
				c.Next()
				return
			}
		}

		// Then a JWT token
		if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
			claims, err := ParseJWT(strings.TrimPrefix(authHeader, "Bearer "), jwtSecret)
			if err == nil {
				user, err := creds.GetUserByID(c.Request.Context(), claims.UserID)
				if err == nil {
					c.Set(string(userContextKey), user)
					c.Next()
					return
				}
			}
		}

		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "unauthorized",
			Message: "Provide a valid X-API-Key header or Authorization: Bearer <token>",
			Code:    http.StatusUnauthorized,
		})
		c.Abort()
	}
}

// touchAPIKey bumps last_used_at in the background. It must not use the
// request context, which is cancelled as soon as the response is written.
func touchAPIKey(creds Credentials, id string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := creds.UpdateAPIKeyLastUsed(ctx, id); err != nil {
			log.Warn().Err(err).Str("api_key_id", id).Msg("⚠️  Failed to update API key last_used_at")
		}
	}()
}

// GetAPIKey retrieves the authenticated API key from the request context.
func GetAPIKey(c *gin.Context) *models.APIKey {
	val, exists := c.Get(string(apiKeyContextKey))
	if !exists {
		return nil
	}
	// Go Pattern: The comma-ok type assertion won't panic on a wrong type.
	key, ok := val.(*models.APIKey)
	if !ok {
		return nil
	}
	return key
}

// GetUser retrieves the authenticated user from the request context.
func GetUser(c *gin.Context) *models.User {
	val, exists := c.Get(string(userContextKey))
	if !exists {
		return nil
	}
	user, ok := val.(*models.User)
	if !ok {
		return nil
	}
	return user
}

// Caller describes whoever passed DualAuth: the history owner and the plan
// that decides their quota. ok is false outside an authenticated route.
func Caller(c *gin.Context) (owner models.Owner, plan models.Plan, ok bool) {
	if user := GetUser(c); user != nil {
		return models.Owner{UserID: user.ID}, planOrFree(user.Plan), true
	}
	if key := GetAPIKey(c); key != nil {
		return models.Owner{APIKeyID: key.ID}, planOrFree(key.Plan), true
	}
	return models.Owner{}, "", false
}

func planOrFree(p models.Plan) models.Plan {
	if p == "" {
		return models.PlanFree
	}
	return p
}

// HashAPIKey creates a SHA-256 hash of an API key.
// We store hashes, not raw keys.
func HashAPIKey(key string) string {
	hash := sha256.Sum256([]byte(key))
	return fmt.Sprintf("%x", hash)
}
