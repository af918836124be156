package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/Shimizu-Technology/pdfhustle-api/internal/models"
)

// OwnerOverride identifies the operator's personal API key, which skips
// the daily quota and rate limiting. Both fields empty disables it.
type OwnerOverride struct {
	KeyID     string
	KeyPrefix string
}

// Matches reports whether apiKey is the owner key, by ID or by prefix.
func (o OwnerOverride) Matches(apiKey *models.APIKey) bool {
	if apiKey == nil {
		return false
	}
	if o.KeyID != "" && apiKey.ID == o.KeyID {
		return true
	}
	return o.KeyPrefix != "" && apiKey.KeyPrefix == o.KeyPrefix
}

// Request reports whether the current request was made with the owner key.
func (o OwnerOverride) Request(c *gin.Context) bool {
	return o.Matches(GetAPIKey(c))
}
