// Package models defines the data structures used throughout the application.
//
// Go Pattern: Models are plain structs with JSON tags for serialization.
// Go models are just data containers, no ORM magic. The database package
// handles persistence.
//
// JSON tags (e.g., `json:"id"`) control how struct fields are serialized
// to/from JSON. The `db` tags work with sqlx for database column mapping.
package models

import "time"

// ConversionStatus is the outcome of a conversion.
// Go Pattern: We use string constants instead of enums (Go doesn't have enums).
type ConversionStatus string

const (
	StatusCompleted ConversionStatus = "completed"
	StatusFailed    ConversionStatus = "failed"
)

// ConversionType names the tool that produced a conversion record.
const ConversionTypePDFToExcel = "pdf_to_excel"

// Plan is a user's subscription tier.
type Plan string

const (
	PlanFree Plan = "free"
	PlanPro  Plan = "pro"
)

// User is a dashboard account. Accounts are provisioned externally; this
// service only reads them to resolve the plan of a JWT subject.
type User struct {
	ID        string    `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Name      string    `json:"name" db:"name"`
	Plan      Plan      `json:"plan" db:"plan"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Conversion is one row of conversion history.
type Conversion struct {
	ID           string           `json:"id" db:"id"`
	Type         string           `json:"type" db:"type"`
	OriginalName string           `json:"original_name" db:"original_name"`
	FileSize     int64            `json:"file_size" db:"file_size"` // Bytes
	PageCount    int              `json:"page_count" db:"page_count"`
	TableCount   int              `json:"table_count" db:"table_count"`
	Status       ConversionStatus `json:"status" db:"status"`
	ErrorMessage string           `json:"error_message,omitempty" db:"error_message"` // omitempty = skip if empty
	APIKeyID     *string          `json:"api_key_id,omitempty" db:"api_key_id"`       // Pointer = nullable
	UserID       *string          `json:"user_id,omitempty" db:"user_id"`
	CreatedAt    time.Time        `json:"created_at" db:"created_at"`
}

// APIKey represents an API key for authentication.
// Note: We store the HASH of the key, never the raw key itself.
type APIKey struct {
	ID         string     `json:"id" db:"id"`
	KeyHash    string     `json:"-" db:"key_hash"`            // "-" means never serialize to JSON
	KeyPrefix  string     `json:"key_prefix" db:"key_prefix"` // First 8 chars for identification
	Name       string     `json:"name" db:"name"`
	Active     bool       `json:"active" db:"active"`
	RateLimit  int        `json:"rate_limit" db:"rate_limit"` // Requests per hour
	Plan       Plan       `json:"plan" db:"plan"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty" db:"last_used_at"`
}

// --- Request/Response DTOs (Data Transfer Objects) ---
// Go Pattern: Separate structs for API input/output vs database models.

// CreateAPIKeyRequest is the JSON body for POST /api/v1/keys.
type CreateAPIKeyRequest struct {
	Name      string `json:"name" binding:"required"`
	RateLimit int    `json:"rate_limit,omitempty"` // 0 = use default
	Plan      Plan   `json:"plan,omitempty" binding:"omitempty,oneof=free pro"`
}

// CreateAPIKeyResponse includes the raw key, shown only once at creation time.
type CreateAPIKeyResponse struct {
	APIKey
	RawKey string `json:"raw_key"`
}

// ConversionListParams holds query parameters for listing conversions.
type ConversionListParams struct {
	Page    int              `form:"page"`     // 1-indexed
	PerPage int              `form:"per_page"` // Items per page
	Status  ConversionStatus `form:"status"`   // Filter by status
}

// Normalize clamps paging values to sane bounds.
func (p *ConversionListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 || p.PerPage > 100 {
		p.PerPage = 20
	}
}

// Owner identifies whose history a query is about: an API key or a user.
// Exactly one field is set.
type Owner struct {
	APIKeyID string
	UserID   string
}

// Subject returns a stable identifier for quota bookkeeping.
func (o Owner) Subject() string {
	if o.UserID != "" {
		return "user:" + o.UserID
	}
	return "key:" + o.APIKeyID
}

// PaginatedResponse wraps a list response with pagination metadata.
// Go Pattern: Generics (added in Go 1.18) let us create type-safe containers.
type PaginatedResponse[T any] struct {
	Data       []T `json:"data"`
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// UsageResponse is returned by GET /api/v1/usage.
// Limit and Remaining are -1 for unlimited plans.
type UsageResponse struct {
	Plan       Plan `json:"plan"`
	UsedToday  int  `json:"used_today"`
	Limit      int  `json:"limit"`
	Remaining  int  `json:"remaining"`
	CanConvert bool `json:"can_convert"`
}

// ErrorResponse is a standard error format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Database string `json:"database"`
	Workers  int    `json:"workers"`
}
