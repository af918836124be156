// conversions.go stores the history of PDF → Excel conversions.
package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Shimizu-Technology/pdfhustle-api/internal/models"
)

const conversionColumns = `id, type, original_name, file_size, page_count, table_count,
	status, error_message, api_key_id, user_id, created_at`

// CreateConversion inserts a conversion record and fills in ID and CreatedAt.
func (db *DB) CreateConversion(ctx context.Context, c *models.Conversion) error {
	if c.Type == "" {
		c.Type = models.ConversionTypePDFToExcel
	}
	query := `
		INSERT INTO conversions (type, original_name, file_size, page_count, table_count, status, error_message, api_key_id, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`

	return db.QueryRowContext(ctx, query,
		c.Type, c.OriginalName, c.FileSize, c.PageCount, c.TableCount,
		c.Status, c.ErrorMessage, c.APIKeyID, c.UserID,
	).Scan(&c.ID, &c.CreatedAt)
}

// GetConversion returns one conversion, visible only to its owner.
func (db *DB) GetConversion(ctx context.Context, id string, owner models.Owner) (*models.Conversion, error) {
	where, args := conversionFilter(owner, "")
	args = append(args, id)
	query := fmt.Sprintf(`SELECT %s FROM conversions %s AND id = $%d`, conversionColumns, where, len(args))

	var c models.Conversion
	if err := db.GetContext(ctx, &c, query, args...); err != nil {
		return nil, notFound(err, "conversion")
	}
	return &c, nil
}

// ListConversions returns a page of the owner's conversions, newest first,
// plus the total number of matching rows.
func (db *DB) ListConversions(ctx context.Context, owner models.Owner, params models.ConversionListParams) ([]models.Conversion, int, error) {
	params.Normalize()
	where, args := conversionFilter(owner, params.Status)

	var total int
	if err := db.GetContext(ctx, &total, "SELECT COUNT(*) FROM conversions "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count query failed: %w", err)
	}

	offset := (params.Page - 1) * params.PerPage
	query := fmt.Sprintf(
		"SELECT %s FROM conversions %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		conversionColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, params.PerPage, offset)

	conversions := []models.Conversion{}
	if err := db.SelectContext(ctx, &conversions, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list query failed: %w", err)
	}
	return conversions, total, nil
}

// CountCompletedSince counts the owner's successful conversions at or after since.
func (db *DB) CountCompletedSince(ctx context.Context, owner models.Owner, since time.Time) (int, error) {
	where, args := conversionFilter(owner, models.StatusCompleted)
	args = append(args, since)
	query := fmt.Sprintf("SELECT COUNT(*) FROM conversions %s AND created_at >= $%d", where, len(args))

	var n int
	if err := db.GetContext(ctx, &n, query, args...); err != nil {
		return 0, fmt.Errorf("usage count failed: %w", err)
	}
	return n, nil
}

// conversionFilter builds the WHERE clause scoping rows to one owner.
// The owner condition is always present, so callers may append "AND ...".
func conversionFilter(owner models.Owner, status models.ConversionStatus) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if owner.UserID != "" {
		args = append(args, owner.UserID)
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", len(args)))
	} else {
		args = append(args, owner.APIKeyID)
		conditions = append(conditions, fmt.Sprintf("api_key_id = $%d", len(args)))
	}

	if status != "" {
		args = append(args, status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}
