// users.go reads dashboard accounts. Accounts are created by the
// sign-up flow, which lives outside this service.
package database

import (
	"context"

	"github.com/Shimizu-Technology/pdfhustle-api/internal/models"
)

// GetUserByID retrieves a user by ID.
func (db *DB) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := db.GetContext(ctx, &u,
		`SELECT id, email, name, plan, created_at FROM users WHERE id = $1`, id)
	if err != nil {
		return nil, notFound(err, "user")
	}
	return &u, nil
}
