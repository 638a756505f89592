package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/roboreach/site-api/internal/models"
)

// AdminRepository handles persistence for administrators. The API surface
// only ever reads admin rows; creation happens through the seed script.
type AdminRepository struct {
	db *sqlx.DB
}

// NewAdminRepository creates a new repository instance.
func NewAdminRepository(db *sqlx.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// FindByEmail returns an admin by email.
func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	const query = `SELECT id, email, password_hash, full_name, is_active, created_at, updated_at FROM admins WHERE LOWER(email) = LOWER($1)`
	var admin models.Admin
	if err := r.db.GetContext(ctx, &admin, query, email); err != nil {
		return nil, err
	}
	return &admin, nil
}

// FindByID returns an admin by id.
func (r *AdminRepository) FindByID(ctx context.Context, id string) (*models.Admin, error) {
	const query = `SELECT id, email, password_hash, full_name, is_active, created_at, updated_at FROM admins WHERE id = $1`
	var admin models.Admin
	if err := r.db.GetContext(ctx, &admin, query, id); err != nil {
		return nil, err
	}
	return &admin, nil
}
