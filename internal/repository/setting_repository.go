package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/roboreach/site-api/internal/models"
)

// SettingRepository handles persistence for key/value site settings.
type SettingRepository struct {
	db *sqlx.DB
}

// NewSettingRepository creates a new repository instance.
func NewSettingRepository(db *sqlx.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// List returns all settings ordered by key.
func (r *SettingRepository) List(ctx context.Context) ([]models.Setting, error) {
	const query = `SELECT key, value, updated_at FROM settings ORDER BY key ASC`
	settings := make([]models.Setting, 0)
	if err := r.db.SelectContext(ctx, &settings, query); err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	return settings, nil
}

// Get returns a single setting by key.
func (r *SettingRepository) Get(ctx context.Context, key string) (*models.Setting, error) {
	const query = `SELECT key, value, updated_at FROM settings WHERE key = $1`
	var setting models.Setting
	if err := r.db.GetContext(ctx, &setting, query, key); err != nil {
		return nil, err
	}
	return &setting, nil
}

// Upsert writes a setting, replacing any existing value for the key.
func (r *SettingRepository) Upsert(ctx context.Context, key, value string) (*models.Setting, error) {
	setting := models.Setting{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	const query = `INSERT INTO settings (key, value, updated_at) VALUES (:key, :value, :updated_at)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, setting); err != nil {
		return nil, fmt.Errorf("upsert setting: %w", err)
	}
	return &setting, nil
}
