package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/roboreach/site-api/internal/models"
)

// TemplateRepository handles persistence for proposal templates.
type TemplateRepository struct {
	db *sqlx.DB
}

// NewTemplateRepository creates a new repository instance.
func NewTemplateRepository(db *sqlx.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

const templateColumns = "id, name, filename, is_active, download_count, created_at"

// List returns templates newest first.
func (r *TemplateRepository) List(ctx context.Context) ([]models.ProposalTemplate, error) {
	query := fmt.Sprintf("SELECT %s FROM proposal_templates ORDER BY created_at DESC, id ASC", templateColumns)
	templates := make([]models.ProposalTemplate, 0)
	if err := r.db.SelectContext(ctx, &templates, query); err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return templates, nil
}

// FindByID returns a template by id.
func (r *TemplateRepository) FindByID(ctx context.Context, id string) (*models.ProposalTemplate, error) {
	query := fmt.Sprintf("SELECT %s FROM proposal_templates WHERE id = $1", templateColumns)
	var template models.ProposalTemplate
	if err := r.db.GetContext(ctx, &template, query, id); err != nil {
		return nil, err
	}
	return &template, nil
}

// FindActiveLatest returns the most recently created active template.
func (r *TemplateRepository) FindActiveLatest(ctx context.Context) (*models.ProposalTemplate, error) {
	query := fmt.Sprintf("SELECT %s FROM proposal_templates WHERE is_active = TRUE ORDER BY created_at DESC LIMIT 1", templateColumns)
	var template models.ProposalTemplate
	if err := r.db.GetContext(ctx, &template, query); err != nil {
		return nil, err
	}
	return &template, nil
}

// Create persists a new template row.
func (r *TemplateRepository) Create(ctx context.Context, template *models.ProposalTemplate) error {
	if template.ID == "" {
		template.ID = uuid.NewString()
	}
	if template.CreatedAt.IsZero() {
		template.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO proposal_templates (id, name, filename, is_active, download_count, created_at)
		VALUES (:id, :name, :filename, :is_active, :download_count, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, template); err != nil {
		return fmt.Errorf("create template: %w", err)
	}
	return nil
}

// Update persists name and active flag changes.
func (r *TemplateRepository) Update(ctx context.Context, template *models.ProposalTemplate) error {
	const query = `UPDATE proposal_templates SET name = :name, is_active = :is_active WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, template); err != nil {
		return fmt.Errorf("update template: %w", err)
	}
	return nil
}

// Delete removes a template record.
func (r *TemplateRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM proposal_templates WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	return nil
}

// IncrementDownloads bumps the download counter with a store-side atomic
// increment so concurrent downloads never lose updates.
func (r *TemplateRepository) IncrementDownloads(ctx context.Context, id string) error {
	const query = `UPDATE proposal_templates SET download_count = download_count + 1 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("increment template downloads: %w", err)
	}
	return nil
}
