package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/roboreach/site-api/internal/models"
)

// ProposalRepository handles persistence for proposal submissions.
type ProposalRepository struct {
	db *sqlx.DB
}

// NewProposalRepository creates a new repository instance.
func NewProposalRepository(db *sqlx.DB) *ProposalRepository {
	return &ProposalRepository{db: db}
}

const proposalColumns = "id, title, description, university, contact_email, status, review_notes, reviewed_by, reviewed_at, created_at"

// List returns submissions newest first, optionally narrowed by status.
func (r *ProposalRepository) List(ctx context.Context, filter models.ProposalFilter) ([]models.ProposalSubmission, error) {
	query := fmt.Sprintf("SELECT %s FROM proposal_submissions", proposalColumns)
	var args []interface{}
	if filter.Status != "" {
		query += " WHERE status = $1"
		args = append(args, filter.Status)
	}
	query += " ORDER BY created_at DESC, id ASC"

	proposals := make([]models.ProposalSubmission, 0)
	if err := r.db.SelectContext(ctx, &proposals, query, args...); err != nil {
		return nil, fmt.Errorf("list proposals: %w", err)
	}
	return proposals, nil
}

// FindByID returns a submission by id.
func (r *ProposalRepository) FindByID(ctx context.Context, id string) (*models.ProposalSubmission, error) {
	query := fmt.Sprintf("SELECT %s FROM proposal_submissions WHERE id = $1", proposalColumns)
	var proposal models.ProposalSubmission
	if err := r.db.GetContext(ctx, &proposal, query, id); err != nil {
		return nil, err
	}
	return &proposal, nil
}

// Create persists a new submission.
func (r *ProposalRepository) Create(ctx context.Context, proposal *models.ProposalSubmission) error {
	if proposal.ID == "" {
		proposal.ID = uuid.NewString()
	}
	if proposal.CreatedAt.IsZero() {
		proposal.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO proposal_submissions (id, title, description, university, contact_email, status, review_notes, reviewed_by, reviewed_at, created_at)
		VALUES (:id, :title, :description, :university, :contact_email, :status, :review_notes, :reviewed_by, :reviewed_at, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, proposal); err != nil {
		return fmt.Errorf("create proposal: %w", err)
	}
	return nil
}

// UpdateReview persists the review state of a submission.
func (r *ProposalRepository) UpdateReview(ctx context.Context, proposal *models.ProposalSubmission) error {
	const query = `UPDATE proposal_submissions SET status = :status, review_notes = :review_notes, reviewed_by = :reviewed_by, reviewed_at = :reviewed_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, proposal); err != nil {
		return fmt.Errorf("update proposal review: %w", err)
	}
	return nil
}

// Delete removes a submission record.
func (r *ProposalRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM proposal_submissions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete proposal: %w", err)
	}
	return nil
}

// CountByStatus returns grouped submission counts, computed store-side.
func (r *ProposalRepository) CountByStatus(ctx context.Context) ([]models.StatusCount, error) {
	const query = `SELECT status, COUNT(*) AS count FROM proposal_submissions GROUP BY status`
	counts := make([]models.StatusCount, 0)
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("count proposals by status: %w", err)
	}
	return counts, nil
}
