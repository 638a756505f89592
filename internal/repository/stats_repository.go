package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/roboreach/site-api/internal/models"
)

// StatsRepository computes dashboard aggregates with grouped counts. Counting
// happens in the store, never by fetching rows and counting in the handler,
// so each call sees one consistent snapshot.
type StatsRepository struct {
	db *sqlx.DB
}

// NewStatsRepository creates a new repository instance.
func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// ProjectCountsByStatus returns grouped project counts.
func (r *StatsRepository) ProjectCountsByStatus(ctx context.Context) ([]models.StatusCount, error) {
	const query = `SELECT status, COUNT(*) AS count FROM projects GROUP BY status`
	counts := make([]models.StatusCount, 0)
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("count projects by status: %w", err)
	}
	return counts, nil
}

// CountPartners returns the total partner count.
func (r *StatsRepository) CountPartners(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM partners`); err != nil {
		return 0, fmt.Errorf("count partners: %w", err)
	}
	return count, nil
}

// CountActiveTeamMembers returns the active team member count.
func (r *StatsRepository) CountActiveTeamMembers(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM team_members WHERE is_active = TRUE`); err != nil {
		return 0, fmt.Errorf("count active team members: %w", err)
	}
	return count, nil
}
