package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/roboreach/site-api/internal/models"
)

// DonationRepository handles persistence for donations. Rows are append-only.
type DonationRepository struct {
	db *sqlx.DB
}

// NewDonationRepository creates a new repository instance.
func NewDonationRepository(db *sqlx.DB) *DonationRepository {
	return &DonationRepository{db: db}
}

const donationColumns = "id, amount, currency, name, message, donation_type, anonymous, payment_provider, status, created_at"

// Create persists a new donation.
func (r *DonationRepository) Create(ctx context.Context, donation *models.Donation) error {
	if donation.ID == "" {
		donation.ID = uuid.NewString()
	}
	if donation.CreatedAt.IsZero() {
		donation.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO donations (id, amount, currency, name, message, donation_type, anonymous, payment_provider, status, created_at)
		VALUES (:id, :amount, :currency, :name, :message, :donation_type, :anonymous, :payment_provider, :status, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, donation); err != nil {
		return fmt.Errorf("create donation: %w", err)
	}
	return nil
}

// List returns donations newest first with pagination metadata.
func (r *DonationRepository) List(ctx context.Context, filter models.DonationFilter) ([]models.Donation, int, error) {
	base := "FROM donations WHERE 1=1"
	var args []interface{}
	if filter.Status != "" {
		base += fmt.Sprintf(" AND status = $%d", len(args)+1)
		args = append(args, filter.Status)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY created_at DESC, id ASC LIMIT %d OFFSET %d", donationColumns, base, size, offset)
	donations := make([]models.Donation, 0)
	if err := r.db.SelectContext(ctx, &donations, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list donations: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count donations: %w", err)
	}

	return donations, total, nil
}

// ListAll returns the full donation ledger newest first, for report export.
func (r *DonationRepository) ListAll(ctx context.Context) ([]models.Donation, error) {
	query := fmt.Sprintf("SELECT %s FROM donations ORDER BY created_at DESC, id ASC", donationColumns)
	donations := make([]models.Donation, 0)
	if err := r.db.SelectContext(ctx, &donations, query); err != nil {
		return nil, fmt.Errorf("list all donations: %w", err)
	}
	return donations, nil
}

// Totals aggregates completed donations store-side. Pending and failed rows
// never count toward the public total.
func (r *DonationRepository) Totals(ctx context.Context) (*models.DonationTotals, error) {
	const query = `SELECT COALESCE(SUM(amount), 0) AS total_amount, COUNT(*) AS count FROM donations WHERE status = 'completed'`
	var totals models.DonationTotals
	if err := r.db.GetContext(ctx, &totals, query); err != nil {
		return nil, fmt.Errorf("donation totals: %w", err)
	}
	return &totals, nil
}
