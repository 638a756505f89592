package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/roboreach/site-api/internal/models"
	"github.com/roboreach/site-api/internal/resource"
	appErrors "github.com/roboreach/site-api/pkg/errors"
	"github.com/roboreach/site-api/pkg/export"
	"github.com/roboreach/site-api/pkg/response"
)

type donationRepository interface {
	Create(ctx context.Context, donation *models.Donation) error
	List(ctx context.Context, filter models.DonationFilter) ([]models.Donation, int, error)
	ListAll(ctx context.Context) ([]models.Donation, error)
	Totals(ctx context.Context) (*models.DonationTotals, error)
}

// CreateDonationRequest is the public donation submission payload.
type CreateDonationRequest struct {
	Amount          int64   `json:"amount" validate:"required,gt=0"`
	Currency        string  `json:"currency" validate:"omitempty,len=3"`
	Name            string  `json:"name"`
	Message         *string `json:"message"`
	DonationType    string  `json:"donation_type" validate:"required,oneof=one_time monthly"`
	Anonymous       bool    `json:"anonymous"`
	PaymentProvider string  `json:"payment_provider" validate:"omitempty,oneof=stripe paypal manual"`
}

// DonationService records contributions and reports totals.
type DonationService struct {
	repo      donationRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewDonationService creates a new donation service.
func NewDonationService(repo donationRepository, validate *validator.Validate, logger *zap.Logger) *DonationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DonationService{repo: repo, validator: validate, logger: logger}
}

// Create records a donation in pending state. Anonymous donors are stored
// under a placeholder name; everyone else must supply one.
func (s *DonationService) Create(ctx context.Context, req CreateDonationRequest) (*models.Donation, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, resource.ValidationError(err)
	}
	if !req.Anonymous && req.Name == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "name is required for non-anonymous donations")
	}

	donation := &models.Donation{
		Amount:          req.Amount,
		Currency:        req.Currency,
		Name:            req.Name,
		Message:         req.Message,
		DonationType:    req.DonationType,
		Anonymous:       req.Anonymous,
		PaymentProvider: req.PaymentProvider,
		Status:          models.DonationStatusPending,
	}
	if donation.Currency == "" {
		donation.Currency = "USD"
	}
	if donation.PaymentProvider == "" {
		donation.PaymentProvider = "manual"
	}
	if donation.Anonymous {
		donation.Name = "Anonymous"
	}

	if err := s.repo.Create(ctx, donation); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record donation")
	}
	return donation, nil
}

// List returns a page of donations for the admin surface.
func (s *DonationService) List(ctx context.Context, filter models.DonationFilter) ([]models.Donation, *response.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}

	donations, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list donations")
	}

	pagination := &response.Pagination{
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalCount: total,
	}
	return donations, pagination, nil
}

// Totals sums completed donations. The aggregation happens in SQL so the
// figure stays correct regardless of row count.
func (s *DonationService) Totals(ctx context.Context) (*models.DonationTotals, error) {
	totals, err := s.repo.Totals(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to compute donation totals")
	}
	return totals, nil
}

// Export renders the full donation ledger as CSV or PDF.
func (s *DonationService) Export(ctx context.Context, format string) ([]byte, string, error) {
	donations, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load donations for export")
	}

	dataset := export.Dataset{
		Headers: []string{"ID", "Name", "Amount", "Currency", "Type", "Status", "Provider", "Created At"},
		Rows:    make([]map[string]string, 0, len(donations)),
	}
	for _, d := range donations {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"ID":         d.ID,
			"Name":       d.Name,
			"Amount":     strconv.FormatInt(d.Amount, 10),
			"Currency":   d.Currency,
			"Type":       d.DonationType,
			"Status":     d.Status,
			"Provider":   d.PaymentProvider,
			"Created At": d.CreatedAt.Format(time.RFC3339),
		})
	}

	switch format {
	case "csv", "":
		content, err := export.NewCSVExporter().Render(dataset)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return content, "text/csv", nil
	case "pdf":
		content, err := export.NewPDFExporter().Render(dataset, "Donation Report")
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return content, "application/pdf", nil
	default:
		return nil, "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format: %s", format))
	}
}
