package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/roboreach/site-api/internal/models"
	"github.com/roboreach/site-api/internal/resource"
	appErrors "github.com/roboreach/site-api/pkg/errors"
)

type proposalRepository interface {
	List(ctx context.Context, filter models.ProposalFilter) ([]models.ProposalSubmission, error)
	FindByID(ctx context.Context, id string) (*models.ProposalSubmission, error)
	Create(ctx context.Context, proposal *models.ProposalSubmission) error
	UpdateReview(ctx context.Context, proposal *models.ProposalSubmission) error
	Delete(ctx context.Context, id string) error
}

// SubmitProposalRequest is the public intake payload.
type SubmitProposalRequest struct {
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description" validate:"required"`
	University   string `json:"university" validate:"required"`
	ContactEmail string `json:"contact_email" validate:"required,email"`
}

// ReviewProposalRequest is the admin review payload. Reviewer identity and
// review time are stamped by the service, never taken from the payload.
type ReviewProposalRequest struct {
	Status      *string `json:"status" validate:"omitempty,oneof=pending under_review approved rejected"`
	ReviewNotes *string `json:"review_notes"`
}

// dashboardInvalidator drops cached dashboard aggregates after a write that
// changes the counted rows.
type dashboardInvalidator interface {
	Invalidate(ctx context.Context)
}

// ProposalService handles proposal submission workflows.
type ProposalService struct {
	repo      proposalRepository
	stats     dashboardInvalidator
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewProposalService creates a new proposal service. stats may be nil.
func NewProposalService(repo proposalRepository, stats dashboardInvalidator, validate *validator.Validate, logger *zap.Logger) *ProposalService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProposalService{repo: repo, stats: stats, validator: validate, logger: logger, now: time.Now}
}

func (s *ProposalService) invalidateStats(ctx context.Context) {
	if s.stats != nil {
		s.stats.Invalidate(ctx)
	}
}

// List returns submissions, optionally filtered by lifecycle status.
func (s *ProposalService) List(ctx context.Context, filter models.ProposalFilter) ([]models.ProposalSubmission, error) {
	proposals, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list proposals")
	}
	return proposals, nil
}

// Get returns a submission by identifier.
func (s *ProposalService) Get(ctx context.Context, id string) (*models.ProposalSubmission, error) {
	proposal, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "proposal not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load proposal")
	}
	return proposal, nil
}

// Submit records a public proposal submission in the pending state.
func (s *ProposalService) Submit(ctx context.Context, req SubmitProposalRequest) (*models.ProposalSubmission, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, resource.ValidationError(err)
	}

	proposal := &models.ProposalSubmission{
		Title:        req.Title,
		Description:  req.Description,
		University:   req.University,
		ContactEmail: req.ContactEmail,
		Status:       models.ProposalStatusPending,
	}

	if err := s.repo.Create(ctx, proposal); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create proposal")
	}
	s.invalidateStats(ctx)
	return proposal, nil
}

// Review applies an admin review. A status change stamps the acting admin's
// email and the review time; fields absent from the payload stay untouched.
func (s *ProposalService) Review(ctx context.Context, id string, req ReviewProposalRequest, reviewer *models.Admin) (*models.ProposalSubmission, error) {
	if reviewer == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, resource.ValidationError(err)
	}

	proposal, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "proposal not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load proposal")
	}

	if req.ReviewNotes != nil {
		proposal.ReviewNotes = req.ReviewNotes
	}
	statusChanged := req.Status != nil && *req.Status != proposal.Status
	if statusChanged {
		proposal.Status = *req.Status
		reviewedAt := s.now().UTC()
		proposal.ReviewedBy = &reviewer.Email
		proposal.ReviewedAt = &reviewedAt
	}

	if err := s.repo.UpdateReview(ctx, proposal); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update proposal")
	}
	if statusChanged {
		s.invalidateStats(ctx)
	}
	return proposal, nil
}

// Delete removes a submission.
func (s *ProposalService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "proposal not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load proposal")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete proposal")
	}
	s.invalidateStats(ctx)
	return nil
}
