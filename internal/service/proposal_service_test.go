package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/roboreach/site-api/internal/models"
	appErrors "github.com/roboreach/site-api/pkg/errors"
)

type mockProposalRepo struct {
	proposal  *models.ProposalSubmission
	findErr   error
	created   *models.ProposalSubmission
	updated   *models.ProposalSubmission
	deletedID string
}

func (m *mockProposalRepo) List(ctx context.Context, filter models.ProposalFilter) ([]models.ProposalSubmission, error) {
	if m.proposal == nil {
		return []models.ProposalSubmission{}, nil
	}
	return []models.ProposalSubmission{*m.proposal}, nil
}

func (m *mockProposalRepo) FindByID(ctx context.Context, id string) (*models.ProposalSubmission, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	clone := *m.proposal
	return &clone, nil
}

func (m *mockProposalRepo) Create(ctx context.Context, proposal *models.ProposalSubmission) error {
	m.created = proposal
	return nil
}

func (m *mockProposalRepo) UpdateReview(ctx context.Context, proposal *models.ProposalSubmission) error {
	m.updated = proposal
	return nil
}

func (m *mockProposalRepo) Delete(ctx context.Context, id string) error {
	m.deletedID = id
	return nil
}

func strPtr(s string) *string { return &s }

func TestProposalServiceSubmitForcesPending(t *testing.T) {
	repo := &mockProposalRepo{}
	svc := NewProposalService(repo, nil, validator.New(), zap.NewNop())

	proposal, err := svc.Submit(context.Background(), SubmitProposalRequest{
		Title:        "Robotics lab",
		Description:  "A semester-long robotics program",
		University:   "State University",
		ContactEmail: "dean@state.edu",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusPending, proposal.Status)
	assert.Nil(t, proposal.ReviewedBy)
	assert.Nil(t, proposal.ReviewedAt)
	require.NotNil(t, repo.created)
}

func TestProposalServiceSubmitValidation(t *testing.T) {
	svc := NewProposalService(&mockProposalRepo{}, nil, validator.New(), zap.NewNop())

	_, err := svc.Submit(context.Background(), SubmitProposalRequest{Title: "Only a title"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestProposalServiceReviewStampsReviewer(t *testing.T) {
	repo := &mockProposalRepo{proposal: &models.ProposalSubmission{
		ID:     "p1",
		Status: models.ProposalStatusPending,
	}}
	svc := NewProposalService(repo, nil, validator.New(), zap.NewNop())
	reviewTime := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return reviewTime }

	admin := &models.Admin{ID: "adm-1", Email: "reviewer@example.org"}
	proposal, err := svc.Review(context.Background(), "p1", ReviewProposalRequest{
		Status:      strPtr(models.ProposalStatusApproved),
		ReviewNotes: strPtr("looks great"),
	}, admin)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusApproved, proposal.Status)
	require.NotNil(t, proposal.ReviewedBy)
	assert.Equal(t, "reviewer@example.org", *proposal.ReviewedBy)
	require.NotNil(t, proposal.ReviewedAt)
	assert.Equal(t, reviewTime, *proposal.ReviewedAt)
	require.NotNil(t, proposal.ReviewNotes)
	assert.Equal(t, "looks great", *proposal.ReviewNotes)
}

// Notes-only reviews must not touch the review stamp.
func TestProposalServiceReviewNotesOnlyDoesNotStamp(t *testing.T) {
	repo := &mockProposalRepo{proposal: &models.ProposalSubmission{
		ID:     "p1",
		Status: models.ProposalStatusPending,
	}}
	svc := NewProposalService(repo, nil, validator.New(), zap.NewNop())

	admin := &models.Admin{ID: "adm-1", Email: "reviewer@example.org"}
	proposal, err := svc.Review(context.Background(), "p1", ReviewProposalRequest{
		ReviewNotes: strPtr("needs a budget section"),
	}, admin)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusPending, proposal.Status)
	assert.Nil(t, proposal.ReviewedBy)
	assert.Nil(t, proposal.ReviewedAt)
}

func TestProposalServiceReviewRejectsUnknownStatus(t *testing.T) {
	repo := &mockProposalRepo{proposal: &models.ProposalSubmission{ID: "p1", Status: models.ProposalStatusPending}}
	svc := NewProposalService(repo, nil, validator.New(), zap.NewNop())

	admin := &models.Admin{ID: "adm-1", Email: "reviewer@example.org"}
	_, err := svc.Review(context.Background(), "p1", ReviewProposalRequest{Status: strPtr("archived")}, admin)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Nil(t, repo.updated)
}

func TestProposalServiceReviewNotFound(t *testing.T) {
	repo := &mockProposalRepo{findErr: sql.ErrNoRows}
	svc := NewProposalService(repo, nil, validator.New(), zap.NewNop())

	admin := &models.Admin{ID: "adm-1", Email: "reviewer@example.org"}
	_, err := svc.Review(context.Background(), "missing", ReviewProposalRequest{Status: strPtr(models.ProposalStatusApproved)}, admin)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestProposalServiceDeleteNotFound(t *testing.T) {
	repo := &mockProposalRepo{findErr: sql.ErrNoRows}
	svc := NewProposalService(repo, nil, validator.New(), zap.NewNop())

	err := svc.Delete(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.deletedID)
}

type mockDashboardInvalidator struct {
	calls int
}

func (m *mockDashboardInvalidator) Invalidate(ctx context.Context) { m.calls++ }

func TestProposalServiceWritesInvalidateDashboard(t *testing.T) {
	t.Run("submit", func(t *testing.T) {
		stats := &mockDashboardInvalidator{}
		svc := NewProposalService(&mockProposalRepo{}, stats, validator.New(), zap.NewNop())

		_, err := svc.Submit(context.Background(), SubmitProposalRequest{
			Title:        "Robotics lab",
			Description:  "A semester-long robotics program",
			University:   "State University",
			ContactEmail: "dean@state.edu",
		})
		require.NoError(t, err)
		assert.Equal(t, 1, stats.calls)
	})

	t.Run("status change", func(t *testing.T) {
		stats := &mockDashboardInvalidator{}
		repo := &mockProposalRepo{proposal: &models.ProposalSubmission{ID: "p1", Status: models.ProposalStatusPending}}
		svc := NewProposalService(repo, stats, validator.New(), zap.NewNop())

		admin := &models.Admin{ID: "adm-1", Email: "reviewer@example.org"}
		_, err := svc.Review(context.Background(), "p1", ReviewProposalRequest{Status: strPtr(models.ProposalStatusApproved)}, admin)
		require.NoError(t, err)
		assert.Equal(t, 1, stats.calls)
	})

	t.Run("notes only keeps cache", func(t *testing.T) {
		stats := &mockDashboardInvalidator{}
		repo := &mockProposalRepo{proposal: &models.ProposalSubmission{ID: "p1", Status: models.ProposalStatusPending}}
		svc := NewProposalService(repo, stats, validator.New(), zap.NewNop())

		admin := &models.Admin{ID: "adm-1", Email: "reviewer@example.org"}
		_, err := svc.Review(context.Background(), "p1", ReviewProposalRequest{ReviewNotes: strPtr("waiting on budget")}, admin)
		require.NoError(t, err)
		assert.Equal(t, 0, stats.calls)
	})

	t.Run("delete", func(t *testing.T) {
		stats := &mockDashboardInvalidator{}
		repo := &mockProposalRepo{proposal: &models.ProposalSubmission{ID: "p1", Status: models.ProposalStatusPending}}
		svc := NewProposalService(repo, stats, validator.New(), zap.NewNop())

		require.NoError(t, svc.Delete(context.Background(), "p1"))
		assert.Equal(t, 1, stats.calls)
	})
}
