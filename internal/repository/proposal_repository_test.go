package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roboreach/site-api/internal/models"
)

func TestProposalRepositoryCountByStatusGroupsStoreSide(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProposalRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT status, COUNT(*) AS count FROM proposal_submissions GROUP BY status",
	)).WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
		AddRow("pending", 4).
		AddRow("approved", 2))

	counts, err := repo.CountByStatus(context.Background())
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, "pending", counts[0].Status)
	assert.Equal(t, 4, counts[0].Count)
}

func TestProposalRepositoryListWithStatusFilter(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProposalRepository(db)

	rows := sqlmock.NewRows([]string{"id", "title", "description", "university", "contact_email", "status", "review_notes", "reviewed_by", "reviewed_at", "created_at"}).
		AddRow("p1", "Robotics lab", "desc", "State University", "dean@state.edu", "pending", nil, nil, nil, time.Now())

	mock.ExpectQuery(regexp.QuoteMeta("WHERE status = $1 ORDER BY created_at DESC, id ASC")).
		WithArgs("pending").
		WillReturnRows(rows)

	proposals, err := repo.List(context.Background(), models.ProposalFilter{Status: "pending"})
	require.NoError(t, err)
	require.Len(t, proposals, 1)
	assert.Equal(t, "p1", proposals[0].ID)
}

func TestProposalRepositoryUpdateReviewPersistsStamp(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProposalRepository(db)

	mock.ExpectExec("UPDATE proposal_submissions SET").
		WillReturnResult(sqlmock.NewResult(0, 1))

	reviewedBy := "reviewer@example.org"
	reviewedAt := time.Now().UTC()
	proposal := &models.ProposalSubmission{
		ID:         "p1",
		Status:     models.ProposalStatusApproved,
		ReviewedBy: &reviewedBy,
		ReviewedAt: &reviewedAt,
	}
	require.NoError(t, repo.UpdateReview(context.Background(), proposal))
	assert.NoError(t, mock.ExpectationsWereMet())
}
