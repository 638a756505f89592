package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roboreach/site-api/internal/models"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func templateRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "filename", "is_active", "download_count", "created_at"}).
		AddRow("t1", "Proposal Guide", "8a6f.pdf", true, 41, time.Now())
}

func TestTemplateRepositoryIncrementDownloadsIsStoreSide(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTemplateRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE proposal_templates SET download_count = download_count + 1 WHERE id = $1",
	)).WithArgs("t1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.IncrementDownloads(context.Background(), "t1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTemplateRepositoryFindActiveLatest(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTemplateRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(
		"WHERE is_active = TRUE ORDER BY created_at DESC LIMIT 1",
	)).WillReturnRows(templateRows())

	template, err := repo.FindActiveLatest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "t1", template.ID)
	assert.Equal(t, 41, template.DownloadCount)
}

func TestTemplateRepositoryFindByIDNoRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTemplateRepository(db)

	mock.ExpectQuery("SELECT .+ FROM proposal_templates WHERE id = \\$1").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestTemplateRepositoryCreateStampsIdentity(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTemplateRepository(db)

	mock.ExpectExec("INSERT INTO proposal_templates").
		WillReturnResult(sqlmock.NewResult(0, 1))

	row := &models.ProposalTemplate{Name: "Proposal Guide", Filename: "stored.pdf", IsActive: true}
	require.NoError(t, repo.Create(context.Background(), row))
	assert.NotEmpty(t, row.ID)
	assert.False(t, row.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}
