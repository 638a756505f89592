package resource

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/roboreach/site-api/pkg/errors"
)

type gadget struct {
	Meta
	Name      string `db:"name" json:"name"`
	SortOrder int    `db:"sort_order" json:"sort_order"`
	IsVisible bool   `db:"is_visible" json:"is_visible"`
}

var gadgetSchema = Schema{
	Name:       "gadget",
	Table:      "gadgets",
	Columns:    []string{"id", "name", "sort_order", "is_visible", "created_at", "updated_at"},
	OrderBy:    "sort_order ASC, created_at ASC",
	VisibleCol: "is_visible",
}

func newGadgetStore(t *testing.T) (*Store[gadget], sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStore[gadget](sqlx.NewDb(db, "postgres"), gadgetSchema), mock
}

func gadgetRows(names ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "name", "sort_order", "is_visible", "created_at", "updated_at"})
	for i, name := range names {
		rows.AddRow(name+"-id", name, i, true, time.Now(), time.Now())
	}
	return rows
}

func TestStoreListOrdersDeterministically(t *testing.T) {
	store, mock := newGadgetStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, name, sort_order, is_visible, created_at, updated_at FROM gadgets ORDER BY sort_order ASC, created_at ASC",
	)).WillReturnRows(gadgetRows("alpha", "beta"))

	items, err := store.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "alpha", items[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreListVisibleOnlyFilters(t *testing.T) {
	store, mock := newGadgetStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, name, sort_order, is_visible, created_at, updated_at FROM gadgets WHERE is_visible = TRUE ORDER BY sort_order ASC, created_at ASC",
	)).WillReturnRows(gadgetRows("alpha"))

	items, err := store.List(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Entities without a visibility column ignore the visibleOnly flag rather
// than emitting a broken WHERE clause.
func TestStoreListNoVisibilityColumn(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	schema := gadgetSchema
	schema.VisibleCol = ""
	store := NewStore[gadget](sqlx.NewDb(db, "postgres"), schema)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, name, sort_order, is_visible, created_at, updated_at FROM gadgets ORDER BY sort_order ASC, created_at ASC",
	)).WillReturnRows(gadgetRows())

	_, err = store.List(context.Background(), true)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreFindByIDPropagatesNoRows(t *testing.T) {
	store, mock := newGadgetStore(t)

	mock.ExpectQuery("SELECT .+ FROM gadgets WHERE id = \\$1").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := store.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestStoreInsertStampsMeta(t *testing.T) {
	store, mock := newGadgetStore(t)

	mock.ExpectExec("INSERT INTO gadgets").
		WillReturnResult(sqlmock.NewResult(0, 1))

	row := gadget{Name: "alpha", IsVisible: true}
	err := store.Insert(context.Background(), &row)
	require.NoError(t, err)
	assert.NotEmpty(t, row.ID)
	assert.False(t, row.CreatedAt.IsZero())
	assert.Equal(t, row.CreatedAt, row.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreInsertUniqueViolationMapsToConflict(t *testing.T) {
	store, mock := newGadgetStore(t)

	mock.ExpectExec("INSERT INTO gadgets").
		WillReturnError(&pq.Error{Code: "23505"})

	row := gadget{Name: "alpha"}
	err := store.Insert(context.Background(), &row)
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "gadget")
}

// Only the changed columns plus updated_at may appear in the SET clause, in
// sorted column order.
func TestStoreUpdateBuildsSparseSetClause(t *testing.T) {
	store, mock := newGadgetStore(t)
	frozen := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return frozen }

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE gadgets SET name = $1, sort_order = $2, updated_at = $3 WHERE id = $4",
	)).WithArgs("renamed", 5, frozen, "g1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT .+ FROM gadgets WHERE id = \\$1").
		WithArgs("g1").
		WillReturnRows(gadgetRows("renamed"))

	_, err := store.Update(context.Background(), "g1", map[string]interface{}{
		"sort_order": 5,
		"name":       "renamed",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreUpdateNoFieldsRefetchesOnly(t *testing.T) {
	store, mock := newGadgetStore(t)

	mock.ExpectQuery("SELECT .+ FROM gadgets WHERE id = \\$1").
		WithArgs("g1").
		WillReturnRows(gadgetRows("alpha"))

	item, err := store.Update(context.Background(), "g1", nil)
	require.NoError(t, err)
	assert.Equal(t, "alpha", item.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreDelete(t *testing.T) {
	store, mock := newGadgetStore(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM gadgets WHERE id = $1")).
		WithArgs("g1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Delete(context.Background(), "g1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
