package resource

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	appErrors "github.com/roboreach/site-api/pkg/errors"
)

const uniqueViolation = "23505"

// Schema describes how a managed entity maps onto its table. OrderBy must be
// deterministic: primary sort key plus a stable tiebreaker.
type Schema struct {
	Name       string
	Table      string
	Columns    []string
	OrderBy    string
	VisibleCol string
}

// Store is a sqlx-backed persistence gateway shared by every managed entity.
type Store[T any] struct {
	db     *sqlx.DB
	schema Schema
	now    func() time.Time
}

// NewStore builds a store for the given schema.
func NewStore[T any](db *sqlx.DB, schema Schema) *Store[T] {
	return &Store[T]{db: db, schema: schema, now: time.Now}
}

// Schema returns the entity schema backing this store.
func (s *Store[T]) Schema() Schema {
	return s.schema
}

// List returns all rows in the schema's deterministic order. When visibleOnly
// is set and the entity declares a visibility column, hidden rows are
// filtered out.
func (s *Store[T]) List(ctx context.Context, visibleOnly bool) ([]T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s", s.columnList(), s.schema.Table)
	if visibleOnly && s.schema.VisibleCol != "" {
		query += fmt.Sprintf(" WHERE %s = TRUE", s.schema.VisibleCol)
	}
	query += " ORDER BY " + s.schema.OrderBy

	items := make([]T, 0)
	if err := s.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("list %s: %w", s.schema.Table, err)
	}
	return items, nil
}

// FindByID returns a single row. sql.ErrNoRows propagates to the caller.
func (s *Store[T]) FindByID(ctx context.Context, id string) (*T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", s.columnList(), s.schema.Table)
	var item T
	if err := s.db.GetContext(ctx, &item, query, id); err != nil {
		return nil, err
	}
	return &item, nil
}

// Insert persists a new row, stamping id and timestamps when the entity
// embeds Meta.
func (s *Store[T]) Insert(ctx context.Context, row *T) error {
	if m, ok := any(row).(Metadated); ok {
		m.ResourceMeta().prepareInsert(s.now().UTC())
	}

	placeholders := make([]string, len(s.schema.Columns))
	for i, col := range s.schema.Columns {
		placeholders[i] = ":" + col
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		s.schema.Table, s.columnList(), strings.Join(placeholders, ", "))

	if _, err := s.db.NamedExecContext(ctx, query, row); err != nil {
		return s.mapError("create", err)
	}
	return nil
}

// Update applies only the provided columns plus updated_at and returns the
// refreshed row. Columns absent from fields are left untouched.
func (s *Store[T]) Update(ctx context.Context, id string, fields map[string]interface{}) (*T, error) {
	if len(fields) == 0 {
		return s.FindByID(ctx, id)
	}

	cols := make([]string, 0, len(fields))
	for col := range fields {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	assignments := make([]string, 0, len(cols)+1)
	args := make([]interface{}, 0, len(cols)+2)
	for i, col := range cols {
		assignments = append(assignments, fmt.Sprintf("%s = $%d", col, i+1))
		args = append(args, fields[col])
	}
	assignments = append(assignments, fmt.Sprintf("updated_at = $%d", len(args)+1))
	args = append(args, s.now().UTC())
	args = append(args, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d",
		s.schema.Table, strings.Join(assignments, ", "), len(args))

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return nil, s.mapError("update", err)
	}
	return s.FindByID(ctx, id)
}

// Delete removes a row permanently.
func (s *Store[T]) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", s.schema.Table)
	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete %s: %w", s.schema.Table, err)
	}
	return nil
}

func (s *Store[T]) columnList() string {
	return strings.Join(s.schema.Columns, ", ")
}

func (s *Store[T]) mapError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("%s with the same unique value already exists", s.schema.Name))
	}
	return fmt.Errorf("%s %s: %w", op, s.schema.Table, err)
}
