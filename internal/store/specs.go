package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/johnwards/propgrid/internal/domain"
)

// SpecStore persists the ordered property spec catalog of each node kind.
// Positions are kept dense, 0 to n-1, so stored order is collection order.
type SpecStore interface {
	List(ctx context.Context, kind string) ([]domain.SpecRecord, error)
	Append(ctx context.Context, kind string, rec *domain.SpecRecord) (*domain.SpecRecord, error)
	Insert(ctx context.Context, kind string, position int, rec *domain.SpecRecord) (*domain.SpecRecord, error)
	Replace(ctx context.Context, kind string, recs []domain.SpecRecord) ([]domain.SpecRecord, error)
	RemoveName(ctx context.Context, kind, name string) error
	Kinds(ctx context.Context) ([]domain.KindSummary, error)
	DefaultProperty(ctx context.Context, kind string) (string, error)
	SetDefaultProperty(ctx context.Context, kind, name string) error
}

// ErrPositionOutOfRange is returned by Insert for a position past the end.
var ErrPositionOutOfRange = errors.New("position out of range")

// SQLiteSpecStore implements SpecStore using SQLite.
type SQLiteSpecStore struct {
	db *sql.DB
}

// NewSQLiteSpecStore creates a new SQLiteSpecStore.
func NewSQLiteSpecStore(db *sql.DB) *SQLiteSpecStore {
	return &SQLiteSpecStore{db: db}
}

const specCols = `position, name, type_name, category, description, editor,
	expandable, read_only, hidden, disabled, refresh_properties, default_value`

func scanSpec(row rowScanner) (*domain.SpecRecord, error) {
	var r domain.SpecRecord
	var def sql.NullString
	err := row.Scan(
		&r.Position, &r.Name, &r.TypeName, &r.Category, &r.Description, &r.Editor,
		&r.Expandable, &r.ReadOnly, &r.Hidden, &r.Disabled, &r.RefreshProperties, &def,
	)
	if err != nil {
		return nil, err
	}
	if def.Valid && def.String != "" {
		r.DefaultValue = json.RawMessage(def.String)
	}
	return &r, nil
}

func defaultArg(raw json.RawMessage) any {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return string(raw)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertSpec(ctx context.Context, db execer, kind string, position int, r *domain.SpecRecord) error {
	if r.DefaultValue != nil && !json.Valid(r.DefaultValue) {
		return fmt.Errorf("spec %q: default value is not valid JSON", r.Name)
	}
	_, err := db.ExecContext(ctx,
		`INSERT INTO property_specs (kind, `+specCols+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		kind, position, r.Name, r.TypeName, r.Category, r.Description, r.Editor,
		r.Expandable, r.ReadOnly, r.Hidden, r.Disabled, r.RefreshProperties, defaultArg(r.DefaultValue),
	)
	if err != nil {
		return fmt.Errorf("insert spec %q: %w", r.Name, err)
	}
	r.Position = position
	return nil
}

func (s *SQLiteSpecStore) count(ctx context.Context, q interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}, kind string) (int, error) {
	var n int
	if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM property_specs WHERE kind = ?`, kind).Scan(&n); err != nil {
		return 0, fmt.Errorf("count specs: %w", err)
	}
	return n, nil
}

// List returns the catalog of kind in position order.
func (s *SQLiteSpecStore) List(ctx context.Context, kind string) ([]domain.SpecRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+specCols+` FROM property_specs WHERE kind = ? ORDER BY position`, kind)
	if err != nil {
		return nil, fmt.Errorf("list specs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	recs := []domain.SpecRecord{}
	for rows.Next() {
		r, err := scanSpec(rows)
		if err != nil {
			return nil, fmt.Errorf("scan spec: %w", err)
		}
		recs = append(recs, *r)
	}
	return recs, rows.Err()
}

// Append adds rec at the end of the catalog.
func (s *SQLiteSpecStore) Append(ctx context.Context, kind string, rec *domain.SpecRecord) (*domain.SpecRecord, error) {
	n, err := s.count(ctx, s.db, kind)
	if err != nil {
		return nil, err
	}
	if err := insertSpec(ctx, s.db, kind, n, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Insert places rec at position, shifting later specs back by one.
func (s *SQLiteSpecStore) Insert(ctx context.Context, kind string, position int, rec *domain.SpecRecord) (*domain.SpecRecord, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin insert spec: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	n, err := s.count(ctx, tx, kind)
	if err != nil {
		return nil, err
	}
	if position < 0 || position > n {
		return nil, fmt.Errorf("insert spec at %d of %d: %w", position, n, ErrPositionOutOfRange)
	}

	// Shift through negative positions so the primary key never collides
	// mid-update.
	if _, err := tx.ExecContext(ctx,
		`UPDATE property_specs SET position = -position - 2 WHERE kind = ? AND position >= ?`,
		kind, position); err != nil {
		return nil, fmt.Errorf("shift specs: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE property_specs SET position = -position - 1 WHERE kind = ? AND position < 0`,
		kind); err != nil {
		return nil, fmt.Errorf("shift specs: %w", err)
	}

	if err := insertSpec(ctx, tx, kind, position, rec); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit insert spec: %w", err)
	}
	return rec, nil
}

// Replace swaps the whole catalog of kind for recs, in order.
func (s *SQLiteSpecStore) Replace(ctx context.Context, kind string, recs []domain.SpecRecord) ([]domain.SpecRecord, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin replace specs: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM property_specs WHERE kind = ?`, kind); err != nil {
		return nil, fmt.Errorf("clear specs: %w", err)
	}
	for i := range recs {
		if err := insertSpec(ctx, tx, kind, i, &recs[i]); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit replace specs: %w", err)
	}
	return recs, nil
}

// RemoveName deletes the first spec named name and closes the gap.
func (s *SQLiteSpecStore) RemoveName(ctx context.Context, kind, name string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin remove spec: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var position int
	err = tx.QueryRowContext(ctx,
		`SELECT MIN(position) FROM property_specs WHERE kind = ? AND name = ? HAVING COUNT(*) > 0`,
		kind, name).Scan(&position)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("spec %q: %w", name, ErrNotFound)
		}
		return fmt.Errorf("find spec: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM property_specs WHERE kind = ? AND position = ?`, kind, position); err != nil {
		return fmt.Errorf("delete spec: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE property_specs SET position = -position WHERE kind = ? AND position > ?`,
		kind, position); err != nil {
		return fmt.Errorf("compact specs: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE property_specs SET position = -position - 1 WHERE kind = ? AND position < 0`,
		kind); err != nil {
		return fmt.Errorf("compact specs: %w", err)
	}

	return tx.Commit()
}

// Kinds lists every kind with a non-empty catalog.
func (s *SQLiteSpecStore) Kinds(ctx context.Context) ([]domain.KindSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT p.kind, COUNT(*), COALESCE(k.default_property, '')
		 FROM property_specs p LEFT JOIN kind_settings k ON k.kind = p.kind
		 GROUP BY p.kind ORDER BY p.kind`)
	if err != nil {
		return nil, fmt.Errorf("list kinds: %w", err)
	}
	defer func() { _ = rows.Close() }()

	kinds := []domain.KindSummary{}
	for rows.Next() {
		var k domain.KindSummary
		if err := rows.Scan(&k.Kind, &k.SpecCount, &k.DefaultProperty); err != nil {
			return nil, fmt.Errorf("scan kind: %w", err)
		}
		kinds = append(kinds, k)
	}
	return kinds, rows.Err()
}

// DefaultProperty returns the default property name of kind, empty if unset.
func (s *SQLiteSpecStore) DefaultProperty(ctx context.Context, kind string) (string, error) {
	var name string
	err := s.db.QueryRowContext(ctx,
		`SELECT default_property FROM kind_settings WHERE kind = ?`, kind).Scan(&name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("get default property: %w", err)
	}
	return name, nil
}

// SetDefaultProperty records the default property name of kind.
func (s *SQLiteSpecStore) SetDefaultProperty(ctx context.Context, kind, name string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kind_settings (kind, default_property) VALUES (?, ?)
		 ON CONFLICT(kind) DO UPDATE SET default_property = excluded.default_property`,
		kind, name)
	if err != nil {
		return fmt.Errorf("set default property: %w", err)
	}
	return nil
}
