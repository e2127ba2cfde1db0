package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/johnwards/propgrid/internal/domain"
)

// AttributeStore persists node attribute values as JSON, with a history of
// every write.
type AttributeStore interface {
	Get(ctx context.Context, nodeID, name string) (json.RawMessage, bool, error)
	Set(ctx context.Context, nodeID, name string, value json.RawMessage, source string) error
	Delete(ctx context.Context, nodeID, name, source string) error
	All(ctx context.Context, nodeID string) (map[string]json.RawMessage, error)
	History(ctx context.Context, nodeID, name string, limit int) ([]domain.AttributeChange, error)
}

// SQLiteAttributeStore implements AttributeStore using SQLite.
type SQLiteAttributeStore struct {
	db *sql.DB
}

// NewSQLiteAttributeStore creates a new SQLiteAttributeStore.
func NewSQLiteAttributeStore(db *sql.DB) *SQLiteAttributeStore {
	return &SQLiteAttributeStore{db: db}
}

// Get returns the stored value and whether one exists.
func (s *SQLiteAttributeStore) Get(ctx context.Context, nodeID, name string) (json.RawMessage, bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM attribute_values WHERE node_id = ? AND name = ?`, nodeID, name).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get attribute %q: %w", name, err)
	}
	return json.RawMessage(raw), true, nil
}

// Set upserts the value and appends a history row in one transaction.
func (s *SQLiteAttributeStore) Set(ctx context.Context, nodeID, name string, value json.RawMessage, source string) error {
	if !json.Valid(value) {
		return fmt.Errorf("attribute %q: value is not valid JSON", name)
	}
	if source == "" {
		source = "API"
	}
	ts := now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin set attribute: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO attribute_values (node_id, name, value, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(node_id, name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		nodeID, name, string(value), ts)
	if err != nil {
		return fmt.Errorf("upsert attribute %q: %w", name, err)
	}
	if err := appendHistory(ctx, tx, nodeID, name, string(value), source, ts); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE nodes SET updated_at = ? WHERE id = ?`, ts, nodeID); err != nil {
		return fmt.Errorf("touch node: %w", err)
	}

	return tx.Commit()
}

// Delete clears the stored value. The history records the clear as a null
// value. Deleting an absent value is not an error.
func (s *SQLiteAttributeStore) Delete(ctx context.Context, nodeID, name, source string) error {
	if source == "" {
		source = "API"
	}
	ts := now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete attribute: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`DELETE FROM attribute_values WHERE node_id = ? AND name = ?`, nodeID, name)
	if err != nil {
		return fmt.Errorf("delete attribute %q: %w", name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil
	}
	if err := appendHistory(ctx, tx, nodeID, name, nil, source, ts); err != nil {
		return err
	}

	return tx.Commit()
}

func appendHistory(ctx context.Context, tx *sql.Tx, nodeID, name string, value any, source, ts string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO attribute_history (node_id, name, value, timestamp, source) VALUES (?, ?, ?, ?, ?)`,
		nodeID, name, value, ts, source)
	if err != nil {
		return fmt.Errorf("append history %q: %w", name, err)
	}
	return nil
}

// All returns every stored value of the node keyed by attribute name.
func (s *SQLiteAttributeStore) All(ctx context.Context, nodeID string) (map[string]json.RawMessage, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, value FROM attribute_values WHERE node_id = ?`, nodeID)
	if err != nil {
		return nil, fmt.Errorf("list attributes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make(map[string]json.RawMessage)
	for rows.Next() {
		var name, raw string
		if err := rows.Scan(&name, &raw); err != nil {
			return nil, fmt.Errorf("scan attribute: %w", err)
		}
		out[name] = json.RawMessage(raw)
	}
	return out, rows.Err()
}

// History returns the most recent writes to an attribute, newest first.
// A limit of zero or less returns every entry.
func (s *SQLiteAttributeStore) History(ctx context.Context, nodeID, name string, limit int) ([]domain.AttributeChange, error) {
	q := `SELECT value, timestamp, source FROM attribute_history
		WHERE node_id = ? AND name = ? ORDER BY id DESC`
	args := []any{nodeID, name}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("attribute history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	changes := []domain.AttributeChange{}
	for rows.Next() {
		var raw sql.NullString
		c := domain.AttributeChange{NodeID: nodeID, Name: name}
		if err := rows.Scan(&raw, &c.Timestamp, &c.Source); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		if raw.Valid {
			if err := json.Unmarshal([]byte(raw.String), &c.Value); err != nil {
				return nil, fmt.Errorf("decode history %q: %w", name, err)
			}
		}
		changes = append(changes, c)
	}
	return changes, rows.Err()
}
