package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/johnwards/propgrid/internal/domain"
)

// NodeStore defines operations on scene nodes.
type NodeStore interface {
	List(ctx context.Context, kind string) ([]domain.Node, error)
	Get(ctx context.Context, id string) (*domain.Node, error)
	Create(ctx context.Context, n *domain.Node) (*domain.Node, error)
	Delete(ctx context.Context, id string) error
}

// SQLiteNodeStore implements NodeStore using SQLite.
type SQLiteNodeStore struct {
	db *sql.DB
}

// NewSQLiteNodeStore creates a new SQLiteNodeStore.
func NewSQLiteNodeStore(db *sql.DB) *SQLiteNodeStore {
	return &SQLiteNodeStore{db: db}
}

const nodeCols = `id, kind, name, COALESCE(parent_id, ''), created_at, updated_at`

func scanNode(row rowScanner) (*domain.Node, error) {
	var n domain.Node
	if err := row.Scan(&n.ID, &n.Kind, &n.Name, &n.ParentID, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, err
	}
	return &n, nil
}

// List returns nodes ordered by creation, optionally restricted to kind.
func (s *SQLiteNodeStore) List(ctx context.Context, kind string) ([]domain.Node, error) {
	q := `SELECT ` + nodeCols + ` FROM nodes`
	var args []any
	if kind != "" {
		q += ` WHERE kind = ?`
		args = append(args, kind)
	}
	q += ` ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list nodes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	nodes := []domain.Node{}
	for rows.Next() {
		n, err := scanNode(rows)
		if err != nil {
			return nil, fmt.Errorf("scan node: %w", err)
		}
		nodes = append(nodes, *n)
	}
	return nodes, rows.Err()
}

// Get returns the node with id.
func (s *SQLiteNodeStore) Get(ctx context.Context, id string) (*domain.Node, error) {
	n, err := scanNode(s.db.QueryRowContext(ctx,
		`SELECT `+nodeCols+` FROM nodes WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("node %q: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get node: %w", err)
	}
	return n, nil
}

// Create inserts n, assigning a random id when n.ID is empty.
func (s *SQLiteNodeStore) Create(ctx context.Context, n *domain.Node) (*domain.Node, error) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	ts := now()
	n.CreatedAt = ts
	n.UpdatedAt = ts

	var parent any
	if n.ParentID != "" {
		parent = n.ParentID
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO nodes (id, kind, name, parent_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		n.ID, n.Kind, n.Name, parent, n.CreatedAt, n.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("node %q: %w", n.ID, ErrConflict)
		}
		return nil, fmt.Errorf("insert node: %w", err)
	}
	return n, nil
}

// Delete removes the node and, by cascade, its attributes and history.
func (s *SQLiteNodeStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM nodes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete node: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete node: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("node %q: %w", id, ErrNotFound)
	}
	return nil
}
