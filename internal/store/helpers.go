package store

import (
	"errors"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when an insert collides with an existing key.
	ErrConflict = errors.New("already exists")
)

// now returns the current UTC time as an RFC 3339 timestamp with milliseconds.
func now() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
