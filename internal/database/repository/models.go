package repository

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a snapshot id does not exist.
var ErrNotFound = errors.New("repository: not found")

// Snapshot represents a saved selection row.
type Snapshot struct {
	ID        string
	Name      string
	PageSize  int
	Count     int
	CreatedAt time.Time
}
