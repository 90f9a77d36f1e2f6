package repository

import "github.com/jb-laurans/dockitback/internal/domain/entity"

// MatchRepository defines the persistence operations for matches.
//
// Create relies on the storage-level UNIQUE (ship_id, user_id)
// constraint for duplicate detection and reports a violation as
// ErrDuplicate; there is no separate existence pre-check, so
// concurrent duplicate attempts cannot race past each other.
type MatchRepository interface {
	Create(m *entity.Match) error
	GetByID(id int64) (*entity.Match, error)
	// ListByUser returns the user's matches joined with a summary of
	// each ship, most recently matched first.
	ListByUser(userID int64) ([]*entity.MatchWithShip, error)
	// UpdateStatus sets the status and returns the updated match, or
	// ErrNotFound if no such match exists.
	UpdateStatus(id int64, status entity.MatchStatus) (*entity.Match, error)
}
