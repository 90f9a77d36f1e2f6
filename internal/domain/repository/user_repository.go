package repository

import "github.com/jb-laurans/dockitback/internal/domain/entity"

// DashboardCounts aggregates the numbers shown on the shipowner
// dashboard: listings owned and matches initiated by the user.
type DashboardCounts struct {
	Ships   int `json:"ships"`
	Matches int `json:"matches"`
}

// UserRepository defines the persistence operations for accounts.
type UserRepository interface {
	// Create inserts u and fills in its generated fields. A taken
	// email yields ErrDuplicate.
	Create(u *entity.User) error
	GetByID(id int64) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	// UpdateProfile changes the mutable profile fields and returns
	// the updated record. Email and type are immutable.
	UpdateProfile(id int64, name, company string) (*entity.User, error)
	Dashboard(userID int64) (DashboardCounts, error)
}
