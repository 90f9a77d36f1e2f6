package entity

import "time"

// UserType distinguishes the two sides of the marketplace.
type UserType string

const (
	UserCharterer UserType = "charterer"
	UserShipowner UserType = "shipowner"
)

// Valid reports whether t is one of the recognized account types.
func (t UserType) Valid() bool {
	return t == UserCharterer || t == UserShipowner
}

// User is the aggregate root for accounts.
// Password holds the bcrypt hash and is never serialized to clients.
type User struct {
	ID        int64
	Name      string
	Email     string
	Password  string
	Type      UserType
	Company   string
	Verified  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayName is the name shown on listings owned by the user:
// the company when set, the personal name otherwise.
func (u *User) DisplayName() string {
	if u.Company != "" {
		return u.Company
	}
	return u.Name
}
