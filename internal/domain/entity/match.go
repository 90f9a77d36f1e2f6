package entity

import "time"

// MatchStatus is the workflow state of a match. The usual progression
// is pending -> accepted -> negotiating -> confirmed, but any of the
// four values may be set from any other so parties can roll a deal
// back during negotiation.
type MatchStatus string

const (
	MatchPending     MatchStatus = "pending"
	MatchAccepted    MatchStatus = "accepted"
	MatchNegotiating MatchStatus = "negotiating"
	MatchConfirmed   MatchStatus = "confirmed"
)

// Valid reports whether s is one of the recognized statuses.
func (s MatchStatus) Valid() bool {
	switch s {
	case MatchPending, MatchAccepted, MatchNegotiating, MatchConfirmed:
		return true
	}
	return false
}

// Match records a user's interest in a ship, optionally tied to a
// cargo. At most one match may exist per (ship, user) pair; the
// uniqueness is enforced by the storage layer.
type Match struct {
	ID        int64
	ShipID    int64
	UserID    int64
	CargoID   *int64
	Status    MatchStatus
	MatchedAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ShipSummary is the slice of ship data embedded in match listings.
type ShipSummary struct {
	Name        string
	Owner       string
	Type        ShipType
	DWT         int
	CurrentPort string
	Images      []string
}

// MatchWithShip is a match joined with a summary of its ship, as
// returned by the "my matches" listing.
type MatchWithShip struct {
	Match
	Ship ShipSummary
}
