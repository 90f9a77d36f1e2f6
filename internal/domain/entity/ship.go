package entity

import "time"

// ShipType enumerates the vessel categories a listing can carry.
type ShipType string

const (
	ShipBulkCarrier  ShipType = "bulk_carrier"
	ShipContainer    ShipType = "container"
	ShipTanker       ShipType = "tanker"
	ShipGeneralCargo ShipType = "general_cargo"
)

// Valid reports whether t is one of the recognized vessel categories.
func (t ShipType) Valid() bool {
	switch t {
	case ShipBulkCarrier, ShipContainer, ShipTanker, ShipGeneralCargo:
		return true
	}
	return false
}

// Ship is a vessel listing created by a shipowner.
// Images and Specifications are stored as JSONB columns.
type Ship struct {
	ID                int64
	Name              string
	Type              ShipType
	DWT               int
	CurrentPort       string
	NextAvailableDate time.Time
	Lat               float64
	Lng               float64
	Owner             string // display name of the owning company
	Images            []string
	Specifications    map[string]any
	RatePerDay        *int
	OwnerID           int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
