package repository

import "github.com/jb-laurans/dockitback/internal/domain/entity"

// ShipFilters narrows a ship listing query. Zero values mean the
// filter is absent and no condition is applied for it.
type ShipFilters struct {
	Type   string
	MinDWT int
	MaxDWT int
	Port   string // substring match on the current port
}

// ShipRepository defines the persistence operations for vessel
// listings. Listings are returned newest first.
type ShipRepository interface {
	Create(s *entity.Ship) error
	GetByID(id int64) (*entity.Ship, error)
	List(f ShipFilters) ([]*entity.Ship, error)
	ListByOwner(ownerID int64) ([]*entity.Ship, error)
	// UpdateImages replaces the ordered image URL list of a ship.
	UpdateImages(id int64, images []string) error
}
