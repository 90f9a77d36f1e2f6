package repository

import "github.com/jb-laurans/dockitback/internal/domain/entity"

// CargoRepository defines the persistence operations for shipment
// listings. Listings are returned newest first.
type CargoRepository interface {
	Create(c *entity.Cargo) error
	GetByID(id int64) (*entity.Cargo, error)
	List() ([]*entity.Cargo, error)
	ListByCharterer(chartererID int64) ([]*entity.Cargo, error)
}
