package application

import (
	"errors"

	"github.com/jb-laurans/dockitback/internal/domain/entity"
	repo "github.com/jb-laurans/dockitback/internal/domain/repository"
)

var ErrCargoNotFound = errors.New("cargo not found")

type CargoService struct {
	Cargos repo.CargoRepository
	Users  repo.UserRepository
}

func NewCargoService(cargos repo.CargoRepository, users repo.UserRepository) *CargoService {
	return &CargoService{Cargos: cargos, Users: users}
}

// Create posts a cargo under the charterer, denormalizing the
// charterer label the same way ships denormalize their owner.
func (s *CargoService) Create(chartererID int64, c *entity.Cargo) (*entity.Cargo, error) {
	charterer, err := s.Users.GetByID(chartererID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	c.ChartererID = charterer.ID
	c.Charterer = charterer.DisplayName()

	if err := s.Cargos.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CargoService) Get(id int64) (*entity.Cargo, error) {
	c, err := s.Cargos.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrCargoNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *CargoService) List() ([]*entity.Cargo, error) {
	return s.Cargos.List()
}

func (s *CargoService) MyCargos(chartererID int64) ([]*entity.Cargo, error) {
	return s.Cargos.ListByCharterer(chartererID)
}
