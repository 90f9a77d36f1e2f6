// Package memory provides an in-memory implementation of every
// repository interface. It backs handler and service tests, mirroring
// the error semantics of the postgres implementations (duplicate
// emails and match pairs, missing foreign keys).
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jb-laurans/dockitback/internal/domain/entity"
	"github.com/jb-laurans/dockitback/internal/domain/repository"
)

type Store struct {
	mu      sync.RWMutex
	nextID  int64
	users   map[int64]*entity.User
	ships   map[int64]*entity.Ship
	cargos  map[int64]*entity.Cargo
	matches map[int64]*entity.Match
}

func NewStore() *Store {
	return &Store{
		users:   make(map[int64]*entity.User),
		ships:   make(map[int64]*entity.Ship),
		cargos:  make(map[int64]*entity.Cargo),
		matches: make(map[int64]*entity.Match),
	}
}

// Repository views over the shared store.
func (s *Store) Users() repository.UserRepository    { return (*userRepo)(s) }
func (s *Store) Ships() repository.ShipRepository    { return (*shipRepo)(s) }
func (s *Store) Cargos() repository.CargoRepository  { return (*cargoRepo)(s) }
func (s *Store) Matches() repository.MatchRepository { return (*matchRepo)(s) }

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

// --- users ---

type userRepo Store

func (r *userRepo) Create(u *entity.User) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	u.ID = s.id()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (r *userRepo) GetByID(id int64) (*entity.User, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *userRepo) GetByEmail(email string) (*entity.User, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepo) UpdateProfile(id int64, name, company string) (*entity.User, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.Name = name
	u.Company = company
	u.UpdatedAt = time.Now()
	cp := *u
	return &cp, nil
}

func (r *userRepo) Dashboard(userID int64) (repository.DashboardCounts, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()

	var counts repository.DashboardCounts
	for _, sh := range s.ships {
		if sh.OwnerID == userID {
			counts.Ships++
		}
	}
	for _, m := range s.matches {
		if m.UserID == userID {
			counts.Matches++
		}
	}
	return counts, nil
}

// --- ships ---

type shipRepo Store

func (r *shipRepo) Create(ship *entity.Ship) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[ship.OwnerID]; !ok {
		return repository.ErrForeignKey
	}
	ship.ID = s.id()
	ship.CreatedAt = time.Now()
	ship.UpdatedAt = ship.CreatedAt
	if ship.Images == nil {
		ship.Images = []string{}
	}
	if ship.Specifications == nil {
		ship.Specifications = map[string]any{}
	}
	cp := *ship
	s.ships[ship.ID] = &cp
	return nil
}

func (r *shipRepo) GetByID(id int64) (*entity.Ship, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()

	ship, ok := s.ships[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *ship
	return &cp, nil
}

func (r *shipRepo) List(f repository.ShipFilters) ([]*entity.Ship, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entity.Ship, 0)
	for _, ship := range s.ships {
		if f.Type != "" && string(ship.Type) != f.Type {
			continue
		}
		if f.MinDWT > 0 && ship.DWT < f.MinDWT {
			continue
		}
		if f.MaxDWT > 0 && ship.DWT > f.MaxDWT {
			continue
		}
		if f.Port != "" && !strings.Contains(strings.ToLower(ship.CurrentPort), strings.ToLower(f.Port)) {
			continue
		}
		cp := *ship
		out = append(out, &cp)
	}
	sortNewestFirst(out, func(sh *entity.Ship) int64 { return sh.ID })
	return out, nil
}

func (r *shipRepo) ListByOwner(ownerID int64) ([]*entity.Ship, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entity.Ship, 0)
	for _, ship := range s.ships {
		if ship.OwnerID == ownerID {
			cp := *ship
			out = append(out, &cp)
		}
	}
	sortNewestFirst(out, func(sh *entity.Ship) int64 { return sh.ID })
	return out, nil
}

func (r *shipRepo) UpdateImages(id int64, images []string) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	ship, ok := s.ships[id]
	if !ok {
		return repository.ErrNotFound
	}
	ship.Images = append([]string(nil), images...)
	ship.UpdatedAt = time.Now()
	return nil
}

// --- cargos ---

type cargoRepo Store

func (r *cargoRepo) Create(c *entity.Cargo) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[c.ChartererID]; !ok {
		return repository.ErrForeignKey
	}
	c.ID = s.id()
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	cp := *c
	s.cargos[c.ID] = &cp
	return nil
}

func (r *cargoRepo) GetByID(id int64) (*entity.Cargo, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.cargos[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *cargoRepo) List() ([]*entity.Cargo, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entity.Cargo, 0, len(s.cargos))
	for _, c := range s.cargos {
		cp := *c
		out = append(out, &cp)
	}
	sortNewestFirst(out, func(c *entity.Cargo) int64 { return c.ID })
	return out, nil
}

func (r *cargoRepo) ListByCharterer(chartererID int64) ([]*entity.Cargo, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entity.Cargo, 0)
	for _, c := range s.cargos {
		if c.ChartererID == chartererID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sortNewestFirst(out, func(c *entity.Cargo) int64 { return c.ID })
	return out, nil
}

// --- matches ---

type matchRepo Store

func (r *matchRepo) Create(m *entity.Match) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ships[m.ShipID]; !ok {
		return repository.ErrForeignKey
	}
	for _, existing := range s.matches {
		if existing.ShipID == m.ShipID && existing.UserID == m.UserID {
			return repository.ErrDuplicate
		}
	}
	if m.Status == "" {
		m.Status = entity.MatchPending
	}
	m.ID = s.id()
	m.MatchedAt = time.Now()
	m.CreatedAt = m.MatchedAt
	m.UpdatedAt = m.MatchedAt
	cp := *m
	s.matches[m.ID] = &cp
	return nil
}

func (r *matchRepo) GetByID(id int64) (*entity.Match, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.matches[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *matchRepo) ListByUser(userID int64) ([]*entity.MatchWithShip, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entity.MatchWithShip, 0)
	for _, m := range s.matches {
		if m.UserID != userID {
			continue
		}
		ship, ok := s.ships[m.ShipID]
		if !ok {
			continue
		}
		out = append(out, &entity.MatchWithShip{
			Match: *m,
			Ship: entity.ShipSummary{
				Name:        ship.Name,
				Owner:       ship.Owner,
				Type:        ship.Type,
				DWT:         ship.DWT,
				CurrentPort: ship.CurrentPort,
				Images:      append([]string(nil), ship.Images...),
			},
		})
	}
	sortNewestFirst(out, func(m *entity.MatchWithShip) int64 { return m.ID })
	return out, nil
}

func (r *matchRepo) UpdateStatus(id int64, status entity.MatchStatus) (*entity.Match, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.matches[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	m.Status = status
	m.UpdatedAt = time.Now()
	cp := *m
	return &cp, nil
}

// sortNewestFirst orders by descending id, which tracks insertion
// order the way created_at DESC does in postgres.
func sortNewestFirst[T any](items []T, id func(T) int64) {
	sort.Slice(items, func(i, j int) bool { return id(items[i]) > id(items[j]) })
}

var (
	_ repository.UserRepository  = (*userRepo)(nil)
	_ repository.ShipRepository  = (*shipRepo)(nil)
	_ repository.CargoRepository = (*cargoRepo)(nil)
	_ repository.MatchRepository = (*matchRepo)(nil)
)
