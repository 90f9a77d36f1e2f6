package memory

import (
	"errors"
	"testing"

	"github.com/jb-laurans/dockitback/internal/domain/entity"
	"github.com/jb-laurans/dockitback/internal/domain/repository"
)

func seedUser(t *testing.T, s *Store, email string, typ entity.UserType) *entity.User {
	t.Helper()
	u := &entity.User{Name: "user " + email, Email: email, Password: "hash", Type: typ}
	if err := s.Users().Create(u); err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return u
}

func seedShip(t *testing.T, s *Store, ownerID int64, name string, dwt int, port string) *entity.Ship {
	t.Helper()
	ship := &entity.Ship{
		Name:        name,
		Type:        entity.ShipBulkCarrier,
		DWT:         dwt,
		CurrentPort: port,
		Owner:       "Owner Co",
		OwnerID:     ownerID,
	}
	if err := s.Ships().Create(ship); err != nil {
		t.Fatalf("seed ship %s: %v", name, err)
	}
	return ship
}

func TestDuplicateEmail(t *testing.T) {
	s := NewStore()
	seedUser(t, s, "dup@example.com", entity.UserShipowner)

	err := s.Users().Create(&entity.User{Name: "other", Email: "dup@example.com", Password: "h", Type: entity.UserCharterer})
	if !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	// First account is unaffected.
	u, err := s.Users().GetByEmail("dup@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if u.Name != "user dup@example.com" {
		t.Errorf("first account was modified: %q", u.Name)
	}
}

func TestShipFilters(t *testing.T) {
	s := NewStore()
	owner := seedUser(t, s, "owner@example.com", entity.UserShipowner)
	seedShip(t, s, owner.ID, "Small", 75000, "Rotterdam")
	seedShip(t, s, owner.ID, "Medium", 95000, "Singapore")
	seedShip(t, s, owner.ID, "Large", 115000, "Rotterdam")

	ships, err := s.Ships().List(repository.ShipFilters{MinDWT: 80000})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(ships) != 2 {
		t.Fatalf("expected 2 ships >= 80000 dwt, got %d", len(ships))
	}
	for _, ship := range ships {
		if ship.DWT < 80000 {
			t.Errorf("ship %s has dwt %d below the filter", ship.Name, ship.DWT)
		}
	}

	ships, _ = s.Ships().List(repository.ShipFilters{Port: "rotter"})
	if len(ships) != 2 {
		t.Errorf("expected 2 ships in Rotterdam (substring, case-insensitive), got %d", len(ships))
	}

	ships, _ = s.Ships().List(repository.ShipFilters{MinDWT: 80000, MaxDWT: 100000})
	if len(ships) != 1 || ships[0].Name != "Medium" {
		t.Errorf("expected only Medium in the 80k-100k band, got %d ships", len(ships))
	}
}

func TestShipListNewestFirst(t *testing.T) {
	s := NewStore()
	owner := seedUser(t, s, "owner@example.com", entity.UserShipowner)
	seedShip(t, s, owner.ID, "First", 50000, "Hamburg")
	second := seedShip(t, s, owner.ID, "Second", 60000, "Hamburg")

	ships, err := s.Ships().List(repository.ShipFilters{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(ships) != 2 || ships[0].ID != second.ID {
		t.Errorf("expected newest ship first")
	}
}

func TestDuplicateMatch(t *testing.T) {
	s := NewStore()
	owner := seedUser(t, s, "owner@example.com", entity.UserShipowner)
	charterer := seedUser(t, s, "charterer@example.com", entity.UserCharterer)
	ship := seedShip(t, s, owner.ID, "Vessel", 80000, "Antwerp")

	if err := s.Matches().Create(&entity.Match{ShipID: ship.ID, UserID: charterer.ID}); err != nil {
		t.Fatalf("first match: %v", err)
	}

	err := s.Matches().Create(&entity.Match{ShipID: ship.ID, UserID: charterer.ID})
	if !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	matches, _ := s.Matches().ListByUser(charterer.ID)
	if len(matches) != 1 {
		t.Errorf("expected exactly 1 match row, got %d", len(matches))
	}
}

func TestMatchMissingShip(t *testing.T) {
	s := NewStore()
	charterer := seedUser(t, s, "charterer@example.com", entity.UserCharterer)

	err := s.Matches().Create(&entity.Match{ShipID: 999, UserID: charterer.ID})
	if !errors.Is(err, repository.ErrForeignKey) {
		t.Fatalf("expected ErrForeignKey, got %v", err)
	}
}

func TestMatchDefaultsToPending(t *testing.T) {
	s := NewStore()
	owner := seedUser(t, s, "owner@example.com", entity.UserShipowner)
	charterer := seedUser(t, s, "charterer@example.com", entity.UserCharterer)
	ship := seedShip(t, s, owner.ID, "Vessel", 80000, "Antwerp")

	m := &entity.Match{ShipID: ship.ID, UserID: charterer.ID}
	if err := s.Matches().Create(m); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if m.Status != entity.MatchPending {
		t.Errorf("expected pending status, got %q", m.Status)
	}
	if m.MatchedAt.IsZero() {
		t.Error("expected matched_at to be set")
	}
}

func TestListByUserJoinsShip(t *testing.T) {
	s := NewStore()
	owner := seedUser(t, s, "owner@example.com", entity.UserShipowner)
	charterer := seedUser(t, s, "charterer@example.com", entity.UserCharterer)
	ship := seedShip(t, s, owner.ID, "Joined", 90000, "Santos")

	if err := s.Matches().Create(&entity.Match{ShipID: ship.ID, UserID: charterer.ID}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	matches, err := s.Matches().ListByUser(charterer.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].Ship.Name != "Joined" || matches[0].Ship.CurrentPort != "Santos" {
		t.Errorf("ship summary not joined: %+v", matches[0].Ship)
	}
}

func TestUpdateStatus(t *testing.T) {
	s := NewStore()
	owner := seedUser(t, s, "owner@example.com", entity.UserShipowner)
	charterer := seedUser(t, s, "charterer@example.com", entity.UserCharterer)
	ship := seedShip(t, s, owner.ID, "Vessel", 80000, "Antwerp")

	m := &entity.Match{ShipID: ship.ID, UserID: charterer.ID}
	if err := s.Matches().Create(m); err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := s.Matches().UpdateStatus(m.ID, entity.MatchAccepted)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Status != entity.MatchAccepted {
		t.Errorf("expected accepted, got %q", updated.Status)
	}

	if _, err := s.Matches().UpdateStatus(999, entity.MatchAccepted); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing match, got %v", err)
	}
}

func TestDashboardCounts(t *testing.T) {
	s := NewStore()
	owner := seedUser(t, s, "owner@example.com", entity.UserShipowner)
	charterer := seedUser(t, s, "charterer@example.com", entity.UserCharterer)
	ship := seedShip(t, s, owner.ID, "Vessel", 80000, "Antwerp")
	seedShip(t, s, owner.ID, "Second", 85000, "Antwerp")

	if err := s.Matches().Create(&entity.Match{ShipID: ship.ID, UserID: charterer.ID}); err != nil {
		t.Fatalf("Create match: %v", err)
	}

	counts, err := s.Users().Dashboard(owner.ID)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if counts.Ships != 2 || counts.Matches != 0 {
		t.Errorf("owner counts: got %+v", counts)
	}

	counts, _ = s.Users().Dashboard(charterer.ID)
	if counts.Ships != 0 || counts.Matches != 1 {
		t.Errorf("charterer counts: got %+v", counts)
	}
}
