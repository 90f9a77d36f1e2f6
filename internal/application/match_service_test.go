package application

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/jb-laurans/dockitback/internal/domain/entity"
	"github.com/jb-laurans/dockitback/internal/infrastructure/memory"
	"github.com/jb-laurans/dockitback/pkg/notify"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []notify.MatchEvent
	err    error
}

func (p *recordingPublisher) PublishJSON(_ context.Context, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	if e, ok := body.(notify.MatchEvent); ok {
		p.events = append(p.events, e)
	}
	return nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func matchFixture(t *testing.T) (*memory.Store, *entity.User, *entity.User, *entity.Ship) {
	t.Helper()
	store := memory.NewStore()

	owner := &entity.User{Name: "Sarah", Email: "sarah@example.com", Password: "h", Type: entity.UserShipowner, Company: "Pioneer Shipping"}
	if err := store.Users().Create(owner); err != nil {
		t.Fatalf("create owner: %v", err)
	}
	charterer := &entity.User{Name: "Marcus", Email: "marcus@example.com", Password: "h", Type: entity.UserCharterer, Company: "Grain Traders"}
	if err := store.Users().Create(charterer); err != nil {
		t.Fatalf("create charterer: %v", err)
	}
	ship := &entity.Ship{Name: "Ocean Pioneer", Type: entity.ShipBulkCarrier, DWT: 75000, CurrentPort: "Rotterdam", Owner: "Pioneer Shipping", OwnerID: owner.ID}
	if err := store.Ships().Create(ship); err != nil {
		t.Fatalf("create ship: %v", err)
	}
	return store, owner, charterer, ship
}

func TestMatchCreatePublishesEvent(t *testing.T) {
	store, owner, charterer, ship := matchFixture(t)
	pub := &recordingPublisher{}
	svc := NewMatchService(store.Matches(), store.Ships(), store.Users(), pub, quietLogger())

	m, err := svc.Create(context.Background(), charterer.ID, ship.ID, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if m.Status != entity.MatchPending {
		t.Errorf("expected pending, got %q", m.Status)
	}

	if len(pub.events) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(pub.events))
	}
	e := pub.events[0]
	if e.ShipName != "Ocean Pioneer" || e.OwnerEmail != owner.Email || e.InterestedName != charterer.Name {
		t.Errorf("event fields wrong: %+v", e)
	}
}

func TestMatchCreateDuplicate(t *testing.T) {
	store, _, charterer, ship := matchFixture(t)
	pub := &recordingPublisher{}
	svc := NewMatchService(store.Matches(), store.Ships(), store.Users(), pub, quietLogger())

	if _, err := svc.Create(context.Background(), charterer.ID, ship.ID, nil); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	if _, err := svc.Create(context.Background(), charterer.ID, ship.ID, nil); !errors.Is(err, ErrAlreadyMatched) {
		t.Fatalf("expected ErrAlreadyMatched, got %v", err)
	}
	if len(pub.events) != 1 {
		t.Errorf("duplicate attempt must not publish, got %d events", len(pub.events))
	}
}

func TestMatchCreateMissingShip(t *testing.T) {
	store, _, charterer, _ := matchFixture(t)
	svc := NewMatchService(store.Matches(), store.Ships(), store.Users(), nil, quietLogger())

	if _, err := svc.Create(context.Background(), charterer.ID, 999, nil); !errors.Is(err, ErrShipNotFound) {
		t.Fatalf("expected ErrShipNotFound, got %v", err)
	}
}

func TestMatchCreatePublishFailureIsNonFatal(t *testing.T) {
	store, _, charterer, ship := matchFixture(t)
	pub := &recordingPublisher{err: errors.New("broker down")}
	svc := NewMatchService(store.Matches(), store.Ships(), store.Users(), pub, quietLogger())

	if _, err := svc.Create(context.Background(), charterer.ID, ship.ID, nil); err != nil {
		t.Fatalf("Create must succeed when publishing fails, got %v", err)
	}
}

func TestMatchUpdateStatus(t *testing.T) {
	store, _, charterer, ship := matchFixture(t)
	svc := NewMatchService(store.Matches(), store.Ships(), store.Users(), nil, quietLogger())

	m, err := svc.Create(context.Background(), charterer.ID, ship.ID, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.UpdateStatus(m.ID, entity.MatchConfirmed)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Status != entity.MatchConfirmed {
		t.Errorf("expected confirmed, got %q", updated.Status)
	}

	if _, err := svc.UpdateStatus(999, entity.MatchAccepted); !errors.Is(err, ErrMatchNotFound) {
		t.Errorf("expected ErrMatchNotFound, got %v", err)
	}
}
