package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jb-laurans/dockitback/internal/domain/entity"
	repo "github.com/jb-laurans/dockitback/internal/domain/repository"
	"github.com/jb-laurans/dockitback/internal/infrastructure/memory"
	"github.com/jb-laurans/dockitback/pkg/helpers"
)

func newAuthService() (*AuthService, *memory.Store) {
	store := memory.NewStore()
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	return NewAuthService(store.Users(), jwt, nil, quietLogger()), store
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, _ := newAuthService()

	u, err := svc.Register(RegisterInput{
		Name: "Sarah", Email: "sarah@example.com", Password: "secret-password",
		Type: entity.UserShipowner, Company: "Pioneer Shipping",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.Password == "secret-password" {
		t.Fatal("password stored in plain text")
	}
	if !helpers.CompareHashAndPassword(u.Password, "secret-password") {
		t.Error("stored hash does not verify against the password")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService()

	in := RegisterInput{Name: "a", Email: "dup@example.com", Password: "pass123", Type: entity.UserCharterer}
	if _, err := svc.Register(in); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if _, err := svc.Register(in); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthService()
	if _, err := svc.Register(RegisterInput{Name: "a", Email: "a@example.com", Password: "pass123", Type: entity.UserCharterer}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := svc.Login("a@example.com", "pass123"); err != nil {
		t.Errorf("valid login failed: %v", err)
	}
	if _, err := svc.Login("a@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	// Unknown email looks exactly like a wrong password.
	if _, err := svc.Login("nobody@example.com", "pass123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
}

// brokenUsers fails every email lookup the way a dead connection would.
type brokenUsers struct {
	repo.UserRepository
	err error
}

func (b *brokenUsers) GetByEmail(string) (*entity.User, error) { return nil, b.err }

func TestLoginStorageErrorIsNotBadCredentials(t *testing.T) {
	boom := errors.New("connection reset by peer")
	svc := NewAuthService(&brokenUsers{err: boom}, helpers.NewJWTManager("test-secret", time.Hour), nil, quietLogger())

	_, err := svc.Login("a@example.com", "pass123")
	if errors.Is(err, ErrInvalidCredentials) {
		t.Fatal("storage failure must not surface as invalid credentials")
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected the storage error to propagate, got %v", err)
	}
}

func TestDashboardWithoutRedis(t *testing.T) {
	svc, store := newAuthService()

	owner, err := svc.Register(RegisterInput{Name: "o", Email: "o@example.com", Password: "pass123", Type: entity.UserShipowner})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	ship := &entity.Ship{Name: "V", Type: entity.ShipTanker, DWT: 50000, CurrentPort: "Oslo", Owner: "o", OwnerID: owner.ID}
	if err := store.Ships().Create(ship); err != nil {
		t.Fatalf("create ship: %v", err)
	}

	counts, err := svc.Dashboard(context.Background(), owner.ID)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if counts.Ships != 1 || counts.Matches != 0 {
		t.Errorf("got %+v", counts)
	}
}
