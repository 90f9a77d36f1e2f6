package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/jb-laurans/dockitback/internal/domain/entity"
	repo "github.com/jb-laurans/dockitback/internal/domain/repository"
	"github.com/jb-laurans/dockitback/pkg/notify"
)

var (
	ErrAlreadyMatched = errors.New("ship already matched by this user")
	ErrMatchNotFound  = errors.New("match not found")
)

// EventPublisher is what MatchService needs from the queue. The
// RabbitMQ publisher satisfies it; tests plug in a recorder.
type EventPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

type MatchService struct {
	Matches   repo.MatchRepository
	Ships     repo.ShipRepository
	Users     repo.UserRepository
	Publisher EventPublisher
	Logger    *logrus.Logger
}

func NewMatchService(matches repo.MatchRepository, ships repo.ShipRepository, users repo.UserRepository, publisher EventPublisher, logger *logrus.Logger) *MatchService {
	return &MatchService{
		Matches:   matches,
		Ships:     ships,
		Users:     users,
		Publisher: publisher,
		Logger:    logger,
	}
}

// Create records the swipe. The (ship, user) pair is guarded by the
// unique constraint on matches, so a repeat swipe comes back as
// ErrAlreadyMatched without any read beforehand.
func (s *MatchService) Create(ctx context.Context, userID, shipID int64, cargoID *int64) (*entity.Match, error) {
	m := &entity.Match{ShipID: shipID, UserID: userID, CargoID: cargoID}
	if err := s.Matches.Create(m); err != nil {
		switch {
		case errors.Is(err, repo.ErrDuplicate):
			return nil, ErrAlreadyMatched
		case errors.Is(err, repo.ErrForeignKey):
			return nil, ErrShipNotFound
		}
		return nil, err
	}
	s.publishCreated(ctx, m)
	return m, nil
}

func (s *MatchService) ListMine(userID int64) ([]*entity.MatchWithShip, error) {
	return s.Matches.ListByUser(userID)
}

func (s *MatchService) UpdateStatus(id int64, status entity.MatchStatus) (*entity.Match, error) {
	m, err := s.Matches.UpdateStatus(id, status)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return m, nil
}

// publishCreated enqueues the notification event for the worker. A
// queue outage never fails the swipe.
func (s *MatchService) publishCreated(ctx context.Context, m *entity.Match) {
	if s.Publisher == nil {
		return
	}
	ship, err := s.Ships.GetByID(m.ShipID)
	if err != nil {
		return
	}
	owner, err := s.Users.GetByID(ship.OwnerID)
	if err != nil {
		return
	}
	interested, err := s.Users.GetByID(m.UserID)
	if err != nil {
		return
	}

	event := notify.MatchEvent{
		MatchID:           m.ID,
		ShipID:            ship.ID,
		ShipName:          ship.Name,
		OwnerName:         owner.Name,
		OwnerEmail:        owner.Email,
		InterestedName:    interested.Name,
		InterestedCompany: interested.Company,
		MatchedAt:         m.MatchedAt,
	}
	if err := s.Publisher.PublishJSON(ctx, event); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("match_id", m.ID).Warn("match event publish failed")
	}
}
