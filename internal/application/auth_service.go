package application

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/jb-laurans/dockitback/internal/domain/entity"
	repo "github.com/jb-laurans/dockitback/internal/domain/repository"
	"github.com/jb-laurans/dockitback/pkg/helpers"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

const dashboardCacheTTL = 30 * time.Second

type AuthService struct {
	Users  repo.UserRepository
	JWT    *helpers.JWTManager
	Redis  *redis.Client
	Logger *logrus.Logger
}

func NewAuthService(users repo.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, JWT: jwt, Redis: rdb, Logger: logger}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Type     entity.UserType
	Company  string
}

// Register hashes the password and creates the account. A duplicate
// email surfaces from the users table's unique index, not from a
// lookup beforehand.
func (s *AuthService) Register(in RegisterInput) (*entity.User, error) {
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hash,
		Type:     in.Type,
		Company:  in.Company,
	}
	if err := s.Users.Create(u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

// Login validates the credentials. Unknown email and wrong password
// both come back as ErrInvalidCredentials; storage failures propagate
// so they are not mistaken for a bad login.
func (s *AuthService) Login(email, password string) (*entity.User, error) {
	u, err := s.Users.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *AuthService) IssueToken(u *entity.User) (string, time.Time, error) {
	token, exp, err := s.JWT.Generate(u.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate token failed")
		}
		return "", time.Time{}, err
	}
	return token, exp, nil
}

func (s *AuthService) UpdateProfile(userID int64, name, company string) (*entity.User, error) {
	u, err := s.Users.UpdateProfile(userID, name, company)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func dashboardKey(userID int64) string {
	return "dashboard:shipowner:" + strconv.FormatInt(userID, 10)
}

// Dashboard returns the owner's ship and match counts, cached briefly
// in Redis so a dashboard poll does not hammer postgres.
func (s *AuthService) Dashboard(ctx context.Context, userID int64) (repo.DashboardCounts, error) {
	key := dashboardKey(userID)
	if s.Redis != nil {
		var cached repo.DashboardCounts
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	counts, err := s.Users.Dashboard(userID)
	if err != nil {
		return repo.DashboardCounts{}, err
	}

	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, key, counts, dashboardCacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("key", key).Warn("dashboard cache write failed")
		}
	}
	return counts, nil
}
