package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jb-laurans/dockitback/internal/domain/entity"
	"github.com/jb-laurans/dockitback/internal/domain/repository"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(u *entity.User) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password, type, company, verified)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, u.Name, u.Email, u.Password, u.Type, u.Company, u.Verified)

	return translate(row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt))
}

func (r *UserRepository) GetByID(id int64) (*entity.User, error) {
	return r.getBy(`WHERE id = $1`, id)
}

func (r *UserRepository) GetByEmail(email string) (*entity.User, error) {
	return r.getBy(`WHERE email = $1`, email)
}

func (r *UserRepository) getBy(where string, arg any) (*entity.User, error) {
	ctx := context.Background()
	u := &entity.User{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, name, email, password, type, company, verified, created_at, updated_at
		FROM users `+where, arg)

	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Type,
		&u.Company, &u.Verified, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, translate(err)
	}
	return u, nil
}

func (r *UserRepository) UpdateProfile(id int64, name, company string) (*entity.User, error) {
	ctx := context.Background()
	u := &entity.User{}

	row := r.pool.QueryRow(ctx, `
		UPDATE users
		SET name = $1, company = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING id, name, email, password, type, company, verified, created_at, updated_at
	`, name, company, id)

	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Type,
		&u.Company, &u.Verified, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, translate(err)
	}
	return u, nil
}

func (r *UserRepository) Dashboard(userID int64) (repository.DashboardCounts, error) {
	ctx := context.Background()
	var counts repository.DashboardCounts

	row := r.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM ships WHERE owner_id = $1),
			(SELECT COUNT(*) FROM matches WHERE user_id = $1)
	`, userID)

	if err := row.Scan(&counts.Ships, &counts.Matches); err != nil {
		return repository.DashboardCounts{}, translate(err)
	}
	return counts, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
