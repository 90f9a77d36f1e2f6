package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jb-laurans/dockitback/internal/domain/entity"
	"github.com/jb-laurans/dockitback/internal/domain/repository"
)

const matchColumns = `id, ship_id, user_id, cargo_id, status, matched_at, created_at, updated_at`

type MatchRepository struct {
	pool *pgxpool.Pool
}

func NewMatchRepository(pool *pgxpool.Pool) *MatchRepository {
	return &MatchRepository{pool: pool}
}

// Create inserts the match in a single statement. Duplicate (ship,
// user) pairs surface as the UNIQUE constraint violation and come
// back as repository.ErrDuplicate, so there is no window between a
// check and the insert.
func (r *MatchRepository) Create(m *entity.Match) error {
	ctx := context.Background()
	if m.Status == "" {
		m.Status = entity.MatchPending
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO matches (ship_id, user_id, cargo_id, status, matched_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, matched_at, created_at, updated_at
	`, m.ShipID, m.UserID, m.CargoID, m.Status)

	return translate(row.Scan(&m.ID, &m.MatchedAt, &m.CreatedAt, &m.UpdatedAt))
}

func (r *MatchRepository) GetByID(id int64) (*entity.Match, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `SELECT `+matchColumns+` FROM matches WHERE id = $1`, id)
	m, err := scanMatch(row)
	if err != nil {
		return nil, translate(err)
	}
	return m, nil
}

func (r *MatchRepository) ListByUser(userID int64) ([]*entity.MatchWithShip, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT m.id, m.ship_id, m.user_id, m.cargo_id, m.status,
			m.matched_at, m.created_at, m.updated_at,
			s.name, s.owner, s.type, s.dwt, s.current_port, s.images
		FROM matches m
		JOIN ships s ON m.ship_id = s.id
		WHERE m.user_id = $1
		ORDER BY m.matched_at DESC, m.id DESC
	`, userID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	matches := make([]*entity.MatchWithShip, 0)
	for rows.Next() {
		mw := &entity.MatchWithShip{}
		var images []byte
		if err := rows.Scan(&mw.ID, &mw.ShipID, &mw.UserID, &mw.CargoID,
			&mw.Status, &mw.MatchedAt, &mw.CreatedAt, &mw.UpdatedAt,
			&mw.Ship.Name, &mw.Ship.Owner, &mw.Ship.Type, &mw.Ship.DWT,
			&mw.Ship.CurrentPort, &images); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(images, &mw.Ship.Images); err != nil {
			return nil, err
		}
		matches = append(matches, mw)
	}
	return matches, rows.Err()
}

func (r *MatchRepository) UpdateStatus(id int64, status entity.MatchStatus) (*entity.Match, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		UPDATE matches
		SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+matchColumns, status, id)

	m, err := scanMatch(row)
	if err != nil {
		return nil, translate(err)
	}
	return m, nil
}

func scanMatch(row pgx.Row) (*entity.Match, error) {
	m := &entity.Match{}
	if err := row.Scan(&m.ID, &m.ShipID, &m.UserID, &m.CargoID, &m.Status,
		&m.MatchedAt, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return m, nil
}

var _ repository.MatchRepository = (*MatchRepository)(nil)
