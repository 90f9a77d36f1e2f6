package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jb-laurans/dockitback/internal/domain/entity"
	"github.com/jb-laurans/dockitback/internal/domain/repository"
)

const shipColumns = `id, name, type, dwt, current_port, next_available_date,
	lat, lng, owner, images, specifications, rate_per_day, owner_id,
	created_at, updated_at`

type ShipRepository struct {
	pool *pgxpool.Pool
}

func NewShipRepository(pool *pgxpool.Pool) *ShipRepository {
	return &ShipRepository{pool: pool}
}

func (r *ShipRepository) Create(s *entity.Ship) error {
	ctx := context.Background()

	images, err := json.Marshal(orEmptyList(s.Images))
	if err != nil {
		return err
	}
	specs, err := json.Marshal(orEmptyObject(s.Specifications))
	if err != nil {
		return err
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO ships (name, type, dwt, current_port, next_available_date,
			lat, lng, owner, images, specifications, rate_per_day, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`, s.Name, s.Type, s.DWT, s.CurrentPort, s.NextAvailableDate,
		s.Lat, s.Lng, s.Owner, images, specs, s.RatePerDay, s.OwnerID)

	return translate(row.Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt))
}

func (r *ShipRepository) GetByID(id int64) (*entity.Ship, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `SELECT `+shipColumns+` FROM ships WHERE id = $1`, id)
	s, err := scanShip(row)
	if err != nil {
		return nil, translate(err)
	}
	return s, nil
}

// List applies each present filter as a conjunctive condition; absent
// filters add no condition at all. Results come back newest first.
func (r *ShipRepository) List(f repository.ShipFilters) ([]*entity.Ship, error) {
	ctx := context.Background()

	query := `SELECT ` + shipColumns + ` FROM ships`
	var conds []string
	var args []any

	if f.Type != "" {
		args = append(args, f.Type)
		conds = append(conds, fmt.Sprintf("type = $%d", len(args)))
	}
	if f.MinDWT > 0 {
		args = append(args, f.MinDWT)
		conds = append(conds, fmt.Sprintf("dwt >= $%d", len(args)))
	}
	if f.MaxDWT > 0 {
		args = append(args, f.MaxDWT)
		conds = append(conds, fmt.Sprintf("dwt <= $%d", len(args)))
	}
	if f.Port != "" {
		args = append(args, "%"+f.Port+"%")
		conds = append(conds, fmt.Sprintf("current_port ILIKE $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()
	return collectShips(rows)
}

func (r *ShipRepository) ListByOwner(ownerID int64) ([]*entity.Ship, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+shipColumns+` FROM ships
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC
	`, ownerID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()
	return collectShips(rows)
}

func (r *ShipRepository) UpdateImages(id int64, images []string) error {
	ctx := context.Background()
	b, err := json.Marshal(orEmptyList(images))
	if err != nil {
		return err
	}
	res, err := r.pool.Exec(ctx, `
		UPDATE ships SET images = $1, updated_at = NOW() WHERE id = $2
	`, b, id)
	if err != nil {
		return translate(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func collectShips(rows pgx.Rows) ([]*entity.Ship, error) {
	ships := make([]*entity.Ship, 0)
	for rows.Next() {
		s, err := scanShip(rows)
		if err != nil {
			return nil, err
		}
		ships = append(ships, s)
	}
	return ships, rows.Err()
}

func scanShip(row pgx.Row) (*entity.Ship, error) {
	s := &entity.Ship{}
	var images, specs []byte

	if err := row.Scan(&s.ID, &s.Name, &s.Type, &s.DWT, &s.CurrentPort,
		&s.NextAvailableDate, &s.Lat, &s.Lng, &s.Owner, &images, &specs,
		&s.RatePerDay, &s.OwnerID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(images, &s.Images); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(specs, &s.Specifications); err != nil {
		return nil, err
	}
	return s, nil
}

func orEmptyList(l []string) []string {
	if l == nil {
		return []string{}
	}
	return l
}

func orEmptyObject(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}

var _ repository.ShipRepository = (*ShipRepository)(nil)
