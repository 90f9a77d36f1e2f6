package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jb-laurans/dockitback/internal/domain/entity"
	"github.com/jb-laurans/dockitback/internal/domain/repository"
)

const cargoColumns = `id, commodity, quantity, loading_port, discharge_port,
	laycan_start, laycan_end, charterer, description, charterer_id,
	created_at, updated_at`

type CargoRepository struct {
	pool *pgxpool.Pool
}

func NewCargoRepository(pool *pgxpool.Pool) *CargoRepository {
	return &CargoRepository{pool: pool}
}

func (r *CargoRepository) Create(c *entity.Cargo) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO cargos (commodity, quantity, loading_port, discharge_port,
			laycan_start, laycan_end, charterer, description, charterer_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, c.Commodity, c.Quantity, c.LoadingPort, c.DischargePort,
		c.LaycanStart, c.LaycanEnd, c.Charterer, c.Description, c.ChartererID)

	return translate(row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt))
}

func (r *CargoRepository) GetByID(id int64) (*entity.Cargo, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `SELECT `+cargoColumns+` FROM cargos WHERE id = $1`, id)
	c, err := scanCargo(row)
	if err != nil {
		return nil, translate(err)
	}
	return c, nil
}

func (r *CargoRepository) List() ([]*entity.Cargo, error) {
	return r.list(`ORDER BY created_at DESC, id DESC`)
}

func (r *CargoRepository) ListByCharterer(chartererID int64) ([]*entity.Cargo, error) {
	return r.list(`WHERE charterer_id = $1 ORDER BY created_at DESC, id DESC`, chartererID)
}

func (r *CargoRepository) list(tail string, args ...any) ([]*entity.Cargo, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `SELECT `+cargoColumns+` FROM cargos `+tail, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	cargos := make([]*entity.Cargo, 0)
	for rows.Next() {
		c, err := scanCargo(rows)
		if err != nil {
			return nil, err
		}
		cargos = append(cargos, c)
	}
	return cargos, rows.Err()
}

func scanCargo(row pgx.Row) (*entity.Cargo, error) {
	c := &entity.Cargo{}
	if err := row.Scan(&c.ID, &c.Commodity, &c.Quantity, &c.LoadingPort,
		&c.DischargePort, &c.LaycanStart, &c.LaycanEnd, &c.Charterer,
		&c.Description, &c.ChartererID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

var _ repository.CargoRepository = (*CargoRepository)(nil)
