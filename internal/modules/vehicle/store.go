// README: Vehicle store backed by PostgreSQL.
package vehicle

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fleetreport/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Vehicle, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, COALESCE(driver_id, ''), plate, manufacturer, model, year
		FROM vehicles
		WHERE id = $1`, string(id),
	)
	var v Vehicle
	err := row.Scan(&v.ID, &v.DriverID, &v.Plate, &v.Manufacturer, &v.Model, &v.Year)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *Store) Upsert(ctx context.Context, v Vehicle) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO vehicles (id, driver_id, plate, manufacturer, model, year)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			driver_id = EXCLUDED.driver_id,
			plate = EXCLUDED.plate,
			manufacturer = EXCLUDED.manufacturer,
			model = EXCLUDED.model,
			year = EXCLUDED.year`,
		string(v.ID), string(v.DriverID), v.Plate, v.Manufacturer, v.Model, v.Year,
	)
	return err
}
