// README: Trip store backed by PostgreSQL; is_cash and billed_amount are JSONB so the upstream encoding survives.
package trip

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// ListAll returns every trip in insertion order.
func (s *Store) ListAll(ctx context.Context) ([]Record, error) {
	rows, err := s.db.Query(ctx, `
		SELECT driver_id, is_cash, billed_amount,
		       COALESCE(driver_name, ''), COALESCE(driver_email, ''), COALESCE(driver_phone, ''),
		       COALESCE(user_name, ''), COALESCE(date_created, ''),
		       COALESCE(pickup_address, ''), COALESCE(destination_address, ''),
		       COALESCE(vehicle_plate, ''), COALESCE(vehicle_manufacturer, '')
		FROM trips
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		var isCash, billed []byte
		if err := rows.Scan(
			&r.DriverID, &isCash, &billed,
			&r.DriverName, &r.DriverEmail, &r.DriverPhone,
			&r.UserName, &r.DateCreated,
			&r.PickupAddress, &r.DestinationAddress,
			&r.VehiclePlate, &r.VehicleManufacturer,
		); err != nil {
			return nil, err
		}
		if err := r.setCash(isCash); err != nil {
			return nil, fmt.Errorf("decode is_cash for driver %s: %w", r.DriverID, err)
		}
		if len(billed) > 0 {
			if err := json.Unmarshal(billed, &r.BilledAmount); err != nil {
				return nil, fmt.Errorf("decode billed_amount for driver %s: %w", r.DriverID, err)
			}
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) Insert(ctx context.Context, r Record) error {
	isCash, err := jsonbOrNull(r.CashValue())
	if err != nil {
		return err
	}
	billed, err := jsonbOrNull(r.BilledAmount)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO trips (
			driver_id, is_cash, billed_amount,
			driver_name, driver_email, driver_phone,
			user_name, date_created, pickup_address, destination_address,
			vehicle_plate, vehicle_manufacturer
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		string(r.DriverID), isCash, billed,
		r.DriverName, r.DriverEmail, r.DriverPhone,
		r.UserName, r.DateCreated, r.PickupAddress, r.DestinationAddress,
		r.VehiclePlate, r.VehicleManufacturer,
	)
	return err
}

// jsonbOrNull encodes v for a JSONB column; nil becomes SQL NULL.
func jsonbOrNull(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}
