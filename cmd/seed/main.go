// README: Loads trip, driver and vehicle fixtures into Postgres and Redis.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"fleetreport/internal/config"
	"fleetreport/internal/infra"
	"fleetreport/internal/logging"
	"fleetreport/internal/modules/driver"
	"fleetreport/internal/modules/trip"
	"fleetreport/internal/modules/vehicle"
)

type seedConfig struct {
	TripsFile    string
	DriversFile  string
	VehiclesFile string
	Truncate     bool
	Timeout      time.Duration
}

func main() {
	var sc seedConfig
	flag.StringVar(&sc.TripsFile, "trips", envOrDefault("FLEET_SEED_TRIPS", "fixtures/trips.json"), "Trips fixture (JSON array)")
	flag.StringVar(&sc.DriversFile, "drivers", envOrDefault("FLEET_SEED_DRIVERS", "fixtures/drivers.json"), "Driver profiles fixture (JSON object keyed by id)")
	flag.StringVar(&sc.VehiclesFile, "vehicles", envOrDefault("FLEET_SEED_VEHICLES", "fixtures/vehicles.json"), "Vehicles fixture (JSON array)")
	flag.BoolVar(&sc.Truncate, "truncate", false, "Empty the trips table before loading")
	flag.DurationVar(&sc.Timeout, "timeout", 60*time.Second, "Total timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log := logging.New("fleet-seed", cfg.Log.Level)

	ctx, cancel := context.WithTimeout(context.Background(), sc.Timeout)
	defer cancel()

	if err := seed(ctx, cfg, sc); err != nil {
		logging.Error(log, "seed_failed", "seeding failed", err)
		os.Exit(1)
	}
	logging.Info(log, "seed_done", "fixtures loaded", "trips", sc.TripsFile, "drivers", sc.DriversFile, "vehicles", sc.VehiclesFile)
}

func seed(ctx context.Context, cfg config.Config, sc seedConfig) error {
	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		return err
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer redisClient.Close()

	if sc.Truncate {
		if _, err := dbPool.Exec(ctx, "TRUNCATE TABLE trips RESTART IDENTITY"); err != nil {
			return fmt.Errorf("truncate trips: %w", err)
		}
	}

	trips, err := trip.NewFileSource(sc.TripsFile).ListAll(ctx)
	if err != nil {
		return err
	}
	tripStore := trip.NewStore(dbPool)
	for i, r := range trips {
		if err := tripStore.Insert(ctx, r); err != nil {
			return fmt.Errorf("insert trip %d: %w", i, err)
		}
	}

	drivers, err := driver.LoadFileDirectory(sc.DriversFile)
	if err != nil {
		return err
	}
	driverStore := driver.NewStore(redisClient)
	for id, info := range drivers.All() {
		if err := driverStore.Put(ctx, id, info); err != nil {
			return fmt.Errorf("put driver %s: %w", id, err)
		}
	}

	vehicles, err := readVehicles(sc.VehiclesFile)
	if err != nil {
		return err
	}
	vehicleStore := vehicle.NewStore(dbPool)
	for _, v := range vehicles {
		if err := vehicleStore.Upsert(ctx, v); err != nil {
			return fmt.Errorf("upsert vehicle %s: %w", v.ID, err)
		}
	}
	return nil
}

func readVehicles(path string) ([]vehicle.Vehicle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out []vehicle.Vehicle
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return out, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
