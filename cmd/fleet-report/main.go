// README: One-shot CLI printing the fleet summary or the driver report as JSON.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"fleetreport/internal/config"
	"fleetreport/internal/infra"
	"fleetreport/internal/logging"
	"fleetreport/internal/modules/analytics"
	"fleetreport/internal/modules/driver"
	"fleetreport/internal/modules/trip"
)

type options struct {
	Report      string
	TripsFile   string
	DriversFile string
}

func main() {
	var opts options
	flag.StringVar(&opts.Report, "report", "fleet", "Report to build: fleet or drivers")
	flag.StringVar(&opts.TripsFile, "trips", "", "JSON file of trips (default: read from Postgres)")
	flag.StringVar(&opts.DriversFile, "drivers", "", "JSON file of driver profiles keyed by id (default: read from Redis)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	// Logs go to stderr so stdout stays valid JSON.
	log := logging.NewWithWriter(os.Stderr, "fleet-report", cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out, err := run(ctx, cfg, opts, log)
	if err != nil {
		logging.Error(log, "fleet_report_failed", "report failed", err)
		os.Exit(1)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		os.Exit(1)
	}
}

var errNoSummary = errors.New("data is not available")

func run(ctx context.Context, cfg config.Config, opts options, log *slog.Logger) (any, error) {
	if opts.Report != "fleet" && opts.Report != "drivers" {
		return nil, fmt.Errorf("unknown report %q (want fleet or drivers)", opts.Report)
	}

	var source trip.Source
	if opts.TripsFile != "" {
		source = trip.NewFileSource(opts.TripsFile)
	} else {
		dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			return nil, err
		}
		defer dbPool.Close()
		source = trip.NewStore(dbPool)
	}
	trips := trip.NewService(source)

	if opts.Report == "drivers" {
		return analytics.NewReportService(trips, log).ComputeDriverReport(ctx)
	}

	var directory driver.Directory
	if opts.DriversFile != "" {
		files, err := driver.LoadFileDirectory(opts.DriversFile)
		if err != nil {
			return nil, err
		}
		directory = files
	} else {
		redisClient := infra.NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer redisClient.Close()
		directory = driver.NewStore(redisClient)
	}
	fleet := analytics.NewFleetService(trips, driver.NewService(directory), cfg.Report, log)
	summary := fleet.ComputeFleetAnalysis(ctx)
	if summary == nil {
		return nil, errNoSummary
	}
	return summary, nil
}
