// README: Entry point; loads config, wires stores and services, starts the HTTP API.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"fleetreport/internal/ai"
	"fleetreport/internal/config"
	httptransport "fleetreport/internal/http"
	"fleetreport/internal/infra"
	"fleetreport/internal/logging"
	"fleetreport/internal/modules/analytics"
	"fleetreport/internal/modules/driver"
	"fleetreport/internal/modules/quota"
	"fleetreport/internal/modules/trip"
	"fleetreport/internal/modules/vehicle"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	log := logging.New("fleet-api", cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		logging.Error(log, "fleet_api_failed", "fleet api stopped with error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		return err
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer redisClient.Close()

	tripSvc := trip.NewService(trip.NewStore(dbPool))
	driverSvc := driver.NewService(driver.NewStore(redisClient))
	vehicleSvc := vehicle.NewService(vehicle.NewStore(dbPool))

	deps := httptransport.RouterDeps{
		Fleet:    analytics.NewFleetService(tripSvc, driverSvc, cfg.Report, log),
		Reports:  analytics.NewReportService(tripSvc, log),
		Drivers:  driverSvc,
		Vehicles: vehicleSvc,
		Quota:    quota.NewService(quota.NewStore(dbPool, cfg.AI.MonthlyTokens)),
		Log:      log,
	}

	if cfg.Firebase.ProjectID != "" {
		verifier, err := infra.NewFirebaseVerifier(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
		if err != nil {
			return err
		}
		deps.Verifier = verifier
	} else {
		log.Warn("FLEET_FIREBASE_PROJECT_ID not set; API is unauthenticated", "action", "auth_disabled")
	}

	if cfg.AI.GeminiKey != "" {
		narrator, err := ai.NewGeminiNarrator(ctx, cfg.AI.GeminiKey)
		if err != nil {
			return err
		}
		defer narrator.Close()
		deps.Narrator = narrator
	}

	if cfg.AMQP.URL != "" {
		publisher, err := infra.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			// Reports still work without events.
			logging.Error(log, "amqp_connect_failed", "report events disabled", err)
		} else {
			defer publisher.Close()
			deps.Events = publisher
		}
	}

	gin.SetMode(gin.ReleaseMode)
	server := httptransport.NewServer(cfg.HTTP.Addr, httptransport.NewRouter(deps), log)
	return server.Run(ctx)
}
