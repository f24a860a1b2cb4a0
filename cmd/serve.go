package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"securewatch/internal/config"
	"securewatch/internal/handlers"
	"securewatch/internal/jobs"
	"securewatch/internal/logger"
	"securewatch/internal/models"
	"securewatch/internal/repository"
	"securewatch/internal/repository/db"
	"securewatch/internal/server"
	"securewatch/internal/service"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return serve(cmd.Context())
	},
}

func serve(parent context.Context) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// init logger
	log := logger.Init(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = log.Sync() }()

	// open DB
	conn, err := openDB(cfg.DB.Path, log)
	if err != nil {
		log.Errorw("failed to init sqlite", "err", err)
		return err
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// context for background goroutines and fix runs
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	// wire dependencies
	repos := repository.NewRepository(conn)
	services := service.NewService(ctx, repos, serviceConfig(cfg), log)
	apiHandler := handlers.NewHandler(services, log,
		handlers.WithSignInLimit(cfg.Auth.SignInRate, cfg.Auth.SignInBurst))

	// evict idle dialog sessions
	sweeperDone := make(chan struct{})
	go func() {
		defer close(sweeperDone)
		services.Sweeper.Run(ctx, cfg.Simulator.SweepInterval)
	}()

	// weekly digest
	digest, err := jobs.NewCron(cfg.Digest.Schedule, services.Digest, log)
	if err != nil {
		return err
	}
	digest.Start()
	log.Infow("digest_scheduled", "next", digest.Next())

	// start HTTP server
	srv := server.New(cfg.HTTP)
	errCh := make(chan error, 1)
	go func() {
		log.Infow("server_started", "port", cfg.HTTP.Port)
		errCh <- srv.Run(cfg.HTTP.Port, apiHandler.InitRoutes())
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil {
			log.Errorw("error starting server", "err", err)
			return err
		}
	case <-quit:
	case <-ctx.Done():
	}

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()
	<-sweeperDone

	// allow in-flight requests to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()

	digest.Stop(shutdownCtx)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
		return err
	}
	return nil
}

// openDB initializes the SQLite database at path.
func openDB(path string, log *logger.Logger) (*sql.DB, error) {
	log.Infow("opening sqlite", "path", path)
	conn, err := db.InitDB(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return conn, nil
}

func serviceConfig(cfg *config.Config) service.Config {
	return service.Config{
		SigningKey:    cfg.Auth.SigningKey,
		TokenTTL:      cfg.Auth.TokenTTL,
		SimulatorTick: cfg.Simulator.Tick,
		SessionTTL:    cfg.Dialogs.SessionTTL,
		DefaultSettings: models.Settings{
			OrganizationName:       cfg.Settings.OrganizationName,
			Timezone:               cfg.Settings.Timezone,
			IncidentPrefix:         cfg.Settings.IncidentPrefix,
			ConfidenceThreshold:    cfg.Settings.ConfidenceThreshold,
			AutoRefresh:            true,
			NotifyCritical:         true,
			NotifyAnalysisComplete: true,
		},
	}
}
