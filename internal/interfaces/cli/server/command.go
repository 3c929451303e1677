package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"labmanager/internal/infrastructure/migration"
	"labmanager/internal/infrastructure/repository"
	"labmanager/internal/interfaces/cli/bootstrap"
	httpRouter "labmanager/internal/interfaces/http"
	"labmanager/internal/shared/goroutine"
)

const defaultPurgeInterval = 10 * time.Minute

var (
	env                string
	configPath         string
	autoMigrate        bool
	skipMigrationCheck bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the labmanager HTTP API with the specified configuration.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Apply pending database migrations on startup")
	cmd.Flags().BoolVar(&skipMigrationCheck, "skip-migration-check", false, "Skip migration status check on startup")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	e, err := bootstrap.Load(env, configPath)
	if err != nil {
		return err
	}
	defer e.Close()
	log := e.Logger
	cfg := e.Config

	log.Infow("starting server",
		"environment", env,
		"database", cfg.Database.Driver,
		"session_store", cfg.Session.Store,
		"auto-migrate", autoMigrate)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := handleMigrations(ctx, e); err != nil {
		return fmt.Errorf("migration handling failed: %w", err)
	}

	container, err := httpRouter.NewContainer(e.DB, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}
	defer container.Shutdown()

	router := httpRouter.NewRouter(container)
	router.SetupRoutes()

	interval := cfg.Session.PurgeInterval
	if interval <= 0 {
		interval = defaultPurgeInterval
	}
	goroutine.Every(ctx, log, "session-purge", interval, container.PurgeExpired)

	srv := &http.Server{
		Addr:              cfg.Server.GetAddr(),
		Handler:           router.GetEngine(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	goroutine.SafeGo(log, "http-server", func() {
		log.Infow("server starting",
			"address", cfg.Server.GetAddr(),
			"mode", cfg.Server.Mode)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	})

	select {
	case err := <-serveErr:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	log.Infow("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}

// handleMigrations brings SQLite databases up to date unconditionally; MySQL
// schemas move only with --auto-migrate and are otherwise just reported.
func handleMigrations(ctx context.Context, e *bootstrap.Env) error {
	log := e.Logger
	manager := migration.NewManager(e.Config.Database.Driver)

	switch {
	case manager.Goose() == nil || autoMigrate:
		if autoMigrate && e.Name == "production" {
			log.Warnw("auto-migration is enabled in production environment - this is not recommended!")
		}
		if err := manager.Migrate(ctx, e.DB); err != nil {
			return err
		}
	case skipMigrationCheck:
		log.Infow("skipping migration check")
	default:
		version, err := manager.Goose().GetVersion(ctx, e.DB)
		if err != nil {
			log.Warnw("failed to check migration status", "error", err)
		} else {
			log.Infow("current migration version", "version", version)
		}
	}

	repo := repository.NewUserRepository(e.DB, log)
	return migration.SeedRoles(ctx, repo)
}
