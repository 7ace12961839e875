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
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/pulse-inc/pulse/internal/infrastructure/config"
	"github.com/pulse-inc/pulse/internal/infrastructure/database"
	"github.com/pulse-inc/pulse/internal/infrastructure/migration"
	httpRouter "github.com/pulse-inc/pulse/internal/interfaces/http"
	"github.com/pulse-inc/pulse/internal/shared/biztime"
	"github.com/pulse-inc/pulse/internal/shared/goroutine"
	"github.com/pulse-inc/pulse/internal/shared/logger"
	"github.com/pulse-inc/pulse/internal/shared/version"
)

var (
	env         string
	configPath  string
	envFile     string
	skipMigrate bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the Pulse API server: Slack OAuth connect, exchange and status plus the dashboard endpoints.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "", "Environment (development, test, production); overrides ENV")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "Dotenv file loaded before configuration; missing files are ignored")
	cmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "Do not migrate the schema on startup")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg, err := config.Load(env, configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cfg.Server.Mode = mapEnvToGinMode(cfg.Server.Env)

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode == gin.DebugMode); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	// Missing credentials are fatal before anything listens.
	if err := cfg.Validate(); err != nil {
		log.Fatalw("invalid configuration", "error", err)
	}

	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	log.Infow("starting server",
		"environment", cfg.Server.Env,
		"version", version.Current(),
		"database_driver", cfg.Database.Driver,
		"state_backend", cfg.OAuth.State.Backend)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {}

	var db *gorm.DB
	if cfg.Database.Driver != database.DriverMemory {
		if err := database.Init(&cfg.Database); err != nil {
			log.Fatalw("failed to initialize database", "error", err)
		}
		defer func() {
			if err := database.Close(); err != nil {
				log.Errorw("failed to close database", "error", err)
			}
		}()
		db = database.Get()

		if !skipMigrate {
			if err := migration.NewManager(&cfg.Database).Migrate(db); err != nil {
				log.Fatalw("migration failed", "error", err)
			}
		}
	}

	container, err := httpRouter.NewContainer(db, cfg, log)
	if err != nil {
		log.Fatalw("failed to wire dependencies", "error", err)
	}
	defer container.Shutdown()
	container.SetupRoutes()

	srv := &http.Server{
		Addr:              cfg.Server.GetAddr(),
		Handler:           container.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		// Exchanges wait on Slack for up to the configured HTTP timeout.
		WriteTimeout: cfg.OAuth.Slack.HTTPTimeout() + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	served := goroutine.SafeGo(log, "http-server", func() {
		log.Infow("server listening", "address", cfg.Server.GetAddr(), "mode", cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serveErr:
		return fmt.Errorf("server failed: %w", err)
	}

	log.Infow("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}
	<-served

	log.Infow("server exited gracefully")
	return nil
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return gin.ReleaseMode
	case "test", "testing":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
