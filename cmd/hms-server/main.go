package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/medicore/hms/internal/config"
	"github.com/medicore/hms/internal/domain/appointment"
	"github.com/medicore/hms/internal/domain/bed"
	"github.com/medicore/hms/internal/domain/dashboard"
	"github.com/medicore/hms/internal/domain/doctor"
	"github.com/medicore/hms/internal/domain/patient"
	"github.com/medicore/hms/internal/domain/visit"
	"github.com/medicore/hms/internal/platform/auth"
	"github.com/medicore/hms/internal/platform/middleware"
	"github.com/medicore/hms/internal/platform/notification"
	"github.com/medicore/hms/internal/platform/recordstore"
	"github.com/medicore/hms/internal/platform/sandbox"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hms-server",
		Short: "Hospital administration API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write synthetic demo data to the configured record store",
		RunE: func(cmd *cobra.Command, args []string) error {
			patients, _ := cmd.Flags().GetInt("patients")
			seed, _ := cmd.Flags().GetInt64("seed")

			logger := newLogger()
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			client := newStoreClient(cfg, logger)
			feed := notification.NewFeed()
			seedCfg := sandbox.DefaultSeedConfig()
			if patients > 0 {
				seedCfg.PatientCount = patients
			}
			seedCfg.Seed = seed

			seeder := sandbox.NewSeeder(
				patient.NewService(client, feed, logger),
				doctor.NewService(client, feed, logger),
				appointment.NewService(client, feed, logger),
				bed.NewService(client, feed, logger),
				visit.NewService(client, feed, logger),
				seedCfg.Seed,
				logger,
			)
			result := seeder.Seed(context.Background(), seedCfg)
			return json.NewEncoder(os.Stdout).Encode(result)
		},
	}
	cmd.Flags().Int("patients", 0, "Number of patients to generate (0 uses the default)")
	cmd.Flags().Int64("seed", 0, "Random seed for reproducible data (0 uses the clock)")
	return cmd
}

func newLogger() zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" || os.Getenv("ENV") == "" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return logger
}

// newStoreClient selects the record-store backend: the remote platform
// over HTTP, or the in-memory store for development and demos.
func newStoreClient(cfg *config.Config, logger zerolog.Logger) recordstore.Client {
	if cfg.StoreDriver == config.StoreDriverMemory {
		logger.Info().Msg("using in-memory record store")
		return recordstore.NewMemoryStore()
	}
	logger.Info().Str("url", cfg.StoreURL).Msg("using platform record store")
	return recordstore.NewHTTPClient(cfg.StoreURL, cfg.StoreAPIKey, cfg.StoreRequestTimeout(), logger)
}

func runServer() error {
	logger := newLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	client := newStoreClient(cfg, logger)
	feed := notification.NewFeed()

	patientSvc := patient.NewService(client, feed, logger)
	doctorSvc := doctor.NewService(client, feed, logger)
	appointmentSvc := appointment.NewService(client, feed, logger)
	bedSvc := bed.NewService(client, feed, logger)
	visitSvc := visit.NewService(client, feed, logger)
	dashboardSvc := dashboard.NewService(patientSvc, appointmentSvc, bedSvc, visitSvc, logger)

	// A fresh in-memory store starts empty; seed it so the dashboard has
	// something to show.
	if cfg.StoreDriver == config.StoreDriverMemory {
		seeder := sandbox.NewSeeder(patientSvc, doctorSvc, appointmentSvc, bedSvc, visitSvc, 0, logger)
		seeder.Seed(context.Background(), sandbox.DefaultSeedConfig())
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	if cfg.IsDev() {
		e.Use(auth.DevAuthMiddleware())
	} else {
		e.Use(auth.JWTMiddleware(auth.JWTConfig{
			Secret:   []byte(cfg.JWTSecret),
			Issuer:   cfg.JWTIssuer,
			Audience: cfg.JWTAudience,
		}))
	}

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})

	apiV1 := e.Group("/api/v1")
	patient.NewHandler(patientSvc).RegisterRoutes(apiV1)
	doctor.NewHandler(doctorSvc).RegisterRoutes(apiV1)
	appointment.NewHandler(appointmentSvc).RegisterRoutes(apiV1)
	bed.NewHandler(bedSvc).RegisterRoutes(apiV1)
	visit.NewHandler(visitSvc).RegisterRoutes(apiV1)
	dashboard.NewHandler(dashboardSvc).RegisterRoutes(apiV1)
	notification.NewHandler(feed).RegisterRoutes(apiV1)

	// Graceful shutdown
	addr := ":" + cfg.Port
	go func() {
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
