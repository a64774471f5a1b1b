package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.uber.org/zap"

	"github.com/arc-self/rustrak/internal/config"
	"github.com/arc-self/rustrak/internal/digest"
	"github.com/arc-self/rustrak/internal/digestqueue"
	"github.com/arc-self/rustrak/internal/dispatcher"
	"github.com/arc-self/rustrak/internal/handler"
	"github.com/arc-self/rustrak/internal/platform/natsclient"
	"github.com/arc-self/rustrak/internal/platform/telemetry"
	"github.com/arc-self/rustrak/internal/ratelimit"
	"github.com/arc-self/rustrak/internal/repository/db"
	"github.com/arc-self/rustrak/internal/spool"
)

func main() {
	var logger *zap.Logger
	if os.Getenv("RUSTRAK_ENV") == "dev" {
		logger, _ = zap.NewDevelopment()
	} else {
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("configuration error", zap.Error(err))
	}

	// --- OpenTelemetry ---
	if cfg.OTelEndpoint != "" {
		tp, err := telemetry.InitTracer(context.Background(), "rustrak", cfg.OTelEndpoint)
		if err != nil {
			logger.Error("failed to init OTel tracer", zap.Error(err))
		} else {
			defer tp.Shutdown(context.Background())
			logger.Info("OTel tracer initialized", zap.String("endpoint", cfg.OTelEndpoint))
		}

		mp, err := telemetry.InitMeterProvider(context.Background(), "rustrak", cfg.OTelEndpoint)
		if err != nil {
			logger.Error("failed to init OTel meter provider", zap.Error(err))
		} else {
			defer mp.Shutdown(context.Background())
			logger.Info("OTel meter provider initialized", zap.String("endpoint", cfg.OTelEndpoint))
		}
	}

	// --- Database ---
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to parse DATABASE_URL", zap.Error(err))
	}
	poolCfg.ConnConfig.Tracer = otelpgx.NewTracer()
	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()
	logger.Info("connected to database (OTel-instrumented)")

	querier := db.New(pool)

	// --- NATS JetStream ---
	natsClient, err := natsclient.NewClient(cfg.NatsURL, logger)
	if err != nil {
		logger.Fatal("NATS initialization failed", zap.Error(err))
	}
	defer natsClient.Close()
	if err := natsClient.ProvisionStream(); err != nil {
		logger.Fatal("NATS stream provisioning failed", zap.Error(err))
	}

	// --- Core pipeline ---
	rateLimit := ratelimit.New(querier,
		ratelimit.Config{PerMinute: cfg.Installation.PerMinute, PerHour: cfg.Installation.PerHour},
		ratelimit.Config{PerMinute: cfg.Project.PerMinute, PerHour: cfg.Project.PerHour},
	)
	store := spool.New(cfg.IngestDir)

	disp := dispatcher.New(pool, querier, cfg.DashboardURL,
		cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom, logger)

	worker := digest.New(pool, querier, rateLimit, store, disp, logger)
	queue := digestqueue.New(natsClient, store, logger)

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	if err := queue.Start(workerCtx, worker); err != nil {
		logger.Fatal("failed to start digest consumer", zap.Error(err))
	}
	if recovered, err := queue.SweepSpoolDir(workerCtx); err != nil {
		logger.Error("spool recovery sweep failed", zap.Error(err))
	} else if recovered > 0 {
		logger.Info("recovered stranded spool files", zap.Int("count", recovered))
	}

	sweeper := dispatcher.NewRetrySweeper(disp, logger)
	if err := sweeper.Start(workerCtx); err != nil {
		logger.Fatal("failed to start alert retry sweeper", zap.Error(err))
	}
	defer sweeper.Stop()

	// --- HTTP server ---
	e := echo.New()
	e.HideBanner = true
	e.Use(otelecho.Middleware("rustrak"))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("HTTP request", zap.String("uri", v.URI), zap.Int("status", v.Status))
			return nil
		},
	}))
	e.Use(middleware.Recover())

	handler.RegisterAll(e, querier, rateLimit, store, queue, disp, logger)

	go func() {
		addr := cfg.Host + ":" + cfg.Port
		logger.Info("rustrak HTTP server listening", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failure", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("initiating graceful shutdown")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	workerCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("echo shutdown error", zap.Error(err))
	}
	logger.Info("rustrak shut down cleanly")
}
