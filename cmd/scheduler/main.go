package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/example/practice-scheduler/internal/application"
	"github.com/example/practice-scheduler/internal/calendarview"
	"github.com/example/practice-scheduler/internal/config"
	httptransport "github.com/example/practice-scheduler/internal/http"
	"github.com/example/practice-scheduler/internal/logging"
	"github.com/example/practice-scheduler/internal/persistence/sqlite"
	"github.com/example/practice-scheduler/internal/retention"
)

func main() {
	// A missing .env file is fine; environment variables win either way.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(os.Stdout, cfg.LogLevel)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storage, err := sqlite.Open(cfg.SQLiteDSN)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := storage.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	if err := storage.Migrate(context.Background()); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	now := time.Now
	views := application.NewViewCache(cfg.ViewCacheTTL, 0, now)
	window := calendarview.Window{
		StartHour:   cfg.DayStartHour,
		EndHour:     cfg.DayEndHour,
		SlotMinutes: cfg.SlotMinutes,
	}

	seriesService := application.NewSeriesService(storage, storage, views, uuid.NewString, now, logger)
	calendarService := application.NewCalendarService(storage, storage, views, window, now, logger)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Series:   httptransport.NewSeriesHandler(seriesService, logger),
		Sessions: httptransport.NewSessionHandler(seriesService, logger),
		Calendar: httptransport.NewCalendarHandler(calendarService, now, logger),
		Health:   httptransport.NewHealthHandler(storage, logger),
		Middleware: []func(http.Handler) http.Handler{
			httptransport.RequestLogger(logger),
		},
	})

	pruner := retention.NewJob(storage, views, cfg.RetentionDays, now, logger)
	runner := cron.New()
	if cfg.RetentionDays > 0 {
		if err := pruner.Schedule(runner); err != nil {
			logger.Error("failed to schedule retention job", "error", err)
			os.Exit(1)
		}
		runner.Start()
		defer runner.Stop()
		logger.Info("retention job scheduled", "days", cfg.RetentionDays)
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("practice scheduler listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}
