// Package main is the entry point for the Plann.er API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/pkordes/planner/internal/config"
	"github.com/pkordes/planner/internal/handler"
	"github.com/pkordes/planner/internal/job"
	"github.com/pkordes/planner/internal/locale"
	"github.com/pkordes/planner/internal/logger"
	"github.com/pkordes/planner/internal/mail"
	"github.com/pkordes/planner/internal/middleware"
	"github.com/pkordes/planner/internal/notify"
	"github.com/pkordes/planner/internal/repo"
	"github.com/pkordes/planner/internal/service"
	"github.com/pkordes/planner/migrations"
)

func main() {
	// --- Config -----------------------------------------------------------
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("could not read .env", "error", err)
	}
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	log := logger.New(cfg.LogLevel, os.Stdout)
	slog.SetDefault(log)

	// --- Database ---------------------------------------------------------
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	if cfg.MigrateOnStart {
		db := stdlib.OpenDBFromPool(pool)
		results, err := migrations.Up(context.Background(), db)
		db.Close()
		if err != nil {
			slog.Error("failed to apply migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("migrations applied", "count", len(results))
	}

	// --- Notifications ----------------------------------------------------
	notifier, closeNotifier, err := newNotifier(cfg, log)
	if err != nil {
		slog.Error("failed to configure notifications", "error", err)
		os.Exit(1)
	}
	defer closeNotifier()

	confirmations := notify.NewConfirmations(notify.Options{
		From:    mail.Address{Name: cfg.Mail.FromName, Address: cfg.Mail.FromAddress},
		BaseURL: cfg.PublicBaseURL,
		Locale:  locale.Parse(cfg.Mail.Locale),
	}, notifier)

	// --- Services ---------------------------------------------------------
	trips := service.NewTripService(repo.NewTripRepo(pool), confirmations, log)
	api := handler.NewServer(trips, log)

	// --- Router -----------------------------------------------------------
	// Order: RequestID → RealIP → Logger → Recoverer → CORS → body limit.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	r.Mount("/", api.Routes())

	// --- HTTP Server ------------------------------------------------------
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second, // inline SMTP delivery happens inside the request
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "notify_mode", cfg.Notify.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// newNotifier returns the Notifier selected by NOTIFY_MODE and a func that
// releases its resources.
func newNotifier(cfg config.Config, log *slog.Logger) (notify.Notifier, func(), error) {
	if cfg.Notify.Mode == config.NotifyQueue {
		client := job.NewClient(cfg.Notify.RedisAddr)
		return notify.NewQueue(client), func() { _ = client.Close() }, nil
	}

	mailer, err := mail.New(mailConfig(cfg.Mail), log)
	if err != nil {
		return nil, nil, err
	}
	return notify.NewDirect(mailer), func() {}, nil
}

func mailConfig(m config.Mail) mail.Config {
	return mail.Config{
		Transport:    m.Transport,
		SMTPHost:     m.SMTPHost,
		SMTPPort:     m.SMTPPort,
		SMTPUsername: m.SMTPUsername,
		SMTPPassword: m.SMTPPassword,
		ResendAPIKey: m.ResendAPIKey,
	}
}
