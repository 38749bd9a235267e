// Package main runs the background worker that delivers queued emails.
// It is only needed when the API runs with NOTIFY_MODE=queue.
package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"github.com/pkordes/planner/internal/config"
	"github.com/pkordes/planner/internal/job"
	"github.com/pkordes/planner/internal/logger"
	"github.com/pkordes/planner/internal/mail"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("could not read .env", "error", err)
	}
	cfg, err := config.LoadWorker()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel, os.Stdout)
	slog.SetDefault(log)

	mailer, err := mail.New(mail.Config{
		Transport:    cfg.Mail.Transport,
		SMTPHost:     cfg.Mail.SMTPHost,
		SMTPPort:     cfg.Mail.SMTPPort,
		SMTPUsername: cfg.Mail.SMTPUsername,
		SMTPPassword: cfg.Mail.SMTPPassword,
		ResendAPIKey: cfg.Mail.ResendAPIKey,
	}, log)
	if err != nil {
		slog.Error("failed to configure mail transport", "error", err)
		os.Exit(1)
	}

	mux := asynq.NewServeMux()
	job.NewEmailProcessor(mailer, log).Register(mux)

	// Run blocks until SIGINT/SIGTERM, then waits for in-flight tasks.
	srv := job.NewServer(cfg.Notify.RedisAddr, cfg.Notify.Concurrency, log)
	slog.Info("worker starting", "redis", cfg.Notify.RedisAddr, "transport", cfg.Mail.Transport)
	if err := srv.Run(mux); err != nil {
		slog.Error("worker stopped with error", "error", err)
		os.Exit(1)
	}
	slog.Info("worker stopped")
}
