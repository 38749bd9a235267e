package job

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"
)

// NewServer returns an asynq server consuming the email queue from Redis at
// redisAddr with the given number of concurrent workers.
func NewServer(redisAddr string, concurrency int, logger *slog.Logger) *asynq.Server {
	return asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Concurrency: concurrency,
			Queues:      map[string]int{QueueDefault: 1},
			Logger:      slogAdapter{logger: logger},
		},
	)
}

// NewClient returns an asynq client for enqueuing tasks into Redis at redisAddr.
func NewClient(redisAddr string) *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
}

// slogAdapter lets asynq write its lifecycle logs through slog.
type slogAdapter struct {
	logger *slog.Logger
}

func (a slogAdapter) Debug(args ...any) { a.logger.Debug(fmt.Sprint(args...)) }
func (a slogAdapter) Info(args ...any)  { a.logger.Info(fmt.Sprint(args...)) }
func (a slogAdapter) Warn(args ...any)  { a.logger.Warn(fmt.Sprint(args...)) }
func (a slogAdapter) Error(args ...any) { a.logger.Error(fmt.Sprint(args...)) }

// Fatal matches asynq's contract: log, then exit.
func (a slogAdapter) Fatal(args ...any) {
	a.logger.Error(fmt.Sprint(args...))
	os.Exit(1)
}
