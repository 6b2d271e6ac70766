package tasks

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

// asynqLogger routes asynq's own logging through slog.
type asynqLogger struct {
	logger *slog.Logger
}

func (a *asynqLogger) Debug(args ...interface{}) { a.logger.Debug(fmt.Sprint(args...)) }
func (a *asynqLogger) Info(args ...interface{})  { a.logger.Info(fmt.Sprint(args...)) }
func (a *asynqLogger) Warn(args ...interface{})  { a.logger.Warn(fmt.Sprint(args...)) }
func (a *asynqLogger) Error(args ...interface{}) { a.logger.Error(fmt.Sprint(args...)) }

func (a *asynqLogger) Fatal(args ...interface{}) {
	a.logger.Error(fmt.Sprint(args...))
	panic(fmt.Sprint(args...))
}

// NewLogger adapts logger for asynq servers and schedulers.
func NewLogger(logger *slog.Logger) asynq.Logger {
	return &asynqLogger{logger: logger}
}

// StartScheduler registers the daily birthday task on the cron expression spec and starts an
// asynq scheduler. The returned func stops it.
func StartScheduler(redisOpt asynq.RedisConnOpt, spec string, loc *time.Location, logger *slog.Logger) (stop func(), err error) {
	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{
		Location: loc,
		LogLevel: asynq.InfoLevel,
		Logger:   NewLogger(logger),
	})

	task, err := NewBirthdayNotifyTask(BirthdayNotifyPayload{})
	if err != nil {
		return nil, err
	}

	entryID, err := scheduler.Register(spec, task)
	if err != nil {
		return nil, fmt.Errorf("failed to register birthday schedule: %w", err)
	}

	if err := scheduler.Start(); err != nil {
		return nil, fmt.Errorf("failed to start scheduler: %w", err)
	}

	logger.Info("scheduler started",
		"schedule", spec,
		"timezone", loc.String(),
		"entry_id", entryID,
	)

	return scheduler.Shutdown, nil
}
