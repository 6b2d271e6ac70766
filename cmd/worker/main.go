package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/hibiken/asynq"
	"github.com/hugh/birthday-reminder/internal/database"
	"github.com/hugh/birthday-reminder/internal/notifier"
	"github.com/hugh/birthday-reminder/internal/schedule"
	"github.com/hugh/birthday-reminder/internal/tasks"
	"github.com/hugh/birthday-reminder/pkg/config"
	"github.com/hugh/birthday-reminder/pkg/queue"
	"github.com/hugh/birthday-reminder/pkg/util"
	"github.com/joho/godotenv"
)

func main() {
	replay := flag.String("replay", "", "enqueue a birthday run for `YYYY-MM-DD` and exit")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := util.NewLogger(cfg.Server.Env, cfg.Sentry.DSN)
	slog.SetDefault(logger)
	defer sentry.Flush(2 * time.Second)

	if *replay != "" {
		if err := enqueueReplay(&cfg.Redis, *replay, logger); err != nil {
			logger.Error("failed to enqueue replay", "date", *replay, "error", err)
			os.Exit(1)
		}
		return
	}

	logger.Info("starting birthday-reminder worker")

	if cfg.Schedule.Mode != config.ScheduleModeQueue {
		logger.Warn("SCHEDULE_MODE is not queue, the daily task will not be scheduled", "mode", cfg.Schedule.Mode)
	}

	// Connect to database
	db, err := database.Connect(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	loc := cfg.Schedule.Location()

	// Create Asynq server
	srv := queue.NewServer(&cfg.Redis, 10, tasks.NewLogger(logger))

	// Create task handler
	n := notifier.New(db, notifier.LogDispatcher{Logger: logger}, loc, logger)
	handler := tasks.NewHandler(n, schedule.NewRunner(logger), logger)

	// Register handlers
	mux := asynq.NewServeMux()
	handler.RegisterHandlers(mux)

	// Schedule the daily run
	var stopScheduler func()
	if cfg.Schedule.Mode == config.ScheduleModeQueue {
		if err := util.ValidateCronExpr(cfg.Schedule.Birthdays); err != nil {
			logger.Error("invalid SCHEDULE_BIRTHDAYS", "error", err)
			os.Exit(1)
		}
		stopScheduler, err = tasks.StartScheduler(queue.RedisOpt(&cfg.Redis), cfg.Schedule.Birthdays, loc, logger)
		if err != nil {
			logger.Error("failed to start scheduler", "error", err)
			os.Exit(1)
		}
	}

	// Handle shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info("shutting down worker...")
		if stopScheduler != nil {
			stopScheduler()
		}
		srv.Shutdown()
		cancel()
	}()

	logger.Info("worker started, waiting for tasks...")

	// Start the server
	if err := srv.Run(mux); err != nil {
		logger.Error("worker error", "error", err)
		cancel()
	}

	// Wait for context cancellation
	<-ctx.Done()

	// Close database connection
	sqlDB, _ := db.DB()
	sqlDB.Close()

	logger.Info("worker stopped")
}

func enqueueReplay(cfg *config.RedisConfig, date string, logger *slog.Logger) error {
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		return err
	}

	client := queue.NewClient(cfg)
	defer client.Close()

	task, err := tasks.NewBirthdayNotifyTask(tasks.BirthdayNotifyPayload{Date: date})
	if err != nil {
		return err
	}

	// The date is part of the payload, so a replay never collides with the
	// scheduled task of the day.
	info, err := client.Enqueue(task)
	if err != nil {
		return err
	}

	logger.Info("birthday replay enqueued", "date", date, "task_id", info.ID)
	return nil
}
