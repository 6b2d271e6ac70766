package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/hugh/birthday-reminder/internal/api"
	"github.com/hugh/birthday-reminder/internal/auth"
	"github.com/hugh/birthday-reminder/internal/database"
	"github.com/hugh/birthday-reminder/internal/friends"
	"github.com/hugh/birthday-reminder/internal/mail"
	"github.com/hugh/birthday-reminder/internal/notifier"
	"github.com/hugh/birthday-reminder/internal/schedule"
	"github.com/hugh/birthday-reminder/internal/users"
	"github.com/hugh/birthday-reminder/pkg/config"
	"github.com/hugh/birthday-reminder/pkg/util"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
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

	logger.Info("starting birthday-reminder server",
		"env", cfg.Server.Env,
		"addr", cfg.Server.Addr(),
		"schedule_mode", cfg.Schedule.Mode,
	)

	// Connect to database
	db, err := database.Connect(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db, logger); err != nil {
			logger.Error("failed to migrate database", "error", err)
			os.Exit(1)
		}
	}

	// Redis is only needed when the birthday job runs on the queue
	var redisClient *redis.Client
	if cfg.Schedule.Mode == config.ScheduleModeQueue {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warn("failed to connect to Redis", "error", err)
		}
	}

	// Initialize services
	mailer := mail.NewSender(mail.Options{
		APIKey: cfg.Mail.ResendAPIKey,
		From:   cfg.Mail.From,
		WebURL: cfg.Server.WebURL,
		IsDev:  cfg.Server.IsDevelopment(),
	}, logger)
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry())
	authService := auth.NewService(db, jwtService, mailer)

	if cfg.Admin.Enabled() {
		created, err := authService.BootstrapAdmin(context.Background(), cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password)
		if err != nil {
			logger.Error("failed to bootstrap admin", "error", err)
			os.Exit(1)
		}
		if created {
			logger.Info("admin account created", "email", cfg.Admin.Email)
		}
	}

	// Start the in-process birthday schedule
	jobCtx, stopJobs := context.WithCancel(context.Background())
	defer stopJobs()

	var birthdayCron *schedule.Cron
	if cfg.Schedule.Mode == config.ScheduleModeInProcess {
		loc := cfg.Schedule.Location()
		n := notifier.New(db, notifier.LogDispatcher{Logger: logger}, loc, logger)

		birthdayCron = schedule.NewCron(schedule.NewRunner(logger), loc, logger)
		if err := birthdayCron.Add(jobCtx, cfg.Schedule.Birthdays, notifier.JobName, n.Run); err != nil {
			logger.Error("failed to schedule birthday job", "error", err)
			os.Exit(1)
		}
		birthdayCron.Start()

		if next, err := util.NextCronTime(cfg.Schedule.Birthdays, time.Now().In(loc)); err == nil {
			logger.Info("next birthday run", "at", next)
		}
	}

	// Create router
	router := api.NewRouter(api.RouterConfig{
		DB:             db,
		Redis:          redisClient,
		Logger:         logger,
		JWTService:     jwtService,
		AuthService:    authService,
		UserService:    users.NewService(db),
		FriendService:  friends.NewService(db),
		AllowedOrigins: cfg.Server.AllowedOrigins,
		SecureCookies:  !cfg.Server.IsDevelopment(),
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("server listening", "addr", cfg.Server.Addr())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if birthdayCron != nil {
		stopJobs()
		birthdayCron.Stop(ctx)
	}

	// Close Redis connection
	if redisClient != nil {
		redisClient.Close()
	}

	// Close database connection
	sqlDB, _ := db.DB()
	sqlDB.Close()

	logger.Info("server stopped")
}
