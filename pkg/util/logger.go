package util

import (
	"log/slog"
	"os"

	"github.com/getsentry/sentry-go"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
)

// NewLogger builds the process logger. Errors are also forwarded to Sentry
// when a DSN is configured.
func NewLogger(env, sentryDSN string) *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	if env == "development" {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	if sentryDSN == "" {
		return slog.New(handler)
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         sentryDSN,
		Environment: env,
	})
	if err != nil {
		logger := slog.New(handler)
		logger.Warn("sentry disabled", "error", err)
		return logger
	}

	return slog.New(slogmulti.Fanout(
		handler,
		slogsentry.Option{Level: slog.LevelError}.NewSentryHandler(),
	))
}
