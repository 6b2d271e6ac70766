package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/hugh/birthday-reminder/internal/notifier"
	"github.com/hugh/birthday-reminder/internal/schedule"
)

// BirthdayRunner is the part of notifier.Notifier the handler drives.
type BirthdayRunner interface {
	Run(ctx context.Context) error
	RunOn(ctx context.Context, day time.Time) error
}

type Handler struct {
	birthdays BirthdayRunner
	runner    *schedule.Runner
	logger    *slog.Logger
}

func NewHandler(birthdays BirthdayRunner, runner *schedule.Runner, logger *slog.Logger) *Handler {
	return &Handler{
		birthdays: birthdays,
		runner:    runner,
		logger:    logger,
	}
}

func (h *Handler) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeBirthdayNotify, h.HandleBirthdayNotify)
}

func (h *Handler) HandleBirthdayNotify(ctx context.Context, t *asynq.Task) error {
	var payload BirthdayNotifyPayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("unmarshal payload: %w: %w", err, asynq.SkipRetry)
		}
	}

	job := h.birthdays.Run
	if payload.Date != "" {
		day, err := time.Parse(time.DateOnly, payload.Date)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", payload.Date, asynq.SkipRetry)
		}
		job = func(ctx context.Context) error { return h.birthdays.RunOn(ctx, day) }
	}

	ran, err := h.runner.Run(ctx, notifier.JobName, job)
	if !ran {
		h.logger.Info("birthday run already in progress on this worker", "date", payload.Date)
	}
	return err
}
