package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/hugh/birthday-reminder/internal/notifier"
	"github.com/hugh/birthday-reminder/internal/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBirthdays struct {
	runs int
	days []time.Time
	err  error
}

func (f *fakeBirthdays) Run(ctx context.Context) error {
	f.runs++
	return f.err
}

func (f *fakeBirthdays) RunOn(ctx context.Context, day time.Time) error {
	f.days = append(f.days, day)
	return f.err
}

func newTestHandler(b BirthdayRunner) (*Handler, *schedule.Runner) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	runner := schedule.NewRunner(logger)
	return NewHandler(b, runner, logger), runner
}

func TestNewBirthdayNotifyTask(t *testing.T) {
	task, err := NewBirthdayNotifyTask(BirthdayNotifyPayload{Date: "2026-03-14"})
	require.NoError(t, err)
	assert.Equal(t, TypeBirthdayNotify, task.Type())

	var payload BirthdayNotifyPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, "2026-03-14", payload.Date)
}

func TestHandleBirthdayNotify_Today(t *testing.T) {
	fake := &fakeBirthdays{}
	h, _ := newTestHandler(fake)

	task, err := NewBirthdayNotifyTask(BirthdayNotifyPayload{})
	require.NoError(t, err)

	require.NoError(t, h.HandleBirthdayNotify(context.Background(), task))
	assert.Equal(t, 1, fake.runs)
	assert.Empty(t, fake.days)
}

func TestHandleBirthdayNotify_EmptyPayload(t *testing.T) {
	fake := &fakeBirthdays{}
	h, _ := newTestHandler(fake)

	require.NoError(t, h.HandleBirthdayNotify(context.Background(), asynq.NewTask(TypeBirthdayNotify, nil)))
	assert.Equal(t, 1, fake.runs)
}

func TestHandleBirthdayNotify_PinnedDate(t *testing.T) {
	fake := &fakeBirthdays{}
	h, _ := newTestHandler(fake)

	task, err := NewBirthdayNotifyTask(BirthdayNotifyPayload{Date: "2026-03-14"})
	require.NoError(t, err)

	require.NoError(t, h.HandleBirthdayNotify(context.Background(), task))
	require.Len(t, fake.days, 1)
	assert.Equal(t, time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC), fake.days[0])
	assert.Zero(t, fake.runs)
}

func TestHandleBirthdayNotify_InvalidPayload(t *testing.T) {
	h, _ := newTestHandler(&fakeBirthdays{})

	err := h.HandleBirthdayNotify(context.Background(), asynq.NewTask(TypeBirthdayNotify, []byte("invalid json")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal payload")
	assert.ErrorIs(t, err, asynq.SkipRetry)

	err = h.HandleBirthdayNotify(context.Background(), asynq.NewTask(TypeBirthdayNotify, []byte(`{"date":"14/03/2026"}`)))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestHandleBirthdayNotify_PropagatesFailure(t *testing.T) {
	boom := errors.New("db down")
	h, _ := newTestHandler(&fakeBirthdays{err: boom})

	err := h.HandleBirthdayNotify(context.Background(), asynq.NewTask(TypeBirthdayNotify, nil))
	assert.ErrorIs(t, err, boom)
}

func TestHandleBirthdayNotify_SkipsWhileRunning(t *testing.T) {
	fake := &fakeBirthdays{}
	h, runner := newTestHandler(fake)

	require.True(t, runner.TryStart(notifier.JobName))
	defer runner.Finish(notifier.JobName)

	require.NoError(t, h.HandleBirthdayNotify(context.Background(), asynq.NewTask(TypeBirthdayNotify, nil)))
	assert.Zero(t, fake.runs)
}
