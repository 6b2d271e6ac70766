package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"github.com/hugh/birthday-reminder/internal/notifier"
)

// Task type names
const (
	TypeBirthdayNotify = notifier.JobName
)

// BirthdayNotifyPayload optionally pins the run to a past day (YYYY-MM-DD),
// for replaying a missed run. Empty means today.
type BirthdayNotifyPayload struct {
	Date string `json:"date,omitempty"`
}

// NewBirthdayNotifyTask builds the daily birthday task. At most one is kept
// per day.
func NewBirthdayNotifyTask(payload BirthdayNotifyPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeBirthdayNotify, data,
		asynq.MaxRetry(3),
		asynq.Timeout(10*time.Minute),
		asynq.Retention(24*time.Hour),
		asynq.Unique(23*time.Hour),
	), nil
}
