// Package notifier finds friends whose birthday is today and hands each match
// to a Dispatcher.
package notifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hugh/birthday-reminder/internal/database/models"
	"gorm.io/gorm"
)

// JobName identifies the daily birthday run in the scheduler and the queue.
const JobName = "birthdays:notify"

// Dispatcher delivers one birthday notice for friend to user.
type Dispatcher interface {
	Notify(ctx context.Context, user *models.User, friend *models.Friend) error
}

// LogDispatcher only records the match. No outbound channel is wired yet.
type LogDispatcher struct {
	Logger *slog.Logger
}

func (d LogDispatcher) Notify(_ context.Context, user *models.User, friend *models.Friend) error {
	d.Logger.Info("birthday today",
		"user_id", user.ID,
		"user_email", user.Email,
		"friend_id", friend.ID,
		"friend_name", friend.Name,
	)
	return nil
}

// Match is one friend celebrating today, with its owner.
type Match struct {
	User   *models.User
	Friend *models.Friend
}

type Notifier struct {
	db         *gorm.DB
	dispatcher Dispatcher
	loc        *time.Location
	logger     *slog.Logger

	// now is replaced in tests.
	now func() time.Time
}

func New(db *gorm.DB, dispatcher Dispatcher, loc *time.Location, logger *slog.Logger) *Notifier {
	if loc == nil {
		loc = time.UTC
	}
	return &Notifier{
		db:         db,
		dispatcher: dispatcher,
		loc:        loc,
		logger:     logger,
		now:        time.Now,
	}
}

// Collect loads every user with their friends and returns the friends of
// email-notified users whose birthday falls on day.
func (n *Notifier) Collect(ctx context.Context, day time.Time) ([]Match, error) {
	var users []models.User
	if err := n.db.WithContext(ctx).Preload("Friends").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("loading users: %w", err)
	}

	var matches []Match
	for i := range users {
		user := &users[i]
		if !user.NotifiesByEmail() {
			continue
		}
		for j := range user.Friends {
			if friend := &user.Friends[j]; friend.BirthdayOn(day) {
				matches = append(matches, Match{User: user, Friend: friend})
			}
		}
	}
	return matches, nil
}

// Run dispatches today's birthdays, with today taken in the configured
// location.
func (n *Notifier) Run(ctx context.Context) error {
	return n.RunOn(ctx, n.now().In(n.loc))
}

// RunOn collects the birthdays falling on today and dispatches each one. A
// failed dispatch does not stop the others; all failures are returned
// together.
func (n *Notifier) RunOn(ctx context.Context, today time.Time) error {
	matches, err := n.Collect(ctx, today)
	if err != nil {
		return err
	}

	var errs []error
	for _, m := range matches {
		if err := n.dispatcher.Notify(ctx, m.User, m.Friend); err != nil {
			n.logger.Error("birthday dispatch failed",
				"user_id", m.User.ID,
				"friend_id", m.Friend.ID,
				"error", err,
			)
			errs = append(errs, err)
		}
	}

	n.logger.Info("birthday run complete",
		"date", today.Format(time.DateOnly),
		"matches", len(matches),
		"failed", len(errs),
	)
	return errors.Join(errs...)
}
