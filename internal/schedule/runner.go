// Package schedule runs named background jobs, at most one run per name at a
// time within a process.
package schedule

import (
	"context"
	"log/slog"
	"sync"
)

// JobFunc is the body of a scheduled job.
type JobFunc func(ctx context.Context) error

type Runner struct {
	mu      sync.Mutex
	running map[string]struct{}
	logger  *slog.Logger
}

func NewRunner(logger *slog.Logger) *Runner {
	return &Runner{
		running: make(map[string]struct{}),
		logger:  logger,
	}
}

// TryStart marks name as running. It reports false if a run of name is
// already in flight.
func (r *Runner) TryStart(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.running[name]; ok {
		return false
	}
	r.running[name] = struct{}{}
	return true
}

func (r *Runner) Finish(name string) {
	r.mu.Lock()
	delete(r.running, name)
	r.mu.Unlock()
}

func (r *Runner) Running(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.running[name]
	return ok
}

// Run executes fn under name unless a run of name is already in flight, in
// which case it returns false without calling fn. The slot is released when
// fn returns or panics.
func (r *Runner) Run(ctx context.Context, name string, fn JobFunc) (bool, error) {
	if !r.TryStart(name) {
		r.logger.Warn("job already running, skipping", "job", name)
		return false, nil
	}
	defer r.Finish(name)

	r.logger.Info("job started", "job", name)
	if err := fn(ctx); err != nil {
		r.logger.Error("job failed", "job", name, "error", err)
		return true, err
	}
	r.logger.Info("job finished", "job", name)
	return true, nil
}
