package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hugh/birthday-reminder/pkg/util"
	"github.com/robfig/cron/v3"
)

// Cron triggers registered jobs on their cron expressions, in process, going
// through a Runner so that a slow run is skipped instead of overlapped.
type Cron struct {
	cron   *cron.Cron
	runner *Runner
	logger *slog.Logger
}

func NewCron(runner *Runner, loc *time.Location, logger *slog.Logger) *Cron {
	if loc == nil {
		loc = time.UTC
	}
	return &Cron{
		cron:   cron.New(cron.WithLocation(loc), cron.WithParser(util.CronParser())),
		runner: runner,
		logger: logger,
	}
}

// Add registers fn under name on the cron expression spec. Each run gets ctx as its parent.
func (c *Cron) Add(ctx context.Context, spec, name string, fn JobFunc) error {
	_, err := c.cron.AddFunc(spec, func() {
		// Errors are logged by the runner; there is nobody to return them to.
		_, _ = c.runner.Run(ctx, name, fn)
	})
	if err != nil {
		return fmt.Errorf("scheduling %s: %w", name, err)
	}
	c.logger.Info("job scheduled", "job", name, "spec", spec)
	return nil
}

func (c *Cron) Start() {
	c.cron.Start()
}

// Stop halts the trigger and waits for in-flight runs to finish or for ctx
// to be done.
func (c *Cron) Stop(ctx context.Context) {
	done := c.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		c.logger.Warn("scheduled jobs did not finish before shutdown")
	}
}
