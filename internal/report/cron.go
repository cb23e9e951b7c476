package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// cronParser uses standard 5-field cron expressions (minute, hour, dom, month, dow).
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// nextCronDuration parses a 5-field cron expression and returns the duration
// until the next fire time. Returns 0 on parse error.
func nextCronDuration(expr string) time.Duration {
	sched, err := cronParser.Parse(expr)
	if err != nil {
		return 0
	}
	next := sched.Next(time.Now())
	d := time.Until(next)
	if d < 0 {
		return 0
	}
	return d
}

// Schedule calls fire each time expr comes due until ctx is cancelled. A
// failed run is logged and the schedule continues.
func Schedule(ctx context.Context, expr string, logger *slog.Logger, fire func(ctx context.Context) error) error {
	if _, err := cronParser.Parse(expr); err != nil {
		return fmt.Errorf("report: cron %q: %w", expr, err)
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	timer := time.NewTimer(nextCronDuration(expr))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
			if err := fire(ctx); err != nil {
				logger.Warn("scheduled report failed", "cron", expr, "error", err)
			}
			d := nextCronDuration(expr)
			logger.Debug("next report scheduled", "in", d.Round(time.Second))
			timer.Reset(d)
		}
	}
}
