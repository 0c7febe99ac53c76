package loop

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/alexanderramin/chronos/internal/repository"
)

const (
	// initialBackoff is the first retry delay after a store outage.
	initialBackoff = 5 * time.Second
	// maxBackoff caps the exponential retry delay.
	maxBackoff = 5 * time.Minute
)

// TickFunc is one iteration of a background loop.
type TickFunc func(ctx context.Context) error

// Runner drives a periodic background task: the notification scan, the
// daily wellbeing tick. Ticks that fail with ErrUnavailable back off
// exponentially up to five minutes; any other error is logged and the
// normal cadence resumes.
type Runner struct {
	Name     string
	Interval time.Duration
	Tick     TickFunc
	Logger   *slog.Logger
}

// Run blocks until ctx is cancelled, invoking Tick on the configured
// cadence. The first tick fires immediately.
func (r *Runner) Run(ctx context.Context) error {
	log := r.Logger
	if log == nil {
		log = slog.Default()
	}
	log = log.With("loop", r.Name)

	backoff := initialBackoff
	delay := time.Duration(0) // immediate first tick
	for {
		select {
		case <-ctx.Done():
			log.Info("loop stopped")
			return ctx.Err()
		case <-time.After(delay):
		}

		err := r.Tick(ctx)
		switch {
		case err == nil:
			backoff = initialBackoff
			delay = r.Interval
		case errors.Is(err, context.Canceled):
			return err
		case errors.Is(err, repository.ErrUnavailable):
			log.Warn("store unavailable, backing off", "delay", backoff, "error", err)
			delay = backoff
			backoff *= 2
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
		default:
			log.Error("tick failed", "error", err)
			backoff = initialBackoff
			delay = r.Interval
		}
	}
}
