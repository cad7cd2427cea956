package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	DefaultReadyAttempts   = 5
	DefaultInitialInterval = 500 * time.Millisecond
	DefaultMaxInterval     = 5 * time.Second
)

// ReadyConfig controls the startup health check of the backend.
type ReadyConfig struct {
	MaxAttempts     uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

func DefaultReadyConfig() ReadyConfig {
	return ReadyConfig{
		MaxAttempts:     DefaultReadyAttempts,
		InitialInterval: DefaultInitialInterval,
		MaxInterval:     DefaultMaxInterval,
	}
}

var ErrUnhealthy = errors.New("backend reported unhealthy")

// WaitReady polls GET /health with exponential backoff until the backend
// reports healthy, the attempts run out or ctx is done.
func WaitReady(ctx context.Context, logger *slog.Logger, c *Client, cfg ReadyConfig) error {
	logger = logger.With(slog.String("backend", c.base.String()))
	logger.DebugContext(ctx, "Waiting for backend to become ready")

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = cfg.InitialInterval
	b.MaxInterval = cfg.MaxInterval

	attempt := 0
	op := func() error {
		attempt++
		res := c.Health(ctx)
		if !res.IsOk() {
			return res.Err
		}
		if !res.Value.Healthy() {
			return fmt.Errorf("%w: database %s: %s", ErrUnhealthy, res.Value.Database, res.Value.Error)
		}
		return nil
	}

	notify := func(err error, next time.Duration) {
		logger.WarnContext(ctx, "Backend not ready, retrying...",
			slog.Int("attempt", attempt),
			slog.Any("error", errorCause(err)),
			slog.Duration("backoff_duration", next),
		)
	}

	// MaxAttempts counts the first try; backoff counts retries.
	retries := uint64(0)
	if cfg.MaxAttempts > 1 {
		retries = cfg.MaxAttempts - 1
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(b, retries), ctx)

	if err := backoff.RetryNotify(op, policy, notify); err != nil {
		logger.ErrorContext(ctx, "Backend not ready after all attempts",
			slog.Int("attempts", attempt),
			slog.Any("last_error", errorCause(err)),
		)
		return fmt.Errorf("backend not ready after %d attempts: %w", attempt, err)
	}

	logger.InfoContext(ctx, "Backend is ready", slog.Int("attempt", attempt))
	return nil
}
