package broker

import (
	"context"
	"time"

	"go.uber.org/zap"

	logging "interview-service/pkg/logger/pkg"
)

// Retry calls fn until it succeeds, attempts are exhausted or ctx ends.
// attempts <= 0 means a single try.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	if attempts <= 0 {
		attempts = 1
	}
	var err error
	for i := 1; i <= attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i == attempts {
			break
		}
		logging.Logger(ctx).Warn("bus connection failed, retrying",
			zap.Int("attempt", i),
			zap.Int("attempts", attempts),
			zap.Duration("delay", delay),
			zap.Error(err))

		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
	return err
}
