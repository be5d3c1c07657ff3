package services

import (
	"context"
	"fmt"
	"time"
)

// Retry runs fn up to attempts times with a fixed delay between tries.
// Callers must pass idempotent operations only; analysis uploads are never
// routed through here.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt == attempts {
			break
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return fmt.Errorf("retry cancelled: %w", ctx.Err())
		}
	}

	return fmt.Errorf("failed after %d attempts: %w", attempts, lastErr)
}
