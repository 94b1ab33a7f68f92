package postgres

import (
	"context"
	"fmt"
	"time"
)

// maxPingBackoff caps the wait between connection attempts.
const maxPingBackoff = 10 * time.Second

// pingUntilReady calls ping until it succeeds, doubling the wait after each
// failure up to maxPingBackoff. It gives up after retries+1 attempts and
// reports how many attempts were made.
func pingUntilReady(ctx context.Context, ping func(context.Context) error, retries int, backoff time.Duration) (int, error) {
	if retries < 0 {
		retries = 0
	}
	if backoff <= 0 {
		backoff = 100 * time.Millisecond
	}

	attempts := 0
	for {
		attempts++
		err := ping(ctx)
		if err == nil {
			return attempts, nil
		}
		if attempts > retries {
			return attempts, fmt.Errorf("database not ready after %d attempts: %w", attempts, err)
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return attempts, ctx.Err()
		case <-timer.C:
		}

		backoff = min(backoff*2, maxPingBackoff)
	}
}
