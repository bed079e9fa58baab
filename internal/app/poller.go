package app

import (
	"context"
	"time"

	"github.com/karandattani71/vaultview/internal/cache"
)

const defaultPollInterval = 15 * time.Second

func secondsToDuration(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}

// StartPoller launches a background goroutine that revalidates every
// subscribed cache key at a fixed cadence. Read applies the
// stale-while-revalidate policy, so still-fresh entries cost nothing. It
// returns immediately.
func StartPoller(ctx context.Context, coordinator *cache.Coordinator, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			for _, key := range coordinator.SubscribedKeys() {
				coordinator.Read(key)
			}
		}
	}()
}
