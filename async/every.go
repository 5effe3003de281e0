// Package async includes helpers for scheduling periodic background work.
package async

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

// RunEvery runs the provided function periodically in its own goroutine
// until the supplied context is done.
func RunEvery(ctx context.Context, period time.Duration, f func()) {
	go func() {
		ticker := time.NewTicker(period)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				f()
			case <-ctx.Done():
				log.WithField("period", period).Debug("Periodic runner exiting")
				return
			}
		}
	}()
}
