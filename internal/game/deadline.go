package game

import (
	"context"
	"time"

	"github.com/coder/quartz"
)

// withClockTimeout cancels the returned context with ErrEstimateTimeout once
// d has elapsed on clock.
func withClockTimeout(parent context.Context, clock quartz.Clock, d time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancelCause(parent)
	timer := clock.AfterFunc(d, func() {
		cancel(ErrEstimateTimeout)
	})
	return ctx, func() {
		timer.Stop()
		cancel(context.Canceled)
	}
}
