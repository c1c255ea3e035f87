package playback

import (
	"context"
	"time"
)

// Scheduler runs fn every interval until the returned cancel is called.
// cancel must not block on an in-flight fn.
type Scheduler interface {
	Every(interval time.Duration, fn func()) (cancel func())
}

type tickerScheduler struct {
	ctx context.Context
}

// NewTickerScheduler returns a Scheduler backed by time.Ticker. Every loop stops
// when ctx is done or its cancel is called.
func NewTickerScheduler(ctx context.Context) Scheduler {
	return tickerScheduler{ctx: ctx}
}

func (s tickerScheduler) Every(interval time.Duration, fn func()) func() {
	ctx, cancel := context.WithCancel(s.ctx)
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				fn()
			}
		}
	}()
	return cancel
}
