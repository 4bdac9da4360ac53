package quiz

import (
	"sync/atomic"
	"time"
)

// Scheduler runs fn once after delay unless the returned cancel func is
// called first. Implementations must never run fn after cancel returns.
type Scheduler interface {
	Schedule(fn func(), delay time.Duration) (cancel func())
}

// TimerScheduler schedules on the runtime timer. When the timer fires the
// callback is handed to Dispatch, which should run it on the owner's event
// loop. With a nil Dispatch the callback runs on the timer goroutine.
type TimerScheduler struct {
	Dispatch func(fn func())
}

var _ Scheduler = TimerScheduler{}

func (s TimerScheduler) Schedule(fn func(), delay time.Duration) func() {
	var cancelled atomic.Bool

	// The dispatched callback can sit in the owner's queue while cancel is
	// called, so the flag is checked again when it finally runs.
	guarded := func() {
		if !cancelled.Load() {
			fn()
		}
	}

	t := time.AfterFunc(delay, func() {
		if cancelled.Load() {
			return
		}
		if s.Dispatch == nil {
			guarded()
			return
		}
		s.Dispatch(guarded)
	})

	return func() {
		cancelled.Store(true)
		t.Stop()
	}
}
