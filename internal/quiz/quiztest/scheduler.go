// Package quiztest provides test doubles for the quiz package.
package quiztest

import (
	"time"

	"github.com/abhisek/wordpair/internal/quiz"
)

// ManualScheduler is a fake clock. Nothing fires until Advance is called.
type ManualScheduler struct {
	now    time.Duration
	seq    int
	timers []*timer
}

type timer struct {
	at        time.Duration
	seq       int
	fn        func()
	done      bool
	cancelled bool
}

var _ quiz.Scheduler = (*ManualScheduler)(nil)

// NewManualScheduler returns a scheduler at time zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (s *ManualScheduler) Schedule(fn func(), delay time.Duration) func() {
	s.seq++
	t := &timer{at: s.now + delay, seq: s.seq, fn: fn}
	s.timers = append(s.timers, t)
	return func() { t.cancelled = true }
}

// Advance moves the clock forward by d and runs every callback that comes
// due, in due-time then schedule order. Callbacks scheduled by a firing
// callback run too if they fall inside the window. It returns the number of
// callbacks run.
func (s *ManualScheduler) Advance(d time.Duration) int {
	target := s.now + d
	fired := 0
	for {
		t := s.nextDue(target)
		if t == nil {
			break
		}
		s.now = t.at
		t.done = true
		t.fn()
		fired++
	}
	s.now = target
	return fired
}

// Pending returns the number of timers that are neither fired nor cancelled.
func (s *ManualScheduler) Pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.done && !t.cancelled {
			n++
		}
	}
	return n
}

// Now returns the elapsed fake time.
func (s *ManualScheduler) Now() time.Duration {
	return s.now
}

func (s *ManualScheduler) nextDue(target time.Duration) *timer {
	var next *timer
	for _, t := range s.timers {
		if t.done || t.cancelled || t.at > target {
			continue
		}
		if next == nil || t.at < next.at || (t.at == next.at && t.seq < next.seq) {
			next = t
		}
	}
	return next
}
