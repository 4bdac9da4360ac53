package quiz

import "time"

// countdownTickMsg redraws the learning countdown.
type countdownTickMsg time.Time

// TimerMsg carries a fired auto-advance callback onto the update loop.
// The app runs Fire before routing the message.
type TimerMsg struct {
	Fire func()
}
