package journal

import (
	"context"
	"log/slog"

	"github.com/abhisek/wordpair/internal/quiz"
)

// Recorder returns a transition hook that appends an Attempt each time a
// pass of total pairs ends. Journal errors are logged and never reach the
// quiz.
func Recorder(ctx context.Context, j *Journal, sessionID string, total int, logger *slog.Logger) func(quiz.Transition) {
	return func(t quiz.Transition) {
		var a Attempt
		switch s := t.To.(type) {
		case quiz.Intermediate:
			a = Attempt{Try: s.NumberOfTry, Correct: s.NumberOfCorrectAnswers}
		case quiz.Completed:
			a = Attempt{Try: s.NumberOfTry, Correct: total, Perfect: true}
		default:
			return
		}
		a.SessionID = sessionID
		a.Total = total

		if err := j.Append(ctx, a); err != nil && logger != nil {
			logger.Warn("failed to record attempt", "session", sessionID, "err", err)
		}
	}
}
