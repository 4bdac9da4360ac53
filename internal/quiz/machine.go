// Package quiz implements the word-pair memory quiz state machine.
//
// A Machine walks the learner through four phases: pairs are shown one at a
// time for a fixed learning time, then the learner recalls the paired word
// for every prompt, and the pass is scored. An imperfect pass leads to a
// retry, a perfect one to a fresh start.
//
// The Machine is single-writer and not safe for concurrent use. All
// operations, including the auto-advance timer callback, must run on the
// owner's event loop; the Scheduler's job is to get the callback there.
package quiz

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Options holds the collaborators of a Machine.
type Options struct {
	// Scheduler arms the auto-advance timer. Required.
	Scheduler Scheduler

	// Logger receives transition logs at debug level. Nil discards.
	Logger *slog.Logger

	// OnTransition, if set, is called after every applied transition.
	OnTransition func(Transition)
}

// Machine owns the quiz state and funnels every mutation through the
// transition operations.
type Machine struct {
	pairs        []WordPair
	learningTime time.Duration
	state        State

	sched    Scheduler
	cancel   func()
	timerGen uint64
	closed   bool

	logger       *slog.Logger
	onTransition func(Transition)
}

// New validates cfg and returns a Machine in the initial state.
func New(cfg Config, opts Options) (*Machine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if opts.Scheduler == nil {
		return nil, errors.New("quiz: nil scheduler")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	pairs := make([]WordPair, len(cfg.Pairs))
	copy(pairs, cfg.Pairs)

	return &Machine{
		pairs:        pairs,
		learningTime: cfg.LearningTime,
		state:        Initial(),
		sched:        opts.Scheduler,
		logger:       logger.With("component", "quiz"),
		onTransition: opts.OnTransition,
	}, nil
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Pairs returns a copy of the pair list.
func (m *Machine) Pairs() []WordPair {
	out := make([]WordPair, len(m.pairs))
	copy(out, m.pairs)
	return out
}

// NumPairs returns the number of pairs.
func (m *Machine) NumPairs() int {
	return len(m.pairs)
}

// LearningTime returns how long each pair is shown.
func (m *Machine) LearningTime() time.Duration {
	return m.learningTime
}

// CurrentPair returns the pair the learner is looking at. It reports false
// before learning starts and after the answering phase.
func (m *Machine) CurrentPair() (WordPair, bool) {
	switch s := m.state.(type) {
	case Learning:
		if s.Started {
			return m.pairs[s.IndexOfPair], true
		}
	case Answering:
		return m.pairs[s.IndexOfPair], true
	}
	return WordPair{}, false
}

// TimerArmed reports whether an auto-advance timer is pending.
func (m *Machine) TimerArmed() bool {
	return m.cancel != nil
}

// StartLearning starts showing pairs. Calling it again while already
// started changes nothing and keeps the pending timer.
func (m *Machine) StartLearning() error {
	return m.apply(OpStartLearning, startLearning)
}

// AdvancePair shows the next pair. On the last pair it returns
// ErrIndexOutOfRange; use AdvancePhaseFromLearning instead.
func (m *Machine) AdvancePair() error {
	return m.apply(OpAdvancePair, func(s State) (State, error) {
		return advancePair(s, len(m.pairs))
	})
}

// AdvancePhaseFromLearning moves from learning to answering.
func (m *Machine) AdvancePhaseFromLearning() error {
	return m.apply(OpAdvancePhaseFromLearning, advancePhaseFromLearning)
}

// ChangeAnswer replaces the pending answer verbatim.
func (m *Machine) ChangeAnswer(text string) error {
	return m.apply(OpChangeAnswer, func(s State) (State, error) {
		return changeAnswer(s, text)
	})
}

// ConfirmAnswer scores the pending answer and moves to the next prompt, or
// to Intermediate or Completed after the last one.
func (m *Machine) ConfirmAnswer() error {
	return m.apply(OpConfirmAnswer, func(s State) (State, error) {
		return confirmAnswer(s, m.pairs)
	})
}

// RestartAfterIntermediate starts another learning pass and counts it as a
// new attempt.
func (m *Machine) RestartAfterIntermediate() error {
	return m.apply(OpRestartAfterIntermediate, restartAfterIntermediate)
}

// RestartAfterCompletion starts over from the first attempt.
func (m *Machine) RestartAfterCompletion() error {
	return m.apply(OpRestartAfterCompletion, restartAfterCompletion)
}

// Advance is the "next phase" gesture. Answering can only be left through
// ConfirmAnswer, so Advance fails there.
func (m *Machine) Advance() error {
	switch m.state.Phase() {
	case PhaseLearning:
		return m.AdvancePhaseFromLearning()
	case PhaseIntermediate:
		return m.RestartAfterIntermediate()
	case PhaseCompleted:
		return m.RestartAfterCompletion()
	}
	return invalid("advance", m.state)
}

// Close cancels the pending timer. Timer callbacks arriving afterwards are
// ignored and no new timer is armed.
func (m *Machine) Close() {
	m.closed = true
	m.disarm()
}

func (m *Machine) apply(op string, fn func(State) (State, error)) error {
	from := m.state
	to, err := fn(from)
	if err != nil {
		m.logger.Debug("transition rejected", "op", op, "phase", from.Phase().String(), "err", err)
		var te *TransitionError
		if !errors.As(err, &te) {
			err = fmt.Errorf("%s: %w", op, err)
		}
		return err
	}

	m.state = to
	m.syncTimer(from, to)

	m.logger.Debug("transition",
		"op", op,
		"from", from.Phase().String(),
		"to", to.Phase().String(),
		"try", to.Try(),
	)
	if m.onTransition != nil {
		m.onTransition(Transition{Op: op, From: from, To: to})
	}
	return nil
}

// syncTimer keeps exactly one timer live while a started Learning state is
// showing a pair, and none otherwise.
func (m *Machine) syncTimer(from, to State) {
	next, ok := to.(Learning)
	if !ok || !next.Started {
		m.disarm()
		return
	}
	if prev, ok := from.(Learning); ok && prev.Started && prev.IndexOfPair == next.IndexOfPair && m.cancel != nil {
		return
	}
	m.arm()
}

func (m *Machine) arm() {
	m.disarm()
	if m.closed {
		return
	}
	gen := m.timerGen
	m.cancel = m.sched.Schedule(func() { m.onTimer(gen) }, m.learningTime)
}

func (m *Machine) disarm() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.timerGen++
}

func (m *Machine) onTimer(gen uint64) {
	if m.closed || gen != m.timerGen {
		m.logger.Debug("stale timer ignored")
		return
	}
	m.cancel = nil

	l, ok := m.state.(Learning)
	if !ok || !l.Started {
		return
	}

	var err error
	if isLast(l.IndexOfPair, len(m.pairs)) {
		err = m.AdvancePhaseFromLearning()
	} else {
		err = m.AdvancePair()
	}
	if err != nil {
		m.logger.Error("auto-advance failed", "err", err)
	}
}
