// Package quiz is the screen that hosts the word-pair quiz: it renders the
// current phase and maps key presses to machine operations.
package quiz

import (
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wordpair/internal/journal"
	qz "github.com/abhisek/wordpair/internal/quiz"
	"github.com/abhisek/wordpair/internal/router"
	"github.com/abhisek/wordpair/internal/screen"
	"github.com/abhisek/wordpair/internal/screens/history"
	"github.com/abhisek/wordpair/internal/ui/components"
	"github.com/abhisek/wordpair/internal/ui/layout"
)

const countdownInterval = 200 * time.Millisecond

// QuizScreen implements screen.Screen for the quiz.
type QuizScreen struct {
	machine   *qz.Machine
	journal   *journal.Journal
	sessionID string
	logger    *slog.Logger
	input     components.TextInput
	now       func() time.Time

	// shown identifies what is on screen; shownAt is when it appeared.
	shown   viewKey
	shownAt time.Time
	ticking bool
	errMsg  string
}

type viewKey struct {
	phase   qz.Phase
	started bool
	index   int
	try     int
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.AttemptProvider = (*QuizScreen)(nil)
var _ screen.Closer = (*QuizScreen)(nil)

// New creates a QuizScreen driving machine. j may be nil, in which case
// the history view is unavailable.
func New(machine *qz.Machine, j *journal.Journal, sessionID string, logger *slog.Logger) *QuizScreen {
	if logger == nil {
		logger = slog.Default()
	}
	s := &QuizScreen{
		machine:   machine,
		journal:   j,
		sessionID: sessionID,
		logger:    logger,
		input:     components.NewTextInput("Type the paired word...", 64),
		now:       time.Now,
	}
	s.sync()
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *QuizScreen) Title() string {
	switch s.machine.State().Phase() {
	case qz.PhaseAnswering:
		return "Recall"
	case qz.PhaseIntermediate:
		return "Score"
	case qz.PhaseCompleted:
		return "Well done"
	}
	return "Learn"
}

func (s *QuizScreen) Attempt() int {
	return s.machine.State().Try()
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch st := s.machine.State().(type) {
	case qz.Learning:
		if st.Started {
			return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
		}
		return []layout.KeyHint{
			{Key: "Enter", Description: "Start learning"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	case qz.Answering:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Confirm answer"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	case qz.Intermediate:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Learn again"},
			{Key: "H", Description: "History"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Start over"},
		{Key: "H", Description: "History"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Close stops the auto-advance timer.
func (s *QuizScreen) Close() {
	s.machine.Close()
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case countdownTickMsg:
		cmd = s.handleTick()
	case tea.KeyMsg:
		cmd = s.handleKey(msg)
	case TimerMsg:
		// Already fired by the app; only the view needs to catch up.
	default:
		if _, ok := s.machine.State().(qz.Answering); ok {
			cmd = s.updateInput(msg)
		}
	}
	s.sync()
	return s, cmd
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()

	switch st := s.machine.State().(type) {
	case qz.Learning:
		if key == "enter" && !st.Started {
			s.do(s.machine.StartLearning())
			return s.startTicking()
		}

	case qz.Answering:
		if key == "enter" {
			// The input is the source of truth; the machine gets its latest
			// value before scoring.
			s.do(s.machine.ChangeAnswer(s.input.Value()))
			s.do(s.machine.ConfirmAnswer())
			return nil
		}
		return s.updateInput(msg)

	case qz.Intermediate, qz.Completed:
		switch key {
		case "enter":
			s.do(s.machine.Advance())
		case "h", "H":
			if s.journal == nil {
				return nil
			}
			j, id := s.journal, s.sessionID
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(j, id)}
			}
		}
	}
	return nil
}

// updateInput forwards msg to the text input and mirrors every edit into
// the machine.
func (s *QuizScreen) updateInput(msg tea.Msg) tea.Cmd {
	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	if v := s.input.Value(); v != before {
		s.do(s.machine.ChangeAnswer(v))
	}
	return cmd
}

func (s *QuizScreen) handleTick() tea.Cmd {
	if st, ok := s.machine.State().(qz.Learning); ok && st.Started {
		return tickCmd()
	}
	s.ticking = false
	return nil
}

func (s *QuizScreen) startTicking() tea.Cmd {
	if s.ticking {
		return nil
	}
	s.ticking = true
	return tickCmd()
}

// do records the outcome of a machine operation for the status line.
func (s *QuizScreen) do(err error) {
	if err != nil {
		s.logger.Warn("quiz operation rejected", "err", err)
		s.errMsg = err.Error()
		return
	}
	s.errMsg = ""
}

// sync notices state changes made by key handlers or the timer, and resets
// the countdown and the answer field when a new pair or phase appears.
func (s *QuizScreen) sync() {
	st := s.machine.State()
	key := viewKey{phase: st.Phase(), try: st.Try()}
	switch st := st.(type) {
	case qz.Learning:
		key.started = st.Started
		key.index = st.IndexOfPair
	case qz.Answering:
		key.index = st.IndexOfPair
	}
	if key == s.shown && !s.shownAt.IsZero() {
		return
	}
	s.shown = key
	s.shownAt = s.now()
	if key.phase == qz.PhaseAnswering {
		s.input.Reset()
	}
}

// remaining returns how long the current pair has left on screen.
func (s *QuizScreen) remaining() time.Duration {
	left := s.machine.LearningTime() - s.now().Sub(s.shownAt)
	if left < 0 {
		return 0
	}
	return left
}

func tickCmd() tea.Cmd {
	return tea.Tick(countdownInterval, func(t time.Time) tea.Msg {
		return countdownTickMsg(t)
	})
}
