package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/abhisek/wordpair/internal/journal"
	"github.com/abhisek/wordpair/internal/quiz"
	"github.com/abhisek/wordpair/internal/router"
	"github.com/abhisek/wordpair/internal/screen"
	quizscreen "github.com/abhisek/wordpair/internal/screens/quiz"
	"github.com/abhisek/wordpair/internal/ui/layout"
)

// Options holds the dependencies of a quiz session.
type Options struct {
	Config quiz.Config

	// Journal records finished attempts. Nil disables history.
	Journal *journal.Journal

	// Logger defaults to a discard logger; the terminal belongs to the UI.
	Logger *slog.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

func newAppModel(root screen.Screen) AppModel {
	return AppModel{router: router.New(root)}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case quizscreen.TimerMsg:
		// Fired timers run here, on the update loop, never on the timer
		// goroutine.
		if msg.Fire != nil {
			msg.Fire()
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.router.Close()
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current terminal size.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	try := 0
	var hints []layout.KeyHint
	if active != nil {
		title = active.Title()
		if ap, ok := active.(screen.AttemptProvider); ok {
			try = ap.Attempt()
		}
		if kp, ok := active.(screen.KeyHintProvider); ok {
			hints = kp.KeyHints()
		}
	}
	if hints == nil {
		hints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	header := layout.RenderHeader(title, try, m.width)
	footer := layout.RenderFooter(hints, m.width)

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run builds a quiz session and runs the Bubble Tea program until the user
// quits.
func Run(ctx context.Context, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	sessionID := uuid.New().String()
	logger = logger.With("session", sessionID)

	// The program does not exist yet when the machine is built; timers are
	// only armed after the program is running.
	var program *tea.Program
	sched := quiz.TimerScheduler{
		Dispatch: func(fn func()) { program.Send(quizscreen.TimerMsg{Fire: fn}) },
	}

	machineOpts := quiz.Options{Scheduler: sched, Logger: logger}
	if opts.Journal != nil {
		machineOpts.OnTransition = journal.Recorder(ctx, opts.Journal, sessionID, len(opts.Config.Pairs), logger)
	}

	machine, err := quiz.New(opts.Config, machineOpts)
	if err != nil {
		return fmt.Errorf("build quiz: %w", err)
	}
	defer machine.Close()

	root := quizscreen.New(machine, opts.Journal, sessionID, logger)
	program = tea.NewProgram(newAppModel(root))

	logger.Info("session started", "pairs", machine.NumPairs(), "learning_time", machine.LearningTime())
	_, err = program.Run()
	logger.Info("session ended", "state", machine.State().Phase().String(), "try", machine.State().Try())
	if err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
