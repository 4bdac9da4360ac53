package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordpair/internal/journal"
	"github.com/abhisek/wordpair/internal/router"
	"github.com/abhisek/wordpair/internal/screen"
	"github.com/abhisek/wordpair/internal/ui/layout"
	"github.com/abhisek/wordpair/internal/ui/theme"
)

// Lister reads the attempts of a session.
type Lister interface {
	List(ctx context.Context, sessionID string) ([]journal.Attempt, error)
}

type historyLoadedMsg struct {
	Attempts []journal.Attempt
	Err      error
}

// HistoryScreen lists the finished passes of the running session.
type HistoryScreen struct {
	lister    Lister
	sessionID string
	attempts  []journal.Attempt
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(lister Lister, sessionID string) *HistoryScreen {
	return &HistoryScreen{lister: lister, sessionID: sessionID}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		attempts, err := s.lister.List(context.Background(), s.sessionID)
		return historyLoadedMsg{Attempts: attempts, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.attempts = msg.Attempts
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "enter", "h":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.attempts) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No finished attempts yet.")
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, a := range s.attempts {
		mark := theme.Incorrect.Render("✗")
		if a.Perfect {
			mark = theme.Correct.Render("✓")
		}
		line := fmt.Sprintf("%2d.  %s  attempt %d  %d/%d correct  %s",
			i+1, a.FinishedAt.Format("15:04:05"), a.Try, a.Correct, a.Total, mark)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Text).Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}
