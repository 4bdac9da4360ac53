package components

import (
	"github.com/abhisek/wordpair/internal/ui/theme"
)

// Button is the single call to action on a phase view. It does not handle
// keys; the owning screen maps Enter to the action.
type Button struct {
	Label string
}

// NewButton creates a new button.
func NewButton(label string) Button {
	return Button{Label: label}
}

// View renders the button.
func (b Button) View() string {
	return theme.ButtonActive.Render("▸ " + b.Label)
}
