package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/masterly/internal/ui/layout"
)

// Screen is one page of the TUI. The router owns the stack of screens.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the body between header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// InputCapturer is implemented by screens with a focused text field, so
// that the app does not treat typed keys such as "q" as shortcuts.
type InputCapturer interface {
	CapturesInput() bool
}

// NoticeMsg reports the outcome of an action to the screen that started
// it, usually delivered with router.PopWith.
type NoticeMsg struct {
	Text string
	Err  error
}
