package transfer

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/masterly/internal/screen"
	"github.com/abhisek/masterly/internal/tracker"
	"github.com/abhisek/masterly/internal/ui/components"
	"github.com/abhisek/masterly/internal/ui/layout"
	"github.com/abhisek/masterly/internal/ui/theme"
)

const (
	actionSave = iota
	actionLoad
)

// TransferScreen exports the document to a JSON file or replaces it with
// one read from disk.
type TransferScreen struct {
	svc     *tracker.Service
	path    components.TextInput
	buttons components.ButtonRow
	status  components.Status
}

var _ screen.Screen = (*TransferScreen)(nil)

func New(svc *tracker.Service) *TransferScreen {
	path := components.NewTextInput("File", tracker.ExportFileName, false, 0)
	path.SetValue(tracker.ExportFileName)
	return &TransferScreen{
		svc:     svc,
		path:    path,
		buttons: components.NewButtonRow("Save to file", "Load from file"),
	}
}

func (s *TransferScreen) Init() tea.Cmd {
	return s.path.Focus()
}

func (s *TransferScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "tab":
			s.buttons.Move(1)
			return s, nil
		case "shift+tab":
			s.buttons.Move(-1)
			return s, nil
		case "enter":
			s.run()
			return s, nil
		}
	}
	var cmd tea.Cmd
	s.path, cmd = s.path.Update(msg)
	return s, cmd
}

func (s *TransferScreen) run() {
	path := s.path.Value()
	if path == "" {
		s.status = components.Status{Text: "enter a file path", Error: true}
		return
	}
	ctx := context.Background()
	switch s.buttons.Focused {
	case actionSave:
		s.status = components.StatusFor(s.svc.ExportFile(path), "Saved to "+path)
	case actionLoad:
		err := s.svc.ImportFile(ctx, path)
		s.status = components.StatusFor(err, fmt.Sprintf("Loaded %d users and %d questions from %s",
			len(s.svc.ListUsers()), len(s.svc.ListQuestions("")), path))
	}
}

func (s *TransferScreen) View(width, height int) string {
	body := theme.Title.Render("Save or load data") + "\n\n" +
		theme.Label.Render(s.path.Label) + "\n" + s.path.View() + "\n\n" +
		s.buttons.View() + "\n\n" +
		theme.Hint.Render("Loading replaces every user, topic and question.")
	if st := s.status.View(); st != "" {
		body += "\n\n" + st
	}
	return components.Centered(components.Card(body, layout.ContentWidth(width)), width, height)
}

func (s *TransferScreen) Title() string {
	return "Save / Load"
}

func (s *TransferScreen) CapturesInput() bool {
	return true
}

func (s *TransferScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Save/Load"},
		{Key: "Enter", Description: "Run"},
		{Key: "Esc", Description: "Back"},
	}
}
