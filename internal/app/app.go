package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/masterly/internal/logging"
	"github.com/abhisek/masterly/internal/router"
	"github.com/abhisek/masterly/internal/screen"
	"github.com/abhisek/masterly/internal/screens/home"
	"github.com/abhisek/masterly/internal/screens/welcome"
	"github.com/abhisek/masterly/internal/tracker"
	"github.com/abhisek/masterly/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	svc    *tracker.Service
	log    *logging.Logger
	width  int
	height int
}

// newAppModel starts on the welcome screen, which hands over to home.
func newAppModel(svc *tracker.Service, log *logging.Logger) AppModel {
	splash := welcome.New(func() screen.Screen { return home.New(svc) })
	return AppModel{
		router: router.New(splash),
		svc:    svc,
		log:    log,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) capturing() bool {
	c, ok := m.router.Active().(screen.InputCapturer)
	return ok && c.CapturesInput()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			// A running quiz is already saved and resumes on next start.
			m.log.Info("quit", "quiz_in_progress", m.svc.QuizInProgress())
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, router.Pop()
			}
			return m, nil
		case "q":
			if m.router.Depth() == 1 && !m.capturing() {
				if _, ok := m.router.Active().(*home.HomeScreen); ok {
					return m, tea.Quit
				}
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	// The splash screen has no title and gets the whole terminal.
	if active.Title() == "" {
		return m.router.View(m.width, m.height)
	}

	user := ""
	if u, ok := m.svc.ActiveUser(); ok {
		user = u.Username
	}
	header := layout.RenderHeader(active.Title(), user, m.width)
	footer := layout.RenderFooter(m.hints(active), m.width)

	content := m.router.View(m.width, layout.BodyHeight(header, footer, m.height))
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) hints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return append(p.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the TUI and blocks until the user quits.
func Run(svc *tracker.Service, log *logging.Logger) error {
	if log == nil {
		log = logging.Nop()
	}
	p := tea.NewProgram(newAppModel(svc, log))
	if _, err := p.Run(); err != nil {
		log.Error("tui exited", "error", err)
		return err
	}
	return nil
}
