package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/masterly/internal/screen"
)

// PushScreenMsg opens Screen on top of the current one.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg closes the current screen. When Then is set it is
// delivered to the screen underneath.
type PopScreenMsg struct {
	Then tea.Msg
}

// ReplaceScreenMsg swaps the current screen for Screen.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// PopToRootMsg closes every screen above the root. When Then is set it
// is pushed afterwards.
type PopToRootMsg struct {
	Then screen.Screen
}

// Push, Pop, Replace and PopToRoot wrap the messages above as commands.
func Push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return PushScreenMsg{Screen: s} }
}

func Pop() tea.Cmd {
	return func() tea.Msg { return PopScreenMsg{} }
}

// PopWith closes the current screen and hands then to the one below.
func PopWith(then tea.Msg) tea.Cmd {
	return func() tea.Msg { return PopScreenMsg{Then: then} }
}

func Replace(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return ReplaceScreenMsg{Screen: s} }
}

func PopToRoot(then screen.Screen) tea.Cmd {
	return func() tea.Msg { return PopToRootMsg{Then: then} }
}

// Router is a stack of screens; the top one receives input.
type Router struct {
	stack []screen.Screen
}

// New returns a router showing initial.
func New(initial screen.Screen) *Router {
	return &Router{stack: []screen.Screen{initial}}
}

// Push adds s on top and runs its Init.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop removes the top screen. The root is never removed.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) <= 1 {
		return nil
	}
	r.stack = r.stack[:len(r.stack)-1]
	return nil
}

// Replace swaps the top screen for s and runs its Init.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	r.stack[len(r.stack)-1] = s
	return s.Init()
}

// PopToRoot drops everything above the root screen.
func (r *Router) PopToRoot() {
	r.stack = r.stack[:1]
}

// Active is the top screen.
func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

func (r *Router) Depth() int {
	return len(r.stack)
}

// Update applies navigation messages and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		r.Pop()
		if msg.Then != nil {
			return r.forward(msg.Then)
		}
		return nil
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	case PopToRootMsg:
		r.PopToRoot()
		if msg.Then != nil {
			return r.Push(msg.Then)
		}
		return nil
	}

	return r.forward(msg)
}

func (r *Router) forward(msg tea.Msg) tea.Cmd {
	active := r.Active()
	if active == nil {
		return nil
	}
	updated, cmd := active.Update(msg)
	r.stack[len(r.stack)-1] = updated
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	if active := r.Active(); active != nil {
		return active.View(width, height)
	}
	return ""
}
