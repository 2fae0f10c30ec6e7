package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/masterly/internal/ui/theme"
)

const (
	MinWidth  = 64
	MinHeight = 20

	// CardWidth caps the width of centered content.
	CardWidth = 72
)

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// ContentWidth is the width used for centered cards in a body of the
// given width.
func ContentWidth(width int) int {
	w := width - 4
	if w > CardWidth {
		w = CardWidth
	}
	if w < 20 {
		w = 20
	}
	return w
}

func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"Terminal too small\n\nResize to at least %d x %d\n(now %d x %d)",
			MinWidth, MinHeight, width, height,
		))
}

// RenderHeader draws the app name, the screen title and the active user.
func RenderHeader(title, user string, width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("masterly")
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(title)

	who := "no user selected"
	whoStyle := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)
	if user != "" {
		who = "● " + user
		whoStyle = lipgloss.NewStyle().Foreground(theme.Accent)
	}
	right := whoStyle.Render(who)

	inner := max(width-4, 0)
	leftGap := max((inner-lipgloss.Width(center))/2-lipgloss.Width(left), 1)
	rightGap := max(inner-lipgloss.Width(left)-leftGap-lipgloss.Width(center)-lipgloss.Width(right), 1)

	content := left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right
	return bar(content, width)
}

func RenderFooter(hints []KeyHint, width int) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts,
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key)+" "+
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description))
	}
	return bar(strings.Join(parts, "   "), width)
}

func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// RenderFrame stacks header, body and footer, giving the body whatever
// height is left.
func RenderFrame(header, content, footer string, width, height int) string {
	bodyHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(bodyHeight).Render(content)
	return header + "\n" + body + "\n" + footer
}

// BodyHeight is the height RenderFrame leaves for the body.
func BodyHeight(header, footer string, height int) int {
	return max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
}
