package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/masterly/internal/ui/theme"
)

const bannerArt = `
 ███╗   ███╗ █████╗ ███████╗████████╗███████╗██████╗ ██╗  ██╗   ██╗
 ████╗ ████║██╔══██╗██╔════╝╚══██╔══╝██╔════╝██╔══██╗██║  ╚██╗ ██╔╝
 ██╔████╔██║███████║███████╗   ██║   █████╗  ██████╔╝██║   ╚████╔╝
 ██║╚██╔╝██║██╔══██║╚════██║   ██║   ██╔══╝  ██╔══██╗██║    ╚██╔╝
 ██║ ╚═╝ ██║██║  ██║███████║   ██║   ███████╗██║  ██║███████╗██║
 ╚═╝     ╚═╝╚═╝  ╚═╝╚══════╝   ╚═╝   ╚══════╝╚═╝  ╚═╝╚══════╝╚═╝`

const bannerCompact = "M A S T E R L Y"

// RenderBanner falls back to spaced letters below 70 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 70 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
