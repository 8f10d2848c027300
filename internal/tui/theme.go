package tui

import (
	"github.com/charmbracelet/lipgloss"

	"habitfs/internal/database/repository"
)

// ---------------------------------------------------------------------------
// Catppuccin Mocha palette — true-color hex values
// https://catppuccin.com/palette
// ---------------------------------------------------------------------------

const (
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorMauve    lipgloss.Color = "#cba6f7"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
	colorBase     lipgloss.Color = "#1e1e2e"
)

// Semantic aliases
const (
	colorAccent  = colorMauve
	colorFocus   = colorLavender
	colorSuccess = colorGreen
	colorError   = colorRed
	colorDanger  = colorRed
	colorNeutral = colorOverlay1
)

// ---------------------------------------------------------------------------
// Styles
// ---------------------------------------------------------------------------

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	crumbStyle     = lipgloss.NewStyle().Foreground(colorSubtext0)
	statusStyle    = lipgloss.NewStyle().Foreground(colorSubtext0)
	errorStyle     = lipgloss.NewStyle().Foreground(colorError)
	cursorStyle    = lipgloss.NewStyle().Foreground(colorFocus).Bold(true)
	selectedStyle  = lipgloss.NewStyle().Foreground(colorSuccess)
	skeletonStyle  = lipgloss.NewStyle().Foreground(colorSurface1)
	emptyStyle     = lipgloss.NewStyle().Foreground(colorOverlay1).Italic(true)
	menuStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorSurface1).Padding(0, 1)
	menuDanger     = lipgloss.NewStyle().Foreground(colorDanger)
	menuDisabled   = lipgloss.NewStyle().Foreground(colorSurface1)
	menuCursor     = lipgloss.NewStyle().Foreground(colorFocus).Bold(true)
	modalStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorSurface1).Padding(0, 1)
	footerStyle    = lipgloss.NewStyle().Foreground(colorSubtext0)
	barFilled      = lipgloss.NewStyle().Foreground(colorTeal)
	barEmptyStyle  = lipgloss.NewStyle().Foreground(colorSurface1)
	tagCountStyle  = lipgloss.NewStyle().Foreground(colorBlue)
	categoryStyle  = lipgloss.NewStyle().Foreground(colorSubtext0)
	streakStyle    = lipgloss.NewStyle().Foreground(colorPeach)
)

// priorityAccent maps a priority to its accent color. Absent means neutral.
func priorityAccent(p *string) lipgloss.Color {
	if p == nil {
		return colorNeutral
	}
	switch *p {
	case repository.PriorityHigh:
		return colorRed
	case repository.PriorityMedium:
		return colorYellow
	case repository.PriorityLow:
		return colorGreen
	default:
		return colorNeutral
	}
}
