package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Spacing constants for consistent layout (in characters)
const (
	SpaceXS = 1
	SpaceSM = 2
	SpaceMD = 3
)

var (
	ColorText    = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#F2F2F2"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#7A8A96"}
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#007A5E", Dark: "#01A982"}
	ColorDanger  = lipgloss.AdaptiveColor{Light: "#C0452A", Dark: "#FF8D6D"}

	// Status bar backgrounds
	ColorSuccessBg = lipgloss.AdaptiveColor{Light: "#D4EDDA", Dark: "#12382E"}
	ColorDangerBg  = lipgloss.AdaptiveColor{Light: "#F8D7DA", Dark: "#3D1F1A"}
)

// RenderMiniBar renders a horizontal bar for a value between 0 and 1.
func RenderMiniBar(value float64, width int, color lipgloss.TerminalColor, t Theme) string {
	if width <= 0 {
		return ""
	}
	value = min(max(value, 0), 1)
	filled := min(int(value*float64(width)), width)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return t.Renderer.NewStyle().Foreground(color).Render(bar)
}

// RenderDots renders the carousel position indicator.
func RenderDots(dots []bool, t Theme) string {
	if len(dots) == 0 {
		return ""
	}
	parts := make([]string, len(dots))
	for i, on := range dots {
		if on {
			parts[i] = t.DotActive.Render("●")
		} else {
			parts[i] = t.DotInactive.Render("○")
		}
	}
	return strings.Join(parts, " ")
}

// RenderDivider renders a horizontal divider line
func RenderDivider(width int) string {
	if width <= 0 {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(ColorMuted).
		Render(strings.Repeat("─", width))
}
