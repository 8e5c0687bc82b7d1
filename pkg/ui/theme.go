package ui

import (
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/sentidash/pkg/format"
)

// TermProfile holds the detected terminal color profile. Computed once at
// package init so every style helper can branch without re-detecting.
var TermProfile colorprofile.Profile

func init() {
	TermProfile = colorprofile.Detect(os.Stdout, os.Environ())
}

// ThemeBg returns the given hex color for TrueColor terminals and
// lipgloss.NoColor{} otherwise, so 16/256-color terminals keep their own
// background.
func ThemeBg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.TrueColor {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(hex)
}

// ThemeFg returns the given hex color for ANSI256+ terminals and ANSI white
// for 16-color or lower terminals.
func ThemeFg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.ANSI256 {
		return lipgloss.ANSIColor(7)
	}
	return lipgloss.Color(hex)
}

// Theme bundles the dashboard's colors and precomputed styles.
type Theme struct {
	Renderer *lipgloss.Renderer

	Primary  lipgloss.AdaptiveColor
	Subtext  lipgloss.AdaptiveColor
	Positive lipgloss.AdaptiveColor
	Negative lipgloss.AdaptiveColor
	Border   lipgloss.AdaptiveColor
	Muted    lipgloss.AdaptiveColor

	Base         lipgloss.Style
	Header       lipgloss.Style
	TabActive    lipgloss.Style
	TabInactive  lipgloss.Style
	Panel        lipgloss.Style
	PanelFocused lipgloss.Style
	PanelTitle   lipgloss.Style
	MutedText    lipgloss.Style
	PositiveText lipgloss.Style
	NegativeText lipgloss.Style
	DotActive    lipgloss.Style
	DotInactive  lipgloss.Style
}

// DefaultTheme returns the adaptive dashboard theme. Positive and negative
// tones use the chart palette's green and coral.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,
		Primary:  lipgloss.AdaptiveColor{Light: "#0077A8", Dark: "#00B5E2"},
		Subtext:  lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BFBFBF"},
		Positive: lipgloss.AdaptiveColor{Light: "#007A5E", Dark: "#01A982"},
		Negative: lipgloss.AdaptiveColor{Light: "#C0452A", Dark: "#FF8D6D"},
		Border:   lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#425563"},
		Muted:    lipgloss.AdaptiveColor{Light: "#666666", Dark: "#7A8A96"},
	}

	t.Base = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#F2F2F2"})
	t.Header = r.NewStyle().
		Background(t.Primary).
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#10161A"}).
		Bold(true).
		Padding(0, 1)
	t.TabActive = r.NewStyle().Foreground(t.Primary).Bold(true).Underline(true)
	t.TabInactive = r.NewStyle().Foreground(t.Muted)
	t.Panel = r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Border)
	t.PanelFocused = r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Primary)
	t.PanelTitle = r.NewStyle().Bold(true)
	t.MutedText = r.NewStyle().Foreground(t.Muted)
	t.PositiveText = r.NewStyle().Foreground(t.Positive)
	t.NegativeText = r.NewStyle().Foreground(t.Negative)
	t.DotActive = r.NewStyle().Foreground(t.Primary)
	t.DotInactive = r.NewStyle().Foreground(t.Border)
	return t
}

// Tone renders s in the color of tone.
func (t Theme) Tone(s string, tone format.Tone) string {
	if tone == format.ToneNegative {
		return t.NegativeText.Render(s)
	}
	return t.PositiveText.Render(s)
}

// Display renders a formatted value in its tone.
func (t Theme) Display(d format.Display) string { return t.Tone(d.Text, d.Tone) }

// TestTheme returns a theme suitable for use in tests.
func TestTheme() Theme {
	return DefaultTheme(lipgloss.NewRenderer(os.Stdout))
}
