package chart

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var barRunes = []rune(" ▁▂▃▄▅▆▇█")

const lineRune = '●'

type cell struct {
	r     rune
	color string
}

// TerminalOptions tweaks RenderTerminal.
type TerminalOptions struct {
	// Legend adds a legend line above the plot.
	Legend bool
	// Plain disables color, for snapshots and tests.
	Plain bool
}

// RenderTerminal draws p into a width x height block of text. Bars use
// eighth-block characters; the line series is drawn as dots on its own
// scale. Tiny sizes return whatever fits, never an error.
func RenderTerminal(p Plot, width, height int, opts TerminalOptions) string {
	if width < 8 || height < 3 {
		return runewidth.Truncate(p.Title, max(width, 0), "…")
	}
	var lines []string
	if opts.Legend {
		lines = append(lines, legend(p, width, opts.Plain))
		height--
	}
	if p.Empty() {
		lines = append(lines, "no data")
		return strings.Join(lines, "\n")
	}

	const axisW = 4
	plotH := height - 1 // x labels
	plotW := width - 2*axisW
	if plotW < len(p.Categories) {
		plotW = len(p.Categories)
	}
	colW := plotW / len(p.Categories)
	if colW < 1 {
		colW = 1
	}

	grid := make([][]cell, plotH)
	for i := range grid {
		grid[i] = make([]cell, plotW)
		for j := range grid[i] {
			grid[i][j] = cell{r: ' '}
		}
	}

	for ci := range p.Categories {
		x0 := ci * colW
		for bi, b := range p.Bars {
			x := x0 + bi
			if x >= x0+colW-1 && colW > 1 || x >= plotW {
				break
			}
			drawBar(grid, x, p.Primary.Scale(b.Values[ci]), b.Color)
		}
		if len(p.Line.Values) > ci {
			x := x0 + colW - 1
			if x >= plotW {
				x = plotW - 1
			}
			f := p.Secondary.Scale(p.Line.Values[ci])
			row := plotH - 1 - int(f*float64(plotH-1)+0.5)
			grid[row][x] = cell{r: lineRune, color: p.Line.Color}
		}
	}

	for i, row := range grid {
		var b strings.Builder
		b.WriteString(axisLabel(p.Primary, i, plotH, axisW))
		for _, c := range row {
			b.WriteString(paint(string(c.r), c.color, opts.Plain))
		}
		if len(p.Line.Values) > 0 {
			b.WriteString(axisLabel(p.Secondary, i, plotH, axisW))
		}
		lines = append(lines, b.String())
	}
	lines = append(lines, strings.Repeat(" ", axisW)+xLabels(p.Categories, colW, plotW))
	return strings.Join(lines, "\n")
}

// drawBar fills column x from the bottom up to fraction f of the height.
func drawBar(grid [][]cell, x int, f float64, color string) {
	h := len(grid)
	eighths := int(f*float64(h*8) + 0.5)
	for row := h - 1; row >= 0 && eighths > 0; row-- {
		n := min(eighths, 8)
		grid[row][x] = cell{r: barRunes[n], color: color}
		eighths -= n
	}
}

// axisLabel prints the top and bottom values of an axis, blank elsewhere.
func axisLabel(a Axis, row, height, w int) string {
	var v float64
	switch row {
	case 0:
		v = a.Max
	case height - 1:
		v = a.Min
	default:
		return strings.Repeat(" ", w)
	}
	return runewidth.FillLeft(runewidth.Truncate(shortNumber(v), w-1, ""), w-1) + " "
}

func shortNumber(v float64) string {
	switch {
	case v >= 1000:
		return fmt.Sprintf("%.0fk", v/1000)
	case v == float64(int(v)):
		return fmt.Sprintf("%d", int(v))
	default:
		return fmt.Sprintf("%.1f", v)
	}
}

// xLabels writes each category label at the start of its column, shortened
// to fit. "Q1 2022" becomes "Q1'22" when space is tight.
func xLabels(cats []string, colW, plotW int) string {
	out := []rune(strings.Repeat(" ", plotW))
	for i, c := range cats {
		label := c
		if runewidth.StringWidth(label) >= colW {
			label = compactQuarter(label)
		}
		label = runewidth.Truncate(label, max(colW-1, 1), "")
		x := i * colW
		for j, r := range []rune(label) {
			if x+j < len(out) {
				out[x+j] = r
			}
		}
	}
	return string(out)
}

func compactQuarter(s string) string {
	var q string
	var y int
	if _, err := fmt.Sscanf(s, "%s %d", &q, &y); err == nil && y >= 2000 {
		return fmt.Sprintf("%s'%02d", q, y%100)
	}
	return s
}

func legend(p Plot, width int, plain bool) string {
	var parts []string
	if p.Line.Name != "" {
		parts = append(parts, paint(string(lineRune), p.Line.Color, plain)+" "+p.Line.Name)
	}
	for _, b := range p.Bars {
		parts = append(parts, paint("█", b.Color, plain)+" "+b.Name)
	}
	line := strings.Join(parts, "  ")
	if lipgloss.Width(line) > width {
		return truncateStyled(parts, width)
	}
	return line
}

func truncateStyled(parts []string, width int) string {
	var b strings.Builder
	used := 0
	for i, p := range parts {
		w := lipgloss.Width(p)
		if i > 0 {
			w += 2
		}
		if used+w > width {
			break
		}
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(p)
		used += w
	}
	return b.String()
}

func paint(s, color string, plain bool) string {
	if plain || color == "" || s == " " {
		return s
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(s)
}
