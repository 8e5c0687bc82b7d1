package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/sentidash/pkg/chart"
	"github.com/vanderheijden86/sentidash/pkg/model"
	"github.com/vanderheijden86/sentidash/pkg/store"
)

// panelBox draws body inside a bordered box of outer size width x height.
func panelBox(title, body string, width, height int, focused bool, t Theme) string {
	style := t.Panel
	if focused {
		style = t.PanelFocused
	}
	innerW, innerH := max(width-2, 1), max(height-2, 1)
	head := t.PanelTitle.Render(truncate(title, innerW))
	lines := append([]string{head}, strings.Split(body, "\n")...)
	if len(lines) > innerH {
		lines = lines[:innerH]
	}
	return style.Width(innerW).Height(innerH).MaxHeight(height).Render(strings.Join(lines, "\n"))
}

// renderCards lays out metric cards in a single row, wrapping to more rows
// when the width is too small.
func renderCards(cards []store.CardView, width int, t Theme) string {
	if len(cards) == 0 || width <= 0 {
		return ""
	}
	const minCard = 14
	perRow := max(min(len(cards), width/minCard), 1)
	cardW := width / perRow
	var rows []string
	for start := 0; start < len(cards); start += perRow {
		end := min(start+perRow, len(cards))
		var cells []string
		for _, c := range cards[start:end] {
			cells = append(cells, renderCard(c, cardW, t))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(rows, "\n")
}

func renderCard(c store.CardView, width int, t Theme) string {
	w := max(width-1, 1)
	title := t.MutedText.Render(fit(c.Title, w))
	value := t.Display(c.Value)
	change := t.Display(c.Change)
	line := value + " " + change
	if lipgloss.Width(line) > w {
		line = value
	}
	return lipgloss.NewStyle().Width(width).Render(title + "\n" + line)
}

// renderCarousel draws the current question with its scores and the dot
// indicator.
func renderCarousel(v store.View, width int, t Theme) string {
	if v.Current == nil {
		msg := "No questions"
		if v.QuestionQuery != "" {
			msg = fmt.Sprintf("No questions match %q", v.QuestionQuery)
		}
		return t.MutedText.Render(msg)
	}
	q := v.Current
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s · %s  (%d/%d)\n", q.Analyst, q.Period, v.Focus+1, len(v.Questions)))
	for _, line := range wrapWords(q.Question, width) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString(fmt.Sprintf("Net Δ %s   Stock next day %s\n", t.Display(q.Delta), t.Display(q.Stock)))
	b.WriteString(RenderDots(v.Dots, t))
	return b.String()
}

// renderTable draws the question table. The focused row is marked.
func renderTable(v store.View, width, height int, t Theme) string {
	if len(v.Questions) == 0 {
		return renderCarousel(v, width, t)
	}
	const (
		analystW = 14
		periodW  = 8
		deltaW   = 7
		stockW   = 8
	)
	questionW := max(width-analystW-periodW-deltaW-stockW-6, 8)
	header := t.MutedText.Render(fmt.Sprintf(" %s %s %s %s %s",
		fit("Analyst", analystW), fit("Question", questionW), fit("Quarter", periodW),
		fit("Net Δ", deltaW), fit("Stock Δ", stockW)))
	lines := []string{header}

	// keep the focused row visible
	rows := max(height-1, 1)
	start := 0
	if v.Focus >= rows {
		start = v.Focus - rows + 1
	}
	for i := start; i < len(v.Questions) && i < start+rows; i++ {
		r := v.Questions[i]
		mark := " "
		if i == v.Focus {
			mark = t.DotActive.Render("▶")
		}
		lines = append(lines, fmt.Sprintf("%s%s %s %s %s %s",
			mark, fit(r.Analyst, analystW), fit(r.Question, questionW), fit(r.Period, periodW),
			t.Display(r.Delta)+strings.Repeat(" ", max(deltaW-len(r.Delta.Text), 0)),
			t.Display(r.Stock)))
	}
	return strings.Join(lines, "\n")
}

// renderChart draws one trend chart. Maximized charts also get a per-series
// summary line.
func renderChart(p store.PanelView, trends []model.TrendData, width, height int, plain bool, t Theme) string {
	plot := chart.ForPanel(p.ChartPanel, trends)
	if !p.Maximized {
		return chart.RenderTerminal(plot, width, height, chart.TerminalOptions{Legend: true, Plain: plain})
	}
	stats := chart.Summarize(plot)
	body := chart.RenderTerminal(plot, width, max(height-len(stats), 3), chart.TerminalOptions{Legend: true, Plain: plain})
	var b strings.Builder
	b.WriteString(body)
	for _, s := range stats {
		b.WriteString("\n")
		b.WriteString(t.MutedText.Render(truncate(fmt.Sprintf("%s: mean %.1f  sd %.1f  min %.1f  max %.1f  Δ %+.1f",
			s.Name, s.Mean, s.StdDev, s.Min, s.Max, s.Delta), width)))
	}
	return b.String()
}
