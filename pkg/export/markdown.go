package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vanderheijden86/sentidash/pkg/chart"
	"github.com/vanderheijden86/sentidash/pkg/store"
)

// ReportFile is the markdown report written by WriteReport.
const ReportFile = "report.md"

// GenerateMarkdown creates a markdown report of the dashboard view. Charts
// are linked by their exported file names.
func GenerateMarkdown(v store.View, charts []Result, generated time.Time) string {
	var sb strings.Builder

	sb.WriteString("# Earnings Call Sentiment\n\n")
	fmt.Fprintf(&sb, "*Generated: %s*\n\n", generated.Format(time.RFC1123))
	fmt.Fprintf(&sb, "- Analyst: %s\n", v.SelectedAnalyst.Name)
	fmt.Fprintf(&sb, "- Range: %s, %d days\n", v.Range, v.Range.Days())
	if v.QuestionQuery != "" {
		fmt.Fprintf(&sb, "- Question filter: %q\n", v.QuestionQuery)
	}
	sb.WriteString("\n")

	writeCards := func(title string, cards []store.CardView) {
		fmt.Fprintf(&sb, "## %s\n\n| Metric | Value | Change |\n|--------|-------|--------|\n", title)
		for _, c := range cards {
			fmt.Fprintf(&sb, "| %s | %s | %s |\n", c.Title, c.Value.Text, c.Change.Text)
		}
		sb.WriteString("\n")
	}
	writeCards("Positive Sentiment", v.Positive)
	writeCards("Negative Sentiment", v.Negative)

	fmt.Fprintf(&sb, "## Analyst Questions (%d)\n\n", len(v.Questions))
	sb.WriteString("| Analyst | Question | Quarter | Net Δ | Stock Δ |\n|---|---|---|---|---|\n")
	for _, q := range v.Questions {
		fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s |\n",
			escapeCell(q.Analyst), escapeCell(truncateRunes(q.Question, 80)), q.Period, q.Delta.Text, q.Stock.Text)
	}
	sb.WriteString("\n")

	if len(charts) > 0 {
		sb.WriteString("## Trends\n\n")
		for _, c := range charts {
			fmt.Fprintf(&sb, "### %s\n\n![%s](%s)\n\n", c.Title, c.Title, filepath.Base(c.Path))
			for _, p := range v.Panels {
				if p.ID != c.Panel {
					continue
				}
				for _, s := range chart.Summarize(chart.ForPanel(p.ChartPanel, v.Trends)) {
					fmt.Fprintf(&sb, "- %s: mean %.1f, sd %.1f, range %.1f to %.1f, last change %+.1f\n",
						s.Name, s.Mean, s.StdDev, s.Min, s.Max, s.Delta)
				}
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// WriteReport writes GenerateMarkdown's output to dir/report.md.
func WriteReport(dir string, v store.View, charts []Result, generated time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	path := filepath.Join(dir, ReportFile)
	if err := os.WriteFile(path, []byte(GenerateMarkdown(v, charts, generated)), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

func escapeCell(s string) string {
	return strings.NewReplacer("|", `\|`, "\n", " ").Replace(s)
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
