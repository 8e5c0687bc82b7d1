package datasource

import (
	"fmt"
	"strings"

	"github.com/vanderheijden86/sentidash/pkg/model"
)

// DatasetDiff summarises what changed between two loads of a source. The
// dashboard shows it in the status bar after a live reload.
type DatasetDiff struct {
	QuestionsBefore int
	QuestionsAfter  int
	// AddedAnalysts are analyst names asking questions only in the new data.
	AddedAnalysts []string
	// RemovedAnalysts are analyst names asking questions only in the old data.
	RemovedAnalysts []string
	TrendsBefore    int
	TrendsAfter     int
	// ChangedCards lists card keys whose value or change moved.
	ChangedCards []string
}

// HasChanges reports whether anything visible differs.
func (d DatasetDiff) HasChanges() bool {
	return d.QuestionsBefore != d.QuestionsAfter || d.TrendsBefore != d.TrendsAfter ||
		len(d.AddedAnalysts) > 0 || len(d.RemovedAnalysts) > 0 || len(d.ChangedCards) > 0
}

// Summary returns a one-line description.
func (d DatasetDiff) Summary() string {
	if !d.HasChanges() {
		return fmt.Sprintf("no changes (%d questions)", d.QuestionsAfter)
	}
	var parts []string
	if delta := d.QuestionsAfter - d.QuestionsBefore; delta != 0 {
		parts = append(parts, fmt.Sprintf("%+d questions", delta))
	}
	if delta := d.TrendsAfter - d.TrendsBefore; delta != 0 {
		parts = append(parts, fmt.Sprintf("%+d periods", delta))
	}
	if n := len(d.AddedAnalysts); n > 0 {
		parts = append(parts, fmt.Sprintf("%d new analysts", n))
	}
	if n := len(d.RemovedAnalysts); n > 0 {
		parts = append(parts, fmt.Sprintf("%d analysts gone", n))
	}
	if n := len(d.ChangedCards); n > 0 {
		parts = append(parts, fmt.Sprintf("%d cards updated", n))
	}
	if len(parts) == 0 {
		parts = append(parts, "data updated")
	}
	return strings.Join(parts, ", ")
}

// Diff compares two datasets.
func Diff(before, after model.Dataset) DatasetDiff {
	d := DatasetDiff{
		QuestionsBefore: len(before.Questions),
		QuestionsAfter:  len(after.Questions),
		TrendsBefore:    len(before.Trends),
		TrendsAfter:     len(after.Trends),
	}

	oldNames := analystNames(before.Questions)
	newNames := analystNames(after.Questions)
	for _, n := range orderedNames(after.Questions) {
		if !oldNames[n] {
			d.AddedAnalysts = append(d.AddedAnalysts, n)
		}
	}
	for _, n := range orderedNames(before.Questions) {
		if !newNames[n] {
			d.RemovedAnalysts = append(d.RemovedAnalysts, n)
		}
	}

	oldCards := cardIndex(before)
	for _, c := range append(append([]model.MetricCard{}, after.Positive...), after.Negative...) {
		if prev, ok := oldCards[c.Key]; !ok || prev != c.Metric {
			d.ChangedCards = append(d.ChangedCards, c.Key)
		}
	}
	return d
}

func analystNames(qs []model.AnalystQuestion) map[string]bool {
	m := make(map[string]bool, len(qs))
	for _, q := range qs {
		m[q.Analyst] = true
	}
	return m
}

func orderedNames(qs []model.AnalystQuestion) []string {
	seen := make(map[string]bool, len(qs))
	var out []string
	for _, q := range qs {
		if !seen[q.Analyst] {
			seen[q.Analyst] = true
			out = append(out, q.Analyst)
		}
	}
	return out
}

func cardIndex(ds model.Dataset) map[string]model.SentimentMetric {
	m := make(map[string]model.SentimentMetric, len(ds.Positive)+len(ds.Negative))
	for _, c := range ds.Positive {
		m[c.Key] = c.Metric
	}
	for _, c := range ds.Negative {
		m[c.Key] = c.Metric
	}
	return m
}
