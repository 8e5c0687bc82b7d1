// Package filter implements the dashboard's client-side search: linear,
// order-preserving, case-insensitive substring matching.
package filter

import (
	"strings"

	"github.com/vanderheijden86/sentidash/pkg/metrics"
	"github.com/vanderheijden86/sentidash/pkg/model"
)

// Blank reports whether a search string should match everything.
func Blank(search string) bool {
	return strings.TrimSpace(search) == ""
}

// ContainsFold reports whether needle occurs in haystack ignoring case.
func ContainsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// Analysts returns the options whose display name contains search. A blank
// search returns options itself. The "All Analysts" sentinel is matched by
// its label like any other option, so a search for "john" hides it.
func Analysts(options []model.AnalystOption, search string) []model.AnalystOption {
	if Blank(search) {
		return options
	}
	defer metrics.Timer(metrics.AnalystFilter)()

	out := make([]model.AnalystOption, 0, len(options))
	for _, o := range options {
		if ContainsFold(o.Name, search) {
			out = append(out, o)
		}
	}
	return out
}

// Questions returns the items whose question text or analyst name contains
// query. A blank query returns items itself.
func Questions(items []model.AnalystQuestion, query string) []model.AnalystQuestion {
	if Blank(query) {
		return items
	}
	defer metrics.Timer(metrics.QuestionFilter)()

	needle := strings.ToLower(query)
	out := make([]model.AnalystQuestion, 0, len(items))
	for _, q := range items {
		if MatchQuestion(q, needle) {
			out = append(out, q)
		}
	}
	return out
}

// MatchQuestion reports whether q matches an already lower-cased needle.
func MatchQuestion(q model.AnalystQuestion, needle string) bool {
	return strings.Contains(strings.ToLower(q.Question), needle) ||
		strings.Contains(strings.ToLower(q.Analyst), needle)
}
