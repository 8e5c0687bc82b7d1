// Package store is the dashboard's state container. All transitions go
// through Reduce, a pure function of the previous State and a typed Action;
// the Store wrapper adds a clock and derives render-ready Views.
package store

import (
	"fmt"
	"strings"

	"github.com/vanderheijden86/sentidash/pkg/carousel"
	"github.com/vanderheijden86/sentidash/pkg/daterange"
	"github.com/vanderheijden86/sentidash/pkg/focus"
	"github.com/vanderheijden86/sentidash/pkg/model"
)

// Tab is a top-level navigation section.
type Tab string

const (
	TabQuestions   Tab = "questions"
	TabSpeakers    Tab = "speakers"
	TabComparison  Tab = "comparison"
	TabDefinitions Tab = "definitions"
)

// Tabs returns the navigation tabs in display order.
func Tabs() []Tab {
	return []Tab{TabQuestions, TabSpeakers, TabComparison, TabDefinitions}
}

// Title returns the heading shown in the nav bar.
func (t Tab) Title() string {
	switch t {
	case TabQuestions:
		return "Analyst Question Sentiment"
	case TabSpeakers:
		return "Prepared Statement Speaker Sentiment"
	case TabComparison:
		return "SP Global Sentiment vs. Hume.ai Sentiment"
	case TabDefinitions:
		return "Sentiment Definitions"
	}
	return string(t)
}

// Valid reports whether t is one of Tabs.
func (t Tab) Valid() bool {
	for _, x := range Tabs() {
		if x == t {
			return true
		}
	}
	return false
}

// ParseTab accepts a tab token case-insensitively.
func ParseTab(s string) (Tab, error) {
	t := Tab(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown tab %q", s)
	}
	return t, nil
}

// State is everything the dashboard remembers between key presses.
type State struct {
	Dataset         model.Dataset
	AnalystSearch   string
	SelectedAnalyst string
	Range           daterange.Range
	Focus           focus.Controller
	Carousel        carousel.Carousel
	Tab             Tab
}

// NewState returns the initial state for ds: all analysts, the default
// date range, no search and nothing maximized.
func NewState(ds model.Dataset) State {
	return State{
		Dataset:         ds,
		SelectedAnalyst: model.AllAnalystsID,
		Range:           daterange.DefaultRange(),
		Carousel:        carousel.New(ds.Questions),
		Tab:             TabQuestions,
	}
}
