package store

import (
	"fmt"

	"github.com/vanderheijden86/sentidash/pkg/daterange"
	"github.com/vanderheijden86/sentidash/pkg/model"
)

// Action is a state transition request. Implementations are plain values.
type Action interface {
	actionName() string
}

type (
	// SetAnalystSearch replaces the analyst dropdown search text.
	SetAnalystSearch struct{ Text string }
	// SelectAnalyst picks an analyst option by id.
	SelectAnalyst struct{ ID string }
	// SelectPreset resolves a named preset into the date range.
	SelectPreset struct{ Preset daterange.Preset }
	// SetDateStart edits the start bound by hand.
	SetDateStart struct{ Date daterange.Date }
	// SetDateEnd edits the end bound by hand.
	SetDateEnd struct{ Date daterange.Date }
	// SetDateRange replaces the whole range.
	SetDateRange struct{ Range daterange.Range }
	// ToggleMaximize maximizes or restores a panel.
	ToggleMaximize struct{ Panel model.PanelID }
	// SetQuestionSearch refilters the carousel and refocuses its first item.
	SetQuestionSearch struct{ Text string }
	// CarouselNext advances the carousel.
	CarouselNext struct{}
	// CarouselPrev moves the carousel back.
	CarouselPrev struct{}
	// CarouselJumpTo focuses a pagination dot.
	CarouselJumpTo struct{ Index int }
	// SelectTab switches the navigation tab.
	SelectTab struct{ Tab Tab }
	// ReplaceDataset swaps in freshly loaded data.
	ReplaceDataset struct{ Dataset model.Dataset }
)

func (SetAnalystSearch) actionName() string  { return "SetAnalystSearch" }
func (SelectAnalyst) actionName() string     { return "SelectAnalyst" }
func (SelectPreset) actionName() string      { return "SelectPreset" }
func (SetDateStart) actionName() string      { return "SetDateStart" }
func (SetDateEnd) actionName() string        { return "SetDateEnd" }
func (SetDateRange) actionName() string      { return "SetDateRange" }
func (ToggleMaximize) actionName() string    { return "ToggleMaximize" }
func (SetQuestionSearch) actionName() string { return "SetQuestionSearch" }
func (CarouselNext) actionName() string      { return "CarouselNext" }
func (CarouselPrev) actionName() string      { return "CarouselPrev" }
func (CarouselJumpTo) actionName() string    { return "CarouselJumpTo" }
func (SelectTab) actionName() string         { return "SelectTab" }
func (ReplaceDataset) actionName() string    { return "ReplaceDataset" }

// Describe returns a short human-readable form of a, used in debug logs.
func Describe(a Action) string {
	switch a := a.(type) {
	case ReplaceDataset:
		return fmt.Sprintf("ReplaceDataset{%d questions, %d trends}", len(a.Dataset.Questions), len(a.Dataset.Trends))
	case nil:
		return "<nil>"
	default:
		return fmt.Sprintf("%s%+v", a.actionName(), a)
	}
}

// Reduce applies a to s and returns the new state. It never mutates s's
// slices. Actions that do not apply (an unknown preset, an out-of-range
// jump, an analyst id missing from the dataset) return s unchanged.
func Reduce(s State, a Action, now daterange.Date) State {
	switch a := a.(type) {
	case SetAnalystSearch:
		s.AnalystSearch = a.Text
	case SelectAnalyst:
		if s.Dataset.HasAnalyst(a.ID) || a.ID == model.AllAnalystsID {
			s.SelectedAnalyst = a.ID
		}
	case SelectPreset:
		s.Range = s.Range.Apply(a.Preset, now)
	case SetDateStart:
		s.Range = s.Range.WithStart(a.Date)
	case SetDateEnd:
		s.Range = s.Range.WithEnd(a.Date)
	case SetDateRange:
		s.Range = a.Range
	case ToggleMaximize:
		s.Focus.Toggle(a.Panel)
	case SetQuestionSearch:
		s.Carousel.SetQuery(a.Text)
	case CarouselNext:
		s.Carousel.Next()
	case CarouselPrev:
		s.Carousel.Prev()
	case CarouselJumpTo:
		s.Carousel.JumpTo(a.Index)
	case SelectTab:
		if a.Tab.Valid() {
			s.Tab = a.Tab
		}
	case ReplaceDataset:
		s.Dataset = a.Dataset
		s.Carousel.SetItems(a.Dataset.Questions)
		if !a.Dataset.HasAnalyst(s.SelectedAnalyst) {
			s.SelectedAnalyst = model.AllAnalystsID
		}
	}
	return s
}
