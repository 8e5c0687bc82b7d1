package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/sentidash/pkg/daterange"
	"github.com/vanderheijden86/sentidash/pkg/model"
	"github.com/vanderheijden86/sentidash/pkg/store"
	"github.com/vanderheijden86/sentidash/pkg/testutil"
	"github.com/vanderheijden86/sentidash/pkg/watcher"
)

func fixedClock() time.Time { return time.Date(2024, time.August, 31, 12, 0, 0, 0, time.UTC) }

func newTestModel(t *testing.T, qs ...model.AnalystQuestion) Model {
	t.Helper()
	ds := testutil.QuickDataset()
	if len(qs) > 0 {
		ds.Questions = qs
	}
	m := NewModel(store.New(ds, fixedClock), Options{Plain: true})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 140, Height: 50})
	return updated.(Model)
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "shift+tab":
			msg = tea.KeyMsg{Type: tea.KeyShiftTab}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "ctrl+u":
			msg = tea.KeyMsg{Type: tea.KeyCtrlU}
		case "f4":
			msg = tea.KeyMsg{Type: tea.KeyF4}
		case "f1":
			msg = tea.KeyMsg{Type: tea.KeyF1}
		case "f2":
			msg = tea.KeyMsg{Type: tea.KeyF2}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func TestCarouselKeys(t *testing.T) {
	m := newTestModel(t, testutil.Named("alpha", "beta", "gamma")...)
	st := func() int { return m.Store().State().Carousel.Focus() }

	m = press(t, m, "l")
	if st() != 1 {
		t.Fatalf("after l focus = %d, want 1", st())
	}
	m = press(t, m, "h", "h")
	if st() != 2 {
		t.Fatalf("prev should wrap to last, got %d", st())
	}
	m = press(t, m, "1")
	if st() != 0 {
		t.Fatalf("jump to 1 gave focus %d", st())
	}
	m = press(t, m, "9")
	if st() != 0 {
		t.Fatalf("out-of-range jump moved focus to %d", st())
	}
}

func TestQuestionSearchResetsFocus(t *testing.T) {
	m := newTestModel(t, testutil.Named("Cloud margins", "Storage demand", "Cloud backlog")...)
	m = press(t, m, "l", "l")

	m = press(t, m, "?", "c", "l", "o", "u", "d")
	v := m.Store().View()
	if v.QuestionQuery != "cloud" || len(v.Questions) != 2 || v.Focus != 0 {
		t.Fatalf("query=%q questions=%d focus=%d", v.QuestionQuery, len(v.Questions), v.Focus)
	}
	if m.mode != inputQuestionSearch {
		t.Fatal("expected to stay in search input")
	}

	m = press(t, m, "enter")
	if m.mode != inputNone || m.Store().View().QuestionQuery != "cloud" {
		t.Error("enter should keep the query and leave input")
	}

	m = press(t, m, "?", "esc")
	if q := m.Store().View().QuestionQuery; q != "" {
		t.Errorf("esc should clear the query, got %q", q)
	}
}

func TestAnalystSearchAndCycle(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "a")
	if id := m.Store().State().SelectedAnalyst; id != "1" {
		t.Fatalf("a selected %q, want 1", id)
	}
	m = press(t, m, "A", "A")
	if id := m.Store().State().SelectedAnalyst; id != "5" {
		t.Fatalf("A twice selected %q, want 5", id)
	}

	m = press(t, m, "/", "s", "o", "n", "enter")
	v := m.Store().View()
	if len(v.Analysts) != 2 {
		t.Fatalf("son matched %d analysts", len(v.Analysts))
	}
	m = press(t, m, "a")
	if id := m.Store().State().SelectedAnalyst; id != "2" {
		t.Errorf("cycling within filtered list selected %q, want 2", id)
	}
}

func TestPresetCycle(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "p")
	r := m.Store().State().Range
	if r.Preset != daterange.Preset7d || r.End != daterange.New(2024, time.August, 31) || r.Start != daterange.New(2024, time.August, 24) {
		t.Fatalf("p gave %v", r)
	}
	m = press(t, m, "P")
	if p := m.Store().State().Range.Preset; p != daterange.PresetYTD {
		t.Errorf("P from 7d gave %q, want ytd", p)
	}
}

func TestDateInput(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "s", "ctrl+u")
	m = press(t, m, "2", "0", "2", "3", "-", "0", "6", "-", "0", "1", "enter")
	r := m.Store().State().Range
	if r.Start != daterange.New(2023, time.June, 1) || !r.IsCustom() {
		t.Fatalf("start = %v", r)
	}

	m = press(t, m, "e", "ctrl+u", "x", "enter")
	if m.mode != inputEndDate {
		t.Fatal("invalid date should keep the input open")
	}
	if _, isErr := m.StatusMessage(); !isErr {
		t.Error("invalid date should set an error status")
	}
	m = press(t, m, "esc")
	if m.Store().State().Range.End != daterange.New(2024, time.January, 1) {
		t.Error("cancelled edit changed the end date")
	}
}

func TestDateInput_InvertedRangePassesThrough(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "s", "ctrl+u")
	for _, r := range "2025-01-01" {
		m = press(t, m, string(r))
	}
	m = press(t, m, "enter")

	if m.mode != inputNone {
		t.Error("a parseable start date should close the input even when inverted")
	}
	r := m.Store().State().Range
	want := daterange.Range{Start: daterange.New(2025, time.January, 1), End: daterange.New(2024, time.January, 1)}
	if r != want {
		t.Fatalf("range = %v, want %v unclamped", r, want)
	}
	if !r.Inverted() || !r.IsCustom() {
		t.Errorf("range should be inverted and custom, got %v", r)
	}
	msg, isErr := m.StatusMessage()
	if !isErr || !strings.Contains(msg, "after end") {
		t.Errorf("status = %q (error %v), want inverted range error", msg, isErr)
	}
	if got := m.renderFilters(m.Store().View()); !strings.Contains(got, "2025-01-01 → 2024-01-01") {
		t.Errorf("filters = %q, want the inverted range shown", got)
	}
}

func TestMaximizeFocusedPanel(t *testing.T) {
	m := newTestModel(t)
	if m.FocusedPanel() != model.PanelQuestions {
		t.Fatalf("initial focus = %q", m.FocusedPanel())
	}
	m = press(t, m, "tab", "m")
	if id, ok := m.Store().State().Focus.Maximized(); !ok || id != model.PanelPositivity {
		t.Fatalf("maximized = %q, %v", id, ok)
	}
	body := m.renderBody(m.Store().View())
	if !strings.Contains(body, "Net Positivity Trend") || strings.Contains(body, "Calmness vs Doubt") {
		t.Error("maximized body should hold only the focused panel")
	}
	if !strings.Contains(body, "mean") {
		t.Error("maximized chart should show series stats")
	}

	m = press(t, m, "esc")
	if _, ok := m.Store().State().Focus.Maximized(); ok {
		t.Error("esc should restore the grid")
	}
	body = m.renderBody(m.Store().View())
	for _, p := range model.ChartPanels() {
		if !strings.Contains(body, p.Title) {
			t.Errorf("grid missing %q", p.Title)
		}
	}

	m = press(t, m, "shift+tab", "shift+tab")
	if m.FocusedPanel() != model.PanelSurprise {
		t.Errorf("shift+tab wrap gave %q", m.FocusedPanel())
	}
}

func TestTabsAndTable(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "f4")
	if m.Store().State().Tab != store.TabDefinitions {
		t.Fatal("F4 should open definitions")
	}
	if !strings.Contains(m.View(), "Sentiment Definitions") {
		t.Error("definitions tab not rendered")
	}
	m = press(t, m, "f2")
	if !strings.Contains(m.renderBody(m.Store().View()), "No data") {
		t.Error("speakers tab should show a placeholder")
	}
	m = press(t, m, "f1", "t")
	if !m.ShowTable() || !strings.Contains(m.renderBody(m.Store().View()), "Stock Δ") {
		t.Error("t should show the question table")
	}
}

func TestDataReload(t *testing.T) {
	m := newTestModel(t)
	next := testutil.New(testutil.GeneratorConfig{Seed: 7, Questions: 3, Periods: 4}).Dataset()

	updated, _ := m.Update(DataReloadedMsg{Dataset: next})
	m = updated.(Model)
	if got := len(m.Store().State().Dataset.Questions); got != 3 {
		t.Fatalf("questions after reload = %d", got)
	}
	if msg, isErr := m.StatusMessage(); isErr || !strings.HasPrefix(msg, "reloaded:") {
		t.Errorf("status = %q, %v", msg, isErr)
	}

	updated, _ = m.Update(DataReloadedMsg{Err: errors.New("boom")})
	m = updated.(Model)
	if msg, isErr := m.StatusMessage(); !isErr || !strings.Contains(msg, "boom") {
		t.Errorf("status = %q, %v", msg, isErr)
	}
	if got := len(m.Store().State().Dataset.Questions); got != 3 {
		t.Error("failed reload replaced the dataset")
	}
}

func TestFileChangedError(t *testing.T) {
	m := newTestModel(t)
	updated, cmd := m.Update(FileChangedMsg{Event: watcher.Event{Path: "data.json", Err: watcher.ErrFileRemoved}})
	m = updated.(Model)
	if _, isErr := m.StatusMessage(); !isErr {
		t.Error("watch error should show in the status bar")
	}
	if cmd != nil {
		t.Error("no watcher or provider: expected no follow-up command")
	}
}

func TestQuitAndResize(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q command is not tea.Quit")
	}

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 12})
	m = updated.(Model)
	for _, line := range strings.Split(m.View(), "\n") {
		if w := len([]rune(line)); w > 200 {
			t.Errorf("line much wider than terminal: %d", w)
		}
	}
}
