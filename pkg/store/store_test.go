package store

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"pgregory.net/rapid"

	"github.com/vanderheijden86/sentidash/pkg/daterange"
	"github.com/vanderheijden86/sentidash/pkg/debug"
	"github.com/vanderheijden86/sentidash/pkg/format"
	"github.com/vanderheijden86/sentidash/pkg/model"
)

func testDataset() model.Dataset {
	pos := model.DefaultPositiveCards()
	pos[0].Metric = model.SentimentMetric{Value: 14.8, Change: 0.4}
	neg := model.DefaultNegativeCards()
	neg[0].Metric = model.SentimentMetric{Value: -3, Change: -1.2}
	return model.Dataset{
		Analysts: model.DefaultAnalystOptions(),
		Positive: pos,
		Negative: neg,
		Trends:   []model.TrendData{{Quarter: "Q1 2022", Values: map[string]float64{model.KeyInterest: 40}}},
		Questions: []model.AnalystQuestion{
			{Analyst: "Analyst 1", Question: "A one", Quarter: "Q1", Year: 2023, NetPositivity: 60, NetNegativity: 20, StockChangeNextDay: 1.5},
			{Analyst: "Analyst 2", Question: "A two", Quarter: "Q2", Year: 2023, NetPositivity: 30, NetNegativity: 45, StockChangeNextDay: -2.25},
			{Analyst: "Analyst 3", Question: "B three", Quarter: "Q3", Year: 2023, NetPositivity: 50, NetNegativity: 50},
		},
	}
}

var today = daterange.New(2024, time.August, 31)

func fixedClock() time.Time { return time.Date(2024, time.August, 31, 15, 0, 0, 0, time.Local) }

func TestNewState(t *testing.T) {
	s := NewState(testDataset())
	if s.SelectedAnalyst != model.AllAnalystsID || s.Tab != TabQuestions {
		t.Errorf("initial state = %+v", s)
	}
	if s.Range != daterange.DefaultRange() {
		t.Errorf("initial range = %v", s.Range)
	}
	if _, ok := s.Focus.Maximized(); ok {
		t.Error("nothing should be maximized initially")
	}
}

func TestReduce_QuestionSearchResetsFocus(t *testing.T) {
	s := NewState(testDataset())
	s = Reduce(s, SetQuestionSearch{Text: "A"}, today)
	s = Reduce(s, CarouselNext{}, today)
	if s.Carousel.Focus() != 1 {
		t.Fatalf("focus = %d, want 1", s.Carousel.Focus())
	}
	s = Reduce(s, SetQuestionSearch{Text: "B"}, today)
	cur, ok := s.Carousel.Current()
	if !ok || cur.Question != "B three" {
		t.Errorf("current after search B = %+v, %v", cur, ok)
	}
}

func TestReduce_IsPure(t *testing.T) {
	before := NewState(testDataset())
	after := Reduce(before, CarouselNext{}, today)
	after = Reduce(after, ToggleMaximize{Panel: model.PanelSurprise}, today)
	if before.Carousel.Focus() != 0 {
		t.Error("Reduce mutated the input carousel")
	}
	if _, ok := before.Focus.Maximized(); ok {
		t.Error("Reduce mutated the input focus")
	}
	if after.Carousel.Focus() != 1 || !after.Focus.IsMaximized(model.PanelSurprise) {
		t.Errorf("after = %+v", after)
	}
}

func TestReduce_DateRange(t *testing.T) {
	s := NewState(testDataset())

	s = Reduce(s, SelectPreset{Preset: daterange.Preset30d}, today)
	if s.Range.Start != daterange.New(2024, time.August, 1) || s.Range.Preset != daterange.Preset30d {
		t.Errorf("30d range = %v", s.Range)
	}

	prior := s.Range
	s = Reduce(s, SelectPreset{Preset: "fortnight"}, today)
	if s.Range != prior {
		t.Errorf("unknown preset changed range to %v", s.Range)
	}

	s = Reduce(s, SetDateEnd{Date: daterange.New(2024, time.August, 15)}, today)
	if !s.Range.IsCustom() || s.Range.Start != prior.Start {
		t.Errorf("manual end edit = %v", s.Range)
	}

	// Inverted ranges are accepted as entered.
	s = Reduce(s, SetDateStart{Date: daterange.New(2025, time.January, 1)}, today)
	if !s.Range.Inverted() {
		t.Errorf("expected inverted range, got %v", s.Range)
	}

	want := daterange.DefaultRange()
	s = Reduce(s, SetDateRange{Range: want}, today)
	if s.Range != want {
		t.Errorf("SetDateRange = %v", s.Range)
	}
}

func TestReduce_SelectAnalyst(t *testing.T) {
	s := NewState(testDataset())
	s = Reduce(s, SelectAnalyst{ID: "3"}, today)
	if s.SelectedAnalyst != "3" {
		t.Fatalf("selected = %q", s.SelectedAnalyst)
	}
	s = Reduce(s, SelectAnalyst{ID: "999"}, today)
	if s.SelectedAnalyst != "3" {
		t.Errorf("unknown id changed selection to %q", s.SelectedAnalyst)
	}

	// Selection survives a search that hides it.
	s = Reduce(s, SetAnalystSearch{Text: "john"}, today)
	v := Derive(s)
	if v.SelectedAnalyst.Name != "Michael Chen" {
		t.Errorf("selected = %+v", v.SelectedAnalyst)
	}
	for _, a := range v.Analysts {
		if a.ID == "3" {
			t.Error("filtered list should not include Michael Chen")
		}
	}
}

func TestReduce_TabAndUnknownAction(t *testing.T) {
	s := NewState(testDataset())
	s = Reduce(s, SelectTab{Tab: TabDefinitions}, today)
	if s.Tab != TabDefinitions {
		t.Errorf("tab = %q", s.Tab)
	}
	s = Reduce(s, SelectTab{Tab: "bogus"}, today)
	if s.Tab != TabDefinitions {
		t.Errorf("invalid tab applied: %q", s.Tab)
	}
	if got := Reduce(s, nil, today); got.Tab != s.Tab {
		t.Error("nil action changed state")
	}
}

func TestReduce_ReplaceDatasetKeepsQuery(t *testing.T) {
	s := NewState(testDataset())
	s = Reduce(s, SelectAnalyst{ID: "5"}, today)
	s = Reduce(s, SetQuestionSearch{Text: "a"}, today)
	s = Reduce(s, CarouselNext{}, today)

	ds := testDataset()
	ds.Analysts = ds.Analysts[:3]
	ds.Questions = ds.Questions[:2]
	s = Reduce(s, ReplaceDataset{Dataset: ds}, today)

	if s.Carousel.Query() != "a" || s.Carousel.Focus() != 0 || s.Carousel.Len() != 2 {
		t.Errorf("carousel after reload: q=%q focus=%d len=%d", s.Carousel.Query(), s.Carousel.Focus(), s.Carousel.Len())
	}
	if s.SelectedAnalyst != model.AllAnalystsID {
		t.Errorf("selection of a vanished analyst = %q, want all", s.SelectedAnalyst)
	}
}

func TestStoreView(t *testing.T) {
	st := New(testDataset(), fixedClock)
	st.Dispatch(SelectPreset{Preset: daterange.PresetYTD}, CarouselJumpTo{Index: 1}, ToggleMaximize{Panel: model.PanelNegativity})

	v := st.View()
	if v.Range.Start != daterange.New(2024, time.January, 1) || v.Range.End != today {
		t.Errorf("range = %v", v.Range)
	}
	if v.Current == nil || v.Current.Analyst != "Analyst 2" {
		t.Fatalf("current = %+v", v.Current)
	}
	if v.Current.Delta != (format.Display{Text: "-15.0", Tone: format.ToneNegative}) {
		t.Errorf("delta = %+v", v.Current.Delta)
	}
	if v.Current.Stock.Text != "-2.25%" || v.Current.Period != "Q2 2023" {
		t.Errorf("row = %+v", v.Current)
	}
	if len(v.Dots) != 3 || !v.Dots[1] {
		t.Errorf("dots = %v", v.Dots)
	}
	if v.Positive[0].Value.Text != "14.8K" || v.Positive[0].Change.Text != "+0.4" {
		t.Errorf("positive card = %+v", v.Positive[0])
	}
	if v.Negative[0].Value != (format.Display{Text: "-3.0K", Tone: format.ToneNegative}) {
		t.Errorf("net negativity card = %+v", v.Negative[0])
	}
	if v.Maximized != model.PanelNegativity {
		t.Errorf("maximized = %q", v.Maximized)
	}
	hidden := 0
	for _, p := range v.Panels {
		if p.Hidden {
			hidden++
		}
		if p.ID == model.PanelNegativity && !p.Maximized {
			t.Error("negativity panel not marked maximized")
		}
	}
	if hidden != len(v.Panels)-1 {
		t.Errorf("hidden panels = %d of %d", hidden, len(v.Panels))
	}
}

func TestStoreView_EmptyCarousel(t *testing.T) {
	st := New(testDataset(), fixedClock)
	st.Dispatch(SetQuestionSearch{Text: "nothing matches"})
	v := st.View()
	if v.Current != nil || len(v.Questions) != 0 || len(v.Dots) != 0 {
		t.Errorf("empty view = %+v", v)
	}
}

func TestDeriveDeterministicProperty(t *testing.T) {
	actions := []Action{
		CarouselNext{}, CarouselPrev{}, CarouselJumpTo{Index: 2},
		SetQuestionSearch{Text: "a"}, SetQuestionSearch{Text: ""},
		ToggleMaximize{Panel: model.PanelSurprise}, ToggleMaximize{Panel: model.PanelPositivity},
		SelectPreset{Preset: daterange.Preset7d}, SetAnalystSearch{Text: "da"},
	}
	rapid.Check(t, func(t *rapid.T) {
		s := NewState(testDataset())
		for _, i := range rapid.SliceOfN(rapid.IntRange(0, len(actions)-1), 0, 30).Draw(t, "ops") {
			s = Reduce(s, actions[i], today)
			if n := s.Carousel.Len(); n > 0 && (s.Carousel.Focus() < 0 || s.Carousel.Focus() >= n) {
				t.Fatalf("focus %d out of range for %d", s.Carousel.Focus(), n)
			}
		}
		a, b := Derive(s), Derive(s)
		if a.Focus != b.Focus || a.Maximized != b.Maximized || len(a.Questions) != len(b.Questions) {
			t.Fatal("Derive is not deterministic")
		}
	})
}

func TestParseTab(t *testing.T) {
	if tab, err := ParseTab(" Definitions "); err != nil || tab != TabDefinitions {
		t.Errorf("ParseTab = %q, %v", tab, err)
	}
	if _, err := ParseTab("home"); err == nil {
		t.Error("expected error")
	}
	if TabComparison.Title() != "SP Global Sentiment vs. Hume.ai Sentiment" {
		t.Errorf("title = %q", TabComparison.Title())
	}
}

func TestDispatch_LogsOnlyWhenDebugEnabled(t *testing.T) {
	var buf bytes.Buffer
	debug.SetOutput(&buf)
	t.Cleanup(func() { debug.SetOutput(nil) })

	st := New(testDataset(), nil)
	st.Dispatch(SelectTab{Tab: TabDefinitions})
	if !strings.Contains(buf.String(), "SelectTab") {
		t.Errorf("debug log = %q, want the dispatched action", buf.String())
	}

	debug.SetOutput(nil)
	buf.Reset()
	st.Dispatch(SelectTab{Tab: TabQuestions})
	if buf.Len() != 0 {
		t.Errorf("disabled debug log still written: %q", buf.String())
	}
}
