package store

import (
	"time"

	"github.com/vanderheijden86/sentidash/pkg/daterange"
	"github.com/vanderheijden86/sentidash/pkg/debug"
	"github.com/vanderheijden86/sentidash/pkg/filter"
	"github.com/vanderheijden86/sentidash/pkg/format"
	"github.com/vanderheijden86/sentidash/pkg/metrics"
	"github.com/vanderheijden86/sentidash/pkg/model"
)

// Store owns the current State and the clock that presets resolve against.
// It is not safe for concurrent use; the TUI drives it from its update loop.
type Store struct {
	state State
	now   func() time.Time
}

// New returns a store in the initial state for ds. A nil clock means
// time.Now.
func New(ds model.Dataset, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{state: NewState(ds), now: now}
}

// Dispatch applies actions in order.
func (s *Store) Dispatch(actions ...Action) {
	today := daterange.FromTime(s.now())
	for _, a := range actions {
		s.state = Reduce(s.state, a, today)
		if debug.Enabled() {
			debug.Logw("dispatch", "action", Describe(a))
		}
	}
}

// State returns a copy of the current state.
func (s *Store) State() State { return s.state }

// Today returns the store clock's current date.
func (s *Store) Today() daterange.Date { return daterange.FromTime(s.now()) }

// CardView is one metric card ready to render.
type CardView struct {
	Key    string         `json:"key"`
	Title  string         `json:"title"`
	Value  format.Display `json:"value"`
	Change format.Display `json:"change"`
}

// QuestionRow is one question with its formatted derived values.
type QuestionRow struct {
	model.AnalystQuestion
	Period string         `json:"period"`
	Delta  format.Display `json:"delta"`
	Stock  format.Display `json:"stock"`
}

// PanelView is a chart panel plus its layout state.
type PanelView struct {
	model.ChartPanel
	Maximized bool `json:"maximized"`
	// Hidden is true when another panel is maximized.
	Hidden bool `json:"hidden"`
}

// View is the render model derived from State. It holds no references back
// into the store.
type View struct {
	Tab             Tab                   `json:"tab"`
	TabTitle        string                `json:"tab_title"`
	AnalystSearch   string                `json:"analyst_search"`
	Analysts        []model.AnalystOption `json:"analysts"`
	SelectedAnalyst model.AnalystOption   `json:"selected_analyst"`
	Range           daterange.Range       `json:"range"`
	QuestionQuery   string                `json:"question_query"`
	Questions       []QuestionRow         `json:"questions"`
	Focus           int                   `json:"focus"`
	Current         *QuestionRow          `json:"current,omitempty"`
	Dots            []bool                `json:"dots"`
	Positive        []CardView            `json:"positive"`
	Negative        []CardView            `json:"negative"`
	Trends          []model.TrendData     `json:"trends"`
	Panels          []PanelView           `json:"panels"`
	Maximized       model.PanelID         `json:"maximized,omitempty"`
}

// View derives the current render model.
func (s *Store) View() View { return Derive(s.state) }

// Derive builds a View from st. It is deterministic.
func Derive(st State) View {
	defer metrics.Timer(metrics.ViewDerive)()

	v := View{
		Tab:           st.Tab,
		TabTitle:      st.Tab.Title(),
		AnalystSearch: st.AnalystSearch,
		Analysts:      filter.Analysts(st.Dataset.Analysts, st.AnalystSearch),
		Range:         st.Range,
		QuestionQuery: st.Carousel.Query(),
		Focus:         st.Carousel.Focus(),
		Dots:          st.Carousel.Dots(),
		Positive:      cardViews(st.Dataset.Positive),
		Negative:      cardViews(st.Dataset.Negative),
		Trends:        st.Dataset.Trends,
	}
	v.SelectedAnalyst = selectedOption(st.Dataset.Analysts, st.SelectedAnalyst)

	view := st.Carousel.View()
	v.Questions = make([]QuestionRow, len(view))
	for i, q := range view {
		v.Questions[i] = Row(q)
	}
	if len(v.Questions) > 0 {
		cur := v.Questions[v.Focus]
		v.Current = &cur
	}

	maxID, isMax := st.Focus.Maximized()
	if isMax {
		v.Maximized = maxID
	}
	for _, p := range model.ChartPanels() {
		v.Panels = append(v.Panels, PanelView{
			ChartPanel: p,
			Maximized:  isMax && p.ID == maxID,
			Hidden:     isMax && p.ID != maxID,
		})
	}
	return v
}

// Row formats one question for display.
func Row(q model.AnalystQuestion) QuestionRow {
	return QuestionRow{
		AnalystQuestion: q,
		Period:          q.Period(),
		Delta:           format.NetDelta(q),
		Stock:           format.StockChange(q.StockChangeNextDay),
	}
}

func cardViews(cards []model.MetricCard) []CardView {
	out := make([]CardView, len(cards))
	for i, c := range cards {
		out[i] = CardView{
			Key:    c.Key,
			Title:  c.Title,
			Value:  format.Metric(c.Metric, c.Category),
			Change: format.Change(c.Metric),
		}
	}
	return out
}

func selectedOption(opts []model.AnalystOption, id string) model.AnalystOption {
	for _, o := range opts {
		if o.ID == id {
			return o
		}
	}
	return model.AnalystOption{ID: model.AllAnalystsID, Name: "All Analysts"}
}
