// Package model defines the data shapes shown on the sentiment dashboard:
// metric cards, analyst questions, trend rows and the chart panel catalogue.
//
// Everything here is a plain value. Providers in internal/datasource build a
// Dataset once, and the dashboard replaces it wholesale on reload.
package model

import (
	"errors"
	"fmt"
	"strings"
)

// SentimentMetric is one affect score with its period-over-period delta.
type SentimentMetric struct {
	Value  float64 `json:"value" yaml:"value"`
	Change float64 `json:"change" yaml:"change"`
}

// MetricCategory tells the formatter how a metric card is colored.
type MetricCategory int

const (
	CategoryOtherPositive MetricCategory = iota
	CategoryOtherNegative
	CategoryNetPositive
	CategoryNetNegative
)

// String returns the category token used in fixtures and config.
func (c MetricCategory) String() string {
	switch c {
	case CategoryNetPositive:
		return "net-positive"
	case CategoryNetNegative:
		return "net-negative"
	case CategoryOtherNegative:
		return "other-negative"
	default:
		return "other-positive"
	}
}

// IsNet reports whether the category is one of the two "net" families.
func (c MetricCategory) IsNet() bool {
	return c == CategoryNetPositive || c == CategoryNetNegative
}

// IsNegativeFamily reports whether the category belongs to the negative side
// of the dashboard.
func (c MetricCategory) IsNegativeFamily() bool {
	return c == CategoryNetNegative || c == CategoryOtherNegative
}

// ParseMetricCategory is the inverse of MetricCategory.String.
func ParseMetricCategory(s string) (MetricCategory, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "net-positive":
		return CategoryNetPositive, nil
	case "net-negative":
		return CategoryNetNegative, nil
	case "other-positive", "":
		return CategoryOtherPositive, nil
	case "other-negative":
		return CategoryOtherNegative, nil
	default:
		return CategoryOtherPositive, fmt.Errorf("unknown metric category %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c MetricCategory) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *MetricCategory) UnmarshalText(b []byte) error {
	parsed, err := ParseMetricCategory(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MetricCard is a titled metric tagged with its category.
type MetricCard struct {
	Key      string          `json:"key" yaml:"key"`
	Title    string          `json:"title" yaml:"title"`
	Category MetricCategory  `json:"category" yaml:"category"`
	Metric   SentimentMetric `json:"metric" yaml:"metric"`
}

// AnalystQuestion is one analyst's question on one earnings call together with
// its sentiment scores and the next-day market reaction.
//
// NetPositivity and NetNegativity are independent scores in [0,100]; they are
// not required to sum to 100.
type AnalystQuestion struct {
	Analyst            string  `json:"analyst" yaml:"analyst"`
	Question           string  `json:"question" yaml:"question"`
	Quarter            string  `json:"quarter" yaml:"quarter"`
	Year               int     `json:"year" yaml:"year"`
	NetPositivity      float64 `json:"netPositivity" yaml:"net_positivity"`
	NetNegativity      float64 `json:"netNegativity" yaml:"net_negativity"`
	StockChangeNextDay float64 `json:"stockChangeNextDay" yaml:"stock_change_next_day"`
}

// NetSentimentDelta returns NetPositivity - NetNegativity.
func (q AnalystQuestion) NetSentimentDelta() float64 {
	return q.NetPositivity - q.NetNegativity
}

// Period returns the "Q3 2023" label of the call.
func (q AnalystQuestion) Period() string {
	return fmt.Sprintf("%s %d", q.Quarter, q.Year)
}

// Validation errors returned by AnalystQuestion.Validate.
var (
	ErrBadQuarter = errors.New("quarter must be one of Q1..Q4")
	ErrBadScore   = errors.New("score must be within [0,100]")
)

// Validate checks a question loaded from a fixture. The dashboard itself never
// rejects data; only the fixture readers call this.
func (q AnalystQuestion) Validate() error {
	switch q.Quarter {
	case "Q1", "Q2", "Q3", "Q4":
	default:
		return fmt.Errorf("%w: got %q", ErrBadQuarter, q.Quarter)
	}
	if q.NetPositivity < 0 || q.NetPositivity > 100 {
		return fmt.Errorf("%w: net positivity %.2f", ErrBadScore, q.NetPositivity)
	}
	if q.NetNegativity < 0 || q.NetNegativity > 100 {
		return fmt.Errorf("%w: net negativity %.2f", ErrBadScore, q.NetNegativity)
	}
	return nil
}

// TrendData is one reporting period with one value per tracked emotion.
// A []TrendData is chronological and its order must be preserved.
type TrendData struct {
	Quarter string             `json:"quarter" yaml:"quarter"`
	Values  map[string]float64 `json:"values" yaml:"values"`
}

// Value returns the value stored for key, or 0 when absent.
func (t TrendData) Value(key string) float64 {
	return t.Values[key]
}

// AllAnalystsID is the sentinel option id meaning "no analyst filter".
const AllAnalystsID = "all"

// AnalystOption is one entry of the analyst dropdown.
type AnalystOption struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// IsAll reports whether o is the match-all sentinel.
func (o AnalystOption) IsAll() bool { return o.ID == AllAnalystsID }

// DefaultAnalystOptions returns the sentinel followed by the known analysts.
func DefaultAnalystOptions() []AnalystOption {
	return []AnalystOption{
		{ID: AllAnalystsID, Name: "All Analysts"},
		{ID: "1", Name: "John Smith"},
		{ID: "2", Name: "Sarah Johnson"},
		{ID: "3", Name: "Michael Chen"},
		{ID: "4", Name: "Emma Davis"},
		{ID: "5", Name: "David Wilson"},
	}
}

// Dataset is everything a data provider hands to the dashboard.
type Dataset struct {
	Analysts  []AnalystOption   `json:"analysts" yaml:"analysts"`
	Positive  []MetricCard      `json:"positive" yaml:"positive"`
	Negative  []MetricCard      `json:"negative" yaml:"negative"`
	Trends    []TrendData       `json:"trends" yaml:"trends"`
	Questions []AnalystQuestion `json:"questions" yaml:"questions"`
}

// HasAnalyst reports whether id names one of the dataset's analyst options.
func (d Dataset) HasAnalyst(id string) bool {
	for _, a := range d.Analysts {
		if a.ID == id {
			return true
		}
	}
	return false
}

// Validate checks every question in the dataset and reports the first failure.
func (d Dataset) Validate() error {
	for i, q := range d.Questions {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("question %d (%s): %w", i, q.Analyst, err)
		}
	}
	return nil
}
