package model

import (
	"errors"
	"testing"
)

func TestMetricCategoryRoundTrip(t *testing.T) {
	for _, c := range []MetricCategory{CategoryNetPositive, CategoryNetNegative, CategoryOtherPositive, CategoryOtherNegative} {
		got, err := ParseMetricCategory(c.String())
		if err != nil {
			t.Fatalf("ParseMetricCategory(%q): %v", c.String(), err)
		}
		if got != c {
			t.Errorf("ParseMetricCategory(%q) = %v, want %v", c.String(), got, c)
		}
	}
	if _, err := ParseMetricCategory("sideways"); err == nil {
		t.Error("expected error for unknown category")
	}
}

func TestAnalystQuestion_Derived(t *testing.T) {
	q := AnalystQuestion{Analyst: "Analyst 1", Quarter: "Q3", Year: 2023, NetPositivity: 40, NetNegativity: 55}
	if got := q.NetSentimentDelta(); got != -15 {
		t.Errorf("NetSentimentDelta() = %v, want -15", got)
	}
	if got := q.Period(); got != "Q3 2023" {
		t.Errorf("Period() = %q, want %q", got, "Q3 2023")
	}
}

func TestAnalystQuestion_Validate(t *testing.T) {
	testCases := []struct {
		name string
		in   AnalystQuestion
		want error
	}{
		{"valid", AnalystQuestion{Quarter: "Q1", NetPositivity: 10, NetNegativity: 90}, nil},
		{"bad quarter", AnalystQuestion{Quarter: "Q5"}, ErrBadQuarter},
		{"positivity above range", AnalystQuestion{Quarter: "Q2", NetPositivity: 101}, ErrBadScore},
		{"negativity below range", AnalystQuestion{Quarter: "Q2", NetNegativity: -1}, ErrBadScore},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.in.Validate()
			if tc.want == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Fatalf("Validate() = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestChartPanels(t *testing.T) {
	panels := ChartPanels()
	if len(panels) != 7 {
		t.Fatalf("expected 7 chart panels, got %d", len(panels))
	}
	if panels[0].Series[0].Key != KeyNetPositivity {
		t.Errorf("first series of positivity panel = %q, want line series %q", panels[0].Series[0].Key, KeyNetPositivity)
	}
	order := PanelOrder()
	if order[0] != PanelQuestions || len(order) != 8 {
		t.Errorf("PanelOrder() = %v", order)
	}
	if _, ok := FindChartPanel(PanelSurprise); !ok {
		t.Error("FindChartPanel(surprise) not found")
	}
	if _, ok := FindChartPanel("nope"); ok {
		t.Error("FindChartPanel(nope) should fail")
	}
}

func TestDefaultAnalystOptions_SentinelFirst(t *testing.T) {
	opts := DefaultAnalystOptions()
	if !opts[0].IsAll() || opts[0].Name != "All Analysts" {
		t.Errorf("first option = %+v, want All Analysts sentinel", opts[0])
	}
	ds := Dataset{Analysts: opts}
	if !ds.HasAnalyst("3") || ds.HasAnalyst("99") {
		t.Error("HasAnalyst mismatch")
	}
}
