package datasource

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/vanderheijden86/sentidash/pkg/model"
)

func loadSynthetic(t *testing.T, seed int64) model.Dataset {
	t.Helper()
	ds, err := Synthetic{Seed: seed}.Load(context.Background())
	if err != nil {
		t.Fatalf("Synthetic.Load: %v", err)
	}
	return ds
}

func TestSynthetic_Shapes(t *testing.T) {
	ds := loadSynthetic(t, 42)

	if len(ds.Trends) != 10 || len(ds.Questions) != 10 {
		t.Fatalf("got %d trends, %d questions", len(ds.Trends), len(ds.Questions))
	}
	if ds.Trends[0].Quarter != "Q1 2022" || ds.Trends[9].Quarter != "Q2 2024" {
		t.Errorf("quarters = %q .. %q", ds.Trends[0].Quarter, ds.Trends[9].Quarter)
	}
	for _, row := range ds.Trends {
		for k, b := range trendBands {
			v := row.Value(k)
			if v < b.base || v >= b.base+b.spread {
				t.Errorf("%s %s = %.2f outside [%v,%v)", row.Quarter, k, v, b.base, b.base+b.spread)
			}
		}
	}
	q := ds.Questions[5]
	if q.Analyst != "Analyst 6" || q.Quarter != "Q2" || q.Year != 2024 {
		t.Errorf("question 6 = %+v", q)
	}
	for _, q := range ds.Questions {
		if q.StockChangeNextDay < -5 || q.StockChangeNextDay >= 5 {
			t.Errorf("stock change %.2f out of range", q.StockChangeNextDay)
		}
		if err := q.Validate(); err != nil {
			t.Errorf("invalid synthetic question: %v", err)
		}
	}
	if ds.Positive[0].Metric.Value != 14.8 || ds.Negative[5].Metric.Value != 763.8 {
		t.Errorf("card values = %v / %v", ds.Positive[0].Metric, ds.Negative[5].Metric)
	}
}

func TestSynthetic_SeedIsDeterministic(t *testing.T) {
	a, b := loadSynthetic(t, 7), loadSynthetic(t, 7)
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed produced different datasets")
	}
	if c := loadSynthetic(t, 8); reflect.DeepEqual(a.Questions, c.Questions) {
		t.Error("different seeds produced identical questions")
	}
}

func TestSynthetic_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (Synthetic{Seed: 1}).Load(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestFixtureRoundTrips(t *testing.T) {
	want := loadSynthetic(t, 3)
	dir := t.TempDir()

	testCases := []struct {
		name  string
		file  string
		write func(string) error
	}{
		{"json", "data.json", func(p string) error { return WriteJSON(p, want) }},
		{"yaml", "data.yaml", func(p string) error { return WriteYAML(p, want) }},
		{"sqlite", "data.db", func(p string) error { return WriteSQLite(context.Background(), p, want) }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.file)
			if err := tc.write(path); err != nil {
				t.Fatalf("write: %v", err)
			}
			p, err := Open(path, 0)
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			got, err := Load(context.Background(), p)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if src := p.Info(); string(src.Type) != tc.name || src.Size == 0 {
				t.Errorf("source = %+v", p.Info())
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("round trip mismatch\n got: %+v\nwant: %+v", got.Questions[0], want.Questions[0])
			}
		})
	}
}

func TestJSONFixture_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "min.json")
	body := `{"analysts":[{"id":"9","name":"Pat Lee"}],
		"questions":[{"analyst":"Pat Lee","question":"Capex?","quarter":"Q3","year":2024,
		"netPositivity":55,"netNegativity":12.5,"stockChangeNextDay":1.25}]}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	ds, err := JSONFile{Path: path}.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(ds.Analysts) != 2 || !ds.Analysts[0].IsAll() || ds.Analysts[1].Name != "Pat Lee" {
		t.Errorf("analysts = %+v", ds.Analysts)
	}
	if len(ds.Positive) != 6 || len(ds.Negative) != 6 {
		t.Errorf("default cards missing: %d/%d", len(ds.Positive), len(ds.Negative))
	}
	if ds.Questions[0].NetNegativity != 12.5 {
		t.Errorf("question = %+v", ds.Questions[0])
	}
}

func TestYAMLFixture_InvalidQuestion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	body := "questions:\n  - analyst: X\n    question: Q\n    quarter: Q5\n    year: 2024\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := YAMLFile{Path: path}.Load(context.Background())
	if !errors.Is(err, model.ErrBadQuarter) {
		t.Errorf("err = %v, want ErrBadQuarter", err)
	}
}

func TestOpen(t *testing.T) {
	if p, err := Open("", 5); err != nil || p.Info().Type != SourceTypeSynthetic || p.Info().Watchable() {
		t.Errorf("Open(\"\") = %+v, %v", p, err)
	}
	if _, err := Open("data.csv", 0); !errors.Is(err, ErrUnknownSourceType) {
		t.Errorf("err = %v, want ErrUnknownSourceType", err)
	}
	if p, _ := Open("x/Fixture.YML", 0); p.Info().Type != SourceTypeYAML {
		t.Errorf("type = %q", p.Info().Type)
	}
	if _, err := (SQLiteFile{Path: filepath.Join(t.TempDir(), "missing.db")}).Load(context.Background()); err == nil {
		t.Error("expected error for a missing database")
	}
}

func TestDiff(t *testing.T) {
	before := loadSynthetic(t, 1)
	if d := Diff(before, before); d.HasChanges() || !strings.HasPrefix(d.Summary(), "no changes") {
		t.Errorf("self diff = %+v", d)
	}

	after := loadSynthetic(t, 1)
	after.Questions = append(after.Questions[:9:9], model.AnalystQuestion{Analyst: "Newcomer", Quarter: "Q1", Year: 2025})
	after.Positive[0].Metric.Change = 0.4

	d := Diff(before, after)
	if !reflect.DeepEqual(d.AddedAnalysts, []string{"Newcomer"}) || !reflect.DeepEqual(d.RemovedAnalysts, []string{"Analyst 10"}) {
		t.Errorf("analyst diff = %+v / %+v", d.AddedAnalysts, d.RemovedAnalysts)
	}
	if !reflect.DeepEqual(d.ChangedCards, []string{model.KeyNetPositivity}) {
		t.Errorf("changed cards = %v", d.ChangedCards)
	}
	if got := d.Summary(); got != "1 new analysts, 1 analysts gone, 1 cards updated" {
		t.Errorf("Summary() = %q", got)
	}
}
