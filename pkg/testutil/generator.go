// Package testutil builds deterministic dashboard datasets for tests.
package testutil

import (
	"fmt"
	"math/rand/v2"

	"github.com/vanderheijden86/sentidash/pkg/model"
)

// GeneratorConfig controls dataset generation.
type GeneratorConfig struct {
	Seed      uint64   // fixed by default for reproducible tests
	Questions int      // number of analyst questions
	Periods   int      // number of trend rows
	FirstYear int      // year of the first trend row
	Analysts  []string // analyst names cycled through questions; nil = "Analyst N"
	Topics    []string // question topics cycled through questions
}

// DefaultConfig returns a config suitable for most tests.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Seed:      42,
		Questions: 10,
		Periods:   8,
		FirstYear: 2022,
		Topics:    []string{"cloud margins", "edge revenue", "storage demand", "AI backlog", "free cash flow"},
	}
}

// Generator creates datasets.
type Generator struct {
	cfg GeneratorConfig
	rng *rand.Rand
}

// New returns a generator, filling zero fields from DefaultConfig.
func New(cfg GeneratorConfig) *Generator {
	def := DefaultConfig()
	if cfg.Seed == 0 {
		cfg.Seed = def.Seed
	}
	if cfg.FirstYear == 0 {
		cfg.FirstYear = def.FirstYear
	}
	if len(cfg.Topics) == 0 {
		cfg.Topics = def.Topics
	}
	return &Generator{cfg: cfg, rng: rand.New(rand.NewPCG(cfg.Seed, cfg.Seed+1))}
}

// NewDefault returns New(DefaultConfig()).
func NewDefault() *Generator { return New(DefaultConfig()) }

// Questions returns n questions with scores rounded to one decimal so
// formatted output is stable.
func (g *Generator) Questions(n int) []model.AnalystQuestion {
	out := make([]model.AnalystQuestion, n)
	for i := range out {
		name := fmt.Sprintf("Analyst %d", i+1)
		if len(g.cfg.Analysts) > 0 {
			name = g.cfg.Analysts[i%len(g.cfg.Analysts)]
		}
		out[i] = model.AnalystQuestion{
			Analyst:            name,
			Question:           fmt.Sprintf("How should we think about %s next quarter?", g.cfg.Topics[i%len(g.cfg.Topics)]),
			Quarter:            fmt.Sprintf("Q%d", i%4+1),
			Year:               g.cfg.FirstYear + 1 + i/4,
			NetPositivity:      g.round(100),
			NetNegativity:      g.round(100),
			StockChangeNextDay: g.round(10) - 5,
		}
	}
	return out
}

// Trends returns n chronological trend rows with every key populated.
func (g *Generator) Trends(n int) []model.TrendData {
	out := make([]model.TrendData, n)
	for i := range out {
		row := model.TrendData{
			Quarter: fmt.Sprintf("Q%d %d", i%4+1, g.cfg.FirstYear+i/4),
			Values:  make(map[string]float64, len(model.TrendKeys)),
		}
		for _, k := range model.TrendKeys {
			row.Values[k] = 20 + g.round(60)
		}
		out[i] = row
	}
	return out
}

// Dataset returns a complete dataset per the config.
func (g *Generator) Dataset() model.Dataset {
	pos := model.DefaultPositiveCards()
	neg := model.DefaultNegativeCards()
	for i := range pos {
		pos[i].Metric = model.SentimentMetric{Value: g.round(20), Change: g.round(2) - 1}
	}
	for i := range neg {
		neg[i].Metric = model.SentimentMetric{Value: g.round(20), Change: g.round(2) - 1}
	}
	return model.Dataset{
		Analysts:  model.DefaultAnalystOptions(),
		Positive:  pos,
		Negative:  neg,
		Trends:    g.Trends(g.cfg.Periods),
		Questions: g.Questions(g.cfg.Questions),
	}
}

func (g *Generator) round(scale float64) float64 {
	return float64(int(g.rng.Float64()*scale*10)) / 10
}

// QuickDataset returns the default dataset.
func QuickDataset() model.Dataset { return NewDefault().Dataset() }

// QuickQuestions returns n default questions.
func QuickQuestions(n int) []model.AnalystQuestion { return NewDefault().Questions(n) }

// Named returns one question per text, attributed to "Analyst N".
func Named(texts ...string) []model.AnalystQuestion {
	out := make([]model.AnalystQuestion, len(texts))
	for i, s := range texts {
		out[i] = model.AnalystQuestion{
			Analyst:  fmt.Sprintf("Analyst %d", i+1),
			Question: s,
			Quarter:  "Q1",
			Year:     2023,
		}
	}
	return out
}
