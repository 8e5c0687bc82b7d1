package datasource

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/vanderheijden86/sentidash/pkg/model"
)

const (
	syntheticRows     = 10
	syntheticQuestion = "Question about HPE's strategy in cloud computing, edge solutions, and digital transformation initiatives for enterprise customers..."
)

// band is a uniform range [base, base+spread).
type band struct{ base, spread float64 }

var trendBands = map[string]band{
	model.KeyNetPositivity:    {60, 20},
	model.KeyInterest:         {55, 25},
	model.KeyEnthusiasm:       {50, 30},
	model.KeyCalmness:         {45, 35},
	model.KeySatisfaction:     {40, 40},
	model.KeySurprisePositive: {35, 45},
	model.KeyNetNegativity:    {40, 30},
	model.KeyConfusion:        {35, 25},
	model.KeyAnnoyance:        {30, 20},
	model.KeyDoubt:            {25, 15},
	model.KeyDisapproval:      {20, 10},
	model.KeySurpriseNegative: {15, 5},
}

var cardValues = map[string]float64{
	model.KeyNetPositivity:    14.8,
	model.KeyInterest:         8.6,
	model.KeyEnthusiasm:       2.1,
	model.KeyCalmness:         1.9,
	model.KeySatisfaction:     1.5,
	model.KeySurprisePositive: 725.7,
	model.KeyNetNegativity:    8.5,
	model.KeyConfusion:        2.8,
	model.KeyAnnoyance:        1.8,
	model.KeyDoubt:            1.6,
	model.KeyDisapproval:      1.5,
	model.KeySurpriseNegative: 763.8,
}

// Synthetic generates the demo dataset. The same non-zero Seed always yields
// the same data; Seed 0 seeds from the clock.
type Synthetic struct {
	Seed int64
}

// Info implements Provider.
func (s Synthetic) Info() DataSource {
	return DataSource{Type: SourceTypeSynthetic, Seed: s.Seed}
}

// Load implements Provider.
func (s Synthetic) Load(ctx context.Context) (model.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return model.Dataset{}, err
	}
	seed := uint64(s.Seed)
	if s.Seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x5eed))

	ds := model.Dataset{
		Analysts: model.DefaultAnalystOptions(),
		Positive: withValues(model.DefaultPositiveCards()),
		Negative: withValues(model.DefaultNegativeCards()),
	}

	for i := 0; i < syntheticRows; i++ {
		row := model.TrendData{
			Quarter: fmt.Sprintf("Q%d %d", i%4+1, 2022+i/4),
			Values:  make(map[string]float64, len(trendBands)),
		}
		// Iterate TrendKeys rather than the map so draws are reproducible.
		for _, k := range model.TrendKeys {
			b := trendBands[k]
			row.Values[k] = b.base + rng.Float64()*b.spread
		}
		ds.Trends = append(ds.Trends, row)
	}

	for i := 0; i < syntheticRows; i++ {
		ds.Questions = append(ds.Questions, model.AnalystQuestion{
			Analyst:            fmt.Sprintf("Analyst %d", i+1),
			Question:           syntheticQuestion,
			Quarter:            fmt.Sprintf("Q%d", i%4+1),
			Year:               2023 + i/4,
			NetPositivity:      rng.Float64() * 100,
			NetNegativity:      rng.Float64() * 100,
			StockChangeNextDay: rng.Float64()*10 - 5,
		})
	}
	return ds, nil
}

func withValues(cards []model.MetricCard) []model.MetricCard {
	for i := range cards {
		cards[i].Metric = model.SentimentMetric{Value: cardValues[cards[i].Key]}
	}
	return cards
}
