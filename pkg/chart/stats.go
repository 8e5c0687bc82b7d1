package chart

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// SeriesStats summarises one series over the plotted periods.
type SeriesStats struct {
	Key    string  `json:"key"`
	Name   string  `json:"name"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	// Delta is last minus first.
	Delta float64 `json:"delta"`
}

// Summarize returns stats for the line followed by each bar series. Series
// without values are skipped.
func Summarize(p Plot) []SeriesStats {
	all := append([]Series{p.Line}, p.Bars...)
	out := make([]SeriesStats, 0, len(all))
	for _, s := range all {
		if len(s.Values) == 0 {
			continue
		}
		mean, std := stat.MeanStdDev(s.Values, nil)
		if len(s.Values) == 1 {
			std = 0
		}
		out = append(out, SeriesStats{
			Key:    s.Key,
			Name:   s.Name,
			Mean:   mean,
			StdDev: std,
			Min:    floats.Min(s.Values),
			Max:    floats.Max(s.Values),
			Delta:  s.Values[len(s.Values)-1] - s.Values[0],
		})
	}
	return out
}
