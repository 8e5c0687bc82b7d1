// Package format turns sentiment numbers into display text plus a tone that
// renderers map to colors.
package format

import (
	"fmt"
	"math"

	"github.com/vanderheijden86/sentidash/pkg/model"
)

// Tone is the color class of a displayed value.
type Tone int

const (
	TonePositive Tone = iota
	ToneNegative
)

func (t Tone) String() string {
	if t == ToneNegative {
		return "negative"
	}
	return "positive"
}

// toneOf maps a sign to a tone; zero counts as positive.
func toneOf(v float64) Tone {
	if v < 0 {
		return ToneNegative
	}
	return TonePositive
}

// Display is a formatted value ready for a renderer.
type Display struct {
	Text string `json:"text"`
	Tone Tone   `json:"tone"`
}

// MarshalText lets Tone appear as "positive"/"negative" in JSON snapshots.
func (t Tone) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// Metric formats a card value as "14.8K" and picks its tone.
//
// Tone precedence:
//  1. net negativity is always negative
//  2. net positivity follows the sign of the value
//  3. other metrics use their family
func Metric(m model.SentimentMetric, c model.MetricCategory) Display {
	return Display{Text: fmt.Sprintf("%.1fK", round1(m.Value)), Tone: MetricTone(m, c)}
}

// MetricTone is the tone half of Metric.
func MetricTone(m model.SentimentMetric, c model.MetricCategory) Tone {
	switch {
	case c == model.CategoryNetNegative:
		return ToneNegative
	case c.IsNet():
		return toneOf(m.Value)
	case c.IsNegativeFamily():
		return ToneNegative
	default:
		return TonePositive
	}
}

// Change formats a period-over-period delta with an explicit sign.
func Change(m model.SentimentMetric) Display {
	return Display{Text: fmt.Sprintf("%+.1f", round1(m.Change)), Tone: toneOf(m.Change)}
}

// NetDelta formats NetPositivity - NetNegativity to one decimal place. The
// tone is positive when positivity is at least negativity.
func NetDelta(q model.AnalystQuestion) Display {
	d := q.NetSentimentDelta()
	return Display{Text: fmt.Sprintf("%.1f", round1(d)), Tone: toneOf(d)}
}

// StockChange formats a next-day move as "-1.23%".
func StockChange(pct float64) Display {
	return Display{Text: fmt.Sprintf("%.2f%%", pct), Tone: toneOf(pct)}
}

// round1 rounds half away from zero to one decimal. A negative value that
// rounds to zero keeps its sign, so the text reads "-0.0" like its tone.
func round1(v float64) float64 {
	if v == 0 {
		return 0
	}
	return math.Round(v*10) / 10
}
