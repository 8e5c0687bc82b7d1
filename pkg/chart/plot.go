// Package chart lays out the dashboard's trend panels and renders them to the
// terminal, SVG and PNG.
//
// Every panel is a composed chart: the first series is a line on the
// secondary (right) scale and the remaining series are grouped bars on the
// primary (left) scale, one group per reporting period.
package chart

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/vanderheijden86/sentidash/pkg/metrics"
	"github.com/vanderheijden86/sentidash/pkg/model"
)

// Series is one plotted metric.
type Series struct {
	Key    string
	Name   string
	Color  string // #rrggbb
	Values []float64
}

// RGBA parses Color, falling back to mid grey.
func (s Series) RGBA() color.RGBA {
	return parseHex(s.Color)
}

// Axis is a linear value scale.
type Axis struct {
	Min, Max float64
}

// Scale maps v into [0,1]. A degenerate axis maps values at or below Min
// to 0 and the rest to 1.
func (a Axis) Scale(v float64) float64 {
	if a.Max <= a.Min {
		if v <= a.Min {
			return 0
		}
		return 1
	}
	f := (v - a.Min) / (a.Max - a.Min)
	return math.Max(0, math.Min(1, f))
}

// Ticks returns n+1 evenly spaced values from Min to Max.
func (a Axis) Ticks(n int) []float64 {
	if n < 1 {
		n = 1
	}
	out := make([]float64, n+1)
	step := (a.Max - a.Min) / float64(n)
	for i := range out {
		out[i] = a.Min + step*float64(i)
	}
	return out
}

// Plot is a laid-out chart, independent of the output medium.
type Plot struct {
	Title      string
	Categories []string
	// Line is drawn on Secondary. It has no values when the panel has no
	// series at all.
	Line      Series
	Bars      []Series
	Primary   Axis
	Secondary Axis
}

// Empty reports whether there is nothing to draw.
func (p Plot) Empty() bool { return len(p.Categories) == 0 }

// Layout builds the plot for one panel from chronological trend rows.
func Layout(title string, data []model.TrendData, series []model.SeriesDescriptor) Plot {
	defer metrics.Timer(metrics.ChartLayout)()

	p := Plot{Title: title, Categories: make([]string, len(data))}
	for i, row := range data {
		p.Categories[i] = row.Quarter
	}
	for i, d := range series {
		s := Series{Key: d.Key, Name: d.Name, Color: d.Color, Values: make([]float64, len(data))}
		for j, row := range data {
			s.Values[j] = row.Value(d.Key)
		}
		if i == 0 {
			p.Line = s
		} else {
			p.Bars = append(p.Bars, s)
		}
	}

	barMax := 0.0
	for _, b := range p.Bars {
		for _, v := range b.Values {
			barMax = math.Max(barMax, v)
		}
	}
	p.Primary = Axis{Min: 0, Max: max(niceCeil(barMax), 1)}

	if len(p.Line.Values) > 0 {
		lo, hi := p.Line.Values[0], p.Line.Values[0]
		for _, v := range p.Line.Values[1:] {
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
		p.Secondary = Axis{Min: niceFloor(lo), Max: niceCeil(hi)}
		if p.Secondary.Max <= p.Secondary.Min {
			p.Secondary.Max = p.Secondary.Min + 1
		}
	}
	return p
}

// ForPanel is Layout for one of the catalogue panels.
func ForPanel(panel model.ChartPanel, data []model.TrendData) Plot {
	return Layout(panel.Title, data, panel.Series)
}

// niceCeil rounds v up to 1, 2 or 5 times a power of ten.
func niceCeil(v float64) float64 {
	if v <= 0 {
		return 0
	}
	exp := math.Pow(10, math.Floor(math.Log10(v)))
	for _, m := range []float64{1, 2, 5, 10} {
		if m*exp >= v {
			return m * exp
		}
	}
	return 10 * exp
}

// niceFloor rounds v down to a multiple of ten, or to 0 for small values.
func niceFloor(v float64) float64 {
	if v <= 10 {
		return math.Min(0, math.Floor(v))
	}
	return math.Floor(v/10) * 10
}

// parseHex reads "#rrggbb" or "#rgb", falling back to mid grey.
func parseHex(s string) color.RGBA {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{0x88, 0x88, 0x88, 0xff}
	}
	r, g, b := c.RGB255()
	return color.RGBA{r, g, b, 0xff}
}
