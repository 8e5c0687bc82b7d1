package daterange

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Preset is a named shorthand for a date range. The empty preset means the
// range was entered by hand.
type Preset string

const (
	PresetCustom Preset = ""
	Preset7d     Preset = "7d"
	Preset30d    Preset = "30d"
	Preset90d    Preset = "90d"
	Preset6m     Preset = "6m"
	Preset1y     Preset = "1y"
	PresetYTD    Preset = "ytd"
)

var presetLabels = map[Preset]string{
	PresetCustom: "Custom Range",
	Preset7d:     "Last 7 Days",
	Preset30d:    "Last 30 Days",
	Preset90d:    "Last 90 Days",
	Preset6m:     "Last 6 Months",
	Preset1y:     "Last Year",
	PresetYTD:    "Year to Date",
}

// Presets returns the selectable presets in menu order, without PresetCustom.
func Presets() []Preset {
	return []Preset{Preset7d, Preset30d, Preset90d, Preset6m, Preset1y, PresetYTD}
}

// Label returns the menu label, or the raw token for unknown presets.
func (p Preset) Label() string {
	if l, ok := presetLabels[p]; ok {
		return l
	}
	return string(p)
}

// Known reports whether p resolves to a range.
func (p Preset) Known() bool {
	_, ok := presetLabels[p]
	return ok && p != PresetCustom
}

// ParsePreset accepts a token case-insensitively. Unknown tokens are an error.
func ParsePreset(s string) (Preset, error) {
	p := Preset(strings.ToLower(strings.TrimSpace(s)))
	if p == PresetCustom || p.Known() {
		return p, nil
	}
	return PresetCustom, fmt.Errorf("unknown date preset %q", s)
}

// ErrInvertedRange is returned by Validate when Start is after End.
var ErrInvertedRange = errors.New("date range start is after end")

// Range is an inclusive calendar range plus the preset that produced it.
type Range struct {
	Start  Date   `json:"start" yaml:"start"`
	End    Date   `json:"end" yaml:"end"`
	Preset Preset `json:"preset" yaml:"preset"`
}

// DefaultRange is the range shown before the user picks anything.
func DefaultRange() Range {
	return Range{Start: New(2023, time.January, 1), End: New(2024, time.January, 1)}
}

// Resolve computes the range for preset p as of now. ok is false for
// PresetCustom and unknown tokens; callers then keep their previous range.
func Resolve(p Preset, now Date) (r Range, ok bool) {
	var start Date
	switch p {
	case Preset7d:
		start = now.AddDays(-7)
	case Preset30d:
		start = now.AddDays(-30)
	case Preset90d:
		start = now.AddDays(-90)
	case Preset6m:
		start = now.AddMonths(-6)
	case Preset1y:
		start = now.AddYears(-1)
	case PresetYTD:
		start = now.StartOfYear()
	default:
		return Range{}, false
	}
	return Range{Start: start, End: now, Preset: p}, true
}

// Apply returns Resolve(p, now) or r itself when p does not resolve.
func (r Range) Apply(p Preset, now Date) Range {
	if next, ok := Resolve(p, now); ok {
		return next
	}
	return r
}

// WithStart replaces the start bound and marks the range custom.
func (r Range) WithStart(d Date) Range {
	r.Start = d
	r.Preset = PresetCustom
	return r
}

// WithEnd replaces the end bound and marks the range custom.
func (r Range) WithEnd(d Date) Range {
	r.End = d
	r.Preset = PresetCustom
	return r
}

// IsCustom reports whether the range was edited by hand.
func (r Range) IsCustom() bool { return r.Preset == PresetCustom }

// Inverted reports whether Start is after End.
func (r Range) Inverted() bool { return r.Start.After(r.End) }

// Validate is for consumers that want to reject inverted ranges. The
// dashboard itself passes them through.
func (r Range) Validate() error {
	if r.Inverted() {
		return fmt.Errorf("%w: %s > %s", ErrInvertedRange, r.Start, r.End)
	}
	return nil
}

// Normalized returns r with its bounds swapped when inverted.
func (r Range) Normalized() Range {
	if r.Inverted() {
		r.Start, r.End = r.End, r.Start
	}
	return r
}

// Days returns the number of calendar days covered, bounds included.
func (r Range) Days() int {
	n := r.Normalized()
	return int(n.End.time().Sub(n.Start.time()).Hours()/24) + 1
}

// String renders "2023-01-01 → 2024-01-01 (Last 7 Days)".
func (r Range) String() string {
	return fmt.Sprintf("%s → %s (%s)", r.Start, r.End, r.Preset.Label())
}
