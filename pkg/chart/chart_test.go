package chart

import (
	"bytes"
	"errors"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vanderheijden86/sentidash/pkg/model"
)

func sampleTrends() []model.TrendData {
	return []model.TrendData{
		{Quarter: "Q1 2022", Values: map[string]float64{model.KeyNetPositivity: 62, model.KeyInterest: 60, model.KeyEnthusiasm: 51}},
		{Quarter: "Q2 2022", Values: map[string]float64{model.KeyNetPositivity: 70, model.KeyInterest: 72, model.KeyEnthusiasm: 64}},
		{Quarter: "Q3 2022", Values: map[string]float64{model.KeyNetPositivity: 78, model.KeyInterest: 58, model.KeyEnthusiasm: 79}},
	}
}

func positivityPlot() Plot {
	panel, _ := model.FindChartPanel(model.PanelPositivity)
	return ForPanel(panel, sampleTrends())
}

func TestLayout(t *testing.T) {
	p := positivityPlot()

	if p.Title != "Net Positivity Trend" {
		t.Errorf("title = %q", p.Title)
	}
	if len(p.Categories) != 3 || p.Categories[2] != "Q3 2022" {
		t.Errorf("categories = %v", p.Categories)
	}
	if p.Line.Key != model.KeyNetPositivity || len(p.Bars) != 2 {
		t.Fatalf("line = %q, bars = %d", p.Line.Key, len(p.Bars))
	}
	if p.Bars[1].Values[2] != 79 {
		t.Errorf("enthusiasm Q3 = %v", p.Bars[1].Values[2])
	}
	if p.Primary != (Axis{Min: 0, Max: 100}) {
		t.Errorf("primary axis = %+v", p.Primary)
	}
	if p.Secondary != (Axis{Min: 60, Max: 100}) {
		t.Errorf("secondary axis = %+v", p.Secondary)
	}
}

func TestLayout_MissingKeysAreZero(t *testing.T) {
	p := Layout("x", []model.TrendData{{Quarter: "Q1 2024"}}, []model.SeriesDescriptor{{Key: "a"}, {Key: "b"}})
	if p.Line.Values[0] != 0 || p.Bars[0].Values[0] != 0 {
		t.Errorf("missing keys should plot as zero: %+v", p)
	}
	if p.Secondary.Max <= p.Secondary.Min {
		t.Errorf("degenerate secondary axis %+v", p.Secondary)
	}
	if p.Primary != (Axis{Min: 0, Max: 1}) {
		t.Errorf("all-zero bars should get a unit primary axis, got %+v", p.Primary)
	}
	if f := p.Primary.Scale(p.Bars[0].Values[0]); f != 0 {
		t.Errorf("zero bar scaled to %v, want 0", f)
	}
}

func TestRenderTerminal_ZeroBarsAreEmpty(t *testing.T) {
	data := []model.TrendData{{Quarter: "Q1 2024"}, {Quarter: "Q2 2024"}}
	p := Layout("zeros", data, []model.SeriesDescriptor{{Key: "line", Color: "#000000"}, {Key: "bar", Color: "#ffffff"}})
	out := RenderTerminal(p, 40, 12, TerminalOptions{Plain: true})
	if strings.ContainsAny(out, "█▇▆▅▄▃▂▁") {
		t.Errorf("zero bars should draw no blocks:\n%s", out)
	}
}

func TestNiceCeil(t *testing.T) {
	for in, want := range map[float64]float64{0: 0, 0.7: 1, 7: 10, 12: 20, 45: 50, 80: 100, 763.8: 1000} {
		if got := niceCeil(in); math.Abs(got-want) > 1e-9 {
			t.Errorf("niceCeil(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestAxisScale(t *testing.T) {
	a := Axis{Min: 50, Max: 100}
	if a.Scale(75) != 0.5 || a.Scale(10) != 0 || a.Scale(120) != 1 {
		t.Error("scale not clamped linearly")
	}
	if (Axis{}).Scale(0) != 0 || (Axis{}).Scale(-2) != 0 {
		t.Error("degenerate axis should map values at Min to the bottom")
	}
	if (Axis{}).Scale(3) != 1 {
		t.Error("degenerate axis should map values above Min to the top")
	}
	if ticks := a.Ticks(5); len(ticks) != 6 || ticks[5] != 100 {
		t.Errorf("ticks = %v", ticks)
	}
}

func TestSummarize(t *testing.T) {
	stats := Summarize(positivityPlot())
	if len(stats) != 3 {
		t.Fatalf("got %d stats", len(stats))
	}
	line := stats[0]
	if line.Key != model.KeyNetPositivity || line.Mean != 70 || line.Min != 62 || line.Max != 78 || line.Delta != 16 {
		t.Errorf("line stats = %+v", line)
	}
	if math.Abs(line.StdDev-8) > 1e-9 {
		t.Errorf("stddev = %v, want 8", line.StdDev)
	}

	single := Summarize(Layout("one", sampleTrends()[:1], []model.SeriesDescriptor{{Key: model.KeyInterest}}))
	if single[0].StdDev != 0 {
		t.Errorf("single sample stddev = %v", single[0].StdDev)
	}
}

func TestRenderTerminal(t *testing.T) {
	out := RenderTerminal(positivityPlot(), 60, 10, TerminalOptions{Legend: true, Plain: true})
	lines := strings.Split(out, "\n")
	if len(lines) != 10 {
		t.Fatalf("got %d lines:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "Net Positivity") || !strings.Contains(lines[0], "Enthusiasm") {
		t.Errorf("legend = %q", lines[0])
	}
	if !strings.ContainsRune(out, lineRune) || !strings.ContainsRune(out, '█') {
		t.Errorf("expected line dots and bars:\n%s", out)
	}
	if !strings.Contains(lines[len(lines)-1], "Q1") {
		t.Errorf("x labels = %q", lines[len(lines)-1])
	}

	if got := RenderTerminal(Plot{Title: "Tiny"}, 4, 2, TerminalOptions{}); got != "Tiny" {
		t.Errorf("tiny render = %q", got)
	}
	if got := RenderTerminal(Plot{Title: "Empty"}, 40, 10, TerminalOptions{Plain: true}); got != "no data" {
		t.Errorf("empty render = %q", got)
	}
}

func TestFormats(t *testing.T) {
	if f, err := ParseFormat(".PNG"); err != nil || f != FormatPNG {
		t.Errorf("ParseFormat(.PNG) = %q, %v", f, err)
	}
	if _, err := ParseFormat("gif"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v", err)
	}
	if f, _ := InferFormat("out/chart", FormatSVG); f != FormatSVG {
		t.Errorf("default format = %q", f)
	}
	if _, err := InferFormat("chart.pdf", FormatSVG); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v", err)
	}
}

func TestSaveSVG(t *testing.T) {
	var buf bytes.Buffer
	if err := SaveSVG(&buf, positivityPlot(), ImageOptions{Subtitle: "2023-01-01 → 2024-01-01"}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"<svg", "Net Positivity Trend", "polyline", model.ColorGreen, "Q2 2022"} {
		if !strings.Contains(out, want) {
			t.Errorf("svg missing %q", want)
		}
	}
	if err := SaveSVG(&buf, Plot{}, ImageOptions{}); err == nil {
		t.Error("expected error for empty plot")
	}
}

func TestSaveFiles(t *testing.T) {
	dir := t.TempDir()
	for _, f := range []Format{FormatSVG, FormatPNG} {
		path := filepath.Join(dir, "nested", "positivity."+string(f))
		if err := Save(path, f, positivityPlot(), ImageOptions{Width: 320, Height: 200}); err != nil {
			t.Fatalf("Save(%s): %v", f, err)
		}
		data, err := os.ReadFile(path)
		if err != nil || len(data) == 0 {
			t.Fatalf("read %s: %v", path, err)
		}
		if f == FormatPNG && !bytes.HasPrefix(data, []byte("\x89PNG")) {
			t.Error("png signature missing")
		}
	}
	if err := Save(filepath.Join(dir, "x.gif"), "gif", positivityPlot(), ImageOptions{}); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v", err)
	}
}

func TestParseHex(t *testing.T) {
	c := parseHex(model.ColorCoral)
	if c.R != 0xFF || c.G != 0x8D || c.B != 0x6D {
		t.Errorf("parseHex = %+v", c)
	}
	if c := parseHex("#0f0"); c != (color.RGBA{0, 0xff, 0, 0xff}) {
		t.Errorf("short hex = %+v", c)
	}
	for _, bad := range []string{"teal", "", "#12345z"} {
		if parseHex(bad) != (color.RGBA{0x88, 0x88, 0x88, 0xff}) {
			t.Errorf("parseHex(%q) should fall back to grey", bad)
		}
	}
}
