package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/sentidash/pkg/chart"
	"github.com/vanderheijden86/sentidash/pkg/config"
	"github.com/vanderheijden86/sentidash/pkg/daterange"
	"github.com/vanderheijden86/sentidash/pkg/export"
	"github.com/vanderheijden86/sentidash/pkg/model"
	"github.com/vanderheijden86/sentidash/pkg/store"
	"github.com/vanderheijden86/sentidash/pkg/testutil"
)

func fixedClock() time.Time { return time.Date(2024, time.August, 31, 9, 0, 0, 0, time.UTC) }

func TestParseFlags(t *testing.T) {
	f, err := parseFlags([]string{"-data", "x.json", "-seed", "0", "-preset", "ytd", "-no-watch", "-export", "out"}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if f.data != "x.json" || !f.seedSet || f.seed != 0 || f.preset != "ytd" || !f.noWatch || f.exportDir != "out" {
		t.Errorf("flags = %+v", f)
	}
	f, _ = parseFlags(nil, io.Discard)
	if f.seedSet {
		t.Error("seed should be unset when not passed")
	}
	if _, err := parseFlags([]string{"-bogus"}, io.Discard); err == nil {
		t.Error("unknown flag should fail")
	}
}

func TestPlainOutput(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	f, err := parseFlags([]string{"-plain"}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if !plainOutput(f) {
		t.Error("-plain should disable colors")
	}
	if plainOutput(flags{}) {
		t.Error("colors should be on by default")
	}
	t.Setenv("NO_COLOR", "1")
	if !plainOutput(flags{}) {
		t.Error("NO_COLOR should disable colors")
	}
}

func TestApplyFlags(t *testing.T) {
	cfg := config.DefaultConfig()
	got, err := applyFlags(cfg, flags{data: "d.yaml", seed: 9, seedSet: true, noWatch: true, table: true, format: "png", tab: "definitions"})
	if err != nil {
		t.Fatal(err)
	}
	if got.Data.Path != "d.yaml" || got.Data.Seed != 9 || got.Data.Watch || !got.UI.ShowTable || got.Export.Format != "png" {
		t.Errorf("cfg = %+v", got)
	}

	got, _ = applyFlags(cfg, flags{})
	if got.Data.Seed != 42 {
		t.Error("unset seed flag should keep the config seed")
	}

	if _, err := applyFlags(cfg, flags{preset: "fortnight"}); err == nil {
		t.Error("bad preset should fail validation")
	}
}

func TestNewStore(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.UI.DefaultPreset = "30d"
	cfg.UI.DefaultTab = "definitions"
	st, err := newStore(cfg, testutil.QuickDataset(), fixedClock)
	if err != nil {
		t.Fatal(err)
	}
	s := st.State()
	if s.Range.Preset != daterange.Preset30d || s.Range.End != daterange.New(2024, time.August, 31) {
		t.Errorf("range = %v", s.Range)
	}
	if s.Tab != store.TabDefinitions {
		t.Errorf("tab = %q", s.Tab)
	}

	cfg.UI.DefaultTab = "charts"
	if _, err := newStore(cfg, testutil.QuickDataset(), fixedClock); err == nil {
		t.Error("unknown tab should fail")
	}
}

func TestWriteSnapshot(t *testing.T) {
	st, err := newStore(config.DefaultConfig(), testutil.QuickDataset(), fixedClock)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := writeSnapshot(&buf, st.View()); err != nil {
		t.Fatal(err)
	}
	var decoded struct {
		Tab       string `json:"tab"`
		Questions []struct {
			Analyst string `json:"analyst"`
			Period  string `json:"period"`
		} `json:"questions"`
		Panels []json.RawMessage `json:"panels"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("snapshot is not JSON: %v", err)
	}
	if decoded.Tab != "questions" || len(decoded.Questions) != 10 || len(decoded.Panels) != len(model.ChartPanels()) {
		t.Errorf("snapshot = %+v", decoded)
	}
	if decoded.Questions[0].Period == "" {
		t.Error("snapshot rows should carry the formatted period")
	}
}

func TestRunExport(t *testing.T) {
	dir := t.TempDir()
	st, err := newStore(config.DefaultConfig(), testutil.QuickDataset(), fixedClock)
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	opts := export.Options{Dir: dir, Format: chart.FormatSVG, Report: true}
	if err := runExport(context.Background(), &out, st.View(), opts); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != len(model.ChartPanels())+1 {
		t.Fatalf("output lines = %d:\n%s", len(lines), out.String())
	}
	svg, err := os.ReadFile(filepath.Join(dir, "positivity.svg"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(svg), "2023-01-01") {
		t.Error("exported chart should carry the range as subtitle")
	}
	if _, err := os.Stat(filepath.Join(dir, export.ReportFile)); err != nil {
		t.Errorf("report missing: %v", err)
	}
}

func TestPresetHelp(t *testing.T) {
	if got := presetHelp(); got != "7d, 30d, 90d, 6m, 1y, ytd" {
		t.Errorf("presetHelp() = %q", got)
	}
}
