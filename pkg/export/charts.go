// Package export writes the dashboard's chart panels and a markdown report
// to disk.
package export

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vanderheijden86/sentidash/pkg/chart"
	"github.com/vanderheijden86/sentidash/pkg/debug"
	"github.com/vanderheijden86/sentidash/pkg/model"
)

// ErrUnknownPanel is returned when a requested panel id has no chart.
var ErrUnknownPanel = errors.New("unknown panel")

// Options controls a chart export.
type Options struct {
	Dir    string
	Format chart.Format
	// Panels limits the export; empty means every chart panel.
	Panels []model.PanelID
	Image  chart.ImageOptions
	// Report also writes report.md next to the images.
	Report bool
}

// Result is one written chart.
type Result struct {
	Panel model.PanelID `json:"panel"`
	Title string        `json:"title"`
	Path  string        `json:"path"`
}

// FileName returns the file name used for panel id in format.
func FileName(id model.PanelID, format chart.Format) string {
	return string(id) + "." + string(format)
}

// ResolvePanels maps ids to chart panels in layout order.
func ResolvePanels(ids []model.PanelID) ([]model.ChartPanel, error) {
	all := model.ChartPanels()
	if len(ids) == 0 {
		return all, nil
	}
	for _, id := range ids {
		if _, ok := model.FindChartPanel(id); !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownPanel, id)
		}
	}
	var out []model.ChartPanel
	for _, p := range all {
		if slices.Contains(ids, p.ID) {
			out = append(out, p)
		}
	}
	return out, nil
}

// Charts renders the selected panels from trends concurrently. Results come
// back in layout order.
func Charts(ctx context.Context, trends []model.TrendData, opts Options) ([]Result, error) {
	if opts.Format == "" {
		opts.Format = chart.FormatSVG
	}
	if _, err := chart.ParseFormat(string(opts.Format)); err != nil {
		return nil, err
	}
	panels, err := ResolvePanels(opts.Panels)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	results := make([]Result, len(panels))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, p := range panels {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path := filepath.Join(opts.Dir, FileName(p.ID, opts.Format))
			if err := chart.Save(path, opts.Format, chart.ForPanel(p, trends), opts.Image); err != nil {
				return fmt.Errorf("export %s: %w", p.ID, err)
			}
			results[i] = Result{Panel: p.ID, Title: p.Title, Path: path}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	debug.Logw("charts exported", "count", len(results), "format", opts.Format, "took", time.Since(start))
	return results, nil
}
