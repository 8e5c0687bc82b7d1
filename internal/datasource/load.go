package datasource

import (
	"context"
	"fmt"
	"time"

	"github.com/vanderheijden86/sentidash/pkg/debug"
	"github.com/vanderheijden86/sentidash/pkg/metrics"
	"github.com/vanderheijden86/sentidash/pkg/model"
)

// DefaultLoadTimeout bounds a single provider load.
const DefaultLoadTimeout = 10 * time.Second

// Load runs p with a timeout, recording timing and logging the outcome.
func Load(ctx context.Context, p Provider) (model.Dataset, error) {
	defer metrics.Timer(metrics.DatasetLoad)()
	ctx, cancel := context.WithTimeout(ctx, DefaultLoadTimeout)
	defer cancel()

	start := time.Now()
	ds, err := p.Load(ctx)
	info := p.Info()
	if err != nil {
		debug.Logw("dataset load failed", "source", info.String(), "err", err)
		return model.Dataset{}, fmt.Errorf("loading %s data: %w", info.Type, err)
	}
	debug.Logw("dataset loaded", "source", info.String(),
		"questions", len(ds.Questions), "trends", len(ds.Trends), "took", time.Since(start))
	return ds, nil
}
