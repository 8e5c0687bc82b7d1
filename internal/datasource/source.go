// Package datasource supplies the dashboard with data. A Provider produces a
// complete model.Dataset; the synthetic provider mimics the demo data and the
// file providers read local JSON, YAML or SQLite fixtures.
package datasource

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vanderheijden86/sentidash/pkg/model"
)

// SourceType identifies how a Provider obtains its data.
type SourceType string

const (
	SourceTypeSynthetic SourceType = "synthetic"
	SourceTypeJSON      SourceType = "json"
	SourceTypeYAML      SourceType = "yaml"
	SourceTypeSQLite    SourceType = "sqlite"
)

// ErrUnknownSourceType is returned by Open for unrecognised file extensions.
var ErrUnknownSourceType = errors.New("unknown data source type")

// Provider loads a full dataset.
type Provider interface {
	Load(ctx context.Context) (model.Dataset, error)
	Info() DataSource
}

// DataSource describes where a dataset came from.
type DataSource struct {
	Type SourceType `json:"type"`
	// Path is empty for synthetic data.
	Path    string    `json:"path,omitempty"`
	ModTime time.Time `json:"mod_time,omitempty"`
	Size    int64     `json:"size,omitempty"`
	Seed    int64     `json:"seed,omitempty"`
}

// String returns a short description for the status bar.
func (s DataSource) String() string {
	if s.Type == SourceTypeSynthetic {
		return fmt.Sprintf("synthetic (seed=%d)", s.Seed)
	}
	return fmt.Sprintf("%s (%s)", filepath.Base(s.Path), s.Type)
}

// Watchable reports whether the source is a file worth watching.
func (s DataSource) Watchable() bool { return s.Path != "" }

// DetectType maps a fixture path to its SourceType by extension.
func DetectType(path string) (SourceType, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return SourceTypeJSON, nil
	case ".yaml", ".yml":
		return SourceTypeYAML, nil
	case ".db", ".sqlite", ".sqlite3":
		return SourceTypeSQLite, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownSourceType, path)
}

// Open returns the provider for path. An empty path selects synthetic data
// generated from seed.
func Open(path string, seed int64) (Provider, error) {
	if path == "" {
		return Synthetic{Seed: seed}, nil
	}
	typ, err := DetectType(path)
	if err != nil {
		return nil, err
	}
	switch typ {
	case SourceTypeJSON:
		return JSONFile{Path: path}, nil
	case SourceTypeYAML:
		return YAMLFile{Path: path}, nil
	default:
		return SQLiteFile{Path: path}, nil
	}
}

func fileInfo(typ SourceType, path string) DataSource {
	ds := DataSource{Type: typ, Path: path}
	if st, err := os.Stat(path); err == nil {
		ds.ModTime = st.ModTime()
		ds.Size = st.Size()
	}
	return ds
}

// normalize fills the parts a fixture may omit and validates the rest.
func normalize(ds model.Dataset) (model.Dataset, error) {
	if len(ds.Analysts) == 0 {
		ds.Analysts = model.DefaultAnalystOptions()
	} else if !ds.Analysts[0].IsAll() {
		all := model.DefaultAnalystOptions()[0]
		ds.Analysts = append([]model.AnalystOption{all}, ds.Analysts...)
	}
	if len(ds.Positive) == 0 {
		ds.Positive = model.DefaultPositiveCards()
	}
	if len(ds.Negative) == 0 {
		ds.Negative = model.DefaultNegativeCards()
	}
	if err := ds.Validate(); err != nil {
		return model.Dataset{}, err
	}
	return ds, nil
}
