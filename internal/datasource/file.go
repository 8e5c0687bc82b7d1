package datasource

import (
	"context"
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/sentidash/pkg/model"
)

// JSONFile reads a dataset from a JSON fixture.
type JSONFile struct {
	Path string
}

// Info implements Provider.
func (f JSONFile) Info() DataSource { return fileInfo(SourceTypeJSON, f.Path) }

// Load implements Provider.
func (f JSONFile) Load(ctx context.Context) (model.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return model.Dataset{}, err
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("reading %s: %w", f.Path, err)
	}
	var ds model.Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return model.Dataset{}, fmt.Errorf("parsing %s: %w", f.Path, err)
	}
	ds, err = normalize(ds)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("%s: %w", f.Path, err)
	}
	return ds, nil
}

// YAMLFile reads a dataset from a YAML fixture.
type YAMLFile struct {
	Path string
}

// Info implements Provider.
func (f YAMLFile) Info() DataSource { return fileInfo(SourceTypeYAML, f.Path) }

// Load implements Provider.
func (f YAMLFile) Load(ctx context.Context) (model.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return model.Dataset{}, err
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("reading %s: %w", f.Path, err)
	}
	var ds model.Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return model.Dataset{}, fmt.Errorf("parsing %s: %w", f.Path, err)
	}
	ds, err = normalize(ds)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("%s: %w", f.Path, err)
	}
	return ds, nil
}

// WriteJSON writes ds as an indented JSON fixture.
func WriteJSON(path string, ds model.Dataset) error {
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding dataset: %w", err)
	}
	return writeFileAtomic(path, data)
}

// WriteYAML writes ds as a YAML fixture.
func WriteYAML(path string, ds model.Dataset) error {
	data, err := yaml.Marshal(ds)
	if err != nil {
		return fmt.Errorf("encoding dataset: %w", err)
	}
	return writeFileAtomic(path, data)
}

func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming %s: %w", tmp, err)
	}
	return nil
}
