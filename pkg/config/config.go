// Package config loads and saves sentidash settings.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/sentidash/config.yaml
//   - State:   ~/.local/state/sentidash/ (debug log)
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/sentidash/pkg/daterange"
)

const appName = "sentidash"

// DataConfig selects where the dashboard's data comes from.
type DataConfig struct {
	Path  string `yaml:"path"`  // fixture file; empty means synthetic data
	Seed  int64  `yaml:"seed"`  // synthetic seed, 0 = clock
	Watch bool   `yaml:"watch"` // reload the fixture when it changes
}

// UIConfig holds the dashboard's starting state.
type UIConfig struct {
	DefaultPreset string `yaml:"default_preset"`
	DefaultStart  string `yaml:"default_start"`
	DefaultEnd    string `yaml:"default_end"`
	DefaultTab    string `yaml:"default_tab"`
	ShowTable     bool   `yaml:"show_table"`
}

// ExportConfig holds chart export defaults.
type ExportConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"`
}

// Config is the top-level configuration.
type Config struct {
	Data   DataConfig   `yaml:"data"`
	UI     UIConfig     `yaml:"ui"`
	Export ExportConfig `yaml:"export"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	def := daterange.DefaultRange()
	return Config{
		Data: DataConfig{Seed: 42, Watch: true},
		UI: UIConfig{
			DefaultStart: def.Start.String(),
			DefaultEnd:   def.End.String(),
			DefaultTab:   "questions",
		},
		Export: ExportConfig{Format: "svg"},
	}
}

// ConfigDir returns the XDG config directory.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

// StateDir returns the XDG state directory.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", appName)
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config from the XDG config directory, then applies
// environment overrides. A missing file yields DefaultConfig.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return applyEnv(DefaultConfig()), nil
	}
	cfg, err := LoadFrom(path)
	return applyEnv(cfg), err
}

// LoadFrom reads config from path. A missing file yields DefaultConfig; on
// any other error the defaults are returned alongside it.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config: %w", err)
	}
	cfg.Data.Path = expandHome(cfg.Data.Path)
	cfg.Export.Dir = expandHome(cfg.Export.Dir)
	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// Save writes cfg to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return errors.New("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes cfg to path.
func SaveTo(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Validate checks the enumerated and date fields.
func (c Config) Validate() error {
	if _, err := daterange.ParsePreset(c.UI.DefaultPreset); err != nil {
		return fmt.Errorf("ui.default_preset: %w", err)
	}
	if _, err := c.InitialRange(daterange.Today()); err != nil {
		return err
	}
	switch strings.ToLower(c.Export.Format) {
	case "", "svg", "png":
	default:
		return fmt.Errorf("export.format: unsupported %q", c.Export.Format)
	}
	return nil
}

// InitialRange returns the range the dashboard starts with: the preset
// resolved against today when set, otherwise the configured bounds.
func (c Config) InitialRange(today daterange.Date) (daterange.Range, error) {
	r := daterange.DefaultRange()
	if c.UI.DefaultStart != "" {
		d, err := daterange.Parse(c.UI.DefaultStart)
		if err != nil {
			return r, fmt.Errorf("ui.default_start: %w", err)
		}
		r.Start = d
	}
	if c.UI.DefaultEnd != "" {
		d, err := daterange.Parse(c.UI.DefaultEnd)
		if err != nil {
			return r, fmt.Errorf("ui.default_end: %w", err)
		}
		r.End = d
	}
	p, err := daterange.ParsePreset(c.UI.DefaultPreset)
	if err != nil {
		return r, fmt.Errorf("ui.default_preset: %w", err)
	}
	if _, ok := daterange.Resolve(p, today); !ok {
		if err := r.Validate(); err != nil {
			return r, fmt.Errorf("ui.default_start/default_end: %w", err)
		}
	}
	return r.Apply(p, today), nil
}

func applyEnv(cfg Config) Config {
	if p := os.Getenv("SENTIDASH_DATA"); p != "" {
		cfg.Data.Path = expandHome(p)
	}
	return cfg
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
