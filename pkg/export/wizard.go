package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	json "github.com/goccy/go-json"
	"golang.org/x/term"

	"github.com/vanderheijden86/sentidash/pkg/chart"
	"github.com/vanderheijden86/sentidash/pkg/config"
	"github.com/vanderheijden86/sentidash/pkg/model"
)

// WizardConfig holds the answers of the export wizard. It is saved between
// runs so the next run starts from the previous choices.
type WizardConfig struct {
	Dir    string   `json:"dir"`
	Format string   `json:"format"`
	Panels []string `json:"panels,omitempty"`
	Width  int      `json:"width,omitempty"`
	Report bool     `json:"report"`
}

// Options converts the answers into export options.
func (c WizardConfig) Options() (Options, error) {
	f, err := chart.ParseFormat(c.Format)
	if err != nil {
		return Options{}, err
	}
	opts := Options{Dir: c.Dir, Format: f, Report: c.Report, Image: chart.ImageOptions{Width: c.Width}}
	for _, id := range c.Panels {
		opts.Panels = append(opts.Panels, model.PanelID(id))
	}
	if _, err := ResolvePanels(opts.Panels); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// Wizard asks for export options interactively.
type Wizard struct {
	config WizardConfig
}

// NewWizard seeds the wizard from a saved config, falling back to defaults.
func NewWizard(defaults config.ExportConfig) *Wizard {
	w := &Wizard{config: WizardConfig{Dir: defaults.Dir, Format: defaults.Format, Report: true}}
	if saved, err := LoadWizardConfig(); err == nil && saved != nil {
		w.config = *saved
	}
	if w.config.Dir == "" {
		w.config.Dir = "./sentidash-export"
	}
	if w.config.Format == "" {
		w.config.Format = string(chart.FormatSVG)
	}
	return w
}

// isTerminal checks if stdin is connected to a terminal
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// newForm creates a form with appropriate settings based on TTY detection
func newForm(groups ...*huh.Group) *huh.Form {
	form := huh.NewForm(groups...).WithTheme(huh.ThemeCharm())
	if !isTerminal() {
		form = form.WithAccessible(true)
	}
	return form
}

func panelOptions() []huh.Option[string] {
	var opts []huh.Option[string]
	for _, p := range model.ChartPanels() {
		opts = append(opts, huh.NewOption(p.Title, string(p.ID)))
	}
	return opts
}

// Run shows the form and saves the answers.
func (w *Wizard) Run() (Options, error) {
	form := newForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Output directory").
				Value(&w.config.Dir),
			huh.NewSelect[string]().
				Title("Image format").
				Options(
					huh.NewOption("SVG (vector)", string(chart.FormatSVG)),
					huh.NewOption("PNG (raster)", string(chart.FormatPNG)),
				).
				Value(&w.config.Format),
			huh.NewMultiSelect[string]().
				Title("Charts").
				Description("Select none to export every chart").
				Options(panelOptions()...).
				Value(&w.config.Panels),
			huh.NewConfirm().
				Title("Write a markdown report?").
				Value(&w.config.Report),
		),
	)
	if err := form.Run(); err != nil {
		return Options{}, err
	}
	opts, err := w.config.Options()
	if err != nil {
		return Options{}, err
	}
	if err := SaveWizardConfig(&w.config); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not save wizard settings: %v\n", err)
	}
	return opts, nil
}

// Config returns the current answers.
func (w *Wizard) Config() WizardConfig { return w.config }

// WizardConfigPath returns the path to the wizard config file.
func WizardConfigPath() string {
	dir := config.ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "export-wizard.json")
}

// LoadWizardConfig loads previously saved wizard configuration. It returns
// nil, nil when nothing was saved.
func LoadWizardConfig() (*WizardConfig, error) {
	path := WizardConfigPath()
	if path == "" {
		return nil, fmt.Errorf("could not determine config path")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var cfg WizardConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SaveWizardConfig saves wizard configuration for future runs.
func SaveWizardConfig(cfg *WizardConfig) error {
	path := WizardConfigPath()
	if path == "" {
		return fmt.Errorf("could not determine config path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
