package catalogpdf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/flanksource/catalogpdf/layout"
	"github.com/flanksource/catalogpdf/render"
	"gopkg.in/yaml.v3"
)

// DefaultOutputName is the file written when no output path is given
const DefaultOutputName = "catalog.pdf"

// RunConfig holds the per-run settings that can come from a YAML file or
// flags. The page geometry itself is fixed.
type RunConfig struct {
	Output    string `yaml:"output,omitempty" json:"output,omitempty"`
	BleedMode string `yaml:"bleed_mode,omitempty" json:"bleed_mode,omitempty"`
	// Guides is nil when unset, guides are drawn by default
	Guides *bool  `yaml:"guides,omitempty" json:"guides,omitempty"`
	Title  string `yaml:"title,omitempty" json:"title,omitempty"`
	Author string `yaml:"author,omitempty" json:"author,omitempty"`
}

// LoadRunConfig reads a YAML run config. Unknown keys are rejected so a typo
// does not silently fall back to a default.
func LoadRunConfig(path string) (RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunConfig{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseRunConfig(data, path)
}

// ParseRunConfig is LoadRunConfig for config data already in memory
func ParseRunConfig(data []byte, name string) (RunConfig, error) {
	var config RunConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return RunConfig{}, fmt.Errorf("parsing config %s: %w", name, err)
	}
	if _, err := layout.ParseBleedMode(config.BleedMode); err != nil {
		return RunConfig{}, fmt.Errorf("config %s: %w", name, err)
	}
	// a relative output is relative to the config file, not the working directory
	if config.Output != "" && !filepath.IsAbs(config.Output) && name != "" {
		config.Output = filepath.Join(filepath.Dir(name), config.Output)
	}
	return config, nil
}

// Merge returns c with every field set in override replacing its own
func (c RunConfig) Merge(override RunConfig) RunConfig {
	if override.Output != "" {
		c.Output = override.Output
	}
	if override.BleedMode != "" {
		c.BleedMode = override.BleedMode
	}
	if override.Guides != nil {
		c.Guides = override.Guides
	}
	if override.Title != "" {
		c.Title = override.Title
	}
	if override.Author != "" {
		c.Author = override.Author
	}
	return c
}

// Grid is the page layout for this run
func (c RunConfig) Grid() (layout.PageGridConfig, error) {
	cfg := layout.DefaultGridConfig()
	mode, err := layout.ParseBleedMode(c.BleedMode)
	if err != nil {
		return cfg, err
	}
	cfg.BleedMode = mode
	if c.Guides != nil {
		cfg.DrawGuides = *c.Guides
	}
	return cfg, cfg.Validate()
}

// Metadata is the PDF document information for this run
func (c RunConfig) Metadata() render.Metadata {
	meta := render.Metadata{Title: c.Title, Author: c.Author}
	if meta.Title == "" {
		meta.Title = "Product Catalog"
	}
	return meta
}

// OutputPath is the configured output, or DefaultOutputPath
func (c RunConfig) OutputPath() string {
	if c.Output != "" {
		return c.Output
	}
	return DefaultOutputPath()
}

// DefaultOutputPath is catalog.pdf on the user's Desktop when that directory
// exists, and in the working directory otherwise.
func DefaultOutputPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		desktop := filepath.Join(home, "Desktop")
		if info, err := os.Stat(desktop); err == nil && info.IsDir() {
			return filepath.Join(desktop, DefaultOutputName)
		}
	}
	return DefaultOutputName
}
