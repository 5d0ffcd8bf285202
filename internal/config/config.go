// Package config loads gridcol settings: an embedded default file merged with
// an optional user file.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/gridcol/pkg/settings"
)

//go:embed default_config.yaml
var embeddedDefaultConfig []byte

var (
	embeddedConfigOnce sync.Once
	embeddedConfig     Config
	embeddedConfigErr  error
)

// ColorValue is a lipgloss color string: an ANSI code ("12") or hex ("#ff8800").
type ColorValue string

// Config is the merged configuration.
type Config struct {
	App    AppConfig              `yaml:"app" json:"app"`
	Output OutputConfig           `yaml:"output" json:"output"`
	Theme  ThemeSelectionConfig   `yaml:"theme" json:"theme"`
	Themes map[string]ThemeConfig `yaml:"themes" json:"themes"`
}

// AppConfig describes the tool.
type AppConfig struct {
	Name        string `yaml:"name,omitempty" json:"name,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// OutputConfig holds defaults for the resolve command. Pointer fields
// distinguish "unset" from false or zero when merging.
type OutputConfig struct {
	Format     string `yaml:"format,omitempty" json:"format,omitempty"`
	RowNumbers string `yaml:"row_numbers,omitempty" json:"row_numbers,omitempty"`
	NoColor    *bool  `yaml:"no_color,omitempty" json:"no_color,omitempty"`
	Width      *int   `yaml:"width,omitempty" json:"width,omitempty"`
	Compact    *bool  `yaml:"compact,omitempty" json:"compact,omitempty"`
}

// ThemeSelectionConfig picks the active theme.
type ThemeSelectionConfig struct {
	Default string `yaml:"default,omitempty" json:"default,omitempty"`
}

// ThemeConfig holds table colors. Empty values fall back to the formatter defaults.
type ThemeConfig struct {
	HeaderFG       ColorValue `yaml:"header_fg,omitempty" json:"header_fg,omitempty"`
	HeaderBG       ColorValue `yaml:"header_bg,omitempty" json:"header_bg,omitempty"`
	KeyColor       ColorValue `yaml:"key_color,omitempty" json:"key_color,omitempty"`
	ValueColor     ColorValue `yaml:"value_color,omitempty" json:"value_color,omitempty"`
	SeparatorColor ColorValue `yaml:"separator_color,omitempty" json:"separator_color,omitempty"`
}

// DefaultConfigYAML returns a copy of the embedded default config YAML bytes.
func DefaultConfigYAML() []byte {
	return append([]byte(nil), embeddedDefaultConfig...)
}

// Default returns the embedded default configuration.
func Default() (Config, error) {
	embeddedConfigOnce.Do(func() {
		if len(embeddedDefaultConfig) == 0 {
			embeddedConfigErr = fmt.Errorf("embedded default config is empty")
			return
		}
		cfg, err := decode(embeddedDefaultConfig)
		if err != nil {
			embeddedConfigErr = fmt.Errorf("decode embedded default config: %w", err)
			return
		}
		if err := cfg.Validate(); err != nil {
			embeddedConfigErr = fmt.Errorf("embedded default config: %w", err)
			return
		}
		embeddedConfig = cfg
	})
	if embeddedConfigErr != nil {
		return Config{}, embeddedConfigErr
	}
	out := embeddedConfig
	out.Themes = maps.Clone(embeddedConfig.Themes)
	return out, nil
}

// Load returns the default configuration merged with the file at path.
// An empty path loads the defaults only.
func Load(path string) (Config, error) {
	cfg, err := Default()
	if err != nil {
		return cfg, err
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	user, err := decode(data)
	if err != nil {
		return cfg, fmt.Errorf("decode config file %s: %w", path, err)
	}

	merged := Merge(cfg, user)
	if err := merged.Validate(); err != nil {
		return cfg, fmt.Errorf("config file %s: %w", path, err)
	}
	return merged, nil
}

// decode rejects unknown keys so that typos surface as errors.
func decode(data []byte) (Config, error) {
	var cfg Config
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Merge overlays the set fields of override onto base. Themes merge per
// color; a theme only present in override starts from base's active theme.
func Merge(base, override Config) Config {
	out := base
	out.Themes = maps.Clone(base.Themes)

	if override.App.Name != "" {
		out.App.Name = override.App.Name
	}
	if override.App.Description != "" {
		out.App.Description = override.App.Description
	}

	if override.Output.Format != "" {
		out.Output.Format = override.Output.Format
	}
	if override.Output.RowNumbers != "" {
		out.Output.RowNumbers = override.Output.RowNumbers
	}
	if override.Output.NoColor != nil {
		out.Output.NoColor = override.Output.NoColor
	}
	if override.Output.Width != nil {
		out.Output.Width = override.Output.Width
	}
	if override.Output.Compact != nil {
		out.Output.Compact = override.Output.Compact
	}

	if override.Theme.Default != "" {
		out.Theme.Default = override.Theme.Default
	}

	if len(override.Themes) > 0 && out.Themes == nil {
		out.Themes = make(map[string]ThemeConfig, len(override.Themes))
	}
	for name, theme := range override.Themes {
		b, ok := out.Themes[name]
		if !ok {
			b = base.Themes[base.Theme.Default]
		}
		out.Themes[name] = mergeTheme(b, theme)
	}
	return out
}

func mergeTheme(base, override ThemeConfig) ThemeConfig {
	out := base
	apply := func(v ColorValue, dst *ColorValue) {
		if v != "" {
			*dst = v
		}
	}
	apply(override.HeaderFG, &out.HeaderFG)
	apply(override.HeaderBG, &out.HeaderBG)
	apply(override.KeyColor, &out.KeyColor)
	apply(override.ValueColor, &out.ValueColor)
	apply(override.SeparatorColor, &out.SeparatorColor)
	return out
}

var rowNumberStyles = map[string]bool{"numbered": true, "index": true, "bullet": true, "none": true}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	if c.Output.Format != "" && !settings.ValidOutputFormat(c.Output.Format) {
		errs = append(errs, fmt.Errorf("output.format: unsupported format %q", c.Output.Format))
	}
	if c.Output.RowNumbers != "" && !rowNumberStyles[c.Output.RowNumbers] {
		errs = append(errs, fmt.Errorf("output.row_numbers: unsupported style %q", c.Output.RowNumbers))
	}
	if c.Output.Width != nil && *c.Output.Width < 0 {
		errs = append(errs, fmt.Errorf("output.width: must not be negative, got %d", *c.Output.Width))
	}
	if c.Theme.Default == "" {
		errs = append(errs, errors.New("theme.default: required"))
	} else if _, ok := c.Themes[c.Theme.Default]; !ok {
		errs = append(errs, fmt.Errorf("theme.default: unknown theme %q", c.Theme.Default))
	}
	return errors.Join(errs...)
}

// ActiveTheme returns the colors of the selected theme.
func (c Config) ActiveTheme() ThemeConfig {
	return c.Themes[c.Theme.Default]
}

// ApplyTo copies the output defaults into run settings.
func (c Config) ApplyTo(run *settings.Run) {
	if c.Output.Format != "" {
		run.OutputFormat = c.Output.Format
	}
	if c.Output.RowNumbers != "" {
		run.RowNumbers = c.Output.RowNumbers
	}
	if c.Output.NoColor != nil {
		run.NoColor = *c.Output.NoColor
	}
	if c.Output.Width != nil {
		run.Width = *c.Output.Width
	}
	if c.Output.Compact != nil {
		run.Compact = *c.Output.Compact
	}
}

// ResolvePath returns the explicit path if set, otherwise the XDG path
// ($XDG_CONFIG_HOME/gridcol/config.yaml) or ~/.config/gridcol/config.yaml if present.
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	candidate := ""
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		candidate = filepath.Join(xdg, settings.CliBinaryName, "config.yaml")
	} else if home, err := os.UserHomeDir(); err == nil {
		candidate = filepath.Join(home, ".config", settings.CliBinaryName, "config.yaml")
	}
	if candidate != "" {
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate
		}
	}
	return ""
}
