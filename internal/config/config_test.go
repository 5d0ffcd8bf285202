package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/gridcol/pkg/settings"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "gridcol", cfg.App.Name)
	assert.Equal(t, settings.OutputTable, cfg.Output.Format)
	assert.Equal(t, "index", cfg.Output.RowNumbers)
	require.NotNil(t, cfg.Output.NoColor)
	assert.False(t, *cfg.Output.NoColor)
	require.NotNil(t, cfg.Output.Width)
	assert.Equal(t, 0, *cfg.Output.Width)
	assert.Equal(t, "dark", cfg.Theme.Default)
	assert.Contains(t, cfg.Themes, "dark")
	assert.Contains(t, cfg.Themes, "light")
	assert.Equal(t, ColorValue("12"), cfg.ActiveTheme().HeaderFG)
}

func TestDefaultReturnsIndependentThemes(t *testing.T) {
	a, err := Default()
	require.NoError(t, err)
	a.Themes["dark"] = ThemeConfig{HeaderFG: "1"}

	b, err := Default()
	require.NoError(t, err)
	assert.Equal(t, ColorValue("12"), b.Themes["dark"].HeaderFG)
}

func TestDefaultConfigYAMLIsACopy(t *testing.T) {
	data := DefaultConfigYAML()
	require.NotEmpty(t, data)
	data[0] = '#'
	assert.NotEqual(t, data[0], DefaultConfigYAML()[0])
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	def, err := Default()
	require.NoError(t, err)
	assert.Equal(t, def, cfg)
}

func TestLoadMergesUserFile(t *testing.T) {
	path := writeConfig(t, `output:
  format: yaml
  no_color: true
  width: 100
theme:
  default: light
themes:
  light:
    header_fg: "#00ff00"
  ocean:
    key_color: "#0000ff"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, settings.OutputYAML, cfg.Output.Format)
	assert.Equal(t, "index", cfg.Output.RowNumbers, "unset keys keep defaults")
	assert.True(t, *cfg.Output.NoColor)
	assert.Equal(t, 100, *cfg.Output.Width)
	assert.Equal(t, "gridcol", cfg.App.Name)

	assert.Equal(t, "light", cfg.Theme.Default)
	assert.Equal(t, ColorValue("#00ff00"), cfg.ActiveTheme().HeaderFG)
	assert.Equal(t, ColorValue("254"), cfg.ActiveTheme().HeaderBG, "per-color merge keeps the rest")

	require.Contains(t, cfg.Themes, "ocean")
	assert.Equal(t, ColorValue("#0000ff"), cfg.Themes["ocean"].KeyColor)
	assert.Equal(t, ColorValue("12"), cfg.Themes["ocean"].HeaderFG, "new theme starts from the default theme")
}

func TestLoadExplicitFalseOverridesTrue(t *testing.T) {
	base := Config{Output: OutputConfig{NoColor: boolPtr(true)}}
	merged := Merge(base, Config{Output: OutputConfig{NoColor: boolPtr(false)}})
	assert.False(t, *merged.Output.NoColor)

	merged = Merge(base, Config{})
	assert.True(t, *merged.Output.NoColor)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"unknown key", "output:\n  colour: red\n", "field colour not found"},
		{"bad yaml", "output: [\n", "decode config file"},
		{"bad format", "output:\n  format: csv\n", "output.format"},
		{"bad row numbers", "output:\n  row_numbers: roman\n", "output.row_numbers"},
		{"negative width", "output:\n  width: -1\n", "output.width"},
		{"unknown theme", "theme:\n  default: neon\n", "unknown theme \"neon\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestLoadEmptyUserFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, "\n"))
	require.NoError(t, err)
	assert.Equal(t, settings.OutputTable, cfg.Output.Format)
}

func TestApplyTo(t *testing.T) {
	run := settings.NewCliParams()
	cfg := Config{Output: OutputConfig{
		Format:     settings.OutputJSON,
		RowNumbers: "none",
		NoColor:    boolPtr(true),
		Width:      intPtr(90),
		Compact:    boolPtr(true),
	}}
	cfg.ApplyTo(run)

	assert.Equal(t, settings.OutputJSON, run.OutputFormat)
	assert.Equal(t, "none", run.RowNumbers)
	assert.True(t, run.NoColor)
	assert.Equal(t, 90, run.Width)
	assert.True(t, run.Compact)

	untouched := settings.NewCliParams()
	Config{}.ApplyTo(untouched)
	assert.Equal(t, settings.NewCliParams(), untouched)
}

func TestResolvePath(t *testing.T) {
	t.Run("explicit wins", func(t *testing.T) {
		assert.Equal(t, "/tmp/custom.yaml", ResolvePath("/tmp/custom.yaml"))
	})

	t.Run("xdg file present", func(t *testing.T) {
		xdg := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(xdg, "gridcol"), 0o755))
		path := filepath.Join(xdg, "gridcol", "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("output:\n  format: json\n"), 0o600))
		t.Setenv("XDG_CONFIG_HOME", xdg)

		assert.Equal(t, path, ResolvePath(""))
	})

	t.Run("xdg file absent", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		assert.Equal(t, "", ResolvePath(""))
	})
}

func boolPtr(b bool) *bool { return &b }
func intPtr(i int) *int    { return &i }
