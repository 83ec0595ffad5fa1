// Package config loads chromaset settings from defaults, a YAML or JSON
// file, and the environment.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/chromaset/internal/catalog"
	"github.com/jmylchreest/chromaset/internal/colour"
	"github.com/jmylchreest/chromaset/internal/palette"
)

// Environment variables read by Path and ApplyEnv.
const (
	EnvConfig    = "CHROMASET_CONFIG"
	EnvSetPrefix = "CHROMASET_SET_PREFIX"
)

// DefaultSetPrefix names exported palettes, e.g. "ChineseSet16".
const DefaultSetPrefix = "ChineseSet"

// AllowedSizes are the palette sizes a config may request.
var AllowedSizes = []int{8, 16, 32, 64, 128}

// Config holds the palette and output settings.
type Config struct {
	Anchors   []colour.Hex        `yaml:"anchors" json:"anchors"`
	Sizes     []int               `yaml:"sizes" json:"sizes"`
	SetPrefix string              `yaml:"set_prefix" json:"set_prefix"`
	Thin      bool                `yaml:"thin" json:"thin"`
	Thinning  catalog.ThinOptions `yaml:"thinning" json:"thinning"`
	Output    Output              `yaml:"output" json:"output"`
}

// Output lists artifact destinations. Empty paths are not written.
type Output struct {
	CSV       string `yaml:"csv" json:"csv"`
	JSON      string `yaml:"json" json:"json"`
	Database  string `yaml:"database" json:"database"`
	SwatchDir string `yaml:"swatch_dir" json:"swatch_dir"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Anchors:   slices.Clone(palette.DefaultAnchors),
		Sizes:     slices.Clone(palette.Sizes),
		SetPrefix: DefaultSetPrefix,
		Thinning:  catalog.DefaultThinOptions(),
		Output: Output{
			CSV:  "chinese_colors.csv",
			JSON: "chinese_palettes.json",
		},
	}
}

// Path returns the config file to load: the explicit path if set, else the
// CHROMASET_CONFIG environment variable.
func Path(explicit string, getenv func(string) string) string {
	if explicit != "" {
		return explicit
	}
	return getenv(EnvConfig)
}

// Load reads a config file over the defaults. Fields absent from the file
// keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	path = expandPath(path)
	data, err := os.ReadFile(path) // #nosec G304 - User-specified config file, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		// Try YAML first, then JSON
		if err := yaml.Unmarshal(data, cfg); err != nil {
			if jsonErr := json.Unmarshal(data, cfg); jsonErr != nil {
				return nil, fmt.Errorf("failed to parse config as YAML or JSON: %w", err)
			}
		}
	}

	cfg.Normalise()
	return cfg, nil
}

// ApplyEnv overrides fields set in the environment.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if prefix := strings.TrimSpace(getenv(EnvSetPrefix)); prefix != "" {
		c.SetPrefix = prefix
	}
}

// Normalise canonicalises valid anchors and expands ~ in output paths.
// Invalid anchors are left for Validate to report.
func (c *Config) Normalise() {
	for i, a := range c.Anchors {
		if h, err := colour.NormaliseHex(string(a)); err == nil {
			c.Anchors[i] = h
		}
	}
	c.Output.CSV = expandPath(c.Output.CSV)
	c.Output.JSON = expandPath(c.Output.JSON)
	c.Output.Database = expandPath(c.Output.Database)
	c.Output.SwatchDir = expandPath(c.Output.SwatchDir)
}

// Validate checks the config can drive a palette build.
func (c *Config) Validate() error {
	if len(c.Anchors) != palette.AnchorCount {
		return fmt.Errorf("anchors: expected %d colours, got %d", palette.AnchorCount, len(c.Anchors))
	}
	seen := make(map[colour.Hex]bool, len(c.Anchors))
	for i, a := range c.Anchors {
		h, err := colour.NormaliseHex(string(a))
		if err != nil {
			return fmt.Errorf("anchor %d: %w", i, err)
		}
		if seen[h] {
			return fmt.Errorf("anchor %d: duplicate colour %s", i, h)
		}
		seen[h] = true
	}

	if len(c.Sizes) == 0 {
		return fmt.Errorf("sizes: at least one palette size is required")
	}
	for _, n := range c.Sizes {
		if !slices.Contains(AllowedSizes, n) {
			return fmt.Errorf("sizes: %d is not one of %v", n, AllowedSizes)
		}
	}

	if c.SetPrefix == "" {
		return fmt.Errorf("set_prefix is required")
	}

	t := c.Thinning
	if t.MinDistance <= 0 || t.MinChroma < 0 {
		return fmt.Errorf("thinning: min_distance must be positive and min_chroma non-negative")
	}
	if t.MinLightness < 0 || t.MaxLightness > 100 || t.MinLightness >= t.MaxLightness {
		return fmt.Errorf("thinning: lightness window [%g, %g] is invalid", t.MinLightness, t.MaxLightness)
	}

	return nil
}

// expandPath expands a leading ~ to the user's home directory.
func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
