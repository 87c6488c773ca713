package config

import (
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"appiconset/internal/resample"
)

// Config describes what an icon set contains and how it is rendered.
type Config struct {
	// Edge lengths in pixels, in generation order. Duplicates are allowed
	// and produce one write each.
	Sizes []int `toml:"sizes" yaml:"sizes"`

	// Sub-folder created under the output directory.
	SetName string `toml:"set_name" yaml:"set_name"`

	ManifestName string `toml:"manifest_name" yaml:"manifest_name"`

	// Optional path to a manifest template. Empty means the bundled one.
	ManifestTemplate string `toml:"manifest_template" yaml:"manifest_template"`

	Filter      string `toml:"filter" yaml:"filter"`
	Compression string `toml:"compression" yaml:"compression"`
}

// DefaultSizes is the Xcode AppIcon list: iPhone, iPad, App Store and Mac
// slots. 1024 appears twice because two slots need it.
var DefaultSizes = []int{20, 60, 58, 87, 80, 120, 180, 40, 29, 76, 152, 167, 1024, 16, 32, 64, 128, 256, 512, 1024}

const (
	DefaultSetName      = "AppIcon.appiconset"
	DefaultManifestName = "Contents.json"
	DefaultCompression  = "default"
)

var compressionLevels = map[string]png.CompressionLevel{
	"default": png.DefaultCompression,
	"none":    png.NoCompression,
	"fast":    png.BestSpeed,
	"best":    png.BestCompression,
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Sizes:        slices.Clone(DefaultSizes),
		SetName:      DefaultSetName,
		ManifestName: DefaultManifestName,
		Filter:       string(resample.DefaultFilter),
		Compression:  DefaultCompression,
	}
}

// Load reads a .toml, .yaml or .yml configuration file. Fields left out of
// the file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return nil, fmt.Errorf("unsupported config format %q (want .toml, .yaml or .yml)", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// LoadDefault loads the file at DefaultPath, or returns Default() if there
// is none.
func LoadDefault() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return Default(), nil
	}
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

func (c *Config) applyDefaults() {
	def := Default()
	if len(c.Sizes) == 0 {
		c.Sizes = def.Sizes
	}
	if c.SetName == "" {
		c.SetName = def.SetName
	}
	if c.ManifestName == "" {
		c.ManifestName = def.ManifestName
	}
	if c.Filter == "" {
		c.Filter = def.Filter
	}
	if c.Compression == "" {
		c.Compression = def.Compression
	}
}

// Validate checks the fields an export run relies on.
func (c *Config) Validate() error {
	if len(c.Sizes) == 0 {
		return fmt.Errorf("sizes must not be empty")
	}
	for i, size := range c.Sizes {
		if size <= 0 {
			return fmt.Errorf("sizes[%d] = %d, must be positive", i, size)
		}
		if size > resample.MaxSize {
			return fmt.Errorf("sizes[%d] = %d, exceeds maximum of %d", i, size, resample.MaxSize)
		}
	}
	if !isPlainName(c.ManifestName) {
		return fmt.Errorf("manifest_name %q must be a plain file name", c.ManifestName)
	}
	if c.SetName != "" && filepath.IsAbs(c.SetName) {
		return fmt.Errorf("set_name %q must be relative", c.SetName)
	}
	if !resample.Known(c.Filter) {
		return fmt.Errorf("unknown filter %q", c.Filter)
	}
	if _, ok := compressionLevels[c.Compression]; !ok {
		return fmt.Errorf("unknown compression %q (want default, none, fast or best)", c.Compression)
	}
	return nil
}

// PNGCompression maps Compression onto the encoder setting.
func (c *Config) PNGCompression() png.CompressionLevel {
	if level, ok := compressionLevels[c.Compression]; ok {
		return level
	}
	return png.DefaultCompression
}

func isPlainName(name string) bool {
	return name != "" && name != "." && name != ".." && filepath.Base(name) == name && !strings.ContainsAny(name, `/\`)
}
