// Package config loads run settings from YAML with environment overrides.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/setanarut/flairsync/utils"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Outputs are the files owned by one pipeline mode.
type Outputs struct {
	Baseline string `yaml:"baseline"`
	Image    string `yaml:"image"`
	Metadata string `yaml:"metadata"`
}

type Config struct {
	SheetURL     string        `yaml:"sheet_url"`
	ProfileURL   string        `yaml:"profile_url"`
	UserAgent    string        `yaml:"user_agent"`
	Timeout      time.Duration `yaml:"timeout"`
	SeedBaseline bool          `yaml:"seed_baseline"`
	Quantizer    string        `yaml:"quantizer"`
	Offsets      Outputs       `yaml:"offsets"`
	Colors       Outputs       `yaml:"colors"`
}

// Default returns the embedded configuration.
func Default() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		panic(fmt.Sprintf("config: embedded default.yaml: %v", err))
	}
	return cfg
}

// Load starts from the embedded defaults, overlays the file at path if path is
// not empty, then applies FLAIRSYNC_* environment variables.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() {
	c.SheetURL = getEnv("FLAIRSYNC_SHEET_URL", c.SheetURL)
	c.ProfileURL = getEnv("FLAIRSYNC_PROFILE_URL", c.ProfileURL)
	c.Timeout = getEnvDuration("FLAIRSYNC_TIMEOUT", c.Timeout)
	c.SeedBaseline = getEnvBool("FLAIRSYNC_SEED_BASELINE", c.SeedBaseline)
	c.Quantizer = getEnv("FLAIRSYNC_QUANTIZER", c.Quantizer)
}

// Validate reports the first missing or malformed setting.
func (c Config) Validate() error {
	switch {
	case c.SheetURL == "":
		return fmt.Errorf("config: sheet_url is required")
	case c.ProfileURL == "":
		return fmt.Errorf("config: profile_url is required")
	case c.Timeout <= 0:
		return fmt.Errorf("config: timeout must be positive, got %s", c.Timeout)
	}
	if _, err := c.PaletteMethod(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	for name, o := range map[string]Outputs{"offsets": c.Offsets, "colors": c.Colors} {
		if o.Baseline == "" || o.Image == "" || o.Metadata == "" {
			return fmt.Errorf("config: %s needs baseline, image and metadata paths", name)
		}
	}
	if c.Offsets.Baseline == c.Colors.Baseline {
		return fmt.Errorf("config: offsets and colors must not share baseline %s", c.Offsets.Baseline)
	}
	return nil
}

// PaletteMethod parses the quantizer setting.
func (c Config) PaletteMethod() (utils.PaletteMethod, error) {
	return utils.ParsePaletteMethod(c.Quantizer)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
