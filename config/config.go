package config

import (
	"os"
	"path/filepath"

	"github.com/go-faster/errors"
	"gopkg.in/yaml.v3"
)

type Scope string

const (
	ScopeSelected Scope = "selected"
	ScopeAll      Scope = "all"
)

func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case ScopeSelected, ScopeAll:
		return Scope(s), nil
	default:
		return "", errors.Errorf("unknown scope %q (want %q or %q)", s, ScopeSelected, ScopeAll)
	}
}

// Config holds defaults for an operation. Per-run parameters override them.
type Config struct {
	PresetsFile     string `yaml:"presets_file"`
	Scope           Scope  `yaml:"scope"`
	RewriteFeatures bool   `yaml:"rewrite_features"`
	MaxCopyIndex    int    `yaml:"max_copy_index"`
	LogLevel        string `yaml:"log_level"`
}

func DefaultConfig() Config {
	return Config{
		PresetsFile:  defaultPresetsFile(),
		Scope:        ScopeSelected,
		MaxCopyIndex: 10000,
		LogLevel:     "info",
	}
}

func defaultPresetsFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "glyph-suffixer.presets"
	}
	return filepath.Join(dir, "glyph-suffixer", "presets")
}

// Load reads a YAML config on top of DefaultConfig. An empty path returns the
// defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if _, err := ParseScope(string(c.Scope)); err != nil {
		return err
	}
	if c.MaxCopyIndex < 1 {
		return errors.Errorf("max_copy_index must be positive, got %d", c.MaxCopyIndex)
	}
	if c.PresetsFile == "" {
		return errors.New("presets_file is required")
	}
	return nil
}
