// Package config loads tool configuration from a YAML file and keeps a
// small JSON state file with recently processed documents.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// ConfigPathEnvVar overrides the config file location.
	ConfigPathEnvVar = "PDFSMITH_CONFIG"

	configDirName  = ".pdfsmith"
	configFileName = "config.yaml"
)

// Config is the user-editable tool configuration.
type Config struct {
	// DefaultOutputDir is used when a command's output path is relative
	// and no explicit directory was given. Empty means current dir.
	DefaultOutputDir string `yaml:"default_output_dir"`

	// Quiet suppresses progress output, same as the --quiet flag.
	Quiet bool `yaml:"quiet"`

	// MaxFileSize is the input size limit in bytes. Zero means the
	// built-in default.
	MaxFileSize int64 `yaml:"max_file_size"`

	Watermark WatermarkDefaults `yaml:"watermark"`
}

// WatermarkDefaults configures text watermark rendering.
type WatermarkDefaults struct {
	Opacity  float64 `yaml:"opacity"`   // 0.0..1.0
	FontSize int     `yaml:"font_size"` // points
	Rotation int     `yaml:"rotation"`  // degrees
	Position string  `yaml:"position"`  // pdfcpu anchor, e.g. "c", "tl", "br"
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Watermark: WatermarkDefaults{
			Opacity:  0.3,
			FontSize: 50,
			Rotation: 45,
			Position: "c",
		},
	}
}

// Load reads the configuration from path, or from the default location
// when path is empty. A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	if path == "" {
		path = defaultConfigPath()
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if cfg.Watermark.Opacity < 0 || cfg.Watermark.Opacity > 1 {
		return nil, fmt.Errorf("config %s: watermark opacity must be between 0.0 and 1.0", path)
	}

	return cfg, nil
}

// defaultConfigPath resolves the config file location, honouring the
// environment override.
func defaultConfigPath() string {
	if custom := os.Getenv(ConfigPathEnvVar); custom != "" {
		return custom
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, configDirName, configFileName)
}
