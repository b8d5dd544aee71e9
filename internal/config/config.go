// internal/config/config.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Built-in defaults, used when neither the config file nor the command
// line says otherwise.
const (
	DefaultSize   = "letter"
	DefaultMargin = 0.5
	DefaultTool   = "pdfjam"
	DefaultOutput = "output.pdf"
)

type Config struct {
	// Size is a paper name or explicit WIDTHxHEIGHT inches.
	Size string `yaml:"size"`
	// Margin is the minimum page margin in inches after fitting.
	Margin float64 `yaml:"margin"`
	// LayoutTool is the external command used to rescale and pad pages.
	LayoutTool string `yaml:"layout_tool"`
	Verbose    bool   `yaml:"verbose"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Size:       DefaultSize,
		Margin:     DefaultMargin,
		LayoutTool: DefaultTool,
	}
}

// ApplyFlags lays explicitly-passed command-line values over the
// loaded configuration. set holds the flag names the user actually
// gave (collected with flag.Visit); flags left at their defaults
// never override the file.
func (c *Config) ApplyFlags(set map[string]bool, size string, margin float64, verbose bool) {
	if set["size"] {
		c.Size = size
	}
	if set["margin"] {
		c.Margin = margin
	}
	if set["verbose"] {
		c.Verbose = verbose
	}
}

// Load reads a YAML config file. Keys absent from the file keep their
// defaults, so a margin of 0 in the file is respected while a missing
// margin is not mistaken for one.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}
