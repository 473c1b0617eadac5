package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Export formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config represents the complete configuration for jsonmodel
type Config struct {
	Parse  ParseConfig  `yaml:"parse"`
	Export ExportConfig `yaml:"export"`
	Dev    DevConfig    `yaml:"dev"`
}

// ParseConfig controls how input documents are decoded
type ParseConfig struct {
	NormalizeKeys bool `yaml:"normalize_keys"`
}

// ExportConfig controls how documents are written back out
type ExportConfig struct {
	Format       string `yaml:"format"`
	Pretty       bool   `yaml:"pretty"`
	Indent       string `yaml:"indent"`
	YAMLIndent   int    `yaml:"yaml_indent"`
	FaithfulRoot bool   `yaml:"faithful_root"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// CLIOverrides carries flag values that take precedence over the config
// file. Nil pointers mean the flag was not given.
type CLIOverrides struct {
	Format        string
	Pretty        *bool
	NormalizeKeys *bool
	FaithfulRoot  *bool
	Debug         *bool
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Parse: ParseConfig{
			NormalizeKeys: false,
		},
		Export: ExportConfig{
			Format:       FormatJSON,
			Pretty:       false,
			Indent:       "  ",
			YAMLIndent:   2,
			FaithfulRoot: false,
		},
		Dev: DevConfig{
			Debug: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	return cfg, nil
}

// Validate checks that option values are usable
func (c *Config) Validate() error {
	switch c.Export.Format {
	case FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("unknown export format '%s' (want %s or %s)", c.Export.Format, FormatJSON, FormatYAML)
	}
	if c.Export.YAMLIndent < 2 || c.Export.YAMLIndent > 9 {
		return fmt.Errorf("yaml_indent must be between 2 and 9, got %d", c.Export.YAMLIndent)
	}
	return nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".jsonmodel.yml", ".jsonmodel.yaml", "jsonmodel.yml", "jsonmodel.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Search up the directory tree
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// LoadConfigWithCLI loads config with CLI argument precedence
func LoadConfigWithCLI(configPath string, overrides CLIOverrides) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if overrides.Format != "" {
		cfg.Export.Format = overrides.Format
	}
	if overrides.Pretty != nil {
		cfg.Export.Pretty = *overrides.Pretty
	}
	if overrides.NormalizeKeys != nil {
		cfg.Parse.NormalizeKeys = *overrides.NormalizeKeys
	}
	if overrides.FaithfulRoot != nil {
		cfg.Export.FaithfulRoot = *overrides.FaithfulRoot
	}
	if overrides.Debug != nil {
		cfg.Dev.Debug = *overrides.Debug
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
