package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds every option recognized by the translator. Values come from an
// optional config file; command line flags override individual fields.
type Config struct {
	// Input is the Cobertura-style XML file to translate.
	Input string `mapstructure:"input"`
	// Output is the LCOV tracefile to write.
	Output string `mapstructure:"output"`
	// TestName is written to the TN: record at the top of the tracefile.
	TestName string `mapstructure:"test_name"`
	// ExcludePatterns is a comma-separated list of glob patterns; matching
	// filenames are skipped.
	ExcludePatterns string `mapstructure:"exclude_patterns"`
	// VersionScript is an external command used to stamp per-file version
	// identifiers after the tracefile is written.
	VersionScript string `mapstructure:"version_script"`
	// Python marks the input as coming from an indentation-significant
	// source, enabling Python-specific derivations.
	Python bool `mapstructure:"python"`
	// DeriveFunctions enables reconstruction of function coverpoints from
	// source indentation.
	DeriveFunctions bool `mapstructure:"derive_functions"`
	// TabWidth is the width assumed for tab characters during derivation.
	TabWidth int `mapstructure:"tab_width"`
	// Checksum enables the per-line content checksum on DA records.
	Checksum bool `mapstructure:"checksum"`
	// KeepGoing demotes recoverable errors to warnings instead of aborting.
	KeepGoing bool `mapstructure:"keep_going"`
	// Verbose enables debug-level diagnostics.
	Verbose bool `mapstructure:"verbose"`
}

// DefaultTabWidth is assumed when no tab width is configured.
const DefaultTabWidth = 4

// Load reads the optional configuration file into a Config. The configName
// parameter is the base name of the file without the extension. A missing
// file is not an error; defaults apply.
func Load(configName string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("configs")
	v.AddConfigPath("../configs")

	v.SetDefault("output", "coverage.info")
	v.SetDefault("tab_width", DefaultTabWidth)

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config data: %w", err)
	}

	return cfg, nil
}

// ExcludeList splits the comma-separated exclude patterns, dropping empty
// entries.
func (c *Config) ExcludeList() []string {
	if c.ExcludePatterns == "" {
		return nil
	}
	var patterns []string
	for _, p := range strings.Split(c.ExcludePatterns, ",") {
		if p = strings.TrimSpace(p); p != "" {
			patterns = append(patterns, p)
		}
	}
	return patterns
}
