// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"fjacquet/ccris-extract/internal/parsererror"
)

// EnvPrefix prefixes every environment variable override, e.g.
// CCRIS_EXTRACTION_HISTORY_WINDOW.
const EnvPrefix = "CCRIS"

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Output struct {
		Format    string `mapstructure:"format" yaml:"format"`
		Pretty    bool   `mapstructure:"pretty" yaml:"pretty"`
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"output" yaml:"output"`

	Extraction struct {
		HistoryWindow int      `mapstructure:"history_window" yaml:"history_window"`
		TablesFile    string   `mapstructure:"tables_file" yaml:"tables_file"`
		FacilityCodes []string `mapstructure:"facility_codes" yaml:"facility_codes"`
		TermCodes     []string `mapstructure:"term_codes" yaml:"term_codes"`
		LegalMarkers  []string `mapstructure:"legal_markers" yaml:"legal_markers"`
		Banking       Markers  `mapstructure:"banking" yaml:"banking"`
		NonBank       Markers  `mapstructure:"nonbank" yaml:"nonbank"`
	} `mapstructure:"extraction" yaml:"extraction"`

	Batch struct {
		Workers int `mapstructure:"workers" yaml:"workers"`
	} `mapstructure:"batch" yaml:"batch"`

	PDF struct {
		FallbackPdftotext bool `mapstructure:"fallback_pdftotext" yaml:"fallback_pdftotext"`
	} `mapstructure:"pdf" yaml:"pdf"`
}

// Markers are the start and end markers of a ledger section.
type Markers struct {
	StartMarker string `mapstructure:"start_marker" yaml:"start_marker"`
	EndMarker   string `mapstructure:"end_marker" yaml:"end_marker"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	return LoadConfig("")
}

// LoadConfig loads configuration from configFile, or from the standard
// search paths when configFile is empty.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.ccris-extract")
		v.AddConfigPath(".ccris-extract")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless given explicitly)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Code tables file overrides the inline lists
	if config.Extraction.TablesFile != "" {
		tables, err := LoadTables(config.Extraction.TablesFile)
		if err != nil {
			return nil, err
		}
		tables.Apply(&config)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("output.format", "json")
	v.SetDefault("output.pretty", true)
	v.SetDefault("output.delimiter", ",")

	v.SetDefault("extraction.history_window", DefaultHistoryWindow)
	v.SetDefault("extraction.tables_file", "")
	v.SetDefault("extraction.facility_codes", DefaultFacilityCodes)
	v.SetDefault("extraction.term_codes", DefaultTermCodes)
	v.SetDefault("extraction.legal_markers", DefaultLegalMarkers)
	v.SetDefault("extraction.banking.start_marker", DefaultBankingStart)
	v.SetDefault("extraction.banking.end_marker", DefaultBankingEnd)
	v.SetDefault("extraction.nonbank.start_marker", DefaultNonBankStart)
	v.SetDefault("extraction.nonbank.end_marker", DefaultNonBankEnd)

	v.SetDefault("batch.workers", 4)

	v.SetDefault("pdf.fallback_pdftotext", true)
}

var outputFormats = map[string]bool{"json": true, "csv": true, "xlsx": true}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return &parsererror.ValidationError{Field: "log.level", Reason: fmt.Sprintf("unknown level %q", config.Log.Level)}
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return &parsererror.ValidationError{Field: "log.format", Reason: fmt.Sprintf("%q must be 'text' or 'json'", config.Log.Format)}
	}

	if !outputFormats[strings.ToLower(config.Output.Format)] {
		return &parsererror.ValidationError{Field: "output.format", Reason: fmt.Sprintf("%q must be json, csv or xlsx", config.Output.Format)}
	}

	if len([]rune(config.Output.Delimiter)) != 1 {
		return &parsererror.ValidationError{Field: "output.delimiter", Reason: fmt.Sprintf("must be a single character, got %q", config.Output.Delimiter)}
	}

	if w := config.Extraction.HistoryWindow; w < 1 || w > 12 {
		return &parsererror.ValidationError{Field: "extraction.history_window", Reason: fmt.Sprintf("must be between 1 and 12, got %d", w)}
	}

	for _, table := range []struct {
		field string
		codes []string
	}{
		{"extraction.facility_codes", config.Extraction.FacilityCodes},
		{"extraction.term_codes", config.Extraction.TermCodes},
		{"extraction.legal_markers", config.Extraction.LegalMarkers},
	} {
		if len(nonEmpty(table.codes)) == 0 {
			return &parsererror.ValidationError{Field: table.field, Reason: "must list at least one code"}
		}
	}

	for _, marker := range []struct {
		field string
		value string
	}{
		{"extraction.banking.start_marker", config.Extraction.Banking.StartMarker},
		{"extraction.banking.end_marker", config.Extraction.Banking.EndMarker},
		{"extraction.nonbank.start_marker", config.Extraction.NonBank.StartMarker},
		{"extraction.nonbank.end_marker", config.Extraction.NonBank.EndMarker},
	} {
		if strings.TrimSpace(marker.value) == "" {
			return &parsererror.ValidationError{Field: marker.field, Reason: "must not be empty"}
		}
	}

	if config.Batch.Workers < 1 {
		return &parsererror.ValidationError{Field: "batch.workers", Reason: fmt.Sprintf("must be at least 1, got %d", config.Batch.Workers)}
	}

	return nil
}

// Delimiter returns the configured CSV delimiter as a rune.
func (c *Config) Delimiter() rune {
	r := []rune(c.Output.Delimiter)
	if len(r) == 0 {
		return ','
	}
	return r[0]
}

func nonEmpty(codes []string) []string {
	var out []string
	for _, c := range codes {
		if strings.TrimSpace(c) != "" {
			out = append(out, c)
		}
	}
	return out
}
