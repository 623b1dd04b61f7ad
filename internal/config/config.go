package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"fjacquet/ccris-extract/internal/banking"
	"fjacquet/ccris-extract/internal/extract"
	"fjacquet/ccris-extract/internal/logging"
	"fjacquet/ccris-extract/internal/nonbank"
)

// Defaults shared with the extraction packages.
var (
	DefaultHistoryWindow = extract.DefaultHistoryWindow
	DefaultFacilityCodes = extract.DefaultFacilityCodes
	DefaultTermCodes     = extract.DefaultTermCodes
	DefaultLegalMarkers  = extract.DefaultLegalMarkers
	DefaultBankingStart  = banking.DefaultStartMarker
	DefaultBankingEnd    = banking.DefaultEndMarker
	DefaultNonBankStart  = nonbank.DefaultStartMarker
	DefaultNonBankEnd    = nonbank.DefaultEndMarker
)

// LoadEnv loads environment variables from a .env file in the current or
// parent directory. It returns the file loaded, or "" when there is none.
func LoadEnv() (string, error) {
	for _, envFile := range []string{".env", filepath.Join("..", ".env")} {
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			return "", fmt.Errorf("error loading %s: %w", envFile, err)
		}
		return envFile, nil
	}
	return "", nil
}

// Tables is the optional YAML file overriding the code tables:
//
//	facility_codes: [OVRDRAFT, CRDTCARD]
//	term_codes: [MTH, REV]
//	legal_markers: [LOD, SUE]
type Tables struct {
	FacilityCodes []string `yaml:"facility_codes"`
	TermCodes     []string `yaml:"term_codes"`
	LegalMarkers  []string `yaml:"legal_markers"`
}

// LoadTables decodes a tables file.
func LoadTables(path string) (*Tables, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the user's configuration
	if err != nil {
		return nil, fmt.Errorf("error reading tables file: %w", err)
	}
	var tables Tables
	if err := yaml.Unmarshal(data, &tables); err != nil {
		return nil, fmt.Errorf("error parsing tables file %s: %w", path, err)
	}
	return &tables, nil
}

// Apply replaces the configured lists with every non-empty table.
func (t *Tables) Apply(config *Config) {
	if len(t.FacilityCodes) > 0 {
		config.Extraction.FacilityCodes = t.FacilityCodes
	}
	if len(t.TermCodes) > 0 {
		config.Extraction.TermCodes = t.TermCodes
	}
	if len(t.LegalMarkers) > 0 {
		config.Extraction.LegalMarkers = t.LegalMarkers
	}
}

// NewLogger builds the application logger from the configuration.
func NewLogger(config *Config) logging.Logger {
	return logging.NewLogrusAdapter(config.Log.Level, config.Log.Format)
}
