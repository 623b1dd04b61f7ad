// Package validation checks command line inputs before the pipeline runs.
package validation

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"fjacquet/ccris-extract/internal/export"
	"fjacquet/ccris-extract/internal/textsource"
)

// IsValidInputFile checks that path is an existing regular file of a
// supported document type.
func IsValidInputFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("path does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("path %s is not a regular file", path)
	}
	if !textsource.IsSupported(path) {
		return fmt.Errorf("unsupported input file: %s. Supported types are '.pdf', '.txt'", path)
	}
	return nil
}

// IsValidInputDir checks that path is an existing directory.
func IsValidInputDir(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("path does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path %s is not a directory", path)
	}
	return nil
}

// IsValidOutputFormat checks if the given format is supported. An empty
// format keeps the configured one.
func IsValidOutputFormat(format string) error {
	if format == "" || slices.Contains(export.Formats, strings.ToLower(format)) {
		return nil
	}
	return fmt.Errorf("unsupported output format: %s. Supported formats are '%s'",
		format, strings.Join(export.Formats, "', '"))
}
