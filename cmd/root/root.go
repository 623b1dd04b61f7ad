// Package root contains the root command for the application
package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"fjacquet/ccris-extract/internal/config"
	"fjacquet/ccris-extract/internal/container"
	"fjacquet/ccris-extract/internal/logging"
	"fjacquet/ccris-extract/internal/validation"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input  string
	Output string
	Format string
	Config string
}

var (
	// Log is the shared logger for commands. It is replaced by the
	// configured logger once the container is built.
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "ccris-extract",
		Short: "Extract structured credit data from CCRIS credit bureau reports.",
		Long: `ccris-extract reads credit bureau report PDFs and extracts the summary,
the banking facility ledger and the non-bank lender ledger into JSON, CSV
or XLSX.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to ccris-extract!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: initialize,
		SilenceUsage:      true,
	}

	// SharedFlags holds the persistent flags of every command
	SharedFlags = CommonFlags{}

	appContainer *container.Container
)

// Init initializes the root command and all flags
func Init() {
	if Cmd.PersistentFlags().Lookup("input") != nil {
		return
	}
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file or directory")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file or directory")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Format, "format", "f", "", "Output format (json, csv, xlsx)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.Config, "config", "", "Config file (default is ./config.yaml)")
}

func initialize(cmd *cobra.Command, args []string) error {
	if err := validation.IsValidOutputFormat(SharedFlags.Format); err != nil {
		return err
	}
	if _, err := config.LoadEnv(); err != nil {
		return err
	}
	cfg, err := config.LoadConfig(SharedFlags.Config)
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}
	if SharedFlags.Format != "" {
		cfg.Output.Format = SharedFlags.Format
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("error initializing application: %w", err)
	}
	appContainer = c
	Log = c.GetLogger()
	return nil
}

// GetContainer returns the application container, nil before the root
// command has run its pre-run hook.
func GetContainer() *container.Container {
	return appContainer
}

// SetContainer replaces the application container.
func SetContainer(c *container.Container) {
	appContainer = c
	if c != nil {
		Log = c.GetLogger()
	}
}
