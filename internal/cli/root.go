package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/streamtable/internal/config"
	"github.com/rshade/streamtable/internal/logging"
	"github.com/rshade/streamtable/internal/output"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the streamtable CLI.
// It wires up configuration, the shared output device, logging, and tracing
// before any subcommand runs.
func NewRootCmd(ver string) *cobra.Command {
	return NewRootCmdWithEnv(ver, os.LookupEnv)
}

// NewRootCmdWithEnv creates the root command with an explicit env lookup for testability.
func NewRootCmdWithEnv(ver string, lookupEnv func(string) (string, bool)) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:     "streamtable",
		Short:   "Render record streams as paged tables",
		Long:    "streamtable: Read a stream of records and print it as a series of tables, one per page of rows",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, lookupEnv)
			if err != nil {
				return &ExitError{Code: ExitUsage, Err: err}
			}
			config.SetGlobalConfig(cfg)

			dev := output.NewDevice(cmd.OutOrStdout(), cmd.ErrOrStderr())
			cmd.SetContext(withDevice(cmd.Context(), dev))

			result := setupLogging(cmd, dev)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "path to the config file (default $STREAMTABLE_HOME/config.yaml)")
	cmd.PersistentFlags().String("project-dir", "", "project directory holding a .streamtable overlay")
	cmd.AddCommand(NewTableCmd())

	return cmd
}

// loadConfig layers the global file, the project overlay, and the environment.
func loadConfig(cmd *cobra.Command, lookupEnv func(string) (string, bool)) (*config.Config, error) {
	ctx := cmd.Context()
	cfgFlag, _ := cmd.Flags().GetString("config")
	projectFlag, _ := cmd.Flags().GetString("project-dir")

	startDir, err := os.Getwd()
	if err != nil {
		startDir = "."
	}
	projectDir := config.ResolveProjectDir(ctx, projectFlag, startDir)

	cfg, err := config.LoadWithProjectDir(ctx, config.ResolvePath(cfgFlag), projectDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err = cfg.ApplyEnv(lookupEnv); err != nil {
		return nil, err
	}
	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

const rootCmdExample = `  # Page newline-delimited JSON from a file
  streamtable table --input events.ndjson

  # Number rows from 1000 and use 25 rows per table
  cat events.ndjson | streamtable table --start-number 1000 --page-size 25

  # Render a YAML document stream as markdown tables
  streamtable table --format yaml --style markdown --input items.yaml

  # Show each line of a text file as a row
  streamtable table --format lines --input notes.txt`
