package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/streamtable/internal/config"
	"github.com/rshade/streamtable/internal/logging"
	"github.com/rshade/streamtable/internal/output"
)

// setupLogging configures logging based on config file, environment, and CLI flags.
// Log output to stderr goes through dev so it never lands inside a table.
func setupLogging(cmd *cobra.Command, dev *output.Device) logging.LogPathResult {
	loggingCfg := config.GetLoggingConfig()

	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = logging.FormatConsole
		loggingCfg.File = ""
	}

	// Ensure log directory exists after all overrides have been applied.
	if loggingCfg.File != "" {
		if err := config.EnsureLogDir(); err != nil {
			_, _ = fmt.Fprintf(dev.ErrWriter(), "Warning: could not create log directory: %v\n", err)
		}
	}

	logCfg := loggingCfg.ToLoggingConfig()
	logCfg.Stderr = dev.ErrWriter()
	logCfg.Caller = debug

	result := logging.NewLoggerWithPath(logCfg)
	logger = logging.ComponentLogger(result.Logger, "cli")

	if result.UsingFile {
		logging.PrintLogPathMessage(dev.ErrWriter(), result.FilePath)
	} else if result.FallbackUsed {
		logging.PrintFallbackWarning(dev.ErrWriter(), result.FallbackReason)
	}

	ctx := cmd.Context()
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	ctx = result.Logger.WithContext(ctx)
	cmd.SetContext(ctx)

	logger.Info().Ctx(ctx).Str("command", cmd.Name()).Msg("command started")

	return result
}

// cleanupLogging closes the log file handle.
func cleanupLogging(cmd *cobra.Command, logResult *logging.LogPathResult) error {
	logger.Debug().Ctx(cmd.Context()).Str("command", cmd.Name()).Msg("command finished")
	if logResult != nil {
		return logResult.Close()
	}
	return nil
}
