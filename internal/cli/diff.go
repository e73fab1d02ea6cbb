package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/sdejongh/durduff/internal/platform"
	"github.com/sdejongh/durduff/pkg/compare"
	"github.com/sdejongh/durduff/pkg/config"
	"github.com/sdejongh/durduff/pkg/engine"
	"github.com/sdejongh/durduff/pkg/logging"
	"github.com/sdejongh/durduff/pkg/models"
	"github.com/sdejongh/durduff/pkg/output"
	"github.com/sdejongh/durduff/pkg/ratelimit"
	"github.com/sdejongh/durduff/pkg/storage"
	"github.com/spf13/cobra"
)

// runDiff compares <old> and <new> and returns the exit code. A returned
// error is a usage or configuration error, reported by the caller.
func runDiff(cmd *cobra.Command, args []string, flags *DiffFlags, env *runEnv) (int, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if err := validateDiffArgs(args); err != nil {
		return models.ExitFatal, err
	}

	// Load configuration
	cfg, err := loadConfig(flags)
	if err != nil {
		return models.ExitFatal, err
	}

	// Override config with command-line flags
	applyFlagsToConfig(cmd, cfg, flags)
	if err := cfg.Validate(); err != nil {
		return models.ExitFatal, err
	}

	operation, err := createDiffOperation(cfg, flags, args[0], args[1])
	if err != nil {
		return models.ExitFatal, err
	}

	// Create storage backends
	left, err := storage.NewLocal(operation.OldPath)
	if err != nil {
		fmt.Fprintf(env.stderr, "%s: <old> is not a directory: %s\n", env.binName, platform.PercentEncode(operation.OldPath))
		return models.ExitFatal, nil
	}
	defer left.Close()

	right, err := storage.NewLocal(operation.NewPath)
	if err != nil {
		fmt.Fprintf(env.stderr, "%s: <new> is not a directory: %s\n", env.binName, platform.PercentEncode(operation.NewPath))
		return models.ExitFatal, nil
	}
	defer right.Close()

	logger, err := createLogger(cfg.Logging)
	if err != nil {
		return models.ExitFatal, fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	verdictor, err := compare.NewVerdictor(left, right, operation.BlockSize)
	if err != nil {
		return models.ExitFatal, err
	}
	if limiter := ratelimit.NewLimiter(operation.BandwidthLimit); limiter != nil {
		verdictor.SetReaderWrapper(func(r io.Reader) io.Reader {
			return ratelimit.NewReader(ctx, r, limiter)
		})
	}

	codes := output.NoColor()
	if operation.Color.Resolve(env.stdoutTTY) {
		codes = output.Color()
	}
	encoder := output.Encoder{Codes: codes, NulTerminated: operation.NulTerminated}

	var printer output.RecordPrinter
	if operation.Progress.Resolve(env.stderrTTY) {
		totalHint := 0
		if operation.Precount {
			fmt.Fprintln(env.stderr, "calculating totals... ")
			totalHint = engine.CountTotal(left, right)
			fmt.Fprintln(env.stderr, "done.")
			fmt.Fprintln(env.stderr)
		}
		printer = output.NewProgressivePrinter(env.stdout, env.stderr, totalHint)
	} else {
		printer = output.NewPlainPrinter(env.stdout, env.stderr)
	}

	eng := engine.NewEngine(left, right, verdictor, encoder, printer, logger, operation)
	report, runErr := eng.Run(ctx)

	if operation.Brief && report.Diff == models.TreesDiff {
		fmt.Fprintln(env.stderr, "directory trees differ")
	}

	if runErr != nil {
		fmt.Fprintf(env.stderr, "%s%s: fatal error: %s: %v\n%s",
			codes.Error, env.binName, models.KindOf(runErr).Description(), runErr, codes.Reset)
	} else if report.Errors == models.SomeErrors {
		fmt.Fprintf(env.stderr, "%s%s: nonfatal errors encountered\n%s", codes.Error, env.binName, codes.Reset)
	}

	// Write the run report if requested
	if flags.Report != "" {
		if err := output.WriteReport(report, flags.Report, cfg.Output.ReportFormat); err != nil {
			fmt.Fprintf(env.stderr, "%s: failed to write report: %v\n", env.binName, err)
			return models.ExitFatal, nil
		}
	}

	return report.ExitCode(), nil
}

// createLogger creates a logger based on configuration
func createLogger(cfg config.LoggingConfig) (logging.Logger, error) {
	// Logs go to a file only, stdout and stderr carry the diff
	if !cfg.Enabled || cfg.File == "" {
		return logging.NewNullLogger(), nil
	}

	format := logging.FormatJSON
	if cfg.Format == "text" {
		format = logging.FormatText
	}

	return logging.NewFileLogger(logging.FileLoggerConfig{
		Path:       cfg.File,
		Format:     format,
		Level:      logging.ParseLevel(cfg.Level),
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
	})
}
