package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sdejongh/durduff/internal/platform"
	"github.com/sdejongh/durduff/pkg/config"
	"github.com/sdejongh/durduff/pkg/models"
	"github.com/spf13/cobra"
)

// validateDiffArgs checks the <old> and <new> positional arguments
func validateDiffArgs(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("expected <old> and <new> arguments, got %d", len(args))
	}

	for _, path := range args {
		if err := platform.ValidatePath(path); err != nil {
			return err
		}
	}

	return nil
}

// loadConfig loads configuration from file or returns default
func loadConfig(flags *DiffFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// applyFlagsToConfig overrides config values with the flags set on the
// command line
func applyFlagsToConfig(cmd *cobra.Command, cfg *config.Config, flags *DiffFlags) {
	changed := cmd.Flags().Changed

	if changed("block-size") {
		cfg.Compare.BlockSize = int(flags.BlockSize)
	}
	if changed("bandwidth") {
		cfg.Compare.BandwidthLimit = int64(flags.Bandwidth)
	}

	if changed("color") {
		cfg.Output.Color = models.When(flags.Color)
	}
	if changed("progress") {
		cfg.Output.Progress = models.When(flags.Progress)
	}
	if changed("report-format") {
		cfg.Output.ReportFormat = flags.ReportFormat
	}

	if flags.LogFile != "" {
		cfg.Logging.Enabled = true
		cfg.Logging.File = flags.LogFile
	}
	if flags.Verbose {
		cfg.Logging.Level = "debug"
	}
}

// createDiffOperation creates a diff operation from configuration
func createDiffOperation(cfg *config.Config, flags *DiffFlags, oldPath, newPath string) (*models.DiffOperation, error) {
	operation := &models.DiffOperation{
		ID:             uuid.New().String(),
		OldPath:        oldPath,
		NewPath:        newPath,
		Brief:          flags.Brief,
		NulTerminated:  flags.Null,
		Color:          cfg.Output.Color,
		Progress:       cfg.Output.Progress,
		Precount:       cfg.Output.Precount,
		BlockSize:      cfg.Compare.BlockSize,
		BandwidthLimit: cfg.Compare.BandwidthLimit,
		CreatedAt:      time.Now(),
	}

	if err := operation.Validate(); err != nil {
		return nil, err
	}

	return operation, nil
}
