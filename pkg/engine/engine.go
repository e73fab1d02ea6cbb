// Package engine runs a diff: it walks both trees, merges them, resolves a
// verdict per path and prints the outcomes.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/sdejongh/durduff/pkg/compare"
	"github.com/sdejongh/durduff/pkg/logging"
	"github.com/sdejongh/durduff/pkg/models"
	"github.com/sdejongh/durduff/pkg/output"
	"github.com/sdejongh/durduff/pkg/storage"
	"github.com/sdejongh/durduff/pkg/stream"
	"github.com/sdejongh/durduff/pkg/walk"
)

// Engine orchestrates the diff operation
type Engine struct {
	left      storage.Backend
	right     storage.Backend
	verdictor *compare.Verdictor
	encoder   output.Encoder
	printer   output.RecordPrinter
	logger    logging.Logger
	operation *models.DiffOperation
}

// NewEngine creates a new diff engine
func NewEngine(
	left, right storage.Backend,
	verdictor *compare.Verdictor,
	encoder output.Encoder,
	printer output.RecordPrinter,
	logger logging.Logger,
	operation *models.DiffOperation,
) *Engine {
	return &Engine{
		left:      left,
		right:     right,
		verdictor: verdictor,
		encoder:   encoder,
		printer:   printer,
		logger:    logger.WithFields(logging.Fields{"operation_id": operation.ID}),
		operation: operation,
	}
}

// Run executes the diff and returns its report.
// The report is always returned. The error is non-nil only for fatal
// failures (a directory that could not be listed, output that could not be
// written, a cancelled context), in which case report.Fatal is set.
func (e *Engine) Run(ctx context.Context) (*models.DiffReport, error) {
	report := &models.DiffReport{
		OperationID: e.operation.ID,
		OldPath:     e.left.Root(),
		NewPath:     e.right.Root(),
		Brief:       e.operation.Brief,
		StartTime:   time.Now(),
		Errors:      models.NoErrors,
		Diff:        models.TreesSame,
	}

	e.logger.Info(ctx, "Starting diff", logging.Fields{
		"old":        report.OldPath,
		"new":        report.NewPath,
		"brief":      e.operation.Brief,
		"block_size": e.verdictor.ChunkSize(),
	})

	left := stream.NewOkIter[string](walk.New(e.left))
	right := stream.NewOkIter[string](walk.New(e.right))
	merged := stream.Merge[string](left, right, walk.ComparePaths)

	runErr := e.process(ctx, merged, report)

	// Output is flushed on every path, fatal or not
	if err := e.printer.Finish(); err != nil && runErr == nil {
		runErr = err
	}

	// A traversal error only surfaces once the merge stopped pulling
	if runErr == nil {
		if err := left.Err(); err != nil {
			runErr = err
		} else if err := right.Err(); err != nil {
			runErr = err
		}
	}

	report.Stats.BytesCompared = e.verdictor.BytesCompared()
	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(report.StartTime)

	if runErr != nil {
		report.Fatal = true
		report.FatalError = runErr.Error()
		e.logger.Error(ctx, "Diff failed", runErr, logging.Fields{
			"kind": models.KindOf(runErr).String(),
		})
		return report, runErr
	}

	e.logger.Info(ctx, "Diff completed", logging.Fields{
		"duration":       report.Duration.String(),
		"status":         report.Status(),
		"paths_compared": report.Stats.PathsCompared,
		"added":          report.Stats.Added,
		"deleted":        report.Stats.Deleted,
		"modified":       report.Stats.Modified,
		"errored":        report.Stats.Errored,
		"bytes_compared": report.Stats.BytesCompared,
	})

	return report, nil
}

// process resolves and prints every merged path. In brief mode it stops at
// the first difference, which is counted but not printed.
func (e *Engine) process(ctx context.Context, merged *stream.Merged[string], report *models.DiffReport) error {
	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("diff interrupted: %w", err)
		}

		t, ok := merged.Next()
		if !ok {
			return nil
		}

		outcome := e.verdictor.Resolve(t)
		e.record(ctx, outcome, report)

		if e.operation.Brief && outcome.Verdict.IsDifference() {
			return nil
		}

		if err := e.printer.Print(e.encoder.Encode(outcome), merged.Remaining()); err != nil {
			return err
		}
	}
}

func (e *Engine) record(ctx context.Context, outcome compare.Outcome, report *models.DiffReport) {
	report.Stats.Record(outcome.Verdict)

	switch {
	case outcome.Verdict == models.VerdictError:
		report.Errors = models.SomeErrors
		e.logger.Warn(ctx, "Failed to compare path", logging.Fields{
			"path":  outcome.Path,
			"kind":  outcome.Kind.String(),
			"error": fmt.Sprint(outcome.Err),
		})
	case outcome.Verdict.IsDifference():
		report.Diff = models.TreesDiff
		e.logger.Debug(ctx, "Path differs", logging.Fields{
			"path":    outcome.Path,
			"verdict": outcome.Verdict.String(),
		})
	}
}
