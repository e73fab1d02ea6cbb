package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sdejongh/durduff/pkg/models"
)

// Report formats
const (
	ReportHuman = "human"
	ReportJSON  = "json"
)

// WriteReport writes the run report to a file.
// Format can be "human" or "json".
func WriteReport(report *models.DiffReport, path string, format string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}

	switch format {
	case ReportJSON:
		err = writeReportJSON(report, file)
	default:
		err = writeReportHuman(report, file)
	}
	if cerr := file.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to close report file: %w", cerr)
	}
	return err
}

// writeReportHuman writes the report in human-readable format
func writeReportHuman(report *models.DiffReport, w io.Writer) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Diff Report\n")
	fmt.Fprintf(&b, "===========\n\n")
	fmt.Fprintf(&b, "Operation: %s\n", report.OperationID)
	fmt.Fprintf(&b, "Old: %s\n", report.OldPath)
	fmt.Fprintf(&b, "New: %s\n", report.NewPath)
	fmt.Fprintf(&b, "Brief: %v\n", report.Brief)
	fmt.Fprintf(&b, "Started: %s\n", report.StartTime.Format(time.RFC3339))
	fmt.Fprintf(&b, "Duration: %s\n\n", formatDuration(report.Duration))

	label := "Summary"
	fmt.Fprintf(&b, "%s\n%s\n", label, strings.Repeat("-", len(label)))
	fmt.Fprintf(&b, "  Paths compared: %d\n", report.Stats.PathsCompared)
	fmt.Fprintf(&b, "  Same:           %d\n", report.Stats.Same)
	fmt.Fprintf(&b, "  Added:          %d\n", report.Stats.Added)
	fmt.Fprintf(&b, "  Deleted:        %d\n", report.Stats.Deleted)
	fmt.Fprintf(&b, "  Modified:       %d\n", report.Stats.Modified)
	fmt.Fprintf(&b, "  Errors:         %d\n", report.Stats.Errored)
	fmt.Fprintf(&b, "  Bytes compared: %s\n\n", formatBytes(report.Stats.BytesCompared))

	if report.Fatal {
		fmt.Fprintf(&b, "Fatal error: %s\n", report.FatalError)
	}
	fmt.Fprintf(&b, "Status: %s (exit code %d)\n", report.Status(), report.ExitCode())

	_, err := io.WriteString(w, b.String())
	return err
}

// JSONReport is the JSON form of a run report
type JSONReport struct {
	Generated   string        `json:"generated"`
	OperationID string        `json:"operation_id"`
	OldPath     string        `json:"old_path"`
	NewPath     string        `json:"new_path"`
	Brief       bool          `json:"brief"`
	StartTime   string        `json:"start_time"`
	EndTime     string        `json:"end_time"`
	Duration    string        `json:"duration"`
	DurationMs  int64         `json:"duration_ms"`
	Stats       JSONStatsData `json:"stats"`
	FatalError  string        `json:"fatal_error,omitempty"`
	Errors      string        `json:"errors"`
	Diff        string        `json:"diff"`
	Status      string        `json:"status"`
	ExitCode    int           `json:"exit_code"`
}

// JSONStatsData represents statistics in JSON format
type JSONStatsData struct {
	PathsCompared int   `json:"paths_compared"`
	Same          int   `json:"same"`
	Added         int   `json:"added"`
	Deleted       int   `json:"deleted"`
	Modified      int   `json:"modified"`
	Errored       int   `json:"errored"`
	BytesCompared int64 `json:"bytes_compared"`
}

// writeReportJSON writes the report in JSON format
func writeReportJSON(report *models.DiffReport, w io.Writer) error {
	out := JSONReport{
		Generated:   time.Now().Format(time.RFC3339),
		OperationID: report.OperationID,
		OldPath:     report.OldPath,
		NewPath:     report.NewPath,
		Brief:       report.Brief,
		StartTime:   report.StartTime.Format(time.RFC3339),
		EndTime:     report.EndTime.Format(time.RFC3339),
		Duration:    report.Duration.String(),
		DurationMs:  report.Duration.Milliseconds(),
		Stats: JSONStatsData{
			PathsCompared: report.Stats.PathsCompared,
			Same:          report.Stats.Same,
			Added:         report.Stats.Added,
			Deleted:       report.Stats.Deleted,
			Modified:      report.Stats.Modified,
			Errored:       report.Stats.Errored,
			BytesCompared: report.Stats.BytesCompared,
		},
		FatalError: report.FatalError,
		Errors:     string(report.Errors),
		Diff:       string(report.Diff),
		Status:     report.Status(),
		ExitCode:   report.ExitCode(),
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

// formatBytes formats bytes in human-readable format
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// formatDuration formats duration in human-readable format
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}
