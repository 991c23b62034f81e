package core

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"
)

// RunReport is one line of the append-only run report: what was
// processed, with which policy, and the resulting counts. Reports give
// operators durable evidence of what an anonymization run did without
// storing any record content.
type RunReport struct {
	// Timestamp of the run
	Timestamp string `json:"timestamp"`

	// Mode the run executed in
	Mode Mode `json:"mode"`

	// InputPath is the file that was read
	InputPath string `json:"input_path"`

	// OutputPath is the file that was written
	OutputPath string `json:"output_path"`

	// PreserveIDs records whether ID digesting was active
	PreserveIDs bool `json:"preserve_ids,omitempty"`

	// Stats are the run's aggregate counts
	Stats Stats `json:"stats"`
}

// NewRunReport assembles a report for a finished run
func NewRunReport(policy *Policy, inputPath, outputPath string, stats Stats) RunReport {
	return RunReport{
		Timestamp:   time.Now().Format(time.RFC3339Nano),
		Mode:        policy.Mode,
		InputPath:   inputPath,
		OutputPath:  outputPath,
		PreserveIDs: policy.PreserveIDs,
		Stats:       stats,
	}
}

// AppendReport appends one JSONL entry to the report file, creating
// parent directories as needed
func AppendReport(path string, report RunReport) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open report file: %w", err)
	}
	defer f.Close()

	entry, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report entry: %w", err)
	}

	if _, err := fmt.Fprintln(f, string(entry)); err != nil {
		return fmt.Errorf("failed to write report entry: %w", err)
	}

	return nil
}
