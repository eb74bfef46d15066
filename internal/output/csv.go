/*
PURPOSE:
  Writes a per-run CSV log with one row per inference call.
  Ensures data integrity by flushing writes immediately.

REQUIREMENTS:
  User-specified:
  - Keep a flat timing log alongside the JSON artifacts.

  Implementation-discovered:
  - Flush after every row so a killed run keeps everything up to the last
    completed call.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine
  - Consumes: per-call timing and error data

ERROR HANDLING:
  - Returns error on file creation or write failure.

IMPLEMENTATION RULES:
  - Use encoding/csv.
  - Flush() after every write (critical for crash resilience).
  - Mutex-guarded; the runner is sequential today but the writer is shared.

USAGE:
  w, err := output.NewRunLog("run_log.csv", runID)
  w.Write("q01", "q01.txt", "single", 0, 1.42, "")
  w.Close()

SELF-HEALING INSTRUCTIONS:
  - If the column set changes, update the header and Write together.

RELATED FILES:
  - internal/engine/runner.go

MAINTENANCE:
  - Update Write() mapping when the logged fields change.
*/

package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"sync"
)

// RunLog handles writing per-call rows to a CSV file.
type RunLog struct {
	file   *os.File
	writer *csv.Writer
	runID  string
	mu     sync.Mutex
}

// NewRunLog creates a new RunLog.
// It overwrites the file if it exists.
func NewRunLog(path, runID string) (*RunLog, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(f)

	header := []string{
		"run_id", "question_id", "file", "mode", "round", "seconds", "error",
	}
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, err
	}
	w.Flush()

	return &RunLog{
		file:   f,
		writer: w,
		runID:  runID,
	}, nil
}

// Write appends one call row. It is thread-safe.
func (rl *RunLog) Write(questionID, file, mode string, round int, seconds float64, callErr string) error {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	record := []string{
		rl.runID,
		questionID,
		file,
		mode,
		fmt.Sprintf("%d", round),
		fmt.Sprintf("%.4f", seconds),
		callErr,
	}

	if err := rl.writer.Write(record); err != nil {
		return err
	}
	rl.writer.Flush()
	return rl.writer.Error()
}

// Close closes the underlying file.
func (rl *RunLog) Close() error {
	rl.writer.Flush()
	return rl.file.Close()
}
