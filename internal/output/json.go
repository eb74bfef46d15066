/*
PURPOSE:
  Writes result records as indented JSON documents, one file per question
  plus one aggregate file per run.

REQUIREMENTS:
  User-specified:
  - One <id>_result.json per question, one all_results.json per run.
  - Human-readable (2-space indent).

  Implementation-discovered:
  - A record file must never be left half-written; a crashed run should
    leave either the full document or the previous one.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine
  - Consumes: internal/model.Result, internal/model.IterationResult

ERROR HANDLING:
  - Returns error on marshal, temp-file, or rename failure.

IMPLEMENTATION RULES:
  - Write to a temp file in the destination directory, then rename.
    Rename on the same filesystem makes the write all-or-nothing.

USAGE:
  err := output.WriteJSON(filepath.Join(dir, "q01_result.json"), res)

SELF-HEALING INSTRUCTIONS:
  - None specific.

RELATED FILES:
  - internal/model/types.go

MAINTENANCE:
  - Update if the artifact layout changes.
*/

package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteJSON marshals v with 2-space indentation and writes it to path
// atomically (temp file + rename).
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file for %s: %w", path, err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to move %s into place: %w", path, err)
	}
	return nil
}

// ResultPath returns the per-question artifact path for an identifier.
func ResultPath(dir, questionID string) string {
	return filepath.Join(dir, questionID+"_result.json")
}

// AggregatePath returns the combined artifact path for a run.
func AggregatePath(dir string) string {
	return filepath.Join(dir, "all_results.json")
}
