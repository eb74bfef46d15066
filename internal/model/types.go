/*
PURPOSE:
  Defines the core data structures used throughout cot-runner.
  These models represent questions, per-question results, and run summaries.

REQUIREMENTS:
  User-specified:
  - Record question id, question text, completion, elapsed time.
  - Track model name and generation parameters used.

  Implementation-discovered:
  - JSON tags must match the artifact layout consumed by downstream
    analysis notebooks (question_id, question_text, response, ...).
  - Chained runs persist the full response chain, not a single completion.

ARCHITECTURE INTEGRATION:
  - Used by: internal/loader, internal/engine, internal/output
  - Shared across boundaries.

ERROR HANDLING:
  - None (pure data structs).

IMPLEMENTATION RULES:
  - Keep structs simple and public.
  - Records are immutable once built; nothing mutates them after Write.

USAGE:
  res := model.Result{...}

SELF-HEALING INSTRUCTIONS:
  - If new fields are needed, add them here and update the JSON/CSV writers.

RELATED FILES:
  - internal/output/json.go
  - internal/output/csv.go

MAINTENANCE:
  - Update when the persisted artifact schema changes.
*/

package model

// Question is a single loaded question file. Immutable once loaded.
type Question struct {
	// ID is the source filename without its extension; it doubles as the
	// sort key and the output-file key.
	ID string `json:"id"`
	// Text is the question body, trimmed and optionally preprocessed.
	Text string `json:"text"`
	// File is the base name of the source file.
	File string `json:"file"`
}

// Result is the persisted outcome of one single-shot question.
type Result struct {
	QuestionID            string  `json:"question_id"`
	QuestionText          string  `json:"question_text"`
	Response              string  `json:"response"`
	ProcessingTimeSeconds float64 `json:"processing_time_seconds"`
	Model                 string  `json:"model"`
	Temperature           float64 `json:"temperature"`
	MaxTokens             int     `json:"max_tokens"`
	SystemPrompt          string  `json:"system_prompt,omitempty"`
}

// IterationResult is the persisted outcome of one chained-mode question.
// Responses[0] is the original question text; each later element was
// generated with the immediately preceding element as the prompt.
type IterationResult struct {
	QuestionID   string   `json:"question_id"`
	QuestionText string   `json:"question_text"`
	Responses    []string `json:"responses"`
	Model        string   `json:"model"`
	Temperature  float64  `json:"temperature"`
	MaxTokens    int      `json:"max_tokens"`
	SystemPrompt string   `json:"system_prompt,omitempty"`
}

// RunSummary aggregates timing across one single-shot run.
type RunSummary struct {
	RunID              string  `json:"run_id"`
	Questions          int     `json:"questions"`
	AverageTimeSeconds float64 `json:"average_time_seconds"`
}
