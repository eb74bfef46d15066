/*
PURPOSE:
  High-level runner that orchestrates a batch run.
  Loads questions, queries the endpoint once (or ChainDepth times) per
  question, and persists per-question plus aggregate artifacts.

REQUIREMENTS:
  User-specified:
  - Strictly sequential, one question at a time.
  - Per-call failures become error-string completions; the batch continues.

  Implementation-discovered:
  - Questions must load before anything is written, so a missing input
    directory aborts with no output.
  - Needs to report progress to CLI.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli
  - Uses: internal/loader, internal/engine/client.go, internal/output

ERROR HANDLING:
  - Setup errors (loader, output dir, writers) abort the run.
  - Artifact write failures abort the run; results already on disk stay.

IMPLEMENTATION RULES:
  - Iterate questions in loader order.
  - Single-shot: one Generate call, timed, per question.
  - Chained: exactly ChainDepth rounds, each prompted with the previous
    completion. No convergence check.

USAGE:
  err := engine.Run(ctx, cfg)
  err := engine.RunChained(ctx, cfg)

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/engine/client.go

MAINTENANCE:
  - Update iteration logic if parallelism is introduced.
*/

package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/reasonlab/cot-runner/internal/config"
	"github.com/reasonlab/cot-runner/internal/loader"
	"github.com/reasonlab/cot-runner/internal/model"
	"github.com/reasonlab/cot-runner/internal/output"
)

// ErrNoResults indicates a summary was requested over zero records.
var ErrNoResults = errors.New("no results to summarize")

func loaderOptions(cfg *config.Config) loader.Options {
	return loader.Options{
		Preprocess:      cfg.Preprocess,
		StripCodeBlocks: cfg.StripCodeBlocks,
		StripHTML:       cfg.StripHTML,
	}
}

// prepare loads the question set and sets up the output directory and run
// log. Loading happens first: a missing questions directory must abort
// before anything is written.
func prepare(cfg *config.Config, runID string) ([]model.Question, *output.RunLog, error) {
	output.Logger.Info("Reading questions", "dir", cfg.QuestionsDir, "run_id", runID)
	questions, err := loader.Load(cfg.QuestionsDir, loaderOptions(cfg))
	if err != nil {
		return nil, nil, err
	}
	output.Logger.Info("Found question files", "count", len(questions), "run_id", runID)

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create output directory %s: %w", cfg.OutputDir, err)
	}

	runLog, err := output.NewRunLog(filepath.Join(cfg.OutputDir, "run_log.csv"), runID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init run log: %w", err)
	}

	return questions, runLog, nil
}

// Run executes a single-shot batch: one completion per question.
func Run(ctx context.Context, cfg *config.Config) error {
	runID := uuid.NewString()
	c := NewClient(cfg)

	questions, runLog, err := prepare(cfg, runID)
	if err != nil {
		return err
	}
	defer runLog.Close()

	c.CheckModel(ctx)

	results := make([]model.Result, 0, len(questions))
	for i, q := range questions {
		output.Logger.Info("Processing question",
			"index", fmt.Sprintf("%d/%d", i+1, len(questions)),
			"file", q.File,
			"run_id", runID,
		)

		start := time.Now()
		completion, callErr := c.Generate(ctx, q.Text)
		elapsed := time.Since(start)

		errText := ""
		if callErr != nil {
			completion = CompletionForError(callErr)
			errText = callErr.Error()
			output.Logger.Warn("Inference call failed", "question", q.ID, "error", callErr)
		}

		res := model.Result{
			QuestionID:            q.ID,
			QuestionText:          q.Text,
			Response:              completion,
			ProcessingTimeSeconds: roundSeconds(elapsed),
			Model:                 cfg.Model,
			Temperature:           cfg.Temperature,
			MaxTokens:             cfg.MaxTokens,
			SystemPrompt:          cfg.SystemPrompt,
		}

		if err := output.WriteJSON(output.ResultPath(cfg.OutputDir, q.ID), res); err != nil {
			return err
		}
		if err := runLog.Write(q.ID, q.File, "single", 0, elapsed.Seconds(), errText); err != nil {
			output.Logger.Error("Failed to write run log row", "question", q.ID, "error", err)
		}

		results = append(results, res)
		output.Logger.Info("Processed question", "question", q.ID, "seconds", res.ProcessingTimeSeconds)
	}

	if err := output.WriteJSON(output.AggregatePath(cfg.OutputDir), results); err != nil {
		return err
	}
	output.Logger.Info("All results saved", "path", output.AggregatePath(cfg.OutputDir))

	summary, err := Summarize(runID, results)
	if err != nil {
		return err
	}
	output.Logger.Info("Run complete",
		"questions", summary.Questions,
		"avg_seconds", summary.AverageTimeSeconds,
		"run_id", runID,
	)

	return nil
}

// RunChained executes the feedback-loop batch: each completion becomes the
// next prompt. The chain always runs the full depth; output content never
// ends it early.
func RunChained(ctx context.Context, cfg *config.Config) error {
	runID := uuid.NewString()
	c := NewClient(cfg)

	depth := cfg.ChainDepth
	if depth <= 0 {
		depth = config.DefaultConfig().ChainDepth
	}

	questions, runLog, err := prepare(cfg, runID)
	if err != nil {
		return err
	}
	defer runLog.Close()

	c.CheckModel(ctx)

	results := make([]model.IterationResult, 0, len(questions))
	for i, q := range questions {
		output.Logger.Info("Processing question",
			"index", fmt.Sprintf("%d/%d", i+1, len(questions)),
			"file", q.File,
			"run_id", runID,
		)

		responses := make([]string, 0, depth+1)
		responses = append(responses, q.Text)

		for round := 1; round <= depth; round++ {
			prompt := responses[len(responses)-1]

			start := time.Now()
			completion, callErr := c.Generate(ctx, prompt)
			elapsed := time.Since(start)

			errText := ""
			if callErr != nil {
				completion = CompletionForError(callErr)
				errText = callErr.Error()
				output.Logger.Warn("Inference call failed",
					"question", q.ID, "round", round, "error", callErr)
			}

			responses = append(responses, completion)
			if err := runLog.Write(q.ID, q.File, "chain", round, elapsed.Seconds(), errText); err != nil {
				output.Logger.Error("Failed to write run log row", "question", q.ID, "error", err)
			}
		}

		res := model.IterationResult{
			QuestionID:   q.ID,
			QuestionText: q.Text,
			Responses:    responses,
			Model:        cfg.Model,
			Temperature:  cfg.Temperature,
			MaxTokens:    cfg.MaxTokens,
			SystemPrompt: cfg.SystemPrompt,
		}

		if err := output.WriteJSON(output.ResultPath(cfg.OutputDir, q.ID), res); err != nil {
			return err
		}

		results = append(results, res)
		output.Logger.Info("Processed question", "question", q.ID, "rounds", depth)
	}

	if err := output.WriteJSON(output.AggregatePath(cfg.OutputDir), results); err != nil {
		return err
	}
	output.Logger.Info("All results saved", "path", output.AggregatePath(cfg.OutputDir), "run_id", runID)

	return nil
}

// Summarize computes the mean elapsed time across a run's records.
func Summarize(runID string, results []model.Result) (model.RunSummary, error) {
	if len(results) == 0 {
		return model.RunSummary{}, ErrNoResults
	}

	var total float64
	for _, r := range results {
		total += r.ProcessingTimeSeconds
	}

	return model.RunSummary{
		RunID:              runID,
		Questions:          len(results),
		AverageTimeSeconds: roundSeconds2(total / float64(len(results))),
	}, nil
}

func roundSeconds(d time.Duration) float64 {
	return roundSeconds2(d.Seconds())
}

func roundSeconds2(s float64) float64 {
	return math.Round(s*100) / 100
}
