package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/reasonlab/cot-runner/internal/config"
	"github.com/reasonlab/cot-runner/internal/output"
)

// RunBatch sweeps the per-question subdirectories of questionsBase, running
// one chained batch per subdirectory into a matching subdirectory of
// resultsBase. A failed subdirectory is logged and skipped; the sweep
// continues.
func RunBatch(ctx context.Context, cfg *config.Config, questionsBase, resultsBase string) error {
	entries, err := os.ReadDir(questionsBase)
	if err != nil {
		return fmt.Errorf("failed to read question base directory %s: %w", questionsBase, err)
	}

	ran := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		qid := entry.Name()

		sub := *cfg
		sub.QuestionsDir = filepath.Join(questionsBase, qid)
		sub.OutputDir = filepath.Join(resultsBase, qid)

		output.Logger.Info("Running question directory", "id", qid)
		if err := RunChained(ctx, &sub); err != nil {
			output.Logger.Error("Question directory failed", "id", qid, "error", err)
			continue
		}
		output.Logger.Info("Done", "id", qid, "results", sub.OutputDir)
		ran++
	}

	if ran == 0 {
		return fmt.Errorf("no question subdirectories found in %s", questionsBase)
	}
	return nil
}
