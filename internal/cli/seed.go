package cli

import (
	"github.com/spf13/cobra"

	"github.com/reasonlab/cot-runner/internal/output"
	"github.com/reasonlab/cot-runner/internal/questions"
)

var seedBaseDir string

var seedCmd = &cobra.Command{
	Use:   "seed-questions",
	Short: "Write the built-in hallucination question bank to disk",
	Long: `Writes the ten built-in hallucination-probe questions as per-question
directories (q01/question.txt .. q10/question.txt), ready for the 'batch'
sweep.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := questions.Seed(seedBaseDir)
		if err != nil {
			return err
		}

		for _, p := range paths {
			output.Logger.Info("Wrote question", "path", p)
		}
		output.Logger.Info("Seeding complete", "questions", len(paths), "dir", seedBaseDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().StringVarP(&seedBaseDir, "base-dir", "d", "./reasoning_questions_hallucination", "Base directory for the seeded question tree")
}
