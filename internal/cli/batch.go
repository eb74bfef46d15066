package cli

import (
	"github.com/spf13/cobra"

	"github.com/reasonlab/cot-runner/internal/engine"
)

var (
	batchQuestionsBase string
	batchResultsBase   string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run a chained batch per question subdirectory",
	Long: `Iterates the subdirectories of a base directory (as produced by
'seed-questions'), running one chained batch per subdirectory into a matching
subdirectory of the results base. A failed subdirectory is logged and the
sweep continues.`,
	Example: `  cot-runner batch \
    --questions-base ./reasoning_questions_hallucination \
    --results-base ./hallucination_results --model llama3.2`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadBatchConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("chain-depth") {
			cfg.ChainDepth = chainDepthOverride
		}
		return engine.RunBatch(cmd.Context(), cfg, batchQuestionsBase, batchResultsBase)
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)
	addBatchFlags(batchCmd)
	batchCmd.Flags().IntVar(&chainDepthOverride, "chain-depth", 0, "Number of feedback rounds per question")
	batchCmd.Flags().StringVar(&batchQuestionsBase, "questions-base", "./reasoning_questions_hallucination", "Base directory of per-question subdirectories")
	batchCmd.Flags().StringVar(&batchResultsBase, "results-base", "./hallucination_results", "Base directory for per-question result subdirectories")
}
