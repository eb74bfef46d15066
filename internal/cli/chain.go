package cli

import (
	"github.com/spf13/cobra"

	"github.com/reasonlab/cot-runner/internal/engine"
)

var chainDepthOverride int

var chainCmd = &cobra.Command{
	Use:   "chain",
	Short: "Run the feedback-loop question batch",
	Long: `For each question, feeds the model's completion back as the next prompt
for a fixed number of rounds (default 5). The persisted record holds the full
chain: the original question followed by every completion in order. The loop
always runs the full depth; there is no convergence check.`,
	Example: `  # Chain with defaults
  cot-runner chain -q ./reasoning_ques -o ./reasoning_results

  # Deeper chain with a system prompt on every round
  cot-runner chain --chain-depth 8 --system-prompt "Think step by step."`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadBatchConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("chain-depth") {
			cfg.ChainDepth = chainDepthOverride
		}
		return engine.RunChained(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(chainCmd)
	addBatchFlags(chainCmd)
	chainCmd.Flags().IntVar(&chainDepthOverride, "chain-depth", 0, "Number of feedback rounds per question")
}
