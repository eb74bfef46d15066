package cli

import (
	"github.com/spf13/cobra"

	"github.com/reasonlab/cot-runner/internal/extract"
	"github.com/reasonlab/cot-runner/internal/output"
)

var (
	extractDataset   string
	extractConfig    string
	extractSplit     string
	extractField     string
	extractOutputDir string
	extractMax       int
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract questions from a HuggingFace dataset split",
	Long: `Downloads rows of a dataset split from the HuggingFace datasets-server
API and writes each record as a numbered question_NNNN.txt file. The question
column is guessed from a fixed priority list (question, prompt, input, text,
instruction); when nothing matches, pass --field explicitly.`,
	Example: `  # Default dataset, whole train split
  cot-runner extract -o ./reasoning_questions

  # Specific dataset and column, first 50 rows
  cot-runner extract --dataset squad --field context --max-questions 50`,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := extract.Extract(cmd.Context(), extract.Options{
			Dataset:      extractDataset,
			Config:       extractConfig,
			Split:        extractSplit,
			Field:        extractField,
			OutputDir:    extractOutputDir,
			MaxQuestions: extractMax,
		})
		if err != nil {
			return err
		}

		output.Logger.Info("Question extraction complete", "questions", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVar(&extractDataset, "dataset", "simplescaling/s1K", "HuggingFace dataset to download")
	extractCmd.Flags().StringVar(&extractConfig, "dataset-config", "default", "Dataset configuration name")
	extractCmd.Flags().StringVar(&extractSplit, "split", "train", "Dataset split to use")
	extractCmd.Flags().StringVar(&extractField, "field", "", "Field holding question text (skips guessing)")
	extractCmd.Flags().StringVarP(&extractOutputDir, "output-dir", "o", "./reasoning_questions", "Directory to save question text files")
	extractCmd.Flags().IntVar(&extractMax, "max-questions", 0, "Maximum number of questions to extract (0 for all)")
}
