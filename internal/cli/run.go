/*
PURPOSE:
  Defines the 'run' subcommand (single-shot mode) and the flag plumbing
  shared with 'chain'.

REQUIREMENTS:
  User-specified:
  - One completion per question, persisted per question plus aggregate.
  - Flags for model, directories, generation parameters, preprocessing.

  Implementation-discovered:
  - Need to load config first, then apply flag overrides.
  - Overrides apply only when a flag was actually set, so config-file
    values survive untouched flags.

ARCHITECTURE INTEGRATION:
  - Calls: internal/engine.Run()
  - Uses: internal/config

ERROR HANDLING:
  - Returns error if config load fails or the run fails.

IMPLEMENTATION RULES:
  - Setup flags in init().
  - Logic: Load Config -> Override -> engine.Run.

USAGE:
  cot-runner run --model llama3.2 --questions-dir ./questions -o ./results

SELF-HEALING INSTRUCTIONS:
  - Check flag names match Config struct fields generally.

RELATED FILES:
  - internal/cli/chain.go
  - internal/cli/root.go

MAINTENANCE:
  - Update when adding new CLI overrides.
*/

package cli

import (
	"github.com/spf13/cobra"

	"github.com/reasonlab/cot-runner/internal/config"
	"github.com/reasonlab/cot-runner/internal/engine"
)

var (
	modelOverride        string
	urlOverride          string
	questionsDirOverride string
	outputDirOverride    string
	temperatureOverride  float64
	maxTokensOverride    int
	systemPromptOverride string
	preprocessFlag       bool
	stripCodeBlocksFlag  bool
	stripHTMLFlag        bool
)

// addBatchFlags registers the flags shared by run and chain.
func addBatchFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&modelOverride, "model", "", "Model name to use with Ollama")
	cmd.Flags().StringVar(&urlOverride, "url", "", "Ollama base URL")
	cmd.Flags().StringVarP(&questionsDirOverride, "questions-dir", "q", "", "Directory containing question text files")
	cmd.Flags().StringVarP(&outputDirOverride, "output-dir", "o", "", "Directory to save results")
	cmd.Flags().Float64Var(&temperatureOverride, "temperature", 0, "Temperature for generation")
	cmd.Flags().IntVar(&maxTokensOverride, "max-tokens", 0, "Maximum tokens to generate")
	cmd.Flags().StringVar(&systemPromptOverride, "system-prompt", "", "Optional system prompt applied to every call")
	cmd.Flags().BoolVar(&preprocessFlag, "preprocess", false, "Enable preprocessing of markdown input")
	cmd.Flags().BoolVar(&stripCodeBlocksFlag, "strip-codeblocks", false, "Remove code blocks during preprocessing")
	cmd.Flags().BoolVar(&stripHTMLFlag, "strip-html", false, "Remove HTML tags during preprocessing")
}

// loadBatchConfig loads config and applies any flags the user set.
func loadBatchConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("model") {
		cfg.Model = modelOverride
	}
	if flags.Changed("url") {
		cfg.URL = urlOverride
	}
	if flags.Changed("questions-dir") {
		cfg.QuestionsDir = questionsDirOverride
	}
	if flags.Changed("output-dir") {
		cfg.OutputDir = outputDirOverride
	}
	if flags.Changed("temperature") {
		cfg.Temperature = temperatureOverride
	}
	if flags.Changed("max-tokens") {
		cfg.MaxTokens = maxTokensOverride
	}
	if flags.Changed("system-prompt") {
		cfg.SystemPrompt = systemPromptOverride
	}
	if flags.Changed("preprocess") {
		cfg.Preprocess = preprocessFlag
	}
	if flags.Changed("strip-codeblocks") {
		cfg.StripCodeBlocks = stripCodeBlocksFlag
	}
	if flags.Changed("strip-html") {
		cfg.StripHTML = stripHTMLFlag
	}

	return cfg, nil
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the single-shot question batch",
	Long: `Reads every .txt/.md file from the questions directory, sends each body
to the Ollama server once, and writes one <id>_result.json per question plus
an all_results.json aggregate. Failed calls are recorded as error-string
completions; the batch keeps going.`,
	Example: `  # Run with defaults (uses cot_runner.yaml when present)
  cot-runner run

  # Override model and directories
  cot-runner run --model llama3.2 -q ./questions -o ./results

  # Strip markdown noise from the inputs first
  cot-runner run --preprocess --strip-codeblocks --strip-html`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadBatchConfig(cmd)
		if err != nil {
			return err
		}
		return engine.Run(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	addBatchFlags(runCmd)
}
