/*
PURPOSE:
  Defines the 'list-models' subcommand.
  Helps debug connectivity and model availability.

REQUIREMENTS:
  User-specified:
  - List available models.

  Implementation-discovered:
  - Useful validation step before a full run.

ARCHITECTURE INTEGRATION:
  - Calls: internal/engine.Client.Models()

ERROR HANDLING:
  - Prints error if URL incorrect.

IMPLEMENTATION RULES:
  - Simple output to stdout.

USAGE:
  cot-runner list-models --url http://localhost:11434

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/engine/client.go

MAINTENANCE:
  - None.
*/

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reasonlab/cot-runner/internal/config"
	"github.com/reasonlab/cot-runner/internal/engine"
)

var listModelsURL string

var listModelsCmd = &cobra.Command{
	Use:   "list-models",
	Short: "List available models on the target host",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("url") {
			cfg.URL = listModelsURL
		}

		c := engine.NewClient(cfg)

		fmt.Printf("Querying %s...\n", cfg.URL)
		models, err := c.Models(cmd.Context())
		if err != nil {
			return err
		}
		for _, m := range models {
			fmt.Printf("- %s\n", m)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(listModelsCmd)
	listModelsCmd.Flags().StringVar(&listModelsURL, "url", "", "Ollama base URL")
}
