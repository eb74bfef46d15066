/*
PURPOSE:
  Defines the configuration structure and loading logic for cot-runner.
  Adheres to "Config IS Code" philosophy.

REQUIREMENTS:
  User-specified:
  - Allow configuration of the Ollama URL, model, directories, generation
    parameters, and preprocessing toggles.

  Implementation-discovered:
  - Needs to support YAML parsing.
  - CLI flags override loaded values (applied by internal/cli).

ARCHITECTURE INTEGRATION:
  - Used by: internal/cli, internal/engine, internal/extract
  - Dependencies: gopkg.in/yaml.v3 (standard for Go config)

ERROR HANDLING:
  - Returns explicit error if config file is invalid.
  - Missing default config files are not an error (falls back to defaults).

IMPLEMENTATION RULES:
  - Config struct tags should support yaml.
  - Defaults mirror the historical script defaults (llama3.2, 0.7, 1000).

USAGE:
  cfg, err := config.Load("cot_runner.yaml")

SELF-HEALING INSTRUCTIONS:
  - If new fields are needed, add to Config struct and update Load() defaults.

RELATED FILES:
  - internal/cli/root.go

MAINTENANCE:
  - Update when adding new tuning parameters.
*/

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the full configuration for cot-runner.
type Config struct {
	URL          string  `yaml:"url"`
	Model        string  `yaml:"model"`
	QuestionsDir string  `yaml:"questions_dir"`
	OutputDir    string  `yaml:"output_dir"`
	Temperature  float64 `yaml:"temperature"`
	MaxTokens    int     `yaml:"max_tokens"`
	SystemPrompt string  `yaml:"system_prompt"`

	// Timeout bounds a single /api/generate call.
	Timeout time.Duration `yaml:"timeout"`

	// ChainDepth is the number of feedback rounds in chained mode.
	// The historical budget is 5; there is deliberately no convergence check.
	ChainDepth int `yaml:"chain_depth"`

	// Preprocessing toggles, applied by the question loader.
	Preprocess      bool `yaml:"preprocess"`
	StripCodeBlocks bool `yaml:"strip_codeblocks"`
	StripHTML       bool `yaml:"strip_html"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		URL:          "http://localhost:11434",
		Model:        "llama3.2",
		QuestionsDir: "./questions",
		OutputDir:    "./results",
		Temperature:  0.7,
		MaxTokens:    1000,
		Timeout:      120 * time.Second,
		ChainDepth:   5,
	}
}

// Load reads configuration from a file.
// If path is specified, it attempts to load that file.
// If path is empty, it searches for default files in order.
// If no file found, returns default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	var data []byte
	var err error

	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
	} else {
		// Search for defaults
		defaults := []string{"cot_runner.yaml", "runner.yaml"}
		found := false
		for _, name := range defaults {
			data, err = os.ReadFile(name)
			if err == nil {
				path = name // record which file we loaded
				found = true
				break
			}
		}
		if !found {
			// No config file found, return default
			return cfg, nil
		}
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}
