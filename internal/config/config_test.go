package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reasonlab/cot-runner/internal/config"
)

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	assert.Equal(t, "http://localhost:11434", cfg.URL)
	assert.Equal(t, "llama3.2", cfg.Model)
	assert.Equal(t, 0.7, cfg.Temperature)
	assert.Equal(t, 1000, cfg.MaxTokens)
	assert.Equal(t, 120*time.Second, cfg.Timeout)
	assert.Equal(t, 5, cfg.ChainDepth)
}

func TestLoad_MissingDefaultFilesFallsBack(t *testing.T) {
	// Run from an empty directory so no default config file is found.
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer os.Chdir(wd)

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cot_runner.yaml")
	body := `
model: qwen2.5:7b
temperature: 0.2
chain_depth: 3
preprocess: true
strip_codeblocks: true
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "qwen2.5:7b", cfg.Model)
	assert.Equal(t, 0.2, cfg.Temperature)
	assert.Equal(t, 3, cfg.ChainDepth)
	assert.True(t, cfg.Preprocess)
	assert.True(t, cfg.StripCodeBlocks)
	// Untouched fields keep their defaults.
	assert.Equal(t, "http://localhost:11434", cfg.URL)
	assert.Equal(t, 1000, cfg.MaxTokens)
}

func TestLoad_InvalidYAMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model: [unclosed"), 0644))

	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoad_ExplicitMissingFileErrors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
