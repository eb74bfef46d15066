package engine_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reasonlab/cot-runner/internal/config"
	"github.com/reasonlab/cot-runner/internal/engine"
	"github.com/reasonlab/cot-runner/internal/output"
)

func testConfig(url string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.URL = url
	return cfg
}

func TestGenerate_SendsPayloadAndReturnsResponse(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(map[string]any{"response": "four"})
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.Model = "llama3.2"
	cfg.Temperature = 0.3
	cfg.MaxTokens = 256
	cfg.SystemPrompt = "Be terse."

	c := engine.NewClient(cfg)
	text, err := c.Generate(context.Background(), "What is 2+2?")
	require.NoError(t, err)
	assert.Equal(t, "four", text)

	assert.Equal(t, "llama3.2", captured["model"])
	assert.Equal(t, "What is 2+2?", captured["prompt"])
	assert.Equal(t, 0.3, captured["temperature"])
	assert.Equal(t, float64(256), captured["max_tokens"])
	assert.Equal(t, false, captured["stream"])
	assert.Equal(t, "Be terse.", captured["system"])
}

func TestGenerate_OmitsSystemWhenEmpty(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(map[string]any{"response": "ok"})
	}))
	defer srv.Close()

	c := engine.NewClient(testConfig(srv.URL))
	_, err := c.Generate(context.Background(), "hi")
	require.NoError(t, err)

	_, hasSystem := captured["system"]
	assert.False(t, hasSystem)
}

func TestGenerate_BadStatusBecomesErrorCompletion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := engine.NewClient(testConfig(srv.URL))
	_, err := c.Generate(context.Background(), "hi")
	require.Error(t, err)

	assert.Equal(t, "Error: Received status code 404: model not found", engine.CompletionForError(err))
}

func TestGenerate_ConnectionRefusedBecomesSentinel(t *testing.T) {
	// Reserve a port, then close it so the connection is refused.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := engine.NewClient(testConfig(srv.URL))
	_, err := c.Generate(context.Background(), "hi")
	require.Error(t, err)

	assert.Equal(t,
		"Error: Could not connect to Ollama. Make sure Ollama is running.",
		engine.CompletionForError(err))
}

func TestModels_ListsNames(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/tags", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"models": []map[string]any{
				{"name": "llama3.2"},
				{"name": "qwen2.5:7b"},
			},
		})
	}))
	defer srv.Close()

	c := engine.NewClient(testConfig(srv.URL))
	names, err := c.Models(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"llama3.2", "qwen2.5:7b"}, names)
}

func TestCheckModel_WarnsOnMissingModel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"models": []map[string]any{{"name": "other-model"}},
		})
	}))
	defer srv.Close()

	var buf bytes.Buffer
	prev := output.Logger
	output.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer output.SetLogger(prev)

	cfg := testConfig(srv.URL)
	cfg.Model = "llama3.2"
	engine.NewClient(cfg).CheckModel(context.Background())

	assert.Contains(t, buf.String(), "Model not found in available models")
	assert.Contains(t, buf.String(), "other-model")
}
