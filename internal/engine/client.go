/*
PURPOSE:
  Core client for interacting with the Ollama API.
  Handles model listing, availability checks, and non-streaming generation.

REQUIREMENTS:
  User-specified:
  - One blocking request per question.
  - Soft failure: a dead endpoint must not abort the batch.

  Implementation-discovered:
  - Needs http.Client with timeouts (120s generate, 10s tags).
  - The availability check is advisory only; Ollama can pull a model
    between listing and generation, so a miss is a warning, not an error.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine/runner.go, internal/cli
  - Uses: internal/config, internal/output

ERROR HANDLING:
  - Generate returns an error for connection failures, non-200 statuses,
    and malformed bodies. The runner converts these into error-string
    completions (CompletionForError) so the batch continues.
  - No retries, no backoff. A failed call is recorded as-is.

IMPLEMENTATION RULES:
  - Use net/http.
  - Exactly one network call per Generate invocation.
  - stream=false always; the runner consumes whole completions.

USAGE:
  c := engine.NewClient(cfg)
  text, err := c.Generate(ctx, prompt)

SELF-HEALING INSTRUCTIONS:
  - If the Ollama API changes, update endpoints (/api/tags, /api/generate).

RELATED FILES:
  - internal/config/config.go
  - internal/engine/runner.go

MAINTENANCE:
  - Update for new Ollama API features.
*/

package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/reasonlab/cot-runner/internal/config"
	"github.com/reasonlab/cot-runner/internal/output"
)

// connectionFailedCompletion is recorded when the endpoint is unreachable.
const connectionFailedCompletion = "Error: Could not connect to Ollama. Make sure Ollama is running."

// Client issues single blocking requests against an Ollama endpoint.
type Client struct {
	Config *config.Config
	HTTP   *http.Client
}

// NewClient creates a Client bound to the configured endpoint.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		Config: cfg,
		HTTP: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// statusError carries a non-200 response so the runner can reproduce the
// recorded error string with status code and body.
type statusError struct {
	Code int
	Body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("received status code %d: %s", e.Code, e.Body)
}

// Generate sends one prompt to /api/generate and returns the completion.
// Exactly one network call; no retries.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	payload := map[string]any{
		"model":       c.Config.Model,
		"prompt":      prompt,
		"temperature": c.Config.Temperature,
		"max_tokens":  c.Config.MaxTokens,
		"stream":      false,
	}
	if c.Config.SystemPrompt != "" {
		payload["system"] = c.Config.SystemPrompt
	}

	reqBody, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/api/generate", c.Config.URL), bytes.NewReader(reqBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("connection to %s failed: %w", c.Config.URL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &statusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var data struct {
		Response string `json:"response"`
	}
	if err := json.Unmarshal(body, &data); err != nil {
		return "", fmt.Errorf("invalid JSON from Ollama: %w", err)
	}

	return data.Response, nil
}

// CompletionForError converts a Generate failure into the error-string
// completion recorded in the result artifact. This is the soft-failure
// policy: one bad question never aborts the batch.
func CompletionForError(err error) string {
	var se *statusError
	if errors.As(err, &se) {
		return fmt.Sprintf("Error: Received status code %d: %s", se.Code, se.Body)
	}
	if isConnectionError(err) {
		return connectionFailedCompletion
	}
	return fmt.Sprintf("Error: %v", err)
}

func isConnectionError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "no such host")
}

// Models returns the names available on the endpoint via /api/tags.
func (c *Client) Models(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/api/tags", c.Config.URL), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	var payload struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	var names []string
	for _, m := range payload.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

// CheckModel warns when the configured model is not in the endpoint's
// model list. Advisory only: listing failures and misses never block a
// run, because the model may be pulled on demand.
func (c *Client) CheckModel(ctx context.Context) {
	names, err := c.Models(ctx)
	if err != nil {
		output.Logger.Warn("Could not fetch model list", "url", c.Config.URL, "error", err)
		return
	}

	for _, name := range names {
		if name == c.Config.Model {
			return
		}
	}

	output.Logger.Warn("Model not found in available models",
		"model", c.Config.Model,
		"available", strings.Join(names, ", "),
	)
}
