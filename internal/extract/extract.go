/*
PURPOSE:
  Extracts a question set from a HuggingFace dataset split and writes each
  record as a numbered text file, ready for the question loader.

REQUIREMENTS:
  User-specified:
  - Pull a named split, guess which field holds question text, write one
    question_NNNN.txt per record.

  Implementation-discovered:
  - The datasets-server /rows endpoint pages at most 100 rows per call.
  - Field guessing follows a fixed priority list; when nothing matches,
    extraction fails with the available field names. There is no
    interactive fallback; pass Field explicitly instead.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli (extract command)
  - Output consumed by: internal/loader

ERROR HANDLING:
  - Network and decode failures abort extraction (this is a setup-style
    utility, not a soft-failure batch).
  - Non-string question fields are an error naming the offending row.

IMPLEMENTATION RULES:
  - Use net/http against the datasets-server REST API.
  - Page sequentially; MaxQuestions of 0 means the whole split.

USAGE:
  n, err := extract.Extract(ctx, extract.Options{
      Dataset: "simplescaling/s1K", Split: "train", OutputDir: "./questions",
  })

SELF-HEALING INSTRUCTIONS:
  - If the datasets-server API changes, update rowsPage and the /rows URL.

RELATED FILES:
  - internal/loader/loader.go

MAINTENANCE:
  - Update the field priority list if common dataset schemas change.
*/

package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/reasonlab/cot-runner/internal/output"
)

// DefaultBaseURL is the public HuggingFace datasets-server endpoint.
const DefaultBaseURL = "https://datasets-server.huggingface.co"

// pageSize is the datasets-server maximum for a single /rows call.
const pageSize = 100

// questionFields is the priority order for guessing the question column.
var questionFields = []string{"question", "prompt", "input", "text", "instruction"}

// ErrNoQuestionField indicates no known field name matched and no explicit
// field was configured.
var ErrNoQuestionField = errors.New("could not determine question field")

// Options configure one extraction. Config is the dataset configuration
// name (datasets-server calls the usual one "default"); Field overrides
// question-field guessing when set; BaseURL overrides the datasets-server
// endpoint (tests).
type Options struct {
	Dataset      string
	Config       string
	Split        string
	Field        string
	OutputDir    string
	MaxQuestions int
	BaseURL      string
}

type rowsPage struct {
	Features []struct {
		Name string `json:"name"`
	} `json:"features"`
	Rows []struct {
		Row map[string]any `json:"row"`
	} `json:"rows"`
	NumRowsTotal int `json:"num_rows_total"`
}

// Extract downloads the split and writes one question_NNNN.txt per record.
// Returns the number of questions written.
func Extract(ctx context.Context, opts Options) (int, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Config == "" {
		opts.Config = "default"
	}
	if opts.Split == "" {
		opts.Split = "train"
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create output directory %s: %w", opts.OutputDir, err)
	}

	client := &http.Client{Timeout: 60 * time.Second}

	output.Logger.Info("Loading dataset", "dataset", opts.Dataset, "split", opts.Split)

	field := opts.Field
	written := 0
	offset := 0

	for {
		length := pageSize
		if opts.MaxQuestions > 0 && opts.MaxQuestions-written < length {
			length = opts.MaxQuestions - written
		}
		if length <= 0 {
			break
		}

		page, err := fetchRows(ctx, client, opts, offset, length)
		if err != nil {
			return written, err
		}

		if field == "" {
			field, err = guessField(page)
			if err != nil {
				return written, err
			}
			output.Logger.Info("Using field as the question source", "field", field)
		}

		for _, row := range page.Rows {
			value, ok := row.Row[field]
			if !ok {
				return written, fmt.Errorf("row %d has no field %q", written, field)
			}
			text, ok := value.(string)
			if !ok {
				return written, fmt.Errorf("field %q in row %d is not text", field, written)
			}

			name := fmt.Sprintf("question_%04d.txt", written+1)
			path := filepath.Join(opts.OutputDir, name)
			if err := os.WriteFile(path, []byte(text), 0644); err != nil {
				return written, fmt.Errorf("failed to write %s: %w", path, err)
			}

			written++
			if written%10 == 0 {
				output.Logger.Info("Saved questions", "count", written, "total", page.NumRowsTotal)
			}
		}

		offset += len(page.Rows)
		if len(page.Rows) == 0 || offset >= page.NumRowsTotal {
			break
		}
		if opts.MaxQuestions > 0 && written >= opts.MaxQuestions {
			break
		}
	}

	output.Logger.Info("Extraction complete", "questions", written, "dir", opts.OutputDir)
	return written, nil
}

func fetchRows(ctx context.Context, client *http.Client, opts Options, offset, length int) (*rowsPage, error) {
	q := url.Values{}
	q.Set("dataset", opts.Dataset)
	q.Set("config", opts.Config)
	q.Set("split", opts.Split)
	q.Set("offset", fmt.Sprintf("%d", offset))
	q.Set("length", fmt.Sprintf("%d", length))

	reqURL := fmt.Sprintf("%s/rows?%s", opts.BaseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rows for %s: %w", opts.Dataset, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("datasets-server returned %s: %s", resp.Status, string(body))
	}

	var page rowsPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("invalid JSON from datasets-server: %w", err)
	}
	return &page, nil
}

// guessField picks the first known question field present in the split's
// feature list.
func guessField(page *rowsPage) (string, error) {
	present := make(map[string]bool, len(page.Features))
	var available []string
	for _, f := range page.Features {
		present[f.Name] = true
		available = append(available, f.Name)
	}

	for _, candidate := range questionFields {
		if present[candidate] {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w; pass --field explicitly (available fields: %v)", ErrNoQuestionField, available)
}
