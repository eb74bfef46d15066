/*
PURPOSE:
  Loads question files from a directory into ordered Question entities.
  Optionally applies markdown preprocessing before handing questions to
  the engine.

REQUIREMENTS:
  User-specified:
  - One Question per .txt/.md file, sorted by identifier.
  - Optional stripping of code blocks and HTML tags.

  Implementation-discovered:
  - Directory iteration order is not stable across filesystems; sort
    explicitly.
  - A run over zero questions is meaningless and must fail up front.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine
  - Produces: internal/model.Question

ERROR HANDLING:
  - ErrNoDirectory when the questions directory does not exist.
  - ErrEmptyQuestionSet when no recognized files are found.
  - Both abort the run before any output file is written.

IMPLEMENTATION RULES:
  - Preprocessing is a pure text transform; no side effects.
  - Absence of both strip flags is a no-op even when Preprocess is set.

USAGE:
  qs, err := loader.Load("./questions", loader.Options{Preprocess: true})

SELF-HEALING INSTRUCTIONS:
  - If new question formats appear, extend the extension check.

RELATED FILES:
  - internal/model/types.go
  - internal/engine/runner.go

MAINTENANCE:
  - Update when the preprocessing rules change.
*/

package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/reasonlab/cot-runner/internal/model"
)

var (
	// ErrNoDirectory indicates the questions directory does not exist.
	ErrNoDirectory = errors.New("questions directory not found")
	// ErrEmptyQuestionSet indicates no .txt or .md files were found.
	ErrEmptyQuestionSet = errors.New("no .txt or .md question files found")
)

// Options control optional preprocessing of question bodies.
type Options struct {
	Preprocess      bool
	StripCodeBlocks bool
	StripHTML       bool
}

var (
	fencedBlockRe  = regexp.MustCompile("```[a-zA-Z0-9]*\n[\\s\\S]*?\n```")
	indentedLineRe = regexp.MustCompile(`(?m)^    .*$`)
	markupTagRe    = regexp.MustCompile(`<[^>]*>`)
)

// PreprocessMarkdown strips fenced/indented code blocks and markup tags
// from text according to the flags. With both flags false it returns the
// input unchanged.
func PreprocessMarkdown(text string, stripCodeBlocks, stripHTML bool) string {
	if !stripCodeBlocks && !stripHTML {
		return text
	}

	processed := text

	if stripCodeBlocks {
		processed = fencedBlockRe.ReplaceAllString(processed, "")
		processed = indentedLineRe.ReplaceAllString(processed, "")
	}

	if stripHTML {
		processed = markupTagRe.ReplaceAllString(processed, "")
	}

	return processed
}

// Load reads all .txt and .md files from dir, sorted by identifier
// (filename without extension). Fails if the directory does not exist or
// contains no recognized files.
func Load(dir string, opts Options) ([]model.Question, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoDirectory, dir)
		}
		return nil, fmt.Errorf("failed to read questions directory %s: %w", dir, err)
	}

	var questions []model.Question
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".txt" && ext != ".md" {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read question file %s: %w", name, err)
		}

		text := strings.TrimSpace(string(data))
		if opts.Preprocess {
			text = PreprocessMarkdown(text, opts.StripCodeBlocks, opts.StripHTML)
		}

		questions = append(questions, model.Question{
			ID:   strings.TrimSuffix(name, filepath.Ext(name)),
			Text: text,
			File: name,
		})
	}

	if len(questions) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrEmptyQuestionSet, dir)
	}

	sort.Slice(questions, func(i, j int) bool {
		return questions[i].ID < questions[j].ID
	})

	return questions, nil
}
