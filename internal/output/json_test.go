package output_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reasonlab/cot-runner/internal/model"
	"github.com/reasonlab/cot-runner/internal/output"
)

func TestWriteJSON_IndentedDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "q01_result.json")

	res := model.Result{
		QuestionID:   "q01",
		QuestionText: "2+2=?",
		Response:     "4",
		Model:        "llama3.2",
	}
	require.NoError(t, output.WriteJSON(path, res))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var back model.Result
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, res, back)

	assert.True(t, strings.HasPrefix(string(data), "{\n  \""), "expected 2-space indent")
	assert.True(t, strings.HasSuffix(string(data), "\n"))
}

func TestWriteJSON_OverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "all_results.json")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0644))

	require.NoError(t, output.WriteJSON(path, []model.Result{{QuestionID: "a"}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "stale")

	var back []model.Result
	require.NoError(t, json.Unmarshal(data, &back))
	require.Len(t, back, 1)
}

func TestWriteJSON_OmitsEmptySystemPrompt(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "r.json")
	require.NoError(t, output.WriteJSON(path, model.Result{QuestionID: "a"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "system_prompt")
}

func TestWriteJSON_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, output.WriteJSON(filepath.Join(dir, "r.json"), model.Result{}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "r.json", entries[0].Name())
}

func TestRunLog_HeaderAndRows(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run_log.csv")

	rl, err := output.NewRunLog(path, "run-1")
	require.NoError(t, err)
	require.NoError(t, rl.Write("q01", "q01.txt", "chain", 3, 1.2345, ""))
	require.NoError(t, rl.Write("q02", "q02.txt", "single", 0, 0.5, "connection refused"))
	require.NoError(t, rl.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "run_id,question_id,file,mode,round,seconds,error", lines[0])
	assert.Equal(t, "run-1,q01,q01.txt,chain,3,1.2345,", lines[1])
	assert.Equal(t, "run-1,q02,q02.txt,single,0,0.5000,connection refused", lines[2])
}

func TestPaths(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "q01_result.json"), output.ResultPath("out", "q01"))
	assert.Equal(t, filepath.Join("out", "all_results.json"), output.AggregatePath("out"))
}
