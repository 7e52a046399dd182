package cli

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordRuns records one run per input under the given ids and returns the
// database path.
func recordRuns(t *testing.T, inputs []string, ids ...string) string {
	t.Helper()
	db := filepath.Join(t.TempDir(), "runs.db")
	for i, content := range inputs {
		input := writeFile(t, "in.csv", content)
		_, _, err := execute(t, []string{"--db", db, input}, ids[i])
		require.NoError(t, err)
	}
	return db
}

func TestHistory_RequiresDatabase(t *testing.T) {
	_, _, err := execute(t, []string{"history"})
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "requires a database")
}

func TestHistory_RejectsArgs(t *testing.T) {
	_, _, err := execute(t, []string{"history", "extra"})
	require.Error(t, err)
}

func TestHistory_ListText(t *testing.T) {
	db := recordRuns(t, []string{sampleInput, "id,json\n"}, "run-a", "run-b")

	stdout, _, err := execute(t, []string{"--db", db, "history"})
	require.NoError(t, err)
	assert.Contains(t, stdout, "SEQ")
	assert.Contains(t, stdout, "run-a")
	assert.Contains(t, stdout, "run-b")
	assert.Less(t, strings.Index(stdout, "run-a"), strings.Index(stdout, "run-b"))
}

func TestHistory_ListEmpty(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.db")

	stdout, _, err := execute(t, []string{"--db", db, "history"})
	require.NoError(t, err)
	assert.Equal(t, "No runs recorded.\n", stdout)
}

func TestHistory_ListJSON(t *testing.T) {
	db := recordRuns(t, []string{sampleInput}, "run-a")

	stdout, _, err := execute(t, []string{"--db", db, "--format", "json", "history"})
	require.NoError(t, err)

	var resp struct {
		Status string `json:"status"`
		Data   []struct {
			ID            string `json:"id"`
			HeaderEmitted bool   `json:"header_emitted"`
			Stats         struct {
				Lines   int `json:"lines"`
				Records int `json:"records"`
				Valid   int `json:"valid"`
				Invalid int `json:"invalid"`
			} `json:"stats"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "run-a", resp.Data[0].ID)
	assert.True(t, resp.Data[0].HeaderEmitted)
	assert.Equal(t, 7, resp.Data[0].Stats.Lines)
	assert.Equal(t, 6, resp.Data[0].Stats.Records)
	assert.Equal(t, 3, resp.Data[0].Stats.Valid)
	assert.Equal(t, 3, resp.Data[0].Stats.Invalid)
}

func TestHistory_ReplayRun(t *testing.T) {
	db := recordRuns(t, []string{sampleInput, "id,json\nx,\"[7]\"\n"}, "run-a", "run-b")

	stdout, _, err := execute(t, []string{"--db", db, "history", "--run", "run-a"})
	require.NoError(t, err)
	assert.Equal(t, sampleOutput, stdout)

	stdout, _, err = execute(t, []string{"--db", db, "history", "--run", "run-b"})
	require.NoError(t, err)
	assert.Equal(t, "id,json,is_valid\nx,\"[7]\",true\n", stdout)
}

func TestHistory_ReplayEmptyRun(t *testing.T) {
	db := recordRuns(t, []string{""}, "empty")

	stdout, _, err := execute(t, []string{"--db", db, "history", "--run", "empty"})
	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestHistory_ReplayUnknownRun(t *testing.T) {
	db := recordRuns(t, []string{sampleInput}, "run-a")

	_, _, err := execute(t, []string{"--db", db, "history", "--run", "nope"})
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "unknown run")
}

func TestHistory_FindRecord(t *testing.T) {
	db := recordRuns(t, []string{sampleInput, "id,json\n1,\"[1]\"\n"}, "run-a", "run-b")

	stdout, _, err := execute(t, []string{"--db", db, "history", "--record", "1"})
	require.NoError(t, err)
	assert.Contains(t, stdout, "RUN")
	assert.Contains(t, stdout, `1,"[4, 1, 2, 7, 5, 3, 8, 9, 6]",true`)
	assert.Contains(t, stdout, `1,"[1]",true`)
	assert.Less(t, strings.Index(stdout, "run-a"), strings.Index(stdout, "run-b"))
}

func TestHistory_FindRecordJSON(t *testing.T) {
	db := recordRuns(t, []string{sampleInput}, "run-a")

	stdout, _, err := execute(t, []string{"--db", db, "--format", "json", "history", "--record", "9"})
	require.NoError(t, err)

	var resp struct {
		Status string `json:"status"`
		Data   []struct {
			RunID string `json:"run_id"`
			Seq   int64  `json:"seq"`
			ID    string `json:"id"`
			JSON  string `json:"json"`
			Valid bool   `json:"is_valid"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "run-a", resp.Data[0].RunID)
	assert.Equal(t, int64(4), resp.Data[0].Seq)
	assert.Equal(t, "9", resp.Data[0].ID)
	assert.Equal(t, "[]", resp.Data[0].JSON)
	assert.False(t, resp.Data[0].Valid)
}

func TestHistory_FindRecordMissing(t *testing.T) {
	db := recordRuns(t, []string{sampleInput}, "run-a")

	stdout, _, err := execute(t, []string{"--db", db, "history", "--record", "nope"})
	require.NoError(t, err)
	assert.Equal(t, "No records with id \"nope\".\n", stdout)
}

func TestHistory_RunAndRecordExclusive(t *testing.T) {
	db := recordRuns(t, []string{sampleInput}, "run-a")

	_, _, err := execute(t, []string{"--db", db, "history", "--run", "run-a", "--record", "1"})
	require.Error(t, err)
}
