package index

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestBuildMissingRoot(t *testing.T) {
	db := openTestDB(t)

	stats, err := Build(db, filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Scanned)
}

func TestBuildSingleSession(t *testing.T) {
	db := openTestDB(t)
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "-home-u-proj", "sess-1.jsonl"),
		`{"type":"user","timestamp":"2024-01-15T10:30:00Z","message":{"content":"Fix the bug"}}
{"type":"assistant","message":{"content":"On it"}}
{"type":"user","timestamp":"2024-01-15T10:45:00Z","message":{"content":"Add a test"}}`)

	stats, err := Build(db, root)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Scanned)
	assert.Equal(t, 1, stats.Indexed)
	assert.Equal(t, 0, stats.Errors)

	sessions, err := db.SearchAll()
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "sess-1", sessions[0].SessionID)
	assert.Equal(t, "/home/u/proj", sessions[0].ProjectPath)
	assert.Equal(t, "2024-01-15T10:30:00Z", sessions[0].CreatedAt)
	assert.Equal(t, []string{"Fix the bug", "Add a test"}, sessions[0].Prompts)
}

func TestBuildIncrementalSkip(t *testing.T) {
	db := openTestDB(t)
	root := t.TempDir()
	path := filepath.Join(root, "proj", "s.jsonl")
	writeFile(t, path, `{"type":"user","message":{"content":"hello"}}`)

	stats, err := Build(db, root)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Indexed)

	stats, err = Build(db, root)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Indexed)
	assert.Equal(t, 1, stats.Skipped)
}

func TestBuildReindexesOnMtimeChange(t *testing.T) {
	db := openTestDB(t)
	root := t.TempDir()
	path := filepath.Join(root, "proj", "s.jsonl")
	writeFile(t, path, `{"type":"user","message":{"content":"hello"}}`)

	_, err := Build(db, root)
	require.NoError(t, err)

	writeFile(t, path, `{"type":"user","message":{"content":"hello"}}
{"type":"user","message":{"content":"more"}}`)
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, future, future))

	stats, err := Build(db, root)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Indexed)

	n, err := db.PromptCount()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestBuildUsesIndexMetadata(t *testing.T) {
	db := openTestDB(t)
	root := t.TempDir()
	dir := filepath.Join(root, "-opaque")
	writeFile(t, filepath.Join(dir, "sess-1.jsonl"),
		`{"type":"user","message":{"content":"hello"}}`)
	writeFile(t, filepath.Join(dir, "sessions-index.json"), `{
		"originalPath": "/real/path",
		"entries": [{
			"sessionId": "sess-1",
			"firstPrompt": "hello",
			"created": "2024-01-15T10:30:00Z",
			"messageCount": 7,
			"gitBranch": "main",
			"summary": "Bug hunt",
			"projectPath": "/real/path"
		}]
	}`)

	_, err := Build(db, root)
	require.NoError(t, err)

	sessions, err := db.SearchAll()
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "/real/path", sessions[0].ProjectPath)
	assert.Equal(t, "main", sessions[0].GitBranch)
	assert.Equal(t, "Bug hunt", sessions[0].Summary)
}

func TestBuildPrunesDeletedSessions(t *testing.T) {
	db := openTestDB(t)
	root := t.TempDir()
	path := filepath.Join(root, "proj", "gone.jsonl")
	writeFile(t, path, `{"type":"user","message":{"content":"hello"}}`)

	_, err := Build(db, root)
	require.NoError(t, err)

	require.NoError(t, os.Remove(path))

	stats, err := Build(db, root)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Pruned)

	n, err := db.SessionCount()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
