package transcript

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTranscript(t *testing.T, jsonl string) []Message {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "proj", "sess"+TranscriptExt), jsonl)
	messages, err := LoadSession(root, "proj", "sess")
	require.NoError(t, err)
	return messages
}

func TestLoadSessionMissingFile(t *testing.T) {
	messages, err := LoadSession(t.TempDir(), "proj", "nope")
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestLoadSessionUserString(t *testing.T) {
	messages := loadTranscript(t,
		`{"type":"user","timestamp":"2024-01-15T10:30:00Z","message":{"content":"hello"}}`)
	require.Len(t, messages, 1)
	assert.Equal(t, RoleUser, messages[0].Role)
	assert.Equal(t, "hello", messages[0].Text)
	assert.Equal(t, "2024-01-15 10:30:00", messages[0].TimestampString())
}

func TestLoadSessionUserTextBlocks(t *testing.T) {
	messages := loadTranscript(t,
		`{"type":"user","message":{"content":[{"type":"text","text":"first"},{"type":"text","text":"second"}]}}`)
	require.Len(t, messages, 1)
	assert.Equal(t, RoleUser, messages[0].Role)
	assert.Equal(t, "first\nsecond", messages[0].Text)
}

func TestLoadSessionToolResultOnly(t *testing.T) {
	messages := loadTranscript(t,
		`{"type":"user","message":{"content":[{"type":"tool_result","content":"exit 0"}]}}`)
	require.Len(t, messages, 1)
	assert.Equal(t, RoleToolResult, messages[0].Role)
	assert.Equal(t, "exit 0", messages[0].Text)
}

// Text blocks sharing a list with a tool_result are dropped.
func TestLoadSessionToolResultSuppressesText(t *testing.T) {
	messages := loadTranscript(t,
		`{"type":"user","message":{"content":[{"type":"tool_result","content":"out"},{"type":"text","text":"ignored"}]}}`)
	require.Len(t, messages, 1)
	assert.Equal(t, RoleToolResult, messages[0].Role)
	assert.Equal(t, "out", messages[0].Text)
}

func TestLoadSessionToolResultNestedBlocks(t *testing.T) {
	messages := loadTranscript(t,
		`{"type":"user","message":{"content":[{"type":"tool_result","content":[{"type":"text","text":"inner"}]}]}}`)
	require.Len(t, messages, 1)
	assert.Equal(t, "inner", messages[0].Text)
}

func TestLoadSessionToolResultNonString(t *testing.T) {
	messages := loadTranscript(t,
		`{"type":"user","message":{"content":[{"type":"tool_result","content":{"ok":true}}]}}`)
	require.Len(t, messages, 1)
	assert.Equal(t, `{"ok":true}`, messages[0].Text)
}

func TestLoadSessionAssistantTextThenTools(t *testing.T) {
	messages := loadTranscript(t,
		`{"type":"assistant","message":{"content":[`+
			`{"type":"text","text":"Let me look"},`+
			`{"type":"tool_use","name":"Read","input":{"file_path":"/tmp/a"}},`+
			`{"type":"tool_use","name":"Bash","input":{"command":"ls"}}]}}`)
	require.Len(t, messages, 3)

	assert.Equal(t, RoleAssistant, messages[0].Role)
	assert.Equal(t, "Let me look", messages[0].Text)

	assert.Equal(t, RoleToolUse, messages[1].Role)
	assert.Equal(t, "Read", messages[1].ToolName)
	assert.Equal(t, "[Read] /tmp/a", messages[1].Text)

	assert.Equal(t, RoleToolUse, messages[2].Role)
	assert.Equal(t, "[Bash] ls", messages[2].Text)
}

func TestLoadSessionAssistantEmpty(t *testing.T) {
	messages := loadTranscript(t, `{"type":"assistant","message":{"content":[]}}`)
	assert.Empty(t, messages)
}

func TestLoadSessionSystem(t *testing.T) {
	messages := loadTranscript(t,
		`{"type":"system","message":{"content":"compacted conversation"}}`)
	require.Len(t, messages, 1)
	assert.Equal(t, RoleSystem, messages[0].Role)
	assert.Equal(t, "compacted conversation", messages[0].Text)
}

func TestLoadSessionSystemEmptyBodyUsesSubtype(t *testing.T) {
	messages := loadTranscript(t, `{"type":"system","subtype":"compact_boundary","message":{}}`)
	require.Len(t, messages, 1)
	assert.Equal(t, "[system: compact_boundary]", messages[0].Text)
}

func TestLoadSessionSystemEmptyBodyNoSubtype(t *testing.T) {
	messages := loadTranscript(t, `{"type":"system","message":{}}`)
	require.Len(t, messages, 1)
	assert.Equal(t, "[system]", messages[0].Text)
}

func TestLoadSessionUnknownTypesIgnored(t *testing.T) {
	messages := loadTranscript(t, `{"type":"file-history-snapshot","snapshot":{}}
{"type":"progress","message":{"content":"50%"}}
{"type":"summary","summary":"Topic"}`)
	assert.Empty(t, messages)
}

func TestLoadSessionSkipsMalformedLines(t *testing.T) {
	messages := loadTranscript(t, `{"type":"user","message":{"content":"before"}}
not json at all
{"type":"user","message":{"content":
{"type":"user","message":{"content":"after"}}`)
	require.Len(t, messages, 2)
	assert.Equal(t, "before", messages[0].Text)
	assert.Equal(t, "after", messages[1].Text)
}

func TestLoadSessionBlankLinesIgnored(t *testing.T) {
	messages := loadTranscript(t, `
{"type":"user","message":{"content":"only"}}

`)
	require.Len(t, messages, 1)
	assert.Equal(t, "only", messages[0].Text)
}

func TestLoadSessionOrderPreserved(t *testing.T) {
	messages := loadTranscript(t,
		`{"type":"user","message":{"content":"q"}}
{"type":"assistant","message":{"content":"a"}}
{"type":"user","message":{"content":[{"type":"tool_result","content":"r"}]}}
{"type":"assistant","message":{"content":"done"}}`)
	require.Len(t, messages, 4)
	assert.Equal(t,
		[]Role{RoleUser, RoleAssistant, RoleToolResult, RoleAssistant},
		[]Role{messages[0].Role, messages[1].Role, messages[2].Role, messages[3].Role})
}
