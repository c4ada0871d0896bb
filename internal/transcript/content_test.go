package transcript

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTextString(t *testing.T) {
	assert.Equal(t, "hello", ExtractText(json.RawMessage(`"hello"`)))
}

func TestExtractTextBlockListExcludesThinking(t *testing.T) {
	raw := json.RawMessage(`[
		{"type":"thinking","text":"x"},
		{"type":"text","text":"a"},
		{"type":"text","text":"b"}
	]`)
	assert.Equal(t, "a\nb", ExtractText(raw))
}

func TestExtractTextOtherShapes(t *testing.T) {
	assert.Equal(t, "", ExtractText(nil))
	assert.Equal(t, "", ExtractText(json.RawMessage(`null`)))
	assert.Equal(t, "", ExtractText(json.RawMessage(`42`)))
	assert.Equal(t, "", ExtractText(json.RawMessage(`{"type":"text","text":"a"}`)))
}

func TestExtractTextSkipsOddListElements(t *testing.T) {
	raw := json.RawMessage(`["stray", {"type":"text","text":"kept"}]`)
	assert.Equal(t, "kept", ExtractText(raw))
}

func TestExtractToolBlocksMixed(t *testing.T) {
	raw := json.RawMessage(`[
		{"type":"text","text":"hello"},
		{"type":"tool_use","name":"Bash","input":{"command":"ls"}},
		{"type":"tool_result","content":"ok"}
	]`)
	blocks := ExtractToolBlocks(raw)
	assert.Len(t, blocks, 2)
	assert.Equal(t, "tool_use", blocks[0].Type)
	assert.Equal(t, "Bash", blocks[0].Name)
	assert.Equal(t, "tool_result", blocks[1].Type)
}

func TestExtractToolBlocksNonList(t *testing.T) {
	assert.Empty(t, ExtractToolBlocks(json.RawMessage(`"hello"`)))
	assert.Empty(t, ExtractToolBlocks(nil))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", truncate("hello", 10))
	assert.Equal(t, "hello", truncate("hello", 5))
	assert.Equal(t, "hello...", truncate("hello world", 5))
	// limits are code points, not bytes
	assert.Equal(t, "こんに...", truncate("こんにちは世界", 3))
}
