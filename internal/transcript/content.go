package transcript

import (
	"encoding/json"
	"strings"
)

// ContentBlock is one element of a structured message content list. Only
// the fields relevant to its Type carry data: Text for "text" blocks,
// Name/Input for "tool_use", Content for "tool_result".
type ContentBlock struct {
	Type    string          `json:"type"`
	Text    string          `json:"text"`
	Name    string          `json:"name"`
	Input   json.RawMessage `json:"input"`
	Content json.RawMessage `json:"content"`
}

// ExtractText flattens a message content value into display text. A plain
// JSON string is returned unchanged; a block list contributes the text of
// its "text" blocks joined by newlines, in document order. Thinking
// blocks are excluded unconditionally. Any other shape yields "".
func ExtractText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var parts []string
	for _, b := range decodeBlocks(raw) {
		if b.Type == "text" {
			parts = append(parts, b.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// ExtractToolBlocks returns the tool_use and tool_result blocks of a
// content list in document order, or nil when content is not a list.
func ExtractToolBlocks(raw json.RawMessage) []ContentBlock {
	var out []ContentBlock
	for _, b := range decodeBlocks(raw) {
		if b.Type == "tool_use" || b.Type == "tool_result" {
			out = append(out, b)
		}
	}
	return out
}

// decodeBlocks decodes a content list element by element so one odd
// entry does not discard its siblings.
func decodeBlocks(raw json.RawMessage) []ContentBlock {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil
	}
	blocks := make([]ContentBlock, 0, len(elems))
	for _, e := range elems {
		var b ContentBlock
		if err := json.Unmarshal(e, &b); err != nil {
			continue
		}
		blocks = append(blocks, b)
	}
	return blocks
}

// truncate limits s to max code points, marking the cut with an ellipsis.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
