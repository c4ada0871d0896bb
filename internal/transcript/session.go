package transcript

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// LoadSession reconstructs the ordered message sequence of one session,
// preserving transcript line order. A missing transcript file is an
// empty session, not an error.
func LoadSession(root, projectName, sessionID string) ([]Message, error) {
	path := filepath.Join(root, projectName, sessionID+TranscriptExt)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var messages []Message
	scanner := newLineScanner(f)
	for scanner.Scan() {
		messages = append(messages, parseLine(scanner.Bytes())...)
	}
	return messages, scanner.Err()
}

// parseLine turns one transcript line into zero or more Messages. Blank
// lines, unparseable lines and unknown record types (file-history
// snapshots, progress events) contribute nothing.
func parseLine(line []byte) []Message {
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return nil
	}
	var rec record
	if err := json.Unmarshal(line, &rec); err != nil {
		return nil
	}

	ts := ParseTimestamp(rec.Timestamp)
	switch rec.Type {
	case "user":
		return userMessages(rec.Message.Content, ts)
	case "assistant":
		return assistantMessages(rec.Message.Content, ts)
	case "system":
		return []Message{systemMessage(rec, ts)}
	}
	return nil
}

// userMessages handles the two personalities of a user record: genuine
// human input, and tool results fed back under the user role. When any
// tool_result block is present only the results are emitted; text blocks
// in the same list are dropped.
func userMessages(content json.RawMessage, ts time.Time) []Message {
	var msgs []Message
	for _, b := range ExtractToolBlocks(content) {
		if b.Type != "tool_result" {
			continue
		}
		msgs = append(msgs, Message{
			Role:      RoleToolResult,
			Text:      toolResultText(b.Content),
			Timestamp: ts,
		})
	}
	if len(msgs) > 0 {
		return msgs
	}

	if text := ExtractText(content); text != "" {
		return []Message{{Role: RoleUser, Text: text, Timestamp: ts}}
	}
	return nil
}

// toolResultText renders a tool_result payload: block lists flatten to
// their text, plain strings pass through, anything else keeps its JSON
// spelling.
func toolResultText(content json.RawMessage) string {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return ""
	}
	if trimmed[0] == '[' {
		return ExtractText(content)
	}
	var s string
	if err := json.Unmarshal(content, &s); err == nil {
		return s
	}
	return string(trimmed)
}

// assistantMessages emits the text portion first, then one tool_use
// message per tool invocation in document order. The two are independent:
// a record can produce either, both, or neither.
func assistantMessages(content json.RawMessage, ts time.Time) []Message {
	var msgs []Message
	if text := ExtractText(content); text != "" {
		msgs = append(msgs, Message{Role: RoleAssistant, Text: text, Timestamp: ts})
	}
	for _, b := range ExtractToolBlocks(content) {
		if b.Type != "tool_use" {
			continue
		}
		msgs = append(msgs, Message{
			Role:      RoleToolUse,
			Text:      SummarizeToolUse(b.Name, b.Input),
			Timestamp: ts,
			ToolName:  b.Name,
			ToolInput: b.Input,
		})
	}
	return msgs
}

// systemMessage always produces a message: an empty body is replaced by a
// bracketed subtype marker so system notices stay visible in the flow.
func systemMessage(rec record, ts time.Time) Message {
	text := ExtractText(rec.Message.Content)
	if text == "" {
		if rec.Subtype != "" {
			text = "[system: " + rec.Subtype + "]"
		} else {
			text = "[system]"
		}
	}
	return Message{Role: RoleSystem, Text: text, Timestamp: ts}
}
