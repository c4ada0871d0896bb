package transcript

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// bashSummaryLimit caps the command text shown for a Bash invocation.
const bashSummaryLimit = 100

// toolSummarizers maps a tool name to the formatter for its input. The
// table is the contract: a name either has an entry here or falls back to
// the bare bracketed label.
var toolSummarizers = map[string]func(input json.RawMessage) string{
	"Bash":     summarizeBash,
	"Read":     summarizeFilePath("Read"),
	"Write":    summarizeFilePath("Write"),
	"Edit":     summarizeFilePath("Edit"),
	"Grep":     summarizeGrep,
	"Glob":     summarizeGlob,
	"WebFetch": summarizeWebFetch,
}

// SummarizeToolUse renders a one-line label for a tool invocation, used
// as the display text of a tool_use message. The structured input still
// travels on the Message for richer rendering downstream.
func SummarizeToolUse(toolName string, input json.RawMessage) string {
	if f, ok := toolSummarizers[toolName]; ok {
		return f(input)
	}
	return "[" + toolName + "]"
}

func summarizeBash(input json.RawMessage) string {
	if desc := gjson.GetBytes(input, "description").String(); desc != "" {
		return "[Bash] " + desc
	}
	cmd := gjson.GetBytes(input, "command").String()
	return "[Bash] " + truncate(cmd, bashSummaryLimit)
}

func summarizeFilePath(toolName string) func(input json.RawMessage) string {
	return func(input json.RawMessage) string {
		return "[" + toolName + "] " + gjson.GetBytes(input, "file_path").String()
	}
}

func summarizeGrep(input json.RawMessage) string {
	pattern := gjson.GetBytes(input, "pattern").String()
	path := gjson.GetBytes(input, "path").String()
	if path == "" {
		path = "."
	}
	return "[Grep] " + pattern + " in " + path
}

func summarizeGlob(input json.RawMessage) string {
	return "[Glob] " + gjson.GetBytes(input, "pattern").String()
}

func summarizeWebFetch(input json.RawMessage) string {
	return "[WebFetch] " + gjson.GetBytes(input, "url").String()
}
