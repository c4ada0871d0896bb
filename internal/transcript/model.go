// Package transcript reads Claude Code session logs from disk and turns
// them into display-ready values: projects, session lists and ordered
// message sequences. Everything here is a pure transformation over files
// already on disk; absence and malformed data are normal states, not
// errors.
package transcript

import (
	"encoding/json"
	"time"
)

// Role identifies how a Message is displayed.
type Role string

const (
	RoleUser       Role = "user"
	RoleAssistant  Role = "assistant"
	RoleSystem     Role = "system"
	RoleToolUse    Role = "tool_use"
	RoleToolResult Role = "tool_result"
)

// Label returns the short uppercase label used in transcript views.
func (r Role) Label() string {
	switch r {
	case RoleUser:
		return "USER"
	case RoleAssistant:
		return "ASSISTANT"
	case RoleSystem:
		return "SYSTEM"
	case RoleToolUse:
		return "TOOL"
	case RoleToolResult:
		return "RESULT"
	}
	return string(r)
}

// Message is one displayable unit of a session. ToolName and ToolInput
// are set only for RoleToolUse; a zero Timestamp means the source record
// carried no parseable timestamp.
type Message struct {
	Role      Role
	Text      string
	Timestamp time.Time
	ToolName  string
	ToolInput json.RawMessage
}

// TimestampString formats the timestamp for display, empty when absent.
func (m Message) TimestampString() string {
	return formatTimestamp(m.Timestamp)
}

// SessionInfo is one row of a project's session list.
type SessionInfo struct {
	SessionID    string
	ProjectName  string
	Preview      string
	Timestamp    time.Time
	MessageCount int
	GitBranch    string
	Summary      string
}

// TimestampString formats the timestamp for display, empty when absent.
func (s SessionInfo) TimestampString() string {
	return formatTimestamp(s.Timestamp)
}

// ProjectInfo is one row of the top-level project list. DirName is the
// raw encoded directory name and the stable identifier; OriginalPath is
// display-only and not guaranteed to be a valid path.
type ProjectInfo struct {
	DirName      string
	OriginalPath string
	SessionCount int
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}
