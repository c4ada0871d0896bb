package transcript

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	// previewLimit caps the session preview taken from the first user
	// message.
	previewLimit = 200

	initialScanBufSize = 64 * 1024
	maxLineSize        = 10 * 1024 * 1024 // transcripts carry multi-MB lines
)

// record is one parsed transcript line. Content stays raw because its
// shape is polymorphic (plain string or block list).
type record struct {
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
	GitBranch string `json:"gitBranch"`
	Subtype   string `json:"subtype"`
	Message   struct {
		Content json.RawMessage `json:"content"`
	} `json:"message"`
}

func newLineScanner(r io.Reader) *bufio.Scanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, initialScanBufSize), maxLineSize)
	return s
}

// ListSessions returns the sessions of one project, newest first; sessions
// without a timestamp sort after all dated ones. A sessions-index.json
// that parses to at least one entry is authoritative and is never merged
// with scan results; otherwise every transcript file is scanned. A
// missing project directory yields an empty list.
func ListSessions(root, projectName string) ([]SessionInfo, error) {
	projectDir := filepath.Join(root, projectName)
	if _, err := os.Stat(projectDir); err != nil {
		return nil, nil
	}

	sessions := sessionsFromIndex(projectDir, projectName)
	if len(sessions) == 0 {
		sessions = sessionsFromFiles(projectDir, projectName)
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Timestamp.After(sessions[j].Timestamp)
	})
	return sessions, nil
}

func sessionsFromIndex(projectDir, projectName string) []SessionInfo {
	idx, err := ReadSessionsIndex(projectDir)
	if err != nil {
		return nil
	}
	sessions := make([]SessionInfo, 0, len(idx.Entries))
	for _, e := range idx.Entries {
		sessions = append(sessions, SessionInfo{
			SessionID:    e.SessionID,
			ProjectName:  projectName,
			Preview:      truncate(e.FirstPrompt, previewLimit),
			Timestamp:    ParseTimestamp(e.Created),
			MessageCount: e.MessageCount,
			GitBranch:    e.GitBranch,
			Summary:      e.Summary,
		})
	}
	return sessions
}

func sessionsFromFiles(projectDir, projectName string) []SessionInfo {
	entries, err := os.ReadDir(projectDir)
	if err != nil {
		return nil
	}
	var sessions []SessionInfo
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != TranscriptExt {
			continue
		}
		sessions = append(sessions, scanTranscript(filepath.Join(projectDir, e.Name()), projectName))
	}
	return sessions
}

// scanTranscript summarizes a transcript without materializing messages:
// the count covers raw user and assistant records, and preview, timestamp
// and branch come from the first user record. Unparseable lines are
// skipped; an unreadable file still contributes its sessionId.
func scanTranscript(path, projectName string) SessionInfo {
	info := SessionInfo{
		SessionID:   strings.TrimSuffix(filepath.Base(path), TranscriptExt),
		ProjectName: projectName,
	}

	f, err := os.Open(path)
	if err != nil {
		return info
	}
	defer f.Close()

	sawUser := false
	scanner := newLineScanner(f)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var rec record
		if err := json.Unmarshal(line, &rec); err != nil {
			continue
		}

		if rec.Type == "user" || rec.Type == "assistant" {
			info.MessageCount++
		}
		if rec.Type == "user" && !sawUser {
			sawUser = true
			info.Preview = truncate(ExtractText(rec.Message.Content), previewLimit)
			info.Timestamp = ParseTimestamp(rec.Timestamp)
			info.GitBranch = rec.GitBranch
		}
	}
	return info
}

// UserPrompt is one user-authored text with the raw timestamp string it
// was recorded under.
type UserPrompt struct {
	Text      string
	Timestamp string
}

// UserPrompts extracts every non-empty user prompt from a transcript, in
// order. Unreadable files and lines contribute nothing.
func UserPrompts(path string) []UserPrompt {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var prompts []UserPrompt
	scanner := newLineScanner(f)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var rec record
		if err := json.Unmarshal(line, &rec); err != nil {
			continue
		}
		if rec.Type != "user" {
			continue
		}
		text := ExtractText(rec.Message.Content)
		if text == "" {
			continue
		}
		prompts = append(prompts, UserPrompt{Text: text, Timestamp: rec.Timestamp})
	}
	return prompts
}
