package transcript

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const (
	// TranscriptExt is the extension of session log files.
	TranscriptExt = ".jsonl"
	// IndexFileName is the optional per-project session metadata cache.
	IndexFileName = "sessions-index.json"
)

// DefaultRoot returns the standard projects root under the user's home
// directory, or "" when the home directory cannot be determined.
func DefaultRoot() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".claude", "projects")
}

// SessionsIndex mirrors sessions-index.json.
type SessionsIndex struct {
	OriginalPath string       `json:"originalPath"`
	Entries      []IndexEntry `json:"entries"`
}

// IndexEntry is one session's cached metadata within a SessionsIndex.
type IndexEntry struct {
	SessionID    string `json:"sessionId"`
	FirstPrompt  string `json:"firstPrompt"`
	Created      string `json:"created"`
	Modified     string `json:"modified"`
	MessageCount int    `json:"messageCount"`
	GitBranch    string `json:"gitBranch"`
	Summary      string `json:"summary"`
	ProjectPath  string `json:"projectPath"`
}

// ReadSessionsIndex loads a project's sessions-index.json. Callers treat
// any error as "no index": the file is an optional cache and a corrupt
// one must behave exactly like a missing one.
func ReadSessionsIndex(projectDir string) (*SessionsIndex, error) {
	data, err := os.ReadFile(filepath.Join(projectDir, IndexFileName))
	if err != nil {
		return nil, err
	}
	var idx SessionsIndex
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, err
	}
	return &idx, nil
}

// originalPathFromIndex returns the authoritative project path recorded
// in the index file: the top-level originalPath when set, else the first
// entry's projectPath. "" when the index is absent, malformed, or silent.
func originalPathFromIndex(projectDir string) string {
	idx, err := ReadSessionsIndex(projectDir)
	if err != nil {
		return ""
	}
	if idx.OriginalPath != "" {
		return idx.OriginalPath
	}
	if len(idx.Entries) > 0 {
		return idx.Entries[0].ProjectPath
	}
	return ""
}

// ListProjects enumerates the project directories under root, sorted by
// directory name. A missing root yields an empty list, not an error.
func ListProjects(root string) ([]ProjectInfo, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	// os.ReadDir returns entries sorted by name.
	var projects []ProjectInfo
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dirName := e.Name()
		projectDir := filepath.Join(root, dirName)

		originalPath := originalPathFromIndex(projectDir)
		if originalPath == "" {
			originalPath = DecodeProjectPath(dirName)
		}

		projects = append(projects, ProjectInfo{
			DirName:      dirName,
			OriginalPath: originalPath,
			SessionCount: countTranscripts(projectDir),
		})
	}
	return projects, nil
}

// countTranscripts counts transcript files on disk. The index's own entry
// count is never trusted here: index and directory can drift apart.
func countTranscripts(projectDir string) int {
	entries, err := os.ReadDir(projectDir)
	if err != nil {
		return 0
	}
	n := 0
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == TranscriptExt {
			n++
		}
	}
	return n
}
