package index

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ccview/ccview/internal/transcript"
)

type Stats struct {
	Scanned int
	Indexed int
	Skipped int
	Pruned  int
	Errors  int
}

func (s Stats) String() string {
	return fmt.Sprintf("scanned=%d indexed=%d skipped=%d pruned=%d errors=%d",
		s.Scanned, s.Indexed, s.Skipped, s.Pruned, s.Errors)
}

// Build walks every project directory under root and brings the prompt
// index up to date. Transcripts whose mtime matches the stored value are
// skipped. Sessions whose files have disappeared are pruned. A missing
// root is a no-op.
func Build(db *DB, root string) (Stats, error) {
	var stats Stats

	dirs, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return stats, nil
		}
		return stats, fmt.Errorf("read projects root: %w", err)
	}

	seen := make(map[string]struct{})
	for _, dir := range dirs {
		if !dir.IsDir() {
			continue
		}
		indexProject(db, filepath.Join(root, dir.Name()), dir.Name(), seen, &stats)
	}

	pruned, err := pruneSessions(db, seen)
	if err != nil {
		return stats, fmt.Errorf("prune: %w", err)
	}
	stats.Pruned = pruned

	return stats, nil
}

func indexProject(db *DB, projectDir, dirName string, seen map[string]struct{}, stats *Stats) {
	entries, err := os.ReadDir(projectDir)
	if err != nil {
		stats.Errors++
		fmt.Fprintf(os.Stderr, "  WARN: read %s: %v\n", projectDir, err)
		return
	}

	meta := indexMetadata(projectDir)

	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != transcript.TranscriptExt {
			continue
		}
		stats.Scanned++

		sessionID := strings.TrimSuffix(e.Name(), transcript.TranscriptExt)
		seen[sessionID] = struct{}{}

		fi, err := e.Info()
		if err != nil {
			stats.Errors++
			continue
		}
		mtime := fi.ModTime().UnixMilli()

		stored, known, err := db.FileMtime(sessionID)
		if err != nil {
			stats.Errors++
			continue
		}
		if known && stored == mtime {
			stats.Skipped++
			continue
		}

		path := filepath.Join(projectDir, e.Name())
		if err := indexSession(db, path, sessionID, dirName, mtime, meta[sessionID]); err != nil {
			stats.Errors++
			fmt.Fprintf(os.Stderr, "  WARN: index %s: %v\n", path, err)
			continue
		}
		stats.Indexed++
	}
}

// indexMetadata maps sessionId to its sessions-index.json entry, when the
// project carries one.
func indexMetadata(projectDir string) map[string]transcript.IndexEntry {
	idx, err := transcript.ReadSessionsIndex(projectDir)
	if err != nil {
		return nil
	}
	meta := make(map[string]transcript.IndexEntry, len(idx.Entries))
	for _, e := range idx.Entries {
		meta[e.SessionID] = e
	}
	return meta
}

func indexSession(db *DB, path, sessionID, dirName string, mtime int64, meta transcript.IndexEntry) error {
	userPrompts := transcript.UserPrompts(path)
	prompts := make([]PromptRecord, 0, len(userPrompts))
	for _, p := range userPrompts {
		prompts = append(prompts, PromptRecord{Prompt: p.Text, Timestamp: p.Timestamp})
	}

	rec := SessionRecord{
		SessionID:    sessionID,
		ProjectPath:  meta.ProjectPath,
		DirName:      dirName,
		GitBranch:    meta.GitBranch,
		Summary:      meta.Summary,
		FirstPrompt:  meta.FirstPrompt,
		MessageCount: meta.MessageCount,
		CreatedAt:    meta.Created,
		ModifiedAt:   meta.Modified,
		FileMtime:    mtime,
	}
	if rec.ProjectPath == "" {
		rec.ProjectPath = transcript.DecodeProjectPath(dirName)
	}
	if rec.FirstPrompt == "" && len(prompts) > 0 {
		rec.FirstPrompt = prompts[0].Prompt
	}
	if rec.CreatedAt == "" && len(prompts) > 0 {
		rec.CreatedAt = prompts[0].Timestamp
	}
	if rec.MessageCount == 0 {
		rec.MessageCount = len(prompts)
	}

	if err := db.UpsertSession(rec); err != nil {
		return err
	}
	return db.ReplacePrompts(sessionID, prompts)
}

func pruneSessions(db *DB, seen map[string]struct{}) (int, error) {
	all, err := db.AllSessionIDs()
	if err != nil {
		return 0, err
	}

	pruned := 0
	for id := range all {
		if _, ok := seen[id]; !ok {
			if err := db.DeleteSession(id); err != nil {
				return pruned, err
			}
			pruned++
		}
	}
	return pruned, nil
}
