package index

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA cache_size = -64000;
PRAGMA busy_timeout = 5000;

CREATE TABLE IF NOT EXISTS sessions (
    session_id    TEXT PRIMARY KEY,
    project_path  TEXT NOT NULL DEFAULT '',
    dir_name      TEXT NOT NULL DEFAULT '',
    git_branch    TEXT NOT NULL DEFAULT '',
    summary       TEXT NOT NULL DEFAULT '',
    first_prompt  TEXT NOT NULL DEFAULT '',
    message_count INTEGER NOT NULL DEFAULT 0,
    created_at    TEXT NOT NULL DEFAULT '',
    modified_at   TEXT NOT NULL DEFAULT '',
    file_mtime    INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS user_prompts (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id TEXT NOT NULL,
    prompt     TEXT NOT NULL,
    timestamp  TEXT NOT NULL DEFAULT '',
    UNIQUE(session_id, prompt, timestamp)
);

CREATE INDEX IF NOT EXISTS idx_prompts_session ON user_prompts(session_id);
`

type DB struct {
	db *sql.DB
}

func OpenDB(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &DB{db: db}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

// SessionRecord is one indexed session row.
type SessionRecord struct {
	SessionID    string
	ProjectPath  string
	DirName      string
	GitBranch    string
	Summary      string
	FirstPrompt  string
	MessageCount int
	CreatedAt    string
	ModifiedAt   string
	FileMtime    int64
}

// PromptRecord is one user prompt with the raw timestamp string it was
// recorded under.
type PromptRecord struct {
	Prompt    string
	Timestamp string
}

func (d *DB) UpsertSession(s SessionRecord) error {
	_, err := d.db.Exec(
		`INSERT INTO sessions (session_id, project_path, dir_name, git_branch, summary,
		                       first_prompt, message_count, created_at, modified_at, file_mtime)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(session_id) DO UPDATE SET
		     project_path  = excluded.project_path,
		     dir_name      = excluded.dir_name,
		     git_branch    = excluded.git_branch,
		     summary       = excluded.summary,
		     first_prompt  = excluded.first_prompt,
		     message_count = excluded.message_count,
		     created_at    = excluded.created_at,
		     modified_at   = excluded.modified_at,
		     file_mtime    = excluded.file_mtime`,
		s.SessionID, s.ProjectPath, s.DirName, s.GitBranch, s.Summary,
		s.FirstPrompt, s.MessageCount, s.CreatedAt, s.ModifiedAt, s.FileMtime,
	)
	return err
}

// ReplacePrompts rewrites the prompt set of one session.
func (d *DB) ReplacePrompts(sessionID string, prompts []PromptRecord) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM user_prompts WHERE session_id = ?", sessionID); err != nil {
		return err
	}

	stmt, err := tx.Prepare(
		"INSERT OR IGNORE INTO user_prompts (session_id, prompt, timestamp) VALUES (?, ?, ?)",
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range prompts {
		if _, err := stmt.Exec(sessionID, p.Prompt, p.Timestamp); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// FileMtime reports the stored transcript mtime (unix millis) for a
// session, and whether the session is known at all.
func (d *DB) FileMtime(sessionID string) (int64, bool, error) {
	var mtime int64
	err := d.db.QueryRow(
		"SELECT file_mtime FROM sessions WHERE session_id = ?", sessionID,
	).Scan(&mtime)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return mtime, true, nil
}

func (d *DB) AllSessionIDs() (map[string]struct{}, error) {
	rows, err := d.db.Query("SELECT session_id FROM sessions")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = struct{}{}
	}
	return ids, rows.Err()
}

func (d *DB) DeleteSession(sessionID string) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM user_prompts WHERE session_id = ?", sessionID); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM sessions WHERE session_id = ?", sessionID); err != nil {
		return err
	}
	return tx.Commit()
}

func (d *DB) SessionCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&n)
	return n, err
}

func (d *DB) PromptCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM user_prompts").Scan(&n)
	return n, err
}

// SearchableSession is one session with its prompts materialized, ready
// for in-memory fuzzy matching.
type SearchableSession struct {
	SessionID   string
	ProjectPath string
	DirName     string
	GitBranch   string
	Summary     string
	CreatedAt   string
	Prompts     []string
}

// SearchAll loads every indexed session with its prompts, newest first.
func (d *DB) SearchAll() ([]SearchableSession, error) {
	rows, err := d.db.Query(
		`SELECT session_id, project_path, dir_name, git_branch, summary, created_at
		 FROM sessions ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []SearchableSession
	byID := make(map[string]int)
	for rows.Next() {
		var s SearchableSession
		if err := rows.Scan(&s.SessionID, &s.ProjectPath, &s.DirName, &s.GitBranch, &s.Summary, &s.CreatedAt); err != nil {
			return nil, err
		}
		byID[s.SessionID] = len(sessions)
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	prows, err := d.db.Query(
		"SELECT session_id, prompt FROM user_prompts ORDER BY id",
	)
	if err != nil {
		return nil, err
	}
	defer prows.Close()

	for prows.Next() {
		var id, prompt string
		if err := prows.Scan(&id, &prompt); err != nil {
			return nil, err
		}
		if i, ok := byID[id]; ok {
			sessions[i].Prompts = append(sessions[i].Prompts, prompt)
		}
	}
	return sessions, prows.Err()
}
