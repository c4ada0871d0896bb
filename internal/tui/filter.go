package tui

import (
	"time"

	"github.com/sahilm/fuzzy"

	"github.com/ccview/ccview/internal/transcript"
)

// timeFilter narrows the session list to a recency window. Sessions
// without a timestamp only pass the unrestricted filter.
type timeFilter int

const (
	timeAll timeFilter = iota
	timeDay
	timeWeek
	timeMonth
)

func (f timeFilter) label() string {
	switch f {
	case timeDay:
		return "24h"
	case timeWeek:
		return "7d"
	case timeMonth:
		return "30d"
	}
	return "all"
}

func (f timeFilter) next() timeFilter {
	switch f {
	case timeAll:
		return timeDay
	case timeDay:
		return timeWeek
	case timeWeek:
		return timeMonth
	}
	return timeAll
}

func (f timeFilter) window() time.Duration {
	switch f {
	case timeDay:
		return 24 * time.Hour
	case timeWeek:
		return 7 * 24 * time.Hour
	case timeMonth:
		return 30 * 24 * time.Hour
	}
	return 0
}

func (f timeFilter) matches(ts, now time.Time) bool {
	if f == timeAll {
		return true
	}
	if ts.IsZero() {
		return false
	}
	return now.Sub(ts) <= f.window()
}

// sessionSource adapts sessions for fuzzy matching over preview, summary
// and branch together.
type sessionSource []transcript.SessionInfo

func (s sessionSource) String(i int) string {
	return s[i].Preview + " " + s[i].Summary + " " + s[i].GitBranch
}

func (s sessionSource) Len() int { return len(s) }

// filterSessions applies the recency window, then fuzzy-filters by query.
// An empty query keeps the windowed list as is.
func filterSessions(sessions []transcript.SessionInfo, f timeFilter, query string, now time.Time) []transcript.SessionInfo {
	windowed := sessions
	if f != timeAll {
		windowed = nil
		for _, s := range sessions {
			if f.matches(s.Timestamp, now) {
				windowed = append(windowed, s)
			}
		}
	}
	if query == "" {
		return windowed
	}

	matches := fuzzy.FindFrom(query, sessionSource(windowed))
	filtered := make([]transcript.SessionInfo, 0, len(matches))
	for _, m := range matches {
		filtered = append(filtered, windowed[m.Index])
	}
	return filtered
}

// projectSource adapts projects for fuzzy matching on the decoded path.
type projectSource []transcript.ProjectInfo

func (p projectSource) String(i int) string { return p[i].OriginalPath }

func (p projectSource) Len() int { return len(p) }

func filterProjects(projects []transcript.ProjectInfo, query string) []transcript.ProjectInfo {
	if query == "" {
		return projects
	}
	matches := fuzzy.FindFrom(query, projectSource(projects))
	filtered := make([]transcript.ProjectInfo, 0, len(matches))
	for _, m := range matches {
		filtered = append(filtered, projects[m.Index])
	}
	return filtered
}

// clampCursor keeps cursor and offset valid after the underlying list
// shrinks or the window resizes.
func clampCursor(cursor, length int) int {
	if cursor >= length {
		cursor = length - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}

// ensureVisible scrolls offset so cursor stays within a window of visible
// rows.
func ensureVisible(cursor, offset, visible int) int {
	if visible < 1 {
		visible = 1
	}
	if cursor < offset {
		return cursor
	}
	if cursor >= offset+visible {
		return cursor - visible + 1
	}
	return offset
}
