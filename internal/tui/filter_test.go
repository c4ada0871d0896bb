package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccview/ccview/internal/transcript"
)

func TestTimeFilterCycle(t *testing.T) {
	f := timeAll
	assert.Equal(t, timeDay, f.next())
	assert.Equal(t, timeWeek, f.next().next())
	assert.Equal(t, timeMonth, f.next().next().next())
	assert.Equal(t, timeAll, f.next().next().next().next())
}

func TestTimeFilterMatches(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	recent := now.Add(-2 * time.Hour)
	lastWeek := now.Add(-5 * 24 * time.Hour)
	lastMonth := now.Add(-20 * 24 * time.Hour)
	ancient := now.Add(-90 * 24 * time.Hour)

	assert.True(t, timeDay.matches(recent, now))
	assert.False(t, timeDay.matches(lastWeek, now))

	assert.True(t, timeWeek.matches(lastWeek, now))
	assert.False(t, timeWeek.matches(lastMonth, now))

	assert.True(t, timeMonth.matches(lastMonth, now))
	assert.False(t, timeMonth.matches(ancient, now))

	assert.True(t, timeAll.matches(ancient, now))
}

func TestTimeFilterZeroTimestamp(t *testing.T) {
	now := time.Now()
	assert.True(t, timeAll.matches(time.Time{}, now))
	assert.False(t, timeDay.matches(time.Time{}, now))
	assert.False(t, timeMonth.matches(time.Time{}, now))
}

func TestFilterSessionsByWindow(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	sessions := []transcript.SessionInfo{
		{SessionID: "recent", Timestamp: now.Add(-time.Hour)},
		{SessionID: "old", Timestamp: now.Add(-40 * 24 * time.Hour)},
		{SessionID: "undated"},
	}

	got := filterSessions(sessions, timeDay, "", now)
	require.Len(t, got, 1)
	assert.Equal(t, "recent", got[0].SessionID)

	got = filterSessions(sessions, timeAll, "", now)
	assert.Len(t, got, 3)
}

func TestFilterSessionsByQuery(t *testing.T) {
	sessions := []transcript.SessionInfo{
		{SessionID: "a", Preview: "fix database migration"},
		{SessionID: "b", Preview: "update readme", Summary: "Docs pass"},
		{SessionID: "c", Preview: "x", GitBranch: "feature/database"},
	}

	got := filterSessions(sessions, timeAll, "database", time.Now())
	ids := make([]string, 0, len(got))
	for _, s := range got {
		ids = append(ids, s.SessionID)
	}
	assert.ElementsMatch(t, []string{"a", "c"}, ids)
}

func TestFilterProjects(t *testing.T) {
	projects := []transcript.ProjectInfo{
		{DirName: "-a", OriginalPath: "/home/u/src/api-server"},
		{DirName: "-b", OriginalPath: "/home/u/src/frontend"},
	}

	got := filterProjects(projects, "api")
	require.Len(t, got, 1)
	assert.Equal(t, "-a", got[0].DirName)

	assert.Len(t, filterProjects(projects, ""), 2)
}

func TestClampCursor(t *testing.T) {
	assert.Equal(t, 0, clampCursor(-1, 5))
	assert.Equal(t, 4, clampCursor(9, 5))
	assert.Equal(t, 2, clampCursor(2, 5))
	assert.Equal(t, 0, clampCursor(3, 0))
}

func TestEnsureVisible(t *testing.T) {
	// cursor above window scrolls up
	assert.Equal(t, 2, ensureVisible(2, 5, 10))
	// cursor below window scrolls down
	assert.Equal(t, 6, ensureVisible(15, 0, 10))
	// cursor inside window leaves offset alone
	assert.Equal(t, 3, ensureVisible(7, 3, 10))
}
