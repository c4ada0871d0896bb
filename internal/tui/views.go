package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/ccview/ccview/internal/search"
	"github.com/ccview/ccview/internal/transcript"
)

// View renders the full TUI.
func (m model) View() string {
	if m.quitting || !m.ready {
		return ""
	}

	switch m.screen {
	case screenSessions:
		return m.viewSessions()
	case screenDetail:
		return m.viewDetail()
	case screenSearch:
		return m.viewSearch()
	}
	return m.viewProjects()
}

func (m model) viewProjects() string {
	title := styleTitle.Render("Projects")

	var rows []string
	for i := m.projOffset; i < len(m.filteredProj) && len(rows) < m.listHeight(); i++ {
		p := m.filteredProj[i]
		line := fmt.Sprintf("%s %s",
			fitLeft(p.OriginalPath, m.width-10),
			styleListMeta.Render(fmt.Sprintf("(%d)", p.SessionCount)))
		rows = append(rows, m.markCursor(line, i == m.projCursor))
	}
	if len(m.filteredProj) == 0 {
		rows = append(rows, styleListMeta.Render("  No projects"))
	}

	return m.assemble(title, rows, m.projectsStatus())
}

func (m model) viewSessions() string {
	title := styleTitle.Render(fmt.Sprintf("Sessions - %s [%s]",
		m.project.OriginalPath, m.timeFilter.label()))

	var rows []string
	for i := m.sessOffset; i < len(m.filteredSess) && len(rows) < m.listHeight(); i++ {
		rows = append(rows, m.markCursor(m.sessionRow(m.filteredSess[i]), i == m.sessCursor))
	}
	if len(m.filteredSess) == 0 {
		rows = append(rows, styleListMeta.Render("  No sessions"))
	}

	return m.assemble(title, rows, m.sessionsStatus())
}

func (m model) sessionRow(s transcript.SessionInfo) string {
	date := s.TimestampString()
	if date == "" {
		date = strings.Repeat(" ", 19)
	}

	branch := s.GitBranch
	if branch != "" {
		branch = styleBranch.Render(fitLeft(branch, 16))
	} else {
		branch = strings.Repeat(" ", 16)
	}

	preview := s.Summary
	if preview == "" {
		preview = s.Preview
	}
	preview = strings.ReplaceAll(preview, "\n", " ")
	previewMax := m.width - 2 - 19 - 16 - 6
	if previewMax < 0 {
		previewMax = 0
	}

	return fmt.Sprintf("%s  %s  %s %s",
		styleListMeta.Render(date),
		branch,
		runewidth.Truncate(preview, previewMax, "..."),
		styleListMeta.Render(fmt.Sprintf("(%d)", s.MessageCount)))
}

func (m model) viewDetail() string {
	title := styleTitle.Render(fmt.Sprintf("Session %s", m.session.SessionID))
	status := m.barOr("j/k scroll | C-d/C-u page | y copy resume cmd | esc back")
	if m.loading != "" {
		status = styleStatusBar.Render(m.loading)
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, m.detail.View(), status)
}

func (m model) viewSearch() string {
	title := styleTitle.Render("Search")
	input := m.searchInput.View()

	var rows []string
	for i := m.searchOffset; i < len(m.searchResults) && len(rows) < m.searchHeight(); i++ {
		rows = append(rows, m.markCursor(m.searchRow(m.searchResults[i]), i == m.searchCursor))
	}
	if m.loading != "" {
		rows = append(rows, styleListMeta.Render("  "+m.loading))
	} else if len(m.searchResults) == 0 {
		rows = append(rows, styleListMeta.Render("  No matches"))
	}

	for len(rows) < m.searchHeight() {
		rows = append(rows, "")
	}

	status := m.barOr(fmt.Sprintf("%d results | C-j/C-k navigate | enter open | C-y copy | esc back",
		len(m.searchResults)))
	return lipgloss.JoinVertical(lipgloss.Left,
		title, input, strings.Join(rows, "\n"), status)
}

func (m model) searchRow(r search.Result) string {
	date := r.Session.CreatedAt
	if len(date) >= 10 {
		date = date[:10]
	} else {
		date = strings.Repeat(" ", 10)
	}

	project := fitLeft(r.Session.ProjectPath, 28)

	promptMax := m.width - 2 - 10 - 28 - 4
	if promptMax < 0 {
		promptMax = 0
	}
	prompt := highlightMatches(strings.ReplaceAll(r.BestPrompt, "\n", " "), r.MatchedIndexes, promptMax)

	return fmt.Sprintf("%s  %s  %s",
		styleListMeta.Render(date), styleListMeta.Render(project), prompt)
}

// highlightMatches renders the prompt truncated to maxWidth with matched
// rune positions emphasized.
func highlightMatches(s string, matched []int, maxWidth int) string {
	pos := make(map[int]bool, len(matched))
	for _, i := range matched {
		pos[i] = true
	}

	var b strings.Builder
	w := 0
	for i, r := range []rune(s) {
		rw := runewidth.RuneWidth(r)
		if w+rw > maxWidth {
			break
		}
		if pos[i] {
			b.WriteString(styleMatch.Render(string(r)))
		} else {
			b.WriteString(styleListNormal.Render(string(r)))
		}
		w += rw
	}
	return b.String()
}

// helpers

func (m model) markCursor(line string, selected bool) string {
	if selected {
		return styleListSelected.Render("> ") + line
	}
	return "  " + line
}

func (m model) assemble(title string, rows []string, status string) string {
	for len(rows) < m.listHeight() {
		rows = append(rows, "")
	}

	second := ""
	if m.filtering || m.filterInput.Value() != "" {
		second = m.filterInput.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title, second, strings.Join(rows, "\n"), status)
}

func (m model) projectsStatus() string {
	if m.loading != "" {
		return styleStatusBar.Render(m.loading)
	}
	return m.barOr(fmt.Sprintf("%d projects | j/k navigate | enter open | / filter | s search | q quit",
		len(m.filteredProj)))
}

func (m model) sessionsStatus() string {
	if m.loading != "" {
		return styleStatusBar.Render(m.loading)
	}
	return m.barOr(fmt.Sprintf("%d sessions | enter open | tab time filter | / filter | y copy | s search | esc back",
		len(m.filteredSess)))
}

// barOr shows the transient status note when set, the hint bar otherwise.
func (m model) barOr(hints string) string {
	if m.status != "" {
		return styleStatusNote.Render(m.status)
	}
	return styleStatusBar.Render(hints)
}

// fitLeft pads or truncates s to exactly width columns.
func fitLeft(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) > width {
		return runewidth.Truncate(s, width, "...")
	}
	return runewidth.FillRight(s, width)
}
