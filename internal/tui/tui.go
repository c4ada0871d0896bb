package tui

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ccview/ccview/internal/index"
	"github.com/ccview/ccview/internal/render"
	"github.com/ccview/ccview/internal/search"
	"github.com/ccview/ccview/internal/transcript"
)

const statusTTL = 2 * time.Second

type screen int

const (
	screenProjects screen = iota
	screenSessions
	screenDetail
	screenSearch
)

// message types

type projectsLoadedMsg struct {
	projects []transcript.ProjectInfo
	err      error
}

type sessionsLoadedMsg struct {
	project  string
	sessions []transcript.SessionInfo
	err      error
}

type messagesLoadedMsg struct {
	sessionID string
	content   string
	err       error
}

type searchLoadedMsg struct {
	sessions []index.SearchableSession
	err      error
}

type statusClearMsg struct{}

// model

type model struct {
	root   string
	dbPath string

	screen screen

	projects     []transcript.ProjectInfo
	filteredProj []transcript.ProjectInfo
	projCursor   int
	projOffset   int

	project      transcript.ProjectInfo
	sessions     []transcript.SessionInfo
	filteredSess []transcript.SessionInfo
	sessCursor   int
	sessOffset   int
	timeFilter   timeFilter

	session transcript.SessionInfo
	detail  viewport.Model

	filterInput textinput.Model
	filtering   bool

	searchInput   textinput.Model
	searchable    []index.SearchableSession
	searchResults []search.Result
	searchCursor  int
	searchOffset  int
	searchLoaded  bool
	prevScreen    screen

	width    int
	height   int
	ready    bool
	quitting bool
	status   string
	loading  string
}

func initialModel(root, dbPath string) model {
	fi := textinput.New()
	fi.Placeholder = "Filter..."
	fi.Prompt = "/ "
	fi.PromptStyle = styleInputPrompt
	fi.TextStyle = styleInput
	fi.CharLimit = 256

	si := textinput.New()
	si.Placeholder = "Search prompts across all projects..."
	si.Prompt = "> "
	si.PromptStyle = styleInputPrompt
	si.TextStyle = styleInput
	si.CharLimit = 256

	return model{
		root:        root,
		dbPath:      dbPath,
		filterInput: fi,
		searchInput: si,
		detail:      viewport.New(0, 0),
		loading:     "Loading projects...",
	}
}

// Run starts the TUI and blocks until it exits.
func Run(root, dbPath string) error {
	m := initialModel(root, dbPath)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, loadProjectsCmd(m.root))
}

// commands

func loadProjectsCmd(root string) tea.Cmd {
	return func() tea.Msg {
		projects, err := transcript.ListProjects(root)
		return projectsLoadedMsg{projects: projects, err: err}
	}
}

func loadSessionsCmd(root, project string) tea.Cmd {
	return func() tea.Msg {
		sessions, err := transcript.ListSessions(root, project)
		return sessionsLoadedMsg{project: project, sessions: sessions, err: err}
	}
}

func loadMessagesCmd(root, project, sessionID string, width int) tea.Cmd {
	return func() tea.Msg {
		messages, err := transcript.LoadSession(root, project, sessionID)
		if err != nil {
			return messagesLoadedMsg{sessionID: sessionID, err: err}
		}
		content := render.Conversation(messages, render.Options{Width: width})
		return messagesLoadedMsg{sessionID: sessionID, content: content}
	}
}

// loadSearchCmd builds the prompt index on demand and loads every session
// into memory for keystroke-time ranking.
func loadSearchCmd(root, dbPath string) tea.Cmd {
	return func() tea.Msg {
		db, err := index.OpenDB(dbPath)
		if err != nil {
			return searchLoadedMsg{err: err}
		}
		defer db.Close()

		if _, err := index.Build(db, root); err != nil {
			return searchLoadedMsg{err: err}
		}
		sessions, err := search.Load(db)
		return searchLoadedMsg{sessions: sessions, err: err}
	}
}

func clearStatusCmd() tea.Cmd {
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return statusClearMsg{}
	})
}

// Update handles messages.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.detail.Width = m.width
		m.detail.Height = m.listHeight()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case projectsLoadedMsg:
		m.loading = ""
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
			return m, clearStatusCmd()
		}
		m.projects = msg.projects
		m.filteredProj = filterProjects(m.projects, m.filterInput.Value())
		m.projCursor = clampCursor(m.projCursor, len(m.filteredProj))
		return m, nil

	case sessionsLoadedMsg:
		if msg.project != m.project.DirName {
			return m, nil // stale load
		}
		m.loading = ""
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
			return m, clearStatusCmd()
		}
		m.sessions = msg.sessions
		m.applySessionFilter()
		return m, nil

	case messagesLoadedMsg:
		if msg.sessionID != m.session.SessionID {
			return m, nil
		}
		m.loading = ""
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
			return m, clearStatusCmd()
		}
		m.detail.SetContent(msg.content)
		m.detail.GotoTop()
		return m, nil

	case searchLoadedMsg:
		m.loading = ""
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
			return m, clearStatusCmd()
		}
		m.searchable = msg.sessions
		m.searchLoaded = true
		m.searchResults = search.Rank(m.searchable, m.searchInput.Value())
		m.searchCursor = clampCursor(m.searchCursor, len(m.searchResults))
		return m, nil

	case statusClearMsg:
		m.status = ""
		return m, nil
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// filter input captures keystrokes until committed or cancelled
	if m.filtering {
		switch msg.String() {
		case "esc":
			m.filtering = false
			m.filterInput.SetValue("")
			m.filterInput.Blur()
		case "enter":
			m.filtering = false
			m.filterInput.Blur()
		default:
			var cmd tea.Cmd
			m.filterInput, cmd = m.filterInput.Update(msg)
			m.refilter()
			return m, cmd
		}
		m.refilter()
		return m, nil
	}

	if m.screen == screenSearch {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Back):
		return m.goBack()

	case key.Matches(msg, keys.Filter):
		if m.screen == screenProjects || m.screen == screenSessions {
			m.filtering = true
			m.filterInput.Focus()
			return m, textinput.Blink
		}

	case key.Matches(msg, keys.Search):
		return m.openSearch()
	}

	switch m.screen {
	case screenProjects:
		return m.handleProjectsKey(msg)
	case screenSessions:
		return m.handleSessionsKey(msg)
	case screenDetail:
		return m.handleDetailKey(msg)
	}
	return m, nil
}

func (m model) handleProjectsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.filteredProj)
	switch {
	case key.Matches(msg, keys.Up):
		m.projCursor = clampCursor(m.projCursor-1, n)
	case key.Matches(msg, keys.Down):
		m.projCursor = clampCursor(m.projCursor+1, n)
	case key.Matches(msg, keys.HalfUp):
		m.projCursor = clampCursor(m.projCursor-m.listHeight()/2, n)
	case key.Matches(msg, keys.HalfDown):
		m.projCursor = clampCursor(m.projCursor+m.listHeight()/2, n)
	case key.Matches(msg, keys.Top):
		m.projCursor = 0
	case key.Matches(msg, keys.Bottom):
		m.projCursor = clampCursor(n-1, n)
	case key.Matches(msg, keys.Enter):
		if m.projCursor < n {
			m.project = m.filteredProj[m.projCursor]
			m.screen = screenSessions
			m.sessions = nil
			m.filteredSess = nil
			m.sessCursor = 0
			m.sessOffset = 0
			m.filterInput.SetValue("")
			m.loading = "Loading sessions..."
			return m, loadSessionsCmd(m.root, m.project.DirName)
		}
	}
	m.projOffset = ensureVisible(m.projCursor, m.projOffset, m.listHeight())
	return m, nil
}

func (m model) handleSessionsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.filteredSess)
	switch {
	case key.Matches(msg, keys.Up):
		m.sessCursor = clampCursor(m.sessCursor-1, n)
	case key.Matches(msg, keys.Down):
		m.sessCursor = clampCursor(m.sessCursor+1, n)
	case key.Matches(msg, keys.HalfUp):
		m.sessCursor = clampCursor(m.sessCursor-m.listHeight()/2, n)
	case key.Matches(msg, keys.HalfDown):
		m.sessCursor = clampCursor(m.sessCursor+m.listHeight()/2, n)
	case key.Matches(msg, keys.Top):
		m.sessCursor = 0
	case key.Matches(msg, keys.Bottom):
		m.sessCursor = clampCursor(n-1, n)
	case key.Matches(msg, keys.TimeTab):
		m.timeFilter = m.timeFilter.next()
		m.applySessionFilter()
	case key.Matches(msg, keys.Yank):
		if m.sessCursor < n {
			return m.yankResume(m.filteredSess[m.sessCursor].SessionID)
		}
	case key.Matches(msg, keys.Enter):
		if m.sessCursor < n {
			return m.openDetail(m.filteredSess[m.sessCursor], screenSessions)
		}
	}
	m.sessOffset = ensureVisible(m.sessCursor, m.sessOffset, m.listHeight())
	return m, nil
}

func (m model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		m.detail.LineUp(1)
	case key.Matches(msg, keys.Down):
		m.detail.LineDown(1)
	case key.Matches(msg, keys.HalfUp):
		m.detail.LineUp(m.listHeight() / 2)
	case key.Matches(msg, keys.HalfDown):
		m.detail.LineDown(m.listHeight() / 2)
	case key.Matches(msg, keys.Top):
		m.detail.GotoTop()
	case key.Matches(msg, keys.Bottom):
		m.detail.GotoBottom()
	case key.Matches(msg, keys.Yank):
		return m.yankResume(m.session.SessionID)
	}
	return m, nil
}

func (m model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.searchResults)
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		m.screen = m.prevScreen
		m.searchInput.Blur()
		return m, nil
	case "up", "ctrl+k":
		m.searchCursor = clampCursor(m.searchCursor-1, n)
		m.searchOffset = ensureVisible(m.searchCursor, m.searchOffset, m.searchHeight())
		return m, nil
	case "down", "ctrl+j":
		m.searchCursor = clampCursor(m.searchCursor+1, n)
		m.searchOffset = ensureVisible(m.searchCursor, m.searchOffset, m.searchHeight())
		return m, nil
	case "ctrl+y":
		if m.searchCursor < n {
			return m.yankResume(m.searchResults[m.searchCursor].Session.SessionID)
		}
		return m, nil
	case "enter":
		if m.searchCursor < n {
			r := m.searchResults[m.searchCursor]
			info := transcript.SessionInfo{
				SessionID:   r.Session.SessionID,
				ProjectName: r.Session.DirName,
				Preview:     r.BestPrompt,
				Summary:     r.Session.Summary,
				GitBranch:   r.Session.GitBranch,
			}
			m.searchInput.Blur()
			return m.openDetail(info, screenSearch)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchLoaded {
		m.searchResults = search.Rank(m.searchable, m.searchInput.Value())
		m.searchCursor = 0
		m.searchOffset = 0
	}
	return m, cmd
}

// transitions

func (m model) openSearch() (tea.Model, tea.Cmd) {
	m.prevScreen = m.screen
	m.screen = screenSearch
	m.searchInput.Focus()
	if m.searchLoaded {
		m.searchResults = search.Rank(m.searchable, m.searchInput.Value())
		return m, textinput.Blink
	}
	m.loading = "Indexing sessions..."
	return m, tea.Batch(textinput.Blink, loadSearchCmd(m.root, m.dbPath))
}

func (m model) openDetail(s transcript.SessionInfo, from screen) (tea.Model, tea.Cmd) {
	m.prevScreen = from
	m.session = s
	m.screen = screenDetail
	m.detail.SetContent("")
	m.detail.Width = m.width
	m.detail.Height = m.listHeight()
	m.loading = "Loading session..."
	return m, loadMessagesCmd(m.root, s.ProjectName, s.SessionID, m.detailWidth())
}

func (m model) goBack() (tea.Model, tea.Cmd) {
	switch m.screen {
	case screenSessions:
		m.screen = screenProjects
	case screenDetail:
		m.screen = m.prevScreen
		if m.screen == screenSearch {
			m.searchInput.Focus()
			return m, textinput.Blink
		}
	case screenProjects:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *model) refilter() {
	switch m.screen {
	case screenProjects:
		m.filteredProj = filterProjects(m.projects, m.filterInput.Value())
		m.projCursor = clampCursor(m.projCursor, len(m.filteredProj))
		m.projOffset = ensureVisible(m.projCursor, m.projOffset, m.listHeight())
	case screenSessions:
		m.applySessionFilter()
	}
}

func (m *model) applySessionFilter() {
	m.filteredSess = filterSessions(m.sessions, m.timeFilter, m.filterInput.Value(), time.Now())
	m.sessCursor = clampCursor(m.sessCursor, len(m.filteredSess))
	m.sessOffset = ensureVisible(m.sessCursor, m.sessOffset, m.listHeight())
}

func (m model) yankResume(sessionID string) (tea.Model, tea.Cmd) {
	cmd := "claude --resume " + sessionID
	if err := clipboard.WriteAll(cmd); err != nil {
		m.status = cmd
	} else {
		m.status = "Copied: " + cmd
	}
	return m, clearStatusCmd()
}

// layout

func (m model) listHeight() int {
	// title row, filter/input row, status bar
	h := m.height - 3
	if h < 1 {
		h = 1
	}
	return h
}

func (m model) searchHeight() int {
	return m.listHeight()
}

func (m model) detailWidth() int {
	w := m.width - 2
	if w < 20 {
		w = 20
	}
	return w
}
