package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/money-machine/internal/storage"
)

const (
	maxHistory = 100 // Max puzzles to load
	allEmails  = "All"
)

// HistoryKeyMap defines the key bindings for the puzzle history.
type HistoryKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Next key.Binding
	Prev key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Next, k.Prev},
		{k.Back, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next email"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev email"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel lists fetched puzzles, optionally narrowed to one email.
type HistoryModel struct {
	store    PuzzleStore
	emails   []string // allEmails followed by every email seen
	cursor   int
	entries  []storage.PuzzleEntry
	loadErr  error
	table    table.Model
	help     help.Model
	keys     HistoryKeyMap
	width    int
	height   int
	quitting bool
	back     bool
}

// NewHistoryModel creates a history view. store may be nil.
func NewHistoryModel(store PuzzleStore, width, height int) HistoryModel {
	h := help.New()
	h.Width = width

	m := HistoryModel{
		store:  store,
		emails: []string{allEmails},
		help:   h,
		keys:   DefaultHistoryKeyMap(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	m.collectEmails()
	return m
}

func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Title", Width: 24},
		{Title: "Lvl", Width: 4},
		{Title: "ID", Width: 12},
		{Title: "Email", Width: 26},
	}

	// Title takes whatever the fixed columns leave over.
	if spare := m.width - 4 - 12 - 4 - 12 - 26 - 10; spare > 10 {
		columns[1].Width = min(spare, 40)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-8)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads the puzzles for the selected email.
func (m *HistoryModel) load() {
	m.entries = nil
	m.loadErr = nil
	if m.store != nil {
		email := m.emails[m.cursor]
		if email == allEmails {
			email = ""
		}
		m.entries, m.loadErr = m.store.RecentPuzzles(email, maxHistory)
	}
	m.updateTableRows()
}

// collectEmails fills the email tabs from the unfiltered history.
func (m *HistoryModel) collectEmails() {
	seen := map[string]bool{}
	for _, e := range m.entries {
		if !seen[e.Email] {
			seen[e.Email] = true
			m.emails = append(m.emails, e.Email)
		}
	}
}

func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		rows[i] = table.Row{
			e.FetchedAt.Format("Jan 02 15:04"),
			e.Title,
			strconv.Itoa(e.Difficulty),
			e.ID,
			e.Email,
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.back = true
			return m, nil

		case key.Matches(msg, m.keys.Next):
			m.cursor = (m.cursor + 1) % len(m.emails)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Prev):
			m.cursor = (m.cursor + len(m.emails) - 1) % len(m.emails)
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history.
func (m HistoryModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("PUZZLE HISTORY - "+m.emails[m.cursor]), m.width))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(boxStyle.Render(m.renderTableContent()))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m HistoryModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return emptyStyle.Render("History is unavailable: no database.")
	case m.loadErr != nil:
		return emptyStyle.Render("Could not read the history.\n" + m.loadErr.Error())
	case len(m.entries) == 0:
		return emptyStyle.Render("No puzzles fetched yet.\nOpen the Puzzle Fetcher to get one!")
	}
	return m.table.View()
}

// Entries returns the puzzles currently listed.
func (m HistoryModel) Entries() []storage.PuzzleEntry {
	return m.entries
}

// IsGoingBack returns true if user wants to go back to menu.
func (m HistoryModel) IsGoingBack() bool {
	return m.back
}

// IsQuitting returns true if user wants to quit entirely.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}

// historyRunner exits the program when the user goes back.
type historyRunner struct {
	HistoryModel
}

func (r historyRunner) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := r.HistoryModel.Update(msg)
	r.HistoryModel = next.(HistoryModel)
	if r.IsGoingBack() {
		return r, tea.Quit
	}
	return r, cmd
}

// RunHistory runs the history screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunHistory(store PuzzleStore, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(historyRunner{NewHistoryModel(store, width, height)}, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	r, ok := final.(historyRunner)
	if !ok {
		return false, nil
	}
	return r.IsGoingBack(), nil
}
