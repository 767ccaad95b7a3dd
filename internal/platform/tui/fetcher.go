package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/money-machine/internal/config"
	"github.com/vovakirdan/money-machine/internal/puzzle"
	"github.com/vovakirdan/money-machine/internal/storage"
)

// PuzzleStore records fetched puzzles and lists them back.
type PuzzleStore interface {
	SavePuzzle(p puzzle.Puzzle) (int64, error)
	RecentPuzzles(email string, limit int) ([]storage.PuzzleEntry, error)
}

// StoreOf adapts an optional store, keeping a nil *storage.Store from
// becoming a non-nil interface.
func StoreOf(s *storage.Store) PuzzleStore {
	if s == nil {
		return nil
	}
	return s
}

type formField int

const (
	fieldEmail formField = iota
	fieldDifficulty
	fieldFetch
	fieldCount
)

// fetchResultMsg carries the outcome of one fetch request.
type fetchResultMsg struct {
	puzzle puzzle.Puzzle
	err    error
}

var (
	formLabelStyle   = lipgloss.NewStyle().Bold(true)
	formFocusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	formErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	formOKStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	formMutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	formButtonStyle  = lipgloss.NewStyle().Padding(0, 2).Background(lipgloss.Color("4")).Foreground(lipgloss.Color("15"))
	formButtonActive = formButtonStyle.Background(lipgloss.Color("12")).Bold(true)
	formButtonOff    = lipgloss.NewStyle().Padding(0, 2).Background(lipgloss.Color("238")).Foreground(lipgloss.Color("245"))
)

// FetcherModel is the puzzle request form: an email field, a difficulty
// slider and a fetch button. One request may be in flight at a time.
type FetcherModel struct {
	cfg     config.PuzzleConfig
	fetcher puzzle.Fetcher
	store   PuzzleStore
	logger  *log.Logger

	email      textinput.Model
	difficulty int
	focus      formField
	spinner    spinner.Model

	fetching bool
	status   string
	failed   bool
	last     *puzzle.Puzzle

	width    int
	back     bool
	quitting bool
}

// NewFetcherModel creates the form. store may be nil; a nil logger discards output.
func NewFetcherModel(cfg config.PuzzleConfig, fetcher puzzle.Fetcher, store PuzzleStore, logger *log.Logger) FetcherModel {
	email := textinput.New()
	email.Placeholder = cfg.Form.DefaultEmail
	email.Prompt = "> "
	email.CharLimit = 128
	email.Width = 40
	email.Focus()

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("11"))),
	)

	return FetcherModel{
		cfg:        cfg,
		fetcher:    fetcher,
		store:      store,
		logger:     orDiscard(logger),
		email:      email,
		difficulty: cfg.Difficulty.Default,
		spinner:    sp,
	}
}

// SetEmail pre-fills the email field.
func (m *FetcherModel) SetEmail(email string) {
	m.email.SetValue(email)
}

// SetDifficulty moves the slider, clamped to the configured range.
func (m *FetcherModel) SetDifficulty(level int) {
	m.difficulty = m.cfg.Difficulty.Clamp(level)
}

// Init starts the cursor blink.
func (m FetcherModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the form.
func (m FetcherModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case fetchResultMsg:
		return m.handleResult(msg)

	case spinner.TickMsg:
		if !m.fetching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.email, cmd = m.email.Update(msg)
	return m, cmd
}

func (m FetcherModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		m.back = true
		return m, nil
	case "tab", "down":
		return m, m.setFocus((m.focus + 1) % fieldCount)
	case "shift+tab", "up":
		return m, m.setFocus((m.focus + fieldCount - 1) % fieldCount)
	case "enter":
		if m.focus == fieldEmail {
			return m, m.setFocus(fieldDifficulty)
		}
		return m.startFetch()
	}

	switch m.focus {
	case fieldEmail:
		var cmd tea.Cmd
		m.email, cmd = m.email.Update(msg)
		return m, cmd
	case fieldDifficulty:
		switch msg.String() {
		case "left", "h", "-":
			m.SetDifficulty(m.difficulty - 1)
		case "right", "l", "+":
			m.SetDifficulty(m.difficulty + 1)
		}
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "b":
		m.back = true
	}
	return m, nil
}

func (m *FetcherModel) setFocus(f formField) tea.Cmd {
	m.focus = f
	if f == fieldEmail {
		return m.email.Focus()
	}
	m.email.Blur()
	return nil
}

// Email returns the trimmed content of the email field.
func (m FetcherModel) Email() string {
	return strings.TrimSpace(m.email.Value())
}

// EmailValid reports whether the email belongs to an allowed domain.
func (m FetcherModel) EmailValid() bool {
	return puzzle.ValidEmail(m.Email(), m.cfg.Form.AllowedDomains)
}

// CanFetch reports whether the fetch button is enabled.
func (m FetcherModel) CanFetch() bool {
	return !m.fetching && m.fetcher != nil && m.EmailValid()
}

func (m FetcherModel) startFetch() (tea.Model, tea.Cmd) {
	if !m.CanFetch() {
		return m, nil
	}

	req := puzzle.Request{Email: m.Email(), Difficulty: m.difficulty}
	m.fetching = true
	m.failed = false
	m.status = "fetching puzzle..."
	m.logger.Info("fetching puzzle", "email", req.Email, "difficulty", req.Difficulty)

	return m, tea.Batch(m.fetchCmd(req), m.spinner.Tick)
}

// fetchCmd performs the request off the UI goroutine.
func (m FetcherModel) fetchCmd(req puzzle.Request) tea.Cmd {
	fetcher := m.fetcher
	timeout := m.cfg.Timeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		p, err := fetcher.Fetch(ctx, req)
		return fetchResultMsg{puzzle: p, err: err}
	}
}

func (m FetcherModel) handleResult(msg fetchResultMsg) (tea.Model, tea.Cmd) {
	m.fetching = false

	if msg.err != nil {
		m.failed = true
		var statusErr *puzzle.StatusError
		if errors.As(msg.err, &statusErr) {
			m.status = fmt.Sprintf("error %d: %s", statusErr.Code, statusErr.Message)
		} else {
			m.status = "error: " + msg.err.Error()
		}
		m.logger.Error("puzzle fetch failed", "error", msg.err)
		return m, nil
	}

	p := msg.puzzle
	m.last = &p
	m.status = fmt.Sprintf("puzzle fetched! (%s)", p.Title)
	m.logger.Info("puzzle fetched", "id", p.ID, "title", p.Title, "difficulty", p.Difficulty)

	if m.store != nil {
		if _, err := m.store.SavePuzzle(p); err != nil {
			m.logger.Warn("could not record puzzle", "id", p.ID, "error", err)
		}
	}
	return m, nil
}

// View renders the form.
func (m FetcherModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(formFocusStyle.Render("Request a new puzzle"), m.width))
	b.WriteString("\n\n")

	b.WriteString(m.label("Email", fieldEmail))
	b.WriteString("\n")
	b.WriteString(m.email.View())
	b.WriteString("\n")
	if m.Email() != "" && !m.EmailValid() {
		b.WriteString(formErrorStyle.Render("email must end with " + strings.Join(m.cfg.Form.AllowedDomains, " or ")))
	}
	b.WriteString("\n\n")

	b.WriteString(m.label("Difficulty", fieldDifficulty))
	b.WriteString("\n")
	b.WriteString(m.slider())
	b.WriteString("\n\n")

	switch {
	case !m.CanFetch():
		b.WriteString(formButtonOff.Render("Fetch puzzle"))
	case m.focus == fieldFetch:
		b.WriteString(formButtonActive.Render("Fetch puzzle"))
	default:
		b.WriteString(formButtonStyle.Render("Fetch puzzle"))
	}
	b.WriteString("\n\n")

	switch {
	case m.fetching:
		b.WriteString(m.spinner.View() + " " + m.status)
	case m.failed:
		b.WriteString(formErrorStyle.Render(m.status))
	case m.status != "":
		b.WriteString(formOKStyle.Render(m.status))
		if m.last != nil && m.last.ID != "" {
			b.WriteString(formMutedStyle.Render("  id " + m.last.ID))
		}
	}
	b.WriteString("\n\n")

	b.WriteString(formMutedStyle.Render("Tab: Next field  |  Left/Right: Difficulty  |  Enter: Fetch  |  Esc: Menu"))
	b.WriteString("\n")
	return b.String()
}

func (m FetcherModel) label(text string, f formField) string {
	if m.focus == f {
		return formFocusStyle.Render("▸ " + text)
	}
	return formLabelStyle.Render("  " + text)
}

// slider draws the difficulty range with a knob at the current level.
func (m FetcherModel) slider() string {
	d := m.cfg.Difficulty
	var track strings.Builder
	for v := d.Min; v <= d.Max; v++ {
		if v > d.Min {
			track.WriteString("──")
		}
		if v == m.difficulty {
			track.WriteString("●")
		} else {
			track.WriteString("○")
		}
	}
	return fmt.Sprintf("%d %s %d   level %d", d.Min, track.String(), d.Max, m.difficulty)
}

// Difficulty returns the slider level.
func (m FetcherModel) Difficulty() int {
	return m.difficulty
}

// Fetching reports whether a request is in flight.
func (m FetcherModel) Fetching() bool {
	return m.fetching
}

// Status returns the status line.
func (m FetcherModel) Status() string {
	return m.status
}

// LastPuzzle returns the most recently fetched puzzle, or nil.
func (m FetcherModel) LastPuzzle() *puzzle.Puzzle {
	return m.last
}

// IsGoingBack returns true if user wants to go back to menu.
func (m FetcherModel) IsGoingBack() bool {
	return m.back
}

// IsQuitting returns true if user wants to quit entirely.
func (m FetcherModel) IsQuitting() bool {
	return m.quitting
}
