package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/money-machine/internal/config"
	"github.com/vovakirdan/money-machine/internal/puzzle"
)

// PuzzleModel chains the splash screen into the fetcher form.
type PuzzleModel struct {
	splash   SplashModel
	form     FetcherModel
	onForm   bool
	width    int
	height   int
	back     bool
	quitting bool
}

// NewPuzzleModel creates the splash-then-form flow.
func NewPuzzleModel(cfg config.PuzzleConfig, fetcher puzzle.Fetcher, store PuzzleStore, logger *log.Logger, width, height int) PuzzleModel {
	form := NewFetcherModel(cfg, fetcher, store, logger)
	form.width = width
	return PuzzleModel{
		splash: NewSplashModel(cfg.Splash(), width, height),
		form:   form,
		width:  width,
		height: height,
	}
}

// Form gives access to the fetcher form, e.g. to pre-fill it.
func (m *PuzzleModel) Form() *FetcherModel {
	return &m.form
}

// Init starts the splash animation.
func (m PuzzleModel) Init() tea.Cmd {
	return m.splash.Init()
}

// Update routes messages to the active screen.
func (m PuzzleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
		// Both screens track the size.
		next, _ := m.splash.Update(msg)
		m.splash = next.(SplashModel)
		form, _ := m.form.Update(msg)
		m.form = form.(FetcherModel)
		return m, nil
	}

	if m.onForm {
		next, cmd := m.form.Update(msg)
		m.form = next.(FetcherModel)
		m.back = m.form.IsGoingBack()
		m.quitting = m.form.IsQuitting()
		return m, cmd
	}

	next, cmd := m.splash.Update(msg)
	m.splash = next.(SplashModel)
	m.back = m.splash.back
	m.quitting = m.splash.quitting
	if m.splash.Started() {
		m.onForm = true
		return m, m.form.Init()
	}
	return m, cmd
}

// View renders the active screen.
func (m PuzzleModel) View() string {
	if m.quitting {
		return ""
	}
	if m.onForm {
		return m.form.View()
	}
	return m.splash.View()
}

// OnForm reports whether the splash has been left for the form.
func (m PuzzleModel) OnForm() bool {
	return m.onForm
}

// IsGoingBack returns true if user wants to go back to menu.
func (m PuzzleModel) IsGoingBack() bool {
	return m.back
}

// IsQuitting returns true if user wants to quit entirely.
func (m PuzzleModel) IsQuitting() bool {
	return m.quitting
}

// puzzleRunner exits the program when the flow is left.
type puzzleRunner struct {
	PuzzleModel
}

func (r puzzleRunner) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := r.PuzzleModel.Update(msg)
	r.PuzzleModel = next.(PuzzleModel)
	if r.IsGoingBack() {
		return r, tea.Quit
	}
	return r, cmd
}

// RunPuzzle shows the splash and the fetcher form in the terminal.
// back is true when the user asked for the menu.
func RunPuzzle(model PuzzleModel) (back bool, err error) {
	p := tea.NewProgram(puzzleRunner{model}, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	r, ok := final.(puzzleRunner)
	if !ok {
		return false, nil
	}
	return r.IsGoingBack(), nil
}
