package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/money-machine/internal/core"
	"github.com/vovakirdan/money-machine/internal/registry"
)

// GameModel is the Bubble Tea model that drives one machine: it collects
// input between ticks, steps the game on every tick and renders it.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	logger     *log.Logger
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a new game model. A nil logger discards output.
func NewGameModel(game registry.Game, cfg core.RuntimeConfig, logger *log.Logger) GameModel {
	if cfg.TickRate <= 0 {
		cfg.TickRate = defaultTickRate
	}
	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		logger:     orDiscard(logger),
	}
}

func orDiscard(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.New(io.Discard)
	}
	return logger
}

// Init resets the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Debug("machine ready", "game", m.game.ID(), "tick_rate", m.config.TickRate)
	return tickCmd(m.config.TickRate)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.keyMapper.MapMouseToFrame(msg, &m.inputFrame)
		return m, nil
	case tea.WindowSizeMsg:
		// The machine keeps running; only the buffer follows the terminal.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keyMapper.IsScreenshot(msg) {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	if action == core.ActionBack {
		// Leaving mid-draw would drop the result.
		if m.gameState.Busy {
			m.logger.Debug("back refused while busy", "game", m.game.ID(), "phase", m.gameState.Phase)
			return m, nil
		}
		m.backToMenu = true
		return m, nil
	}

	m.keyMapper.MapKeyToFrame(msg, &m.inputFrame)
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	prev, prevWarning := m.gameState.Phase, m.gameState.Warning
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if w := result.State.Warning; w != "" && w != prevWarning {
		m.logger.Warn("machine config", "game", m.game.ID(), "warning", w)
	}
	if result.State.Phase != prev {
		m.logger.Debug("phase change", "game", m.game.ID(), "from", prev, "to", result.State.Phase)
	}
	if result.Draw != nil {
		m.logger.Info("draw complete",
			"game", m.game.ID(),
			"symbols", strings.Join(result.Draw, " "),
			"draws", result.State.Draws,
		)
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen as plain text under ~/.arcade/screenshots.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the game state after the last tick.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// gameRunner wraps a GameModel as a standalone program that exits on back.
type gameRunner struct {
	GameModel
}

func (r gameRunner) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := r.GameModel.Update(msg)
	if gm, ok := next.(GameModel); ok {
		r.GameModel = gm
	}
	if r.BackToMenu() {
		return r, tea.Quit
	}
	return r, cmd
}

func (r gameRunner) View() string {
	if r.BackToMenu() {
		return ""
	}
	return r.GameModel.View()
}

// Run plays one game in the terminal until the user quits or goes back.
// back is true when the user asked for the menu.
func Run(game registry.Game, cfg core.RuntimeConfig, logger *log.Logger) (back bool, err error) {
	p := tea.NewProgram(
		gameRunner{NewGameModel(game, cfg, logger)},
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // press and release drive the lever
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	r, ok := final.(gameRunner)
	if !ok {
		return false, nil
	}
	return r.BackToMenu(), nil
}
