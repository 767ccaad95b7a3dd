// Package slots implements the charge-and-spin slot machines on top of the
// engine package. Two variants are registered: the seven-reel Money Machine
// and a classic three-reel fruit machine.
package slots

import (
	"fmt"

	"github.com/vovakirdan/money-machine/internal/config"
	"github.com/vovakirdan/money-machine/internal/core"
	"github.com/vovakirdan/money-machine/internal/games/slots/engine"
	"github.com/vovakirdan/money-machine/internal/registry"
)

const (
	IDMoney  = "slots"
	IDFruits = "slots3"
)

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

func init() {
	registry.Register(registry.GameInfo{
		ID:          IDMoney,
		Title:       "Money Machine",
		Description: "Seven reels, hold the lever to charge the draw",
	}, func() registry.Game {
		return New(IDMoney, "Money Machine")
	})
	registry.Register(registry.GameInfo{
		ID:          IDFruits,
		Title:       "Classic Fruits",
		Description: "Three reels of fruit",
	}, func() registry.Game {
		return New(IDFruits, "Classic Fruits")
	})
}

// Game adapts an engine.Controller to the platform's game loop.
type Game struct {
	id    string
	title string
	cfg   config.SlotsConfig

	machine *engine.Controller
	draws   int
	landed  []string // Set by the result callback, drained by Step
	warning string   // Why the defaults replaced the configured machine
}

// New creates a machine variant. The configuration is loaded on Reset.
func New(id, title string) *Game {
	return &Game{id: id, title: title}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.title
}

// Reset builds a fresh idle machine from the variant's configuration.
// An unreadable or invalid config falls back to the built-in defaults and
// the reason is reported through State().Warning. It panics if the
// built-in defaults themselves cannot build a machine.
func (g *Game) Reset(rt core.RuntimeConfig) {
	g.warning = ""

	cfg, err := config.LoadSlots(g.id, configPath)
	var machine *engine.Controller
	if err == nil {
		machine, err = build(cfg, rt.ClockOrSystem())
	}
	if err != nil {
		g.warning = fmt.Sprintf("using default %s config: %v", g.id, err)
		cfg = defaultsFor(g.id)
		machine, err = build(cfg, rt.ClockOrSystem())
		if err != nil {
			panic(fmt.Sprintf("slots: built-in %s config is unusable: %v", g.id, err))
		}
	}

	g.cfg = cfg
	g.machine = machine
	g.draws = 0
	g.landed = nil
	g.machine.OnResult(func(symbols []string) {
		g.landed = symbols
	})
}

func defaultsFor(id string) config.SlotsConfig {
	if id == IDFruits {
		return config.DefaultSlots3Config()
	}
	return config.DefaultSlotsConfig()
}

// build turns a file configuration into a controller.
func build(cfg config.SlotsConfig, clock core.Clock) (*engine.Controller, error) {
	symbols, err := engine.NewSymbolSet(cfg.Machine.Symbols...)
	if err != nil {
		return nil, err
	}
	return engine.NewController(symbols, engine.Config{
		Reels:      cfg.Machine.Reels,
		Tick:       cfg.Tick(),
		ChargeRate: cfg.Lever.Rate,
		PowerFloor: cfg.Lever.Floor,
		MaxRun:     cfg.MaxRun(),
	}, clock)
}

// Step applies the lever gestures of this frame in arrival order, then
// advances the machine to the current time.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	for _, a := range in.Ordered() {
		// Gestures that do not fit the current phase are dropped.
		_ = g.apply(a)
	}

	g.machine.Update()

	res := core.StepResult{}
	if g.landed != nil {
		res.Draw = g.landed
		g.landed = nil
		g.draws++
	}
	res.State = g.State()
	return res
}

func (g *Game) apply(a core.Action) error {
	switch a {
	case core.ActionLever:
		if g.machine.State() == engine.Charging {
			_, err := g.machine.EndCharge()
			return err
		}
		return g.machine.BeginCharge()
	case core.ActionPress:
		return g.machine.BeginCharge()
	case core.ActionRelease:
		_, err := g.machine.EndCharge()
		return err
	}
	return nil
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.machine == nil {
		return core.GameState{Phase: engine.Idle.String()}
	}
	st := g.machine.State()
	return core.GameState{
		Busy:    st != engine.Idle,
		Phase:   st.String(),
		Draws:   g.draws,
		Warning: g.warning,
	}
}

// Snapshot returns the machine view used for rendering.
func (g *Game) Snapshot() engine.Snapshot {
	return g.machine.Snapshot()
}

// Machine exposes the underlying controller.
func (g *Game) Machine() *engine.Controller {
	return g.machine
}
