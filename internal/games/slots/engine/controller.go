package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/money-machine/internal/core"
)

// RunState is the phase of a machine.
type RunState int

const (
	Idle RunState = iota
	Charging
	Running
)

// String returns the lowercase name of the state.
func (s RunState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Charging:
		return "charging"
	case Running:
		return "running"
	default:
		return "unknown"
	}
}

// Config holds the machine timing parameters.
type Config struct {
	Reels      int           // Number of reels, fixed for the machine's lifetime
	Tick       time.Duration // Cadence of charge growth and spin refresh
	ChargeRate float64       // Power gained per Tick of held lever
	PowerFloor float64       // Power level after each release
	MaxRun     time.Duration // Run length at full power
}

// DefaultConfig returns the classic machine: seven reels, 0.01 power per
// 16ms tick, 0.01 floor and five seconds at full power.
func DefaultConfig() Config {
	return Config{
		Reels:      7,
		Tick:       16 * time.Millisecond,
		ChargeRate: 0.01,
		PowerFloor: 0.01,
		MaxRun:     5 * time.Second,
	}
}

// Validate checks that the parameters describe a usable machine.
func (c Config) Validate() error {
	switch {
	case c.Reels < 1:
		return fmt.Errorf("%w: reels must be positive, got %d", ErrInvalidConfig, c.Reels)
	case c.Tick <= 0:
		return fmt.Errorf("%w: tick must be positive, got %s", ErrInvalidConfig, c.Tick)
	case c.ChargeRate <= 0:
		return fmt.Errorf("%w: charge rate must be positive, got %g", ErrInvalidConfig, c.ChargeRate)
	case c.PowerFloor <= 0 || c.PowerFloor > 1:
		return fmt.Errorf("%w: power floor must be in (0, 1], got %g", ErrInvalidConfig, c.PowerFloor)
	case c.MaxRun < time.Millisecond:
		return fmt.Errorf("%w: max run must be at least 1ms, got %s", ErrInvalidConfig, c.MaxRun)
	}
	return nil
}

// RunDuration maps a power level to a run length: round(power * maxRun)
// at millisecond resolution. It is non-decreasing in power.
func RunDuration(power float64, maxRun time.Duration) time.Duration {
	ms := math.Round(core.ClampF(power, 0, 1) * float64(maxRun.Milliseconds()))
	return time.Duration(ms) * time.Millisecond
}

// Snapshot is a read-only view of a machine for the presentation layer.
type Snapshot struct {
	State     RunState
	Power     float64       // Current gauge level
	Outcome   OutcomeVector // Latest published vector (a copy)
	Remaining time.Duration // Time left in the current run, 0 otherwise
	Result    []string      // Symbols of the last completed draw, nil before the first
}

// Controller is the charge/spin/result state machine.
//
// Idle -> Charging on BeginCharge, Charging -> Running on EndCharge,
// Running -> Idle when the run timer expires. Time only moves when Update
// (or EndCharge) reads the clock, so the owner decides the cadence.
type Controller struct {
	symbols SymbolSet
	cfg     Config
	clock   core.Clock
	charge  *Charge
	gen     *Generator

	state    RunState
	outcome  OutcomeVector
	result   []string
	last     time.Time     // Clock reading at the previous advance
	pending  time.Duration // Elapsed time not yet consumed by a whole tick
	deadline time.Time     // End of the current run
	runFor   time.Duration // Length of the current run

	onResult func([]string)
	onSpin   func(OutcomeVector)
}

// NewController creates an idle machine over the given symbols.
// A nil clock uses the wall clock.
func NewController(symbols SymbolSet, cfg Config, clock core.Clock) (*Controller, error) {
	if symbols.Len() == 0 {
		return nil, fmt.Errorf("%w: symbol set is empty", ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if clock == nil {
		clock = core.SystemClock{}
	}

	c := &Controller{
		symbols: symbols,
		cfg:     cfg,
		clock:   clock,
		charge:  NewCharge(cfg.ChargeRate, cfg.Tick, cfg.PowerFloor),
		gen:     NewGenerator(nil),
		outcome: make(OutcomeVector, cfg.Reels),
		last:    clock.Now(),
	}
	copy(c.outcome, c.gen.Generate(cfg.Reels, symbols.Len()))
	return c, nil
}

// SetSource replaces the random source. Intended for tests.
func (c *Controller) SetSource(src Source) {
	c.gen = NewGenerator(src)
}

// OnResult registers the callback fired once per completed run with the
// final symbols. It runs synchronously on the goroutine driving Update and
// must not block.
func (c *Controller) OnResult(fn func([]string)) {
	c.onResult = fn
}

// OnSpin registers the callback fired whenever a new outcome vector is
// published while running. The vector is owned by the controller and only
// valid during the call.
func (c *Controller) OnSpin(fn func(OutcomeVector)) {
	c.onSpin = fn
}

// BeginCharge starts holding the lever. Only valid while idle.
func (c *Controller) BeginCharge() error {
	if c.state != Idle {
		return fmt.Errorf("%w: begin charge while %s", ErrInvalidTransition, c.state)
	}
	if err := c.charge.Begin(); err != nil {
		return err
	}
	c.state = Charging
	c.last = c.clock.Now()
	c.pending = 0
	return nil
}

// EndCharge releases the lever and starts a run sized by the captured
// power. It returns the run length.
func (c *Controller) EndCharge() (time.Duration, error) {
	if c.state != Charging {
		return 0, fmt.Errorf("%w: end charge while %s", ErrInvalidTransition, c.state)
	}

	// Count whole ticks held up to the release.
	now := c.clock.Now()
	c.advanceCharge(now)

	power, err := c.charge.End()
	if err != nil {
		return 0, err
	}

	c.runFor = RunDuration(power, c.cfg.MaxRun)
	c.deadline = now.Add(c.runFor)
	c.state = Running
	c.pending = 0
	c.publish()
	return c.runFor, nil
}

// Update advances the machine to the clock's current time.
func (c *Controller) Update() {
	now := c.clock.Now()
	switch c.state {
	case Charging:
		c.advanceCharge(now)
	case Running:
		c.advanceRun(now)
	default:
		c.last = now
	}
}

func (c *Controller) advanceCharge(now time.Time) {
	c.pending += now.Sub(c.last)
	c.last = now
	for c.pending >= c.cfg.Tick {
		//nolint:errcheck // Charge is active for the whole Charging state
		c.charge.Tick(c.cfg.Tick)
		c.pending -= c.cfg.Tick
	}
}

func (c *Controller) advanceRun(now time.Time) {
	if !now.Before(c.deadline) {
		c.finish()
		c.last = now
		return
	}

	c.pending += now.Sub(c.last)
	c.last = now
	if c.pending < c.cfg.Tick {
		return
	}
	// Several elapsed ticks collapse into one refresh.
	c.pending %= c.cfg.Tick
	c.publish()
}

// publish draws a fresh outcome vector and notifies the spin observer.
func (c *Controller) publish() {
	copy(c.outcome, c.gen.Generate(c.cfg.Reels, c.symbols.Len()))
	if c.onSpin != nil {
		c.onSpin(c.outcome)
	}
}

// finish ends the run: the last published vector is the result.
func (c *Controller) finish() {
	c.publish()
	c.state = Idle
	c.pending = 0
	c.result = c.symbols.Resolve(c.outcome)
	if c.onResult != nil {
		out := make([]string, len(c.result))
		copy(out, c.result)
		c.onResult(out)
	}
}

// State returns the current phase.
func (c *Controller) State() RunState {
	return c.state
}

// Power returns the current gauge level.
func (c *Controller) Power() float64 {
	return c.charge.Level()
}

// Outcome returns a copy of the latest published outcome vector.
func (c *Controller) Outcome() OutcomeVector {
	return c.outcome.Clone()
}

// Result returns the symbols of the last completed run, or nil.
func (c *Controller) Result() []string {
	if c.result == nil {
		return nil
	}
	out := make([]string, len(c.result))
	copy(out, c.result)
	return out
}

// RunLength returns the length of the current or last run.
func (c *Controller) RunLength() time.Duration {
	return c.runFor
}

// Symbols returns the machine's symbol set.
func (c *Controller) Symbols() SymbolSet {
	return c.symbols
}

// Reels returns the number of reels.
func (c *Controller) Reels() int {
	return c.cfg.Reels
}

// Snapshot returns the state the presentation layer draws from.
func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{
		State:   c.state,
		Power:   c.charge.Level(),
		Outcome: c.outcome.Clone(),
		Result:  c.Result(),
	}
	if c.state == Running {
		if rem := c.deadline.Sub(c.clock.Now()); rem > 0 {
			s.Remaining = rem
		}
	}
	return s
}
