package engine

import (
	"fmt"
	"time"

	"github.com/vovakirdan/money-machine/internal/core"
)

// Charge turns a held lever into a power level in [0, 1].
//
// The level grows by rate for every tick of held time and is clamped at 1.
// Releasing returns the captured level and drops it back to the floor.
type Charge struct {
	rate   float64       // Level gained per tick
	tick   time.Duration // Tick length the rate refers to
	floor  float64       // Level after a release
	level  float64
	active bool
}

// NewCharge creates an inactive charge resting at floor.
func NewCharge(rate float64, tick time.Duration, floor float64) *Charge {
	return &Charge{
		rate:  rate,
		tick:  tick,
		floor: floor,
		level: floor,
	}
}

// Begin starts holding the lever.
func (c *Charge) Begin() error {
	if c.active {
		return fmt.Errorf("%w: charge already in progress", ErrInvalidTransition)
	}
	c.active = true
	return nil
}

// Tick adds the power earned over d of held time.
func (c *Charge) Tick(d time.Duration) error {
	if !c.active {
		return fmt.Errorf("%w: tick without an active charge", ErrInvalidTransition)
	}
	gain := c.rate * float64(d) / float64(c.tick)
	c.level = core.ClampF(c.level+gain, 0, 1)
	return nil
}

// End releases the lever, returning the captured power and resetting the
// level to the floor.
func (c *Charge) End() (float64, error) {
	if !c.active {
		return 0, fmt.Errorf("%w: release without an active charge", ErrInvalidTransition)
	}
	power := c.level
	c.level = c.floor
	c.active = false
	return power, nil
}

// Level returns the current power level.
func (c *Charge) Level() float64 {
	return c.level
}

// Active reports whether the lever is being held.
func (c *Charge) Active() bool {
	return c.active
}
