// Package config provides YAML-based configuration loading for the slot
// machines and the puzzle fetcher.
package config

import (
	"fmt"
	"strings"
	"time"
)

// SlotsConfig contains all configuration for a slot machine.
type SlotsConfig struct {
	Machine SlotsMachine `yaml:"machine"`
	Lever   SlotsLever   `yaml:"lever"`
	Run     SlotsRun     `yaml:"run"`
}

// SlotsMachine defines what the machine shows.
type SlotsMachine struct {
	Reels   int      `yaml:"reels"`
	Symbols []string `yaml:"symbols"`
}

// SlotsLever defines how fast the lever charges.
type SlotsLever struct {
	TickMS int     `yaml:"tick_ms"` // Charge tick length in milliseconds
	Rate   float64 `yaml:"rate"`    // Power gained per tick
	Floor  float64 `yaml:"floor"`   // Power level after a release
}

// SlotsRun defines how long the reels spin.
type SlotsRun struct {
	MaxDurationMS int `yaml:"max_duration_ms"` // Run length at full power
}

// Tick returns the lever tick as a duration.
func (c SlotsConfig) Tick() time.Duration {
	return time.Duration(c.Lever.TickMS) * time.Millisecond
}

// MaxRun returns the full-power run length as a duration.
func (c SlotsConfig) MaxRun() time.Duration {
	return time.Duration(c.Run.MaxDurationMS) * time.Millisecond
}

// Validate checks the configuration for values the machine cannot use.
func (c SlotsConfig) Validate() error {
	if c.Machine.Reels < 1 {
		return fmt.Errorf("config: machine.reels must be positive, got %d", c.Machine.Reels)
	}
	if len(c.Machine.Symbols) == 0 {
		return fmt.Errorf("config: machine.symbols must not be empty")
	}
	seen := make(map[string]bool, len(c.Machine.Symbols))
	for _, sym := range c.Machine.Symbols {
		if sym == "" {
			return fmt.Errorf("config: machine.symbols must not contain empty symbols")
		}
		if seen[sym] {
			return fmt.Errorf("config: machine.symbols has duplicate %q", sym)
		}
		seen[sym] = true
	}
	if c.Lever.TickMS <= 0 {
		return fmt.Errorf("config: lever.tick_ms must be positive, got %d", c.Lever.TickMS)
	}
	if c.Lever.Rate <= 0 {
		return fmt.Errorf("config: lever.rate must be positive, got %g", c.Lever.Rate)
	}
	if c.Lever.Floor <= 0 || c.Lever.Floor > 1 {
		return fmt.Errorf("config: lever.floor must be in (0, 1], got %g", c.Lever.Floor)
	}
	if c.Run.MaxDurationMS <= 0 {
		return fmt.Errorf("config: run.max_duration_ms must be positive, got %d", c.Run.MaxDurationMS)
	}
	return nil
}

// PuzzleConfig contains the puzzle fetcher settings.
type PuzzleConfig struct {
	Server     PuzzleServer     `yaml:"server"`
	Form       PuzzleForm       `yaml:"form"`
	Difficulty PuzzleDifficulty `yaml:"difficulty"`
	SplashMS   int              `yaml:"splash_ms"` // Splash progress animation length
}

// PuzzleServer defines where puzzles come from.
type PuzzleServer struct {
	BaseURL    string `yaml:"base_url"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

// PuzzleForm defines the fetcher form defaults.
type PuzzleForm struct {
	DefaultEmail   string   `yaml:"default_email"`
	AllowedDomains []string `yaml:"allowed_domains"` // Accepted email suffixes, including '@'
}

// PuzzleDifficulty defines the difficulty slider.
type PuzzleDifficulty struct {
	Min     int `yaml:"min"`
	Max     int `yaml:"max"`
	Default int `yaml:"default"`
}

// Timeout returns the request timeout as a duration.
func (c PuzzleConfig) Timeout() time.Duration {
	return time.Duration(c.Server.TimeoutSec) * time.Second
}

// Splash returns the splash animation length as a duration.
func (c PuzzleConfig) Splash() time.Duration {
	return time.Duration(c.SplashMS) * time.Millisecond
}

// Validate checks the configuration for values the fetcher cannot use.
func (c PuzzleConfig) Validate() error {
	if !strings.HasPrefix(c.Server.BaseURL, "http://") && !strings.HasPrefix(c.Server.BaseURL, "https://") {
		return fmt.Errorf("config: server.base_url must be an http(s) URL, got %q", c.Server.BaseURL)
	}
	if c.Server.TimeoutSec <= 0 {
		return fmt.Errorf("config: server.timeout_sec must be positive, got %d", c.Server.TimeoutSec)
	}
	if len(c.Form.AllowedDomains) == 0 {
		return fmt.Errorf("config: form.allowed_domains must not be empty")
	}
	d := c.Difficulty
	if d.Min < 1 || d.Max < d.Min {
		return fmt.Errorf("config: difficulty range [%d, %d] is invalid", d.Min, d.Max)
	}
	if d.Default < d.Min || d.Default > d.Max {
		return fmt.Errorf("config: difficulty.default %d outside [%d, %d]", d.Default, d.Min, d.Max)
	}
	if c.SplashMS < 0 {
		return fmt.Errorf("config: splash_ms must not be negative, got %d", c.SplashMS)
	}
	return nil
}
