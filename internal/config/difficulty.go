package config

import (
	"fmt"
	"strconv"
)

// DifficultyPreset represents a named puzzle difficulty.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Clamp restricts a difficulty to the configured range.
func (d PuzzleDifficulty) Clamp(level int) int {
	if level < d.Min {
		return d.Min
	}
	if level > d.Max {
		return d.Max
	}
	return level
}

// ForPreset maps a preset onto the configured range: easy is the minimum,
// hard the maximum and normal the default.
func (d PuzzleDifficulty) ForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return d.Min
	case DifficultyHard:
		return d.Max
	default:
		return d.Default
	}
}

// Parse reads a difficulty flag value: a preset name or a number.
// Empty input yields the default. Numbers are clamped to the range.
func (d PuzzleDifficulty) Parse(value string) (int, error) {
	switch DifficultyPreset(value) {
	case "":
		return d.Default, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return d.ForPreset(DifficultyPreset(value)), nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or %d-%d)", value, d.Min, d.Max)
	}
	return d.Clamp(n), nil
}
