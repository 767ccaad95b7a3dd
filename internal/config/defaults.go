package config

import (
	_ "embed"
)

//go:embed defaults/slots.yaml
var defaultSlotsYAML []byte

//go:embed defaults/slots3.yaml
var defaultSlots3YAML []byte

//go:embed defaults/puzzle.yaml
var defaultPuzzleYAML []byte

// DefaultSlotsConfig returns the seven-reel Money Machine configuration.
func DefaultSlotsConfig() SlotsConfig {
	return SlotsConfig{
		Machine: SlotsMachine{
			Reels:   7,
			Symbols: []string{"🎲", "🏦", "🍒", "🍓", "💰", "🏇", "🥹"},
		},
		Lever: SlotsLever{
			TickMS: 16,
			Rate:   0.01,
			Floor:  0.01,
		},
		Run: SlotsRun{
			MaxDurationMS: 5000,
		},
	}
}

// DefaultSlots3Config returns the classic three-reel configuration.
func DefaultSlots3Config() SlotsConfig {
	cfg := DefaultSlotsConfig()
	cfg.Machine = SlotsMachine{
		Reels:   3,
		Symbols: []string{"🍒", "🍋", "🍊", "🍉", "🔔", "⭐", "💎"},
	}
	return cfg
}

// DefaultPuzzleConfig returns the default puzzle fetcher configuration.
func DefaultPuzzleConfig() PuzzleConfig {
	return PuzzleConfig{
		Server: PuzzleServer{
			BaseURL:    "https://jigsaw.plade.org",
			TimeoutSec: 10,
		},
		Form: PuzzleForm{
			DefaultEmail:   "votre.email@edu.univ-eiffel.fr",
			AllowedDomains: []string{"@univ-eiffel.fr", "@edu.univ-eiffel.fr"},
		},
		Difficulty: PuzzleDifficulty{
			Min:     2,
			Max:     7,
			Default: 4,
		},
		SplashMS: 2000,
	}
}

// GetDefaultYAML returns the embedded default YAML for a config name.
func GetDefaultYAML(name string) []byte {
	switch name {
	case "slots":
		return defaultSlotsYAML
	case "slots3":
		return defaultSlots3YAML
	case "puzzle":
		return defaultPuzzleYAML
	default:
		return nil
	}
}

// hardcodedSlots returns the compiled-in fallback for a slots config name.
func hardcodedSlots(name string) SlotsConfig {
	if name == "slots3" {
		return DefaultSlots3Config()
	}
	return DefaultSlotsConfig()
}
