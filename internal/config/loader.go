package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadSlots loads a slot machine configuration by name ("slots", "slots3").
// Search order: customPath -> ~/.arcade/configs/<name>.yaml -> ./configs/<name>.yaml -> embedded default
func LoadSlots(name, customPath string) (SlotsConfig, error) {
	var cfg SlotsConfig
	found, err := loadYAML(name, customPath, &cfg)
	if err != nil {
		return cfg, err
	}
	if !found {
		return hardcodedSlots(name), nil
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadPuzzle loads the puzzle fetcher configuration.
// Search order: customPath -> ~/.arcade/configs/puzzle.yaml -> ./configs/puzzle.yaml -> embedded default
func LoadPuzzle(customPath string) (PuzzleConfig, error) {
	var cfg PuzzleConfig
	found, err := loadYAML("puzzle", customPath, &cfg)
	if err != nil {
		return cfg, err
	}
	if !found {
		return DefaultPuzzleConfig(), nil
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// loadYAML decodes the first config source that exists into out.
// A custom path must exist and parse; the other sources are skipped when
// missing or malformed. found is false only when even the embedded default
// could not be decoded.
func loadYAML(name, customPath string, out any) (found bool, err error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return false, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, out); err != nil {
			return false, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return true, nil
	}

	filename := name + ".yaml"

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, out); err == nil {
				return true, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", filename)); err == nil {
		if err := yaml.Unmarshal(data, out); err == nil {
			return true, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(GetDefaultYAML(name), out); err != nil {
		return false, nil
	}
	return true, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
