package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/money-machine/internal/platform/tui"
	"github.com/vovakirdan/money-machine/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with an interactive picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a machine, the
puzzle fetcher or the puzzle history. Leaving a screen returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Q            - Quit

Examples:
  moneymachine menu
  moneymachine menu --fps 30
  moneymachine menu --db ./puzzles.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog := openLogger()
	defer closeLog()

	puzzleCfg, err := loadPuzzleConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = menuResult.Config
		if menuResult.Quit {
			return
		}

		var back bool
		switch item := menuResult.Item; item.Kind {
		case tui.MenuKindGame:
			game, createErr := registry.Create(item.GameID)
			if createErr != nil {
				fmt.Fprintf(os.Stderr, "Error creating machine: %v\n", createErr)
				continue
			}
			logger.Info("playing", "game", item.GameID)
			back, err = tui.Run(game, cfg, logger)

		case tui.MenuKindFetcher:
			model := newPuzzleModel(puzzleCfg, store, logger, cfg.ScreenW, cfg.ScreenH)
			back, err = tui.RunPuzzle(model)

		case tui.MenuKindHistory:
			back, err = tui.RunHistory(tui.StoreOf(store), cfg.ScreenW, cfg.ScreenH)
		}

		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		if !back {
			return
		}
	}
}
