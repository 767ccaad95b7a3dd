package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/money-machine/internal/config"
	"github.com/vovakirdan/money-machine/internal/games/slots"
	"github.com/vovakirdan/money-machine/internal/platform/tui"
	"github.com/vovakirdan/money-machine/internal/registry"
)

var flagConfig string

var playCmd = &cobra.Command{
	Use:   "play <machine>",
	Short: "Play a machine",
	Long: `Start playing the specified slot machine.

Controls:
  Space/Enter  - Pull the lever, press again to release it
  Mouse        - Hold the button to charge, release to spin
  B/Esc        - Back (when the reels are still)
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

The longer the lever is held, the longer the reels spin: full charge
spins for five seconds.

Examples:
  moneymachine play slots
  moneymachine play slots3
  moneymachine play slots --config ./my-slots.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom machine config YAML")
}

// prepareMachine validates the machine config before the alt screen opens.
func prepareMachine(gameID string) error {
	if flagConfig == "" {
		return nil
	}
	if _, err := config.LoadSlots(gameID, flagConfig); err != nil {
		return err
	}
	slots.SetConfigPath(flagConfig)
	return nil
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown machine %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'moneymachine list' to see available machines.")
		os.Exit(1)
	}

	if err := prepareMachine(gameID); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog := openLogger()
	defer closeLog()

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating machine: %v\n", err)
		os.Exit(1)
	}

	logger.Info("playing", "game", gameID, "fps", flagFPS)
	if _, err := tui.Run(game, runtimeConfig(), logger); err != nil {
		logger.Error("machine stopped", "error", err)
		fmt.Fprintf(os.Stderr, "Error running machine: %v\n", err)
		closeLog()
		os.Exit(1)
	}
}
