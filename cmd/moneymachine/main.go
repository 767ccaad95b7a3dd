// moneymachine is a terminal slot machine with a charge-and-release lever,
// plus a jigsaw puzzle fetcher.
//
// Usage:
//
//	moneymachine list              - List available machines
//	moneymachine play <machine>    - Play a machine
//	moneymachine menu              - Start menu to pick interactively
//	moneymachine puzzle            - Request a new jigsaw puzzle
//	moneymachine puzzles           - Show fetched puzzles
//	moneymachine serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--db <path>     - Set database path (default: ~/.arcade/puzzles.db)
//	--log <path>    - Set log file (default: ~/.arcade/moneymachine.log)
//	--verbose       - Log debug messages
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/money-machine/internal/core"
	"github.com/vovakirdan/money-machine/internal/storage"

	// Import machines to register them
	_ "github.com/vovakirdan/money-machine/internal/games/slots"
)

var (
	// Global flags
	flagFPS     int
	flagDBPath  string
	flagLogPath string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "moneymachine",
	Short: "Money Machine - a slot machine in your terminal",
	Long: `Money Machine is a terminal slot machine. Hold the lever to charge
the draw: the longer you hold, the longer the reels spin.

Available commands:
  list     - Show all available machines
  play     - Play a specific machine directly
  menu     - Interactive picker menu
  puzzle   - Request a new jigsaw puzzle
  puzzles  - Show fetched puzzles
  serve    - Start SSH server for remote play

Examples:
  moneymachine list
  moneymachine play slots
  moneymachine menu
  moneymachine puzzle --email ada@edu.univ-eiffel.fr
  moneymachine serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/puzzles.db", "Path to puzzle history database")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "~/.arcade/moneymachine.log", "Path to log file (empty disables logging)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug messages")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(puzzleCmd)
	rootCmd.AddCommand(puzzlesCmd)
	rootCmd.AddCommand(serveCmd)
}

// expandHome replaces a leading ~ with the home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// openLogger returns a logger writing to the --log file. The terminal is in
// alt-screen mode while a program runs, so nothing is written to stderr.
func openLogger() (*log.Logger, func()) {
	level := log.InfoLevel
	if flagVerbose {
		level = log.DebugLevel
	}

	var out io.Writer = io.Discard
	closeFn := func() {}
	if flagLogPath != "" {
		path := expandHome(flagLogPath)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
			f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
			if err == nil {
				out = f
				closeFn = func() { f.Close() }
			} else {
				fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
			}
		}
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "moneymachine",
		Level:           level,
	})
	return logger, closeFn
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	return cfg
}

// openStore opens the puzzle history; failures only cost the history.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open puzzle database: %v\n", err)
		logger.Warn("could not open puzzle database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}
