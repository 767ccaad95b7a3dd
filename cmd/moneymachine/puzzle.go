package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/money-machine/internal/config"
	"github.com/vovakirdan/money-machine/internal/platform/tui"
	"github.com/vovakirdan/money-machine/internal/puzzle"
	"github.com/vovakirdan/money-machine/internal/storage"
)

var (
	flagPuzzleConfig string
	flagEmail        string
	flagDifficulty   string
	flagServerURL    string
	flagLimit        int
	flagClear        bool
)

var puzzleCmd = &cobra.Command{
	Use:   "puzzle",
	Short: "Request a new jigsaw puzzle",
	Long: `Show the splash screen, then the puzzle request form.

The email must belong to one of the allowed domains
(@univ-eiffel.fr or @edu.univ-eiffel.fr by default). Difficulty ranges
from 2 to 7; presets easy, normal and hard are accepted too.

Controls:
  Tab/Up/Down  - Move between fields
  Left/Right   - Change difficulty
  Enter        - Fetch
  Esc          - Leave

Examples:
  moneymachine puzzle
  moneymachine puzzle --email ada@edu.univ-eiffel.fr --difficulty hard
  moneymachine puzzle --url http://localhost:8080`,
	Run: runPuzzle,
}

var puzzlesCmd = &cobra.Command{
	Use:   "puzzles",
	Short: "Show fetched puzzles",
	Long: `Display the most recently fetched puzzles, newest first.

Examples:
  moneymachine puzzles
  moneymachine puzzles --email ada@edu.univ-eiffel.fr
  moneymachine puzzles --limit 50
  moneymachine puzzles --clear`,
	Run: runPuzzles,
}

func init() {
	puzzleCmd.Flags().StringVar(&flagPuzzleConfig, "config", "", "Path to custom puzzle config YAML")
	puzzleCmd.Flags().StringVar(&flagEmail, "email", "", "Pre-fill the email field")
	puzzleCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty: easy, normal, hard or a level")
	puzzleCmd.Flags().StringVar(&flagServerURL, "url", "", "Puzzle server base URL")

	puzzlesCmd.Flags().StringVar(&flagEmail, "email", "", "Only show puzzles for this email")
	puzzlesCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of puzzles to show")
	puzzlesCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the whole history")
}

// loadPuzzleConfig loads the fetcher config and applies --url.
func loadPuzzleConfig() (config.PuzzleConfig, error) {
	cfg, err := config.LoadPuzzle(flagPuzzleConfig)
	if err != nil {
		return cfg, err
	}
	if flagServerURL != "" {
		cfg.Server.BaseURL = flagServerURL
		if err := cfg.Validate(); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

func newPuzzleModel(cfg config.PuzzleConfig, store *storage.Store, logger *log.Logger, width, height int) tui.PuzzleModel {
	fetcher := puzzle.NewHTTPFetcher(cfg.Server.BaseURL, nil, cfg.Timeout(), logger.WithPrefix("puzzle"))
	return tui.NewPuzzleModel(cfg, fetcher, tui.StoreOf(store), logger, width, height)
}

func runPuzzle(_ *cobra.Command, _ []string) {
	cfg, err := loadPuzzleConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	difficulty := cfg.Difficulty.Default
	if flagDifficulty != "" {
		difficulty, err = cfg.Difficulty.Parse(flagDifficulty)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	logger, closeLog := openLogger()
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	rt := runtimeConfig()
	model := newPuzzleModel(cfg, store, logger, rt.ScreenW, rt.ScreenH)
	model.Form().SetDifficulty(difficulty)
	if flagEmail != "" {
		model.Form().SetEmail(flagEmail)
	}

	if _, err := tui.RunPuzzle(model); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}

func runPuzzles(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening puzzle database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearPuzzles(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		fmt.Println("Puzzle history cleared.")
		return
	}

	entries, err := store.RecentPuzzles(flagEmail, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving puzzles: %v\n", err)
		return
	}

	fmt.Println("Fetched puzzles")
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No puzzles fetched yet.")
		fmt.Println()
		fmt.Println("Run 'moneymachine puzzle' to get one!")
		return
	}

	fmt.Printf("  %-16s  %-24s  %-3s  %-12s  %s\n", "Date", "Title", "Lvl", "ID", "Email")
	fmt.Printf("  %-16s  %-24s  %-3s  %-12s  %s\n", "----", "-----", "---", "--", "-----")
	for _, e := range entries {
		fmt.Printf("  %-16s  %-24s  %-3d  %-12s  %s\n",
			e.FetchedAt.Format("2006-01-02 15:04"), e.Title, e.Difficulty, e.ID, e.Email)
	}

	if total, err := store.PuzzleCount(); err == nil {
		fmt.Println()
		fmt.Printf("Total: %d\n", total)
	}
}
