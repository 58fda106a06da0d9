package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-lines/internal/games/lines"
	"github.com/vovakirdan/tui-lines/internal/platform/tui"
	"github.com/vovakirdan/tui-lines/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresRecent bool
	flagScoresPlain  bool
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores and recent games",
	Long: `Display high scores and finished games.

In a terminal this opens an interactive scoreboard; Tab switches between top
scores and recent games. Use --plain for text output.

Examples:
  lines scores
  lines scores --plain --recent
  lines scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of entries to print")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "Print recent games instead of top scores")
	scoresCmd.Flags().BoolVar(&flagScoresPlain, "plain", false, "Print text even in a terminal")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all recorded scores and games")
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(lines.ID); err != nil {
			fail("%v", err)
		}
		fmt.Println("Scores cleared.")
		return
	}

	fd := int(os.Stdout.Fd())
	if !flagScoresPlain && term.IsTerminal(fd) {
		width, height, err := term.GetSize(fd)
		if err != nil {
			width, height = 80, 24
		}
		if err := tui.RunScoreboard(store, lines.ID, "Lines", width, height); err != nil {
			fail("running scoreboard: %v", err)
		}
		return
	}

	if flagScoresRecent {
		printRecentGames(store)
	} else {
		printTopScores(store)
	}
}

func printTopScores(store *storage.Store) {
	scores, err := store.TopScores(lines.ID, flagScoresLimit)
	if err != nil {
		fail("retrieving scores: %v", err)
	}

	fmt.Println("High Scores - Lines")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'lines play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(lines.ID)
	if err == nil && stats.GamesCount > 0 {
		fmt.Println()
		fmt.Printf("Best: %d  Games: %d  Average: %.0f  Best level: %d\n",
			stats.HighScore, stats.GamesCount, stats.AvgScore, stats.BestLevel)
	}
}

func printRecentGames(store *storage.Store) {
	games, err := store.RecentGames(lines.ID, flagScoresLimit)
	if err != nil {
		fail("retrieving games: %v", err)
	}

	fmt.Println("Recent Games - Lines")
	fmt.Println()

	if len(games) == 0 {
		fmt.Println("No games recorded yet.")
		return
	}

	fmt.Printf("  %-8s  %-5s  %-5s  %-7s  %-8s  %-15s  %s\n", "Score", "Level", "Moves", "Cleared", "Time", "End", "Date")
	for _, g := range games {
		fmt.Printf("  %-8d  %-5d  %-5d  %-7d  %-8s  %-15s  %s\n",
			g.Score, g.Level, g.Moves, g.Cleared, g.Duration.Round(time.Second), g.Reason,
			g.CreatedAt.Format("2006-01-02 15:04"))
	}
}
