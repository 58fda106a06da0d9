package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lines/internal/config"
	"github.com/vovakirdan/tui-lines/internal/games/lines"
	"github.com/vovakirdan/tui-lines/internal/storage"
)

var (
	flagAutoGames    int
	flagAutoMaxMoves int
	flagAutoSave     bool
	flagAutoBoard    bool
)

var autoCmd = &cobra.Command{
	Use:   "auto",
	Short: "Let the computer play",
	Long: `Play games without a terminal UI. The player takes a clearing move
whenever one exists and a random legal move otherwise.

Game N uses seed --seed + N, so runs are reproducible. With --seed 0 the
base seed comes from the clock.

Examples:
  lines auto
  lines auto --games 50 --seed 1
  lines auto --games 5 --save --log-level debug`,
	Args: cobra.NoArgs,
	Run:  runAuto,
}

func init() {
	autoCmd.Flags().IntVar(&flagAutoGames, "games", 1, "Number of games to play")
	autoCmd.Flags().IntVar(&flagAutoMaxMoves, "max-moves", 0, "Stop a game after this many moves (0 = no limit)")
	autoCmd.Flags().BoolVar(&flagAutoSave, "save", false, "Record finished games in the scores database")
	autoCmd.Flags().BoolVar(&flagAutoBoard, "board", false, "Print the final board of each game")
}

func runAuto(cmd *cobra.Command, args []string) {
	logger, err := newLogger(os.Stderr)
	if err != nil {
		fail("%v", err)
	}

	cfg, err := config.LoadLines(flagConfig)
	if err != nil {
		fail("%v", err)
	}
	rules, err := lines.RulesFromConfig(cfg)
	if err != nil {
		fail("%v", err)
	}

	var store *storage.Store
	if flagAutoSave {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			fail("opening scores database: %v", err)
		}
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	base := flagSeed
	if base == 0 {
		base = time.Now().UnixNano()
	}

	player := lines.NewAutoPlayer(rules, flagAutoMaxMoves, logger)
	best, total, played := 0, 0, 0

	fmt.Printf("  %-20s  %-8s  %-5s  %-5s  %-7s  %s\n", "Seed", "Score", "Level", "Moves", "Cleared", "End")
	for i, n := 0, flagAutoGames; i < n; i++ {
		seed := base + int64(i)
		start := time.Now()
		res, err := player.Play(ctx, seed)
		if errors.Is(err, context.Canceled) {
			logger.Warn("interrupted", "played", played)
			break
		}
		if err != nil {
			fail("game %d: %v", i+1, err)
		}

		played++
		total += res.Score
		best = max(best, res.Score)
		fmt.Printf("  %-20d  %-8d  %-5d  %-5d  %-7d  %s\n", res.Seed, res.Score, res.Level, res.Moves, res.Cleared, res.Reason)
		if flagAutoBoard {
			for _, row := range res.Snapshot.Board {
				fmt.Println("    " + row)
			}
		}

		if store != nil {
			rec := storage.GameRecord{
				GameID:   lines.ID,
				Score:    res.Score,
				Level:    res.Level,
				Moves:    res.Moves,
				Cleared:  res.Cleared,
				Reason:   res.Reason,
				Seed:     res.Seed,
				Duration: time.Since(start),
			}
			if _, err := store.SaveGame(rec); err != nil {
				logger.Error("cannot save game", "seed", seed, "error", err)
			}
		}
	}

	if played > 0 {
		fmt.Println()
		fmt.Printf("Games: %d  Best: %d  Average: %.1f\n", played, best, float64(total)/float64(played))
	}
}
