// lines is a terminal color-lines puzzle: move a piece along a free path
// and clear groups of exactly the threshold size.
//
// Usage:
//
//	lines                  - Play (same as "lines play")
//	lines play             - Play in the terminal
//	lines scores           - Show high scores and recent games
//	lines auto             - Let the computer play and report scores
//	lines config           - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.arcade/scores.db)
//	--config <path>      - Use a custom lines.yaml
//	--log-level <level>  - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lines/internal/games/lines"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lines",
	Short: "Lines - a color-lines puzzle for your terminal",
	Long: `Lines is a turn-based puzzle played on a grid of colored pieces.

Select a piece and pick an empty cell: the piece moves there if a free path
exists. A group of exactly the threshold size of one color clears and scores
size squared. Otherwise new pieces appear. The game ends when the board is
full or nothing can move. Every 1000 points raises the level and the
threshold by one.

Available commands:
  play     - Play in the terminal (default)
  scores   - View high scores and recent games
  auto     - Let the computer play
  config   - Print the effective configuration

Examples:
  lines
  lines play --seed 42
  lines scores --recent
  lines auto --games 20`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		lines.SetConfigPath(flagConfig)
		return nil
	},
	Run: runPlay,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom lines.yaml")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(autoCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger creates a logger writing to w at the --log-level level.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "lines",
	})
	logger.SetLevel(level)
	return logger, nil
}

// openLogFile opens ~/.arcade/lines.log for appending.
// Interactive play cannot log to the terminal it draws on.
func openLogFile() (*os.File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(home, ".arcade")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "lines.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
