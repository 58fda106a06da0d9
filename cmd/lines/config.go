package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lines/internal/config"
	"github.com/vovakirdan/tui-lines/internal/games/lines"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration a new game would use, as YAML.

The file is looked up in this order: --config, ~/.arcade/configs/lines.yaml,
./configs/lines.yaml, then the built-in defaults. Save the output to one of
those paths to customize the board, colors, spawns or progression.

Examples:
  lines config > ~/.arcade/configs/lines.yaml
  lines config --config ./big-board.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func runConfig(cmd *cobra.Command, args []string) {
	cfg, err := config.LoadLines(flagConfig)
	if err != nil {
		fail("%v", err)
	}
	if _, err := lines.RulesFromConfig(cfg); err != nil {
		fail("%v", err)
	}

	data, err := config.MarshalLines(cfg)
	if err != nil {
		fail("encoding config: %v", err)
	}
	if _, err := os.Stdout.Write(data); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}
