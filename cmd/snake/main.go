// snake is a terminal snake game played against a countdown.
//
// Usage:
//
//	snake                    - Play (same as "snake play")
//	snake play               - Play in the terminal
//	snake sim                - Run a headless seeded round and print the result
//	snake config             - Print the effective configuration as YAML
//
// Global flags:
//
//	--config <path>   - Config file (default: ~/.snake/config.yaml, ./configs/snake.yaml)
//	--fps <rate>      - Tick rate (default from config: 10)
//	--seed <value>    - RNG seed for reproducible rounds (0 = time based)
//	--width <cells>   - Grid width
//	--height <cells>  - Grid height
//	--duration <sec>  - Round length in seconds
//	--log-level <l>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"

	// Import games to register them
	_ "github.com/vovakirdan/tui-snake/internal/games/snake"
)

// globalFlags holds the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	fps        int
	seed       int64
	width      int
	height     int
	duration   int
	logLevel   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	play := &playFlags{}

	rootCmd := &cobra.Command{
		Use:   "snake",
		Short: "Snake against the clock, in your terminal",
		Long: `Steer the snake around a wrapping grid, eat as much food as you can
and avoid your own tail before the countdown runs out.

Available commands:
  play     - Play in the terminal (default)
  sim      - Run a headless seeded round
  config   - Print the effective configuration

Examples:
  snake
  snake play --seed 42 --duration 30
  snake play --config ./my-snake.yaml --watch
  snake sim --seed 7 --ticks 600
  snake config --width 20 --height 15`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlay(cmd, g, play)
		},
	}

	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "Path to config YAML")
	pf.IntVar(&g.fps, "fps", 10, "Tick rate (moves per second)")
	pf.Int64Var(&g.seed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.IntVar(&g.width, "width", 40, "Grid width in cells")
	pf.IntVar(&g.height, "height", 30, "Grid height in cells")
	pf.IntVar(&g.duration, "duration", 60, "Round length in seconds")
	pf.StringVar(&g.logLevel, "log-level", "info", "Log level: debug, info, warn, error")

	play.register(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(newPlayCmd(g, play))
	rootCmd.AddCommand(newSimCmd(g))
	rootCmd.AddCommand(newConfigCmd(g))

	return rootCmd
}

// overrides collects the flags the user actually set. Defaults never
// replace file values.
func (g *globalFlags) overrides(cmd *cobra.Command) config.Overrides {
	var o config.Overrides
	flags := cmd.Flags()
	if flags.Changed("width") {
		o.Width = &g.width
	}
	if flags.Changed("height") {
		o.Height = &g.height
	}
	if flags.Changed("duration") {
		o.Duration = &g.duration
	}
	if flags.Changed("fps") {
		o.TickRate = &g.fps
	}
	if flags.Changed("seed") {
		o.Seed = &g.seed
	}
	return o
}

// loadConfig loads the config file, applies flag overrides and validates
// the result. It also reports where the file values came from.
func (g *globalFlags) loadConfig(cmd *cobra.Command) (config.SnakeConfig, string, error) {
	cfg, source, err := config.Load(g.configPath)
	if err != nil {
		return cfg, "", err
	}
	cfg.Apply(g.overrides(cmd))
	if err := cfg.Validate(); err != nil {
		return cfg, "", err
	}
	return cfg, source, nil
}
