package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

// playFlags are shared by "snake" and "snake play".
type playFlags struct {
	watch         bool
	logFile       string
	screenshotDir string
}

func (p *playFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&p.watch, "watch", false, "Reload the config file when it changes")
	cmd.Flags().StringVar(&p.logFile, "log-file", "", "Write logs to this file (default: no logs)")
	cmd.Flags().StringVar(&p.screenshotDir, "screenshot-dir", "", "Where ctrl+s saves screenshots (default: ~/.snake/screenshots)")
}

func newPlayCmd(g *globalFlags, p *playFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a round in the terminal",
		Long: `Start a round of snake.

Controls:
  Arrows/WASD  - Steer
  P/Esc        - Pause (the clock keeps running)
  R            - Restart (after game over)
  Ctrl+S       - Screenshot (text and PNG)
  Q/Ctrl+C     - Quit

With --watch, edits to the config file apply colors at once and
everything else from the next restart.

Examples:
  snake play
  snake play --fps 15 --duration 90
  snake play --config ./my-snake.yaml --watch --log-file snake.log`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlay(cmd, g, p)
		},
	}
	p.register(cmd)
	return cmd
}

func runPlay(cmd *cobra.Command, g *globalFlags, p *playFlags) error {
	cfg, source, err := g.loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, closeLog, err := openLogFile(p.logFile, g.logLevel)
	if err != nil {
		return err
	}
	defer closeLog()
	logger.Info("config loaded", "source", source)

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	game, err := registry.Create(snake.ID)
	if err != nil {
		return err
	}

	opts := tui.Options{
		Logger:        logger,
		Render:        cfg.Render,
		ScreenshotDir: p.screenshotDir,
	}

	if p.watch {
		if source == config.SourceEmbedded || source == config.SourceBuiltin {
			return errors.New("--watch needs a config file; pass --config or create ~/.snake/config.yaml")
		}
		watcher, err := config.Watch(source, g.overrides(cmd), logger)
		if err != nil {
			return err
		}
		defer watcher.Close()
		opts.Reloads = watcher.Updates()
		logger.Info("watching config", "path", source)
	}

	return tui.Run(game, cfg.Runtime(width, height), opts)
}
