package cmd

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/go-drift/controls/cmd/controls/internal/config"
	"github.com/go-drift/controls/internal/logging"
	"github.com/go-drift/controls/pkg/tui"
)

func init() {
	RegisterCommand(&Command{
		Name:  "run",
		Short: "Open a markup file in the terminal",
		Long: `Load a YAML control tree and drive it in an interactive terminal
session. Tab moves between controls, arrows and Enter operate them, and the
mouse drags sliders.

Logging is configured by controls.yaml in the config directory:

  log:
    level: debug        # or set CONTROLS_LOG_LEVEL
    file: controls.log
  tui:
    alt_screen: true
    mouse: true`,
		Usage: "controls run <file.yaml>",
		Run:   runRun,
	})
}

func runRun(args []string) error {
	path, err := requireFile(args, "controls run <file.yaml>")
	if err != nil {
		return err
	}

	cfg, err := config.Resolve(configDir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logging.InitializeTo(cfg.LogLevel, cfg.LogFile); err != nil {
		return err
	}
	defer logging.Sync()

	l, err := load(path)
	if err != nil {
		return err
	}
	for _, e := range l.reported {
		logging.Warn("markup problem", zap.Error(e))
	}
	logging.Info("session start", zap.String("file", path), zap.Int("trees", len(l.trees)))

	return tui.Run(l.host, tui.ProgramOptions(cfg.AltScreen, cfg.Mouse)...)
}
