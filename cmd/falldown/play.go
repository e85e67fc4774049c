package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/falldown/internal/config"
	"github.com/vovakirdan/falldown/internal/core"
	"github.com/vovakirdan/falldown/internal/platform/tui"
	"github.com/vovakirdan/falldown/internal/settings"
	"github.com/vovakirdan/falldown/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Falldown",
	Long: `Start playing Falldown.

Controls:
  Left/Right, A/D  - Roll the ball (button control)
  Mouse            - Tilt the ball (accelerometer control)
  Tab              - Open/close the settings screen
  Up/Down, Enter   - Move and toggle in the settings screen
  Esc/B            - Leave the settings screen
  P                - Pause
  R                - Restart (after game over)
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  falldown play
  falldown play --difficulty hard
  falldown play --config ./my-falldown.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	logger, logCloser, err := newFileLogger(flagLogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, logging disabled\n", err)
		logger = log.New(io.Discard)
		logCloser = io.NopCloser(nil)
	}
	defer logCloser.Close()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	gameCfg := loadGameConfig(logger)

	db, backend := openBackend(logger)

	// Load once at startup so the game steers the persisted way before
	// the settings screen is ever opened
	app := settings.NewApp(settings.NewStore(backend, logger.WithPrefix("settings")))
	app.Store.InitSettings()

	runErr := tui.Run(app, db, cfg, gameCfg, logger)
	app.Close()

	// Close store before potential exit
	if db != nil {
		db.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// openBackend opens the database. When it can't be opened the game still
// runs, with settings kept in memory and no score history.
func openBackend(logger *log.Logger) (*storage.Store, settings.Backend) {
	db, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open database, settings will not persist", "path", flagDBPath, "error", err)
		return nil, storage.NewMemory()
	}
	return db, db
}

// loadGameConfig reads the game tunables once per process and applies the
// --difficulty preset. A broken config file falls back to the defaults.
func loadGameConfig(logger *log.Logger) config.FalldownConfig {
	cfg, err := config.LoadFalldown(flagConfig)
	if err != nil {
		logger.Warn("could not load game config, using defaults", "path", flagConfig, "error", err)
		cfg = config.DefaultFalldownConfig()
	}
	config.ApplyPreset(&cfg, config.ParsePreset(flagDifficulty))
	return cfg
}
