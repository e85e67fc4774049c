// falldown is a terminal Falldown game with a persistent settings screen.
//
// Usage:
//
//	falldown                       - Play (same as 'falldown play')
//	falldown play                  - Play; Tab opens the settings screen
//	falldown settings              - Show the current settings
//	falldown settings toggle [row] - Toggle a settings row
//	falldown scores                - Show high scores
//	falldown scores submit         - Submit the best score online
//	falldown serve                 - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>      - Set tick rate (default: 60)
//	--seed <value>    - Set RNG seed for reproducible gameplay
//	--db <path>       - Set database path (default: ~/.falldown/falldown.db)
//	--config <path>   - Custom game config YAML
//	--difficulty <p>  - Difficulty preset: easy, normal, hard, fixed
//	--log-file <path> - Log file for the game (default: ~/.falldown/falldown.log)
//
// FALLDOWN_DB, FALLDOWN_FPS and FALLDOWN_LOG, read from the environment or
// a .env file, replace the defaults of --db, --fps and --log-file.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "falldown",
	Short: "Falldown - drop the ball through the rising lines",
	Long: `Falldown is a terminal game: a ball falls through the gaps of lines
that keep rising. Steer with the arrow keys, or turn on accelerometer
control in the settings screen (Tab) and steer with the mouse.

Available commands:
  play      - Play the game (default)
  settings  - Show or toggle settings without starting the game
  scores    - View high scores
  serve     - Start SSH server for remote play

Examples:
  falldown
  falldown settings toggle
  falldown scores
  falldown serve --ssh :2222`,
	Args:              cobra.NoArgs,
	PersistentPreRunE: applyEnv,
	Run:               runPlay,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.falldown/falldown.db", "Path to settings and scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.falldown/falldown.log", "Log file used while the game is on screen")

	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// applyEnv loads .env and lets environment variables replace flag
// defaults. Flags given on the command line always win.
func applyEnv(cmd *cobra.Command, _ []string) error {
	// A missing .env is normal
	_ = godotenv.Load()

	flags := cmd.Flags()
	if v := os.Getenv("FALLDOWN_DB"); v != "" && !flags.Changed("db") {
		flagDBPath = v
	}
	if v := os.Getenv("FALLDOWN_LOG"); v != "" && !flags.Changed("log-file") {
		flagLogFile = v
	}
	if v := os.Getenv("FALLDOWN_FPS"); v != "" && !flags.Changed("fps") {
		fps, err := strconv.Atoi(v)
		if err != nil || fps <= 0 {
			return fmt.Errorf("invalid FALLDOWN_FPS %q", v)
		}
		flagFPS = fps
	}
	return nil
}
