package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/falldown/internal/settings"
	"github.com/vovakirdan/falldown/internal/storage"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show the current settings",
	Long: `Load the persisted settings and print every row as the settings
screen would show it.

Examples:
  falldown settings
  falldown settings toggle
  falldown settings toggle 0`,
	Args: cobra.NoArgs,
	Run:  runSettings,
}

var settingsToggleCmd = &cobra.Command{
	Use:   "toggle [row]",
	Short: "Toggle a settings row (default: row 0)",
	Args:  cobra.MaximumNArgs(1),
	Run:   runSettingsToggle,
}

func init() {
	settingsCmd.AddCommand(settingsToggleCmd)
}

// openSettings opens the database and loads the settings record.
func openSettings() (*storage.Store, *settings.Store) {
	db, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}

	store := settings.NewStore(db, newLogger().WithPrefix("settings"))
	store.InitSettings()
	return db, store
}

func runSettings(_ *cobra.Command, _ []string) {
	db, store := openSettings()
	defer db.Close()

	printRows(store.DisplaySettings())
}

func runSettingsToggle(_ *cobra.Command, args []string) {
	row := 0
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 || n >= settings.RowCount() {
			fmt.Fprintf(os.Stderr, "Error: no settings row %q\n", args[0])
			fmt.Fprintln(os.Stderr, "Run 'falldown settings' to see available rows.")
			os.Exit(1)
		}
		row = n
	}

	db, store := openSettings()
	defer db.Close()

	store.Select(row, nil)
	store.DeinitSettings()

	printRows(store.DisplaySettings())
}

func printRows(rows []settings.Row) {
	fmt.Printf("  %-4s  %-16s  %s\n", "Row", "Setting", "Value")
	fmt.Printf("  %-4s  %-16s  %s\n", "---", "-------", "-----")
	for i, row := range rows {
		fmt.Printf("  %-4d  %-16s  %s\n", i, row.Title, row.Subtitle)
	}
}
