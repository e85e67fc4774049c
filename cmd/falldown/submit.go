package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/falldown/internal/games/falldown"
	"github.com/vovakirdan/falldown/internal/highscore"
	"github.com/vovakirdan/falldown/internal/storage"
)

var (
	flagSubmitURL    string
	flagSubmitName   string
	flagSubmitToken  string
	flagSubmitSecret string
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit your best score to an online leaderboard",
	Long: `Send the best recorded score, with the control mode it was set with,
to an online leaderboard. The server hands out a nonce first; the score is
then posted with a MAC over name, score and nonce.

FALLDOWN_SUBMIT_URL, FALLDOWN_SUBMIT_SECRET and FALLDOWN_ACCOUNT_TOKEN,
read from the environment or a .env file, replace the defaults of --url,
--secret and --token.

Examples:
  falldown scores submit --url https://scores.example.com/falldown
  falldown scores submit --name ada`,
	Args: cobra.NoArgs,
	Run:  runSubmit,
}

func init() {
	submitCmd.Flags().StringVar(&flagSubmitURL, "url", "", "Leaderboard base URL (serves /nonce and /submit)")
	submitCmd.Flags().StringVar(&flagSubmitName, "name", os.Getenv("USER"), "Player name shown on the leaderboard")
	submitCmd.Flags().StringVar(&flagSubmitToken, "token", "", "Account token identifying the player")
	submitCmd.Flags().StringVar(&flagSubmitSecret, "secret", "", "Shared secret used to sign the score")

	scoresCmd.AddCommand(submitCmd)
}

func runSubmit(cmd *cobra.Command, _ []string) {
	flags := cmd.Flags()
	if v := os.Getenv("FALLDOWN_SUBMIT_URL"); v != "" && !flags.Changed("url") {
		flagSubmitURL = v
	}
	if v := os.Getenv("FALLDOWN_SUBMIT_SECRET"); v != "" && !flags.Changed("secret") {
		flagSubmitSecret = v
	}
	if v := os.Getenv("FALLDOWN_ACCOUNT_TOKEN"); v != "" && !flags.Changed("token") {
		flagSubmitToken = v
	}

	if flagSubmitURL == "" {
		fmt.Fprintln(os.Stderr, "Error: no leaderboard URL, pass --url or set FALLDOWN_SUBMIT_URL")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	best, err := store.TopScores(1)
	store.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}
	if len(best) == 0 {
		fmt.Println("No scores recorded yet, nothing to submit.")
		return
	}

	logger := newLogger().WithPrefix("highscore")
	client := highscore.NewClient(flagSubmitURL, flagSubmitSecret, flagSubmitToken, logger)

	res, err := client.Submit(cmd.Context(), highscore.Submission{
		Name:    flagSubmitName,
		Game:    falldown.GameID,
		Score:   best[0].Score,
		Control: best[0].Control,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error submitting score: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Submitted %d (%s) as %s\n", best[0].Score, best[0].Control, flagSubmitName)
	if res.Rank > 0 {
		fmt.Printf("Leaderboard rank: #%d\n", res.Rank)
	}
	if res.Message != "" {
		fmt.Println(res.Message)
	}
}
