package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/review-fetch/internal/resolve"
	"github.com/pdiddy/review-fetch/pkg/types"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [url]",
	Short: "Extract forum and venue ids from a forum URL",
	Long: `Resolve runs the identifier extraction alone, without logging in: paste
a forum URL and it prints the forum id and, when the URL's referrer names
one, the venue id. Useful for checking what download will do.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().String("url", "", "forum URL (alternative to the positional argument)")
	resolveCmd.Flags().String("forum_id", "", "explicit forum id")
	resolveCmd.Flags().String("venue_id", "", "explicit venue id")
	resolveCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	rawURL, _ := cmd.Flags().GetString("url")
	if rawURL == "" && len(args) > 0 {
		rawURL = args[0]
	}
	forumID, _ := cmd.Flags().GetString("forum_id")
	venueID, _ := cmd.Flags().GetString("venue_id")

	res, err := resolve.Resolve(rawURL, forumID, venueID, types.ResolveConfig{
		VenuePattern: viper.GetString("venue.pattern"),
	})
	if err != nil {
		return err
	}

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	fmt.Printf("forum_id: %s\n", res.ForumID)
	if res.NeedsVenue() {
		fmt.Println("venue_id: (not in URL; download will auto-detect or needs --venue_id)")
	} else {
		fmt.Printf("venue_id: %s\n", res.VenueID)
	}
	return nil
}
