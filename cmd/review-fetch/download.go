// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/pdiddy/review-fetch/internal/fetch"
	"github.com/pdiddy/review-fetch/internal/openreview"
	"github.com/pdiddy/review-fetch/internal/report"
	"github.com/pdiddy/review-fetch/internal/resolve"
	"github.com/pdiddy/review-fetch/internal/secrets"
	"github.com/pdiddy/review-fetch/pkg/types"
)

const defaultUserAgent = "review-fetch/0.1"

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Fetch one submission's official reviews and save them",
	Long: `Download logs into OpenReview, locates the official reviews for one
submission, and writes reviews_<forum_id>.md and reviews_<forum_id>.txt
to the output directory. Zero published reviews still writes both files,
empty, and exits successfully; nothing is written when any step fails.

The password comes from <secrets.dir>/openreview-password when that file
exists, otherwise from an interactive prompt without echo. It is never
accepted as a flag.`,
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().String("email", "", "OpenReview login email (required)")
	downloadCmd.Flags().String("url", "", "forum URL copied from the browser")
	downloadCmd.Flags().String("forum_id", "", "explicit forum id (the id= parameter of the URL)")
	downloadCmd.Flags().String("venue_id", "", "explicit venue id (e.g. AAAI.org/2026/Conference)")
	downloadCmd.Flags().String("output-dir", "", "directory for output files (default reviews)")
	downloadCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	downloadCmd.Flags().String("baseurl", "", "OpenReview API base URL")
	downloadCmd.Flags().Bool("manifest", false, "also write a reviews_<forum_id>.yaml manifest")

	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	email, _ := cmd.Flags().GetString("email")
	if email == "" {
		return fmt.Errorf("provide --email (the OpenReview account to log in with)")
	}
	rawURL, _ := cmd.Flags().GetString("url")
	forumID, _ := cmd.Flags().GetString("forum_id")
	venueID, _ := cmd.Flags().GetString("venue_id")
	wantManifest, _ := cmd.Flags().GetBool("manifest")

	outputDir := stringFlagOrConfig(cmd, "output-dir", "output.dir")
	baseURL := stringFlagOrConfig(cmd, "baseurl", "api.baseurl")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = viper.GetDuration("api.timeout")
	}

	// Resolve identifiers before touching the network or the password
	// prompt: an unusable URL should fail immediately.
	res, err := resolve.Resolve(rawURL, forumID, venueID, types.ResolveConfig{
		VenuePattern: viper.GetString("venue.pattern"),
	})
	if err != nil {
		return err
	}

	password, err := obtainPassword(email)
	if err != nil {
		return err
	}

	apiCfg := types.APIConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: viper.GetString("api.user_agent"),
		},
		BaseURL: baseURL,
	}

	ctx := cmd.Context()
	client, err := openreview.Login(ctx, apiCfg, email, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "logged in as %s\n", client.User())

	if res.NeedsVenue() {
		venue, err := fetch.DetectVenue(ctx, client, res.ForumID)
		if err != nil {
			return err
		}
		res.VenueID = venue
		fmt.Fprintf(os.Stderr, "auto-detected venue %s\n", venue)
	}

	fetchCfg := types.FetchConfig{
		ReviewInvitation: viper.GetString("review.invitation"),
		BroadFallback:    viper.GetBool("review.broad_fallback"),
	}
	col, err := fetch.Reviews(ctx, client, res.ForumID, res.VenueID, fetchCfg, os.Stderr)
	if err != nil {
		return err
	}

	// Render everything in memory first: a failure above this point
	// leaves no files behind.
	markdown := report.Markdown(col)
	text := report.Text(col)

	outCfg := types.OutputConfig{Dir: outputDir, Manifest: wantManifest}
	paths, err := report.Write(outCfg, res.ForumID, markdown, text)
	if err != nil {
		return err
	}
	if outCfg.Manifest {
		manifestPath, err := report.WriteManifest(outCfg, col)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "manifest: %s\n", manifestPath)
	}

	fmt.Printf("Saved %d review(s) to %s and %s\n", col.Count(), paths.Markdown, paths.Text)
	return nil
}

// obtainPassword finds the OpenReview password: the secrets file first,
// then an interactive prompt. Never a flag, never echoed, never logged.
func obtainPassword(email string) (string, error) {
	dir := viper.GetString("secrets.dir")
	pw, err := secrets.Read(dir, secrets.PasswordFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	if pw != "" {
		return pw, nil
	}

	fmt.Fprintf(os.Stderr, "Enter OpenReview password for %s: ", email)
	if term.IsTerminal(int(os.Stdin.Fd())) {
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(raw), nil
	}

	// Piped stdin: read one line, visibly.
	fmt.Fprintln(os.Stderr, "(stdin is not a terminal; password input will not be hidden)")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
