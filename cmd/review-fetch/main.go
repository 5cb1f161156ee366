// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the review-fetch CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/review-fetch/internal/fetch"
	"github.com/pdiddy/review-fetch/internal/openreview"
	"github.com/pdiddy/review-fetch/internal/report"
	"github.com/pdiddy/review-fetch/internal/resolve"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the review-fetch CLI.
var rootCmd = &cobra.Command{
	Use:   "review-fetch",
	Short: "Download OpenReview reviews as raw Markdown and plain text",
	Long: `review-fetch logs into OpenReview, finds the official reviews for one
submission, and saves them to local files. Review text is written exactly
as the reviewers typed it: LaTeX math, Markdown tables and HTML entities
survive byte for byte instead of being mangled by the site's renderer.

Paste the forum URL from your browser's address bar and the tool works
out the forum and venue ids; both can also be given explicitly with
--forum_id and --venue_id.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./review-fetch.yaml or ~/.config/review-fetch/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("review-fetch")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "review-fetch"))
		}
	}

	viper.SetEnvPrefix("REVIEW_FETCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("api.baseurl", openreview.DefaultBaseURL)
	viper.SetDefault("api.timeout", 30*time.Second)
	viper.SetDefault("api.user_agent", defaultUserAgent)
	viper.SetDefault("output.dir", report.DefaultDir)
	viper.SetDefault("venue.pattern", resolve.DefaultVenuePattern)
	viper.SetDefault("review.invitation", fetch.DefaultReviewInvitation)
	viper.SetDefault("review.broad_fallback", true)
	viper.SetDefault("secrets.dir", ".secrets")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// stringFlagOrConfig returns the flag value when set on the command
// line, otherwise the configured value for key.
func stringFlagOrConfig(cmd *cobra.Command, flag, key string) string {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetString(flag)
		return v
	}
	return viper.GetString(key)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
