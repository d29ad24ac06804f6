package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "tagforge",
	Short: "Tagforge - conditional snippet rendering engine",
	Long: `Tagforge renders third-party tracking and marketing snippets into page
positions based on visibility conditions.

It serves assembled output blocks over HTTP, providing:
  - Condition-tree targeting (page type, user, device, URL, schedule)
  - Built-in templates for common tracking services
  - Authoring-time code validation and sanitization
  - Output caching with coarse invalidation
  - Prometheus metrics`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
