// Package main implements the skillport CLI: converting AI-assistant
// workflow documents (skills, rules, custom instructions) between
// platforms.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"skillport/internal/config"
	"skillport/internal/logging"
)

var (
	// Global flags
	cfgPath string
	verbose bool

	// Loaded configuration, available to every subcommand.
	cfg *config.Config
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "skillport",
	Short: "skillport - convert assistant workflow documents between platforms",
	Long: `skillport converts workflow and instruction documents written for one
AI-assistant platform into equivalent documents for another.

It maps structured frontmatter between platform schemas and, more
importantly, rewrites platform-specific idioms in the document body
(sub-agent delegation, tool permissions, file scoping, ...) into the
closest equivalent the target platform supports, warning about
anything that degrades.

Supported platforms: claude, cursor, copilot.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := cfgPath
		if path == "" {
			path = config.DefaultPath()
		}
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return err
		}
		if verbose {
			cfg.Logging.Debug = true
		}
		return logging.Initialize(cfg.Logging)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default ~/.config/skillport/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(constructsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
