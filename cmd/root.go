package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "petalsite",
	Short: "Static portfolio site generator with scroll-driven reveals",
	Long: `petalsite builds a single-artist portfolio site from one content file:
a landing page with the newest show, a scroll-revealed quote, petal maps
linking to sheet music excerpts, and a detail page per show. It also
serves a live preview and checks that remote media is reachable.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".petalsite.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
