package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/whiterosearts/petalsite/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize petalsite configuration with an interactive wizard",
	Long:  `Runs an interactive wizard that writes a .petalsite.yml config and a starter content file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := config.RunWizard(cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Run `petalsite build` to generate the site.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
