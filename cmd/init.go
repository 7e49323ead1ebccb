package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/showcase/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize showcase configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the portfolio site and writes the config file (default .showcase.yml).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
