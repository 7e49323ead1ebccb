package cmd

import "github.com/spf13/cobra"

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "showcase",
	Short: "Filterable, paginated portfolio server",
	Long: `Showcase serves a portfolio listing with category filters, search,
load-more or numbered pagination and undo/redo of filter changes. The same
listing is available live over HTTP, in the terminal, or as a static export.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".showcase.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
