package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/showcase/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the portfolio in the terminal",
	Long: `Opens an interactive terminal view of the portfolio with the same filters,
search, pagination and undo/redo as the web listing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		mode, err := portfolioMode(cfg)
		if err != nil {
			return err
		}
		cat, studies, err := loadData(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		return tui.Run(tui.New(cat, studies, tui.Options{
			Title:        cfg.Title,
			Mode:         mode,
			ItemsPerPage: cfg.ItemsPerPage,
			HistoryLimit: cfg.HistoryLimit,
			SearchDelay:  cfg.SearchDelay(),
			ToastTTL:     cfg.ToastTTL(),
		}))
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
