package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/showcase/internal/progress"
	"github.com/ziadkadry99/showcase/internal/site"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the portfolio as a static site",
	Long: `Writes one HTML page per filter and page number, the site directory's assets
and a service worker that precaches them. The result needs no server beyond
static file hosting.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringP("output", "o", "dist", "output directory")
	exportCmd.Flags().Bool("open", false, "open the exported index in a browser")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
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

	s, err := site.New(siteOptions(cfg, mode), cat, studies, nil, nil)
	if err != nil {
		return err
	}

	outDir, _ := cmd.Flags().GetString("output")
	n, err := s.Export(outDir, progress.NewReporter("Exporting pages"))
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Exported %d pages to %s\n", n, outDir)

	if open, _ := cmd.Flags().GetBool("open"); open {
		if abs, err := filepath.Abs(filepath.Join(outDir, "index.html")); err == nil {
			site.OpenBrowser("file://" + filepath.ToSlash(abs))
		}
	}
	return nil
}
