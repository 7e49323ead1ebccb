package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/showcase/internal/db"
	"github.com/ziadkadry99/showcase/internal/notify"
	"github.com/ziadkadry99/showcase/internal/server"
	"github.com/ziadkadry99/showcase/internal/session"
	"github.com/ziadkadry99/showcase/internal/site"
)

const (
	sessionPruneInterval = time.Hour
	sessionMaxAge        = 30 * 24 * time.Hour
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the portfolio with live filtering",
	Long: `Starts the portfolio server. Pages are rendered server-side and kept in sync
over a websocket; page number and scroll position are remembered per browser
session.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (overrides config)")
	serveCmd.Flags().Bool("open", false, "open the browser once the server is up")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Port = port
	}
	mode, err := portfolioMode(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cat, studies, err := loadData(ctx, cfg)
	if err != nil {
		return err
	}

	database, err := db.Open(cfg.DBPath())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	sessions := session.NewStore(database)
	notices := notify.NewCenter(cfg.ToastTTL())

	s, err := site.New(siteOptions(cfg, mode), cat, studies, sessions, notices)
	if err != nil {
		return err
	}

	srv := server.New(server.Config{
		Port:     cfg.Port,
		AllowAll: cfg.AllowAllOrigins,
	}, database)
	session.RegisterRoutes(srv.Router(), sessions)
	s.RegisterRoutes(srv.Router(), srv.Streams())

	go session.PruneLoop(ctx, sessions, sessionPruneInterval, sessionMaxAge, log.Printf)

	go func() {
		<-ctx.Done()
		fmt.Fprintln(os.Stderr, "\nShutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	url := fmt.Sprintf("http://localhost:%d", cfg.Port)
	fmt.Fprintf(os.Stderr, "showcase %s serving %s\n", Version, url)
	fmt.Fprintf(os.Stderr, "  Catalog: %s (%d items, %s mode)\n", cfg.CatalogFile, cat.Len(), mode)
	fmt.Fprintf(os.Stderr, "  Database: %s\n", database.Path())
	if !studies.Available() {
		fmt.Fprintf(os.Stderr, "  Case studies: unavailable\n")
	}

	if open, _ := cmd.Flags().GetBool("open"); open {
		go func() {
			time.Sleep(500 * time.Millisecond)
			site.OpenBrowser(url)
		}()
	}

	return srv.Start()
}
