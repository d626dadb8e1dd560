package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/naka-gawa/github-stats-dashboard/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the dashboard over HTTP",
	Long: `Serves the dashboard over HTTP. The stats document is fetched once in the
background; until it settles the page shows a loading view. When the listen
port is busy, the following ports are tried in turn.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		log := newLogger(cfg)

		page, err := newPage(cfg, log)
		if err != nil {
			return fmt.Errorf("failed to create stats fetcher: %w", err)
		}

		ln, err := server.Listen(cfg.Addr, cfg.Ports)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Serving dashboard on http://%s\n", ln.Addr())

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		app := server.New(page, cfg.LinkHost, log)
		return app.Run(ctx, ln)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Listen address")
}
