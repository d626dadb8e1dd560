package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/naka-gawa/github-stats-dashboard/internal/render"
	"github.com/naka-gawa/github-stats-dashboard/internal/ui"
	"github.com/naka-gawa/github-stats-dashboard/internal/usecase"
	"github.com/spf13/cobra"
)

// errNotLoaded is returned when the rendered state is not Loaded, so the
// process exits non-zero after the error view has been written.
var errNotLoaded = errors.New("stats document not loaded")

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Renders the dashboard to stdout",
	Long: `Loads the stats document and writes the dashboard to stdout as a styled
terminal report, markdown, a standalone HTML page or JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		log := newLogger(cfg)

		r, err := render.New(cfg.Format, cfg.LinkHost)
		if err != nil {
			return err
		}
		page, err := newPage(cfg, log)
		if err != nil {
			return fmt.Errorf("failed to create stats fetcher: %w", err)
		}

		state := loadWithProgress(cmd.Context(), page, cfg.Source, cmd.ErrOrStderr())
		if err := r.Render(cmd.Context(), cmd.OutOrStdout(), state); err != nil {
			return fmt.Errorf("failed to render dashboard: %w", err)
		}
		if _, ok := state.(usecase.Loaded); !ok {
			return errNotLoaded
		}
		return nil
	},
}

// loadWithProgress settles page, showing a spinner when stderr is a terminal
// and a plain status line otherwise.
func loadWithProgress(ctx context.Context, page *usecase.Page, source string, stderr io.Writer) usecase.State {
	if stderr != os.Stderr || !ui.IsTTY() {
		status := ui.NewPlainStatus(func(msg string) {
			fmt.Fprintln(stderr, msg)
		})
		status.Start(source)
		state := page.Load(ctx)
		status.Done(state.Name(), failedReason(state))
		return state
	}

	p := ui.RunSpinner(source)
	go func() {
		state := page.Load(ctx)
		p.Send(ui.DoneMsg{State: state.Name(), Reason: failedReason(state)})
	}()
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(stderr, "Spinner error: %v\n", err)
	}
	return page.Load(ctx)
}

func failedReason(state usecase.State) string {
	if f, ok := state.(usecase.Failed); ok {
		return f.Reason
	}
	return ""
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringP("format", "f", render.FormatTerminal, "Output format: "+strings.Join(render.Formats, ", "))
}
