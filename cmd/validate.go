package cmd

import (
	"fmt"

	"github.com/naka-gawa/github-stats-dashboard/internal/gateway"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Checks a stats document",
	Long: `Fetches and validates the stats document. Schema violations fail the
command; inconsistencies that do not prevent rendering are printed as warnings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		log := newLogger(cfg)

		fetcher, err := gateway.NewFetcher(cfg.Source, cfg.Token, log)
		if err != nil {
			return fmt.Errorf("failed to create stats fetcher: %w", err)
		}
		data, err := fetcher.FetchStats(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		warnings := data.Warnings()
		for _, w := range warnings {
			fmt.Fprintf(out, "warning: %s\n", w)
		}
		fmt.Fprintf(out, "%s: valid %s document (%d repos, %d timeline entries, %d arena entries, %d warnings)\n",
			cfg.Source, data.Meta.Mode, len(data.Repos), len(data.Timeline), len(data.Arena), len(warnings))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
