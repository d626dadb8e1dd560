// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"os"

	"github.com/naka-gawa/github-stats-dashboard/internal/config"
	"github.com/naka-gawa/github-stats-dashboard/internal/gateway"
	"github.com/naka-gawa/github-stats-dashboard/internal/logger"
	"github.com/naka-gawa/github-stats-dashboard/internal/usecase"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "github-stats-dashboard",
	Short: "A dashboard for pre-computed GitHub activity statistics.",
	Long: `github-stats-dashboard loads a pre-computed statistics document (data.json)
and presents it: summary totals, commit trend, repository ranking, highlights,
developer portrait and, for organisation reports, the contributor leaderboard.

The document can be a local file, an HTTP(S) URL or a file in a GitHub
repository (github://owner/repo/path/data.json@ref).`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: console or json (env LOG_FORMAT)")
	rootCmd.PersistentFlags().StringP("source", "s", "", "Stats document: path, http(s) URL or github://owner/repo/path[@ref] (env STATS_SOURCE, default data.json)")
	rootCmd.PersistentFlags().String("token", "", "GitHub token for github:// sources (env GITHUB_TOKEN)")
	rootCmd.PersistentFlags().String("link-host", "", "Host that profile and repository links point to (default https://github.com)")
}

// loadConfig reads the persistent flags of cmd, applies defaults and validates.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()
	verbose, _ := flags.GetBool("verbose")
	logFormat, _ := flags.GetString("log-format")
	source, _ := flags.GetString("source")
	token, _ := flags.GetString("token")
	linkHost, _ := flags.GetString("link-host")

	cfg := config.Config{
		Source:    source,
		Token:     token,
		LinkHost:  linkHost,
		LogFormat: logFormat,
		Verbose:   verbose,
	}
	if flags.Lookup("addr") != nil {
		cfg.Addr, _ = flags.GetString("addr")
	}
	if flags.Lookup("format") != nil {
		cfg.Format, _ = flags.GetString("format")
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// newLogger writes to stderr; below warn is dropped unless --verbose.
func newLogger(cfg config.Config) zerolog.Logger {
	return logger.New(logger.Options{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Verbose: cfg.Verbose,
	})
}

// newPage wires the fetcher for cfg.Source into a page controller.
func newPage(cfg config.Config, log zerolog.Logger) (*usecase.Page, error) {
	fetcher, err := gateway.NewFetcher(cfg.Source, cfg.Token, log)
	if err != nil {
		return nil, err
	}
	return usecase.NewPage(fetcher, log), nil
}
