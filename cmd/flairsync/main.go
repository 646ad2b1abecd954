// flairsync keeps local copies of the flair sprite sheet and its metadata in
// step with the game site.
//
// Usage:
//
//	flairsync                  - same as "flairsync offsets"
//	flairsync offsets          - write flair offsets and descriptions
//	flairsync colors           - write per-cell palette colors
//	flairsync palette <file>   - render the classification palette to a PNG
//
// Global flags:
//
//	--config <path>  - YAML file overriding the built-in settings
//	--verbose        - log at debug level
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/setanarut/flairsync"
	"github.com/setanarut/flairsync/config"
	"github.com/setanarut/flairsync/fetch"
	"github.com/setanarut/flairsync/pipeline"
)

var (
	flagConfig  string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flairsync",
	Short: "Sync the flair sprite sheet and its metadata",
	Long: `flairsync downloads the flair sprite sheet, compares it with the last
seen copy and, when new flairs were added, writes a 3x upscaled sheet
plus a JSON metadata file.

Examples:
  flairsync
  flairsync colors --config flairsync.yaml
  flairsync palette palette.png`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd.Context(), pipeline.ModeOffsets)
	},
}

var offsetsCmd = &cobra.Command{
	Use:   "offsets",
	Short: "Write flair names, sheet offsets and descriptions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd.Context(), pipeline.ModeOffsets)
	},
}

var colorsCmd = &cobra.Command{
	Use:   "colors",
	Short: "Write the dominant palette color of every sheet cell",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd.Context(), pipeline.ModeColors)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to YAML config (default: built-in settings)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log at debug level")

	rootCmd.AddCommand(offsetsCmd)
	rootCmd.AddCommand(colorsCmd)
	rootCmd.AddCommand(paletteCmd)
}

func newLogger() *slog.Logger {
	handler := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "flairsync",
	})
	if flagVerbose {
		handler.SetLevel(log.DebugLevel)
	}
	return slog.New(handler)
}

func run(ctx context.Context, mode pipeline.Mode) error {
	logger := newLogger()
	slog.SetDefault(logger)

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return flairsync.Wrap(err, flairsync.KindConfig, "load config")
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := fetch.New(cfg.Timeout, cfg.UserAgent)
	report, err := pipeline.New(cfg, client, logger).Run(ctx, mode)
	if err != nil {
		return err
	}
	logger.Debug("run complete", "state", report.State, "records", report.Records)
	return nil
}
