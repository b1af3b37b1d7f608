package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/san-kum/cardsearch/internal/config"
	"github.com/san-kum/cardsearch/internal/export"
	"github.com/san-kum/cardsearch/internal/logging"
	"github.com/san-kum/cardsearch/internal/server"
	"github.com/san-kum/cardsearch/internal/session"
	"github.com/san-kum/cardsearch/internal/viz"
)

var (
	configFile string
	logLevel   string
	logFormat  string

	cards     string
	target    int
	preset    string
	strict    bool
	numbering string

	tableMode  string
	theme      string
	plotHeight int
	plotSVG    string
	format     string
	outPath    string
	addr       string
	envFile    string
)

// main registers the commands and flags, starts the example replay when no
// subcommand is given and exits with status 1 if the command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:          "cardsearch",
		Short:        "step-by-step binary search over a deck of cards",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunReplay(session.New(), session.ExampleCards, session.ExampleTarget, theme)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", config.DefaultLogFormat, "log format (text, json)")
	rootCmd.Flags().StringVar(&theme, "theme", "cyberpunk", themeHelp())

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a search and print every step",
		RunE:  runSearch,
	}
	addInputFlags(runCmd)
	runCmd.Flags().StringVar(&tableMode, "table", "ascii", "table style (ascii, markdown)")

	replayCmd := &cobra.Command{
		Use:   "replay",
		Short: "replay a search interactively",
		RunE:  replaySearch,
	}
	addInputFlags(replayCmd)
	replayCmd.Flags().StringVar(&theme, "theme", "cyberpunk", themeHelp())

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "plot remaining cards per step",
		RunE:  plotSearch,
	}
	addInputFlags(plotCmd)
	plotCmd.Flags().IntVar(&plotHeight, "height", 10, "plot height in rows")
	plotCmd.Flags().StringVar(&plotSVG, "svg", "", "also write the remaining-cards curve as svg to this file")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "search for every card of the deck plus one miss",
		RunE:  sweepDeck,
	}
	addInputFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&tableMode, "table", "ascii", "table style (ascii, markdown)")

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "export a search as json, csv, yaml or svg",
		RunE:  exportSearch,
	}
	addInputFlags(exportCmd)
	exportCmd.Flags().StringVar(&format, "format", string(export.JSON), formatHelp())
	exportCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-14s target %-6d [%s]\n", name, p.Target, p.Cards)
			}
			return nil
		},
	}

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write the resolved configuration to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE:  saveConfig,
	}
	addInputFlags(configCmd)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the search over HTTP",
		RunE:  serve,
	}
	serveCmd.Flags().StringVar(&addr, "addr", config.DefaultAddr, "listen address")
	serveCmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file with CARDSEARCH_* overrides")

	rootCmd.AddCommand(runCmd, replayCmd, plotCmd, sweepCmd, exportCmd, presetsCmd, configCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func themeHelp() string {
	return "color theme (" + strings.Join(viz.ThemeNames(), ", ") + ")"
}

func formatHelp() string {
	names := make([]string, 0, len(export.Formats()))
	for _, f := range export.Formats() {
		names = append(names, string(f))
	}
	return "output format (" + strings.Join(names, ", ") + ")"
}

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&cards, "cards", config.DefaultCards, "comma separated ascending cards")
	cmd.Flags().IntVar(&target, "target", config.DefaultTarget, "card to search for")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().BoolVar(&strict, "strict", false, "reject malformed, non-positive and duplicate cards")
	cmd.Flags().StringVar(&numbering, "numbering", config.DefaultNumbering, "step numbering (legacy, sequential)")
}

func serve(cmd *cobra.Command, args []string) error {
	if err := config.LoadEnv(envFile); err != nil {
		return fmt.Errorf("load env: %w", err)
	}

	cfg, err := resolveConfig(cmd, (*config.Config).ApplyEnv)
	if err != nil {
		return err
	}
	if err := initLogging(cfg); err != nil {
		return err
	}

	srv, err := server.New(cfg, logging.New("server"))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.ListenAndServe(ctx)
}
