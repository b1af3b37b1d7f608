package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/cardsearch/internal/config"
	"github.com/san-kum/cardsearch/internal/deck"
	"github.com/san-kum/cardsearch/internal/export"
	"github.com/san-kum/cardsearch/internal/logging"
	"github.com/san-kum/cardsearch/internal/metrics"
	"github.com/san-kum/cardsearch/internal/report"
	"github.com/san-kum/cardsearch/internal/search"
	"github.com/san-kum/cardsearch/internal/session"
	"github.com/san-kum/cardsearch/internal/viz"
)

// resolveConfig layers defaults, preset, config file, the given overlays and
// explicitly set flags, in that order. Overlays such as environment overrides
// therefore never beat a flag the user typed.
func resolveConfig(cmd *cobra.Command, overlays ...func(*config.Config) error) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	for _, overlay := range overlays {
		if err := overlay(cfg); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Lookup("cards") != nil {
		if flags.Changed("cards") {
			cfg.Cards = cards
		}
		if flags.Changed("target") {
			cfg.Target = target
		}
		if flags.Changed("strict") {
			cfg.Policy = deck.Lenient.String()
			if strict {
				cfg.Policy = deck.Strict.String()
			}
		}
		if flags.Changed("numbering") {
			cfg.Numbering = numbering
		}
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = logFormat
	}
	if flags.Changed("addr") {
		cfg.Server.Addr = addr
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func initLogging(cfg *config.Config) error {
	_, err := logging.Init(cfg.Log, nil)
	return err
}

// prepare resolves the configuration and runs the search it describes.
func prepare(cmd *cobra.Command) (*config.Config, *search.Run, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	if err := initLogging(cfg); err != nil {
		return nil, nil, err
	}

	d, err := cfg.GetDeck()
	if err != nil {
		return nil, nil, err
	}
	sim, err := cfg.NewSimulator()
	if err != nil {
		return nil, nil, err
	}

	run := metrics.Attach(sim).Run(d, cfg.Target)
	logging.New("cli").Debug("search complete",
		slog.Int("cards", d.Len()),
		slog.Int("target", cfg.Target),
		slog.Int("steps", len(run.Steps)),
	)
	return cfg, run, nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	mode, err := report.ParseMode(tableMode)
	if err != nil {
		return err
	}
	_, run, err := prepare(cmd)
	if err != nil {
		return err
	}

	fmt.Printf("cards: [%s]\n", run.Deck)
	fmt.Printf("target: %d\n\n", run.Target)
	fmt.Println(report.Steps(run.Steps, mode))
	fmt.Println()
	fmt.Println(report.Summary(run.Result(), run.Metrics, mode))
	fmt.Printf("\npath: %s\n", report.SearchPath(run.Result()))
	return nil
}

func replaySearch(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	policy, err := cfg.GetPolicy()
	if err != nil {
		return err
	}
	sim, err := cfg.NewSimulator()
	if err != nil {
		return err
	}

	sess := session.New(session.WithPolicy(policy), session.WithSimulator(metrics.Attach(sim)))
	return viz.RunReplay(sess, cfg.Cards, cfg.Target, theme)
}

func plotSearch(cmd *cobra.Command, args []string) error {
	_, run, err := prepare(cmd)
	if err != nil {
		return err
	}

	remaining := make([]float64, len(run.Steps))
	comparisons := make([]float64, len(run.Steps))
	for i, st := range run.Steps {
		remaining[i] = float64(len(st.Cards))
		comparisons[i] = float64(st.Comparisons)
	}

	res := run.Result()
	fmt.Printf("cards: %d\n", run.Deck.Len())
	fmt.Printf("target: %d\n", run.Target)
	fmt.Printf("steps: %d\n\n", len(run.Steps))

	series := []struct {
		data    []float64
		caption string
	}{
		{remaining, "remaining cards per step"},
		{comparisons, "comparisons per step"},
	}
	for _, s := range series {
		graph := asciigraph.Plot(s.data,
			asciigraph.Height(plotHeight),
			asciigraph.Width(60),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	fmt.Printf("path: %s\n", report.SearchPath(res))

	if plotSVG != "" {
		svg := export.RemainingToSVG(run, 800, 400, "#00ff88")
		if err := os.WriteFile(plotSVG, []byte(svg), 0644); err != nil {
			return fmt.Errorf("write svg: %w", err)
		}
		fmt.Printf("saved plot to %s\n", plotSVG)
	}
	return nil
}

// sweepDeck searches for every card of the deck and for one card past the
// end, each target on its own simulator.
func sweepDeck(cmd *cobra.Command, args []string) error {
	mode, err := report.ParseMode(tableMode)
	if err != nil {
		return err
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	d, err := cfg.GetDeck()
	if err != nil {
		return err
	}

	targets := d.Ints()
	miss := 1
	if d.Len() > 0 {
		miss = d[d.Len()-1] + 1
	}
	targets = append(targets, miss)

	rows := make([]report.SweepRow, len(targets))
	var g errgroup.Group
	g.SetLimit(8)
	for i, t := range targets {
		g.Go(func() error {
			sim, err := cfg.NewSimulator()
			if err != nil {
				return err
			}
			rows[i] = report.SweepRow{Target: t, Result: sim.Run(d, t).Result()}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Printf("cards: [%s]\n\n", d)
	fmt.Println(report.Sweep(rows, mode))
	return nil
}

func exportSearch(cmd *cobra.Command, args []string) error {
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	_, run, err := prepare(cmd)
	if err != nil {
		return err
	}

	if err := export.ToFile(outPath, f, run); err != nil {
		return fmt.Errorf("export %s: %w", f, err)
	}
	if outPath != "" && outPath != "-" {
		fmt.Printf("exported %d steps to %s (%s)\n", len(run.Steps), outPath, f)
	}
	return nil
}

func saveConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
	return nil
}
