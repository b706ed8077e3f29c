package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lox/specker/internal/config"
	"github.com/lox/specker/internal/display"
	"github.com/lox/specker/internal/fileutil"
	"github.com/lox/specker/internal/simulator"
	"github.com/lox/specker/internal/statistics"
)

type SimulateCmd struct {
	Game     string `short:"g" help:"Game whose players take part (defaults to the simulation block's game)"`
	Games    *int   `short:"n" help:"Number of games to play (default: the configured count)"`
	Seed     *int64 `help:"Base seed; game i uses seed+i (default: the configured seed)"`
	Workers  *int   `short:"w" help:"Concurrent workers, 0 for GOMAXPROCS (default: the configured count)"`
	MinHeaps *int   `help:"Minimum number of heaps per game"`
	MaxHeaps *int   `help:"Maximum number of heaps per game"`
	MaxCoins *int   `help:"Maximum coins per heap"`
	Fixed    bool   `help:"Play every game on the configured game's heaps instead of random ones"`
	NoRotate bool   `help:"Keep the configured seating order instead of rotating it every game"`
	Format   string `short:"f" help:"Output format" enum:"text,json" default:"text"`
	Out      string `short:"o" help:"Write the report to a file instead of stdout" type:"path"`
	Progress bool   `help:"Show a progress bar on stderr"`
}

// simulationReport is the JSON form of a finished simulation
type simulationReport struct {
	Game    string             `json:"game"`
	Seed    int64              `json:"seed"`
	Fixed   bool               `json:"fixed_heaps"`
	Rotate  bool               `json:"rotate_seats"`
	Elapsed string             `json:"elapsed"`
	Summary statistics.Summary `json:"summary"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}

	simCfg, gameName, fixed, err := c.resolve(cfg)
	if err != nil {
		return err
	}

	setup := cfg.Game(gameName)
	if setup == nil {
		return fmt.Errorf("game %q is not configured", gameName)
	}
	_, players, err := setup.Build()
	if err != nil {
		return err
	}
	simCfg.Players = players
	simCfg.Logger = logger
	if fixed {
		simCfg.Heaps = setup.Heaps
	}
	if c.Progress {
		simCfg.Progress = newProgressMonitor(os.Stderr, g.NoColor).Update
	}

	sim, err := simulator.New(simCfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting simulation", "game", gameName, "games", simCfg.Games, "seed", simCfg.Seed)
	summary, err := sim.Run(ctx)
	if err != nil {
		return err
	}

	render := func(w io.Writer) error {
		if c.Format == "json" {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(simulationReport{
				Game:    gameName,
				Seed:    simCfg.Seed,
				Fixed:   len(simCfg.Heaps) > 0,
				Rotate:  simCfg.RotateSeats,
				Elapsed: summary.Elapsed.Round(time.Millisecond).String(),
				Summary: summary.Stats.Summary(),
			})
		}
		return display.WriteReport(w, display.Report{
			Title:   fmt.Sprintf("Simulation of %q, seed %d", gameName, simCfg.Seed),
			Stats:   summary.Stats,
			Elapsed: summary.Elapsed,
		}, display.Options{NoColor: g.NoColor || c.Out != ""})
	}

	if c.Out == "" {
		return render(os.Stdout)
	}
	if err := fileutil.WriteAtomic(c.Out, 0o644, render); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.Out, err)
	}
	logger.Info("Wrote report", "path", c.Out, "format", c.Format)
	return nil
}

// resolve merges the simulation block with command-line overrides. Flags win
// whenever they are given, including explicit zeros.
func (c *SimulateCmd) resolve(cfg *config.Config) (simulator.Config, string, bool, error) {
	base := config.Default().Simulation
	if cfg.Simulation != nil {
		base = cfg.Simulation
	}

	gameName := base.Game
	if c.Game != "" {
		gameName = c.Game
	}
	if gameName == "" {
		gameName = config.DefaultGameName
	}

	rotate := base.RotateSeats == nil || *base.RotateSeats
	simCfg := simulator.Config{
		Games:       pick(c.Games, base.Games),
		Seed:        pick(c.Seed, base.Seed),
		Workers:     pick(c.Workers, base.Workers),
		MinHeaps:    pick(c.MinHeaps, base.MinHeaps),
		MaxHeaps:    pick(c.MaxHeaps, base.MaxHeaps),
		MaxCoins:    pick(c.MaxCoins, base.MaxCoins),
		RotateSeats: rotate && !c.NoRotate,
	}
	if simCfg.MaxHeaps < simCfg.MinHeaps {
		return simCfg, "", false, fmt.Errorf("max heaps (%d) must not be below min heaps (%d)", simCfg.MaxHeaps, simCfg.MinHeaps)
	}
	return simCfg, gameName, c.Fixed || base.FixedHeaps, nil
}

func pick[T any](flag *T, configured T) T {
	if flag != nil {
		return *flag
	}
	return configured
}
