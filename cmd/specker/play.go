package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/lox/specker/internal/config"
	"github.com/lox/specker/internal/display"
	"github.com/lox/specker/internal/fileutil"
	"github.com/lox/specker/internal/game"
)

type PlayCmd struct {
	Game    string   `short:"g" help:"Game from the configuration file to play" default:"${default_game}"`
	Heaps   []int    `help:"Starting heaps, e.g. --heaps 10,20,17 (overrides the configured game)"`
	Player  []string `short:"p" sep:"none" help:"Seat a player as NAME=STRATEGY, repeatable (overrides the configured game)"`
	Format  string   `short:"f" help:"Output format" enum:"text,json" default:"text"`
	Out     string   `short:"o" help:"Write the transcript to a file instead of stdout" type:"path"`
	Header  bool     `help:"Print a header line describing the game"`
	Numbers bool     `help:"Number each turn in the transcript"`
	Totals  bool     `help:"Show the number of coins left after each turn"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}

	gc, err := c.setup(cfg)
	if err != nil {
		return err
	}
	setup, err := gc.Setup()
	if err != nil {
		return err
	}
	engine, err := setup.Engine(game.WithLogger(logger))
	if err != nil {
		return err
	}

	opts := game.FormattingOptions{ShowTurnNumbers: c.Numbers, ShowTotals: c.Totals}
	history := game.NewHistory(opts)
	engine.EventBus().Subscribe(history)

	// Stream the transcript while the game runs when it goes to the terminal
	var printer *display.Printer
	if c.Format == "text" && c.Out == "" {
		printer = display.NewPrinter(os.Stdout, display.Options{
			NoColor:    g.NoColor,
			Header:     c.Header,
			Formatting: opts,
		})
		engine.EventBus().Subscribe(printer)
	}

	result, err := engine.Run()
	if err != nil {
		return err
	}
	logger.Debug("Game over", "game_id", result.GameID, "winner", result.Winner.Name(), "turns", result.Turns)

	if printer != nil {
		return printer.Err()
	}

	render := func(w io.Writer) error {
		if c.Format == "json" {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(history)
		}
		return history.WriteTranscript(w)
	}

	if c.Out == "" {
		return render(os.Stdout)
	}
	if err := fileutil.WriteAtomic(c.Out, 0o644, render); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.Out, err)
	}
	logger.Info("Wrote transcript", "path", c.Out, "format", c.Format)
	return nil
}

// setup resolves the configured game and applies command-line overrides
func (c *PlayCmd) setup(cfg *config.Config) (config.GameConfig, error) {
	var setup config.GameConfig
	if gc := cfg.Game(c.Game); gc != nil {
		setup = *gc
	} else if len(c.Heaps) == 0 || len(c.Player) == 0 {
		return setup, fmt.Errorf("game %q is not configured", c.Game)
	}
	setup.Name = c.Game

	if len(c.Heaps) > 0 {
		setup.Heaps = c.Heaps
	}
	if len(c.Player) > 0 {
		setup.Players = make([]config.PlayerConfig, len(c.Player))
		for i, spec := range c.Player {
			pc, err := config.ParsePlayer(spec)
			if err != nil {
				return setup, err
			}
			setup.Players[i] = pc
		}
	}
	return setup, nil
}
