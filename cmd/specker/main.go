package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/lox/specker/internal/config"
)

// version is set by ldflags during build
var version = "dev"

// Globals are the flags shared by every command
type Globals struct {
	Config   string `short:"c" help:"HCL configuration file (defaults apply when it does not exist)" default:"specker.hcl" type:"path"`
	LogLevel string `help:"Log level (debug|info|warn|error), overrides the configuration file"`
	NoColor  bool   `help:"Disable coloured output"`
}

type CLI struct {
	Globals

	Version    kong.VersionFlag `short:"v" help:"Show version"`
	Play       PlayCmd          `cmd:"" default:"withargs" help:"Play one game and print its transcript"`
	Simulate   SimulateCmd      `cmd:"" help:"Play a batch of seeded games and report win rates"`
	Strategies StrategiesCmd    `cmd:"" help:"List the available strategies"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("specker"),
		kong.Description("Plays Specker's coin game between strategy-driven players"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version":      version,
			"default_game": config.DefaultGameName,
		},
		kong.Bind(&cli.Globals),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// load reads the configuration file and builds a logger at the effective
// level. Logs go to stderr so stdout only carries transcripts and reports.
func (g *Globals) load() (*config.Config, *log.Logger, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, nil, err
	}

	levelName := cfg.LogLevel
	if g.LogLevel != "" {
		levelName = g.LogLevel
	}
	level, err := log.ParseLevel(strings.ToLower(levelName))
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", levelName, err)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "specker",
	})
	return cfg, logger, nil
}
