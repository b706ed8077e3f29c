// Package config loads game and simulation setups from HCL files.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/specker/internal/game"
)

// ErrInvalidConfig is returned when a configuration fails validation.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config represents the complete configuration file
type Config struct {
	LogLevel   string            `hcl:"log_level,optional"`
	Games      []GameConfig      `hcl:"game,block"`
	Simulation *SimulationConfig `hcl:"simulation,block"`
}

// GameConfig defines the starting heaps and seating order of one game
type GameConfig struct {
	Name    string         `hcl:"name,label"`
	Heaps   []int          `hcl:"heaps"`
	Players []PlayerConfig `hcl:"player,block"`
}

// PlayerConfig defines a seated player
type PlayerConfig struct {
	Name     string `hcl:"name,label"`
	Strategy string `hcl:"strategy"`
}

// SimulationConfig controls batch simulations
type SimulationConfig struct {
	Game        string `hcl:"game,optional"`
	Games       int    `hcl:"games,optional"`
	Seed        int64  `hcl:"seed,optional"`
	Workers     int    `hcl:"workers,optional"`
	MinHeaps    int    `hcl:"min_heaps,optional"`
	MaxHeaps    int    `hcl:"max_heaps,optional"`
	MaxCoins    int    `hcl:"max_coins,optional"`
	FixedHeaps  bool   `hcl:"fixed_heaps,optional"`
	RotateSeats *bool  `hcl:"rotate_seats,optional"`
}

// DefaultGameName is the game used when none is selected
const DefaultGameName = "classic"

// Default returns the built-in configuration: the classic four-player game
// on heaps of 10, 20 and 17 coins.
func Default() *Config {
	rotate := true
	return &Config{
		LogLevel: "info",
		Games: []GameConfig{
			{
				Name:  DefaultGameName,
				Heaps: []int{10, 20, 17},
				Players: []PlayerConfig{
					{Name: "Tom", Strategy: "sneaky"},
					{Name: "Mary", Strategy: "spartan"},
					{Name: "Alan", Strategy: "greedy"},
					{Name: "Robin", Strategy: "righteous"},
				},
			},
		},
		Simulation: &SimulationConfig{
			Game:        DefaultGameName,
			Games:       1000,
			MinHeaps:    2,
			MaxHeaps:    5,
			MaxCoins:    30,
			RotateSeats: &rotate,
		},
	}
}

// Load loads configuration from an HCL file. A missing file yields the
// default configuration.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source, applies defaults for missing values and
// validates the result. The filename is only used in diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) applyDefaults() {
	defaults := Default()

	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}
	if len(c.Games) == 0 {
		c.Games = defaults.Games
	}

	if c.Simulation == nil {
		c.Simulation = &SimulationConfig{}
	}
	sim := c.Simulation
	if sim.Game == "" {
		sim.Game = c.Games[0].Name
	}
	if sim.Games == 0 {
		sim.Games = defaults.Simulation.Games
	}
	if sim.MinHeaps == 0 {
		sim.MinHeaps = defaults.Simulation.MinHeaps
	}
	if sim.MaxHeaps == 0 {
		sim.MaxHeaps = max(defaults.Simulation.MaxHeaps, sim.MinHeaps)
	}
	if sim.MaxCoins == 0 {
		sim.MaxCoins = defaults.Simulation.MaxCoins
	}
	if sim.RotateSeats == nil {
		rotate := true
		sim.RotateSeats = &rotate
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: invalid log level %q", ErrInvalidConfig, c.LogLevel)
	}

	if len(c.Games) == 0 {
		return fmt.Errorf("%w: at least one game must be configured", ErrInvalidConfig)
	}

	seen := make(map[string]bool)
	for _, g := range c.Games {
		if seen[g.Name] {
			return fmt.Errorf("%w: game %q defined more than once", ErrInvalidConfig, g.Name)
		}
		seen[g.Name] = true
		if _, _, err := g.Build(); err != nil {
			return fmt.Errorf("%w: game %q: %w", ErrInvalidConfig, g.Name, err)
		}
	}

	if sim := c.Simulation; sim != nil {
		if sim.Game != "" && c.Game(sim.Game) == nil {
			return fmt.Errorf("%w: simulation references unknown game %q", ErrInvalidConfig, sim.Game)
		}
		if sim.Games < 0 {
			return fmt.Errorf("%w: simulation games must not be negative", ErrInvalidConfig)
		}
		if sim.Workers < 0 {
			return fmt.Errorf("%w: simulation workers must not be negative", ErrInvalidConfig)
		}
		if sim.MinHeaps < 0 || sim.MaxHeaps < sim.MinHeaps {
			return fmt.Errorf("%w: simulation heap range [%d, %d] is invalid", ErrInvalidConfig, sim.MinHeaps, sim.MaxHeaps)
		}
		if sim.MaxCoins < 0 {
			return fmt.Errorf("%w: simulation max_coins must not be negative", ErrInvalidConfig)
		}
	}

	return nil
}

// Game returns a game configuration by name, or nil if there is none
func (c *Config) Game(name string) *GameConfig {
	for i := range c.Games {
		if c.Games[i].Name == name {
			return &c.Games[i]
		}
	}
	return nil
}

// Setup declares the configured heaps and players on a game.Setup. Player
// names must be unique; results are tallied by name.
func (g GameConfig) Setup() (*game.Setup, error) {
	if len(g.Players) == 0 {
		return nil, fmt.Errorf("%w: no players", game.ErrInvalidSetup)
	}
	setup, err := game.NewSetup(len(g.Heaps), len(g.Players))
	if err != nil {
		return nil, err
	}

	coins := 0
	for _, c := range g.Heaps {
		if err := setup.AddHeap(c); err != nil {
			return nil, err
		}
		coins += c
	}
	if coins == 0 {
		return nil, fmt.Errorf("%w: heaps hold no coins", game.ErrInvalidSetup)
	}

	seen := make(map[string]bool, len(g.Players))
	for _, pc := range g.Players {
		if seen[pc.Name] {
			return nil, fmt.Errorf("%w: player %q is seated more than once", game.ErrInvalidSetup, pc.Name)
		}
		seen[pc.Name] = true

		p, err := pc.Player()
		if err != nil {
			return nil, err
		}
		if err := setup.AddPlayer(p); err != nil {
			return nil, err
		}
	}
	return setup, nil
}

// Build turns the configuration into a starting state and seating order
func (g GameConfig) Build() (*game.State, []game.Player, error) {
	setup, err := g.Setup()
	if err != nil {
		return nil, nil, err
	}
	return setup.Build()
}

// Player converts the configuration into a game player
func (p PlayerConfig) Player() (game.Player, error) {
	kind, err := game.ParseKind(p.Strategy)
	if err != nil {
		return game.Player{}, fmt.Errorf("player %s: %w", p.Name, err)
	}
	return game.NewPlayer(p.Name, kind)
}

// ParsePlayer parses a NAME=STRATEGY pair as given on the command line
func ParsePlayer(s string) (PlayerConfig, error) {
	name, strategy, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	strategy = strings.TrimSpace(strategy)
	if !ok || name == "" || strategy == "" {
		return PlayerConfig{}, fmt.Errorf("%w: player %q must be NAME=STRATEGY", ErrInvalidConfig, s)
	}
	if _, err := game.ParseKind(strategy); err != nil {
		return PlayerConfig{}, fmt.Errorf("%w: player %s: %w", ErrInvalidConfig, name, err)
	}
	return PlayerConfig{Name: name, Strategy: strategy}, nil
}
