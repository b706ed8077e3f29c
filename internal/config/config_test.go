package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lox/specker/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	classic := cfg.Game(DefaultGameName)
	require.NotNil(t, classic)

	state, players, err := classic.Build()
	require.NoError(t, err)
	assert.Equal(t, []int{10, 20, 17}, state.Snapshot().Values())

	names := make([]string, len(players))
	kinds := make([]game.Kind, len(players))
	for i, p := range players {
		names[i] = p.Name()
		kinds[i] = p.Kind()
	}
	assert.Equal(t, []string{"Tom", "Mary", "Alan", "Robin"}, names)
	assert.Equal(t, []game.Kind{game.Sneaky, game.Spartan, game.Greedy, game.Righteous}, kinds)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "specker.hcl")
	src := `
log_level = "debug"

game "duel" {
  heaps = [3, 4]
  player "Ann" { strategy = "greedy" }
  player "Bob" { strategy = "Righteous" }
}
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	require.Len(t, cfg.Games, 1)

	duel := cfg.Game("duel")
	require.NotNil(t, duel)
	assert.Equal(t, []int{3, 4}, duel.Heaps)
	assert.Equal(t, []PlayerConfig{{"Ann", "greedy"}, {"Bob", "Righteous"}}, duel.Players)

	// Simulation block defaults to the first game
	require.NotNil(t, cfg.Simulation)
	assert.Equal(t, "duel", cfg.Simulation.Game)
	assert.Equal(t, 1000, cfg.Simulation.Games)
	require.NotNil(t, cfg.Simulation.RotateSeats)
	assert.True(t, *cfg.Simulation.RotateSeats)
}

func TestParse_Simulation(t *testing.T) {
	src := `
game "classic" {
  heaps = [10, 20, 17]
  player "Tom"  { strategy = "sneaky" }
  player "Mary" { strategy = "spartan" }
}

simulation {
  games        = 250
  seed         = 42
  workers      = 4
  min_heaps    = 3
  max_heaps    = 6
  max_coins    = 40
  fixed_heaps  = true
  rotate_seats = false
}
`
	cfg, err := Parse([]byte(src), "sim.hcl")
	require.NoError(t, err)

	sim := cfg.Simulation
	assert.Equal(t, "classic", sim.Game)
	assert.Equal(t, 250, sim.Games)
	assert.Equal(t, int64(42), sim.Seed)
	assert.Equal(t, 4, sim.Workers)
	assert.Equal(t, 3, sim.MinHeaps)
	assert.Equal(t, 6, sim.MaxHeaps)
	assert.Equal(t, 40, sim.MaxCoins)
	assert.True(t, sim.FixedHeaps)
	require.NotNil(t, sim.RotateSeats)
	assert.False(t, *sim.RotateSeats)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		invalid bool // fails validation rather than decoding
	}{
		{
			name: "syntax error",
			src:  `game "x" {`,
		},
		{
			name: "missing heaps",
			src: `
game "x" {
  player "A" { strategy = "greedy" }
}`,
		},
		{
			name: "unknown strategy",
			src: `
game "x" {
  heaps = [1]
  player "A" { strategy = "lucky" }
}`,
			invalid: true,
		},
		{
			name: "negative heap",
			src: `
game "x" {
  heaps = [1, -2]
  player "A" { strategy = "greedy" }
}`,
			invalid: true,
		},
		{
			name: "empty heaps",
			src: `
game "x" {
  heaps = [0, 0]
  player "A" { strategy = "greedy" }
}`,
			invalid: true,
		},
		{
			name:    "no players",
			src:     `game "x" { heaps = [1] }`,
			invalid: true,
		},
		{
			name: "duplicate game",
			src: `
game "x" {
  heaps = [1]
  player "A" { strategy = "greedy" }
}
game "x" {
  heaps = [2]
  player "B" { strategy = "greedy" }
}`,
			invalid: true,
		},
		{
			name: "duplicate player",
			src: `
game "x" {
  heaps = [10, 20, 17]
  player "Tom" { strategy = "greedy" }
  player "Tom" { strategy = "sneaky" }
}`,
			invalid: true,
		},
		{
			name:    "bad log level",
			src:     `log_level = "loud"`,
			invalid: true,
		},
		{
			name:    "unknown simulation game",
			src:     `simulation { game = "nope" }`,
			invalid: true,
		},
		{
			name: "inverted heap range",
			src: `
simulation {
  min_heaps = 5
  max_heaps = 2
}`,
			invalid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), "test.hcl")
			require.Error(t, err)
			if tt.invalid {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			}
		})
	}
}

func TestGameConfig_RejectsDuplicatePlayers(t *testing.T) {
	gc := GameConfig{
		Name:  "dup",
		Heaps: []int{10, 20, 17},
		Players: []PlayerConfig{
			{Name: "Tom", Strategy: "greedy"},
			{Name: "Mary", Strategy: "spartan"},
			{Name: "Tom", Strategy: "sneaky"},
		},
	}
	_, _, err := gc.Build()
	require.ErrorIs(t, err, game.ErrInvalidSetup)
	assert.Contains(t, err.Error(), `"Tom"`)

	gc.Players[2].Name = "Alan"
	_, players, err := gc.Build()
	require.NoError(t, err)
	assert.Len(t, players, 3)
}

func TestGameConfig_Setup(t *testing.T) {
	setup, err := Default().Game(DefaultGameName).Setup()
	require.NoError(t, err)

	engine, err := setup.Engine()
	require.NoError(t, err)
	result, err := engine.Run()
	require.NoError(t, err)
	assert.Equal(t, "Tom", result.Winner.Name())
	assert.Equal(t, 5, result.Turns)
}

func TestParsePlayer(t *testing.T) {
	pc, err := ParsePlayer(" Tom = Sneaky ")
	require.NoError(t, err)
	assert.Equal(t, PlayerConfig{Name: "Tom", Strategy: "Sneaky"}, pc)

	p, err := pc.Player()
	require.NoError(t, err)
	assert.Equal(t, "Tom", p.Name())
	assert.Equal(t, game.Sneaky, p.Kind())

	for _, bad := range []string{"Tom", "=greedy", "Tom=", "Tom=lucky"} {
		_, err := ParsePlayer(bad)
		assert.ErrorIs(t, err, ErrInvalidConfig, bad)
	}
}
