// Package simulator plays batches of seeded games between a fixed set of
// players and aggregates the outcomes.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/specker/internal/game"
	"github.com/lox/specker/internal/randutil"
	"github.com/lox/specker/internal/statistics"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidConfig is returned when a simulation cannot be started.
var ErrInvalidConfig = errors.New("simulator: invalid config")

// Config holds configuration for running simulations
type Config struct {
	Games    int
	Seed     int64
	Workers  int // Defaults to GOMAXPROCS
	Players  []game.Player
	Heaps    []int // Fixed starting heaps; when empty each game draws its own
	MinHeaps int
	MaxHeaps int
	MaxCoins int

	// RotateSeats shifts the seating order by one seat per game so every
	// player spends the same share of games in each seat.
	RotateSeats bool

	// Progress, when set, is called after each finished game with the
	// number of games done so far. It may be called concurrently.
	Progress func(done, total int)

	Logger *log.Logger
	Clock  quartz.Clock
}

// Summary is what a finished simulation produced
type Summary struct {
	Stats   *statistics.Statistics
	Results []statistics.GameResult // Ordered by game index
	Elapsed time.Duration
}

// Simulator runs batches of games
type Simulator struct {
	config     Config
	gameLogger *log.Logger
}

// New creates a new simulator with the given configuration
func New(config Config) (*Simulator, error) {
	if config.Games <= 0 {
		return nil, fmt.Errorf("%w: games must be positive, got %d", ErrInvalidConfig, config.Games)
	}
	if len(config.Players) == 0 {
		return nil, fmt.Errorf("%w: at least one player is required", ErrInvalidConfig)
	}
	if len(config.Heaps) > 0 {
		if _, err := game.NewState(len(config.Heaps), config.Heaps); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}

	// Per-game engine logs only surface at debug level; at info a batch
	// would print one line per game.
	gameLogger := config.Logger.With()
	if level := gameLogger.GetLevel(); level > log.DebugLevel && level < log.WarnLevel {
		gameLogger.SetLevel(log.WarnLevel)
	}
	return &Simulator{config: config, gameLogger: gameLogger}, nil
}

// Run plays every game and returns the aggregated results. Games are
// independent, so they are spread across workers; the returned results are
// in game order regardless of which worker finished first.
func (s *Simulator) Run(ctx context.Context) (*Summary, error) {
	start := s.config.Clock.Now()
	results := make([]statistics.GameResult, s.config.Games)
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	for i := range s.config.Games {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result, err := s.PlayGame(i)
			if err != nil {
				return fmt.Errorf("game %d (seed %d): %w", i+1, result.Seed, err)
			}
			results[i] = result
			if s.config.Progress != nil {
				s.config.Progress(int(done.Add(1)), s.config.Games)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stats := statistics.New()
	for _, r := range results {
		stats.Add(r)
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	elapsed := s.config.Clock.Since(start)
	s.config.Logger.Info("Simulation complete",
		"games", stats.Games,
		"workers", s.config.Workers,
		"mean_turns", fmt.Sprintf("%.2f", stats.Mean()),
		"elapsed", elapsed)

	return &Summary{Stats: stats, Results: results, Elapsed: elapsed}, nil
}

// PlayGame plays the game with the given index. The game's seed is the
// configured seed plus the index, so any single game can be replayed.
func (s *Simulator) PlayGame(index int) (statistics.GameResult, error) {
	seed := s.config.Seed + int64(index)
	result := statistics.GameResult{Seed: seed}

	heaps := s.config.Heaps
	if len(heaps) == 0 {
		heaps = randutil.Heaps(randutil.New(seed), s.config.MinHeaps, s.config.MaxHeaps, s.config.MaxCoins)
	}
	result.Heaps = append([]int(nil), heaps...)

	players := s.seating(index)
	result.Participants = make([]statistics.Participant, len(players))
	for i, p := range players {
		result.Participants[i] = statistics.Participant{Name: p.Name(), Strategy: p.Kind().String()}
	}

	state, err := game.NewState(len(heaps), heaps)
	if err != nil {
		return result, err
	}
	engine, err := game.NewEngine(state, players,
		game.WithLogger(s.gameLogger),
		game.WithClock(s.config.Clock),
		game.WithGameID(fmt.Sprintf("sim-%d", seed)))
	if err != nil {
		return result, err
	}

	outcome, err := engine.Run()
	if err != nil {
		return result, err
	}

	result.Turns = outcome.Turns
	result.WinnerSeat = outcome.WinnerSeat
	s.config.Logger.Debug("Game finished",
		"seed", seed,
		"heaps", result.Heaps,
		"turns", outcome.Turns,
		"winner", outcome.Winner.Name())
	return result, nil
}

// seating returns the players in the order they sit for the given game.
func (s *Simulator) seating(index int) []game.Player {
	n := len(s.config.Players)
	players := make([]game.Player, n)
	shift := 0
	if s.config.RotateSeats {
		shift = index % n
	}
	for i := range players {
		players[i] = s.config.Players[(i+shift)%n]
	}
	return players
}
