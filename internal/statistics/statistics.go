// Package statistics aggregates the outcomes of many simulated games.
package statistics

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

// Participant identifies a seated player by name and strategy
type Participant struct {
	Name     string `json:"name"`
	Strategy string `json:"strategy"`
}

// GameResult represents the outcome of a single game
type GameResult struct {
	Seed         int64         // RNG seed the starting heaps were drawn from (for replay)
	Heaps        []int         // Starting heaps
	Participants []Participant // Seating order the game was played in
	Turns        int           // Moves played until the heaps were empty
	WinnerSeat   int           // Index into Participants of the last mover
}

// Winner returns the participant who made the last move
func (r GameResult) Winner() Participant {
	return r.Participants[r.WinnerSeat]
}

// InitialCoins returns the number of coins the game started with
func (r GameResult) InitialCoins() int {
	total := 0
	for _, h := range r.Heaps {
		total += h
	}
	return total
}

// Tally counts games played and won by one player, strategy or seat
type Tally struct {
	Games int `json:"games"`
	Wins  int `json:"wins"`
}

// WinRate returns the fraction of games won
func (t Tally) WinRate() float64 {
	if t.Games == 0 {
		return 0
	}
	return float64(t.Wins) / float64(t.Games)
}

// Statistics tracks win counts and game length across a simulation
type Statistics struct {
	Games     int
	SumTurns  float64
	SumTurns2 float64   // Sum of squares for variance calculation
	Values    []float64 // Turns per game for median/percentile calculation
	MinTurns  int
	MaxTurns  int
	SumCoins  int // Coins across all starting positions

	ByPlayer   map[string]*Tally
	ByStrategy map[string]*Tally
	BySeat     []Tally // Index is the seat; a player seated several times counts once per seat
}

// New returns empty statistics ready for Add
func New() *Statistics {
	return &Statistics{
		ByPlayer:   make(map[string]*Tally),
		ByStrategy: make(map[string]*Tally),
	}
}

// Add incorporates a new game result into the statistics
func (s *Statistics) Add(result GameResult) {
	if s.ByPlayer == nil {
		s.ByPlayer = make(map[string]*Tally)
	}
	if s.ByStrategy == nil {
		s.ByStrategy = make(map[string]*Tally)
	}

	turns := float64(result.Turns)
	if s.Games == 0 || result.Turns < s.MinTurns {
		s.MinTurns = result.Turns
	}
	if result.Turns > s.MaxTurns {
		s.MaxTurns = result.Turns
	}
	s.Games++
	s.SumTurns += turns
	s.SumTurns2 += turns * turns
	s.Values = append(s.Values, turns)
	s.SumCoins += result.InitialCoins()

	// A name or strategy held by several seats counts one game per game, not per seat
	names := make(map[string]bool)
	strategies := make(map[string]bool)
	for seat, p := range result.Participants {
		won := seat == result.WinnerSeat

		if !names[p.Name] {
			names[p.Name] = true
			tally(s.ByPlayer, p.Name).Games++
		}
		if won {
			tally(s.ByPlayer, p.Name).Wins++
		}

		if !strategies[p.Strategy] {
			strategies[p.Strategy] = true
			tally(s.ByStrategy, p.Strategy).Games++
		}
		if won {
			tally(s.ByStrategy, p.Strategy).Wins++
		}

		for len(s.BySeat) <= seat {
			s.BySeat = append(s.BySeat, Tally{})
		}
		s.BySeat[seat].Games++
		if won {
			s.BySeat[seat].Wins++
		}
	}
}

func tally(m map[string]*Tally, key string) *Tally {
	t, ok := m[key]
	if !ok {
		t = &Tally{}
		m[key] = t
	}
	return t
}

// Mean returns the average number of turns per game
func (s *Statistics) Mean() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.SumTurns / float64(s.Games)
}

// Variance returns the sample variance of game length
func (s *Statistics) Variance() float64 {
	if s.Games < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumTurns2 - float64(s.Games)*mean*mean) / float64(s.Games-1)
}

// StdDev returns the sample standard deviation of game length
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(math.Max(s.Variance(), 0))
}

// StdError returns the standard error of the mean game length
func (s *Statistics) StdError() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Games))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean game length
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median game length
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := slices.Clone(s.Values)
	slices.Sort(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the game length at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := slices.Clone(s.Values)
	slices.Sort(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Ranked is a tally with the key it was counted under
type Ranked struct {
	Key string `json:"key"`
	Tally
}

// Players returns player tallies ordered by wins, then name
func (s *Statistics) Players() []Ranked {
	return ranked(s.ByPlayer)
}

// Strategies returns strategy tallies ordered by wins, then name
func (s *Statistics) Strategies() []Ranked {
	return ranked(s.ByStrategy)
}

func ranked(m map[string]*Tally) []Ranked {
	out := make([]Ranked, 0, len(m))
	for key, t := range m {
		out = append(out, Ranked{Key: key, Tally: *t})
	}
	slices.SortFunc(out, func(a, b Ranked) int {
		if c := cmp.Compare(b.Wins, a.Wins); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
	return out
}

// Validate performs consistency checks on the aggregated data
func (s *Statistics) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", s.Games)
	}

	if len(s.Values) != s.Games {
		return fmt.Errorf("values array length (%d) does not match games count (%d)",
			len(s.Values), s.Games)
	}

	// Exactly one winner per game, whichever way the wins are grouped
	playerWins := 0
	for _, t := range s.ByPlayer {
		playerWins += t.Wins
		if t.Wins > t.Games {
			return fmt.Errorf("player wins (%d) exceed games played (%d)", t.Wins, t.Games)
		}
	}
	if playerWins != s.Games {
		return fmt.Errorf("player wins total (%d) does not match games count (%d)", playerWins, s.Games)
	}

	seatWins := 0
	for _, t := range s.BySeat {
		seatWins += t.Wins
	}
	if seatWins != s.Games {
		return fmt.Errorf("seat wins total (%d) does not match games count (%d)", seatWins, s.Games)
	}

	strategyWins := 0
	for _, t := range s.ByStrategy {
		strategyWins += t.Wins
		if t.Wins > t.Games {
			return fmt.Errorf("strategy wins (%d) exceed games played (%d)", t.Wins, t.Games)
		}
	}
	if strategyWins != s.Games {
		return fmt.Errorf("strategy wins total (%d) does not match games count (%d)", strategyWins, s.Games)
	}

	if s.MinTurns < 1 || s.MaxTurns < s.MinTurns {
		return fmt.Errorf("invalid turn range [%d, %d]", s.MinTurns, s.MaxTurns)
	}

	return nil
}

// Summary is a serialisable digest of the statistics
type Summary struct {
	Games       int        `json:"games"`
	MeanTurns   float64    `json:"mean_turns"`
	StdDevTurns float64    `json:"stddev_turns"`
	CI95        [2]float64 `json:"ci95_turns"`
	MedianTurns float64    `json:"median_turns"`
	P90Turns    float64    `json:"p90_turns"`
	MinTurns    int        `json:"min_turns"`
	MaxTurns    int        `json:"max_turns"`
	MeanCoins   float64    `json:"mean_coins"`
	Players     []Ranked   `json:"players"`
	Strategies  []Ranked   `json:"strategies"`
	Seats       []Tally    `json:"seats"`
}

// Summary returns the headline numbers in serialisable form
func (s *Statistics) Summary() Summary {
	lo, hi := s.ConfidenceInterval95()
	meanCoins := 0.0
	if s.Games > 0 {
		meanCoins = float64(s.SumCoins) / float64(s.Games)
	}
	return Summary{
		Games:       s.Games,
		MeanTurns:   s.Mean(),
		StdDevTurns: s.StdDev(),
		CI95:        [2]float64{lo, hi},
		MedianTurns: s.Median(),
		P90Turns:    s.Percentile(0.9),
		MinTurns:    s.MinTurns,
		MaxTurns:    s.MaxTurns,
		MeanCoins:   meanCoins,
		Players:     s.Players(),
		Strategies:  s.Strategies(),
		Seats:       slices.Clone(s.BySeat),
	}
}
