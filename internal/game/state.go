package game

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// State is the heap vector of a game in progress. It is mutated in place by
// Apply and owned by a single Engine; strategies only ever see a Snapshot.
type State struct {
	coins []int
}

// NewState creates a state with the given number of heaps. The coin vector
// must have exactly heaps entries, none of them negative.
func NewState(heaps int, coins []int) (*State, error) {
	if heaps <= 0 {
		return nil, fmt.Errorf("%w: heap count must be positive, got %d", ErrInvalidState, heaps)
	}
	if len(coins) != heaps {
		return nil, fmt.Errorf("%w: expected %d heaps, got %d coin values", ErrInvalidState, heaps, len(coins))
	}
	for i, c := range coins {
		if c < 0 {
			return nil, fmt.Errorf("%w: heap %d has negative coin count %d", ErrInvalidState, i, c)
		}
	}
	return &State{coins: slices.Clone(coins)}, nil
}

// Heaps returns the number of heaps.
func (s *State) Heaps() int { return len(s.coins) }

// Coins returns the number of coins on a heap.
func (s *State) Coins(heap int) (int, error) { return coinsAt(s.coins, heap) }

// Total returns the number of coins still in play.
func (s *State) Total() int { return total(s.coins) }

// IsTerminal reports whether every heap is empty, i.e. the last mover has won.
func (s *State) IsTerminal() bool { return terminal(s.coins) }

// Check validates a move against the current heaps without applying it.
func (s *State) Check(m Move) error { return checkMove(s.coins, m) }

// Apply validates and applies a move. An illegal move leaves the state untouched.
func (s *State) Apply(m Move) error {
	if err := checkMove(s.coins, m); err != nil {
		return err
	}
	s.coins[m.source] -= m.sourceCoins
	if m.targetCoins > 0 {
		s.coins[m.target] += m.targetCoins
	}
	return nil
}

// Snapshot returns an immutable copy of the heaps.
func (s *State) Snapshot() Snapshot {
	return Snapshot{coins: slices.Clone(s.coins)}
}

func (s *State) String() string { return formatCoins(s.coins) }

// Snapshot is a read-only copy of a State taken at one point in the game.
// Strategies decide from snapshots and events carry them, so nothing outside
// the engine can mutate the live heaps.
type Snapshot struct {
	coins []int
}

// Heaps returns the number of heaps.
func (s Snapshot) Heaps() int { return len(s.coins) }

// Coins returns the number of coins on a heap.
func (s Snapshot) Coins(heap int) (int, error) { return coinsAt(s.coins, heap) }

// Values returns a copy of the coin vector.
func (s Snapshot) Values() []int { return slices.Clone(s.coins) }

// Total returns the number of coins in play.
func (s Snapshot) Total() int { return total(s.coins) }

// IsTerminal reports whether every heap is empty.
func (s Snapshot) IsTerminal() bool { return terminal(s.coins) }

// Check validates a move against the snapshot.
func (s Snapshot) Check(m Move) error { return checkMove(s.coins, m) }

// String renders the heaps as a comma separated list, e.g. "10, 20, 17".
func (s Snapshot) String() string { return formatCoins(s.coins) }

// MarshalJSON encodes the snapshot as a plain array of coin counts.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	if s.coins == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.coins)
}

func checkMove(coins []int, m Move) error {
	heaps := len(coins)
	switch {
	case m.source < 0 || m.source >= heaps:
		return fmt.Errorf("%w: source heap %d out of range [0, %d)", ErrIllegalMove, m.source, heaps)
	case m.target < 0 || m.target >= heaps:
		return fmt.Errorf("%w: target heap %d out of range [0, %d)", ErrIllegalMove, m.target, heaps)
	case m.sourceCoins <= 0:
		return fmt.Errorf("%w: must take at least one coin, got %d", ErrIllegalMove, m.sourceCoins)
	case m.targetCoins < 0:
		return fmt.Errorf("%w: cannot put back a negative number of coins (%d)", ErrIllegalMove, m.targetCoins)
	case m.sourceCoins > coins[m.source]:
		return fmt.Errorf("%w: cannot take %d coins from heap %d holding %d",
			ErrIllegalMove, m.sourceCoins, m.source, coins[m.source])
	case m.targetCoins >= m.sourceCoins:
		return fmt.Errorf("%w: must put back fewer coins than taken (%d >= %d)",
			ErrIllegalMove, m.targetCoins, m.sourceCoins)
	}
	return nil
}

func coinsAt(coins []int, heap int) (int, error) {
	if heap < 0 || heap >= len(coins) {
		return 0, fmt.Errorf("%w: heap %d out of range [0, %d)", ErrInvalidHeap, heap, len(coins))
	}
	return coins[heap], nil
}

func total(coins []int) int {
	sum := 0
	for _, c := range coins {
		sum += c
	}
	return sum
}

func terminal(coins []int) bool {
	for _, c := range coins {
		if c != 0 {
			return false
		}
	}
	return true
}

func formatCoins(coins []int) string {
	parts := make([]string, len(coins))
	for i, c := range coins {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, ", ")
}
