package game

import (
	"fmt"
	"slices"
)

// Setup collects the heaps and players of a game whose size is declared up
// front. Once both are filled the setup can produce an engine; neither can
// grow past the declared size.
type Setup struct {
	heapCap   int
	playerCap int
	heaps     []int
	players   []Player
}

// NewSetup declares a game with the given number of heaps and players.
func NewSetup(heaps, players int) (*Setup, error) {
	if heaps <= 0 {
		return nil, fmt.Errorf("%w: heap count must be positive, got %d", ErrInvalidSetup, heaps)
	}
	if players <= 0 {
		return nil, fmt.Errorf("%w: player count must be positive, got %d", ErrInvalidSetup, players)
	}
	return &Setup{
		heapCap:   heaps,
		playerCap: players,
		heaps:     make([]int, 0, heaps),
		players:   make([]Player, 0, players),
	}, nil
}

// AddHeap appends the next heap.
func (s *Setup) AddHeap(coins int) error {
	if coins < 0 {
		return fmt.Errorf("%w: heap %d has negative coin count %d", ErrInvalidSetup, len(s.heaps), coins)
	}
	if len(s.heaps) >= s.heapCap {
		return fmt.Errorf("%w: all %d heaps already added", ErrInvalidSetup, s.heapCap)
	}
	s.heaps = append(s.heaps, coins)
	return nil
}

// AddPlayer seats the next player.
func (s *Setup) AddPlayer(p Player) error {
	if !p.valid() {
		return fmt.Errorf("%w: player at seat %d is not initialised", ErrInvalidSetup, len(s.players))
	}
	if len(s.players) >= s.playerCap {
		return fmt.Errorf("%w: all %d seats already taken", ErrInvalidSetup, s.playerCap)
	}
	s.players = append(s.players, p)
	return nil
}

// Build returns the starting state and seating order once every heap and
// seat is filled.
func (s *Setup) Build() (*State, []Player, error) {
	if len(s.heaps) != s.heapCap {
		return nil, nil, fmt.Errorf("%w: %d of %d heaps added", ErrInvalidSetup, len(s.heaps), s.heapCap)
	}
	if len(s.players) != s.playerCap {
		return nil, nil, fmt.Errorf("%w: %d of %d players added", ErrInvalidSetup, len(s.players), s.playerCap)
	}
	state, err := NewState(s.heapCap, s.heaps)
	if err != nil {
		return nil, nil, err
	}
	return state, slices.Clone(s.players), nil
}

// Engine builds the state and engine once every heap and seat is filled.
func (s *Setup) Engine(opts ...EngineOption) (*Engine, error) {
	state, players, err := s.Build()
	if err != nil {
		return nil, err
	}
	return NewEngine(state, players, opts...)
}
