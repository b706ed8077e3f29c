package game

import (
	"fmt"
	"strings"
)

// Strategy decides a player's next move from a read-only view of the heaps.
// Implementations must be deterministic and must not keep the snapshot
// beyond the call.
type Strategy interface {
	Decide(s Snapshot) (Move, error)
}

// Kind enumerates the built-in strategies. The set is closed: every valid
// Kind is a Strategy and Decide switches over all of them.
type Kind int

const (
	// Greedy empties the largest heap.
	Greedy Kind = iota + 1
	// Spartan takes a single coin from the largest heap.
	Spartan
	// Sneaky empties the smallest non-empty heap.
	Sneaky
	// Righteous halves the largest heap and hands all but one of the taken
	// coins to the smallest non-empty heap.
	Righteous
)

var kindNames = map[Kind]string{
	Greedy:    "Greedy",
	Spartan:   "Spartan",
	Sneaky:    "Sneaky",
	Righteous: "Righteous",
}

var kindRules = map[Kind]string{
	Greedy:    "takes every coin from the largest heap",
	Spartan:   "takes one coin from the largest heap",
	Sneaky:    "takes every coin from the smallest non-empty heap",
	Righteous: "takes half (rounded up) of the largest heap and puts all but one of them on the smallest non-empty heap",
}

// Kinds returns every strategy kind in declaration order.
func Kinds() []Kind {
	return []Kind{Greedy, Spartan, Sneaky, Righteous}
}

// ParseKind resolves a strategy name case-insensitively.
func ParseKind(name string) (Kind, error) {
	wanted := strings.TrimSpace(name)
	for _, k := range Kinds() {
		if strings.EqualFold(kindNames[k], wanted) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown strategy %q", ErrInvalidSetup, name)
}

// Valid reports whether k is one of the built-in strategies.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Rule describes the strategy in one sentence.
func (k Kind) Rule() string {
	return kindRules[k]
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: unknown strategy %d", ErrInvalidSetup, int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name, see ParseKind.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Decide picks the next move for the strategy. Ties are broken towards the
// lowest heap index. Asking for a move when every heap is empty fails with
// ErrNoLegalMove.
func (k Kind) Decide(s Snapshot) (Move, error) {
	if s.IsTerminal() {
		return Move{}, fmt.Errorf("%w: %s strategy called with every heap empty", ErrNoLegalMove, k)
	}

	switch k {
	case Greedy:
		heap, coins := largestHeap(s.coins)
		return NewMove(heap, coins, 0, 0), nil
	case Spartan:
		heap, _ := largestHeap(s.coins)
		return NewMove(heap, 1, 0, 0), nil
	case Sneaky:
		heap, coins := smallestHeap(s.coins)
		return NewMove(heap, coins, 0, 0), nil
	case Righteous:
		return righteousMove(s.coins), nil
	}
	return Move{}, fmt.Errorf("%w: unknown strategy %d", ErrInvalidSetup, int(k))
}

// largestHeap returns the first heap holding the most coins.
func largestHeap(coins []int) (heap, count int) {
	for i, c := range coins {
		if c > count {
			heap, count = i, c
		}
	}
	return heap, count
}

// smallestHeap returns the first non-empty heap holding the fewest coins.
// The caller guarantees at least one heap is non-empty.
func smallestHeap(coins []int) (heap, count int) {
	heap = -1
	for i, c := range coins {
		if c > 0 && (heap < 0 || c < count) {
			heap, count = i, c
		}
	}
	return heap, count
}

// righteousMove finds both extremes in a single pass, takes ceil(max/2)
// coins from the largest heap and gives one fewer to the smallest non-empty
// heap. With a single non-empty heap both ends coincide and the move
// targets its own source.
func righteousMove(coins []int) Move {
	maxHeap, maxCoins := 0, 0
	minHeap, minCoins := -1, 0
	for i, c := range coins {
		if c > maxCoins {
			maxHeap, maxCoins = i, c
		}
		if c > 0 && (minHeap < 0 || c < minCoins) {
			minHeap, minCoins = i, c
		}
	}
	take := (maxCoins + 1) / 2
	return NewMove(maxHeap, take, minHeap, take-1)
}
