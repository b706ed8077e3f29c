package game

import (
	"encoding/json"
	"fmt"
)

// Move transfers coins between heaps: SourceCoins leave the source heap and
// TargetCoins are added to the target heap. Moves are not validated on
// construction; State.Apply is the only authority on legality.
type Move struct {
	source      int
	sourceCoins int
	target      int
	targetCoins int
}

// NewMove creates a move that takes sourceCoins from heap source and puts
// targetCoins on heap target.
func NewMove(source, sourceCoins, target, targetCoins int) Move {
	return Move{
		source:      source,
		sourceCoins: sourceCoins,
		target:      target,
		targetCoins: targetCoins,
	}
}

// Source returns the heap coins are taken from.
func (m Move) Source() int { return m.source }

// SourceCoins returns the number of coins taken.
func (m Move) SourceCoins() int { return m.sourceCoins }

// Target returns the heap coins are put on.
func (m Move) Target() int { return m.target }

// TargetCoins returns the number of coins put back.
func (m Move) TargetCoins() int { return m.targetCoins }

// Removed returns the number of coins the move takes out of play.
func (m Move) Removed() int { return m.sourceCoins - m.targetCoins }

// SelfTargeting reports whether the move puts coins back on the heap it took them from.
func (m Move) SelfTargeting() bool {
	return m.targetCoins > 0 && m.source == m.target
}

// String renders the move the way transcripts print it.
func (m Move) String() string {
	if m.targetCoins > 0 {
		return fmt.Sprintf("takes %d coins from heap %d and puts %d coins to heap %d",
			m.sourceCoins, m.source, m.targetCoins, m.target)
	}
	return fmt.Sprintf("takes %d coins from heap %d and puts nothing", m.sourceCoins, m.source)
}

type moveJSON struct {
	Source      int `json:"source"`
	SourceCoins int `json:"source_coins"`
	Target      int `json:"target"`
	TargetCoins int `json:"target_coins"`
}

// MarshalJSON encodes the move with snake_case field names.
func (m Move) MarshalJSON() ([]byte, error) {
	return json.Marshal(moveJSON{
		Source:      m.source,
		SourceCoins: m.sourceCoins,
		Target:      m.target,
		TargetCoins: m.targetCoins,
	})
}
