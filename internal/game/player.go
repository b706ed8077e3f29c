package game

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Player binds a display name to a strategy. Turn order is the order in
// which players are handed to the engine.
type Player struct {
	name string
	kind Kind
}

// NewPlayer creates a player using one of the built-in strategies.
func NewPlayer(name string, kind Kind) (Player, error) {
	if strings.TrimSpace(name) == "" {
		return Player{}, fmt.Errorf("%w: player name is required", ErrInvalidSetup)
	}
	if !kind.Valid() {
		return Player{}, fmt.Errorf("%w: player %s has unknown strategy %d", ErrInvalidSetup, name, int(kind))
	}
	return Player{name: name, kind: kind}, nil
}

// Name returns the player's display name.
func (p Player) Name() string { return p.name }

// Kind returns the player's strategy kind.
func (p Player) Kind() Kind { return p.kind }

// Strategy returns the strategy the player moves with.
func (p Player) Strategy() Strategy { return p.kind }

// String renders the player as transcripts do, e.g. "Sneaky player Tom".
func (p Player) String() string {
	return fmt.Sprintf("%s player %s", p.kind, p.name)
}

func (p Player) valid() bool {
	return p.name != "" && p.kind.Valid()
}

type playerJSON struct {
	Name     string `json:"name"`
	Strategy Kind   `json:"strategy"`
}

// MarshalJSON encodes the player as {"name": ..., "strategy": ...}.
func (p Player) MarshalJSON() ([]byte, error) {
	return json.Marshal(playerJSON{Name: p.name, Strategy: p.kind})
}
