package game

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// History records the events of a single game. Subscribe it to an engine's
// bus before the first turn.
type History struct {
	GameID  string
	Players []Player
	Initial Snapshot
	Turns   []TurnEvent
	End     *GameEndEvent

	formatter *EventFormatter
}

// NewHistory creates an empty history whose transcript uses opts
func NewHistory(opts FormattingOptions) *History {
	return &History{formatter: NewEventFormatter(opts)}
}

// OnEvent implements EventSubscriber
func (h *History) OnEvent(event GameEvent) {
	switch e := event.(type) {
	case GameStartEvent:
		h.GameID = e.GameID
		h.Players = e.Players
		h.Initial = e.Initial
	case TurnEvent:
		h.Turns = append(h.Turns, e)
	case GameEndEvent:
		end := e
		h.End = &end
	}
}

// Complete reports whether the game has been recorded up to its winner
func (h *History) Complete() bool {
	return h.End != nil
}

// Transcript renders the recorded game in transcript form
func (h *History) Transcript() string {
	var b strings.Builder
	// strings.Builder never fails to write
	_ = h.WriteTranscript(&b)
	return b.String()
}

// WriteTranscript writes the transcript one line at a time
func (h *History) WriteTranscript(w io.Writer) error {
	if h.GameID == "" {
		return nil
	}

	lines := h.formatter.Lines(GameStartEvent{Initial: h.Initial})
	for _, turn := range h.Turns {
		lines = append(lines, h.formatter.Lines(turn)...)
	}
	if h.End != nil {
		lines = append(lines, h.formatter.Lines(*h.End)...)
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write transcript: %w", err)
		}
	}
	return nil
}

type historyTurnJSON struct {
	Turn   int      `json:"turn"`
	Seat   int      `json:"seat"`
	Player string   `json:"player"`
	Kind   Kind     `json:"strategy"`
	Before Snapshot `json:"before"`
	Move   Move     `json:"move"`
	After  Snapshot `json:"after"`
}

type historyJSON struct {
	GameID     string            `json:"game_id"`
	Players    []Player          `json:"players"`
	Initial    Snapshot          `json:"initial"`
	Turns      []historyTurnJSON `json:"turns"`
	Winner     *Player           `json:"winner,omitempty"`
	WinnerSeat *int              `json:"winner_seat,omitempty"`
	TurnCount  int               `json:"turn_count"`
}

// MarshalJSON encodes the recorded game for machine consumption
func (h *History) MarshalJSON() ([]byte, error) {
	out := historyJSON{
		GameID:    h.GameID,
		Players:   h.Players,
		Initial:   h.Initial,
		Turns:     make([]historyTurnJSON, len(h.Turns)),
		TurnCount: len(h.Turns),
	}
	if out.Players == nil {
		out.Players = []Player{}
	}
	for i, t := range h.Turns {
		out.Turns[i] = historyTurnJSON{
			Turn:   t.Turn,
			Seat:   t.Seat,
			Player: t.Player.Name(),
			Kind:   t.Player.Kind(),
			Before: t.Before,
			Move:   t.Move,
			After:  t.After,
		}
	}
	if h.End != nil {
		winner := h.End.Winner
		seat := h.End.WinnerSeat
		out.Winner = &winner
		out.WinnerSeat = &seat
	}
	return json.Marshal(out)
}
