package game

import (
	"fmt"
	"strings"
)

// FormattingOptions controls how events are formatted for different contexts
type FormattingOptions struct {
	ShowTurnNumbers bool // Prefix action lines with the turn index
	ShowTotals      bool // Append the number of coins in play to state lines
}

// EventFormatter renders game events as transcript lines
type EventFormatter struct {
	opts FormattingOptions
}

// NewEventFormatter creates a new event formatter with the given options
func NewEventFormatter(opts FormattingOptions) *EventFormatter {
	return &EventFormatter{opts: opts}
}

// FormatState formats heaps as "State: 10, 20, 17"
func (ef *EventFormatter) FormatState(s Snapshot) string {
	line := "State: " + s.String()
	if ef.opts.ShowTotals {
		line += fmt.Sprintf(" (%d coins)", s.Total())
	}
	return line
}

// FormatTurn formats the acting player and the move they made
func (ef *EventFormatter) FormatTurn(event TurnEvent) string {
	line := fmt.Sprintf("%s %s", event.Player, event.Move)
	if ef.opts.ShowTurnNumbers {
		line = fmt.Sprintf("Turn %d: %s", event.Turn, line)
	}
	return line
}

// FormatWinner formats the closing line of a transcript
func (ef *EventFormatter) FormatWinner(event GameEndEvent) string {
	return fmt.Sprintf("%s wins", event.Winner)
}

// FormatGameStart formats a one-line summary of the table
func (ef *EventFormatter) FormatGameStart(event GameStartEvent) string {
	names := make([]string, len(event.Players))
	for i, p := range event.Players {
		names[i] = p.Name()
	}
	return fmt.Sprintf("Game %s: %d heaps, %d coins, players %s",
		event.GameID, event.Initial.Heaps(), event.Initial.Total(), strings.Join(names, ", "))
}

// Lines returns the transcript lines an event contributes. A whole game
// reads: initial state, then an action line and resulting state per turn,
// then the winner.
func (ef *EventFormatter) Lines(event GameEvent) []string {
	switch e := event.(type) {
	case GameStartEvent:
		return []string{ef.FormatState(e.Initial)}
	case TurnEvent:
		return []string{ef.FormatTurn(e), ef.FormatState(e.After)}
	case GameEndEvent:
		return []string{ef.FormatWinner(e)}
	default:
		return nil
	}
}
