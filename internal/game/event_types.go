package game

// EventType represents a game event type with type safety
type EventType string

// EventType constants for game domain events
const (
	EventTypeGameStart EventType = "game_start"
	EventTypeTurn      EventType = "turn"
	EventTypeGameEnd   EventType = "game_end"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}
