package game

import (
	"slices"
	"time"
)

// GameEvent represents anything the engine publishes while a game runs
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// GameStartEvent is published before the first turn
type GameStartEvent struct {
	GameID    string
	Players   []Player
	Initial   Snapshot
	timestamp time.Time
}

func (e GameStartEvent) EventType() EventType { return EventTypeGameStart }
func (e GameStartEvent) Timestamp() time.Time { return e.timestamp }

// NewGameStartEvent creates a new game start event
func NewGameStartEvent(gameID string, players []Player, initial Snapshot, at time.Time) GameStartEvent {
	return GameStartEvent{
		GameID:    gameID,
		Players:   slices.Clone(players),
		Initial:   initial,
		timestamp: at,
	}
}

// TurnEvent is published after a move has been applied. Before is the
// snapshot the acting player decided on, After the heaps once the move landed.
type TurnEvent struct {
	GameID    string
	Turn      int
	Seat      int
	Player    Player
	Move      Move
	Before    Snapshot
	After     Snapshot
	timestamp time.Time
}

func (e TurnEvent) EventType() EventType { return EventTypeTurn }
func (e TurnEvent) Timestamp() time.Time { return e.timestamp }

// NewTurnEvent creates a new turn event
func NewTurnEvent(gameID string, turn, seat int, player Player, move Move, before, after Snapshot, at time.Time) TurnEvent {
	return TurnEvent{
		GameID:    gameID,
		Turn:      turn,
		Seat:      seat,
		Player:    player,
		Move:      move,
		Before:    before,
		After:     after,
		timestamp: at,
	}
}

// GameEndEvent is published once the heaps are empty
type GameEndEvent struct {
	GameID     string
	Winner     Player
	WinnerSeat int
	Turns      int
	Final      Snapshot
	timestamp  time.Time
}

func (e GameEndEvent) EventType() EventType { return EventTypeGameEnd }
func (e GameEndEvent) Timestamp() time.Time { return e.timestamp }

// NewGameEndEvent creates a new game end event
func NewGameEndEvent(result Result, at time.Time) GameEndEvent {
	return GameEndEvent{
		GameID:     result.GameID,
		Winner:     result.Winner,
		WinnerSeat: result.WinnerSeat,
		Turns:      result.Turns,
		Final:      result.Final,
		timestamp:  at,
	}
}

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus delivers events synchronously, in subscription order
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
