package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventFormatter_Lines(t *testing.T) {
	tom := mustPlayer(t, "Tom", Sneaky)
	robin := mustPlayer(t, "Robin", Righteous)
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	before := snapshotOf(t, 0, 0, 17)
	after := snapshotOf(t, 0, 0, 16)

	tests := []struct {
		name     string
		opts     FormattingOptions
		event    GameEvent
		expected []string
	}{
		{
			name:     "game start",
			event:    NewGameStartEvent("g", []Player{tom}, snapshotOf(t, 10, 20, 17), at),
			expected: []string{"State: 10, 20, 17"},
		},
		{
			name:  "take only",
			event: NewTurnEvent("g", 0, 0, tom, NewMove(0, 10, 0, 0), snapshotOf(t, 10, 20, 17), snapshotOf(t, 0, 20, 17), at),
			expected: []string{
				"Sneaky player Tom takes 10 coins from heap 0 and puts nothing",
				"State: 0, 20, 17",
			},
		},
		{
			name:  "self targeting with turn numbers and totals",
			opts:  FormattingOptions{ShowTurnNumbers: true, ShowTotals: true},
			event: NewTurnEvent("g", 3, 3, robin, NewMove(2, 9, 2, 8), before, after, at),
			expected: []string{
				"Turn 3: Righteous player Robin takes 9 coins from heap 2 and puts 8 coins to heap 2",
				"State: 0, 0, 16 (16 coins)",
			},
		},
		{
			name: "game end",
			event: NewGameEndEvent(Result{
				GameID: "g", Winner: tom, WinnerSeat: 0, Turns: 5, Final: snapshotOf(t, 0, 0, 0),
			}, at),
			expected: []string{"Sneaky player Tom wins"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatter := NewEventFormatter(tt.opts)
			assert.Equal(t, tt.expected, formatter.Lines(tt.event))
			assert.Equal(t, at, tt.event.Timestamp())
		})
	}
}

func TestEventTypes(t *testing.T) {
	at := time.Now()
	assert.Equal(t, EventTypeGameStart, NewGameStartEvent("g", nil, Snapshot{}, at).EventType())
	assert.Equal(t, EventTypeTurn, TurnEvent{}.EventType())
	assert.Equal(t, EventTypeGameEnd, GameEndEvent{}.EventType())
}

func TestGameStartEvent_CopiesPlayers(t *testing.T) {
	players := []Player{mustPlayer(t, "Tom", Sneaky)}
	event := NewGameStartEvent("g", players, snapshotOf(t, 1), time.Now())

	players[0] = mustPlayer(t, "Mary", Spartan)
	require.Len(t, event.Players, 1)
	assert.Equal(t, "Tom", event.Players[0].Name())
}

type recordingSubscriber struct {
	name string
	log  *[]string
}

func (r recordingSubscriber) OnEvent(event GameEvent) {
	*r.log = append(*r.log, r.name+":"+string(event.EventType()))
}

func TestSimpleEventBus_DeliveryOrder(t *testing.T) {
	var log []string
	bus := NewEventBus()
	first := recordingSubscriber{name: "first", log: &log}
	second := recordingSubscriber{name: "second", log: &log}

	bus.Subscribe(first)
	bus.Subscribe(second)
	bus.Publish(TurnEvent{})
	bus.Unsubscribe(first)
	bus.Publish(GameEndEvent{})

	assert.Equal(t, []string{"first:turn", "second:turn", "second:game_end"}, log)
}
