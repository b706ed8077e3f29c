package game

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// Status is the engine's position in the turn state machine.
type Status int

const (
	// Running means the heaps still hold coins.
	Running Status = iota
	// Finished means the last move emptied the heaps and a winner is known.
	Finished
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Finished:
		return "finished"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result is the outcome of a finished game.
type Result struct {
	GameID     string
	Winner     Player
	WinnerSeat int
	Turns      int
	Final      Snapshot
}

// Engine runs a single game: it owns the state and the seating order, asks
// the acting player's strategy for a move each turn, applies it and
// publishes the resulting events.
type Engine struct {
	id      string
	state   *State
	players []Player
	turn    int
	status  Status
	winner  int
	started bool

	logger   *log.Logger
	clock    quartz.Clock
	eventBus EventBus
}

// NewEngine creates an engine for the given state and seating order. The
// engine takes ownership of state; callers must not mutate it afterwards.
func NewEngine(state *State, players []Player, opts ...EngineOption) (*Engine, error) {
	if state == nil {
		return nil, fmt.Errorf("%w: state is required", ErrInvalidSetup)
	}
	if len(players) == 0 {
		return nil, fmt.Errorf("%w: at least one player is required", ErrInvalidSetup)
	}
	for i, p := range players {
		if !p.valid() {
			return nil, fmt.Errorf("%w: player at seat %d is not initialised", ErrInvalidSetup, i)
		}
	}
	if state.IsTerminal() {
		// Nobody can move, so nobody can win
		return nil, fmt.Errorf("%w: every heap is already empty", ErrInvalidSetup)
	}

	cfg := newEngineConfig(opts)
	return &Engine{
		id:       cfg.gameID,
		state:    state,
		players:  slices.Clone(players),
		status:   Running,
		winner:   -1,
		logger:   cfg.logger,
		clock:    cfg.clock,
		eventBus: cfg.bus,
	}, nil
}

// ID returns the game identifier carried on every event.
func (e *Engine) ID() string { return e.id }

// EventBus returns the bus events are published on.
func (e *Engine) EventBus() EventBus { return e.eventBus }

// State returns a snapshot of the current heaps.
func (e *Engine) State() Snapshot { return e.state.Snapshot() }

// Players returns the seating order.
func (e *Engine) Players() []Player { return slices.Clone(e.players) }

// Turn returns the number of completed turns.
func (e *Engine) Turn() int { return e.turn }

// Status returns whether the game is still running.
func (e *Engine) Status() Status { return e.status }

// Current returns the player who acts on the next turn.
func (e *Engine) Current() Player {
	return e.players[e.turn%len(e.players)]
}

// Result returns the outcome once the game is finished.
func (e *Engine) Result() (Result, bool) {
	if e.status != Finished {
		return Result{}, false
	}
	return e.result(), true
}

// Step plays one turn. Strategy failures and illegal moves abort the game:
// the error is returned and the heaps are left as they were before the turn.
func (e *Engine) Step() (TurnEvent, error) {
	if e.status == Finished {
		return TurnEvent{}, fmt.Errorf("%w: %s already won after %d turns",
			ErrGameOver, e.players[e.winner], e.turn)
	}
	if !e.started {
		e.started = true
		e.logger.Debug("Starting game", "game", e.id, "heaps", e.state.String(), "players", len(e.players))
		e.eventBus.Publish(NewGameStartEvent(e.id, e.players, e.state.Snapshot(), e.clock.Now()))
	}

	seat := e.turn % len(e.players)
	actor := e.players[seat]
	before := e.state.Snapshot()

	move, err := actor.Strategy().Decide(before)
	if err != nil {
		return TurnEvent{}, fmt.Errorf("turn %d: %s: %w", e.turn, actor, err)
	}
	if move.SelfTargeting() {
		e.logger.Warn("Move puts coins back on its source heap",
			"turn", e.turn, "player", actor.Name(), "heap", move.Source())
	}
	if err := e.state.Apply(move); err != nil {
		return TurnEvent{}, fmt.Errorf("turn %d: %s: %w", e.turn, actor, err)
	}

	after := e.state.Snapshot()
	if err := validateCoinConservation(before, after, move); err != nil {
		return TurnEvent{}, fmt.Errorf("turn %d: %s: %w", e.turn, actor, err)
	}

	event := NewTurnEvent(e.id, e.turn, seat, actor, move, before, after, e.clock.Now())
	e.logger.Debug("Turn",
		"turn", e.turn,
		"player", actor.Name(),
		"strategy", actor.Kind(),
		"move", move,
		"heaps", after)
	e.eventBus.Publish(event)
	e.turn++

	if e.state.IsTerminal() {
		e.status = Finished
		e.winner = (e.turn - 1) % len(e.players)
		result := e.result()
		e.logger.Info("Game finished", "game", e.id, "winner", result.Winner.Name(), "turns", result.Turns)
		e.eventBus.Publish(NewGameEndEvent(result, e.clock.Now()))
	}
	return event, nil
}

// Run plays turns until the heaps are empty and returns the result.
func (e *Engine) Run() (Result, error) {
	for e.status == Running {
		if _, err := e.Step(); err != nil {
			return Result{}, err
		}
	}
	return e.result(), nil
}

// RunToCompletion plays the remaining turns and returns their events along
// with the result.
func (e *Engine) RunToCompletion() ([]TurnEvent, Result, error) {
	var events []TurnEvent
	for e.status == Running {
		event, err := e.Step()
		if err != nil {
			return events, Result{}, err
		}
		events = append(events, event)
	}
	return events, e.result(), nil
}

func (e *Engine) result() Result {
	return Result{
		GameID:     e.id,
		Winner:     e.players[e.winner],
		WinnerSeat: e.winner,
		Turns:      e.turn,
		Final:      e.state.Snapshot(),
	}
}

// validateCoinConservation checks that a move took exactly its net amount out of play
func validateCoinConservation(before, after Snapshot, move Move) error {
	if removed := before.Total() - after.Total(); removed != move.Removed() {
		return fmt.Errorf("%w: coin conservation violated: %d coins left play, move accounts for %d",
			ErrIllegalMove, removed, move.Removed())
	}
	return nil
}
