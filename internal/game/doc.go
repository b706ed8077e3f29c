// Package game implements Specker's coin game.
//
// Players take turns removing coins from one heap and may put a strictly
// smaller number of coins onto another heap. The player whose move empties
// the last heap wins. Because every move takes at least one coin out of
// play, every game terminates.
//
// # Basic Usage
//
// Build a state, seat some players and run the engine:
//
//	state, _ := game.NewState(3, []int{10, 20, 17})
//	tom, _ := game.NewPlayer("Tom", game.Sneaky)
//	mary, _ := game.NewPlayer("Mary", game.Spartan)
//	engine, _ := game.NewEngine(state, []game.Player{tom, mary})
//	result, err := engine.Run()
//
// Engine.Step plays a single turn and returns its TurnEvent, which makes it
// easy to drive a game one move at a time.
//
// # Events
//
// The engine never writes output itself. It publishes GameStartEvent,
// TurnEvent and GameEndEvent on an EventBus; subscribers such as History or
// a console printer turn them into transcripts:
//
//	history := game.NewHistory(game.FormattingOptions{})
//	engine.EventBus().Subscribe(history)
//	engine.Run()
//	fmt.Print(history.Transcript())
//
// # Strategies
//
// Kind is a closed set of deterministic strategies (Greedy, Spartan, Sneaky
// and Righteous). Each Kind implements Strategy and decides from a Snapshot,
// an immutable copy of the heaps, so strategies cannot alter the game.
// Ties always resolve to the lowest heap index.
package game
