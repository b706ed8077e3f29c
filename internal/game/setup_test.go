package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_BuildsClassicGame(t *testing.T) {
	t.Parallel()
	setup, err := NewSetup(3, 4)
	require.NoError(t, err)

	for _, coins := range []int{10, 20, 17} {
		require.NoError(t, setup.AddHeap(coins))
	}
	for _, p := range classicPlayers(t) {
		require.NoError(t, setup.AddPlayer(p))
	}

	engine, err := setup.Engine(WithLogger(testLogger()))
	require.NoError(t, err)
	assert.Equal(t, []int{10, 20, 17}, engine.State().Values())

	result, err := engine.Run()
	require.NoError(t, err)
	assert.Equal(t, "Tom", result.Winner.Name())
}

func TestSetup_Capacity(t *testing.T) {
	t.Parallel()
	setup, err := NewSetup(1, 1)
	require.NoError(t, err)

	require.NoError(t, setup.AddHeap(4))
	assert.ErrorIs(t, setup.AddHeap(5), ErrInvalidSetup)

	require.NoError(t, setup.AddPlayer(mustPlayer(t, "A", Greedy)))
	assert.ErrorIs(t, setup.AddPlayer(mustPlayer(t, "B", Greedy)), ErrInvalidSetup)
}

func TestSetup_Errors(t *testing.T) {
	t.Parallel()

	_, err := NewSetup(0, 1)
	assert.ErrorIs(t, err, ErrInvalidSetup)
	_, err = NewSetup(1, 0)
	assert.ErrorIs(t, err, ErrInvalidSetup)

	setup, err := NewSetup(2, 1)
	require.NoError(t, err)
	assert.ErrorIs(t, setup.AddHeap(-1), ErrInvalidSetup)
	assert.ErrorIs(t, setup.AddPlayer(Player{}), ErrInvalidSetup)

	require.NoError(t, setup.AddHeap(3))
	require.NoError(t, setup.AddPlayer(mustPlayer(t, "A", Greedy)))
	_, err = setup.Engine()
	assert.ErrorIs(t, err, ErrInvalidSetup, "one heap still missing")

	require.NoError(t, setup.AddHeap(0))
	_, err = setup.Engine()
	assert.NoError(t, err)
}

func TestSetup_Build(t *testing.T) {
	t.Parallel()
	setup, err := NewSetup(2, 2)
	require.NoError(t, err)
	require.NoError(t, setup.AddHeap(2))
	require.NoError(t, setup.AddPlayer(mustPlayer(t, "A", Greedy)))

	_, _, err = setup.Build()
	assert.ErrorIs(t, err, ErrInvalidSetup, "heap and seat still missing")

	require.NoError(t, setup.AddHeap(5))
	require.NoError(t, setup.AddPlayer(mustPlayer(t, "B", Spartan)))

	state, players, err := setup.Build()
	require.NoError(t, err)
	assert.Equal(t, []int{2, 5}, state.Snapshot().Values())
	require.Len(t, players, 2)
	assert.Equal(t, "B", players[1].Name())

	// Each build gets its own state
	require.NoError(t, state.Apply(NewMove(1, 5, 0, 0)))
	again, _, err := setup.Build()
	require.NoError(t, err)
	assert.Equal(t, []int{2, 5}, again.Snapshot().Values())
}

func TestNewPlayer(t *testing.T) {
	t.Parallel()
	p, err := NewPlayer("Robin", Righteous)
	require.NoError(t, err)
	assert.Equal(t, "Robin", p.Name())
	assert.Equal(t, Righteous, p.Kind())
	assert.Equal(t, Strategy(Righteous), p.Strategy())
	assert.Equal(t, "Righteous player Robin", p.String())

	_, err = NewPlayer("", Greedy)
	assert.ErrorIs(t, err, ErrInvalidSetup)
	_, err = NewPlayer("Nobody", Kind(9))
	assert.ErrorIs(t, err, ErrInvalidSetup)
}
