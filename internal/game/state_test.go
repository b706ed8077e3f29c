package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewState(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		heaps   int
		coins   []int
		wantErr bool
	}{
		{name: "three heaps", heaps: 3, coins: []int{10, 20, 17}},
		{name: "empty heaps allowed", heaps: 2, coins: []int{0, 0}},
		{name: "missing coin value", heaps: 3, coins: []int{10, 20}, wantErr: true},
		{name: "extra coin value", heaps: 1, coins: []int{1, 2}, wantErr: true},
		{name: "negative coins", heaps: 2, coins: []int{3, -1}, wantErr: true},
		{name: "zero heaps", heaps: 0, coins: []int{}, wantErr: true},
		{name: "negative heap count", heaps: -1, coins: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s, err := NewState(tt.heaps, tt.coins)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidState)
				assert.Nil(t, s)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.heaps, s.Heaps())
		})
	}
}

func TestNewState_CopiesInput(t *testing.T) {
	t.Parallel()
	coins := []int{1, 2, 3}
	s, err := NewState(3, coins)
	require.NoError(t, err)

	coins[0] = 99
	got, err := s.Coins(0)
	require.NoError(t, err)
	assert.Equal(t, 1, got)
}

func TestState_Apply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		move    Move
		want    []int
		wantErr bool
	}{
		{name: "take all", move: NewMove(1, 20, 0, 0), want: []int{10, 0, 17}},
		{name: "take and redistribute", move: NewMove(1, 10, 0, 9), want: []int{19, 10, 17}},
		{name: "target checked even when nothing put back", move: NewMove(2, 5, 7, 0), wantErr: true},
		{name: "self target", move: NewMove(2, 9, 2, 8), want: []int{10, 20, 16}},
		{name: "take more than present", move: NewMove(0, 11, 1, 0), wantErr: true},
		{name: "put back as many as taken", move: NewMove(0, 5, 1, 5), wantErr: true},
		{name: "put back more than taken", move: NewMove(0, 5, 1, 6), wantErr: true},
		{name: "take nothing", move: NewMove(0, 0, 1, 0), wantErr: true},
		{name: "take negative", move: NewMove(0, -2, 1, 0), wantErr: true},
		{name: "negative put back", move: NewMove(0, 2, 1, -1), wantErr: true},
		{name: "source out of range", move: NewMove(3, 1, 0, 0), wantErr: true},
		{name: "negative source", move: NewMove(-1, 1, 0, 0), wantErr: true},
		{name: "target out of range", move: NewMove(0, 2, 3, 1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s, err := NewState(3, []int{10, 20, 17})
			require.NoError(t, err)

			err = s.Apply(tt.move)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrIllegalMove)
				assert.Equal(t, []int{10, 20, 17}, s.Snapshot().Values(), "illegal move must not change the heaps")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Snapshot().Values())
		})
	}
}

func TestState_ApplyRejectsTakingMoreThanPresent(t *testing.T) {
	t.Parallel()
	s, err := NewState(2, []int{3, 8})
	require.NoError(t, err)

	err = s.Apply(NewMove(0, 5, 1, 0))
	require.ErrorIs(t, err, ErrIllegalMove)
	assert.Contains(t, err.Error(), "cannot take 5 coins from heap 0 holding 3")
}

func TestState_ApplyRejectsEqualRedistribution(t *testing.T) {
	t.Parallel()
	s, err := NewState(2, []int{6, 8})
	require.NoError(t, err)

	err = s.Apply(NewMove(1, 4, 0, 4))
	require.ErrorIs(t, err, ErrIllegalMove)
	assert.Contains(t, err.Error(), "fewer coins than taken")
}

func TestState_TotalDecreasesByRemoved(t *testing.T) {
	t.Parallel()
	s, err := NewState(3, []int{4, 9, 2})
	require.NoError(t, err)

	before := s.Total()
	move := NewMove(1, 7, 2, 3)
	require.NoError(t, s.Apply(move))
	assert.Equal(t, before-move.Removed(), s.Total())
	assert.Equal(t, 11, s.Total())
}

func TestState_Coins(t *testing.T) {
	t.Parallel()
	s, err := NewState(2, []int{5, 0})
	require.NoError(t, err)

	got, err := s.Coins(0)
	require.NoError(t, err)
	assert.Equal(t, 5, got)

	for _, heap := range []int{-1, 2, 100} {
		_, err := s.Coins(heap)
		assert.ErrorIs(t, err, ErrInvalidHeap, "heap %d", heap)
	}
}

func TestState_IsTerminal(t *testing.T) {
	t.Parallel()
	s, err := NewState(2, []int{0, 1})
	require.NoError(t, err)
	assert.False(t, s.IsTerminal())

	require.NoError(t, s.Apply(NewMove(1, 1, 0, 0)))
	assert.True(t, s.IsTerminal())
	assert.Equal(t, "0, 0", s.String())
}

func TestSnapshot_IsIndependentOfState(t *testing.T) {
	t.Parallel()
	s, err := NewState(2, []int{3, 4})
	require.NoError(t, err)

	snap := s.Snapshot()
	require.NoError(t, s.Apply(NewMove(0, 3, 0, 0)))

	assert.Equal(t, []int{3, 4}, snap.Values())
	assert.Equal(t, 7, snap.Total())

	values := snap.Values()
	values[1] = 42
	got, err := snap.Coins(1)
	require.NoError(t, err)
	assert.Equal(t, 4, got, "Values must return a copy")
}

func TestSnapshot_Check(t *testing.T) {
	t.Parallel()
	s, err := NewState(2, []int{3, 4})
	require.NoError(t, err)
	snap := s.Snapshot()

	assert.NoError(t, snap.Check(NewMove(1, 4, 0, 3)))
	assert.ErrorIs(t, snap.Check(NewMove(0, 4, 1, 0)), ErrIllegalMove)
}

func TestSnapshot_MarshalJSON(t *testing.T) {
	t.Parallel()
	s, err := NewState(3, []int{10, 0, 17})
	require.NoError(t, err)

	data, err := s.Snapshot().MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `[10, 0, 17]`, string(data))

	data, err = Snapshot{}.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}
