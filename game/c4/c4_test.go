package c4

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calaverite/ludos/game"
)

const (
	X = game.Player(0)
	O = game.Player(1)
)

func drop(p game.Player, col int) game.PlayerMove {
	return game.PlayerMove{Player: p, Single: game.Single(col)}
}

// replay applies drops to a fresh classic board.
func replay(t *testing.T, moves ...game.PlayerMove) *C4 {
	t.Helper()
	g := ConnectFour()
	for _, m := range moves {
		require.NoError(t, g.ApplyInPlace(m), "move %s", m)
	}
	return g
}

func TestNewValidation(t *testing.T) {
	_, err := New(0, 7, 4, 2)
	assert.True(t, game.IsConfiguration(err))

	// k only needs to fit one dimension
	_, err = New(6, 7, 7, 2)
	require.NoError(t, err)
	_, err = New(6, 7, 8, 2)
	assert.True(t, game.IsConfiguration(err))

	_, err = New(6, 7, 4, 1)
	assert.True(t, game.IsConfiguration(err))
}

func TestDropsStack(t *testing.T) {
	g := replay(t, drop(X, 3), drop(O, 3), drop(X, 3))

	assert.Equal(t, X, g.At(5, 3))
	assert.Equal(t, O, g.At(4, 3))
	assert.Equal(t, X, g.At(3, 3))
	assert.Equal(t, 3, g.Height(3))
	assert.Equal(t, game.None, g.At(2, 3))
	assert.Equal(t, O, g.ToMove())
}

func TestActionsAreColumns(t *testing.T) {
	g := ConnectFour()
	actions := g.Actions()
	require.Len(t, actions, 7)
	for col, a := range actions {
		assert.True(t, drop(X, col).Eq(a))
	}

	// A full column drops out of the action set.
	for i := 0; i < 6; i++ {
		p := game.Player(i % 2)
		require.NoError(t, g.ApplyInPlace(drop(p, 0)))
	}
	actions = g.Actions()
	require.Len(t, actions, 6)
	assert.True(t, drop(X, 1).Eq(actions[0]))
}

func TestColumnWin(t *testing.T) {
	g := replay(t,
		drop(X, 0), drop(O, 1),
		drop(X, 0), drop(O, 1),
		drop(X, 0), drop(O, 2),
		drop(X, 0),
	)
	require.True(t, g.Terminal())
	assert.Empty(t, cmp.Diff(game.Outcome{1, 0}, g.Outcome()))
	assert.Equal(t, X, g.Outcome().Leader())
}

func TestRowWin(t *testing.T) {
	g := replay(t,
		drop(X, 0), drop(O, 0),
		drop(X, 1), drop(O, 1),
		drop(X, 2), drop(O, 2),
		drop(X, 3),
	)
	require.True(t, g.Terminal())
	assert.Equal(t, X, g.Outcome().Leader())
}

func TestDiagonalWin(t *testing.T) {
	// A staircase: X ends on (2,3) completing (5,0) (4,1) (3,2) (2,3).
	g := replay(t,
		drop(X, 0), drop(O, 1),
		drop(X, 1), drop(O, 2),
		drop(X, 3), drop(O, 2),
		drop(X, 2), drop(O, 3),
		drop(X, 4), drop(O, 3),
	)
	require.False(t, g.Terminal())
	require.NoError(t, g.ApplyInPlace(drop(X, 3)))
	require.True(t, g.Terminal())
	assert.Equal(t, X, g.Outcome().Leader())
}

func TestDraw(t *testing.T) {
	// A 1x4 board with k=4 fills without a run.
	g, err := New(1, 4, 4, 2)
	require.NoError(t, err)
	for col := 0; col < 4; col++ {
		require.NoError(t, g.ApplyInPlace(drop(game.Player(col%2), col)))
	}
	require.True(t, g.Terminal())
	assert.True(t, g.Outcome().IsZero())
	assert.Equal(t, game.None, g.Outcome().Leader())
	assert.Nil(t, g.Actions())
}

func TestIllegalDrops(t *testing.T) {
	g := ConnectFour()

	err := g.ApplyInPlace(drop(X, 7))
	assert.True(t, game.IsIllegalAction(err), "got %v", err)
	err = g.ApplyInPlace(drop(X, -1))
	assert.True(t, game.IsIllegalAction(err), "got %v", err)
	err = g.ApplyInPlace(drop(O, 0))
	assert.True(t, game.IsIllegalAction(err), "out of turn, got %v", err)

	for i := 0; i < 6; i++ {
		p := game.Player(i % 2)
		require.NoError(t, g.ApplyInPlace(drop(p, 0)))
	}
	err = g.ApplyInPlace(drop(X, 0))
	assert.True(t, game.IsIllegalAction(err), "full column, got %v", err)
}

func TestTerminalApply(t *testing.T) {
	g := replay(t,
		drop(X, 0), drop(O, 1),
		drop(X, 0), drop(O, 1),
		drop(X, 0), drop(O, 2),
		drop(X, 0),
	)
	require.True(t, g.Terminal())
	err := g.ApplyInPlace(drop(O, 3))
	assert.True(t, game.IsTerminalState(err), "got %v", err)
	_, err = g.Apply(drop(O, 3))
	assert.True(t, game.IsTerminalState(err), "got %v", err)
}

func TestEqHashClone(t *testing.T) {
	a := replay(t, drop(X, 2), drop(O, 3))
	b := replay(t, drop(X, 2), drop(O, 3))
	c := replay(t, drop(X, 3), drop(O, 2))

	assert.True(t, a.Eq(b))
	assert.Equal(t, a.Hash(), b.Hash())
	assert.False(t, a.Eq(c))
	assert.NotEqual(t, a.Hash(), c.Hash())

	clone := a.Clone()
	assert.True(t, a.Eq(clone))
	require.NoError(t, clone.(*C4).ApplyInPlace(drop(X, 2)))
	assert.False(t, a.Eq(clone), "clones do not share state")
	assert.Equal(t, 2, a.MoveNumber())
}

func TestApplyLeavesReceiver(t *testing.T) {
	g := ConnectFour()
	next, err := g.Apply(drop(X, 3))
	require.NoError(t, err)

	assert.Equal(t, game.None, g.At(5, 3))
	assert.Equal(t, X, next.(*C4).At(5, 3))
	assert.Equal(t, X, g.ToMove())
	assert.Equal(t, O, next.ToMove())
}
