package mcts

import (
	"strings"
	"testing"
	"time"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calaverite/ludos/game"
	"github.com/calaverite/ludos/game/mnk"
)

const (
	X = game.Player(0)
	O = game.Player(1)
)

func mv(p game.Player, s int) game.PlayerMove {
	return game.PlayerMove{Player: p, Single: game.Single(s)}
}

// replay applies moves to a fresh tic-tac-toe board.
func replay(t *testing.T, moves ...game.PlayerMove) game.State {
	t.Helper()
	var s game.State = mnk.TicTacToe()
	for _, m := range moves {
		next, err := s.Apply(m)
		require.NoError(t, err, "move %s", m)
		s = next
	}
	return s
}

func testConfig(seed int64) Config {
	conf := DefaultConfig(seed)
	conf.Timeout = time.Minute
	return conf
}

func TestSearchTerminalState(t *testing.T) {
	s := replay(t, mv(X, 0), mv(O, 3), mv(X, 1), mv(O, 4), mv(X, 2))
	require.True(t, s.Terminal())

	e, err := New(testConfig(1))
	require.NoError(t, err)
	_, err = e.Search(s)
	assert.True(t, game.IsTerminalState(err))
}

func TestSearchSingleAction(t *testing.T) {
	// One empty cell left, X to move at 7, regardless of budget.
	s := replay(t,
		mv(X, 0), mv(O, 1), mv(X, 2), mv(O, 3),
		mv(X, 4), mv(O, 6), mv(X, 5), mv(O, 8),
	)
	require.Len(t, s.Actions(), 1)

	for _, iters := range []int{1, 2, 50} {
		conf := testConfig(7)
		conf.MaxIterations = iters
		e, err := New(conf)
		require.NoError(t, err)
		got, err := e.Search(s)
		require.NoError(t, err)
		assert.True(t, mv(X, 7).Eq(got), "iters=%d got %s", iters, got)
	}
}

func TestSearchFindsWinningMove(t *testing.T) {
	// X holds 0,1 and wins by playing 2. O threatens 3,4,5 as well, so
	// anything else loses the initiative.
	s := replay(t, mv(X, 0), mv(O, 3), mv(X, 1), mv(O, 4))

	conf := testConfig(1337)
	conf.MaxIterations = 3000
	conf.OutcomeIndices = []int{0} // X's seat
	e, err := New(conf)
	require.NoError(t, err)

	got, err := e.Search(s)
	require.NoError(t, err)
	assert.True(t, mv(X, 2).Eq(got), "got %s", got)
}

func TestBackpropagationInvariant(t *testing.T) {
	s := replay(t, mv(X, 4))

	const iters, sims = 37, 3
	conf := testConfig(99)
	conf.MaxIterations = iters
	conf.SimsPerIteration = sims
	e, err := New(conf)
	require.NoError(t, err)

	_, err = e.Search(s)
	require.NoError(t, err)

	tr := e.last
	root := tr.Node(tr.Root())
	assert.Equal(t, uint32(iters*sims), root.Visits(), "root visits = iterations * simsPerIteration")

	var childVisits uint32
	for _, kid := range tr.Children(tr.Root()) {
		childVisits += tr.Node(kid).Visits()
	}
	assert.LessOrEqual(t, childVisits, root.Visits())
	assert.NotNil(t, root.Accumulated())
	assert.Len(t, root.Accumulated(), 2)
}

func TestUCBSelectsUnvisitedChild(t *testing.T) {
	tr := newTree(mnk.TicTacToe())
	root := tr.Node(tr.Root())
	root.visits = 1
	root.acc = game.Outcome{0, 0}

	// a single never-visited child must be picked deterministically
	only := tr.alloc(replayState(t, mv(X, 0)), mv(X, 0), tr.Root())
	assert.Equal(t, only, UCB1(tr, tr.Root(), math32.Sqrt2, nil, First))
}

func TestUCBPrefersUnvisitedOverVisited(t *testing.T) {
	tr := newTree(mnk.TicTacToe())
	root := tr.Node(tr.Root())
	root.visits = 10
	root.acc = game.Outcome{4, 6}

	seen := tr.alloc(replayState(t, mv(X, 0)), mv(X, 0), tr.Root())
	tr.Node(seen).visits = 10
	tr.Node(seen).acc = game.Outcome{4, 6}

	fresh := tr.alloc(replayState(t, mv(X, 1)), mv(X, 1), tr.Root())

	got := UCB1(tr, tr.Root(), math32.Sqrt2, nil, First)
	assert.Equal(t, fresh, got, "unvisited child has a near-unbounded exploration bonus")
}

func TestZeroTimeBudgetFallsBack(t *testing.T) {
	s := replay(t, mv(X, 4))

	conf := testConfig(5)
	conf.Timeout = time.Nanosecond // expires before the first iteration
	e, err := New(conf)
	require.NoError(t, err)

	got, err := e.Search(s)
	require.NoError(t, err)
	assert.True(t, s.Actions()[0].Eq(got), "falls back to the first expansion-policy action")
}

func TestConfigValidation(t *testing.T) {
	_, err := New(Config{})
	assert.True(t, game.IsConfiguration(err))

	conf := DefaultConfig(1)
	conf.SimsPerIteration = 0
	_, err = New(conf)
	assert.True(t, game.IsConfiguration(err))
}

func TestToDot(t *testing.T) {
	conf := testConfig(3)
	conf.MaxIterations = 25
	e, err := New(conf)
	require.NoError(t, err)

	assert.Equal(t, "", e.ToDot())

	_, err = e.Search(mnk.TicTacToe())
	require.NoError(t, err)

	dot := e.ToDot()
	assert.True(t, strings.HasPrefix(dot, "digraph"))
	assert.Contains(t, dot, "Visits")
}

func replayState(t *testing.T, moves ...game.PlayerMove) game.State {
	t.Helper()
	return replay(t, moves...)
}
