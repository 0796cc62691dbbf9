package minimax

import (
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calaverite/ludos/game"
)

func TestNewIDSValidation(t *testing.T) {
	conf := Config{Eval: winLossFor(X)}

	_, err := NewIDS(conf, time.Second, 0)
	assert.True(t, game.IsConfiguration(err), "got %v", err)

	_, err = NewIDS(conf, -time.Second, 4)
	assert.True(t, game.IsConfiguration(err), "got %v", err)

	// conf.Depth is the controller's to set.
	s, err := NewIDS(conf, time.Second, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, s.MaxDepth)
}

func TestIDSTerminalState(t *testing.T) {
	s := replay(t, mv(X, 0), mv(O, 3), mv(X, 1), mv(O, 4), mv(X, 2))
	require.True(t, s.Terminal())

	ids, err := NewIDS(Config{Eval: winLossFor(X), Prune: true}, time.Second, 4)
	require.NoError(t, err)
	_, err = ids.Search(s, false)
	assert.True(t, game.IsTerminalState(err))
}

func TestIDSBlocksThreat(t *testing.T) {
	s := threatened(t)

	ids, err := NewIDS(Config{Eval: winLossFor(X), Prune: true}, 5*time.Second, 4)
	require.NoError(t, err)
	ids.SetLogger(zerolog.New(io.Discard))

	got, err := ids.Search(s, false)
	require.NoError(t, err)
	assert.True(t, mv(X, 5).Eq(got), "got %s", got)
}

func TestIDSZeroBudgetFallsBack(t *testing.T) {
	// An already-expired deadline completes no depth; the controller must
	// still hand back a legal action promptly rather than error or hang.
	s := threatened(t)

	ids, err := NewIDS(Config{Eval: winLossFor(X), Prune: true}, 0, 6)
	require.NoError(t, err)

	start := time.Now()
	got, err := ids.Search(s, false)
	require.NoError(t, err)
	assert.True(t, s.Actions()[0].Eq(got), "got %s", got)
	assert.Less(t, time.Since(start), time.Second)
}

func TestIDSCacheCarried(t *testing.T) {
	s := threatened(t)

	ids, err := NewIDS(Config{Eval: winLossFor(X), Prune: true, UseCache: true}, 5*time.Second, 4)
	require.NoError(t, err)

	legal := func(m game.PlayerMove) bool {
		for _, a := range s.Actions() {
			if a.Eq(m) {
				return true
			}
		}
		return false
	}

	got, err := ids.Search(s, false)
	require.NoError(t, err)
	assert.True(t, legal(got), "got %s", got)
	assert.NotZero(t, ids.Cache().Len(), "deepening passes populate the cache")

	// A reset call starts cold and still answers.
	got, err = ids.Search(s, true)
	require.NoError(t, err)
	assert.True(t, legal(got), "got %s", got)
}
