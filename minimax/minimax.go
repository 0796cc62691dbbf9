// Package minimax implements depth-limited minimax search with alpha-beta
// pruning, a transposition cache of bounded values, and a time-boxed
// iterative-deepening controller. Like the mcts package it is generic over
// the game.State contract: depth parity decides who is maximizing (even
// depths) and who is minimizing (odd depths).
package minimax

import (
	"context"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/calaverite/ludos/game"
)

// Config configures a Minimax engine.
type Config struct {
	// Depth is the cutoff: at this depth (or at a terminal state) Eval is
	// called instead of recursing.
	Depth int

	Eval   EvalFunc
	Expand ExpandFunc // nil means Linear

	// UseCache memoizes values by (state, depth). Cached values carry
	// bounds when pruning is on; see Bound.
	UseCache bool

	// Prune enables alpha-beta cutoffs. Pruning never changes the value of
	// the search, only how much of the tree it touches.
	Prune bool
}

// Minimax is the engine. It executes synchronously and single-threaded; the
// cache is owned by this instance and must not be shared with concurrently
// running searches.
type Minimax struct {
	conf   Config
	cache  *Cache
	nodes  uint64 // nodes touched by the current root search
	logger zerolog.Logger
}

func New(conf Config) (*Minimax, error) {
	if conf.Depth < 1 {
		return nil, errors.WithStack(game.ConfigurationError{Reason: "minimax depth must be at least 1"})
	}
	if conf.Eval == nil {
		return nil, errors.WithStack(game.ConfigurationError{Reason: "minimax needs an evaluation function"})
	}
	if conf.Expand == nil {
		conf.Expand = Linear
	}
	m := &Minimax{conf: conf, logger: zerolog.Nop()}
	if conf.UseCache {
		m.cache = NewCache()
	}
	return m, nil
}

// SetLogger installs a logger for per-search summaries. The default is a
// no-op logger.
func (m *Minimax) SetLogger(l zerolog.Logger) { m.logger = l }

// Cache exposes the engine's cache, or nil when caching is off.
func (m *Minimax) Cache() *Cache { return m.cache }

// Search returns the best action at the configured depth. resetCache drops
// the memoized values first, which keeps memory bounded across unrelated
// positions at the cost of re-deriving shared ones.
func (m *Minimax) Search(s game.State, resetCache bool) (game.PlayerMove, error) {
	if resetCache && m.cache != nil {
		m.cache.Reset()
	}
	best, value, err := m.searchRoot(context.Background(), s, m.conf.Depth)
	if err != nil {
		return game.PlayerMove{}, err
	}
	m.logger.Debug().
		Int("depth", m.conf.Depth).
		Float32("value", value).
		Uint64("nodes", m.nodes).
		Msg("minimax search done")
	return best, nil
}

// searchRoot evaluates every root action and picks the extremal one. Ties
// resolve to the first action in expansion order, deterministically. The
// root acts as the maximizer.
func (m *Minimax) searchRoot(ctx context.Context, s game.State, limit int) (game.PlayerMove, float32, error) {
	if s.Terminal() {
		return game.PlayerMove{}, 0, errors.WithStack(game.TerminalStateError{Op: "search"})
	}
	m.nodes = 0

	actions := m.conf.Expand(s, 0, m.cache)
	if len(actions) == 0 {
		return game.PlayerMove{}, 0, errors.WithStack(game.IllegalActionError{Reason: "no actions on a non-terminal state"})
	}

	alpha, beta := math32.Inf(-1), math32.Inf(1)
	best := math32.Inf(-1)
	bestMove := actions[0]
	for _, a := range actions {
		child, err := s.Apply(a)
		if err != nil {
			return game.PlayerMove{}, 0, errors.WithMessagef(err, "root action %s", a)
		}
		v, err := m.minValue(ctx, child, 1, limit, alpha, beta)
		if err != nil {
			return game.PlayerMove{}, 0, err
		}
		if v > best {
			best = v
			bestMove = a
		}
		if m.conf.Prune && best > alpha {
			alpha = best // no cutoff at the root: every action gets valued
		}
	}
	return bestMove, best, nil
}

func (m *Minimax) maxValue(ctx context.Context, s game.State, depth, limit int, alpha, beta float32) (float32, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.nodes++
	if s.Terminal() || depth == limit {
		return m.conf.Eval(s, depth), nil
	}

	if m.cache != nil {
		var v float32
		var hit bool
		alpha, beta, v, hit = m.probe(s, depth, alpha, beta)
		if hit {
			return v, nil
		}
	}
	// the window the computed value gets classified against
	a0, b0 := alpha, beta

	value := math32.Inf(-1)
	for _, a := range m.conf.Expand(s, depth, m.cache) {
		child, err := s.Apply(a)
		if err != nil {
			return 0, errors.WithMessagef(err, "expanding %s at depth %d", a, depth)
		}
		v, err := m.minValue(ctx, child, depth+1, limit, alpha, beta)
		if err != nil {
			return 0, err
		}
		if v > value {
			value = v
		}
		if m.conf.Prune {
			if value >= beta {
				break // beta cutoff
			}
			if value > alpha {
				alpha = value
			}
		}
	}
	if m.cache != nil {
		m.storeBound(s, depth, a0, b0, value)
	}
	return value, nil
}

// minValue is the dual of maxValue.
func (m *Minimax) minValue(ctx context.Context, s game.State, depth, limit int, alpha, beta float32) (float32, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.nodes++
	if s.Terminal() || depth == limit {
		return m.conf.Eval(s, depth), nil
	}

	if m.cache != nil {
		var v float32
		var hit bool
		alpha, beta, v, hit = m.probe(s, depth, alpha, beta)
		if hit {
			return v, nil
		}
	}
	a0, b0 := alpha, beta

	value := math32.Inf(1)
	for _, a := range m.conf.Expand(s, depth, m.cache) {
		child, err := s.Apply(a)
		if err != nil {
			return 0, errors.WithMessagef(err, "expanding %s at depth %d", a, depth)
		}
		v, err := m.maxValue(ctx, child, depth+1, limit, alpha, beta)
		if err != nil {
			return 0, err
		}
		if v < value {
			value = v
		}
		if m.conf.Prune {
			if value <= alpha {
				break // alpha cutoff
			}
			if value < beta {
				beta = value
			}
		}
	}
	if m.cache != nil {
		m.storeBound(s, depth, a0, b0, value)
	}
	return value, nil
}

// probe consults the cache. On a usable hit it returns (_, _, v, true) and
// the search stops right there. Otherwise the returned window may be
// narrower than the one passed in: a LowerBound raises alpha, an UpperBound
// lowers beta. With pruning off there is no window, so every cached value
// is exact and returned immediately.
func (m *Minimax) probe(s game.State, depth int, alpha, beta float32) (float32, float32, float32, bool) {
	e, ok := m.cache.load(s, depth)
	if !ok {
		return alpha, beta, 0, false
	}
	if !m.conf.Prune {
		return alpha, beta, e.value, true
	}
	switch e.bound {
	case Exact:
		return alpha, beta, e.value, true
	case LowerBound:
		if e.value >= beta {
			return alpha, beta, e.value, true
		}
		if e.value > alpha {
			alpha = e.value
		}
	case UpperBound:
		if e.value <= alpha {
			return alpha, beta, e.value, true
		}
		if e.value < beta {
			beta = e.value
		}
	}
	return alpha, beta, 0, false
}

// storeBound classifies a freshly computed value against the window it was
// computed under and stores it. A value at or below alpha only proves an
// upper bound (something got cut off below), at or above beta only a lower
// bound; strictly inside the window it is exact. With pruning off there is
// no window and every value is exact.
func (m *Minimax) storeBound(s game.State, depth int, alpha, beta, value float32) {
	if !m.conf.Prune {
		m.cache.store(s, depth, Exact, value)
		return
	}
	switch {
	case value <= alpha:
		m.cache.store(s, depth, UpperBound, value)
	case value >= beta:
		m.cache.store(s, depth, LowerBound, value)
	default:
		m.cache.store(s, depth, Exact, value)
	}
}
