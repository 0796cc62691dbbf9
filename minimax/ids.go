package minimax

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/calaverite/ludos/game"
)

// IDS wraps a Minimax engine in iterative deepening under a wall-clock
// budget: depth 1, then 2, and so on until the budget elapses or MaxDepth
// completes. The deepening loop runs in its own goroutine; the deadline
// cancels it through the context threaded into the recursion, so even a
// single long depth pass is interrupted rather than waited out. The action
// of the last fully completed depth wins - a timed-out pass is discarded.
//
// The wrapped engine's cache is carried across depths within one Search
// call and is only reset when the caller asks for it at the top of a call.
// Since entries are keyed by (state, depth-from-root), values memoized by a
// shallow pass are reused verbatim by deeper ones: deepening with the cache
// on trades accuracy below cached nodes for speed.
type IDS struct {
	mm       *Minimax
	Budget   time.Duration
	MaxDepth int
	logger   zerolog.Logger
}

// NewIDS builds the controller. conf.Depth is ignored; the controller sets
// the depth of each pass itself, up to maxDepth.
func NewIDS(conf Config, budget time.Duration, maxDepth int) (*IDS, error) {
	if maxDepth < 1 {
		return nil, errors.WithStack(game.ConfigurationError{Reason: "iterative deepening needs maxDepth >= 1"})
	}
	if budget < 0 {
		return nil, errors.WithStack(game.ConfigurationError{Reason: "negative time budget"})
	}
	conf.Depth = maxDepth
	mm, err := New(conf)
	if err != nil {
		return nil, err
	}
	return &IDS{mm: mm, Budget: budget, MaxDepth: maxDepth, logger: zerolog.Nop()}, nil
}

// SetLogger installs a logger for per-depth progress. Default no-op.
func (s *IDS) SetLogger(l zerolog.Logger) {
	s.logger = l
	s.mm.SetLogger(l)
}

// Cache exposes the wrapped engine's cache, or nil when caching is off.
func (s *IDS) Cache() *Cache { return s.mm.Cache() }

// Search runs the deepening loop under the budget and returns the best
// action of the deepest completed pass. Running out of time is not an
// error: with nothing completed the first expansion-policy action is
// returned as the degraded fallback. Search never blocks meaningfully past
// the budget - the worker stops at its next context check.
func (s *IDS) Search(state game.State, resetCache bool) (game.PlayerMove, error) {
	if state.Terminal() {
		return game.PlayerMove{}, errors.WithStack(game.TerminalStateError{Op: "search"})
	}
	if resetCache && s.mm.cache != nil {
		s.mm.cache.Reset()
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.Budget)
	defer cancel()

	// Buffered to MaxDepth: the worker can never block on send, so a
	// cancelled controller cannot deadlock it.
	completed := make(chan game.PlayerMove, s.MaxDepth)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(completed)
		for depth := 1; depth <= s.MaxDepth; depth++ {
			best, value, err := s.mm.searchRoot(ctx, state, depth)
			if err != nil {
				return err
			}
			completed <- best
			s.logger.Debug().
				Int("depth", depth).
				Float32("value", value).
				Uint64("nodes", s.mm.nodes).
				Msg("deepening pass complete")
		}
		return nil
	})

	err := g.Wait()

	// Drain whatever made it through; the most recent entry is the
	// deepest completed pass.
	var best game.PlayerMove
	var got bool
	for m := range completed {
		best, got = m, true
	}

	if err != nil && !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
		return game.PlayerMove{}, err
	}
	if !got {
		actions := s.mm.conf.Expand(state, 0, s.mm.cache)
		if len(actions) == 0 {
			return game.PlayerMove{}, errors.WithStack(game.IllegalActionError{Reason: "no actions on a non-terminal state"})
		}
		s.logger.Debug().Msg("no depth completed in time; falling back to the first action")
		return actions[0], nil
	}
	return best, nil
}
