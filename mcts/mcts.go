// Package mcts implements Monte Carlo Tree Search over any game satisfying
// the game.State contract. Each call to Search grows a private tree -
// selection, expansion, simulation, backpropagation - and discards it when
// the call returns.
package mcts

import (
	rng "github.com/leesper/go_rng"

	"github.com/calaverite/ludos/game"
)

// epsilon keeps expected-value and exploration denominators away from zero
// for children that have never been visited.
const epsilon float32 = 1e-5

// ID addresses a node inside a Tree's arena.
type ID int32

const NilID ID = -1

func (id ID) isValid() bool { return id >= 0 }

// TieBreak picks one of n equally good candidates and returns its index.
// Engines call it with n >= 1.
type TieBreak func(n int) int

// First always picks the first candidate. Deterministic, handy under test.
func First(n int) int { return 0 }

// UniformTieBreak picks uniformly at random from the given seed. This is the
// default tie-break.
func UniformTieBreak(seed int64) TieBreak {
	u := rng.NewUniformGenerator(seed)
	return func(n int) int {
		if n <= 1 {
			return 0
		}
		return int(u.Int32n(int32(n)))
	}
}

// ExpansionPolicy produces the actions a leaf is expanded with. The order
// matters: children are created in this order and the first one is the node
// the iteration continues with.
type ExpansionPolicy func(s game.State) []game.PlayerMove

// LinearExpansion expands in the state's natural action order.
func LinearExpansion(s game.State) []game.PlayerMove { return s.Actions() }

// RolloutPolicy plays a state out to the end and reports the outcome vector.
// The engine takes ownership of the returned vector and may recycle it; the
// policy must not retain it.
type RolloutPolicy func(s game.State) (game.Outcome, error)

// RandomRollout returns the classic light playout: clone the state, take
// uniformly random actions until the game ends, report the outcome. States
// implementing game.Mutable are advanced in place, skipping the per-move
// copy.
func RandomRollout(seed int64) RolloutPolicy {
	u := rng.NewUniformGenerator(seed)
	return func(s game.State) (game.Outcome, error) {
		st := s.Clone()
		mu, destructive := st.(game.Mutable)
		for !st.Terminal() {
			acts := st.Actions()
			if len(acts) == 0 {
				return nil, game.IllegalActionError{Reason: "no actions on a non-terminal state"}
			}
			a := acts[u.Int32n(int32(len(acts)))]
			if destructive {
				if err := mu.ApplyInPlace(a); err != nil {
					return nil, err
				}
				continue
			}
			next, err := st.Apply(a)
			if err != nil {
				return nil, err
			}
			st = next
		}
		final := st.Outcome()
		retVal := game.BorrowOutcome(len(final))
		copy(retVal, final)
		return retVal, nil
	}
}

// SelectionPolicy descends one level: given a non-leaf node, pick the child
// to continue through.
type SelectionPolicy func(t *Tree, of ID, c float32, outcomeIndices []int, tie TieBreak) ID
