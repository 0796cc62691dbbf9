package minimax

import (
	"sort"

	"github.com/calaverite/ludos/game"
)

// EvalFunc statically evaluates a state. Higher is better for the
// maximizing side; that sign convention is the caller's responsibility.
// depth tells the evaluator how deep in the tree it is being asked, which
// distinguishes fast wins from slow ones.
type EvalFunc func(s game.State, depth int) float32

// ExpandFunc produces the actions to consider at a node, in order. The
// order drives pruning efficiency: trying strong moves first cuts more.
// cache may be nil when the engine runs cacheless.
type ExpandFunc func(s game.State, depth int, c *Cache) []game.PlayerMove

// Linear expands in the state's natural action order.
func Linear(s game.State, depth int, c *Cache) []game.PlayerMove { return s.Actions() }

// CacheOrdered sorts actions by the cached value of the state each one leads
// to: descending at maximizing depths (even), ascending at minimizing ones
// (odd). Actions whose successor was never cached sort as if valued 0. With
// a nil cache it degrades to the natural order.
func CacheOrdered(s game.State, depth int, c *Cache) []game.PlayerMove {
	actions := s.Actions()
	if c == nil || len(actions) < 2 {
		return actions
	}

	values := make([]float32, len(actions))
	for i, a := range actions {
		child, err := s.Apply(a)
		if err != nil {
			continue // sorts as the 0 sentinel; the search will surface the error
		}
		values[i] = c.Value(child, depth+1)
	}

	maximizing := depth%2 == 0
	order := make([]int, len(actions))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		vi, vj := values[order[i]], values[order[j]]
		if maximizing {
			return vi > vj
		}
		return vi < vj
	})

	retVal := make([]game.PlayerMove, len(actions))
	for i, j := range order {
		retVal[i] = actions[j]
	}
	return retVal
}
