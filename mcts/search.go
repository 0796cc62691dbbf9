package mcts

import (
	"time"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"

	"github.com/calaverite/ludos/game"
)

// Config configures an MCTS engine. Zero values are not useful; start from
// DefaultConfig.
type Config struct {
	Selection SelectionPolicy
	Expansion ExpansionPolicy
	Rollout   RolloutPolicy
	Combine   game.CombineFunc
	C         float32 // exploration constant

	// Per-search budgets. The loop stops at whichever is hit first.
	MaxIterations    int
	Timeout          time.Duration
	SimsPerIteration int

	// OutcomeIndices selects which seats of the outcome vector count as
	// reward. Nil means all seats.
	OutcomeIndices []int

	BreakTies TieBreak
}

// DefaultConfig returns a config with UCB1 selection, linear expansion,
// random rollouts and elementwise outcome summing. All randomness derives
// from seed, so equal seeds give reproducible searches.
func DefaultConfig(seed int64) Config {
	return Config{
		Selection:        UCB1,
		Expansion:        LinearExpansion,
		Rollout:          RandomRollout(seed),
		Combine:          game.SumOutcomes,
		C:                math32.Sqrt2,
		MaxIterations:    1000,
		Timeout:          time.Second,
		SimsPerIteration: 1,
		BreakTies:        UniformTieBreak(seed),
	}
}

func (c Config) IsValid() bool {
	return c.Selection != nil && c.Expansion != nil && c.Rollout != nil &&
		c.Combine != nil && c.BreakTies != nil && c.C >= 0 &&
		c.MaxIterations > 0 && c.Timeout > 0 && c.SimsPerIteration > 0
}

// MCTS is the engine. One engine may serve many sequential Search calls;
// nothing is shared between them but the configuration.
type MCTS struct {
	Config
	last *Tree // tree of the most recent Search, kept for ToDot only

	lumberjack
}

func New(conf Config) (*MCTS, error) {
	if !conf.IsValid() {
		return nil, errors.WithStack(game.ConfigurationError{Reason: "incomplete MCTS config"})
	}
	return &MCTS{Config: conf, lumberjack: makeLumberJack()}, nil
}

// Search grows a fresh tree from s within the configured budgets and returns
// the root action with the highest expected value. Calling it on a terminal
// state is a TerminalStateError.
func (t *MCTS) Search(s game.State) (game.PlayerMove, error) {
	if s.Terminal() {
		return game.PlayerMove{}, errors.WithStack(game.TerminalStateError{Op: "search"})
	}

	tr := newTree(s)
	t.last = tr
	deadline := time.Now().Add(t.Timeout)
	var iters int
	for ; iters < t.MaxIterations && time.Now().Before(deadline); iters++ {
		if err := t.once(tr); err != nil {
			return game.PlayerMove{}, err
		}
	}
	t.log("search done: %d iterations, %d nodes", iters, tr.Len())
	return t.bestMove(tr, s)
}

// once runs one iteration: select a leaf, maybe expand it, then simulate and
// backpropagate SimsPerIteration rollouts from the chosen node.
func (t *MCTS) once(tr *Tree) error {
	id := t.selectLeaf(tr)
	node := tr.Node(id)
	if node.visits > 0 && !node.state.Terminal() {
		var err error
		if id, err = t.expand(tr, id); err != nil {
			return err
		}
	}
	for i := 0; i < t.SimsPerIteration; i++ {
		out, err := t.Rollout(tr.Node(id).state)
		if err != nil {
			return errors.WithMessage(err, "rollout")
		}
		t.backprop(tr, id, out)
		game.ReturnOutcome(out)
	}
	return nil
}

// selectLeaf descends from the root by the selection policy until it reaches
// a node with no children or a terminal state.
func (t *MCTS) selectLeaf(tr *Tree) ID {
	id := tr.Root()
	for !tr.IsLeaf(id) {
		id = t.Selection(tr, id, t.C, t.OutcomeIndices, t.BreakTies)
	}
	return id
}

// expand creates ALL children of the leaf eagerly, in expansion-policy
// order, and returns the first of them.
func (t *MCTS) expand(tr *Tree, id ID) (ID, error) {
	node := tr.Node(id)
	actions := t.Expansion(node.state)
	if len(actions) == 0 {
		return NilID, errors.WithStack(game.IllegalActionError{Reason: "no actions on a non-terminal state"})
	}
	first := NilID
	for _, a := range actions {
		child, err := node.state.Apply(a)
		if err != nil {
			return NilID, errors.WithMessagef(err, "expanding %s", a)
		}
		kid := tr.alloc(child, a, id)
		if !first.isValid() {
			first = kid
		}
	}
	t.log("expanded node %d into %d children", id, len(actions))
	return first, nil
}

// backprop walks from the node to the root, bumping visit counts and folding
// the rollout outcome into each accumulated value. The first update on a
// node assigns; later ones go through the combine function.
func (t *MCTS) backprop(tr *Tree, id ID, out game.Outcome) {
	for n := id; n.isValid(); n = tr.Node(n).parent {
		node := tr.Node(n)
		node.visits++
		if node.acc == nil {
			node.acc = out.Clone()
		} else {
			node.acc = t.Combine(node.acc, out)
		}
	}
}

// bestMove scores every direct child of the root by expected value and
// returns the move of the best, breaking ties with the configured tie-break.
// If the budgets expired before the root was ever expanded, the first
// expansion-policy action is returned as a degraded result.
func (t *MCTS) bestMove(tr *Tree, s game.State) (game.PlayerMove, error) {
	children := tr.Children(tr.Root())
	if len(children) == 0 {
		actions := t.Expansion(s)
		if len(actions) == 0 {
			return game.PlayerMove{}, errors.WithStack(game.IllegalActionError{Reason: "no actions on a non-terminal state"})
		}
		return actions[0], nil
	}

	best := math32.Inf(-1)
	ties := make([]ID, 0, 4)
	for _, kid := range children {
		expected := tr.Node(kid).ExpectedValue(t.OutcomeIndices)
		switch {
		case expected > best:
			best = expected
			ties = append(ties[:0], kid)
		case expected == best:
			ties = append(ties, kid)
		}
	}
	pick := ties[t.BreakTies(len(ties))]
	return tr.Node(pick).move, nil
}
