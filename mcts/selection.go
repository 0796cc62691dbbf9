package mcts

import (
	"github.com/chewxy/math32"
)

// UCB1 is the classical upper-confidence-bound selection policy:
//
//	score = childValue + c * sqrt(ln(parent visits) / (child visits + eps))
//
// childValue is the child's expected value over the selected seats. The
// first term exploits, the second explores: rarely visited children get a
// bonus that grows with the parent's visit count. Ties are broken by tie.
//
// The parent must have been visited at least once before its children are
// scored; the search loop guarantees this because selection only descends
// through nodes that have already been backpropagated into.
func UCB1(t *Tree, of ID, c float32, outcomeIndices []int, tie TieBreak) ID {
	children := t.Children(of)
	parentVisits := float32(t.Node(of).Visits())
	lnParent := math32.Log(parentVisits)

	best := math32.Inf(-1)
	ties := make([]ID, 0, 4)
	for _, kid := range children {
		child := t.Node(kid)
		nv := float32(child.Visits())
		score := child.ExpectedValue(outcomeIndices) + c*math32.Sqrt(lnParent/(nv+epsilon))
		switch {
		case score > best:
			best = score
			ties = append(ties[:0], kid)
		case score == best:
			ties = append(ties, kid)
		}
	}
	return ties[tie(len(ties))]
}
