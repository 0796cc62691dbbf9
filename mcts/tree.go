package mcts

import (
	"fmt"

	"github.com/calaverite/ludos/game"
)

// Node is one node of the search tree. It wraps a state, remembers which
// move led here, and accumulates rollout statistics.
type Node struct {
	state  game.State
	move   game.PlayerMove // move that led here; {None,-1} at the root
	parent ID
	visits uint32
	acc    game.Outcome // nil until the first backpropagation
}

func (n *Node) State() game.State     { return n.state }
func (n *Node) Move() game.PlayerMove { return n.move }
func (n *Node) Parent() ID            { return n.parent }
func (n *Node) Visits() uint32        { return n.visits }

// Accumulated returns the outcome vector summed over every rollout that
// passed through this node, or nil if none did.
func (n *Node) Accumulated() game.Outcome { return n.acc }

// ExpectedValue is the node's mean value over the selected seats:
// sum(acc over outcomeIndices) / (visits + epsilon).
func (n *Node) ExpectedValue(outcomeIndices []int) float32 {
	var sum float32
	if n.acc != nil {
		sum = n.acc.SumIndices(outcomeIndices)
	}
	return sum / (float32(n.visits) + epsilon)
}

func (n *Node) Format(s fmt.State, c rune) {
	fmt.Fprintf(s, "{Move: %s, Visits: %d, Acc: %v}", n.move, n.visits, n.acc)
}

// Tree is an arena of nodes. Parent/child links are indices into the arena,
// which keeps ownership flat and makes teardown a single slice drop.
type Tree struct {
	nodes    []Node
	children [][]ID // aligned with nodes; insertion order = expansion order
}

func newTree(root game.State) *Tree {
	t := &Tree{
		nodes:    make([]Node, 0, 1024),
		children: make([][]ID, 0, 1024),
	}
	t.alloc(root, game.PlayerMove{Player: game.None, Single: -1}, NilID)
	return t
}

// alloc appends a fresh node to the arena and links it under parent.
func (t *Tree) alloc(s game.State, move game.PlayerMove, parent ID) ID {
	id := ID(len(t.nodes))
	t.nodes = append(t.nodes, Node{
		state:  s,
		move:   move,
		parent: parent,
	})
	t.children = append(t.children, nil)
	if parent.isValid() {
		t.children[parent] = append(t.children[parent], id)
	}
	return id
}

// Root is always the first allocation.
func (t *Tree) Root() ID { return 0 }

func (t *Tree) Node(id ID) *Node { return &t.nodes[int(id)] }

// Children returns the child IDs of a node, in expansion order.
func (t *Tree) Children(of ID) []ID { return t.children[int(of)] }

// Len returns the number of nodes in the arena.
func (t *Tree) Len() int { return len(t.nodes) }

// IsLeaf reports whether the node has no children or holds a terminal state.
func (t *Tree) IsLeaf(id ID) bool {
	return len(t.children[int(id)]) == 0 || t.nodes[int(id)].state.Terminal()
}
