package game

import (
	"fmt"
)

// Player is a seat at the table. It doubles as the index into an Outcome
// vector. Seats are densely numbered from 0.
type Player int32

// None is the "no seat" sentinel, used for moves that don't exist yet.
const None Player = -1

func (p Player) Format(s fmt.State, c rune) {
	if p == None {
		fmt.Fprint(s, "none")
		return
	}
	fmt.Fprintf(s, "P%d", int32(p))
}

// Single represents a move as a single number. For board games it is
// typically the rowmajor index of the target cell, but the engines treat it
// as opaque - any game that can number its moves can use it.
type Single int32

// PlayerMove is a tuple indicating the player and the move to be made.
type PlayerMove struct {
	Player Player
	Single Single
}

// Eq returns true if both denote the same move by the same player.
func (m PlayerMove) Eq(other PlayerMove) bool {
	return m.Player == other.Player && m.Single == other.Single
}

func (m PlayerMove) Format(s fmt.State, c rune) { fmt.Fprintf(s, "%v@%d", m.Player, m.Single) }

// Zobrist is a hash of a game state. The name is kept out of habit - only
// subtractive board games use actual zobrist hashing, everything else may
// hash however it likes, as long as equal states hash equally.
type Zobrist uint64

// State is one configuration of a game. Implementations are treated as
// immutable across a logical turn: Apply returns a fresh State and leaves
// the receiver untouched.
//
// The search engines know nothing about the game beyond this contract.
type State interface {
	// Actions enumerates the legal moves for the player to move, in the
	// game's natural order, without duplicates. Empty iff Terminal.
	Actions() []PlayerMove

	// Apply produces the successor state. It fails with an
	// IllegalActionError when the move is out of bounds, contests an
	// occupied slot or is issued out of turn, and with a
	// TerminalStateError when the game is already over.
	Apply(m PlayerMove) (State, error)

	// Terminal reports whether the game has ended.
	Terminal() bool

	// Outcome returns the per-seat outcome vector. The all-zero vector
	// means no decided outcome (undecided or a draw). The returned vector
	// may alias internal state; callers must treat it as read-only.
	Outcome() Outcome

	ToMove() Player // the seat whose turn it is
	Players() int   // number of seats

	// generics
	Hash() Zobrist
	Eq(other State) bool
	Clone() State
}

// Mutable is a State that additionally supports destructive moves. Rollout
// policies use it to opt out of copy-on-write: the receiver itself advances.
// Callers own the aliasing consequences - clone first.
type Mutable interface {
	State
	ApplyInPlace(m PlayerMove) error
}
