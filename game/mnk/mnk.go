// Package mnk implements M,N,K games: a board of M rows and N columns where
// the first seat to line up K marks wins. m=n=k=3 is tic-tac-toe. Any number
// of seats >= 2 is allowed; seats take turns in rotation.
package mnk

import (
	"fmt"
	"hash/fnv"

	"github.com/pkg/errors"

	"github.com/calaverite/ludos/game"
)

var (
	_ game.State   = &MNK{}
	_ game.Mutable = &MNK{}
)

const empty = game.None

// MNK is one configuration of an M,N,K game.
type MNK struct {
	m, n, k int
	seats   int

	board     []game.Player // rowmajor, game.None = empty
	rotation  []game.Player // rotation[0] moves next
	last      game.PlayerMove
	moves     int
	remaining int

	terminal bool
	outcome  game.Outcome
}

// New creates an M,N,K game with the given number of seats. The winning run
// length k cannot exceed the board's smaller dimension.
func New(m, n, k, players int) (*MNK, error) {
	if m < 1 || n < 1 || k < 1 {
		return nil, errors.WithStack(game.ConfigurationError{Reason: fmt.Sprintf("nonpositive dimensions (%d,%d,%d)", m, n, k)})
	}
	if k > m || k > n {
		return nil, errors.WithStack(game.ConfigurationError{Reason: fmt.Sprintf("winning run %d exceeds min(%d, %d)", k, m, n)})
	}
	if players < 2 {
		return nil, errors.WithStack(game.ConfigurationError{Reason: fmt.Sprintf("%d players cannot play", players)})
	}

	g := &MNK{
		m:         m,
		n:         n,
		k:         k,
		seats:     players,
		board:     make([]game.Player, m*n),
		rotation:  make([]game.Player, players),
		last:      game.PlayerMove{Player: game.None, Single: -1},
		remaining: m * n,
		outcome:   make(game.Outcome, players),
	}
	for i := range g.board {
		g.board[i] = empty
	}
	for i := range g.rotation {
		g.rotation[i] = game.Player(i)
	}
	return g, nil
}

// TicTacToe creates a two-seat 3,3,3 game.
func TicTacToe() *MNK {
	g, err := New(3, 3, 3, 2)
	if err != nil {
		panic(err) // 3,3,3 is always valid
	}
	return g
}

// BoardSize returns the board dimensions (m rows, n columns).
func (g *MNK) BoardSize() (int, int) { return g.m, g.n }

// K returns the winning run length.
func (g *MNK) K() int { return g.k }

// At returns the seat occupying (row, col), or game.None for an empty cell.
func (g *MNK) At(row, col int) game.Player { return g.board[row*g.n+col] }

func (g *MNK) Players() int { return g.seats }

func (g *MNK) ToMove() game.Player { return g.rotation[0] }

// LastMove returns the most recent move, or {None,-1} before the first move.
func (g *MNK) LastMove() game.PlayerMove { return g.last }

func (g *MNK) MoveNumber() int { return g.moves }

func (g *MNK) Actions() []game.PlayerMove {
	if g.terminal {
		return nil
	}
	cur := g.ToMove()
	retVal := make([]game.PlayerMove, 0, g.remaining)
	for i, c := range g.board {
		if c == empty {
			retVal = append(retVal, game.PlayerMove{Player: cur, Single: game.Single(i)})
		}
	}
	return retVal
}

func (g *MNK) Apply(m game.PlayerMove) (game.State, error) {
	retVal := g.clone()
	if err := retVal.ApplyInPlace(m); err != nil {
		return nil, err
	}
	return retVal, nil
}

// ApplyInPlace advances the receiver itself. See game.Mutable.
func (g *MNK) ApplyInPlace(m game.PlayerMove) error {
	if g.terminal {
		return errors.WithStack(game.TerminalStateError{Op: "apply"})
	}
	if m.Single < 0 || int(m.Single) >= len(g.board) {
		return errors.WithStack(game.IllegalActionError{Move: m, Reason: "out of bounds"})
	}
	if m.Player != g.ToMove() {
		return errors.WithStack(game.IllegalActionError{Move: m, Reason: "out of turn"})
	}
	if g.board[int(m.Single)] != empty {
		return errors.WithStack(game.IllegalActionError{Move: m, Reason: "cell occupied"})
	}

	g.board[int(m.Single)] = m.Player
	copy(g.rotation, g.rotation[1:])
	g.rotation[len(g.rotation)-1] = m.Player
	g.last = m
	g.moves++
	g.remaining--

	switch {
	case g.winningMove(m):
		g.terminal = true
		g.outcome[int(m.Player)] = 1
	case g.remaining == 0:
		g.terminal = true // draw, outcome stays zero
	}
	return nil
}

func (g *MNK) Terminal() bool { return g.terminal }

// Outcome returns the internal outcome vector. Callers must not modify it.
func (g *MNK) Outcome() game.Outcome { return g.outcome }

func (g *MNK) Hash() game.Zobrist {
	h := fnv.New64a()
	buf := make([]byte, len(g.board)+1)
	for i, c := range g.board {
		buf[i] = byte(c + 1)
	}
	buf[len(g.board)] = byte(g.ToMove() + 1)
	h.Write(buf)
	return game.Zobrist(h.Sum64())
}

func (g *MNK) Eq(other game.State) bool {
	ot, ok := other.(*MNK)
	if !ok {
		return false
	}
	if g.m != ot.m || g.n != ot.n || g.k != ot.k || g.ToMove() != ot.ToMove() {
		return false
	}
	for i := range g.board {
		if g.board[i] != ot.board[i] {
			return false
		}
	}
	return true
}

func (g *MNK) Clone() game.State { return g.clone() }

func (g *MNK) clone() *MNK {
	retVal := &MNK{
		m:         g.m,
		n:         g.n,
		k:         g.k,
		seats:     g.seats,
		board:     make([]game.Player, len(g.board)),
		rotation:  make([]game.Player, len(g.rotation)),
		last:      g.last,
		moves:     g.moves,
		remaining: g.remaining,
		terminal:  g.terminal,
		outcome:   g.outcome.Clone(),
	}
	copy(retVal.board, g.board)
	copy(retVal.rotation, g.rotation)
	return retVal
}

// winningMove checks whether m completed a run of k. Only the four lines
// through the target cell can have changed.
func (g *MNK) winningMove(m game.PlayerMove) bool {
	row, col := int(m.Single)/g.n, int(m.Single)%g.n
	dirs := [4][2]int{
		{0, 1},  // row
		{1, 0},  // column
		{1, 1},  // diagonal
		{1, -1}, // antidiagonal
	}
	for _, d := range dirs {
		run := 1 + g.runLength(row, col, d[0], d[1], m.Player) + g.runLength(row, col, -d[0], -d[1], m.Player)
		if run >= g.k {
			return true
		}
	}
	return false
}

// runLength counts the player's consecutive marks from (row,col) exclusive,
// walking in direction (dr,dc).
func (g *MNK) runLength(row, col, dr, dc int, p game.Player) (retVal int) {
	for {
		row += dr
		col += dc
		if row < 0 || row >= g.m || col < 0 || col >= g.n {
			return
		}
		if g.board[row*g.n+col] != p {
			return
		}
		retVal++
	}
}

var glyphs = []rune("XO△▽◆◇✢✠")

func glyph(p game.Player) rune {
	if p == empty {
		return '·'
	}
	if int(p) < len(glyphs) {
		return glyphs[int(p)]
	}
	return rune('0' + int(p)%10)
}

func (g *MNK) Format(s fmt.State, c rune) {
	for i, cell := range g.board {
		if i%g.n == 0 {
			fmt.Fprint(s, "⎢ ")
		}
		fmt.Fprintf(s, "%c ", glyph(cell))
		if (i+1)%g.n == 0 {
			fmt.Fprint(s, "⎥\n")
		}
	}
}
