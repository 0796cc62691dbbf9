// Package c4 implements Connect Four style games: pieces drop to the lowest
// empty cell of a column, and the first seat to line up k pieces wins. The
// classic game is a 6x7 board with k=4.
package c4

import (
	"fmt"
	"hash/fnv"

	"github.com/pkg/errors"

	"github.com/calaverite/ludos/game"
)

var (
	_ game.State   = &C4{}
	_ game.Mutable = &C4{}
)

const empty = game.None

// C4 is one configuration of a Connect Four style game. A move's Single is
// the column to drop into.
type C4 struct {
	rows, cols, k int
	seats         int

	board     []game.Player // rowmajor, row 0 on top, game.None = empty
	height    []int         // pieces stacked per column
	rotation  []game.Player // rotation[0] moves next
	last      game.PlayerMove
	moves     int
	remaining int

	terminal bool
	outcome  game.Outcome
}

// New creates a game on a rows x cols board where k in a row wins. The run
// length k cannot exceed the board's larger dimension, or no line would fit.
func New(rows, cols, k, players int) (*C4, error) {
	if rows < 1 || cols < 1 || k < 1 {
		return nil, errors.WithStack(game.ConfigurationError{Reason: fmt.Sprintf("nonpositive dimensions (%d,%d,%d)", rows, cols, k)})
	}
	if k > rows && k > cols {
		return nil, errors.WithStack(game.ConfigurationError{Reason: fmt.Sprintf("winning run %d fits neither dimension (%d,%d)", k, rows, cols)})
	}
	if players < 2 {
		return nil, errors.WithStack(game.ConfigurationError{Reason: fmt.Sprintf("%d players cannot play", players)})
	}

	g := &C4{
		rows:      rows,
		cols:      cols,
		k:         k,
		seats:     players,
		board:     make([]game.Player, rows*cols),
		height:    make([]int, cols),
		rotation:  make([]game.Player, players),
		last:      game.PlayerMove{Player: game.None, Single: -1},
		remaining: rows * cols,
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

// ConnectFour creates the classic two-seat 6x7 game.
func ConnectFour() *C4 {
	g, err := New(6, 7, 4, 2)
	if err != nil {
		panic(err) // 6,7,4 is always valid
	}
	return g
}

// BoardSize returns the board dimensions (rows, columns).
func (g *C4) BoardSize() (int, int) { return g.rows, g.cols }

// K returns the winning run length.
func (g *C4) K() int { return g.k }

// At returns the seat occupying (row, col), or game.None for an empty cell.
// Row 0 is the top of the board.
func (g *C4) At(row, col int) game.Player { return g.board[row*g.cols+col] }

// Height returns the number of pieces stacked in col.
func (g *C4) Height(col int) int { return g.height[col] }

func (g *C4) Players() int { return g.seats }

func (g *C4) ToMove() game.Player { return g.rotation[0] }

// LastMove returns the most recent move, or {None,-1} before the first move.
func (g *C4) LastMove() game.PlayerMove { return g.last }

func (g *C4) MoveNumber() int { return g.moves }

// Actions enumerates the non-full columns, leftmost first.
func (g *C4) Actions() []game.PlayerMove {
	if g.terminal {
		return nil
	}
	cur := g.ToMove()
	retVal := make([]game.PlayerMove, 0, g.cols)
	for col := 0; col < g.cols; col++ {
		if g.height[col] < g.rows {
			retVal = append(retVal, game.PlayerMove{Player: cur, Single: game.Single(col)})
		}
	}
	return retVal
}

func (g *C4) Apply(m game.PlayerMove) (game.State, error) {
	retVal := g.clone()
	if err := retVal.ApplyInPlace(m); err != nil {
		return nil, err
	}
	return retVal, nil
}

// ApplyInPlace advances the receiver itself. See game.Mutable.
func (g *C4) ApplyInPlace(m game.PlayerMove) error {
	if g.terminal {
		return errors.WithStack(game.TerminalStateError{Op: "apply"})
	}
	if m.Single < 0 || int(m.Single) >= g.cols {
		return errors.WithStack(game.IllegalActionError{Move: m, Reason: "no such column"})
	}
	if m.Player != g.ToMove() {
		return errors.WithStack(game.IllegalActionError{Move: m, Reason: "out of turn"})
	}
	col := int(m.Single)
	if g.height[col] == g.rows {
		return errors.WithStack(game.IllegalActionError{Move: m, Reason: "column full"})
	}

	row := g.rows - 1 - g.height[col]
	g.board[row*g.cols+col] = m.Player
	g.height[col]++
	copy(g.rotation, g.rotation[1:])
	g.rotation[len(g.rotation)-1] = m.Player
	g.last = m
	g.moves++
	g.remaining--

	switch {
	case g.winningDrop(row, col, m.Player):
		g.terminal = true
		g.outcome[int(m.Player)] = 1
	case g.remaining == 0:
		g.terminal = true // draw, outcome stays zero
	}
	return nil
}

func (g *C4) Terminal() bool { return g.terminal }

// Outcome returns the internal outcome vector. Callers must not modify it.
func (g *C4) Outcome() game.Outcome { return g.outcome }

func (g *C4) Hash() game.Zobrist {
	h := fnv.New64a()
	buf := make([]byte, len(g.board)+1)
	for i, c := range g.board {
		buf[i] = byte(c + 1)
	}
	buf[len(g.board)] = byte(g.ToMove() + 1)
	h.Write(buf)
	return game.Zobrist(h.Sum64())
}

func (g *C4) Eq(other game.State) bool {
	ot, ok := other.(*C4)
	if !ok {
		return false
	}
	if g.rows != ot.rows || g.cols != ot.cols || g.k != ot.k || g.ToMove() != ot.ToMove() {
		return false
	}
	for i := range g.board {
		if g.board[i] != ot.board[i] {
			return false
		}
	}
	return true
}

func (g *C4) Clone() game.State { return g.clone() }

func (g *C4) clone() *C4 {
	retVal := &C4{
		rows:      g.rows,
		cols:      g.cols,
		k:         g.k,
		seats:     g.seats,
		board:     make([]game.Player, len(g.board)),
		height:    make([]int, len(g.height)),
		rotation:  make([]game.Player, len(g.rotation)),
		last:      g.last,
		moves:     g.moves,
		remaining: g.remaining,
		terminal:  g.terminal,
		outcome:   g.outcome.Clone(),
	}
	copy(retVal.board, g.board)
	copy(retVal.height, g.height)
	copy(retVal.rotation, g.rotation)
	return retVal
}

// winningDrop checks whether the piece just landed at (row,col) completed a
// run of k. Only the four lines through the landing cell can have changed.
func (g *C4) winningDrop(row, col int, p game.Player) bool {
	dirs := [4][2]int{
		{0, 1},  // row
		{1, 0},  // column
		{1, 1},  // diagonal
		{1, -1}, // antidiagonal
	}
	for _, d := range dirs {
		run := 1 + g.runLength(row, col, d[0], d[1], p) + g.runLength(row, col, -d[0], -d[1], p)
		if run >= g.k {
			return true
		}
	}
	return false
}

// runLength counts the player's consecutive pieces from (row,col) exclusive,
// walking in direction (dr,dc).
func (g *C4) runLength(row, col, dr, dc int, p game.Player) (retVal int) {
	for {
		row += dr
		col += dc
		if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
			return
		}
		if g.board[row*g.cols+col] != p {
			return
		}
		retVal++
	}
}

var glyphs = []rune("●○◆◇✢✠")

func glyph(p game.Player) rune {
	if p == empty {
		return '·'
	}
	if int(p) < len(glyphs) {
		return glyphs[int(p)]
	}
	return rune('0' + int(p)%10)
}

func (g *C4) Format(s fmt.State, c rune) {
	for i, cell := range g.board {
		if i%g.cols == 0 {
			fmt.Fprint(s, "⎢ ")
		}
		fmt.Fprintf(s, "%c ", glyph(cell))
		if (i+1)%g.cols == 0 {
			fmt.Fprint(s, "⎥\n")
		}
	}
}
