package mcts_test

import (
	"fmt"

	"github.com/calaverite/ludos/game"
	"github.com/calaverite/ludos/game/mnk"
	"github.com/calaverite/ludos/mcts"
)

// Example plays tic-tac-toe against itself: one engine instance per seat,
// each optimising its own row of the outcome vector.
func Example() {
	var s game.State = mnk.TicTacToe()

	engines := make([]*mcts.MCTS, 2)
	for seat := range engines {
		conf := mcts.DefaultConfig(int64(seat) + 1)
		conf.MaxIterations = 500
		conf.OutcomeIndices = []int{seat}
		e, err := mcts.New(conf)
		if err != nil {
			panic(err)
		}
		engines[seat] = e
	}

	for !s.Terminal() {
		best, err := engines[int(s.ToMove())].Search(s)
		if err != nil {
			panic(err)
		}
		if s, err = s.Apply(best); err != nil {
			panic(err)
		}
	}

	if winner := s.Outcome().Leader(); winner == game.None {
		fmt.Println("draw")
	} else {
		fmt.Printf("winner: %v\n", winner)
	}
}
