// Package play orchestrates matches between search agents: seats rotate
// between rounds, outcomes tally per agent, and numeric search parameters
// can ramp across rounds with a Schedule.
package play

import (
	rng "github.com/leesper/go_rng"
	"github.com/pkg/errors"

	"github.com/calaverite/ludos/game"
)

// A Searcher proposes an action for a state. Both engine types satisfy it
// through SearcherFunc.
type Searcher interface {
	Search(s game.State) (game.PlayerMove, error)
}

// SearcherFunc adapts a plain function to the Searcher interface.
type SearcherFunc func(s game.State) (game.PlayerMove, error)

func (f SearcherFunc) Search(s game.State) (game.PlayerMove, error) { return f(s) }

// An Agent is a named player with running match statistics. The statistics
// belong to the arena loop; agents themselves only search.
type Agent struct {
	Searcher
	Name string

	Wins   float32
	Losses float32
	Draws  float32
}

func NewAgent(name string, s Searcher) *Agent {
	return &Agent{Searcher: s, Name: name}
}

// WinRate reports wins over games played, 0 before any game.
func (a *Agent) WinRate() float32 {
	total := a.Wins + a.Losses + a.Draws
	if total == 0 {
		return 0
	}
	return a.Wins / total
}

func (a *Agent) resetStats() {
	a.Wins, a.Losses, a.Draws = 0, 0, 0
}

// Random returns an agent that plays a uniformly random legal action.
func Random(name string, seed int64) *Agent {
	gen := rng.NewUniformGenerator(seed)
	return NewAgent(name, SearcherFunc(func(s game.State) (game.PlayerMove, error) {
		actions := s.Actions()
		if len(actions) == 0 {
			return game.PlayerMove{}, errors.WithStack(game.TerminalStateError{Op: "move"})
		}
		return actions[gen.Int32n(int32(len(actions)))], nil
	}))
}
