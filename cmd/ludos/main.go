// Command ludos plays search engines against a random opponent on an
// m,n,k board and prints each finished game. By default the first agent is
// MCTS; -minimax swaps in iterative-deepening minimax under the same time
// budget. -dot dumps the last MCTS search tree as graphviz.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"

	"github.com/calaverite/ludos/game"
	"github.com/calaverite/ludos/game/mnk"
	"github.com/calaverite/ludos/mcts"
	"github.com/calaverite/ludos/minimax"
	"github.com/calaverite/ludos/play"
)

var (
	m       = flag.Int("m", 3, "board rows")
	n       = flag.Int("n", 3, "board columns")
	k       = flag.Int("k", 3, "winning run length")
	iters   = flag.Int("iters", 2000, "MCTS iterations per move")
	seed    = flag.Int64("seed", 1, "seed for every source of randomness")
	rounds  = flag.Int("rounds", 10, "games to play, seats alternating")
	budget  = flag.Duration("budget", 200*time.Millisecond, "time budget per move")
	useMM   = flag.Bool("minimax", false, "play iterative-deepening minimax instead of MCTS")
	dotFile = flag.String("dot", "", "write the last MCTS search tree as DOT to this file")
	verbose = flag.Bool("v", false, "log every move")
)

var glyphs = []rune("XO△▽◆◇")

// seat colours, bright ANSI
var colours = []string{"9", "12", "10", "11", "13", "14"}

func main() {
	flag.Parse()
	out := termenv.NewOutput(os.Stdout)

	board, err := mnk.New(*m, *n, *k, 2)
	if err != nil {
		die(err)
	}

	var engine *play.Agent
	var tree *mcts.MCTS
	if *useMM {
		engine = minimaxAgent(*m * *n)
	} else {
		engine, tree = mctsAgent()
	}
	opponent := play.Random("random", *seed+1)

	arena, err := play.NewArena(board, engine, opponent)
	if err != nil {
		die(err)
	}
	if *verbose {
		arena.SetLogger(zerolog.New(zerolog.NewConsoleWriter()))
	}

	for r := 0; r < *rounds; r++ {
		final, err := arena.Round(r)
		if err != nil {
			die(err)
		}
		fmt.Printf("round %d\n", r)
		render(out, final.(*mnk.MNK))
	}

	for _, ag := range arena.Agents() {
		fmt.Printf("%-8s %3.0f wins %3.0f losses %3.0f draws (%.0f%%)\n",
			ag.Name, ag.Wins, ag.Losses, ag.Draws, 100*ag.WinRate())
	}

	if *dotFile != "" && tree != nil {
		if err := os.WriteFile(*dotFile, []byte(tree.ToDot()), 0644); err != nil {
			die(err)
		}
		fmt.Printf("wrote %s\n", *dotFile)
	}
}

// mctsAgent wraps an MCTS engine so that each search rewards whichever seat
// is to move, which keeps the agent correct as seats rotate between rounds.
func mctsAgent() (*play.Agent, *mcts.MCTS) {
	conf := mcts.DefaultConfig(*seed)
	conf.MaxIterations = *iters
	conf.Timeout = *budget
	engine, err := mcts.New(conf)
	if err != nil {
		die(err)
	}
	ag := play.NewAgent("mcts", play.SearcherFunc(func(s game.State) (game.PlayerMove, error) {
		engine.OutcomeIndices = []int{int(s.ToMove())}
		return engine.Search(s)
	}))
	return ag, engine
}

// minimaxAgent builds a fresh deepening controller per move, evaluating
// from the perspective of the seat to move. Values scale with the board so
// that a fast win always beats a slow one.
func minimaxAgent(cells int) *play.Agent {
	scale := float32(cells + 1)
	return play.NewAgent("minimax", play.SearcherFunc(func(s game.State) (game.PlayerMove, error) {
		seat := s.ToMove()
		conf := minimax.Config{
			Eval: func(st game.State, depth int) float32 {
				o := st.Outcome()
				if o.IsZero() {
					return 0
				}
				if o.Leader() == seat {
					return scale - float32(depth)
				}
				return float32(depth) - scale
			},
			Expand:   minimax.CacheOrdered,
			Prune:    true,
			UseCache: true,
		}
		ids, err := minimax.NewIDS(conf, *budget, cells)
		if err != nil {
			return game.PlayerMove{}, err
		}
		return ids.Search(s, true)
	}))
}

func render(out *termenv.Output, b *mnk.MNK) {
	rows, cols := b.BoardSize()
	for r := 0; r < rows; r++ {
		fmt.Fprint(out, "  ")
		for c := 0; c < cols; c++ {
			seat := b.At(r, c)
			if seat == game.None {
				fmt.Fprintf(out, "%s ", out.String("·").Faint())
				continue
			}
			cell := out.String(string(glyphs[int(seat)%len(glyphs)])).
				Foreground(out.Color(colours[int(seat)%len(colours)])).
				Bold()
			fmt.Fprintf(out, "%s ", cell)
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintln(out)
}

func die(err error) {
	fmt.Fprintf(os.Stderr, "ludos: %+v\n", err)
	os.Exit(1)
}
