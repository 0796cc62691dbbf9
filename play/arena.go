package play

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/calaverite/ludos/game"
)

// Arena pits one agent per seat against each other, always from the same
// starting position. Seats rotate by one between rounds so no agent keeps
// the first-mover advantage.
type Arena struct {
	start  game.State
	agents []*Agent
	logger zerolog.Logger

	rounds int
	stats  Statistics
}

// NewArena builds an arena over a non-terminal starting position; it wants
// exactly one agent per seat.
func NewArena(start game.State, agents ...*Agent) (*Arena, error) {
	if start.Terminal() {
		return nil, errors.WithStack(game.TerminalStateError{Op: "arena"})
	}
	if len(agents) != start.Players() {
		return nil, errors.WithStack(game.ConfigurationError{Reason: "arena needs exactly one agent per seat"})
	}
	return &Arena{
		start:  start,
		agents: agents,
		logger: zerolog.Nop(),
		stats:  makeStatistics(),
	}, nil
}

// SetLogger installs a logger for per-move and per-round progress. The
// default is a no-op logger.
func (a *Arena) SetLogger(l zerolog.Logger) { a.logger = l }

func (a *Arena) Agents() []*Agent { return a.agents }

// Statistics exposes the recorded win-rate history.
func (a *Arena) Statistics() *Statistics { return &a.stats }

// seatAgent maps a seat to the agent holding it in the given round.
func (a *Arena) seatAgent(seat game.Player, round int) *Agent {
	return a.agents[(int(seat)+round)%len(a.agents)]
}

// Round plays one game from the starting position, updates the tallies and
// returns the final state. The round number decides the seat assignment.
func (a *Arena) Round(round int) (game.State, error) {
	s := a.start.Clone()
	for !s.Terminal() {
		seat := s.ToMove()
		ag := a.seatAgent(seat, round)
		m, err := ag.Search(s)
		if err != nil {
			return nil, errors.WithMessagef(err, "round %d, %s to move", round, ag.Name)
		}
		next, err := s.Apply(m)
		if err != nil {
			return nil, errors.WithMessagef(err, "round %d, %s played %s", round, ag.Name, m)
		}
		a.logger.Debug().
			Int("round", round).
			Str("agent", ag.Name).
			Str("move", fmt.Sprintf("%v", m)).
			Msg("played")
		s = next
	}

	winner := s.Outcome().Leader()
	if winner == game.None {
		for _, ag := range a.agents {
			ag.Draws++
		}
	} else {
		for seat := 0; seat < len(a.agents); seat++ {
			ag := a.seatAgent(game.Player(seat), round)
			if game.Player(seat) == winner {
				ag.Wins++
			} else {
				ag.Losses++
			}
		}
	}
	a.logger.Info().
		Int("round", round).
		Str("winner", fmt.Sprintf("%v", winner)).
		Msg("round over")
	return s, nil
}

// Play runs the given number of rounds, recording the win-rate history
// after each. Rounds continue the arena's running count, so repeated Play
// calls keep rotating seats.
func (a *Arena) Play(rounds int) error {
	for i := 0; i < rounds; i++ {
		if _, err := a.Round(a.rounds); err != nil {
			return err
		}
		a.rounds++
		for _, ag := range a.agents {
			a.stats.update(ag)
		}
	}
	return nil
}

// ResetStats zeroes every agent's tallies and drops the recorded history.
func (a *Arena) ResetStats() {
	for _, ag := range a.agents {
		ag.resetStats()
	}
	a.rounds = 0
	a.stats = makeStatistics()
}
