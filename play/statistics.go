package play

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// Statistics is the per-agent tally history of an arena, one sample per
// round played.
type Statistics struct {
	Names  []string // in order of first appearance
	Wins   map[string][]float32
	Losses map[string][]float32
	Draws  map[string][]float32
}

func makeStatistics() Statistics {
	return Statistics{
		Names:  make([]string, 0, 2),
		Wins:   make(map[string][]float32),
		Losses: make(map[string][]float32),
		Draws:  make(map[string][]float32),
	}
}

func (s *Statistics) update(a *Agent) {
	if _, ok := s.Wins[a.Name]; !ok {
		s.Names = append(s.Names, a.Name)
	}
	s.Wins[a.Name] = append(s.Wins[a.Name], a.Wins)
	s.Losses[a.Name] = append(s.Losses[a.Name], a.Losses)
	s.Draws[a.Name] = append(s.Draws[a.Name], a.Draws)
}

// Rounds reports how many rounds have been recorded.
func (s *Statistics) Rounds() int {
	if len(s.Names) == 0 {
		return 0
	}
	return len(s.Wins[s.Names[0]])
}

// WinRate returns name's win rate as of round i.
func (s *Statistics) WinRate(name string, i int) float32 {
	wins := s.Wins[name][i]
	total := wins + s.Losses[name][i] + s.Draws[name][i]
	if total == 0 {
		return 0
	}
	return wins / total
}

// Dump writes the win-rate history as CSV: a header of agent names, then
// one row per round.
func (s *Statistics) Dump(filename string) error {
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(s.Names); err != nil {
		return errors.WithStack(err)
	}
	for i := 0; i < s.Rounds(); i++ {
		record := make([]string, len(s.Names))
		for j, name := range s.Names {
			record[j] = strconv.FormatFloat(float64(s.WinRate(name, i)), 'f', 3, 32)
		}
		if err := w.Write(record); err != nil {
			return errors.WithStack(err)
		}
	}
	w.Flush()
	return errors.WithStack(w.Error())
}
