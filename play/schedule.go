package play

// A Schedule maps a round number to a parameter value. Arena callers use
// schedules to anneal search parameters between rounds, say an exploration
// constant or an iteration budget.
type Schedule func(round int) float32

// Constant always yields v.
func Constant(v float32) Schedule {
	return func(int) float32 { return v }
}

// Ramp interpolates linearly from one value to another over the given
// number of rounds, then holds the final value.
func Ramp(from, to float32, rounds int) Schedule {
	if rounds <= 1 {
		return Constant(to)
	}
	return func(round int) float32 {
		switch {
		case round <= 0:
			return from
		case round >= rounds-1:
			return to
		}
		t := float32(round) / float32(rounds-1)
		return from + (to-from)*t
	}
}

// Step holds each value for width rounds before advancing to the next,
// then holds the last one. A width below 1 is treated as 1.
func Step(width int, values ...float32) Schedule {
	if len(values) == 0 {
		return Constant(0)
	}
	if width < 1 {
		width = 1
	}
	return func(round int) float32 {
		if round < 0 {
			round = 0
		}
		i := round / width
		if i >= len(values) {
			i = len(values) - 1
		}
		return values[i]
	}
}
