package game

// Outcome is a per-seat vector of numeric results. By convention a win puts
// a positive value at the winner's seat; the all-zero vector means "no
// decided outcome yet" (or a draw, once the game is over).
type Outcome []float32

// Sum returns the sum over all seats.
func (o Outcome) Sum() float32 {
	var s float32
	for _, v := range o {
		s += v
	}
	return s
}

// SumIndices sums the selected seats only. A nil index set means all seats.
func (o Outcome) SumIndices(idx []int) float32 {
	if idx == nil {
		return o.Sum()
	}
	var s float32
	for _, i := range idx {
		s += o[i]
	}
	return s
}

// IsZero reports whether every seat holds zero.
func (o Outcome) IsZero() bool {
	for _, v := range o {
		if v != 0 {
			return false
		}
	}
	return true
}

func (o Outcome) Clone() Outcome {
	retVal := make(Outcome, len(o))
	copy(retVal, o)
	return retVal
}

// Leader returns the seat with the strictly greatest value, or None when the
// vector is zero (no decided outcome).
func (o Outcome) Leader() Player {
	if o.IsZero() {
		return None
	}
	best := 0
	for i := 1; i < len(o); i++ {
		if o[i] > o[best] {
			best = i
		}
	}
	return Player(best)
}

// CombineFunc merges a freshly observed outcome into an accumulated one. The
// engines never hardcode arithmetic semantics; callers inject this.
type CombineFunc func(acc, x Outcome) Outcome

// SumOutcomes is the default CombineFunc: elementwise addition into a new
// vector. Both arguments are left untouched.
func SumOutcomes(acc, x Outcome) Outcome {
	retVal := acc.Clone()
	for i := range x {
		retVal[i] += x[i]
	}
	return retVal
}
