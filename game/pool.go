package game

import (
	"sync"
)

var outcomePool = struct {
	sync.Mutex
	m map[int]*sync.Pool
}{m: make(map[int]*sync.Pool)}

// BorrowOutcome returns a zeroed outcome vector for n seats from a pool.
// Rollout-heavy searches churn through thousands of short-lived vectors;
// the pool keeps that off the allocator.
func BorrowOutcome(n int) Outcome {
	outcomePool.Lock()
	p, ok := outcomePool.m[n]
	if !ok {
		p = &sync.Pool{
			New: func() interface{} { return make(Outcome, n) },
		}
		outcomePool.m[n] = p
	}
	outcomePool.Unlock()

	retVal := p.Get().(Outcome)
	for i := range retVal {
		retVal[i] = 0
	}
	return retVal
}

// ReturnOutcome puts a vector back into its pool. The caller must not hold
// on to it afterwards.
func ReturnOutcome(o Outcome) {
	outcomePool.Lock()
	p, ok := outcomePool.m[len(o)]
	outcomePool.Unlock()
	if ok {
		p.Put(o)
	}
}
