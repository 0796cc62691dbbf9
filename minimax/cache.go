package minimax

import (
	"fmt"

	"github.com/calaverite/ludos/game"
)

// Bound tags a cached value. Under alpha-beta pruning a memoized value is
// not always exact: a cutoff on the maximizer side only proves "actual
// value >= v", and one on the minimizer side only "actual value <= v".
type Bound uint8

const (
	Exact      Bound = iota
	LowerBound       // actual value >= Value
	UpperBound       // actual value <= Value
)

func (b Bound) String() string {
	switch b {
	case Exact:
		return "exact"
	case LowerBound:
		return "lower"
	case UpperBound:
		return "upper"
	}
	return fmt.Sprintf("Bound(%d)", uint8(b))
}

type entry struct {
	bound Bound
	value float32
}

type key struct {
	hash  game.Zobrist
	depth int
}

// Cache memoizes search values keyed by (state hash, depth). It is owned by
// exactly one engine instance and is not safe for concurrent mutation.
// Hash collisions are accepted, as transposition tables generally do.
type Cache struct {
	table  map[key]entry
	hits   uint64
	misses uint64
}

func NewCache() *Cache {
	return &Cache{table: make(map[key]entry)}
}

// Reset drops every entry.
func (c *Cache) Reset() {
	c.table = make(map[key]entry)
	c.hits = 0
	c.misses = 0
}

func (c *Cache) Len() int { return len(c.table) }

// Stats returns the hit/miss counters since the last Reset.
func (c *Cache) Stats() (hits, misses uint64) { return c.hits, c.misses }

// Value returns the cached value for (s, depth) regardless of its bound,
// or 0 on a miss. Move-ordering heuristics use this; the search proper goes
// through load so the bound is honoured.
func (c *Cache) Value(s game.State, depth int) float32 {
	e, ok := c.table[key{hash: s.Hash(), depth: depth}]
	if !ok {
		return 0
	}
	return e.value
}

func (c *Cache) load(s game.State, depth int) (entry, bool) {
	e, ok := c.table[key{hash: s.Hash(), depth: depth}]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return e, ok
}

func (c *Cache) store(s game.State, depth int, b Bound, v float32) {
	c.table[key{hash: s.Hash(), depth: depth}] = entry{bound: b, value: v}
}
