package search

import "sync"

// ttFlag records which side of the alpha-beta window a stored value
// bounds, per the standard fail-soft transposition table discipline: a
// value that caused a beta cutoff is only a lower bound on the true
// value, one that never raised alpha is only an upper bound, and a
// value found strictly inside the window is exact.
type ttFlag uint8

const (
	flagExact ttFlag = iota
	flagLower
	flagUpper
)

type ttEntry struct {
	depth int
	value float64
	flag  ttFlag
}

// ttShards is the number of independent locks the transposition table
// spreads its entries across. A state's TranspositionHash already comes
// out of a well-mixed hash (cespare/xxhash over the canonical
// projection, see euchre.transpositionHash), so its own top bits serve
// directly as the shard selector without a second hash pass.
const ttShards = 64

// Cache is a sharded transposition table shared by every recursive call
// within one FindBestMove/EvaluatePlayer invocation (and safely across
// concurrent PIMCTS worlds, each of which drives its own Solver over
// the same *Cache is not required; pkg/pimcts gives each world its own
// Cache, since positions from different worlds rarely transpose).
// Sharding keeps the common case, a miss or an own-shard hit, lock-free
// with respect to the other 63 shards.
type Cache struct {
	shards [ttShards]ttShard
}

type ttShard struct {
	mu      sync.RWMutex
	entries map[uint64]ttEntry
}

// NewCache returns an empty transposition table.
func NewCache() *Cache {
	c := &Cache{}
	for i := range c.shards {
		c.shards[i].entries = make(map[uint64]ttEntry)
	}
	return c
}

func shardFor(hash uint64) int {
	return int(hash>>58) % ttShards
}

func (c *Cache) get(hash uint64) (ttEntry, bool) {
	s := &c.shards[shardFor(hash)]
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[hash]
	return e, ok
}

// put stores e, keeping whichever of the existing and new entries was
// computed at greater depth: a deep search's bound on a position
// subsumes a shallow one, and unconditionally overwriting would let a
// shallow re-probe (e.g. from a shorter iterative-deepening iteration
// sharing the position) evict a more informative entry.
func (c *Cache) put(hash uint64, e ttEntry) {
	s := &c.shards[shardFor(hash)]
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.entries[hash]; ok && old.depth > e.depth {
		return
	}
	s.entries[hash] = e
}

// Len returns the total number of stored entries, for tests and metrics.
func (c *Cache) Len() int {
	n := 0
	for i := range c.shards {
		c.shards[i].mu.RLock()
		n += len(c.shards[i].entries)
		c.shards[i].mu.RUnlock()
	}
	return n
}
