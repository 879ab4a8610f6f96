package engine

import "sync"

// DefaultCacheSize is the default number of cached search results.
const DefaultCacheSize = 1 << 16

// sakoCacheEntry stores the outcome of one forced Ŝako search. The board is
// identified by its zobrist hash, so two boards colliding on the hash would
// share an entry. With 64 bit hashes that risk is accepted.
type sakoCacheEntry struct {
	key      uint64
	attacker PlayerColor
	valid    bool
	// sequences is shared with every cache reader. Callers must not mutate
	// the returned slices.
	sequences [][]Action
}

// SakoCache is a thread-safe cache of forced Ŝako search results, keyed by
// board hash and attacking player. It is two-way associative with
// MurmurHash3-based slot indexing.
type SakoCache struct {
	entries  []sakoCacheNode
	size     uint32
	hashMask uint32

	// Statistics
	lookups uint64
	hits    uint64
	adds    uint64

	mu sync.RWMutex
}

// sakoCacheNode holds primary and secondary entries of one slot.
type sakoCacheNode struct {
	primary   sakoCacheEntry
	secondary sakoCacheEntry
}

// NewSakoCache creates a cache holding roughly size results. Size is rounded
// up to a power of 2.
func NewSakoCache(size uint32) *SakoCache {
	if size > 1<<31 {
		size = 1 << 31
	}

	p := uint32(2)
	for p < size {
		p <<= 1
	}
	size = p

	cache := &SakoCache{
		entries:  make([]sakoCacheNode, size/2),
		size:     size,
		hashMask: (size / 2) - 1,
	}
	return cache
}

// Flush clears all entries and statistics.
func (c *SakoCache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.entries)
	c.lookups = 0
	c.hits = 0
	c.adds = 0
}

// slot computes the cache slot for a board hash and attacker using
// MurmurHash3-style mixing. The zobrist hash is already well distributed but
// the mask only keeps the low bits, so the high bits get mixed down.
func (c *SakoCache) slot(hash uint64, attacker PlayerColor) uint32 {
	const c1 = 0xcc9e2d51
	const c2 = 0x1b873593

	h := uint32(0)
	for _, k := range [3]uint32{uint32(hash), uint32(hash >> 32), uint32(attacker)} {
		k *= c1
		k = (k << 15) | (k >> 17)
		k *= c2

		h ^= k
		h = (h << 13) | (h >> 19)
		h = h*5 + 0xe6546b64
	}

	// Finalization
	h ^= 12
	h ^= h >> 16
	h *= 0x85ebca6b
	h ^= h >> 13
	h *= 0xc2b2ae35
	h ^= h >> 16

	return h & c.hashMask
}

func (e *sakoCacheEntry) matches(hash uint64, attacker PlayerColor) bool {
	return e.valid && e.key == hash && e.attacker == attacker
}

// Lookup returns the cached sequences for the position, if present. A hit
// with no sequences means the search ran and found no Ŝako. The returned
// slices are shared and must not be mutated.
func (c *SakoCache) Lookup(hash uint64, attacker PlayerColor) ([][]Action, bool) {
	slot := c.slot(hash, attacker)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.lookups++

	node := &c.entries[slot]
	if node.primary.matches(hash, attacker) {
		c.hits++
		return node.primary.sequences, true
	}
	if node.secondary.matches(hash, attacker) {
		c.hits++
		return node.secondary.sequences, true
	}
	return nil, false
}

// Add stores the search result for the position. The previous occupant of
// the slot is demoted to the secondary entry.
func (c *SakoCache) Add(hash uint64, attacker PlayerColor, sequences [][]Action) {
	slot := c.slot(hash, attacker)

	c.mu.Lock()
	defer c.mu.Unlock()

	node := &c.entries[slot]
	node.secondary = node.primary
	node.primary = sakoCacheEntry{
		key:       hash,
		attacker:  attacker,
		valid:     true,
		sequences: sequences,
	}
	c.adds++
}

// Stats returns cache statistics.
func (c *SakoCache) Stats() (lookups, hits, adds uint64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lookups, c.hits, c.adds
}

// HitRate returns the cache hit rate as a percentage.
func (c *SakoCache) HitRate() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.lookups == 0 {
		return 0
	}
	return float64(c.hits) / float64(c.lookups) * 100
}
