package engine

import "math/bits"

type cacheEntry struct {
	Hash  uint64
	Score int32
	Used  bool
}

// EvalCache memoises static evaluations by Zobrist hash. It is fixed-size
// and always-replace; a nil or zero-size cache never hits.
type EvalCache struct {
	entries []cacheEntry
	mask    uint64
}

// NewEvalCache rounds size up to a power of two. size <= 0 disables caching.
func NewEvalCache(size int) *EvalCache {
	if size <= 0 {
		return &EvalCache{}
	}
	n := uint64(1) << bits.Len64(uint64(size-1))
	return &EvalCache{entries: make([]cacheEntry, n), mask: n - 1}
}

func (c *EvalCache) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

func (c *EvalCache) Probe(hash uint64) (int32, bool) {
	if c.Len() == 0 {
		return 0, false
	}
	e := &c.entries[hash&c.mask]
	if e.Used && e.Hash == hash {
		return e.Score, true
	}
	return 0, false
}

func (c *EvalCache) Store(hash uint64, score int32) {
	if c.Len() == 0 {
		return
	}
	c.entries[hash&c.mask] = cacheEntry{Hash: hash, Score: score, Used: true}
}

func (c *EvalCache) Clear() {
	if c.Len() == 0 {
		return
	}
	clear(c.entries)
}
