package bitmg

import (
	"runtime"
	"sync"
)

// Perft counts the leaf nodes of the legal move tree of the given depth. Depth 0 is 1.
func (r Rules) Perft(p Position, side Color, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	pc := perftCtx{rules: r, bufs: make([][]Move, depth+1)}
	return pc.perft(&p, side, depth)
}

// perftCtx keeps one move buffer per remaining depth so a walk allocates only on first use.
type perftCtx struct {
	rules Rules
	bufs  [][]Move
	cache *PerftCache
}

func (pc *perftCtx) bufFor(depth int) []Move {
	buf := pc.bufs[depth]
	if buf == nil {
		buf = make([]Move, 0, 256)
		pc.bufs[depth] = buf
	}
	return buf[:0]
}

func (pc *perftCtx) perft(p *Position, side Color, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var key uint64
	if pc.cache != nil {
		key = p.Hash(side)
		if n, ok := pc.cache.get(key, depth); ok {
			return n
		}
	}

	moves := pc.rules.AppendLegalMoves(pc.bufFor(depth), p, side)
	pc.bufs[depth] = moves
	var nodes uint64
	if depth == 1 {
		nodes = uint64(len(moves))
	} else {
		for _, m := range moves {
			snap := p.Snapshot()
			p.Apply(m, side)
			nodes += pc.perft(p, side.Other(), depth-1)
			p.Restore(snap)
		}
	}

	if pc.cache != nil {
		pc.cache.put(key, depth, nodes)
	}
	return nodes
}

// PerftDivide returns the leaf count below each legal root move. Useful for debugging
// against another generator.
func (r Rules) PerftDivide(p Position, side Color, depth int) map[Move]uint64 {
	result := make(map[Move]uint64)
	if depth <= 0 {
		return result
	}
	for _, m := range r.LegalMoves(&p, side) {
		result[m] = r.Perft(p.After(m, side), side.Other(), depth-1)
	}
	return result
}

// PerftParallel is Perft with the root moves spread over workers goroutines.
// Each goroutine walks its own copy of the position. workers <= 0 uses GOMAXPROCS.
func (r Rules) PerftParallel(p Position, side Color, depth, workers int) uint64 {
	if depth <= 1 {
		return r.Perft(p, side, depth)
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	Tables()

	roots := r.LegalMoves(&p, side)
	jobs := make(chan Move)
	counts := make([]uint64, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for m := range jobs {
				counts[w] += r.Perft(p.After(m, side), side.Other(), depth-1)
			}
		}(w)
	}
	for _, m := range roots {
		jobs <- m
	}
	close(jobs)
	wg.Wait()

	var nodes uint64
	for _, n := range counts {
		nodes += n
	}
	return nodes
}

// ==========================
// Hashed perft
// ==========================

type perftEntry struct {
	key   uint64
	depth int32
	nodes uint64
}

// PerftCache is a fixed-size, always-replace table of subtree counts keyed by position hash
// and remaining depth. It is not safe for concurrent use.
type PerftCache struct {
	entries []perftEntry
	mask    uint64

	Hits, Probes uint64
}

// NewPerftCache allocates a cache with 2^bits entries.
func NewPerftCache(bits uint) *PerftCache {
	if bits == 0 || bits > 30 {
		bits = 20
	}
	n := uint64(1) << bits
	return &PerftCache{entries: make([]perftEntry, n), mask: n - 1}
}

func (c *PerftCache) get(key uint64, depth int) (uint64, bool) {
	c.Probes++
	e := &c.entries[key&c.mask]
	if e.key == key && e.depth == int32(depth) {
		c.Hits++
		return e.nodes, true
	}
	return 0, false
}

func (c *PerftCache) put(key uint64, depth int, nodes uint64) {
	c.entries[key&c.mask] = perftEntry{key: key, depth: int32(depth), nodes: nodes}
}

// Clear empties the cache and resets the counters.
func (c *PerftCache) Clear() {
	for i := range c.entries {
		c.entries[i] = perftEntry{}
	}
	c.Hits, c.Probes = 0, 0
}

// PerftHashed is Perft with subtree counts memoized in cache. A nil cache disables memoization.
func (r Rules) PerftHashed(p Position, side Color, depth int, cache *PerftCache) uint64 {
	if depth <= 0 {
		return 1
	}
	pc := perftCtx{rules: r, bufs: make([][]Move, depth+1), cache: cache}
	return pc.perft(&p, side, depth)
}

// Perft counts leaf nodes under Standard rules.
func (p Position) Perft(side Color, depth int) uint64 { return Standard.Perft(p, side, depth) }
