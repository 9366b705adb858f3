package accumulate

import (
	"sync"

	"github.com/alphadose/haxmap"
)

// ConcurrentGroupedCount fuses many per-file GroupedCount maps into one
// haxmap.Map-backed table. query's generic group_count path uses it in
// place of a plain Go map once a query spans more files than a fixed
// threshold, the same concurrent-map choice the teacher makes for its own
// IP-keyed sliding-window statistics.
//
// MergeFrom is safe to call concurrently from multiple fuse goroutines,
// one per file: haxmap's own Get/Set are each atomic, but a key's
// increment is a read-modify-write across the two, so MergeFrom
// serializes that increment with keyMu to avoid two goroutines both
// reading the same pre-update value for a key shared across files.
type ConcurrentGroupedCount struct {
	m     *haxmap.Map[string, uint64]
	keyMu sync.Mutex
}

// NewConcurrentGroupedCount returns an empty ConcurrentGroupedCount.
func NewConcurrentGroupedCount() *ConcurrentGroupedCount {
	return &ConcurrentGroupedCount{m: haxmap.New[string, uint64]()}
}

// MergeFrom folds a per-file GroupedCount into the shared table.
func (c *ConcurrentGroupedCount) MergeFrom(g *GroupedCount) {
	c.keyMu.Lock()
	defer c.keyMu.Unlock()
	for k, v := range g.Values {
		cur, _ := c.m.Get(k)
		c.m.Set(k, cur+v)
	}
}

// Snapshot copies the current contents into a plain map for shaping.
func (c *ConcurrentGroupedCount) Snapshot() map[string]uint64 {
	out := make(map[string]uint64, c.m.Len())
	c.m.ForEach(func(k string, v uint64) bool {
		out[k] = v
		return true
	})
	return out
}
