package accumulate

import "github.com/kbering/logscan/ipkey"

// IPGroupedCount is the group_by=ip fast path for group_count on
// apache/nginx format: keys are packed uint32 IPv4 addresses instead of
// strings, avoiding a per-line string allocation and letting the fused
// result be ordered with an O(n) radix sort instead of a generic
// comparison sort.
type IPGroupedCount struct {
	Values map[uint32]uint64
}

// NewIPGroupedCount returns an empty IPGroupedCount ready to accumulate.
func NewIPGroupedCount() *IPGroupedCount {
	return &IPGroupedCount{Values: make(map[uint32]uint64)}
}

// Add increments the count for ip.
func (g *IPGroupedCount) Add(ip uint32) {
	g.Values[ip]++
}

// Merge sums values by IP key. Insertion order is irrelevant.
func (g *IPGroupedCount) Merge(other *IPGroupedCount) {
	for k, v := range other.Values {
		g.Values[k] += v
	}
}

// Pairs returns the fused values as (IP, count) pairs, radix-sorted by
// IP ascending.
func (g *IPGroupedCount) Pairs() []ipkey.Pair {
	pairs := make([]ipkey.Pair, 0, len(g.Values))
	for k, v := range g.Values {
		pairs = append(pairs, ipkey.Pair{IP: k, Count: v})
	}
	ipkey.RadixSortPairsByIP(pairs)
	return pairs
}
