package ipkey

// Pair is one (IP, count) entry from a fused IP-keyed grouping pass.
type Pair struct {
	IP    uint32
	Count uint64
}

// RadixSortPairsByIP performs an in-place 8-bit radix sort of pairs by
// IP, ascending. O(n) vs. O(n log n) for sort.Slice, and avoids
// interface-dispatch overhead — adapted byte-for-byte in technique from
// the teacher's uint32 radix sort, generalized to sort a parallel value
// alongside the key.
func RadixSortPairsByIP(pairs []Pair) {
	n := len(pairs)
	if n <= 1 {
		return
	}
	if n <= 64 {
		insertionSortByIP(pairs)
		return
	}

	scratch := make([]Pair, n)
	radixPass(pairs, scratch, 0)
	radixPass(scratch, pairs, 8)
	radixPass(pairs, scratch, 16)
	radixPass(scratch, pairs, 24)
}

func radixPass(src, dst []Pair, shift uint) {
	var counts [256]int
	for _, p := range src {
		b := (p.IP >> shift) & 0xFF
		counts[b]++
	}
	total := 0
	for i := range counts {
		c := counts[i]
		counts[i] = total
		total += c
	}
	for _, p := range src {
		b := (p.IP >> shift) & 0xFF
		dst[counts[b]] = p
		counts[b]++
	}
}

func insertionSortByIP(pairs []Pair) {
	for i := 1; i < len(pairs); i++ {
		key := pairs[i]
		j := i - 1
		for j >= 0 && pairs[j].IP > key.IP {
			pairs[j+1] = pairs[j]
			j--
		}
		pairs[j+1] = key
	}
}
