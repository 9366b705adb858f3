// Package pools provides sync.Pool-backed reuse of the per-chunk
// scratch buffers the format/accumulate packages would otherwise
// allocate fresh on every line, the same pooling idiom the teacher
// applies to its own request/string/IP slices, repurposed here for
// line-oriented byte scanning instead of request/IP aggregation.
package pools

import "sync"

// GlobalPools provides centralized memory pooling for the scan hot path.
type GlobalPools struct {
	LineBuffers  sync.Pool
	RangeSlices  sync.Pool
	SampleSlices sync.Pool
}

// Pools is the global instance of memory pools.
var Pools = &GlobalPools{
	LineBuffers: sync.Pool{
		New: func() any {
			buf := make([]byte, 0, 512)
			return &buf
		},
	},
	RangeSlices: sync.Pool{
		New: func() any {
			slice := make([]int, 0, 32)
			return &slice
		},
	},
	SampleSlices: sync.Pool{
		New: func() any {
			slice := make([][]byte, 0, 64)
			return &slice
		},
	},
}

// GetLineBuffer gets a scratch byte buffer from the pool and resets it
// to length zero, keeping its capacity.
func (gp *GlobalPools) GetLineBuffer() []byte {
	ptr := gp.LineBuffers.Get().(*[]byte)
	*ptr = (*ptr)[:0]
	return *ptr
}

// ReturnLineBuffer returns a scratch byte buffer to the pool, discarding
// it instead if it grew unreasonably large (prevents one oversized line
// from bloating the pool for every subsequent chunk).
func (gp *GlobalPools) ReturnLineBuffer(buf []byte) {
	if cap(buf) <= 64<<10 {
		empty := buf[:0]
		gp.LineBuffers.Put(&empty)
	}
}

// GetRangeSlice gets a scratch int slice from the pool and resets it.
// format.SplitCSVFields uses it to collect flattened (start, end) field
// boundary pairs during a line's parse pass, before building the exactly
// sized []Range it returns.
func (gp *GlobalPools) GetRangeSlice() []int {
	ptr := gp.RangeSlices.Get().(*[]int)
	*ptr = (*ptr)[:0]
	return *ptr
}

// ReturnRangeSlice returns a scratch int slice to the pool.
func (gp *GlobalPools) ReturnRangeSlice(slice []int) {
	if cap(slice) <= 4096 {
		empty := slice[:0]
		gp.RangeSlices.Put(&empty)
	}
}

// Reset clears all pools. Useful for testing and for reclaiming memory
// between large queries.
func (gp *GlobalPools) Reset() {
	gp.LineBuffers = sync.Pool{New: gp.LineBuffers.New}
	gp.RangeSlices = sync.Pool{New: gp.RangeSlices.New}
	gp.SampleSlices = sync.Pool{New: gp.SampleSlices.New}
}
