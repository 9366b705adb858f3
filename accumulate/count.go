// Package accumulate implements the five accumulator variants named in
// the design, each with an associative, commutative Merge so per-chunk
// partial results can be fused in any order into one query-wide result.
package accumulate

// Count is the accumulator for the count query shape: a non-negative
// integer.
type Count struct {
	N uint64
}

// Add records one accepted line.
func (c *Count) Add() { c.N++ }

// Merge folds other into c.
func (c *Count) Merge(other *Count) { c.N += other.N }
