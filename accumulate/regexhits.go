package accumulate

import "sort"

// Sample is one owned-copy regex match, tagged with enough positional
// information to produce the deterministic cross-chunk, cross-file
// ordering the design requires.
type Sample struct {
	FileIndex  int
	ChunkBegin int
	LineOffset int
	Line       []byte
}

// RegexHits is the accumulator for the regex_search query shape: a
// total-hit counter plus a bounded head of up to Limit sample lines.
type RegexHits struct {
	Total   uint64
	Limit   int
	Samples []Sample
}

// NewRegexHits returns an empty RegexHits bounded to limit samples.
func NewRegexHits(limit int) *RegexHits {
	return &RegexHits{Limit: limit}
}

// Add records one match at the given position. line is copied into the
// accumulator only while the sample head is still below Limit.
func (r *RegexHits) Add(fileIndex, chunkBegin, lineOffset int, line []byte) {
	r.Total++
	if len(r.Samples) >= r.Limit {
		return
	}
	owned := make([]byte, len(line))
	copy(owned, line)
	r.Samples = append(r.Samples, Sample{
		FileIndex:  fileIndex,
		ChunkBegin: chunkBegin,
		LineOffset: lineOffset,
		Line:       owned,
	})
}

// Merge sums counts and concatenates samples, then re-sorts and
// truncates to Limit so the result is ordered by
// (file-index, chunk-begin, line-offset) regardless of merge order.
func (r *RegexHits) Merge(other *RegexHits) {
	r.Total += other.Total
	r.Samples = append(r.Samples, other.Samples...)
	sort.Slice(r.Samples, func(i, j int) bool {
		a, b := r.Samples[i], r.Samples[j]
		if a.FileIndex != b.FileIndex {
			return a.FileIndex < b.FileIndex
		}
		if a.ChunkBegin != b.ChunkBegin {
			return a.ChunkBegin < b.ChunkBegin
		}
		return a.LineOffset < b.LineOffset
	})
	if len(r.Samples) > r.Limit {
		r.Samples = r.Samples[:r.Limit]
	}
}
