// Package chunk computes line-aligned chunk boundaries inside a byte
// slice without copying, so a parallel scan can split work across workers
// while guaranteeing no line straddles two chunks.
package chunk

import "bytes"

// DefaultTarget is the default target chunk size, ~4 MiB, as named in the
// design's chunking rule.
const DefaultTarget = 4 << 20

// Chunk is a [Begin, End) byte range into some input. Begin is always the
// start of a line (0, or the byte after a '\n'); End is the start of a
// line or the length of the input.
type Chunk struct {
	Begin int
	End   int
}

// Split walks data and returns chunks covering [0, len(data)) exactly
// once, with no overlaps and no gaps. target is the approximate desired
// chunk size; the last chunk may be smaller. target <= 0 is treated as
// DefaultTarget.
func Split(data []byte, target int) []Chunk {
	if target <= 0 {
		target = DefaultTarget
	}
	n := len(data)
	if n == 0 {
		return nil
	}

	chunks := make([]Chunk, 0, n/target+1)
	begin := 0
	for begin < n {
		seekFrom := begin + target
		if seekFrom > n {
			seekFrom = n
		}
		var end int
		if seekFrom >= n {
			end = n
		} else if idx := bytes.IndexByte(data[seekFrom:], '\n'); idx >= 0 {
			end = seekFrom + idx + 1
		} else {
			end = n
		}
		chunks = append(chunks, Chunk{Begin: begin, End: end})
		begin = end
	}
	return chunks
}
