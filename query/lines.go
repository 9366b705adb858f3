package query

import (
	"bytes"
	"context"

	"github.com/kbering/logscan/chunk"
)

// cancelCheckInterval is how often, in bytes consumed within a chunk,
// forEachLine checks ctx for cancellation, per the concurrency design's
// "never run an unbounded stretch past the next few dozen KiB without
// observing cancellation" rule.
const cancelCheckInterval = 64 * 1024

// forEachLine walks c's lines in data, calling visit with each line
// (newline excluded) and its offset relative to c.Begin. It returns
// ctx.Err() if canceled before the chunk finishes.
func forEachLine(ctx context.Context, data []byte, c chunk.Chunk, visit func(line []byte, lineOffsetInChunk int)) error {
	pos := c.Begin
	lastCheck := pos
	for pos < c.End {
		nl := bytes.IndexByte(data[pos:c.End], '\n')
		var lineEnd, next int
		if nl < 0 {
			lineEnd = c.End
			next = c.End
		} else {
			lineEnd = pos + nl
			next = lineEnd + 1
		}
		visit(data[pos:lineEnd], pos-c.Begin)
		pos = next
		if pos-lastCheck >= cancelCheckInterval {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			lastCheck = pos
		}
	}
	return nil
}
