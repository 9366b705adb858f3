// Package engine runs a generic parallel scan over one file's bytes: it
// splits the file into line-aligned chunks, hands each chunk to a fixed
// worker pool, and fuses the per-chunk partial accumulators into one
// query-wide result. It knows nothing about log formats, predicates, or
// accumulator semantics — those are supplied as closures by the query
// package, once per (shape, format) combination.
package engine

import (
	"context"
	"runtime"

	"github.com/kbering/logscan/chunk"
)

// ScanFunc produces one chunk's partial accumulator. Implementations are
// expected to honor ctx cancellation at a roughly 64 KiB granularity
// while walking the chunk's lines.
type ScanFunc[A any] func(ctx context.Context, data []byte, c chunk.Chunk, fileIndex int) A

// MergeFunc folds src into dst. It must be associative and commutative
// across the set of chunks a file is split into, since chunks fuse in
// whatever order workers finish.
type MergeFunc[A any] func(dst, src A)

// NewFunc returns a fresh, empty accumulator of type A.
type NewFunc[A any] func() A

// Config controls how a file is split and scanned.
type Config struct {
	// Workers is the number of concurrent chunk scanners. Zero or
	// negative means DefaultConfig's GOMAXPROCS-based value.
	Workers int
	// ChunkSize is the target chunk size passed to chunk.Split. Zero or
	// negative means chunk.DefaultTarget.
	ChunkSize int
}

// DefaultConfig returns the config used when a caller has no specific
// resource constraints: one worker per available core, ~4 MiB chunks.
func DefaultConfig() Config {
	return Config{Workers: runtime.GOMAXPROCS(0), ChunkSize: chunk.DefaultTarget}
}

// ScanFile splits data into chunks, scans them across a fixed worker
// pool, and fuses the results in chunk order (Begin ascending) into one
// accumulator, which it returns. The fuse order is deterministic
// regardless of which worker finishes first, since results are collected
// into a slice indexed by chunk position before merging.
//
// ScanFile returns ctx.Err() if the context is canceled before all
// chunks finish; the partial accumulator is discarded in that case.
func ScanFile[A any](ctx context.Context, data []byte, fileIndex int, cfg Config, newAcc NewFunc[A], scan ScanFunc[A], merge MergeFunc[A]) (A, error) {
	var zero A

	chunks := chunk.Split(data, cfg.ChunkSize)
	if len(chunks) == 0 {
		return newAcc(), nil
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(chunks) {
		workers = len(chunks)
	}

	results := make([]A, len(chunks))
	jobs := make(chan int)
	errCh := make(chan error, workers)

	for w := 0; w < workers; w++ {
		go func() {
			for idx := range jobs {
				select {
				case <-ctx.Done():
					errCh <- ctx.Err()
					continue
				default:
				}
				results[idx] = scan(ctx, data, chunks[idx], fileIndex)
				select {
				case <-ctx.Done():
					errCh <- ctx.Err()
				default:
					errCh <- nil
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for idx := range chunks {
			jobs <- idx
		}
	}()

	var firstErr error
	for range chunks {
		if err := <-errCh; err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return zero, firstErr
	}

	acc := newAcc()
	for _, r := range results {
		merge(acc, r)
	}
	return acc, nil
}
