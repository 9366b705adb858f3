// Package source presents each input file as a contiguous, immutable byte
// slice and expands glob patterns into ordered, deduplicated file lists.
package source

import (
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
)

// File is a read-only, memory-mapped (or in-memory fallback) view of a
// single file's bytes. The backing bytes must not be mutated and must not
// be used after Close.
type File struct {
	Path string
	data []byte
	mm   mmap.MMap // non-nil when backed by an actual mmap
}

// Open maps path read-only into the process address space. A zero-length
// file yields an empty File without mapping or reading it; files that
// cannot be mmap'd (pipes, some virtual filesystems) fall back to an
// in-memory read, preserving the same []byte contract for callers.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	if info.Size() == 0 {
		return &File{Path: path, data: nil}, nil
	}

	mm, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		data, rerr := os.ReadFile(path)
		if rerr != nil {
			return nil, fmt.Errorf("mmap %s: %w (fallback read also failed: %v)", path, err, rerr)
		}
		return &File{Path: path, data: data}, nil
	}
	return &File{Path: path, data: []byte(mm), mm: mm}, nil
}

// Bytes returns the full contents as a borrowed byte slice. The slice is
// valid until Close is called.
func (f *File) Bytes() []byte { return f.data }

// Len returns the file length in bytes.
func (f *File) Len() int { return len(f.data) }

// Close releases the memory map, if any. Safe to call on a fallback
// (non-mmap) File; it is then a no-op.
func (f *File) Close() error {
	if f.mm != nil {
		return f.mm.Unmap()
	}
	return nil
}
