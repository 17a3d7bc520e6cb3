package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

type strategy int

const (
	readStrategy strategy = iota
	mmapStrategy
)

type span struct {
	start, end int64
}

// Keep every range's nominal size within 2 GiB so offsets stay comfortably
// inside int arithmetic on the read path.
const maxSpanSize = int64(1) << 31

// workerCount leaves a core or two for the OS, but never lets a single
// span's nominal size exceed maxSpanSize (partition then snaps each
// boundary forward to the end of a record).
func workerCount(fileSize int64, cores int) int {
	spare := 1
	if cores < 16 {
		spare = 2
	}
	w := cores - spare
	if bySize := int((fileSize + maxSpanSize - 1) / maxSpanSize); bySize > w {
		w = bySize
	}
	if w < 1 {
		w = 1
	}
	return w
}

// partition splits [0, size) into at most n spans. Nominal boundaries are
// snapped forward to the byte after the next newline, so every span
// starts at a record start and ends one past a record's newline.
func partition(f *os.File, size int64, n int) ([]span, error) {
	if size == 0 {
		return nil, nil
	}
	nominal := size / int64(n)
	spans := make([]span, 0, n)
	probe := make([]byte, 256)
	start := int64(0)
	for start < size {
		if len(spans) == n-1 {
			spans = append(spans, span{start, size})
			break
		}
		end := start + nominal
		if end >= size {
			spans = append(spans, span{start, size})
			break
		}
		for end < size {
			m, err := f.ReadAt(probe, end)
			if m == 0 {
				if err == io.EOF {
					break
				}
				return nil, fmt.Errorf("probe at %d: %w", end, err)
			}
			if i := bytes.IndexByte(probe[:m], '\n'); i >= 0 {
				end += int64(i) + 1
				break
			}
			end += int64(m)
		}
		if end >= size {
			end = size
		}
		spans = append(spans, span{start, end})
		start = end
	}
	return spans, nil
}
