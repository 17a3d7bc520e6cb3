package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	mmap "github.com/edsrzf/mmap-go"
	"golang.org/x/sys/unix"
)

const (
	readBufSize = 256 << 10
	// A record is at most 100 name bytes + 1 + 5 temperature bytes + 1,
	// so a carried partial line always fits.
	carryMax = 256
)

func processRange(path string, sp span, strat strategy, t *table) error {
	if strat == mmapStrategy {
		return processRangeMmap(path, sp, t)
	}
	return processRangeRead(path, sp, t)
}

// processRangeRead drives the parser over sp using positional reads on a
// private file handle. Each full buffer is parsed up to its last newline
// and the partial trailing line is carried to the front for the next
// read, so the parser only ever sees whole records.
func processRangeRead(path string, sp span, t *table) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	buf := make([]byte, carryMax+readBufSize)
	carried := 0
	offset := sp.start
	for offset < sp.end {
		want := int64(readBufSize)
		if left := sp.end - offset; left < want {
			want = left
		}
		n, err := f.ReadAt(buf[carryMax:carryMax+int(want)], offset)
		if int64(n) != want {
			if err == nil || err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return fmt.Errorf("read %s at offset %d: %w", path, offset, err)
		}
		offset += want

		window := buf[carryMax-carried : carryMax+int(want)]
		if offset < sp.end {
			cut := bytes.LastIndexByte(window, '\n') + 1
			parseChunk(window[:cut], t)
			carried = len(window) - cut
			copy(buf[carryMax-carried:carryMax], window[cut:])
		} else {
			parseChunk(window, t)
			carried = 0
		}
	}
	return nil
}

// processRangeMmap maps sp read-only and hands the mapping straight to
// the parser. The mapping offset must be page-aligned, so the span start
// is aligned down and the slack sliced off.
func processRangeMmap(path string, sp span, t *table) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	aligned := sp.start - sp.start%int64(os.Getpagesize())
	m, err := mmap.MapRegion(f, int(sp.end-aligned), mmap.RDONLY, 0, aligned)
	if err != nil {
		return fmt.Errorf("mmap %s: %w", path, err)
	}
	defer m.Unmap()
	_ = unix.Madvise(m, unix.MADV_SEQUENTIAL)

	parseChunk(m[sp.start-aligned:], t)
	return nil
}

// bumpPriority asks for a lower nice value for the calling thread.
// Refusal is expected for unprivileged processes and ignored.
func bumpPriority() {
	_ = unix.Setpriority(unix.PRIO_PROCESS, 0, -10)
}
