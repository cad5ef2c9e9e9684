// Package book reads Polyglot opening books.
//
// A book is a flat sequence of 16-byte big-endian records
//
//	key u64 | move u16 | weight u16 | learn u32
//
// with no header or footer. Records are kept verbatim in memory and
// interpreted at query time. Bytes past the last whole record are ignored and
// reported through Stats.
//
// A Book is safe for concurrent queries. Load and Release take an exclusive
// lock, so a reload waits for in-flight scans and later scans see either the
// old or the new records, never a mix.
package book

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// RecordSize is the on-disk size of one book record.
const RecordSize = 16

var (
	ErrNotFound        = errors.New("book file cannot be opened")
	ErrTooSmall        = errors.New("book file holds no complete record")
	ErrTruncatedRead   = errors.New("book file read ended early")
	ErrEmptyCandidates = errors.New("no candidate moves")
)

// Stats describes the currently loaded records.
type Stats struct {
	Path          string
	SizeBytes     int64
	Records       int
	TrailingBytes int64
	Sorted        bool
	Compressed    bool
}

type Book struct {
	mu     sync.RWMutex
	buf    []byte
	count  int
	sorted bool
	stats  Stats
}

// Open loads the book at path into a new Book.
func Open(path string) (*Book, error) {
	b := &Book{}
	if _, err := b.Load(path); err != nil {
		return nil, err
	}
	return b, nil
}

// Load replaces the book's records with the contents of path and returns the
// number of records read. A book that is already loaded is released first; on
// error the book is left empty.
//
// Files ending in ".zst" are decompressed in full before the size rules
// apply.
func (b *Book) Load(path string) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.releaseLocked()

	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	defer f.Close()

	var (
		buf        []byte
		size       int64
		compressed bool
	)
	if strings.EqualFold(filepath.Ext(path), ".zst") {
		compressed = true
		buf, size, err = readCompressed(f)
	} else {
		buf, size, err = readPlain(f)
	}
	if err != nil {
		return 0, fmt.Errorf("load book %s: %w", path, err)
	}

	b.buf = buf
	b.count = len(buf) / RecordSize
	b.sorted = sortedByKey(buf)
	b.stats = Stats{
		Path:          path,
		SizeBytes:     size,
		Records:       b.count,
		TrailingBytes: size % RecordSize,
		Sorted:        b.sorted,
		Compressed:    compressed,
	}
	return b.count, nil
}

func readPlain(f *os.File) ([]byte, int64, error) {
	info, err := f.Stat()
	if err != nil {
		return nil, 0, fmt.Errorf("stat: %w", err)
	}
	buf, err := readRecords(f, info.Size())
	return buf, info.Size(), err
}

// readRecords reads the whole records of a size-byte stream in one go.
func readRecords(r io.Reader, size int64) ([]byte, error) {
	if size < RecordSize {
		return nil, ErrTooSmall
	}
	count := size / RecordSize
	buf := make([]byte, count*RecordSize)
	n, err := io.ReadFull(r, buf)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: got %d of %d bytes", ErrTruncatedRead, n, len(buf))
		}
		return nil, fmt.Errorf("read: %w", err)
	}
	return buf, nil
}

func readCompressed(f *os.File) ([]byte, int64, error) {
	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, 0, fmt.Errorf("zstd reader: %w", err)
	}
	defer dec.Close()

	data, err := io.ReadAll(dec)
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, int64(len(data)), fmt.Errorf("%w: %w", ErrTruncatedRead, err)
		}
		return nil, int64(len(data)), fmt.Errorf("decompress: %w", err)
	}
	size := int64(len(data))
	if size < RecordSize {
		return nil, size, ErrTooSmall
	}
	whole := size - size%RecordSize
	return bytes.Clone(data[:whole]), size, nil
}

// Release drops the loaded records. It is safe to call more than once.
func (b *Book) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.releaseLocked()
}

func (b *Book) releaseLocked() {
	b.buf = nil
	b.count = 0
	b.sorted = false
	b.stats = Stats{}
}

// Len returns the number of loaded records.
func (b *Book) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.count
}

func (b *Book) Stats() Stats {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.stats
}
