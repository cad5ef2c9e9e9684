package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "polybook.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestLoadsNewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.InsertLoad(ctx, BookLoad{LoadID: "a", Path: "/books/a.bin", SizeBytes: 32, Records: 2, Sorted: true})
	require.NoError(t, err)
	_, err = s.InsertLoad(ctx, BookLoad{LoadID: "b", Path: "/books/b.bin.zst", SizeBytes: 40, Records: 2, TrailingBytes: 8, Compressed: true})
	require.NoError(t, err)
	_, err = s.InsertLoad(ctx, BookLoad{LoadID: "c", Path: "/books/missing.bin", Error: "book file cannot be opened"})
	require.NoError(t, err)

	loads, err := s.ListLoads(ctx, 10)
	require.NoError(t, err)
	require.Len(t, loads, 3)
	assert.Equal(t, "c", loads[0].LoadID)
	assert.NotEmpty(t, loads[0].Error)
	assert.Equal(t, int64(8), loads[1].TrailingBytes)
	assert.True(t, loads[1].Compressed)
	assert.True(t, loads[2].Sorted)
	assert.NotEmpty(t, loads[2].LoadedAt)

	loads, err = s.ListLoads(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, loads, 1)
}

func TestLookupCounters(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	const start = uint64(0x463b96181691fc9c)
	const high = uint64(0x823c9b50fd114196)

	require.NoError(t, s.RecordLookup(ctx, start, 0, 3))
	require.NoError(t, s.RecordLookup(ctx, high, 0, 1))
	require.NoError(t, s.RecordLookup(ctx, high, 10, 0))

	l, err := s.LookupByKey(ctx, high)
	require.NoError(t, err)
	assert.Equal(t, high, l.Key)
	assert.Equal(t, int64(2), l.Hits)
	assert.Equal(t, 10, l.LastMinWeight)
	assert.Equal(t, 0, l.LastMatches)

	top, err := s.TopLookups(ctx, 5)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, high, top[0].Key)
	assert.Equal(t, start, top[1].Key)

	_, err = s.LookupByKey(ctx, 1)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
