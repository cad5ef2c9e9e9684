package explorer

import (
	"bytes"
	"context"
	"encoding/binary"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polybook/internal/book"
	"polybook/internal/configstore"
	"polybook/internal/db"
	"polybook/internal/logx"
)

const keyStart = uint64(0x463b96181691fc9c)

type fakeHistory struct {
	mu      sync.Mutex
	loads   []db.BookLoad
	lookups []int
}

func (f *fakeHistory) InsertLoad(_ context.Context, l db.BookLoad) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads = append(f.loads, l)
	return int64(len(f.loads)), nil
}

func (f *fakeHistory) RecordLookup(_ context.Context, _ uint64, _ uint16, matches int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups = append(f.lookups, matches)
	return nil
}

func writeBook(t *testing.T, path string, weights ...uint16) {
	t.Helper()
	var buf bytes.Buffer
	for i, w := range weights {
		move := uint16(4 | 3<<3 | 4<<6 | 1<<9)
		if i%2 == 1 {
			move = uint16(3 | 3<<3 | 3<<6 | 1<<9)
		}
		require.NoError(t, binary.Write(&buf, binary.BigEndian, keyStart))
		require.NoError(t, binary.Write(&buf, binary.BigEndian, move))
		require.NoError(t, binary.Write(&buf, binary.BigEndian, w))
		require.NoError(t, binary.Write(&buf, binary.BigEndian, uint32(i)))
	}
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func newExplorer(t *testing.T, bookPath string, reload bool) (*Explorer, *fakeHistory, *configstore.Store) {
	t.Helper()
	conf, err := configstore.New(filepath.Join(t.TempDir(), "config.json"), configstore.Config{BookPath: bookPath})
	require.NoError(t, err)
	ctx := context.Background()
	cfg, err := conf.GetConfig(ctx)
	require.NoError(t, err)
	cfg.ReloadOnChange = reload
	require.NoError(t, conf.UpdateConfig(ctx, cfg))

	h := &fakeHistory{}
	log := logx.New(io.Discard, logx.ParseLevel("debug"))
	return New(conf, h, book.NewSelector(rand.NewPCG(1, 1)), log), h, conf
}

func TestEntriesLoadsLazily(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.bin")
	writeBook(t, path, 10, 20)
	ex, h, _ := newExplorer(t, path, true)

	assert.False(t, ex.Info().Loaded)

	ctx := context.Background()
	entries, err := ex.Entries(ctx, keyStart, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "e2e4", entries[0].Move.UCI())
	assert.Equal(t, uint16(20), entries[1].Weight)

	_, err = ex.Entries(ctx, keyStart, 15)
	require.NoError(t, err)

	info := ex.Info()
	assert.True(t, info.Loaded)
	assert.Equal(t, 2, info.Stats.Records)
	require.Len(t, h.loads, 1, "second query reuses the loaded book")
	assert.NotEmpty(t, h.loads[0].LoadID)
	assert.Equal(t, []int{2, 1}, h.lookups)
}

func TestReloadsWhenFileChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.bin")
	writeBook(t, path, 10)
	ex, h, _ := newExplorer(t, path, true)
	ctx := context.Background()

	entries, err := ex.Entries(ctx, keyStart, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	writeBook(t, path, 10, 20, 30)
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, future, future))

	entries, err = ex.Entries(ctx, keyStart, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
	assert.Len(t, h.loads, 2)
}

func TestNoReloadWhenDisabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.bin")
	writeBook(t, path, 10)
	ex, _, _ := newExplorer(t, path, false)
	ctx := context.Background()

	_, err := ex.Entries(ctx, keyStart, 0)
	require.NoError(t, err)

	writeBook(t, path, 10, 20, 30)
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, future, future))

	entries, err := ex.Entries(ctx, keyStart, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	info, err := ex.Reload(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, info.Stats.Records)
}

func TestMissingBook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.bin")
	ex, h, _ := newExplorer(t, path, true)

	_, err := ex.Entries(context.Background(), keyStart, 0)
	require.ErrorIs(t, err, book.ErrNotFound)
	require.Len(t, h.loads, 1)
	assert.NotEmpty(t, h.loads[0].Error)
	assert.Empty(t, h.lookups)
	assert.False(t, ex.Info().Loaded)
}

func TestPick(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.bin")
	writeBook(t, path, 10, 20)
	ex, _, conf := newExplorer(t, path, true)
	ctx := context.Background()

	e, err := ex.Pick(ctx, keyStart, 0)
	require.NoError(t, err)
	assert.Contains(t, []string{"e2e4", "d2d4"}, e.Move.UCI())

	e, err = ex.Pick(ctx, keyStart, 20)
	require.NoError(t, err)
	assert.Equal(t, "d2d4", e.Move.UCI())

	_, err = ex.Pick(ctx, keyStart, 21)
	assert.ErrorIs(t, err, book.ErrEmptyCandidates)

	_, err = ex.Pick(ctx, 42, 0)
	assert.ErrorIs(t, err, book.ErrEmptyCandidates)

	cfg, _ := conf.GetConfig(ctx)
	cfg.MinWeight = 15
	require.NoError(t, conf.UpdateConfig(ctx, cfg))
	assert.Equal(t, uint16(15), ex.DefaultMinWeight(ctx))
}

func TestCloseReleases(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.bin")
	writeBook(t, path, 1)
	ex, h, _ := newExplorer(t, path, true)
	ctx := context.Background()

	_, err := ex.Entries(ctx, keyStart, 0)
	require.NoError(t, err)
	ex.Close()
	assert.False(t, ex.Info().Loaded)

	entries, err := ex.Entries(ctx, keyStart, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Len(t, h.loads, 2)
}
