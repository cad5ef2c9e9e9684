// Package explorer serves lookups from the configured opening book. It keeps
// one loaded book, reloads it when the configured path or the file's mtime
// changes, and records loads and lookups in the history store.
package explorer

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"polybook/internal/book"
	"polybook/internal/configstore"
	"polybook/internal/db"
)

// History receives load and lookup records. *db.Store implements it.
type History interface {
	InsertLoad(ctx context.Context, l db.BookLoad) (int64, error)
	RecordLookup(ctx context.Context, key uint64, minWeight uint16, matches int) error
}

type Info struct {
	Loaded   bool
	LoadedAt time.Time
	ModTime  time.Time
	Stats    book.Stats
}

type Explorer struct {
	conf    *configstore.Store
	history History
	sel     *book.Selector
	log     zerolog.Logger

	bookMu   sync.Mutex
	book     *book.Book
	bookPath string
	bookMod  time.Time
	loadedAt time.Time
}

func New(conf *configstore.Store, history History, sel *book.Selector, log zerolog.Logger) *Explorer {
	if sel == nil {
		sel = book.NewRandomSelector()
	}
	return &Explorer{
		conf:    conf,
		history: history,
		sel:     sel,
		log:     log.With().Str("component", "explorer").Logger(),
		book:    &book.Book{},
	}
}

// Entries returns the book entries for key with weight at least minWeight.
func (e *Explorer) Entries(ctx context.Context, key uint64, minWeight uint16) ([]book.Entry, error) {
	b, err := e.current(ctx)
	if err != nil {
		return nil, err
	}
	entries := b.Entries(key, minWeight)
	e.recordLookup(ctx, key, minWeight, len(entries))
	return entries, nil
}

// Pick returns one entry for key chosen uniformly among the matches.
func (e *Explorer) Pick(ctx context.Context, key uint64, minWeight uint16) (book.Entry, error) {
	entries, err := e.Entries(ctx, key, minWeight)
	if err != nil {
		return book.Entry{}, err
	}
	return e.sel.PickEntry(entries)
}

// DefaultMinWeight is the configured threshold used when a query names none.
func (e *Explorer) DefaultMinWeight(ctx context.Context) uint16 {
	cfg, err := e.conf.GetConfig(ctx)
	if err != nil {
		return 0
	}
	return cfg.MinWeight
}

// Reload loads the configured book even if it looks unchanged.
func (e *Explorer) Reload(ctx context.Context) (Info, error) {
	cfg, err := e.conf.GetConfig(ctx)
	if err != nil {
		return Info{}, err
	}

	e.bookMu.Lock()
	defer e.bookMu.Unlock()
	if err := e.loadLocked(ctx, cfg.BookPath); err != nil {
		return Info{}, err
	}
	return e.infoLocked(), nil
}

func (e *Explorer) Info() Info {
	e.bookMu.Lock()
	defer e.bookMu.Unlock()
	return e.infoLocked()
}

func (e *Explorer) infoLocked() Info {
	st := e.book.Stats()
	return Info{
		Loaded:   st.Records > 0,
		LoadedAt: e.loadedAt,
		ModTime:  e.bookMod,
		Stats:    st,
	}
}

// Close releases the loaded records.
func (e *Explorer) Close() {
	e.bookMu.Lock()
	defer e.bookMu.Unlock()
	e.book.Release()
	e.bookPath = ""
	e.bookMod = time.Time{}
}

func (e *Explorer) current(ctx context.Context) (*book.Book, error) {
	cfg, err := e.conf.GetConfig(ctx)
	if err != nil {
		return nil, err
	}

	e.bookMu.Lock()
	defer e.bookMu.Unlock()

	loaded := e.book.Len() > 0 && e.bookPath == cfg.BookPath
	if loaded && !cfg.ReloadOnChange {
		return e.book, nil
	}
	if loaded {
		info, err := os.Stat(cfg.BookPath)
		if err == nil && e.bookMod.Equal(info.ModTime()) {
			return e.book, nil
		}
	}
	if err := e.loadLocked(ctx, cfg.BookPath); err != nil {
		return nil, err
	}
	return e.book, nil
}

func (e *Explorer) loadLocked(ctx context.Context, path string) error {
	start := time.Now()
	var mod time.Time
	if info, err := os.Stat(path); err == nil {
		mod = info.ModTime()
	}

	_, err := e.book.Load(path)
	rec := db.BookLoad{
		LoadID:     uuid.NewString(),
		Path:       path,
		DurationMS: time.Since(start).Milliseconds(),
	}
	if err != nil {
		e.bookPath = ""
		e.bookMod = time.Time{}
		rec.Error = err.Error()
		e.recordLoad(ctx, rec)
		e.log.Error().Err(err).Str("path", path).Msg("book load failed")
		return err
	}

	st := e.book.Stats()
	e.bookPath = path
	e.bookMod = mod
	e.loadedAt = time.Now().UTC()

	rec.SizeBytes = st.SizeBytes
	rec.Records = st.Records
	rec.TrailingBytes = st.TrailingBytes
	rec.Sorted = st.Sorted
	rec.Compressed = st.Compressed
	e.recordLoad(ctx, rec)

	ev := e.log.Info()
	if st.TrailingBytes > 0 {
		ev = e.log.Warn().Int64("trailing_bytes", st.TrailingBytes)
	}
	ev.Str("path", path).
		Str("load_id", rec.LoadID).
		Int("records", st.Records).
		Bool("sorted", st.Sorted).
		Dur("dur", time.Since(start)).
		Msg("book loaded")
	return nil
}

func (e *Explorer) recordLoad(ctx context.Context, rec db.BookLoad) {
	if e.history == nil {
		return
	}
	if _, err := e.history.InsertLoad(ctx, rec); err != nil {
		e.log.Warn().Err(err).Str("load_id", rec.LoadID).Msg("record load failed")
	}
}

func (e *Explorer) recordLookup(ctx context.Context, key uint64, minWeight uint16, matches int) {
	if e.history == nil {
		return
	}
	if err := e.history.RecordLookup(ctx, key, minWeight, matches); err != nil {
		e.log.Warn().Err(err).Uint64("key", key).Msg("record lookup failed")
	}
}
