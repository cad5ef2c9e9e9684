package db

import "context"

// InsertLoad records one book load attempt.
func (s *Store) InsertLoad(ctx context.Context, l BookLoad) (int64, error) {
	res, err := s.db.NamedExecContext(ctx, `
		INSERT INTO book_loads (load_id, path, size_bytes, records, trailing_bytes, sorted, compressed, duration_ms, error)
		VALUES (:load_id, :path, :size_bytes, :records, :trailing_bytes, :sorted, :compressed, :duration_ms, :error)
	`, l)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListLoads returns the most recent loads first.
func (s *Store) ListLoads(ctx context.Context, limit int) ([]BookLoad, error) {
	var out []BookLoad
	err := s.db.SelectContext(ctx, &out, `
		SELECT id, load_id, loaded_at, path, size_bytes, records,
			trailing_bytes, sorted, compressed, duration_ms, error
		FROM book_loads
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	return out, err
}
