package db

import (
	"context"
	"time"
)

// RecordLookup counts a query for key and remembers its latest outcome.
func (s *Store) RecordLookup(ctx context.Context, key uint64, minWeight uint16, matches int) error {
	params := Lookup{
		RawKey:        keyToDB(key),
		Hits:          1,
		LastMinWeight: int(minWeight),
		LastMatches:   matches,
		LastQueriedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO lookups (zobrist_key, hits, last_min_weight, last_matches, last_queried_at)
		VALUES (:zobrist_key, :hits, :last_min_weight, :last_matches, :last_queried_at)
		ON CONFLICT(zobrist_key) DO UPDATE SET
			hits = hits + 1,
			last_min_weight = excluded.last_min_weight,
			last_matches = excluded.last_matches,
			last_queried_at = excluded.last_queried_at
	`, params)
	return err
}

// LookupByKey returns the counters for key.
func (s *Store) LookupByKey(ctx context.Context, key uint64) (Lookup, error) {
	var l Lookup
	err := s.db.GetContext(ctx, &l, `
		SELECT zobrist_key, hits, last_min_weight, last_matches, last_queried_at
		FROM lookups
		WHERE zobrist_key = ?
	`, keyToDB(key))
	l.Key = keyFromDB(l.RawKey)
	return l, err
}

// TopLookups returns the most queried keys.
func (s *Store) TopLookups(ctx context.Context, limit int) ([]Lookup, error) {
	var out []Lookup
	err := s.db.SelectContext(ctx, &out, `
		SELECT zobrist_key, hits, last_min_weight, last_matches, last_queried_at
		FROM lookups
		ORDER BY hits DESC, zobrist_key ASC
		LIMIT ?
	`, limit)
	for i := range out {
		out[i].Key = keyFromDB(out[i].RawKey)
	}
	return out, err
}
