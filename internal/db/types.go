package db

type BookLoad struct {
	ID            int64  `db:"id"`
	LoadID        string `db:"load_id"`
	LoadedAt      string `db:"loaded_at"`
	Path          string `db:"path"`
	SizeBytes     int64  `db:"size_bytes"`
	Records       int    `db:"records"`
	TrailingBytes int64  `db:"trailing_bytes"`
	Sorted        bool   `db:"sorted"`
	Compressed    bool   `db:"compressed"`
	DurationMS    int64  `db:"duration_ms"`
	Error         string `db:"error"`
}

type Lookup struct {
	Key           uint64 `db:"-"`
	RawKey        int64  `db:"zobrist_key"`
	Hits          int64  `db:"hits"`
	LastMinWeight int    `db:"last_min_weight"`
	LastMatches   int    `db:"last_matches"`
	LastQueriedAt string `db:"last_queried_at"`
}
