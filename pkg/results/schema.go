package results

const schemaVersion = 1

const schemaSQL = `
CREATE TABLE IF NOT EXISTS schema_info (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS results (
	id                 TEXT PRIMARY KEY,
	interpretation     TEXT NOT NULL,
	data_hash          TEXT NOT NULL,
	rating             REAL,
	class              TEXT NOT NULL,
	property_values    TEXT NOT NULL,
	evaluation_ratings TEXT NOT NULL,
	created_at         INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_results_lookup
	ON results (interpretation, data_hash, created_at DESC);

CREATE INDEX IF NOT EXISTS idx_results_created_at
	ON results (created_at);
`
