package results

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

// SQLiteStore persists result records in a SQLite database. The driver is
// selectable: "sqlite3" uses the cgo driver, "sqlite" the pure Go one.
type SQLiteStore struct {
	db     *sql.DB
	driver string
}

// NewSQLiteStore opens (and if needed creates) the database at path using the
// named driver and applies the schema.
func NewSQLiteStore(driver, path string) (*SQLiteStore, error) {
	if driver != "sqlite3" && driver != "sqlite" {
		return nil, &StorageError{Backend: "sqlite", Operation: "open", Cause: fmt.Errorf("unknown driver %q", driver)}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, &StorageError{Backend: "sqlite", Operation: "open", Cause: err}
		}
	}

	db, err := sql.Open(driver, path)
	if err != nil {
		return nil, &StorageError{Backend: "sqlite", Operation: "open", Cause: err}
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, &StorageError{Backend: "sqlite", Operation: "pragma", Cause: err}
		}
	}

	store := &SQLiteStore{db: db, driver: driver}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) migrate() error {
	if _, err := s.db.Exec(schemaSQL); err != nil {
		return &StorageError{Backend: "sqlite", Operation: "migrate", Cause: err}
	}

	var version int
	err := s.db.QueryRow("SELECT version FROM schema_info LIMIT 1").Scan(&version)
	switch {
	case err == sql.ErrNoRows:
		if _, err := s.db.Exec("INSERT INTO schema_info (version) VALUES (?)", schemaVersion); err != nil {
			return &StorageError{Backend: "sqlite", Operation: "migrate", Cause: err}
		}
	case err != nil:
		return &StorageError{Backend: "sqlite", Operation: "migrate", Cause: err}
	case version > schemaVersion:
		return &StorageError{Backend: "sqlite", Operation: "migrate",
			Cause: fmt.Errorf("database schema version %d is newer than supported version %d", version, schemaVersion)}
	}
	return nil
}

// Save persists a record.
func (s *SQLiteStore) Save(ctx context.Context, record *Record) error {
	values, err := json.Marshal(record.PropertyValues)
	if err != nil {
		return &StorageError{Backend: "sqlite", Operation: "save", Cause: err}
	}
	ratings, err := json.Marshal(encodeRatings(record.EvaluationRatings))
	if err != nil {
		return &StorageError{Backend: "sqlite", Operation: "save", Cause: err}
	}

	rating := sql.NullFloat64{Float64: record.Rating, Valid: !math.IsNaN(record.Rating)}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO results (id, interpretation, data_hash, rating, class, property_values, evaluation_ratings, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.Interpretation, record.DataHash, rating, record.Class,
		string(values), string(ratings), record.CreatedAt.UnixNano())
	if err != nil {
		return &StorageError{Backend: "sqlite", Operation: "save", Cause: err}
	}
	return nil
}

// FindLatest returns the most recent record for an interpretation and data
// hash, or ErrNotFound.
func (s *SQLiteStore) FindLatest(ctx context.Context, interpretation, dataHash string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, interpretation, data_hash, rating, class, property_values, evaluation_ratings, created_at
		FROM results
		WHERE interpretation = ? AND data_hash = ?
		ORDER BY created_at DESC
		LIMIT 1`,
		interpretation, dataHash)

	record, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, &StorageError{Backend: "sqlite", Operation: "find", Cause: err}
	}
	return record, nil
}

// DeleteOlderThan removes records created before the cutoff.
func (s *SQLiteStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM results WHERE created_at < ?", cutoff.UnixNano())
	if err != nil {
		return 0, &StorageError{Backend: "sqlite", Operation: "delete", Cause: err}
	}
	return res.RowsAffected()
}

// DeleteExcess keeps only the newest max records.
func (s *SQLiteStore) DeleteExcess(ctx context.Context, max int) (int64, error) {
	if max < 0 {
		return 0, nil
	}
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM results WHERE id NOT IN (
			SELECT id FROM results ORDER BY created_at DESC LIMIT ?
		)`, max)
	if err != nil {
		return 0, &StorageError{Backend: "sqlite", Operation: "delete", Cause: err}
	}
	return res.RowsAffected()
}

// Count returns the number of stored records.
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM results").Scan(&count); err != nil {
		return 0, &StorageError{Backend: "sqlite", Operation: "count", Cause: err}
	}
	return count, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func scanRecord(row *sql.Row) (*Record, error) {
	var (
		record    Record
		rating    sql.NullFloat64
		values    string
		ratings   string
		createdAt int64
	)
	err := row.Scan(&record.ID, &record.Interpretation, &record.DataHash, &rating,
		&record.Class, &values, &ratings, &createdAt)
	if err != nil {
		return nil, err
	}

	if rating.Valid {
		record.Rating = rating.Float64
	} else {
		record.Rating = math.NaN()
	}
	record.CreatedAt = time.Unix(0, createdAt).UTC()

	if err := json.Unmarshal([]byte(values), &record.PropertyValues); err != nil {
		return nil, err
	}
	var encoded map[string]*float64
	if err := json.Unmarshal([]byte(ratings), &encoded); err != nil {
		return nil, err
	}
	record.EvaluationRatings = decodeRatings(encoded)
	return &record, nil
}

// encodeRatings maps not-rated entries to JSON null so the map marshals.
func encodeRatings(ratings map[string]float64) map[string]*float64 {
	encoded := make(map[string]*float64, len(ratings))
	for label, rating := range ratings {
		if math.IsNaN(rating) {
			encoded[label] = nil
			continue
		}
		r := rating
		encoded[label] = &r
	}
	return encoded
}

func decodeRatings(encoded map[string]*float64) map[string]float64 {
	if encoded == nil {
		return nil
	}
	ratings := make(map[string]float64, len(encoded))
	for label, rating := range encoded {
		if rating == nil {
			ratings[label] = math.NaN()
			continue
		}
		ratings[label] = *rating
	}
	return ratings
}
