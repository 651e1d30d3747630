package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/veilleproject/veille/pkg/models"
)

// Store is a durable fingerprint-keyed mapping of article records.
//
// It expects a single logical writer per process; the embedded engine
// provides the locking between the writer and concurrent readers. Records
// are written whole or not at all, and the ingestion path never updates a
// record in place; only PurgeLanguages deletes.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS articles (
	fingerprint TEXT PRIMARY KEY,
	source_feed_url TEXT NOT NULL,
	source_page_url TEXT NOT NULL DEFAULT '',
	published_at TEXT NOT NULL DEFAULT '',
	title TEXT NOT NULL,
	summary TEXT NOT NULL DEFAULT '',
	language TEXT NOT NULL,
	content TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL,
	predicted_category TEXT NOT NULL DEFAULT '',
	prediction_scores TEXT NOT NULL DEFAULT '[]'
);

CREATE INDEX IF NOT EXISTS idx_articles_language ON articles(language);
CREATE INDEX IF NOT EXISTS idx_articles_category ON articles(category);
`

// Open opens (creating if necessary) the store at path. The caller must
// Close it to flush to durable storage.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	// WAL keeps readers usable while the writer is active.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close flushes and closes the store.
func (s *Store) Close() error {
	return s.db.Close()
}

// Contains reports whether a record exists under the given fingerprint.
func (s *Store) Contains(fingerprint string) (bool, error) {
	var one int
	err := s.db.QueryRow("SELECT 1 FROM articles WHERE fingerprint = ?", fingerprint).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("contains %s: %w", fingerprint, err)
	}
	return true, nil
}

// Put inserts a whole record under the given fingerprint. Inserting a
// fingerprint that already exists is a no-op: the stored record is left
// untouched.
func (s *Store) Put(fingerprint string, rec models.ArticleRecord) error {
	scores, err := json.Marshal(scoresOrEmpty(rec.PredictionScores))
	if err != nil {
		return fmt.Errorf("marshal prediction scores: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO articles (
			fingerprint, source_feed_url, source_page_url, published_at,
			title, summary, language, content, category,
			predicted_category, prediction_scores
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(fingerprint) DO NOTHING`,
		fingerprint, rec.SourceFeedURL, rec.SourcePageURL, rec.PublishedAt,
		rec.Title, rec.Summary, rec.Language, rec.Content, rec.Category,
		rec.PredictedCategory, string(scores),
	)
	if err != nil {
		return fmt.Errorf("put %s: %w", fingerprint, err)
	}
	return nil
}

// Get returns the record stored under fingerprint, or nil when absent.
func (s *Store) Get(fingerprint string) (*models.ArticleRecord, error) {
	row := s.db.QueryRow(`
		SELECT source_feed_url, source_page_url, published_at, title,
		       summary, language, content, category,
		       predicted_category, prediction_scores
		FROM articles WHERE fingerprint = ?`, fingerprint)

	rec, err := scanRecord(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", fingerprint, err)
	}
	return rec, nil
}

// Delete removes the record stored under fingerprint, if any.
func (s *Store) Delete(fingerprint string) error {
	if _, err := s.db.Exec("DELETE FROM articles WHERE fingerprint = ?", fingerprint); err != nil {
		return fmt.Errorf("delete %s: %w", fingerprint, err)
	}
	return nil
}

// Count returns the number of stored records.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM articles").Scan(&n); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

// Iterate calls fn for every stored (fingerprint, record) pair. Iteration
// stops at the first error fn returns.
func (s *Store) Iterate(fn func(fingerprint string, rec models.ArticleRecord) error) error {
	rows, err := s.db.Query(`
		SELECT fingerprint, source_feed_url, source_page_url, published_at,
		       title, summary, language, content, category,
		       predicted_category, prediction_scores
		FROM articles`)
	if err != nil {
		return fmt.Errorf("iterate: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var fp string
		rec, err := scanRecord(func(dest ...any) error {
			return rows.Scan(append([]any{&fp}, dest...)...)
		})
		if err != nil {
			return fmt.Errorf("iterate scan: %w", err)
		}
		if err := fn(fp, *rec); err != nil {
			return err
		}
	}
	return rows.Err()
}

// CountByCategory returns the number of records per category, broken down
// by language.
func (s *Store) CountByCategory() (map[string]map[string]int, error) {
	rows, err := s.db.Query(`
		SELECT category, language, COUNT(*)
		FROM articles GROUP BY category, language`)
	if err != nil {
		return nil, fmt.Errorf("count by category: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]map[string]int)
	for rows.Next() {
		var category, language string
		var n int
		if err := rows.Scan(&category, &language, &n); err != nil {
			return nil, fmt.Errorf("count by category scan: %w", err)
		}
		if counts[category] == nil {
			counts[category] = make(map[string]int)
		}
		counts[category][language] = n
	}
	return counts, rows.Err()
}

// PurgeLanguages deletes every record whose language is outside the
// accepted set and returns the number of records removed. This is the only
// deletion path besides Delete; the ingestion path never removes records.
func (s *Store) PurgeLanguages(accepted []string) (int, error) {
	if len(accepted) == 0 {
		return 0, fmt.Errorf("purge: accepted language set must not be empty")
	}

	placeholders := ""
	args := make([]any, len(accepted))
	for i, lang := range accepted {
		if i > 0 {
			placeholders += ", "
		}
		placeholders += "?"
		args[i] = lang
	}

	res, err := s.db.Exec("DELETE FROM articles WHERE language NOT IN ("+placeholders+")", args...)
	if err != nil {
		return 0, fmt.Errorf("purge: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge rows affected: %w", err)
	}
	return int(n), nil
}

func scanRecord(scan func(dest ...any) error) (*models.ArticleRecord, error) {
	var rec models.ArticleRecord
	var scores string
	err := scan(
		&rec.SourceFeedURL, &rec.SourcePageURL, &rec.PublishedAt, &rec.Title,
		&rec.Summary, &rec.Language, &rec.Content, &rec.Category,
		&rec.PredictedCategory, &scores,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(scores), &rec.PredictionScores); err != nil {
		return nil, fmt.Errorf("decode prediction scores: %w", err)
	}
	return &rec, nil
}

func scoresOrEmpty(scores []float64) []float64 {
	if scores == nil {
		return []float64{}
	}
	return scores
}
