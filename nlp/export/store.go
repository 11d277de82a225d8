package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oarkflow/squealx"
	_ "modernc.org/sqlite"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		run_id     TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		input_dir  TEXT NOT NULL,
		documents  INTEGER NOT NULL,
		tokens     INTEGER NOT NULL,
		topics     INTEGER NOT NULL,
		seed       INTEGER NOT NULL,
		report     TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS word_counts (
		run_id TEXT NOT NULL,
		word   TEXT NOT NULL,
		count  INTEGER NOT NULL,
		PRIMARY KEY (run_id, word)
	)`,
	`CREATE TABLE IF NOT EXISTS sentiment (
		run_id    TEXT NOT NULL,
		file_name TEXT NOT NULL,
		positive  INTEGER NOT NULL,
		negative  INTEGER NOT NULL,
		net       INTEGER NOT NULL,
		PRIMARY KEY (run_id, file_name)
	)`,
	`CREATE TABLE IF NOT EXISTS topic_terms (
		run_id TEXT NOT NULL,
		topic  INTEGER NOT NULL,
		term   TEXT NOT NULL,
		beta   REAL NOT NULL,
		PRIMARY KEY (run_id, topic, term)
	)`,
}

// Store archives reports in a SQLite database.
type Store struct {
	db *squealx.DB
}

// OpenStore opens (and creates when needed) the database at path.
func OpenStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	db, err := squealx.Open("sqlite", path, "transcripts")
	if err != nil {
		return nil, fmt.Errorf("export: open %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("export: open %s: %w", path, err)
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("export: migrate: %w", err)
		}
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the underlying handle for ad-hoc queries.
func (s *Store) DB() *squealx.DB {
	return s.db
}

// Save writes r and its tables in one transaction; nothing is kept when
// any row fails.
func (s *Store) Save(ctx context.Context, r *Report) error {
	body, err := ToJSON(r)
	if err != nil {
		return err
	}
	err = s.db.TransactionTxx(ctx, nil, func(tx *squealx.Tx) error {
		exec := func(query string, args map[string]any) error {
			_, err := tx.NamedExec(query, args)
			return err
		}
		err := exec(`INSERT INTO runs (run_id, created_at, input_dir, documents, tokens, topics, seed, report)
			VALUES (:run_id, :created_at, :input_dir, :documents, :tokens, :topics, :seed, :report)`,
			map[string]any{
				"run_id":     r.RunID,
				"created_at": r.CreatedAt.UTC().Format(time.RFC3339),
				"input_dir":  r.InputDir,
				"documents":  len(r.Documents),
				"tokens":     r.Tokens,
				"topics":     r.Topics,
				"seed":       int64(r.Seed),
				"report":     body,
			})
		if err != nil {
			return err
		}
		for _, wc := range r.TopWords {
			err := exec(`INSERT INTO word_counts (run_id, word, count) VALUES (:run_id, :word, :count)`,
				map[string]any{"run_id": r.RunID, "word": wc.Word, "count": wc.Count})
			if err != nil {
				return err
			}
		}
		for _, t := range r.Sentiment {
			err := exec(`INSERT INTO sentiment (run_id, file_name, positive, negative, net)
				VALUES (:run_id, :file_name, :positive, :negative, :net)`,
				map[string]any{"run_id": r.RunID, "file_name": t.FileName, "positive": t.Positive, "negative": t.Negative, "net": t.Net})
			if err != nil {
				return err
			}
		}
		for _, t := range r.TopTerms {
			err := exec(`INSERT INTO topic_terms (run_id, topic, term, beta) VALUES (:run_id, :topic, :term, :beta)`,
				map[string]any{"run_id": r.RunID, "topic": t.Topic, "term": t.Term, "beta": t.Beta})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("export: save run %s: %w", r.RunID, err)
	}
	return nil
}
