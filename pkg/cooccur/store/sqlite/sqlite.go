package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/cooccur/pkg/cooccur/internalerr"
	"github.com/cognicore/cooccur/pkg/cooccur/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled and the
// schema initialized.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	// Enable foreign keys
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS corpora (
	name TEXT PRIMARY KEY,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS observations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	corpus TEXT NOT NULL,
	x TEXT NOT NULL,
	y TEXT NOT NULL,
	FOREIGN KEY(corpus) REFERENCES corpora(name) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_observations_corpus ON observations(corpus);

CREATE TABLE IF NOT EXISTS reports (
	id TEXT PRIMARY KEY,
	corpus TEXT NOT NULL,
	generated_at TEXT NOT NULL,
	mi REAL NOT NULL,
	hx REAL NOT NULL,
	hy REAL NOT NULL,
	hxy REAL NOT NULL,
	x_symbols TEXT NOT NULL,
	y_symbols TEXT NOT NULL,
	top_json TEXT NOT NULL,
	FOREIGN KEY(corpus) REFERENCES corpora(name) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_reports_corpus ON reports(corpus, generated_at);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// CreateCorpus registers a corpus name; re-creating is a no-op.
func (s *sqliteStore) CreateCorpus(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty corpus name", internalerr.ErrInvalidInput)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO corpora(name, created_at) VALUES(?, ?) ON CONFLICT(name) DO NOTHING`,
		name, time.Now().UTC().Format(time.RFC3339Nano))
	return err
}

// GetCorpus returns a corpus by name with its observation count.
func (s *sqliteStore) GetCorpus(ctx context.Context, name string) (store.Corpus, bool, error) {
	var c store.Corpus
	var createdAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT name, created_at FROM corpora WHERE name = ?`, name).Scan(&c.Name, &createdAt)
	if err == sql.ErrNoRows {
		return store.Corpus{}, false, nil
	}
	if err != nil {
		return store.Corpus{}, false, err
	}
	c.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)

	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM observations WHERE corpus = ?`, name).Scan(&c.Pairs); err != nil {
		return store.Corpus{}, false, err
	}
	return c, true, nil
}

// ListCorpora returns all corpora sorted by name.
func (s *sqliteStore) ListCorpora(ctx context.Context) ([]store.Corpus, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT c.name, c.created_at, COUNT(o.id)
FROM corpora c LEFT JOIN observations o ON o.corpus = c.name
GROUP BY c.name ORDER BY c.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Corpus
	for rows.Next() {
		var c store.Corpus
		var createdAt string
		if err := rows.Scan(&c.Name, &createdAt, &c.Pairs); err != nil {
			return nil, err
		}
		c.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		out = append(out, c)
	}
	return out, rows.Err()
}

// AppendPairs adds observations to a corpus in one transaction.
func (s *sqliteStore) AppendPairs(ctx context.Context, corpus string, pairs []store.Pair) error {
	if exists, err := s.corpusExists(ctx, corpus); err != nil {
		return err
	} else if !exists {
		return fmt.Errorf("%w: corpus %q", internalerr.ErrNotFound, corpus)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO observations(corpus, x, y) VALUES(?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range pairs {
		if _, err := stmt.ExecContext(ctx, corpus, p.X, p.Y); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetPairs returns all observations for a corpus in insertion order.
func (s *sqliteStore) GetPairs(ctx context.Context, corpus string) ([]store.Pair, error) {
	if exists, err := s.corpusExists(ctx, corpus); err != nil {
		return nil, err
	} else if !exists {
		return nil, fmt.Errorf("%w: corpus %q", internalerr.ErrNotFound, corpus)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT x, y FROM observations WHERE corpus = ? ORDER BY id`, corpus)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Pair
	for rows.Next() {
		var p store.Pair
		if err := rows.Scan(&p.X, &p.Y); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// CountPairs returns the number of stored observations for a corpus.
func (s *sqliteStore) CountPairs(ctx context.Context, corpus string) (int64, error) {
	if exists, err := s.corpusExists(ctx, corpus); err != nil {
		return 0, err
	} else if !exists {
		return 0, fmt.Errorf("%w: corpus %q", internalerr.ErrNotFound, corpus)
	}

	var n int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM observations WHERE corpus = ?`, corpus).Scan(&n)
	return n, err
}

// SaveReport stores a report, replacing any previous report with the
// same ID.
func (s *sqliteStore) SaveReport(ctx context.Context, r store.Report) error {
	if r.ID == "" {
		return fmt.Errorf("%w: report without ID", internalerr.ErrInvalidInput)
	}

	xs, err := json.Marshal(r.XSymbols)
	if err != nil {
		return err
	}
	ys, err := json.Marshal(r.YSymbols)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
INSERT OR REPLACE INTO reports(id, corpus, generated_at, mi, hx, hy, hxy, x_symbols, y_symbols, top_json)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Corpus, r.GeneratedAt.UTC().Format(time.RFC3339Nano),
		r.MI, r.HX, r.HY, r.HXY, string(xs), string(ys), r.TopJSON)
	return err
}

// GetReport returns a report by ID.
func (s *sqliteStore) GetReport(ctx context.Context, id string) (store.Report, bool, error) {
	r, err := scanReport(s.db.QueryRowContext(ctx, `
SELECT id, corpus, generated_at, mi, hx, hy, hxy, x_symbols, y_symbols, top_json
FROM reports WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return store.Report{}, false, nil
	}
	if err != nil {
		return store.Report{}, false, err
	}
	return r, true, nil
}

// ReportsByCorpus returns up to k reports for a corpus, newest first.
func (s *sqliteStore) ReportsByCorpus(ctx context.Context, corpus string, k int) ([]store.Report, error) {
	if k <= 0 {
		k = -1 // no LIMIT
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, corpus, generated_at, mi, hx, hy, hxy, x_symbols, y_symbols, top_json
FROM reports WHERE corpus = ? ORDER BY generated_at DESC LIMIT ?`, corpus, k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *sqliteStore) corpusExists(ctx context.Context, name string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM corpora WHERE name = ?`, name).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (store.Report, error) {
	var r store.Report
	var generatedAt, xs, ys string
	if err := row.Scan(&r.ID, &r.Corpus, &generatedAt, &r.MI, &r.HX, &r.HY, &r.HXY, &xs, &ys, &r.TopJSON); err != nil {
		return store.Report{}, err
	}
	r.GeneratedAt, _ = time.Parse(time.RFC3339Nano, generatedAt)
	if err := json.Unmarshal([]byte(xs), &r.XSymbols); err != nil {
		return store.Report{}, err
	}
	if err := json.Unmarshal([]byte(ys), &r.YSymbols); err != nil {
		return store.Report{}, err
	}
	return r, nil
}
