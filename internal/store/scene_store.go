package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	mdwerror "github.com/msto63/radscene/foundation/core/error"
	radast "github.com/msto63/radscene/foundation/rad/ast"
	"github.com/msto63/radscene/pkg/core/version"
)

// Run describes one stored parse run
type Run struct {
	ID          string    `json:"id" yaml:"id"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
	Sources     []string  `json:"sources" yaml:"sources"`
	RecordCount int       `json:"record_count" yaml:"record_count"`
}

// TypeCount is the number of stored records of one primitive type
type TypeCount struct {
	Type  string `json:"type" yaml:"type"`
	Count int    `json:"count" yaml:"count"`
}

// SceneStore defines the interface for parse run persistence
type SceneStore interface {
	SaveRun(ctx context.Context, sources []string, prims []*radast.Primitive) (*Run, error)
	ListRuns(ctx context.Context, limit int) ([]*Run, error)
	GetRun(ctx context.Context, id string) (*Run, error)
	LoadRun(ctx context.Context, id string) ([]*radast.Primitive, error)
	DeleteRun(ctx context.Context, id string) error
	TypeStats(ctx context.Context, runID string) ([]TypeCount, error)

	// Maintenance
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
	Vacuum(ctx context.Context) error
	Close() error
}

// SQLiteSceneStore implements SceneStore using SQLite
type SQLiteSceneStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// SQLiteSceneConfig holds configuration for the SQLite store
type SQLiteSceneConfig struct {
	Path string
}

// NewSQLiteSceneStore creates a new SQLite-based scene store
func NewSQLiteSceneStore(cfg SQLiteSceneConfig) (*SQLiteSceneStore, error) {
	// Ensure directory exists
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, storeError(err, "failed to create directory", "store.Open")
	}

	// Open database with WAL mode
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=on")
	if err != nil {
		return nil, storeError(err, "failed to open database", "store.Open")
	}

	store := &SQLiteSceneStore{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, storeError(err, "failed to initialize schema", "store.Open")
	}

	return store, nil
}

// initSchema creates the necessary tables
func (s *SQLiteSceneStore) initSchema() error {
	schema := `
	-- Parse runs
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		sources TEXT NOT NULL,
		record_count INTEGER NOT NULL
	);

	-- Records of a run in source order
	CREATE TABLE IF NOT EXISTS primitives (
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		seq INTEGER NOT NULL,
		modifier TEXT NOT NULL,
		type TEXT NOT NULL,
		name TEXT NOT NULL,
		kind TEXT NOT NULL,
		payload TEXT NOT NULL,
		PRIMARY KEY (run_id, seq)
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_primitives_type ON primitives(run_id, type);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return err
	}
	_, err := s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", version.StoreSchema))
	return err
}

// SchemaVersion returns the schema version recorded in the database
func (s *SQLiteSceneStore) SchemaVersion(ctx context.Context) (int, error) {
	var v int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&v); err != nil {
		return 0, storeError(err, "failed to read schema version", "store.SchemaVersion")
	}
	return v, nil
}

// SaveRun stores the records of one parse in a single transaction
func (s *SQLiteSceneStore) SaveRun(ctx context.Context, sources []string, prims []*radast.Primitive) (*Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sources == nil {
		sources = []string{}
	}
	run := &Run{
		ID:          uuid.New().String(),
		CreatedAt:   time.Now().UTC(),
		Sources:     sources,
		RecordCount: len(prims),
	}

	sourcesJSON, err := json.Marshal(run.Sources)
	if err != nil {
		return nil, storeError(err, "failed to encode sources", "store.SaveRun")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, storeError(err, "failed to begin transaction", "store.SaveRun")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, created_at, sources, record_count)
		VALUES (?, ?, ?, ?)
	`, run.ID, run.CreatedAt, string(sourcesJSON), run.RecordCount); err != nil {
		return nil, storeError(err, "failed to insert run", "store.SaveRun")
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO primitives (run_id, seq, modifier, type, name, kind, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, storeError(err, "failed to prepare statement", "store.SaveRun")
	}
	defer stmt.Close()

	for i, p := range prims {
		payload, err := json.Marshal(p)
		if err != nil {
			return nil, storeError(err, "failed to encode record", "store.SaveRun")
		}
		if _, err := stmt.ExecContext(ctx, run.ID, i, p.Modifier, p.Type, p.Name, p.Kind().String(), string(payload)); err != nil {
			return nil, storeError(err, "failed to insert record", "store.SaveRun")
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, storeError(err, "failed to commit transaction", "store.SaveRun")
	}

	return run, nil
}

// ListRuns returns stored runs, newest first. A limit of 0 returns all runs.
func (s *SQLiteSceneStore) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, created_at, sources, record_count FROM runs ORDER BY created_at DESC, rowid DESC`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeError(err, "failed to query runs", "store.ListRuns")
	}
	defer rows.Close()

	runs := make([]*Run, 0)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, storeError(err, "failed to scan run", "store.ListRuns")
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(err, "failed to iterate runs", "store.ListRuns")
	}

	return runs, nil
}

// GetRun returns the metadata of one run
func (s *SQLiteSceneStore) GetRun(ctx context.Context, id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `SELECT id, created_at, sources, record_count FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, notFound(id, "store.GetRun")
	}
	if err != nil {
		return nil, storeError(err, "failed to load run", "store.GetRun")
	}
	return run, nil
}

// LoadRun returns the records of a run in their original order
func (s *SQLiteSceneStore) LoadRun(ctx context.Context, id string) ([]*radast.Primitive, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs WHERE id = ?`, id).Scan(&exists)
	if err != nil {
		return nil, storeError(err, "failed to look up run", "store.LoadRun")
	}
	if exists == 0 {
		return nil, notFound(id, "store.LoadRun")
	}

	rows, err := s.db.QueryContext(ctx, `SELECT payload FROM primitives WHERE run_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, storeError(err, "failed to query records", "store.LoadRun")
	}
	defer rows.Close()

	prims := make([]*radast.Primitive, 0)
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, storeError(err, "failed to scan record", "store.LoadRun")
		}
		var p radast.Primitive
		if err := json.Unmarshal([]byte(payload), &p); err != nil {
			return nil, storeError(err, "failed to decode record", "store.LoadRun")
		}
		prims = append(prims, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(err, "failed to iterate records", "store.LoadRun")
	}

	return prims, nil
}

// DeleteRun removes a run and its records
func (s *SQLiteSceneStore) DeleteRun(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storeError(err, "failed to begin transaction", "store.DeleteRun")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM primitives WHERE run_id = ?`, id); err != nil {
		return storeError(err, "failed to delete records", "store.DeleteRun")
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return storeError(err, "failed to delete run", "store.DeleteRun")
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return notFound(id, "store.DeleteRun")
	}

	if err := tx.Commit(); err != nil {
		return storeError(err, "failed to commit transaction", "store.DeleteRun")
	}
	return nil
}

// TypeStats counts the records of a run per primitive type, most frequent
// first
func (s *SQLiteSceneStore) TypeStats(ctx context.Context, runID string) ([]TypeCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT type, COUNT(*) AS n
		FROM primitives
		WHERE run_id = ?
		GROUP BY type
		ORDER BY n DESC, type ASC
	`, runID)
	if err != nil {
		return nil, storeError(err, "failed to query type stats", "store.TypeStats")
	}
	defer rows.Close()

	stats := make([]TypeCount, 0)
	for rows.Next() {
		var tc TypeCount
		if err := rows.Scan(&tc.Type, &tc.Count); err != nil {
			return nil, storeError(err, "failed to scan type stats", "store.TypeStats")
		}
		stats = append(stats, tc)
	}
	return stats, rows.Err()
}

// Prune removes runs older than the given duration
func (s *SQLiteSceneStore) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().UTC().Add(-olderThan)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, storeError(err, "failed to begin transaction", "store.Prune")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM primitives WHERE run_id IN (SELECT id FROM runs WHERE created_at < ?)
	`, cutoff); err != nil {
		return 0, storeError(err, "failed to prune records", "store.Prune")
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, storeError(err, "failed to prune runs", "store.Prune")
	}
	if err := tx.Commit(); err != nil {
		return 0, storeError(err, "failed to commit transaction", "store.Prune")
	}

	return result.RowsAffected()
}

// Vacuum optimizes the database
func (s *SQLiteSceneStore) Vacuum(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, "VACUUM"); err != nil {
		return storeError(err, "failed to vacuum database", "store.Vacuum")
	}
	return nil
}

// Close closes the database connection
func (s *SQLiteSceneStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (*Run, error) {
	var run Run
	var sourcesJSON string
	if err := row.Scan(&run.ID, &run.CreatedAt, &sourcesJSON, &run.RecordCount); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(sourcesJSON), &run.Sources); err != nil {
		return nil, err
	}
	return &run, nil
}

func storeError(err error, msg, op string) error {
	return mdwerror.Wrap(err, msg).
		WithCode(mdwerror.CodeStoreError).
		WithOperation(op)
}

func notFound(id, op string) error {
	return mdwerror.Newf("run %s not found", id).
		WithCode(mdwerror.CodeNotFound).
		WithDetail("run_id", id).
		WithOperation(op)
}
