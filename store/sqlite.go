package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite. Records are append-only; the
// exact-match query is served by a covering index over the cache key triple.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a SQLite-backed store at the given path, creating parent
// directories and the schema as needed.
func NewSQLite(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// PRAGMAs are per-connection; passing them through the DSN applies
	// them to every connection the pool opens.
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS invocations (
		id TEXT PRIMARY KEY,
		input_text TEXT NOT NULL,
		response_text TEXT NOT NULL,
		tokens INTEGER NOT NULL DEFAULT 0,
		elapsed_ms INTEGER NOT NULL DEFAULT 0,
		agent_name TEXT NOT NULL,
		fingerprint TEXT NOT NULL,
		tags_json TEXT,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_invocations_key ON invocations(agent_name, fingerprint, input_text, created_at);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Ping verifies database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Save writes one invocation record keyed by its ID.
func (s *SQLiteStore) Save(ctx context.Context, rec Record) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	var tagsJSON sql.NullString
	if len(rec.Tags) > 0 {
		b, err := json.Marshal(rec.Tags)
		if err != nil {
			return fmt.Errorf("marshal tags: %w", err)
		}
		tagsJSON = sql.NullString{String: string(b), Valid: true}
	}

	query := `
	INSERT INTO invocations (id, input_text, response_text, tokens, elapsed_ms, agent_name, fingerprint, tags_json, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		rec.ID, rec.InputText, rec.ResponseText, rec.Tokens, rec.ElapsedMs,
		rec.AgentName, rec.Fingerprint, tagsJSON, rec.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("insert invocation: %w", err)
	}
	return nil
}

// QueryExactMatch returns the most recent record matching the triple exactly,
// or nil when absent.
func (s *SQLiteStore) QueryExactMatch(ctx context.Context, inputText, agentName, fingerprint string) (*Record, error) {
	query := `
		SELECT id, input_text, response_text, tokens, elapsed_ms, agent_name, fingerprint, tags_json, created_at
		FROM invocations
		WHERE input_text = ? AND agent_name = ? AND fingerprint = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1`

	row := s.db.QueryRowContext(ctx, query, inputText, agentName, fingerprint)

	var rec Record
	var tagsJSON sql.NullString
	var createdAt int64

	err := row.Scan(
		&rec.ID, &rec.InputText, &rec.ResponseText, &rec.Tokens, &rec.ElapsedMs,
		&rec.AgentName, &rec.Fingerprint, &tagsJSON, &createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan invocation row: %w", err)
	}

	if tagsJSON.Valid {
		if err := json.Unmarshal([]byte(tagsJSON.String), &rec.Tags); err != nil {
			return nil, fmt.Errorf("unmarshal tags: %w", err)
		}
	}
	rec.CreatedAt = time.Unix(0, createdAt).UTC()

	return &rec, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
