package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteConfig configures the SQLite storage backend.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// MaxOpenConns is the connection pool size. Default: 10.
	MaxOpenConns int

	// MaxIdleConns is the idle connection count. Default: 5.
	MaxIdleConns int

	// WALMode enables write-ahead logging for better concurrency.
	// Default: true.
	WALMode bool

	// BusyTimeout is how long to wait on a locked database. Default: 5s.
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         "data/decisions.db",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS decision_records (
	id TEXT PRIMARY KEY,
	timestamp INTEGER NOT NULL,
	decision TEXT NOT NULL,
	confidence REAL NOT NULL,
	hash TEXT NOT NULL,
	payload TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_records_timestamp ON decision_records(timestamp);
CREATE INDEX IF NOT EXISTS idx_records_decision ON decision_records(decision, timestamp);
CREATE INDEX IF NOT EXISTS idx_records_hash ON decision_records(hash);
`

// SQLiteStorage implements Storage on a local SQLite database. The payload
// column holds the audit payload as JSON, round-tripped verbatim.
type SQLiteStorage struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStorage opens (creating if needed) a SQLite-backed store.
func NewSQLiteStorage(config *SQLiteConfig, logger *slog.Logger) (*SQLiteStorage, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "store.sqlite")

	db, err := sql.Open("sqlite3", config.Path)
	if err != nil {
		return nil, NewStorageError("sqlite", "open", err)
	}
	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	s := &SQLiteStorage{db: db, config: config, logger: logger}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("sqlite decision store initialized",
		"path", config.Path, "wal_mode", config.WALMode)
	return s, nil
}

func (s *SQLiteStorage) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return NewStorageError("sqlite", "enable_wal", err)
		}
	}
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", s.config.BusyTimeout.Milliseconds())); err != nil {
		return NewStorageError("sqlite", "set_busy_timeout", err)
	}
	if _, err := s.db.Exec(sqliteSchema); err != nil {
		return NewStorageError("sqlite", "create_schema", err)
	}
	return nil
}

// Store implements Storage.
func (s *SQLiteStorage) Store(ctx context.Context, record *Record) error {
	payload, err := json.Marshal(record.Payload)
	if err != nil {
		return NewStorageError("sqlite", "encode_payload", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO decision_records (id, timestamp, decision, confidence, hash, payload)
		VALUES (?, ?, ?, ?, ?, ?)`,
		record.ID, record.Timestamp.UTC().UnixMicro(), record.Decision,
		record.Confidence, record.Hash, string(payload))
	if err != nil {
		return NewStorageError("sqlite", "store", err)
	}
	return nil
}

// Get implements Storage.
func (s *SQLiteStorage) Get(ctx context.Context, id string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, timestamp, decision, confidence, hash, payload
		FROM decision_records WHERE id = ?`, id)

	record, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, NewStorageError("sqlite", "get", err)
	}
	return record, nil
}

// List implements Storage.
func (s *SQLiteStorage) List(ctx context.Context, query Query) ([]*Record, error) {
	var (
		clauses []string
		args    []interface{}
	)
	if query.Decision != "" {
		clauses = append(clauses, "decision = ?")
		args = append(args, query.Decision)
	}
	if !query.Since.IsZero() {
		clauses = append(clauses, "timestamp >= ?")
		args = append(args, query.Since.UTC().UnixMicro())
	}
	if !query.Until.IsZero() {
		clauses = append(clauses, "timestamp < ?")
		args = append(args, query.Until.UTC().UnixMicro())
	}

	q := "SELECT id, timestamp, decision, confidence, hash, payload FROM decision_records"
	if len(clauses) > 0 {
		q += " WHERE " + strings.Join(clauses, " AND ")
	}
	q += " ORDER BY timestamp DESC, id"
	if query.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, query.Limit)
		if query.Offset > 0 {
			q += " OFFSET ?"
			args = append(args, query.Offset)
		}
	} else if query.Offset > 0 {
		q += " LIMIT -1 OFFSET ?"
		args = append(args, query.Offset)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, NewStorageError("sqlite", "list", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, NewStorageError("sqlite", "list_scan", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, NewStorageError("sqlite", "list_rows", err)
	}
	return records, nil
}

// Count implements Storage.
func (s *SQLiteStorage) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM decision_records").Scan(&count); err != nil {
		return 0, NewStorageError("sqlite", "count", err)
	}
	return count, nil
}

// DeleteBefore implements Storage.
func (s *SQLiteStorage) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM decision_records WHERE timestamp < ?", cutoff.UTC().UnixMicro())
	if err != nil {
		return 0, NewStorageError("sqlite", "delete_before", err)
	}
	return result.RowsAffected()
}

// DeleteOldest implements Storage.
func (s *SQLiteStorage) DeleteOldest(ctx context.Context, keep int64) (int64, error) {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM decision_records WHERE id IN (
			SELECT id FROM decision_records
			ORDER BY timestamp DESC, id
			LIMIT -1 OFFSET ?
		)`, keep)
	if err != nil {
		return 0, NewStorageError("sqlite", "delete_oldest", err)
	}
	return result.RowsAffected()
}

// Close implements Storage.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row rowScanner) (*Record, error) {
	var (
		record    Record
		timestamp int64
		payload   string
	)
	if err := row.Scan(&record.ID, &timestamp, &record.Decision, &record.Confidence, &record.Hash, &payload); err != nil {
		return nil, err
	}
	record.Timestamp = time.UnixMicro(timestamp).UTC()
	if err := json.Unmarshal([]byte(payload), &record.Payload); err != nil {
		return nil, fmt.Errorf("decoding payload for %s: %w", record.ID, err)
	}
	return &record, nil
}
