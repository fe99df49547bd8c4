package ruleset

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// Revision is one recorded load of a ruleset document.
type Revision struct {
	Name        string
	Version     string
	SourcePath  string
	ContentHash string
	RuleCount   int
	LoadedAt    time.Time
}

// History is the SQLite-backed ledger of every ruleset revision ever loaded.
// Revisions are keyed by content hash, so reloading an unchanged file records
// nothing new; an audit question such as "which revision of this ruleset was
// live on that date" is answerable from the ledger alone.
type History struct {
	db *sql.DB
}

// OpenHistory opens (creating if needed) a history ledger at dbPath.
func OpenHistory(dbPath string) (*History, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("history db path cannot be empty")
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// SQLite only supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	schema := `
	CREATE TABLE IF NOT EXISTS ruleset_revisions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		version TEXT NOT NULL,
		source_path TEXT NOT NULL,
		content_hash TEXT NOT NULL,
		rule_count INTEGER NOT NULL,
		loaded_at INTEGER NOT NULL,
		UNIQUE(name, content_hash)
	);
	CREATE INDEX IF NOT EXISTS idx_revisions_name ON ruleset_revisions(name, loaded_at);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}

	return &History{db: db}, nil
}

// Record stores a revision for a loaded document. Re-recording identical
// content is a no-op, so the ledger tracks distinct revisions only.
func (h *History) Record(lrs *LoadedRuleSet) (string, error) {
	hash := ContentHash(lrs.Raw)

	_, err := h.db.Exec(`
		INSERT OR IGNORE INTO ruleset_revisions
			(name, version, source_path, content_hash, rule_count, loaded_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		lrs.RuleSet.Name, lrs.RuleSet.Version, lrs.Path, hash,
		len(lrs.RuleSet.Rules), time.Now().UTC().Unix())
	if err != nil {
		return "", fmt.Errorf("recording revision for %q: %w", lrs.RuleSet.Name, err)
	}

	return hash, nil
}

// Revisions returns all recorded revisions for a ruleset name, newest first.
func (h *History) Revisions(name string) ([]*Revision, error) {
	rows, err := h.db.Query(`
		SELECT name, version, source_path, content_hash, rule_count, loaded_at
		FROM ruleset_revisions
		WHERE name = ?
		ORDER BY loaded_at DESC, id DESC`, name)
	if err != nil {
		return nil, fmt.Errorf("querying revisions for %q: %w", name, err)
	}
	defer rows.Close()

	var revisions []*Revision
	for rows.Next() {
		var rev Revision
		var loadedAt int64
		if err := rows.Scan(&rev.Name, &rev.Version, &rev.SourcePath, &rev.ContentHash, &rev.RuleCount, &loadedAt); err != nil {
			return nil, fmt.Errorf("scanning revision: %w", err)
		}
		rev.LoadedAt = time.Unix(loadedAt, 0).UTC()
		revisions = append(revisions, &rev)
	}
	return revisions, rows.Err()
}

// Close closes the underlying database.
func (h *History) Close() error {
	return h.db.Close()
}

// ContentHash returns the SHA-256 of a document's raw bytes as lowercase hex.
func ContentHash(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
