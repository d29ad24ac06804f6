// Package sqlitestore persists snippets in SQLite. It is the default
// backend for self-hosted deployments: one file, no server, safe for the
// read-heavy render path with WAL mode enabled.
package sqlitestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"tagforge-hq/tagforge/pkg/engine"
	"tagforge-hq/tagforge/pkg/snippet"
)

// Config contains configuration for the SQLite backend.
type Config struct {
	// Path is the database file path.
	Path string

	// MaxOpenConns caps open connections. Default: 10
	MaxOpenConns int

	// MaxIdleConns caps idle connections. Default: 5
	MaxIdleConns int

	// WALMode enables Write-Ahead Logging for better read concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is how long a locked database blocks a writer.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultConfig returns the default SQLite configuration.
func DefaultConfig() *Config {
	return &Config{
		Path:         "data/snippets.db",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// Store implements snippet.Store and snippet.Writer on SQLite.
type Store struct {
	db     *sql.DB
	config *Config
	logger *slog.Logger
}

var (
	_ snippet.Store  = (*Store)(nil)
	_ snippet.Writer = (*Store)(nil)
)

// New opens the database, applies the schema, and verifies its version.
func New(config *Config) (*Store, error) {
	if config == nil {
		config = DefaultConfig()
	}

	logger := slog.Default().With("component", "snippet.sqlitestore")

	db, err := sql.Open("sqlite", config.Path)
	if err != nil {
		return nil, &snippet.StoreError{Op: "open", Err: err}
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	s := &Store{db: db, config: config, logger: logger}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("sqlite snippet store initialized",
		"path", config.Path,
		"wal_mode", config.WALMode,
	)
	return s, nil
}

func (s *Store) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return &snippet.StoreError{Op: "enable_wal", Err: err}
		}
	}

	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", s.config.BusyTimeout.Milliseconds())); err != nil {
		return &snippet.StoreError{Op: "set_busy_timeout", Err: err}
	}

	if _, err := s.db.Exec(schema); err != nil {
		return &snippet.StoreError{Op: "create_schema", Err: err}
	}
	if _, err := s.db.Exec(insertSchemaVersion, SchemaVersion); err != nil {
		return &snippet.StoreError{Op: "insert_schema_version", Err: err}
	}

	var version int
	if err := s.db.QueryRow(getSchemaVersion).Scan(&version); err != nil && err != sql.ErrNoRows {
		return &snippet.StoreError{Op: "get_schema_version", Err: err}
	}
	if version != SchemaVersion {
		return &snippet.StoreError{
			Op:  "schema_version_mismatch",
			Err: fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version),
		}
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns one snippet by ID.
func (s *Store) Get(ctx context.Context, id string) (*snippet.Snippet, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+snippetColumns+` FROM snippets WHERE id = ?`, id)

	sn, err := scanSnippet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &snippet.NotFoundError{ID: id}
	}
	if err != nil {
		return nil, &snippet.StoreError{Op: "get", Err: err}
	}
	return sn, nil
}

// FindActiveByPosition returns enabled snippets for a position in render
// order: priority ascending, insertion order breaking ties.
func (s *Store) FindActiveByPosition(ctx context.Context, position snippet.Position) ([]*snippet.Snippet, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+snippetColumns+` FROM snippets
		 WHERE status = ? AND position = ?
		 ORDER BY priority ASC, seq ASC`,
		string(snippet.StatusEnabled), string(position))
	if err != nil {
		return nil, &snippet.StoreError{Op: "find_active", Err: err}
	}
	defer rows.Close()

	return collectSnippets(rows)
}

// Create inserts a new snippet. A missing ID gets a fresh UUID; timestamps
// are set to now.
func (s *Store) Create(ctx context.Context, sn *snippet.Snippet) error {
	if sn.ID == "" {
		sn.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	sn.CreatedAt = now
	sn.UpdatedAt = now

	conditions, err := marshalConditions(sn.Conditions)
	if err != nil {
		return &snippet.StoreError{Op: "create", Err: err}
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO snippets (
			id, seq, name, description, category, code, code_type, position,
			priority, status, device, load_method, conditions, created_at, updated_at
		) VALUES (?, (`+nextSeq+`), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sn.ID, sn.Name, sn.Description, sn.Category, sn.Code, string(sn.CodeType),
		string(sn.Position), sn.Priority, string(sn.Status), string(sn.Device),
		string(sn.LoadMethod), conditions, sn.CreatedAt, sn.UpdatedAt)
	if err != nil {
		return &snippet.StoreError{Op: "create", Err: err}
	}

	s.logger.Debug("snippet created", "id", sn.ID, "position", sn.Position)
	return nil
}

// Update rewrites an existing snippet in place. Creation time and insertion
// order are preserved.
func (s *Store) Update(ctx context.Context, sn *snippet.Snippet) error {
	sn.UpdatedAt = time.Now().UTC()

	conditions, err := marshalConditions(sn.Conditions)
	if err != nil {
		return &snippet.StoreError{Op: "update", Err: err}
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE snippets SET
			name = ?, description = ?, category = ?, code = ?, code_type = ?,
			position = ?, priority = ?, status = ?, device = ?, load_method = ?,
			conditions = ?, updated_at = ?
		 WHERE id = ?`,
		sn.Name, sn.Description, sn.Category, sn.Code, string(sn.CodeType),
		string(sn.Position), sn.Priority, string(sn.Status), string(sn.Device),
		string(sn.LoadMethod), conditions, sn.UpdatedAt, sn.ID)
	if err != nil {
		return &snippet.StoreError{Op: "update", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &snippet.NotFoundError{ID: sn.ID}
	}

	s.logger.Debug("snippet updated", "id", sn.ID)
	return nil
}

// Delete removes a snippet by ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM snippets WHERE id = ?`, id)
	if err != nil {
		return &snippet.StoreError{Op: "delete", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &snippet.NotFoundError{ID: id}
	}

	s.logger.Debug("snippet deleted", "id", id)
	return nil
}

// ToggleStatus flips a snippet between enabled and disabled and returns the
// new status.
func (s *Store) ToggleStatus(ctx context.Context, id string) (snippet.Status, error) {
	sn, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}

	next := snippet.StatusEnabled
	if sn.Status == snippet.StatusEnabled {
		next = snippet.StatusDisabled
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE snippets SET status = ?, updated_at = ? WHERE id = ?`,
		string(next), time.Now().UTC(), id)
	if err != nil {
		return "", &snippet.StoreError{Op: "toggle_status", Err: err}
	}
	return next, nil
}

// List returns snippets matching the filter, priority order.
func (s *Store) List(ctx context.Context, filter snippet.ListFilter) ([]*snippet.Snippet, error) {
	where := []string{"1=1"}
	args := []any{}

	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(filter.Status))
	}
	if filter.Position != "" {
		where = append(where, "position = ?")
		args = append(args, string(filter.Position))
	}
	if filter.Category != "" {
		where = append(where, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.Search != "" {
		where = append(where, "(name LIKE ? OR description LIKE ?)")
		like := "%" + filter.Search + "%"
		args = append(args, like, like)
	}

	query := `SELECT ` + snippetColumns + ` FROM snippets WHERE ` +
		strings.Join(where, " AND ") + ` ORDER BY priority ASC, seq ASC`
	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &snippet.StoreError{Op: "list", Err: err}
	}
	defer rows.Close()

	return collectSnippets(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnippet(row rowScanner) (*snippet.Snippet, error) {
	var sn snippet.Snippet
	var conditions sql.NullString

	err := row.Scan(
		&sn.ID, &sn.Name, &sn.Description, &sn.Category, &sn.Code,
		&sn.CodeType, &sn.Position, &sn.Priority, &sn.Status, &sn.Device,
		&sn.LoadMethod, &conditions, &sn.CreatedAt, &sn.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if conditions.Valid && conditions.String != "" {
		var node engine.Node
		if err := json.Unmarshal([]byte(conditions.String), &node); err != nil {
			return nil, fmt.Errorf("decode conditions for %s: %w", sn.ID, err)
		}
		sn.Conditions = &node
	}
	return &sn, nil
}

func collectSnippets(rows *sql.Rows) ([]*snippet.Snippet, error) {
	var out []*snippet.Snippet
	for rows.Next() {
		sn, err := scanSnippet(rows)
		if err != nil {
			return nil, &snippet.StoreError{Op: "scan", Err: err}
		}
		out = append(out, sn)
	}
	if err := rows.Err(); err != nil {
		return nil, &snippet.StoreError{Op: "iterate", Err: err}
	}
	return out, nil
}

func marshalConditions(node *engine.Node) (any, error) {
	if node == nil {
		return nil, nil
	}
	data, err := json.Marshal(node)
	if err != nil {
		return nil, fmt.Errorf("encode conditions: %w", err)
	}
	return string(data), nil
}
