package sqlitestore

// SchemaVersion tracks the snippet table layout. Bump when the schema
// changes shape.
const SchemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS snippets (
	id          TEXT PRIMARY KEY,
	seq         INTEGER NOT NULL,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	category    TEXT NOT NULL DEFAULT 'custom',
	code        TEXT NOT NULL,
	code_type   TEXT NOT NULL DEFAULT 'html',
	position    TEXT NOT NULL DEFAULT 'head',
	priority    INTEGER NOT NULL DEFAULT 10,
	status      TEXT NOT NULL DEFAULT 'enabled',
	device      TEXT NOT NULL DEFAULT 'all',
	load_method TEXT NOT NULL DEFAULT 'normal',
	conditions  TEXT,
	created_at  TIMESTAMP NOT NULL,
	updated_at  TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_snippets_position_status
	ON snippets (position, status);

CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER PRIMARY KEY
);
`

const (
	insertSchemaVersion = `INSERT OR IGNORE INTO schema_version (version) VALUES (?)`
	getSchemaVersion    = `SELECT version FROM schema_version ORDER BY version DESC LIMIT 1`
	nextSeq             = `SELECT COALESCE(MAX(seq), 0) + 1 FROM snippets`
)

const snippetColumns = `id, name, description, category, code, code_type, position,
	priority, status, device, load_method, conditions, created_at, updated_at`
