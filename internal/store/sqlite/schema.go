package sqlite

import (
	"context"
	"fmt"
)

func (c *Client) EnsureSchema(ctx context.Context) error {
	ddl := `
	CREATE TABLE IF NOT EXISTS files (
		journal       TEXT NOT NULL,
		path          TEXT NOT NULL,
		hash          TEXT NOT NULL,
		last_ingested TEXT DEFAULT (datetime('now')),
		CONSTRAINT uq_file UNIQUE (journal, path)
	);

	CREATE TABLE IF NOT EXISTS entities (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		journal       TEXT NOT NULL,
		source_file   TEXT NOT NULL,
		kind          TEXT NOT NULL,
		name          TEXT NOT NULL,
		tags          TEXT DEFAULT '[]',
		mentions      TEXT DEFAULT '[]',
		first_mention INTEGER NOT NULL,
		last_mention  INTEGER NOT NULL,
		CONSTRAINT uq_entity UNIQUE (journal, source_file, kind, name)
	);

	CREATE TABLE IF NOT EXISTS threads (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		journal       TEXT NOT NULL,
		source_file   TEXT NOT NULL,
		name          TEXT NOT NULL,
		state         TEXT NOT NULL,
		mentions      TEXT DEFAULT '[]',
		first_mention INTEGER NOT NULL,
		last_mention  INTEGER NOT NULL,
		CONSTRAINT uq_thread UNIQUE (journal, source_file, name)
	);

	CREATE TABLE IF NOT EXISTS progress (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		journal     TEXT NOT NULL,
		source_file TEXT NOT NULL,
		kind        TEXT NOT NULL,
		name        TEXT NOT NULL,
		current     INTEGER NOT NULL,
		max         INTEGER,
		line        INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_entities_kind ON entities (kind);
	CREATE INDEX IF NOT EXISTS idx_entities_journal ON entities (journal);
	CREATE INDEX IF NOT EXISTS idx_entities_name ON entities (name);
	CREATE INDEX IF NOT EXISTS idx_entities_file ON entities (journal, source_file);
	CREATE INDEX IF NOT EXISTS idx_threads_file ON threads (journal, source_file);
	CREATE INDEX IF NOT EXISTS idx_threads_state ON threads (state);
	CREATE INDEX IF NOT EXISTS idx_progress_file ON progress (journal, source_file);
	CREATE INDEX IF NOT EXISTS idx_progress_kind ON progress (kind);

	CREATE VIRTUAL TABLE IF NOT EXISTS entities_fts USING fts5(
		name,
		tags,
		content=entities,
		content_rowid=id
	);

	CREATE TRIGGER IF NOT EXISTS entities_ai AFTER INSERT ON entities BEGIN
		INSERT INTO entities_fts(rowid, name, tags)
		VALUES (new.id, new.name, new.tags);
	END;

	CREATE TRIGGER IF NOT EXISTS entities_ad AFTER DELETE ON entities BEGIN
		INSERT INTO entities_fts(entities_fts, rowid, name, tags)
		VALUES ('delete', old.id, old.name, old.tags);
	END;

	CREATE TRIGGER IF NOT EXISTS entities_au AFTER UPDATE ON entities BEGIN
		INSERT INTO entities_fts(entities_fts, rowid, name, tags)
		VALUES ('delete', old.id, old.name, old.tags);
		INSERT INTO entities_fts(rowid, name, tags)
		VALUES (new.id, new.name, new.tags);
	END;
	`

	if _, err := c.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensuring sqlite schema: %w", err)
	}
	return nil
}
