package postgres

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
		last_ingested TIMESTAMPTZ DEFAULT now(),
		CONSTRAINT uq_file UNIQUE (journal, path)
	);

	CREATE TABLE IF NOT EXISTS entities (
		id            BIGSERIAL PRIMARY KEY,
		journal       TEXT NOT NULL,
		source_file   TEXT NOT NULL,
		kind          TEXT NOT NULL,
		name          TEXT NOT NULL,
		tags          JSONB NOT NULL DEFAULT '[]',
		mentions      JSONB NOT NULL DEFAULT '[]',
		first_mention INTEGER NOT NULL,
		last_mention  INTEGER NOT NULL,
		CONSTRAINT uq_entity UNIQUE (journal, source_file, kind, name)
	);

	CREATE TABLE IF NOT EXISTS threads (
		id            BIGSERIAL PRIMARY KEY,
		journal       TEXT NOT NULL,
		source_file   TEXT NOT NULL,
		name          TEXT NOT NULL,
		state         TEXT NOT NULL,
		mentions      JSONB NOT NULL DEFAULT '[]',
		first_mention INTEGER NOT NULL,
		last_mention  INTEGER NOT NULL,
		CONSTRAINT uq_thread UNIQUE (journal, source_file, name)
	);

	CREATE TABLE IF NOT EXISTS progress (
		id          BIGSERIAL PRIMARY KEY,
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

	CREATE INDEX IF NOT EXISTS idx_entities_search ON entities
		USING GIN (to_tsvector('simple', name || ' ' || tags::text));
	`

	if _, err := c.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensuring postgres schema: %w", err)
	}
	return nil
}
