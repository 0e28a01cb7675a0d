package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ChristopherHardiman/lonelog/internal/store"
)

func (c *Client) ReplaceFile(ctx context.Context, snapshot store.FileSnapshot) error {
	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, table := range []string{"entities", "threads", "progress"} {
		query := fmt.Sprintf("DELETE FROM %s WHERE journal = $1 AND source_file = $2", table)
		if _, err := tx.Exec(ctx, query, snapshot.Journal, snapshot.Path); err != nil {
			return fmt.Errorf("clearing %s rows: %w", table, err)
		}
	}

	_, err = tx.Exec(ctx, `
	INSERT INTO files (journal, path, hash, last_ingested)
	VALUES ($1, $2, $3, now())
	ON CONFLICT (journal, path) DO UPDATE SET
		hash = EXCLUDED.hash,
		last_ingested = now()
	`, snapshot.Journal, snapshot.Path, snapshot.Hash)
	if err != nil {
		return fmt.Errorf("upserting file record: %w", err)
	}

	for _, e := range snapshot.Entities {
		tagsJSON, err := json.Marshal(e.Tags)
		if err != nil {
			return fmt.Errorf("marshaling tags: %w", err)
		}
		mentionsJSON, err := json.Marshal(e.Mentions)
		if err != nil {
			return fmt.Errorf("marshaling mentions: %w", err)
		}
		_, err = tx.Exec(ctx, `
		INSERT INTO entities (journal, source_file, kind, name, tags, mentions, first_mention, last_mention)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, snapshot.Journal, snapshot.Path, e.Kind, e.Name, tagsJSON, mentionsJSON,
			firstMention(e.Mentions), lastMention(e.Mentions))
		if err != nil {
			return fmt.Errorf("inserting entity %q: %w", e.Name, err)
		}
	}

	for _, th := range snapshot.Threads {
		mentionsJSON, err := json.Marshal(th.Mentions)
		if err != nil {
			return fmt.Errorf("marshaling mentions: %w", err)
		}
		_, err = tx.Exec(ctx, `
		INSERT INTO threads (journal, source_file, name, state, mentions, first_mention, last_mention)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, snapshot.Journal, snapshot.Path, th.Name, th.State, mentionsJSON,
			firstMention(th.Mentions), lastMention(th.Mentions))
		if err != nil {
			return fmt.Errorf("inserting thread %q: %w", th.Name, err)
		}
	}

	for _, pr := range snapshot.Progress {
		_, err = tx.Exec(ctx, `
		INSERT INTO progress (journal, source_file, kind, name, current, max, line)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, snapshot.Journal, snapshot.Path, pr.Kind, pr.Name, pr.Current, pr.Max, pr.Line)
		if err != nil {
			return fmt.Errorf("inserting progress %q: %w", pr.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}
	return nil
}

func (c *Client) GetFileHashes(ctx context.Context, journal string) (map[string]string, error) {
	rows, err := c.pool.Query(ctx,
		"SELECT path, hash FROM files WHERE journal = $1", journal)
	if err != nil {
		return nil, fmt.Errorf("querying file hashes: %w", err)
	}
	defer rows.Close()

	hashes := make(map[string]string)
	for rows.Next() {
		var path, hash string
		if err := rows.Scan(&path, &hash); err != nil {
			return nil, fmt.Errorf("scanning file hash: %w", err)
		}
		hashes[path] = hash
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating file hashes: %w", err)
	}
	return hashes, nil
}

func (c *Client) RemoveStaleFiles(ctx context.Context, journal string, currentFiles []string) (int64, error) {
	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx,
		"SELECT path FROM files WHERE journal = $1 AND path <> ALL($2)",
		journal, currentFiles)
	if err != nil {
		return 0, fmt.Errorf("querying stale files: %w", err)
	}
	var paths []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			rows.Close()
			return 0, fmt.Errorf("scanning stale file: %w", err)
		}
		paths = append(paths, path)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, fmt.Errorf("iterating stale files: %w", err)
	}
	rows.Close()

	for _, path := range paths {
		for _, table := range []string{"entities", "threads", "progress"} {
			query := fmt.Sprintf("DELETE FROM %s WHERE journal = $1 AND source_file = $2", table)
			if _, err := tx.Exec(ctx, query, journal, path); err != nil {
				return 0, fmt.Errorf("removing stale rows from %s: %w", table, err)
			}
		}
		if _, err := tx.Exec(ctx, "DELETE FROM files WHERE journal = $1 AND path = $2", journal, path); err != nil {
			return 0, fmt.Errorf("removing stale file record: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("committing stale removal: %w", err)
	}
	return int64(len(paths)), nil
}

func firstMention(mentions []int) int {
	if len(mentions) == 0 {
		return 0
	}
	return mentions[0]
}

func lastMention(mentions []int) int {
	if len(mentions) == 0 {
		return 0
	}
	return mentions[len(mentions)-1]
}
