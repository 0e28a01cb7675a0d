package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ChristopherHardiman/lonelog/internal/store"
)

func (c *Client) ReplaceFile(ctx context.Context, snapshot store.FileSnapshot) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"entities", "threads", "progress"} {
		query := fmt.Sprintf("DELETE FROM %s WHERE journal = ? AND source_file = ?", table)
		if _, err := tx.ExecContext(ctx, query, snapshot.Journal, snapshot.Path); err != nil {
			return fmt.Errorf("clearing %s rows: %w", table, err)
		}
	}

	_, err = tx.ExecContext(ctx, `
	INSERT INTO files (journal, path, hash, last_ingested)
	VALUES (?, ?, ?, datetime('now'))
	ON CONFLICT (journal, path) DO UPDATE SET
		hash = excluded.hash,
		last_ingested = datetime('now')
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
		_, err = tx.ExecContext(ctx, `
		INSERT INTO entities (journal, source_file, kind, name, tags, mentions, first_mention, last_mention)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
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
		_, err = tx.ExecContext(ctx, `
		INSERT INTO threads (journal, source_file, name, state, mentions, first_mention, last_mention)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		`, snapshot.Journal, snapshot.Path, th.Name, th.State, mentionsJSON,
			firstMention(th.Mentions), lastMention(th.Mentions))
		if err != nil {
			return fmt.Errorf("inserting thread %q: %w", th.Name, err)
		}
	}

	for _, pr := range snapshot.Progress {
		_, err = tx.ExecContext(ctx, `
		INSERT INTO progress (journal, source_file, kind, name, current, max, line)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		`, snapshot.Journal, snapshot.Path, pr.Kind, pr.Name, pr.Current, pr.Max, pr.Line)
		if err != nil {
			return fmt.Errorf("inserting progress %q: %w", pr.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}
	return nil
}

func (c *Client) GetFileHashes(ctx context.Context, journal string) (map[string]string, error) {
	rows, err := c.db.QueryContext(ctx,
		"SELECT path, hash FROM files WHERE journal = ?", journal)
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
	placeholders := make([]string, len(currentFiles))
	args := make([]any, 0, len(currentFiles)+1)
	args = append(args, journal)
	for i, f := range currentFiles {
		placeholders[i] = "?"
		args = append(args, f)
	}

	notIn := ""
	if len(currentFiles) > 0 {
		notIn = fmt.Sprintf(" AND path NOT IN (%s)", strings.Join(placeholders, ", "))
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stale, err := tx.QueryContext(ctx, "SELECT path FROM files WHERE journal = ?"+notIn, args...)
	if err != nil {
		return 0, fmt.Errorf("querying stale files: %w", err)
	}
	var paths []string
	for stale.Next() {
		var path string
		if err := stale.Scan(&path); err != nil {
			stale.Close()
			return 0, fmt.Errorf("scanning stale file: %w", err)
		}
		paths = append(paths, path)
	}
	if err := stale.Err(); err != nil {
		stale.Close()
		return 0, fmt.Errorf("iterating stale files: %w", err)
	}
	stale.Close()

	for _, path := range paths {
		for _, table := range []string{"entities", "threads", "progress", "files"} {
			col := "source_file"
			if table == "files" {
				col = "path"
			}
			query := fmt.Sprintf("DELETE FROM %s WHERE journal = ? AND %s = ?", table, col)
			if _, err := tx.ExecContext(ctx, query, journal, path); err != nil {
				return 0, fmt.Errorf("removing stale rows from %s: %w", table, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
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
