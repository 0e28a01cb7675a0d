package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ChristopherHardiman/lonelog/internal/store"
)

func (c *Client) GetEntity(ctx context.Context, name, kind string) ([]store.Entity, error) {
	query := `
	SELECT kind, name, journal, source_file, tags, mentions, first_mention, last_mention
	FROM entities
	WHERE name = $1
	  AND ($2 = '' OR kind = $2)
	ORDER BY journal, source_file
	`
	rows, err := c.pool.Query(ctx, query, name, kind)
	if err != nil {
		return nil, fmt.Errorf("getting entity: %w", err)
	}
	defer rows.Close()

	return scanEntities(rows)
}

func (c *Client) ListEntities(ctx context.Context, kind, journal, tag string) ([]store.Entity, error) {
	query := `
	SELECT kind, name, journal, source_file, tags, mentions, first_mention, last_mention
	FROM entities
	WHERE ($1 = '' OR kind = $1)
	  AND ($2 = '' OR journal = $2)
	  AND ($3 = '' OR tags @> to_jsonb(ARRAY[$3]))
	ORDER BY name, journal, source_file
	`
	rows, err := c.pool.Query(ctx, query, kind, journal, tag)
	if err != nil {
		return nil, fmt.Errorf("listing entities: %w", err)
	}
	defer rows.Close()

	return scanEntities(rows)
}

func (c *Client) ListThreads(ctx context.Context, journal, state string) ([]store.Thread, error) {
	query := `
	SELECT name, state, journal, source_file, mentions, first_mention, last_mention
	FROM threads
	WHERE ($1 = '' OR journal = $1)
	  AND ($2 = '' OR state = $2)
	ORDER BY name, journal, source_file
	`
	rows, err := c.pool.Query(ctx, query, journal, state)
	if err != nil {
		return nil, fmt.Errorf("listing threads: %w", err)
	}
	defer rows.Close()

	var threads []store.Thread
	for rows.Next() {
		var th store.Thread
		var mentionsBytes []byte
		err := rows.Scan(&th.Name, &th.State, &th.Journal, &th.SourceFile,
			&mentionsBytes, &th.FirstMention, &th.LastMention)
		if err != nil {
			return nil, fmt.Errorf("scanning thread: %w", err)
		}
		if len(mentionsBytes) > 0 {
			if err := json.Unmarshal(mentionsBytes, &th.Mentions); err != nil {
				return nil, fmt.Errorf("unmarshaling mentions: %w", err)
			}
		}
		threads = append(threads, th)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating thread rows: %w", err)
	}
	return threads, nil
}

func (c *Client) ListProgress(ctx context.Context, journal, kind string) ([]store.Progress, error) {
	query := `
	SELECT kind, name, journal, source_file, current, COALESCE(max, 0), line
	FROM progress
	WHERE ($1 = '' OR journal = $1)
	  AND ($2 = '' OR kind = $2)
	ORDER BY journal, source_file, line, id
	`
	rows, err := c.pool.Query(ctx, query, journal, kind)
	if err != nil {
		return nil, fmt.Errorf("listing progress: %w", err)
	}
	defer rows.Close()

	var elements []store.Progress
	for rows.Next() {
		var pr store.Progress
		err := rows.Scan(&pr.Kind, &pr.Name, &pr.Journal, &pr.SourceFile,
			&pr.Current, &pr.Max, &pr.Line)
		if err != nil {
			return nil, fmt.Errorf("scanning progress: %w", err)
		}
		elements = append(elements, pr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating progress rows: %w", err)
	}
	return elements, nil
}

func scanEntities(rows pgx.Rows) ([]store.Entity, error) {
	var entities []store.Entity
	for rows.Next() {
		var e store.Entity
		var tagsBytes, mentionsBytes []byte
		err := rows.Scan(&e.Kind, &e.Name, &e.Journal, &e.SourceFile,
			&tagsBytes, &mentionsBytes, &e.FirstMention, &e.LastMention)
		if err != nil {
			return nil, fmt.Errorf("scanning entity: %w", err)
		}
		if len(tagsBytes) > 0 {
			if err := json.Unmarshal(tagsBytes, &e.Tags); err != nil {
				return nil, fmt.Errorf("unmarshaling tags: %w", err)
			}
		}
		if len(mentionsBytes) > 0 {
			if err := json.Unmarshal(mentionsBytes, &e.Mentions); err != nil {
				return nil, fmt.Errorf("unmarshaling mentions: %w", err)
			}
		}
		entities = append(entities, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entity rows: %w", err)
	}
	return entities, nil
}
