package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ChristopherHardiman/lonelog/internal/store"
)

func (c *Client) ListThreads(ctx context.Context, journal, state string) ([]store.Thread, error) {
	query := `
	SELECT name, state, journal, source_file, mentions, first_mention, last_mention
	FROM threads
	WHERE (? = '' OR journal = ?)
	  AND (? = '' OR state = ?)
	ORDER BY name, journal, source_file
	`
	rows, err := c.db.QueryContext(ctx, query, journal, journal, state, state)
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
	SELECT kind, name, journal, source_file, current, max, line
	FROM progress
	WHERE (? = '' OR journal = ?)
	  AND (? = '' OR kind = ?)
	ORDER BY journal, source_file, line, id
	`
	rows, err := c.db.QueryContext(ctx, query, journal, journal, kind, kind)
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
