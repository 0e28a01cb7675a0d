package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/ChristopherHardiman/lonelog/internal/store"
)

func (c *Client) GetEntity(ctx context.Context, name, kind string) ([]store.Entity, error) {
	query := `
	SELECT kind, name, journal, source_file, tags, mentions, first_mention, last_mention
	FROM entities
	WHERE name = ?
	  AND (? = '' OR kind = ?)
	ORDER BY journal, source_file
	`
	rows, err := c.db.QueryContext(ctx, query, name, kind, kind)
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
	WHERE (? = '' OR kind = ?)
	  AND (? = '' OR journal = ?)
	ORDER BY name, journal, source_file
	`
	rows, err := c.db.QueryContext(ctx, query, kind, kind, journal, journal)
	if err != nil {
		return nil, fmt.Errorf("listing entities: %w", err)
	}
	defer rows.Close()

	entities, err := scanEntities(rows)
	if err != nil {
		return nil, err
	}

	// Tag filtering happens here rather than in SQL: tags are stored as a
	// JSON array and the list is small.
	if tag == "" {
		return entities, nil
	}
	filtered := entities[:0]
	for _, e := range entities {
		for _, t := range e.Tags {
			if t == tag {
				filtered = append(filtered, e)
				break
			}
		}
	}
	return filtered, nil
}

func scanEntities(rows *sql.Rows) ([]store.Entity, error) {
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
