package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ChristopherHardiman/lonelog/internal/store"
)

func (c *Client) Search(ctx context.Context, query, journal, kind string) ([]store.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query must not be empty")
	}

	sqlQuery := `
	SELECT kind, name, journal, source_file, tags,
		   ts_rank(to_tsvector('simple', name || ' ' || tags::text),
				   websearch_to_tsquery('simple', $1)) AS score
	FROM entities
	WHERE to_tsvector('simple', name || ' ' || tags::text) @@ websearch_to_tsquery('simple', $1)
	  AND ($2 = '' OR journal = $2)
	  AND ($3 = '' OR kind = $3)
	ORDER BY score DESC, name ASC
	LIMIT 50
	`

	rows, err := c.pool.Query(ctx, sqlQuery, query, journal, kind)
	if err != nil {
		return nil, fmt.Errorf("searching entities: %w", err)
	}
	defer rows.Close()

	var results []store.SearchResult
	for rows.Next() {
		var r store.SearchResult
		var tagsBytes []byte
		if err := rows.Scan(&r.Kind, &r.Name, &r.Journal, &r.SourceFile, &tagsBytes, &r.Score); err != nil {
			return nil, fmt.Errorf("scanning search result: %w", err)
		}
		if len(tagsBytes) > 0 {
			if err := json.Unmarshal(tagsBytes, &r.Tags); err != nil {
				return nil, fmt.Errorf("unmarshaling tags: %w", err)
			}
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating search results: %w", err)
	}
	return results, nil
}
