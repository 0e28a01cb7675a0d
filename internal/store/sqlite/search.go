package sqlite

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
	SELECT e.kind, e.name, e.journal, e.source_file, e.tags,
		   bm25(entities_fts, 10.0, 4.0) AS score
	FROM entities_fts
	JOIN entities e ON entities_fts.rowid = e.id
	WHERE entities_fts MATCH ?
	  AND (? = '' OR e.journal = ?)
	  AND (? = '' OR e.kind = ?)
	ORDER BY score ASC, e.name ASC
	LIMIT 50
	`

	rows, err := c.db.QueryContext(ctx, sqlQuery, ftsQuery(query), journal, journal, kind, kind)
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

// ftsQuery quotes each whitespace token and adds a trailing wildcard so
// user input never reaches FTS5 as raw query syntax.
func ftsQuery(query string) string {
	fields := strings.Fields(query)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		escaped := strings.ReplaceAll(field, `"`, `""`)
		parts = append(parts, `"`+escaped+`"*`)
	}
	return strings.Join(parts, " ")
}
