// Package store persists parsed journal snapshots in a queryable index.
// Implementations exist for sqlite (the default, zero-setup) and postgres.
package store

import "context"

type Store interface {
	Close(ctx context.Context) error
	EnsureSchema(ctx context.Context) error

	// ReplaceFile atomically swaps every indexed row for one source file
	// with the rows of a fresh parse.
	ReplaceFile(ctx context.Context, snapshot FileSnapshot) error
	GetFileHashes(ctx context.Context, journal string) (map[string]string, error)
	RemoveStaleFiles(ctx context.Context, journal string, currentFiles []string) (int64, error)

	// GetEntity returns every per-file record of a named entity; the same
	// name may appear in several journal files.
	GetEntity(ctx context.Context, name, kind string) ([]Entity, error)
	ListEntities(ctx context.Context, kind, journal, tag string) ([]Entity, error)
	ListThreads(ctx context.Context, journal, state string) ([]Thread, error)
	ListProgress(ctx context.Context, journal, kind string) ([]Progress, error)
	Search(ctx context.Context, query, journal, kind string) ([]SearchResult, error)
}
