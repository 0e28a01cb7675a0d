// Package ingest synchronises the journal index with the markdown files on
// disk: walk each configured journal, skip unchanged files by content hash,
// parse the rest, and replace their indexed rows.
package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ChristopherHardiman/lonelog/internal/config"
	"github.com/ChristopherHardiman/lonelog/internal/parser"
	"github.com/ChristopherHardiman/lonelog/internal/store"
)

type Result struct {
	FilesIndexed int
	FilesSkipped int
	FilesRemoved int
	Entities     int
	Threads      int
	Progress     int
	Errors       []error
}

type Options struct {
	// Full ignores stored hashes and re-parses every file.
	Full bool
}

func Run(ctx context.Context, cfg *config.ProjectConfig, db store.Store, options Options) (*Result, error) {
	if err := db.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	result := &Result{}
	for _, journal := range cfg.Journals {
		var existingHashes map[string]string
		if !options.Full {
			var err error
			existingHashes, err = db.GetFileHashes(ctx, journal.Name)
			if err != nil {
				return nil, fmt.Errorf("get file hashes for %s: %w", journal.Name, err)
			}
		}

		files, err := walkMarkdownFiles(journal.Paths, cfg.Exclude)
		if err != nil {
			return nil, fmt.Errorf("walking files for journal %s: %w", journal.Name, err)
		}

		for _, path := range files {
			data, err := os.ReadFile(path)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Errorf("reading %s: %w", path, err))
				continue
			}
			hash := computeHash(data)
			if !options.Full {
				if existing, ok := existingHashes[path]; ok && existing == hash {
					result.FilesSkipped++
					continue
				}
			}

			snapshot := SnapshotFile(journal.Name, path, hash, parser.New().Parse(string(data)))
			if err := db.ReplaceFile(ctx, snapshot); err != nil {
				result.Errors = append(result.Errors, fmt.Errorf("indexing %s: %w", path, err))
				continue
			}
			result.FilesIndexed++
			result.Entities += len(snapshot.Entities)
			result.Threads += len(snapshot.Threads)
			result.Progress += len(snapshot.Progress)
		}

		removed, err := db.RemoveStaleFiles(ctx, journal.Name, files)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("removing stale files for %s: %w", journal.Name, err))
			continue
		}
		result.FilesRemoved += int(removed)
	}

	return result, nil
}

// SnapshotFile flattens one parsed document into store records. Map
// iteration order is not deterministic, so records are sorted by name to
// keep re-ingestion stable.
func SnapshotFile(journal, path, hash string, doc *parser.ParsedDocument) store.FileSnapshot {
	snapshot := store.FileSnapshot{
		Journal: journal,
		Path:    path,
		Hash:    hash,
	}

	appendEntities := func(kind string, entities map[string]*parser.NamedEntity) {
		for _, e := range entities {
			snapshot.Entities = append(snapshot.Entities, store.EntityRecord{
				Kind:     kind,
				Name:     e.Name,
				Tags:     e.Tags,
				Mentions: e.Mentions,
			})
		}
	}
	appendEntities(store.KindNPC, doc.NPCs)
	appendEntities(store.KindLocation, doc.Locations)
	appendEntities(store.KindPC, doc.PCs)
	sort.Slice(snapshot.Entities, func(i, j int) bool {
		if snapshot.Entities[i].Kind != snapshot.Entities[j].Kind {
			return snapshot.Entities[i].Kind < snapshot.Entities[j].Kind
		}
		return snapshot.Entities[i].Name < snapshot.Entities[j].Name
	})

	for _, th := range doc.Threads {
		snapshot.Threads = append(snapshot.Threads, store.ThreadRecord{
			Name:     th.Name,
			State:    th.State,
			Mentions: th.Mentions,
		})
	}
	sort.Slice(snapshot.Threads, func(i, j int) bool {
		return snapshot.Threads[i].Name < snapshot.Threads[j].Name
	})

	for _, pr := range doc.Progress {
		snapshot.Progress = append(snapshot.Progress, store.ProgressRecord{
			Kind:    pr.Kind.String(),
			Name:    pr.Name,
			Current: pr.Current,
			Max:     pr.Max,
			Line:    pr.Line,
		})
	}

	return snapshot
}

func walkMarkdownFiles(roots []string, excludes []string) ([]string, error) {
	excluded := make([]string, 0, len(excludes))
	for _, path := range excludes {
		if path == "" {
			continue
		}
		excluded = append(excluded, filepath.Clean(path))
	}

	var files []string
	for _, root := range roots {
		if root == "" {
			continue
		}
		root = filepath.Clean(root)
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() && isExcluded(path, excluded) {
				return filepath.SkipDir
			}
			if d.IsDir() {
				return nil
			}
			if !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
				return nil
			}
			if isExcluded(path, excluded) {
				return nil
			}
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

func isExcluded(path string, excludes []string) bool {
	clean := filepath.Clean(path)
	for _, exclude := range excludes {
		if exclude == clean || strings.HasPrefix(clean, exclude+string(os.PathSeparator)) {
			return true
		}
	}
	return false
}

func computeHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
