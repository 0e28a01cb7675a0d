package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lonelog.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

const validConfig = `
project: test-campaign
version: 1
database:
  driver: sqlite
  dsn: lonelog.db
journals:
  - name: sessions
    paths:
      - journals/sessions
highlight:
  action: "208"
`

func TestLoadProjectConfig_Valid(t *testing.T) {
	cfg, err := LoadProjectConfig(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Project != "test-campaign" {
		t.Fatalf("project = %q", cfg.Project)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Fatalf("driver = %q", cfg.Database.Driver)
	}
	if len(cfg.Journals) != 1 || cfg.Journals[0].Name != "sessions" {
		t.Fatalf("journals = %+v", cfg.Journals)
	}
}

func TestLoadProjectConfig_PaletteDefaults(t *testing.T) {
	cfg, err := LoadProjectConfig(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Highlight.Action != "208" {
		t.Fatalf("explicit color overridden: %q", cfg.Highlight.Action)
	}
	if cfg.Highlight.Tag != DefaultPalette.Tag {
		t.Fatalf("unset color not defaulted: %q", cfg.Highlight.Tag)
	}
}

func TestLoadProjectConfig_Invalid(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantErr string
	}{
		{"missing project", "version: 1\njournals:\n  - name: a\n    paths: [x]\n", "project name is required"},
		{"bad version", "project: p\nversion: 2\njournals:\n  - name: a\n    paths: [x]\n", "unsupported version"},
		{"no journals", "project: p\nversion: 1\n", "at least one journal"},
		{"journal without paths", "project: p\nversion: 1\njournals:\n  - name: a\n", "paths are required"},
		{"duplicate journal", "project: p\nversion: 1\njournals:\n  - name: a\n    paths: [x]\n  - name: A\n    paths: [y]\n", "duplicate journal name"},
		{"unknown driver", "project: p\nversion: 1\ndatabase:\n  driver: oracle\njournals:\n  - name: a\n    paths: [x]\n", "unknown database driver"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadProjectConfig(writeConfig(t, tc.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error %q does not mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestLoadProjectConfig_MissingFile(t *testing.T) {
	if _, err := LoadProjectConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
