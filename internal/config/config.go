package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the project config looked up in the working directory.
const DefaultFile = "lonelog.yaml"

type ProjectConfig struct {
	Project   string         `yaml:"project"`
	Version   int            `yaml:"version"`
	Database  DatabaseConfig `yaml:"database"`
	Journals  []Journal      `yaml:"journals"`
	Exclude   []string       `yaml:"exclude"`
	Highlight Palette        `yaml:"highlight"`
}

type DatabaseConfig struct {
	// Driver is "sqlite" or "postgres".
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// Journal is one named group of journal directories scanned for .md files.
type Journal struct {
	Name  string   `yaml:"name"`
	Paths []string `yaml:"paths"`
}

// Palette maps token type names to terminal colors for the highlight
// command. Values are ANSI 256 color codes or hex strings, anything
// lipgloss accepts.
type Palette struct {
	Action      string `yaml:"action"`
	Question    string `yaml:"question"`
	Dice        string `yaml:"dice"`
	Consequence string `yaml:"consequence"`
	Result      string `yaml:"result"`
	Tag         string `yaml:"tag"`
}

// DefaultPalette is used wherever the config leaves a color unset.
var DefaultPalette = Palette{
	Action:      "214",
	Question:    "39",
	Dice:        "135",
	Consequence: "203",
	Result:      "42",
	Tag:         "228",
}

func LoadProjectConfig(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	if err := validateProjectConfig(&cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	applyPaletteDefaults(&cfg.Highlight)
	return &cfg, nil
}

func validateProjectConfig(cfg *ProjectConfig) error {
	if strings.TrimSpace(cfg.Project) == "" {
		return fmt.Errorf("project name is required")
	}
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported version: %d", cfg.Version)
	}

	switch cfg.Database.Driver {
	case "", "sqlite", "postgres":
	default:
		return fmt.Errorf("unknown database driver: %s", cfg.Database.Driver)
	}

	if len(cfg.Journals) == 0 {
		return fmt.Errorf("at least one journal is required")
	}
	seen := make(map[string]struct{})
	for i, journal := range cfg.Journals {
		if strings.TrimSpace(journal.Name) == "" {
			return fmt.Errorf("journal %d name is required", i)
		}
		if len(journal.Paths) == 0 {
			return fmt.Errorf("journal %d paths are required", i)
		}
		key := strings.ToLower(journal.Name)
		if _, exists := seen[key]; exists {
			return fmt.Errorf("duplicate journal name: %s", journal.Name)
		}
		seen[key] = struct{}{}
	}

	return nil
}

func applyPaletteDefaults(p *Palette) {
	if p.Action == "" {
		p.Action = DefaultPalette.Action
	}
	if p.Question == "" {
		p.Question = DefaultPalette.Question
	}
	if p.Dice == "" {
		p.Dice = DefaultPalette.Dice
	}
	if p.Consequence == "" {
		p.Consequence = DefaultPalette.Consequence
	}
	if p.Result == "" {
		p.Result = DefaultPalette.Result
	}
	if p.Tag == "" {
		p.Tag = DefaultPalette.Tag
	}
}
