package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
vocabulary:
  source: "file"
  path: "/usr/share/wordle/words"

cache:
  path: "/tmp/wordle.cache"

solver:
  workers: 4
  max_guesses: 20
  quiet: true

server:
  port: 9090
  local_only: true

log:
  level: "debug"
  format: "json"
`

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Vocabulary.Path != "/usr/share/wordle/words" {
		t.Errorf("Vocabulary.Path = %q", cfg.Vocabulary.Path)
	}
	if cfg.Cache.Path != "/tmp/wordle.cache" {
		t.Errorf("Cache.Path = %q", cfg.Cache.Path)
	}
	if cfg.Solver.Workers != 4 || cfg.Solver.MaxGuesses != 20 || !cfg.Solver.Quiet {
		t.Errorf("Solver = %+v", cfg.Solver)
	}
	if cfg.Server.Port != 9090 || !cfg.Server.LocalOnly {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.Vocabulary.BigQueryLocation != "US" {
		t.Errorf("BigQueryLocation default = %q, want US", cfg.Vocabulary.BigQueryLocation)
	}
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("WORDLE_WORDS", "/srv/words")
	t.Setenv("PORT", "7070")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Vocabulary.Path != "/srv/words" {
		t.Errorf("Vocabulary.Path = %q, want env value", cfg.Vocabulary.Path)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("Server.Port = %d, want 7070", cfg.Server.Port)
	}
}

func TestLoad_EnvOnlyDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_PATH", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Vocabulary.Source != SourceFile || cfg.Vocabulary.Path != "words" {
		t.Errorf("Vocabulary = %+v", cfg.Vocabulary)
	}
	if cfg.Solver.MaxGuesses != 100 || cfg.Solver.Quiet {
		t.Errorf("Solver = %+v", cfg.Solver)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Errorf("Log = %+v", cfg.Log)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := Load()
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("Load() error = %v, want a missing file error", err)
	}
}

func TestLoadFile_InvalidSource(t *testing.T) {
	path := writeYAML(t, t.TempDir(), "vocabulary:\n  source: \"s3\"\n")
	_, err := LoadFile(path)
	if err == nil || !strings.Contains(err.Error(), "vocabulary.source") {
		t.Fatalf("LoadFile() error = %v, want a vocabulary.source error", err)
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Vocabulary: VocabularyConfig{Source: SourceFile, Path: "words"},
			Solver:     SolverConfig{MaxGuesses: 100},
			Server:     ServerConfig{Port: 8080},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"unknown source", func(c *Config) { c.Vocabulary.Source = "s3" }, true},
		{"file without path", func(c *Config) { c.Vocabulary.Path = "" }, true},
		{"bigquery without query", func(c *Config) {
			c.Vocabulary.Source = SourceBigQuery
			c.Vocabulary.BigQueryProject = "xword-x"
		}, true},
		{"bigquery complete", func(c *Config) {
			c.Vocabulary.Source = SourceBigQuery
			c.Vocabulary.BigQueryProject = "xword-x"
			c.Vocabulary.BigQueryQuery = "SELECT word FROM words"
		}, false},
		{"negative max guesses", func(c *Config) { c.Solver.MaxGuesses = -1 }, true},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
