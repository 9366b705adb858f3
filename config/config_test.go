package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("writing test config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Scan.ChunkSizeBytes != 4<<20 {
		t.Errorf("ChunkSizeBytes = %d, want %d", cfg.Scan.ChunkSizeBytes, 4<<20)
	}
	if cfg.Scan.DefaultLimit != 50 {
		t.Errorf("DefaultLimit = %d, want 50", cfg.Scan.DefaultLimit)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[scan]
chunkSizeBytes = 1048576
workers = 4
defaultLimit = 200

[logging]
level = "debug"
format = "json"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Scan.ChunkSizeBytes != 1048576 {
		t.Errorf("ChunkSizeBytes = %d, want 1048576", cfg.Scan.ChunkSizeBytes)
	}
	if cfg.Scan.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Scan.Workers)
	}
	if cfg.Scan.DefaultLimit != 200 {
		t.Errorf("DefaultLimit = %d, want 200", cfg.Scan.DefaultLimit)
	}
	if cfg.Scan.RegexSampleCap != 50 {
		t.Errorf("RegexSampleCap = %d, want default 50", cfg.Scan.RegexSampleCap)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want json", cfg.Logging.Format)
	}
}

func TestLoadConfigEmptyFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	want := Default()
	if *cfg.Scan != *want.Scan {
		t.Errorf("Scan = %+v, want %+v", cfg.Scan, want.Scan)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadConfigBadTOML(t *testing.T) {
	path := writeConfig(t, "this is not [valid toml")
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for malformed TOML")
	}
}

func TestLoadConfigIgnoresUnknownSections(t *testing.T) {
	path := writeConfig(t, `
[somethingElse]
foo = "bar"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	want := Default()
	if *cfg.Scan != *want.Scan {
		t.Errorf("Scan = %+v, want default %+v", cfg.Scan, want.Scan)
	}
}
