package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Engine.DumpIR {
		t.Fatal("expected DumpIR default true")
	}
	if cfg.Engine.OptLevel != OptNone {
		t.Fatalf("expected default opt level none, got %q", cfg.Engine.OptLevel)
	}
}

func TestLoadPartialFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ednjit.toml")
	if err := os.WriteFile(path, []byte("[engine]\ndump_ir = false\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Engine.DumpIR {
		t.Fatal("expected DumpIR overridden to false")
	}
	if cfg.Engine.OptLevel != OptNone {
		t.Fatalf("expected opt level to default to none, got %q", cfg.Engine.OptLevel)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ednjit.toml")
	if err := os.WriteFile(path, []byte("not valid toml [[["), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(dir); err == nil {
		t.Fatal("expected error for malformed toml")
	}
}
