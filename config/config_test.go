package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("unexpected default port: %q", cfg.Port)
	}
	if cfg.DatabasePath != "./todoapp.sqlite" {
		t.Fatalf("unexpected default database: %q", cfg.DatabasePath)
	}
	if cfg.CacheType != "memory" {
		t.Fatalf("unexpected default cache: %q", cfg.CacheType)
	}
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := "port = \"9090\"\ndatabase_path = \"/tmp/otra.sqlite\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("TODO_PORT", "7070")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "7070" {
		t.Fatalf("environment must win over the file, got %q", cfg.Port)
	}
	if cfg.DatabasePath != "/tmp/otra.sqlite" {
		t.Fatalf("file value not applied: %q", cfg.DatabasePath)
	}
	if cfg.SecretKey != "desarrollo-seguro" {
		t.Fatalf("untouched keys must keep defaults, got %q", cfg.SecretKey)
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "no-such.toml")); err == nil {
		t.Fatal("expected an error for an explicit missing file")
	}
}
