package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}
}

func TestLoadWithEnvAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "test.yaml", "env:\n  env: test\n")

	cfg, err := LoadWithEnv[Config]("test", dir)
	if err != nil {
		t.Fatalf("LoadWithEnv: %v", err)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("HTTP.Addr = %q, want :8080", cfg.HTTP.Addr)
	}
	if cfg.Index.GridDivision != 90 {
		t.Errorf("Index.GridDivision = %d, want 90", cfg.Index.GridDivision)
	}
	if cfg.Index.DefaultK != 10 {
		t.Errorf("Index.DefaultK = %d, want 10", cfg.Index.DefaultK)
	}
	if cfg.Env.Log.Level != "info" {
		t.Errorf("Env.Log.Level = %q, want info", cfg.Env.Log.Level)
	}
}

func TestLoadWithEnvHonorsExplicitValues(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "test.yaml", "http:\n  addr: \":9090\"\nindex:\n  gridDivision: 45\n  defaultK: 20\n")

	cfg, err := LoadWithEnv[Config]("test", dir)
	if err != nil {
		t.Fatalf("LoadWithEnv: %v", err)
	}
	if cfg.HTTP.Addr != ":9090" {
		t.Errorf("HTTP.Addr = %q, want :9090", cfg.HTTP.Addr)
	}
	if cfg.Index.GridDivision != 45 {
		t.Errorf("Index.GridDivision = %d, want 45", cfg.Index.GridDivision)
	}
	if cfg.Index.DefaultK != 20 {
		t.Errorf("Index.DefaultK = %d, want 20", cfg.Index.DefaultK)
	}
}

func TestLoadWithEnvMissingFile(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadWithEnv[Config]("missing", dir); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
