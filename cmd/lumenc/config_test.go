package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingDefaultIsNotError(t *testing.T) {
	dir := t.TempDir()
	cwd, _ := os.Getwd()
	defer os.Chdir(cwd)
	os.Chdir(dir)

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Output != "" || cfg.Target != "" || cfg.KeepAsm {
		t.Errorf("expected zero-value config, got %+v", cfg)
	}
}

func TestLoadConfigParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lumen.yaml")
	content := "output: bin/app\ntarget: linux\nkeepAsm: true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Output != "bin/app" || cfg.Target != "linux" || !cfg.KeepAsm {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoadConfigMissingExplicitPathIsError(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected an error for an explicit, missing config path")
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := firstNonEmpty("", "", "b", "c"); got != "b" {
		t.Errorf("firstNonEmpty = %q, want %q", got, "b")
	}
	if got := firstNonEmpty("a", "b"); got != "a" {
		t.Errorf("firstNonEmpty = %q, want %q", got, "a")
	}
	if got := firstNonEmpty("", ""); got != "" {
		t.Errorf("firstNonEmpty = %q, want empty", got)
	}
}
