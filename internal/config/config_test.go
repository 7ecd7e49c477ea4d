package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExplicitArgumentWins(t *testing.T) {
	t.Setenv(EnvVar, "/from/env")
	got, err := BasePath("/explicit/path")
	if err != nil {
		t.Fatalf("BasePath: %v", err)
	}
	if got != "/explicit/path" {
		t.Fatalf("expected explicit path to win, got %q", got)
	}
}

func TestEnvVarOverridesYAMLFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeYAML(t, dir, "search_paths: [\"/from/yaml\"]\n")
	t.Setenv(EnvVar, "/from/env")

	got, err := BasePath("")
	if err != nil {
		t.Fatalf("BasePath: %v", err)
	}
	if got != "/from/env" {
		t.Fatalf("expected ZELO_PATH to win over zelo.yaml, got %q", got)
	}
}

func TestYAMLFileUsedWhenEnvVarUnset(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeYAML(t, dir, "search_paths: [\"/from/yaml\", \"/second\"]\n")
	t.Setenv(EnvVar, "")

	got, err := BasePath("")
	if err != nil {
		t.Fatalf("BasePath: %v", err)
	}
	if got != "/from/yaml" {
		t.Fatalf("expected the first yaml search path, got %q", got)
	}
}

func TestFallsBackToExecutableDirWhenNothingConfigured(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv(EnvVar, "")

	got, err := BasePath("")
	if err != nil {
		t.Fatalf("BasePath: %v", err)
	}
	if got == "" {
		t.Fatalf("expected a non-empty fallback base path")
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func writeYAML(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644); err != nil {
		t.Fatalf("writing zelo.yaml: %v", err)
	}
}
