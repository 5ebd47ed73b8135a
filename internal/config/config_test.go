package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pirate.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want warn", cfg.Log.Level)
	}
	if cfg.Log.Format != "text" {
		t.Errorf("Log.Format = %q, want text", cfg.Log.Format)
	}
	if cfg.Run.MaxSteps != 1_000_000 {
		t.Errorf("Run.MaxSteps = %d, want 1000000", cfg.Run.MaxSteps)
	}
	if cfg.REPL.Prompt != "pirate> " {
		t.Errorf("REPL.Prompt = %q", cfg.REPL.Prompt)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "debug"
format = "json"

[run]
max_steps = 500

[repl]
prompt = "arr> "
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("unexpected log config %+v", cfg.Log)
	}
	if cfg.Run.MaxSteps != 500 {
		t.Errorf("Run.MaxSteps = %d, want 500", cfg.Run.MaxSteps)
	}
	if cfg.Run.Diagnostics != "text" {
		t.Errorf("Run.Diagnostics default not applied: %q", cfg.Run.Diagnostics)
	}
	if cfg.REPL.Prompt != "arr> " {
		t.Errorf("REPL.Prompt = %q", cfg.REPL.Prompt)
	}
}

func TestLoadExplicitZeroSteps(t *testing.T) {
	cfg, err := Load(writeConfig(t, "[run]\nmax_steps = 0\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Run.MaxSteps != 0 {
		t.Errorf("Run.MaxSteps = %d, want 0 (unbounded)", cfg.Run.MaxSteps)
	}

	cfg, err = Load(writeConfig(t, "[run]\ndiagnostics = \"json\"\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Run.MaxSteps != 1_000_000 {
		t.Errorf("Run.MaxSteps = %d, want default 1000000", cfg.Run.MaxSteps)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad toml", "[log\nlevel = "},
		{"bad level", "[log]\nlevel = \"loud\""},
		{"bad format", "[log]\nformat = \"xml\""},
		{"bad diagnostics", "[run]\ndiagnostics = \"html\""},
		{"negative steps", "[run]\nmax_steps = -1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Error("Load() expected error")
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Load() of a missing file expected error")
	}
}

func TestLoadFromEnv(t *testing.T) {
	path := writeConfig(t, "[run]\nmax_steps = 42\n")
	t.Setenv(EnvVar, path)

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.Run.MaxSteps != 42 {
		t.Errorf("Run.MaxSteps = %d, want 42", cfg.Run.MaxSteps)
	}
}

func TestLoadFromEnvFallsBackToDefault(t *testing.T) {
	t.Setenv(EnvVar, "")
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.Run.MaxSteps != Default().Run.MaxSteps {
		t.Errorf("expected defaults, got %+v", cfg.Run)
	}
}
