package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}
	if cfg.Derived.WorldW != 4000 || cfg.Derived.WorldH != 4000 {
		t.Errorf("expected 4000x4000 world, got %vx%v", cfg.Derived.WorldW, cfg.Derived.WorldH)
	}
	if cfg.Movement.Strategy != "boids" {
		t.Errorf("expected boids strategy, got %q", cfg.Movement.Strategy)
	}
	if cfg.Scheduler.MaxChunks != 4 {
		t.Errorf("expected 4 chunks, got %d", cfg.Scheduler.MaxChunks)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	data := []byte("enemies:\n  count: 42\nworld:\n  width: 0\n  height: 0\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Enemies.Count != 42 {
		t.Errorf("expected overlay count 42, got %d", cfg.Enemies.Count)
	}
	// Untouched fields keep their defaults
	if cfg.Enemies.MaxHealth != 5 {
		t.Errorf("expected default max health 5, got %v", cfg.Enemies.MaxHealth)
	}
	// Zero world size falls back to the screen
	if cfg.Derived.WorldW != float64(cfg.Screen.Width) {
		t.Errorf("expected world width %d, got %v", cfg.Screen.Width, cfg.Derived.WorldW)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero enemies", "enemies:\n  count: 0\n"},
		{"zero chunks", "scheduler:\n  max_chunks: 0\n"},
		{"negative health", "enemies:\n  max_health: -1\n"},
		{"shrinking levels", "experience:\n  level_growth: 0.5\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "cfg.yaml")
			if err := os.WriteFile(path, []byte(tc.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg := Defaults()
	cfg.Enemies.Count = 77

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Enemies.Count != 77 {
		t.Errorf("expected 77 enemies after roundtrip, got %d", loaded.Enemies.Count)
	}
}
