package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != Defaults() {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadOverridesAndNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	body := []byte(`
seed: 42
render_distance: 5
mesh_workers: 0
listen_addr: ":9090"
`)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Seed != 42 || cfg.RenderDistance != 5 || cfg.ListenAddr != ":9090" {
		t.Fatalf("cfg = %+v", cfg)
	}
	// Unset fields fall back to defaults.
	if cfg.TickRateHz != Defaults().TickRateHz || cfg.MeshQueue != Defaults().MeshQueue {
		t.Fatalf("cfg = %+v, want default tick/queue", cfg)
	}
	// A yaml zero is indistinguishable from unset, so it takes the default.
	if cfg.MeshWorkers != Defaults().MeshWorkers {
		t.Fatalf("mesh_workers = %d, want default", cfg.MeshWorkers)
	}
}

func TestValidateRejectsBadRenderDistance(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	if err := os.WriteFile(path, []byte("render_distance: 11\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for render_distance 11")
	}
}
