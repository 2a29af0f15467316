package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/raycastview/internal/raycast"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Sim.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Viewer.TickRate != 30 {
		t.Errorf("expected tick rate 30, got %f", cfg.Viewer.TickRate)
	}
	if cfg.Overlay.PixelScale != 3 || cfg.Overlay.VerticalOffset != 70 {
		t.Errorf("unexpected overlay defaults: %+v", cfg.Overlay)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "view.yaml")
	data := "sim:\n  worlds: 12\n  exec_mode: device\ndevice:\n  backend: host\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Sim.Worlds != 12 {
		t.Errorf("expected 12 worlds, got %d", cfg.Sim.Worlds)
	}
	if cfg.Sim.Cams != DefaultCams {
		t.Errorf("expected default cams %d, got %d", DefaultCams, cfg.Sim.Cams)
	}
	if cfg.Window.Width != DefaultWidth {
		t.Errorf("expected default width, got %d", cfg.Window.Width)
	}

	bc, err := cfg.Batch()
	if err != nil {
		t.Fatal(err)
	}
	if bc.ExecMode != raycast.DeviceAccelerated {
		t.Errorf("expected device mode, got %v", bc.ExecMode)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := GetPreset("panorama")
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if *got != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"negative device", func(c *Config) { c.Device.ID = -1 }},
		{"bad backend", func(c *Config) { c.Device.Backend = "metal" }},
		{"bad exec mode", func(c *Config) { c.Sim.ExecMode = "quantum" }},
		{"no cams", func(c *Config) { c.Sim.Cams = 0 }},
		{"no agents", func(c *Config) { c.Sim.Agents = 0 }},
		{"zero dt", func(c *Config) { c.Sim.Dt = 0 }},
		{"bad integrator", func(c *Config) { c.Sim.Integrator = "leapfrog" }},
		{"bad policy", func(c *Config) { c.Sim.Policy = "bangbang" }},
		{"zero tick", func(c *Config) { c.Viewer.TickRate = 0 }},
		{"zero scale", func(c *Config) { c.Overlay.PixelScale = 0 }},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}

func TestViewerConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Viewer.CameraPosition = [3]float32{1, 2, 3}
	cfg.Viewer.CameraRotation = [4]float32{2, 0, 0, 0}

	vc := cfg.ViewerConfig()
	if vc.CameraPosition != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("unexpected position %v", vc.CameraPosition)
	}
	if vc.CameraRotation.W != 1 {
		t.Errorf("rotation should be normalized, got %v", vc.CameraRotation)
	}
	if vc.Overlay.Title != "Raycast" {
		t.Errorf("expected overlay title Raycast, got %q", vc.Overlay.Title)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("tiny")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Sim.Resolution != 16 {
		t.Errorf("expected resolution 16, got %d", cfg.Sim.Resolution)
	}
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsValid(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(names))
	}
	for _, name := range names {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}
