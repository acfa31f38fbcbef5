package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if cfg.Screen.Width != 1280 || cfg.Screen.Height != 720 {
		t.Errorf("screen = %dx%d, want 1280x720", cfg.Screen.Width, cfg.Screen.Height)
	}
	if cfg.Derived.WorldW != 1280 || cfg.Derived.WorldH != 720 {
		t.Errorf("derived world = %gx%g, want screen size", cfg.Derived.WorldW, cfg.Derived.WorldH)
	}
	if cfg.Simulation.StepsPerUpdate < 1 {
		t.Errorf("StepsPerUpdate = %d, want >= 1", cfg.Simulation.StepsPerUpdate)
	}
	if len(cfg.Scenario.Groups) == 0 {
		t.Fatal("default scenario has no groups")
	}
}

func TestLoadOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yaml")
	data := []byte("world:\n  width: 400\n  height: 300\nsimulation:\n  seed: 7\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Derived.WorldW != 400 || cfg.Derived.WorldH != 300 {
		t.Errorf("derived world = %gx%g, want 400x300", cfg.Derived.WorldW, cfg.Derived.WorldH)
	}
	if cfg.Simulation.Seed != 7 {
		t.Errorf("Seed = %d, want 7", cfg.Simulation.Seed)
	}
	// Fields absent from the overlay keep their defaults
	if cfg.Screen.Width != 1280 {
		t.Errorf("Screen.Width = %d, want default 1280", cfg.Screen.Width)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load with missing file should fail")
	}
}

func TestGroupDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "groups.yaml")
	data := []byte("scenario:\n  groups:\n    - name: sparks\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if len(cfg.Scenario.Groups) != 1 {
		t.Fatalf("groups = %d, want overlay to replace defaults", len(cfg.Scenario.Groups))
	}
	g := cfg.Scenario.Groups[0]
	if g.Count != 1 {
		t.Errorf("Count = %d, want 1", g.Count)
	}
	if g.Kind != "sparks" {
		t.Errorf("Kind = %q, want group name", g.Kind)
	}
	if (g.Color == ColorConfig{}) {
		t.Error("Color not defaulted")
	}
	if idx, ok := cfg.Derived.GroupIndex["sparks"]; !ok || idx != 0 {
		t.Errorf("GroupIndex[sparks] = %d, %v", idx, ok)
	}
}

func TestFieldIndex(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if _, ok := cfg.Derived.FieldIndex["breeze"]; !ok {
		t.Error("FieldIndex missing breeze")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	cfg.World.Gravity.Y = 0.5

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML error: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load written config error: %v", err)
	}
	if back.World.Gravity.Y != 0.5 {
		t.Errorf("Gravity.Y = %g, want 0.5", back.World.Gravity.Y)
	}
}
