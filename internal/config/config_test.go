package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Eta <= 0 {
		t.Error("eta should be positive")
	}
	if cfg.BlobRadius != DefaultBlobRadius {
		t.Errorf("expected blob radius %g, got %g", DefaultBlobRadius, cfg.BlobRadius)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero eta", func(c *Config) { c.Eta = 0 }},
		{"negative radius", func(c *Config) { c.BlobRadius = -1 }},
		{"zero dt", func(c *Config) { c.Dt = 0 }},
		{"zero duration", func(c *Config) { c.Duration = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	cfg := DefaultConfig()
	cfg.Eta = 2e-3
	cfg.Periodic = [3]float64{10, 10, 0}
	cfg.Init.ClonesFile = "start.clones"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Eta != 2e-3 {
		t.Errorf("eta = %g, want 2e-3", loaded.Eta)
	}
	if loaded.Periodic != cfg.Periodic {
		t.Errorf("periodic = %v, want %v", loaded.Periodic, cfg.Periodic)
	}
	if loaded.Init.ClonesFile != "start.clones" {
		t.Errorf("clones file = %q", loaded.Init.ClonesFile)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("pair")
	if cfg == nil {
		t.Fatal("expected pair preset")
	}
	if cfg.Init.Nx != 2 || cfg.Init.Ny != 1 {
		t.Errorf("pair lattice = %dx%d, want 2x1", cfg.Init.Nx, cfg.Init.Ny)
	}
	// Unset preset fields inherit defaults.
	if cfg.Eta != DefaultEta {
		t.Errorf("eta = %g, want default %g", cfg.Eta, DefaultEta)
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for unknown preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Fatal("expected presets")
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("presets not sorted: %v", names)
		}
	}
}

func TestLattice(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Init = InitConfig{Nx: 3, Ny: 2, Spacing: 2.0, Height: 5.0}

	positions := cfg.Lattice()
	if len(positions) != 3*3*2 {
		t.Fatalf("expected 18 coordinates, got %d", len(positions))
	}

	a := cfg.BlobRadius
	for i := 0; i < 6; i++ {
		if positions[i*3+2] != 5.0*a {
			t.Errorf("blob %d height = %g, want %g", i, positions[i*3+2], 5.0*a)
		}
	}
	if positions[3] != 2.0*a {
		t.Errorf("second blob x = %g, want %g", positions[3], 2.0*a)
	}
}
