// Package config loads and stores simulation parameters for blob
// suspension runs.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultEta        = 1e-3
	DefaultBlobRadius = 0.656
	DefaultDt         = 0.01
	DefaultDuration   = 10.0
)

type Config struct {
	// Fluid and blob parameters.
	Eta        float64 `yaml:"eta"`
	BlobRadius float64 `yaml:"blob_radius"`
	Gravity    float64 `yaml:"g"`
	BlobMass   float64 `yaml:"blob_mass"`

	// Steric interactions (Yukawa potentials).
	RepulsionStrength     float64 `yaml:"repulsion_strength"`
	DebyeLength           float64 `yaml:"debye_length"`
	WallRepulsionStrength float64 `yaml:"repulsion_strength_wall"`
	WallDebyeLength       float64 `yaml:"debye_length_wall"`

	// Run parameters.
	Dt         float64 `yaml:"dt"`
	Duration   float64 `yaml:"duration"`
	SaveEvery  int     `yaml:"save_every"`
	Workers    int     `yaml:"workers"`
	Integrator string  `yaml:"integrator"`

	// Periodic box lengths in x, y, z. Accepted for forward
	// compatibility; the mobility operator has no periodic images and
	// ignores them. Post-processing (the radial distribution function)
	// does use the lateral lengths.
	Periodic [3]float64 `yaml:"periodic"`

	Init InitConfig `yaml:"init"`
}

// InitConfig describes the starting configuration: either a clones file or
// a square lattice of blobs at fixed height.
type InitConfig struct {
	ClonesFile string  `yaml:"clones_file"`
	Nx         int     `yaml:"nx"`
	Ny         int     `yaml:"ny"`
	Spacing    float64 `yaml:"spacing"`
	Height     float64 `yaml:"height"`
}

func DefaultConfig() *Config {
	return &Config{
		Eta:                   DefaultEta,
		BlobRadius:            DefaultBlobRadius,
		Gravity:               1.0,
		BlobMass:              0.0000282,
		RepulsionStrength:     0.0955,
		DebyeLength:           0.0656,
		WallRepulsionStrength: 0.0955,
		WallDebyeLength:       0.0656,
		Dt:                    DefaultDt,
		Duration:              DefaultDuration,
		SaveEvery:             1,
		Integrator:            "euler",
		Init: InitConfig{
			Nx:      4,
			Ny:      4,
			Spacing: 2.0,
			Height:  5.0,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Eta <= 0 {
		return fmt.Errorf("eta must be positive, got %g", c.Eta)
	}
	if c.BlobRadius <= 0 {
		return fmt.Errorf("blob_radius must be positive, got %g", c.BlobRadius)
	}
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %g", c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %g", c.Duration)
	}
	return nil
}

// Lattice returns the initial positions from the lattice parameters: an
// Nx x Ny grid at the configured height, spacing in units of the blob
// radius.
func (c *Config) Lattice() []float64 {
	nx, ny := c.Init.Nx, c.Init.Ny
	if nx < 1 {
		nx = 1
	}
	if ny < 1 {
		ny = 1
	}
	a := c.BlobRadius
	d := c.Init.Spacing * a
	h := c.Init.Height * a

	positions := make([]float64, 0, 3*nx*ny)
	for iy := 0; iy < ny; iy++ {
		for ix := 0; ix < nx; ix++ {
			positions = append(positions, float64(ix)*d, float64(iy)*d, h)
		}
	}
	return positions
}
