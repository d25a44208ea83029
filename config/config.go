// Package config loads an assembly description from YAML and applies it to
// an engine through the engine's setters, so file input gets the same
// validation and fallbacks as interactive commands.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/katalvlaran/lvshield/engine"
	"github.com/katalvlaran/lvshield/layout"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file values.
const (
	EnvExposureTime = "LVSHIELD_EXPOSURE_TIME"
	EnvLogLevel     = "LVSHIELD_LOG_LEVEL"
	EnvMaterialsDB  = "LVSHIELD_MATERIALS_DB"
)

// Config is the file representation of one assembly. Lengths are in mm,
// times in seconds, activities in Bq/kg.
type Config struct {
	Crystal      CrystalConfig   `yaml:"crystal"`
	Cavity       CavityConfig    `yaml:"cavity"`
	Layers       []LayerConfig   `yaml:"layers"`
	ExposureTime float64         `yaml:"exposure_time_s"`
	TotalDecays  *float64        `yaml:"total_decays,omitempty"`
	Materials    MaterialsConfig `yaml:"materials"`
	Logging      LoggingConfig   `yaml:"logging"`
}

// CrystalConfig selects the crystal shape and its dimensions.
type CrystalConfig struct {
	Shape      string  `yaml:"shape"` // box, cylinder
	HalfX      float64 `yaml:"half_x_mm,omitempty"`
	HalfY      float64 `yaml:"half_y_mm,omitempty"`
	HalfZ      float64 `yaml:"half_z_mm,omitempty"`
	Radius     float64 `yaml:"radius_mm,omitempty"`
	HalfHeight float64 `yaml:"half_height_mm,omitempty"`
}

// CavityConfig is the margin around the crystal.
type CavityConfig struct {
	HalfX float64 `yaml:"half_x_mm"`
	HalfY float64 `yaml:"half_y_mm"`
	HalfZ float64 `yaml:"half_z_mm"`
}

// LayerConfig updates one of the engine's fixed layers. Zero or empty
// fields keep the engine's current value.
type LayerConfig struct {
	Name      string   `yaml:"name"`
	Thickness float64  `yaml:"thickness_mm,omitempty"`
	Material  string   `yaml:"material,omitempty"`
	Activity  *float64 `yaml:"activity_bq_kg,omitempty"`
}

// MaterialsConfig points at the material database.
type MaterialsConfig struct {
	// Database is a SQLite file path; empty uses the built-in catalog.
	Database string `yaml:"database"`
}

// LoggingConfig configures the zap logger built by the CLI.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console, json
}

// Default returns the reference assembly with info-level console logging.
func Default() *Config {
	c := engine.DefaultCrystal()
	m := engine.DefaultCavity()
	cfg := &Config{
		Crystal: CrystalConfig{Shape: string(layout.ShapeBox), HalfX: c.HalfX, HalfY: c.HalfY, HalfZ: c.HalfZ},
		Cavity:  CavityConfig{HalfX: m.X, HalfY: m.Y, HalfZ: m.Z},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
	for _, l := range engine.DefaultLayers() {
		cfg.Layers = append(cfg.Layers, LayerConfig{Name: l.Name, Thickness: l.Thickness, Material: l.Material})
	}

	return cfg
}

// Load reads path over the defaults and applies environment overrides.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the config as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv(EnvExposureTime); v != "" {
		s, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", EnvExposureTime, v, err)
		}
		c.ExposureTime = s
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvMaterialsDB); v != "" {
		c.Materials.Database = v
	}

	return nil
}

// ErrInvalidConfig indicates a structurally invalid config file.
var ErrInvalidConfig = errors.New("config: invalid")

// Validate checks structure only: known shape, known layer names, no
// duplicates. Numeric values are left to the engine setters, which apply
// their own fallbacks.
func (c *Config) Validate() error {
	switch layout.Shape(c.Crystal.Shape) {
	case layout.ShapeBox, layout.ShapeCylinder, "":
	default:
		return fmt.Errorf("crystal shape %q: %w", c.Crystal.Shape, ErrInvalidConfig)
	}
	known := make(map[string]bool)
	for _, l := range engine.DefaultLayers() {
		known[l.Name] = true
	}
	seen := make(map[string]bool, len(c.Layers))
	for _, l := range c.Layers {
		if !known[l.Name] {
			return fmt.Errorf("layer %q: %w", l.Name, engine.ErrLayerNotFound)
		}
		if seen[l.Name] {
			return fmt.Errorf("layer %q listed twice: %w", l.Name, ErrInvalidConfig)
		}
		seen[l.Name] = true
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging format %q: %w", c.Logging.Format, ErrInvalidConfig)
	}

	return nil
}

// CrystalGeometry returns the configured crystal.
func (c *Config) CrystalGeometry() layout.Crystal {
	if layout.Shape(c.Crystal.Shape) == layout.ShapeCylinder {
		return layout.Cylinder{Radius: c.Crystal.Radius, HalfHeight: c.Crystal.HalfHeight}
	}

	return layout.Box{HalfX: c.Crystal.HalfX, HalfY: c.Crystal.HalfY, HalfZ: c.Crystal.HalfZ}
}

// Apply validates c and pushes every value through the engine setters.
func (c *Config) Apply(e *engine.Engine) error {
	if err := c.Validate(); err != nil {
		return err
	}
	e.SetCrystal(c.CrystalGeometry())
	e.SetCavity(layout.Vec3{X: c.Cavity.HalfX, Y: c.Cavity.HalfY, Z: c.Cavity.HalfZ})
	for _, l := range c.Layers {
		if l.Thickness != 0 {
			if _, err := e.SetLayerThickness(l.Name, l.Thickness); err != nil {
				return err
			}
		}
		if l.Material != "" {
			if _, err := e.SetLayerMaterial(l.Name, l.Material); err != nil {
				return err
			}
		}
		if l.Activity != nil {
			if _, err := e.SetLayerActivity(l.Name, *l.Activity); err != nil {
				return err
			}
		}
	}
	e.SetExposureTime(c.ExposureTime)
	if c.TotalDecays != nil {
		e.SetTotalDecays(*c.TotalDecays)
	}

	return nil
}
