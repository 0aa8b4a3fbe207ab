package gizmo

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Colors are RGBA in [0, 1].
type Colors struct {
	X         [4]float32 `yaml:"x"`
	Y         [4]float32 `yaml:"y"`
	Z         [4]float32 `yaml:"z"`
	Highlight [4]float32 `yaml:"highlight"`
	Sphere    [4]float32 `yaml:"sphere"`
}

// Config sizes the handles relative to the target's bounding radius and
// tunes the drag behaviour.
type Config struct {
	ArrowLengthScale  float64 `yaml:"arrow_length_scale"`
	ShaftWidthDivisor float64 `yaml:"shaft_width_divisor"`
	HeadWidthDivisor  float64 `yaml:"head_width_divisor"`
	HeadLengthDivisor float64 `yaml:"head_length_divisor"`
	RingRadiusScale   float64 `yaml:"ring_radius_scale"`
	RingStepDegrees   float64 `yaml:"ring_step_degrees"`
	RingLineWidth     float64 `yaml:"ring_line_width"`
	SphereRadiusScale float64 `yaml:"sphere_radius_scale"`

	// SignThresholdDegrees is how far start×end may lean away from the ring
	// axis before a rotation step is treated as clockwise.
	SignThresholdDegrees float64 `yaml:"sign_threshold_degrees"`

	// StrictRotationPick only advances a rotation drag while the pointer is
	// over the active ring or the auxiliary sphere.
	StrictRotationPick bool `yaml:"strict_rotation_pick"`

	Colors Colors `yaml:"colors"`
}

func DefaultConfig() Config {
	return Config{
		ArrowLengthScale:     5,
		ShaftWidthDivisor:    15,
		HeadWidthDivisor:     6,
		HeadLengthDivisor:    3,
		RingRadiusScale:      2,
		RingStepDegrees:      3,
		RingLineWidth:        10,
		SphereRadiusScale:    2,
		SignThresholdDegrees: 1,
		Colors: Colors{
			X:         [4]float32{0, 1, 0, 1},
			Y:         [4]float32{0, 0, 1, 1},
			Z:         [4]float32{1, 0, 0, 1},
			Highlight: [4]float32{1, 1, 1, 1},
			Sphere:    [4]float32{1, 0, 0, 0.2},
		},
	}
}

// LoadConfig reads a YAML file over DefaultConfig. A missing file yields the
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read gizmo config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse gizmo config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), fmt.Errorf("gizmo config %s: %w", path, err)
	}
	return cfg, nil
}

var ErrInvalidConfig = errors.New("invalid config")

func (c Config) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"arrow_length_scale", c.ArrowLengthScale},
		{"shaft_width_divisor", c.ShaftWidthDivisor},
		{"head_width_divisor", c.HeadWidthDivisor},
		{"head_length_divisor", c.HeadLengthDivisor},
		{"ring_radius_scale", c.RingRadiusScale},
		{"ring_step_degrees", c.RingStepDegrees},
		{"ring_line_width", c.RingLineWidth},
		{"sphere_radius_scale", c.SphereRadiusScale},
	}
	for _, p := range positive {
		if p.v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %g", ErrInvalidConfig, p.name, p.v)
		}
	}
	if c.RingStepDegrees > 360 {
		return fmt.Errorf("%w: ring_step_degrees must not exceed 360", ErrInvalidConfig)
	}
	if c.SignThresholdDegrees < 0 {
		return fmt.Errorf("%w: sign_threshold_degrees must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Sizes are handle dimensions for one target.
type Sizes struct {
	ArrowLength  float64
	ShaftWidth   float64
	HeadWidth    float64
	HeadLength   float64
	RingRadius   float64
	SphereRadius float64
}

func (c Config) Sizes(radius float64) Sizes {
	return Sizes{
		ArrowLength:  radius * c.ArrowLengthScale,
		ShaftWidth:   radius / c.ShaftWidthDivisor,
		HeadWidth:    radius / c.HeadWidthDivisor,
		HeadLength:   radius / c.HeadLengthDivisor,
		RingRadius:   radius * c.RingRadiusScale,
		SphereRadius: radius * c.SphereRadiusScale,
	}
}
