package particle

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"cursor-escape/internal/scene"
)

const (
	DefaultCount       = 1000
	DefaultAvoidRadius = 25.0

	// AvoidLerp is the fraction of the gap to the avoidance ring closed per frame.
	AvoidLerp = 0.1
	// BoundaryInset keeps reflected particles off the boundary itself.
	BoundaryInset = 0.1
	// MaxInitialSpeed bounds each initial velocity component.
	MaxInitialSpeed = 0.05
)

var (
	ErrInvalidCount  = errors.New("invalid particle count")
	ErrInvalidRadius = errors.New("invalid avoid radius")
)

func DefaultBounds() scene.Bounds {
	return scene.Bounds{Width: 500, Height: 250}
}

type Config struct {
	Count       int          `mapstructure:"count" yaml:"count"`
	AvoidRadius float64      `mapstructure:"avoidRadius" yaml:"avoidRadius"`
	Bounds      scene.Bounds `mapstructure:"bounds" yaml:"bounds"`
}

func DefaultConfig() Config {
	return Config{
		Count:       DefaultCount,
		AvoidRadius: DefaultAvoidRadius,
		Bounds:      DefaultBounds(),
	}
}

// Validate rejects configurations that would make the per-frame step
// undefined. A zero count is allowed and turns Update into a no-op.
func (c Config) Validate() error {
	if c.Count < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCount, c.Count)
	}
	if err := validateRadius(c.AvoidRadius); err != nil {
		return err
	}
	if err := c.Bounds.Validate(); err != nil {
		return fmt.Errorf("particle bounds: %w", err)
	}
	return nil
}

func validateRadius(r float64) error {
	if !(r > 0) || math.IsInf(r, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidRadius, r)
	}
	return nil
}

type Options struct {
	Config Config
	// Rand seeds particle placement. A time-seeded source is used when nil.
	Rand *rand.Rand
}

// State is the column-wise particle storage handed to Step. Both slices hold
// x, y, z triples and must have the same length.
type State struct {
	Positions  []float32
	Velocities []float32
}

func (s State) Count() int {
	return len(s.Positions) / 3
}

type StepParams struct {
	AvoidRadius float64
	Bounds      scene.Bounds
}

// Stats describes the most recent Update.
type Stats struct {
	Count     int
	Avoiding  int
	Reflected int
	Frames    uint64
}

type Field struct {
	config     Config
	rng        *rand.Rand
	buffer     *PositionBuffer
	velocities []float32
	stats      Stats
}
