package particle

import (
	"fmt"
	"math/rand"
	"time"

	"cursor-escape/internal/scene"
	"cursor-escape/internal/utils"
)

// NewField validates opts and lays out Config.Count particles.
func NewField(opts Options) (*Field, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	f := &Field{
		config:     opts.Config,
		rng:        rng,
		buffer:     newPositionBuffer(opts.Config.Count),
		velocities: make([]float32, opts.Config.Count*ItemSize),
	}
	f.randomize()
	f.buffer.MarkDirty()
	f.stats.Count = opts.Config.Count

	utils.Debug("Particle field created: %d particles, avoid radius %.2f, bounds %.0fx%.0f",
		f.config.Count, f.config.AvoidRadius, f.config.Bounds.Width, f.config.Bounds.Height)

	return f, nil
}

// Update advances the field one frame. pointer is the pointer's world-space
// position; only its x and y are used.
func (f *Field) Update(pointer scene.Vec3) {
	frames := f.stats.Frames + 1
	if f.config.Count > 0 {
		f.stats = Step(f.State(), pointer.XY(), StepParams{
			AvoidRadius: f.config.AvoidRadius,
			Bounds:      f.config.Bounds,
		})
	} else {
		f.stats = Stats{}
	}
	f.stats.Frames = frames
	f.buffer.MarkDirty()
}

// Reconfigure applies cfg. Changing Count or Bounds re-randomizes every
// particle; changing only AvoidRadius keeps the current state.
func (f *Field) Reconfigure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	old := f.config
	f.config = cfg
	if cfg.Count == old.Count && cfg.Bounds == old.Bounds {
		return nil
	}

	if cfg.Count != old.Count {
		f.buffer.resize(cfg.Count)
		f.velocities = make([]float32, cfg.Count*ItemSize)
	}
	f.randomize()
	f.buffer.MarkDirty()
	f.stats = Stats{Count: cfg.Count, Frames: f.stats.Frames}

	utils.Debug("Particle field reinitialized: %d particles, bounds %.0fx%.0f",
		cfg.Count, cfg.Bounds.Width, cfg.Bounds.Height)
	return nil
}

func (f *Field) SetAvoidRadius(r float64) error {
	if err := validateRadius(r); err != nil {
		return err
	}
	f.config.AvoidRadius = r
	return nil
}

func (f *Field) Config() Config {
	return f.config
}

func (f *Field) Len() int {
	return f.config.Count
}

// Buffer returns the live position buffer. The pointer is stable for the
// lifetime of the field.
func (f *Field) Buffer() *PositionBuffer {
	return f.buffer
}

func (f *Field) State() State {
	return State{Positions: f.buffer.Data(), Velocities: f.velocities}
}

func (f *Field) Stats() Stats {
	return f.stats
}

// Particle returns the position and velocity of particle i.
func (f *Field) Particle(i int) (scene.Vec3, scene.Vec3, error) {
	if i < 0 || i >= f.config.Count {
		return scene.Vec3{}, scene.Vec3{}, fmt.Errorf("particle index %d out of range [0,%d)", i, f.config.Count)
	}
	p := f.buffer.Data()[i*ItemSize : i*ItemSize+ItemSize]
	v := f.velocities[i*ItemSize : i*ItemSize+ItemSize]
	return scene.Vec3{X: float64(p[0]), Y: float64(p[1]), Z: float64(p[2])},
		scene.Vec3{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])}, nil
}
