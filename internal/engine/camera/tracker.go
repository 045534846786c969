package camera

import (
	"errors"
	"fmt"
	"sync"

	"cursor-escape/internal/input"
	"cursor-escape/internal/scene"
	"cursor-escape/internal/utils"
)

const DefaultLerpSpeed = 0.0125

var ErrInvalidLerp = errors.New("invalid lerp speed")

type TrackerConfig struct {
	Bounds scene.Bounds `mapstructure:"bounds" yaml:"bounds"`
	// LerpSpeed is the fraction of the remaining distance closed each frame.
	// It is per frame, not per second.
	LerpSpeed float64 `mapstructure:"lerpSpeed" yaml:"lerpSpeed"`
}

func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		Bounds:    scene.Bounds{Width: 25, Height: 50},
		LerpSpeed: DefaultLerpSpeed,
	}
}

func (c TrackerConfig) Validate() error {
	if !(c.LerpSpeed > 0 && c.LerpSpeed <= 1) {
		return fmt.Errorf("%w: %v not in (0,1]", ErrInvalidLerp, c.LerpSpeed)
	}
	if err := c.Bounds.Validate(); err != nil {
		return fmt.Errorf("camera bounds: %w", err)
	}
	return nil
}

// Tracker eases a camera toward the latest pointer sample. Pointer events
// only overwrite the target; the camera itself is moved by Update.
type Tracker struct {
	camera Camera
	config TrackerConfig

	mu          sync.Mutex
	target      scene.Vec2
	unsubscribe func()
}

func NewTracker(cam Camera, cfg TrackerConfig) (*Tracker, error) {
	if cam == nil {
		return nil, errors.New("camera tracker: nil camera")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Tracker{camera: cam, config: cfg}, nil
}

// OnPointerMove maps a sample onto the camera bounds and stores it as the
// new target.
func (t *Tracker) OnPointerMove(s input.Sample) {
	hw, hh := t.config.Bounds.HalfExtents()
	target := scene.Vec2{X: s.X * hw, Y: s.Y * hh}

	t.mu.Lock()
	t.target = target
	t.mu.Unlock()
}

func (t *Tracker) Target() scene.Vec2 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.target
}

// Update moves the camera LerpSpeed of the way to the target in x and y and
// refreshes its projection.
func (t *Tracker) Update() {
	target := t.Target()
	pos := t.camera.Position()

	pos.X = scene.Lerp(pos.X, target.X, t.config.LerpSpeed)
	pos.Y = scene.Lerp(pos.Y, target.Y, t.config.LerpSpeed)

	t.camera.SetPosition(pos)
	t.camera.UpdateProjectionMatrix()
}

// Distance is the remaining planar gap between camera and target.
func (t *Tracker) Distance() float64 {
	target := t.Target()
	pos := t.camera.Position()
	return target.Distance(pos.XY())
}

// Mount subscribes to src. Mounting twice replaces the earlier subscription.
func (t *Tracker) Mount(src input.Source) {
	t.Unmount()

	unsubscribe := src.Subscribe(t.OnPointerMove)

	t.mu.Lock()
	t.unsubscribe = unsubscribe
	t.mu.Unlock()
	utils.Debug("Camera tracker mounted (lerp %.4f, bounds %.0fx%.0f)",
		t.config.LerpSpeed, t.config.Bounds.Width, t.config.Bounds.Height)
}

func (t *Tracker) Unmount() {
	t.mu.Lock()
	unsubscribe := t.unsubscribe
	t.unsubscribe = nil
	t.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
		utils.Debug("Camera tracker unmounted")
	}
}

func (t *Tracker) Mounted() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.unsubscribe != nil
}
