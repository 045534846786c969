// Package driver wires a particle field and a camera tracker to one camera
// and one pointer source, and runs them in frame order.
package driver

import (
	"fmt"
	"math/rand"
	"sync"

	"cursor-escape/internal/engine/camera"
	"cursor-escape/internal/engine/particle"
	"cursor-escape/internal/input"
	"cursor-escape/internal/scene"
	"cursor-escape/internal/utils"
)

// pointerDepth is the NDC depth used when unprojecting the pointer.
const pointerDepth = 0.5

type Options struct {
	Particles  particle.Config
	Tracker    camera.TrackerConfig
	Projection camera.Projection
	CameraZ    float64
	ViewportW  float64
	ViewportH  float64
	Rand       *rand.Rand
}

func DefaultOptions() Options {
	return Options{
		Particles:  particle.DefaultConfig(),
		Tracker:    camera.DefaultTrackerConfig(),
		Projection: camera.DefaultProjection(),
		CameraZ:    5,
		ViewportW:  1280,
		ViewportH:  720,
	}
}

// FrameHook observes every frame after it ran, with the sample it used.
type FrameHook func(frame uint64, s input.Sample)

type Driver struct {
	field   *particle.Field
	tracker *camera.Tracker
	camera  *camera.Camera3D

	mu          sync.Mutex
	pointer     input.Sample
	unsubscribe func()

	frames       uint64
	pointerWorld scene.Vec3
	hooks        []FrameHook
}

func New(opts Options) (*Driver, error) {
	field, err := particle.NewField(particle.Options{Config: opts.Particles, Rand: opts.Rand})
	if err != nil {
		return nil, fmt.Errorf("particle field: %w", err)
	}

	cam := camera.NewCamera3D(scene.Vec3{Z: opts.CameraZ}, opts.Projection, opts.ViewportW, opts.ViewportH)
	tracker, err := camera.NewTracker(cam, opts.Tracker)
	if err != nil {
		return nil, fmt.Errorf("camera tracker: %w", err)
	}

	return &Driver{field: field, tracker: tracker, camera: cam}, nil
}

// Mount starts listening to src. Both the tracker and the driver's own
// pointer cache subscribe; Unmount releases both.
func (d *Driver) Mount(src input.Source) {
	d.Unmount()

	d.tracker.Mount(src)
	unsubscribe := src.Subscribe(d.setPointer)

	d.mu.Lock()
	d.unsubscribe = unsubscribe
	d.mu.Unlock()
}

func (d *Driver) Unmount() {
	d.mu.Lock()
	unsubscribe := d.unsubscribe
	d.unsubscribe = nil
	d.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	d.tracker.Unmount()
}

func (d *Driver) setPointer(s input.Sample) {
	d.mu.Lock()
	d.pointer = s
	d.mu.Unlock()
}

func (d *Driver) Pointer() input.Sample {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pointer
}

// OnFrame registers a hook run at the end of every frame.
func (d *Driver) OnFrame(h FrameHook) {
	d.hooks = append(d.hooks, h)
}

// Tick runs one frame with the latest pointer sample. The camera target
// comes from the mounted source.
func (d *Driver) Tick() {
	d.frame(d.Pointer())
}

// Frame runs one frame with an explicit pointer sample, which also becomes
// the camera target. It needs no mounted source.
func (d *Driver) Frame(s input.Sample) {
	d.tracker.OnPointerMove(s)
	d.frame(s)
}

// frame eases the camera toward its target, unprojects the pointer through
// the moved camera and steps the field against that world position.
func (d *Driver) frame(s input.Sample) {
	d.tracker.Update()

	d.pointerWorld = d.camera.Unproject(scene.Vec3{X: s.X, Y: s.Y, Z: pointerDepth})
	d.field.Update(d.pointerWorld)

	d.frames++
	for _, h := range d.hooks {
		h(d.frames, s)
	}

	if d.frames%600 == 0 {
		stats := d.field.Stats()
		utils.Debug("frame %d: %d particles, %d avoiding, %d reflected, camera (%.2f, %.2f)",
			d.frames, stats.Count, stats.Avoiding, stats.Reflected,
			d.camera.Position().X, d.camera.Position().Y)
	}
}

func (d *Driver) Resize(w, h float64) {
	d.camera.SetViewport(w, h)
}

func (d *Driver) Frames() uint64 {
	return d.frames
}

func (d *Driver) PointerWorld() scene.Vec3 {
	return d.pointerWorld
}

func (d *Driver) Field() *particle.Field {
	return d.field
}

func (d *Driver) Tracker() *camera.Tracker {
	return d.tracker
}

func (d *Driver) Camera() *camera.Camera3D {
	return d.camera
}
