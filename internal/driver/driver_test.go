package driver

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cursor-escape/internal/engine/particle"
	"cursor-escape/internal/input"
	"cursor-escape/internal/scene"
)

func newTestDriver(t *testing.T, mutate func(*Options)) *Driver {
	t.Helper()
	opts := DefaultOptions()
	opts.Rand = rand.New(rand.NewSource(1))
	if mutate != nil {
		mutate(&opts)
	}
	d, err := New(opts)
	require.NoError(t, err)
	return d
}

func TestNew_InvalidOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.Particles.AvoidRadius = 0
	_, err := New(opts)
	assert.ErrorIs(t, err, particle.ErrInvalidRadius)

	opts = DefaultOptions()
	opts.Tracker.LerpSpeed = 2
	_, err = New(opts)
	assert.Error(t, err)
}

func TestDriver_TickUsesLatestSample(t *testing.T) {
	d := newTestDriver(t, nil)
	src := input.NewBroadcaster()
	d.Mount(src)
	defer d.Unmount()

	src.Publish(input.Sample{X: 0.2, Y: 0.2})
	src.Publish(input.Sample{X: 1, Y: -1})

	var seen []input.Sample
	d.OnFrame(func(frame uint64, s input.Sample) { seen = append(seen, s) })
	d.Tick()

	require.Len(t, seen, 1)
	assert.Equal(t, input.Sample{X: 1, Y: -1}, seen[0])
	assert.Equal(t, scene.Vec2{X: 12.5, Y: -25}, d.Tracker().Target())
	assert.Equal(t, uint64(1), d.Frames())
}

func TestDriver_FrameOrder(t *testing.T) {
	d := newTestDriver(t, nil)
	src := input.NewBroadcaster()
	d.Mount(src)
	defer d.Unmount()

	src.Publish(input.Sample{X: 1, Y: 1})
	d.Tick()

	// The camera moved first, and the pointer was unprojected through it.
	cam := d.Camera().Position()
	assert.InDelta(t, 12.5*0.0125, cam.X, 1e-12)
	w, h := d.Camera().ViewSize()
	world := d.PointerWorld()
	assert.InDelta(t, cam.X+w/2, world.X, 1e-9)
	assert.InDelta(t, cam.Y+h/2, world.Y, 1e-9)
	assert.True(t, d.Field().Buffer().NeedsUpdate())
}

func TestDriver_FrameSetsCameraTargetWithoutSource(t *testing.T) {
	d := newTestDriver(t, nil)
	require.False(t, d.Tracker().Mounted())

	d.Frame(input.Sample{X: 1, Y: 1})

	assert.Equal(t, scene.Vec2{X: 12.5, Y: 25}, d.Tracker().Target())
	cam := d.Camera().Position()
	assert.InDelta(t, 12.5*0.0125, cam.X, 1e-12)
	assert.InDelta(t, 25*0.0125, cam.Y, 1e-12)
}

func TestDriver_ParticlesAvoidPointer(t *testing.T) {
	d := newTestDriver(t, func(o *Options) {
		o.Particles = particle.Config{Count: 300, AvoidRadius: 25, Bounds: particle.DefaultBounds()}
	})

	for i := 0; i < 400; i++ {
		d.Frame(input.Sample{})
	}

	centre := d.PointerWorld()
	for i := 0; i < d.Field().Len(); i++ {
		pos, _, err := d.Field().Particle(i)
		require.NoError(t, err)
		dx, dy := pos.X-centre.X, pos.Y-centre.Y
		assert.GreaterOrEqual(t, dx*dx+dy*dy, 24.0*24.0, "particle %d stuck near the pointer", i)
	}
}

func TestDriver_UnmountStopsUpdates(t *testing.T) {
	d := newTestDriver(t, nil)
	src := input.NewBroadcaster()
	d.Mount(src)

	src.Publish(input.Sample{X: 0.5, Y: 0.5})
	d.Unmount()
	src.Publish(input.Sample{X: -0.5, Y: -0.5})

	assert.Zero(t, src.ListenerCount())
	assert.Equal(t, input.Sample{X: 0.5, Y: 0.5}, d.Pointer())
	assert.False(t, d.Tracker().Mounted())
}

func TestDriver_Resize(t *testing.T) {
	d := newTestDriver(t, nil)
	d.Resize(500, 250)
	w, h := d.Camera().ViewSize()
	assert.InDelta(t, 100, w, 1e-9)
	assert.InDelta(t, 50, h, 1e-9)
}
