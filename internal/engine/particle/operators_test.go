package particle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cursor-escape/internal/scene"
)

func TestReflect(t *testing.T) {
	pos, vel, hit := reflect(251, 0.05, 250)
	assert.True(t, hit)
	assert.InDelta(t, 249.9, pos, 1e-12)
	assert.Equal(t, -0.05, vel)

	pos, vel, hit = reflect(-126, -0.02, 125)
	assert.True(t, hit)
	assert.InDelta(t, -124.9, pos, 1e-12)
	assert.Equal(t, 0.02, vel)

	pos, vel, hit = reflect(250, 0.05, 250)
	assert.False(t, hit)
	assert.Equal(t, 250.0, pos)
	assert.Equal(t, 0.05, vel)
}

func TestReflect_TinyBounds(t *testing.T) {
	pos, _, hit := reflect(0.04, 1, 0.025)
	assert.True(t, hit)
	assert.LessOrEqual(t, pos, 0.025)
	assert.GreaterOrEqual(t, pos, -0.025)
}

func TestAvoid(t *testing.T) {
	x, y, ok := avoid(10, 0, scene.Vec2{}, 25)
	assert.True(t, ok)
	assert.Equal(t, 11.5, x)
	assert.Equal(t, 0.0, y)

	_, _, ok = avoid(25, 0, scene.Vec2{}, 25)
	assert.False(t, ok, "distance equal to the radius is outside")

	x, y, ok = avoid(0, 0, scene.Vec2{}, 25)
	assert.True(t, ok)
	assert.Equal(t, 2.5, x)
	assert.Equal(t, 0.0, y)
}

func TestStep_EmptyState(t *testing.T) {
	stats := Step(State{}, scene.Vec2{}, StepParams{AvoidRadius: 1, Bounds: DefaultBounds()})
	assert.Equal(t, Stats{}, stats)
}

func BenchmarkStep(b *testing.B) {
	f, err := NewField(Options{Config: DefaultConfig()})
	if err != nil {
		b.Fatal(err)
	}
	st := f.State()
	params := StepParams{AvoidRadius: DefaultAvoidRadius, Bounds: DefaultBounds()}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Step(st, scene.Vec2{X: float64(i % 200), Y: 0}, params)
	}
}
