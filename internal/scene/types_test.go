package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestBoundsValidate(t *testing.T) {
	cases := []struct {
		name   string
		bounds Bounds
		ok     bool
	}{
		{"default particle bounds", Bounds{Width: 500, Height: 250}, true},
		{"zero width", Bounds{Width: 0, Height: 250}, false},
		{"negative height", Bounds{Width: 500, Height: -1}, false},
		{"nan width", Bounds{Width: math.NaN(), Height: 1}, false},
		{"inf height", Bounds{Width: 1, Height: math.Inf(1)}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.bounds.Validate()
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, ErrInvalidBounds), "got %v", err)
		})
	}
}

func TestBoundsContains(t *testing.T) {
	b := Bounds{Width: 10, Height: 4}
	assert.True(t, b.Contains(5, 2))
	assert.True(t, b.Contains(-5, -2))
	assert.False(t, b.Contains(5.01, 0))
	assert.False(t, b.Contains(0, -2.01))
}

func TestLerp(t *testing.T) {
	assert.Equal(t, 11.5, Lerp(10, 25, 0.1))
	assert.Equal(t, 3.0, Lerp(3, 3, 0.5))
	assert.Equal(t, 8.0, Lerp(0, 8, 1))
}

func TestVecConversions(t *testing.T) {
	v := Vec3{X: 1, Y: -2, Z: 3}
	assert.Equal(t, mgl64.Vec3{1, -2, 3}, v.Vec())
	assert.Equal(t, v, FromVec3(v.Vec()))
	assert.Equal(t, Vec2{X: 1, Y: -2}, FromVec2(v.XY().Vec()))

	assert.InDelta(t, 5, Vec2{X: 3, Y: 4}.Distance(Vec2{}), 1e-12)
	assert.Zero(t, Vec2{X: 7, Y: 7}.Distance(Vec2{X: 7, Y: 7}))
}
