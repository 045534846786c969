package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrInvalidBounds is returned when a bounds rectangle has a non-positive
// or non-finite dimension.
var ErrInvalidBounds = errors.New("invalid bounds")

// Vec2 and Vec3 are named-field forms of the mgl64 vectors.
type Vec2 struct {
	X, Y float64
}

func FromVec2(v mgl64.Vec2) Vec2 {
	return Vec2{X: v[0], Y: v[1]}
}

func (v Vec2) Vec() mgl64.Vec2 {
	return mgl64.Vec2{v.X, v.Y}
}

// Distance is the Euclidean distance between v and o.
func (v Vec2) Distance(o Vec2) float64 {
	return v.Vec().Sub(o.Vec()).Len()
}

type Vec3 struct {
	X, Y, Z float64
}

func FromVec3(v mgl64.Vec3) Vec3 {
	return Vec3{X: v[0], Y: v[1], Z: v[2]}
}

func (v Vec3) Vec() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func (v Vec3) XY() Vec2 {
	return Vec2{X: v.X, Y: v.Y}
}

// Bounds is an axis-aligned rectangle centred on the origin.
type Bounds struct {
	Width  float64 `mapstructure:"width" yaml:"width"`
	Height float64 `mapstructure:"height" yaml:"height"`
}

func (b Bounds) HalfExtents() (float64, float64) {
	return b.Width / 2, b.Height / 2
}

func (b Bounds) Contains(x, y float64) bool {
	hw, hh := b.HalfExtents()
	return math.Abs(x) <= hw && math.Abs(y) <= hh
}

func (b Bounds) Validate() error {
	if !(b.Width > 0) || math.IsInf(b.Width, 0) {
		return fmt.Errorf("%w: width %v", ErrInvalidBounds, b.Width)
	}
	if !(b.Height > 0) || math.IsInf(b.Height, 0) {
		return fmt.Errorf("%w: height %v", ErrInvalidBounds, b.Height)
	}
	return nil
}

// Lerp moves a fraction t of the way from a to b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
