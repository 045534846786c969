package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"cursor-escape/internal/scene"
)

// Camera is what the tracker needs from a scene camera.
type Camera interface {
	Position() scene.Vec3
	SetPosition(scene.Vec3)
	UpdateProjectionMatrix()
}

type Projection struct {
	Orthographic bool    `mapstructure:"orthographic" yaml:"orthographic"`
	Zoom         float64 `mapstructure:"zoom" yaml:"zoom"`
	Near         float64 `mapstructure:"near" yaml:"near"`
	Far          float64 `mapstructure:"far" yaml:"far"`
	// Fov is the vertical field of view in degrees, used when not orthographic.
	Fov float64 `mapstructure:"fov" yaml:"fov"`
}

func DefaultProjection() Projection {
	return Projection{
		Orthographic: true,
		Zoom:         5,
		Near:         0.1,
		Far:          100,
		Fov:          50,
	}
}

// Camera3D looks down -Z from its position. The viewport is measured in
// pixels; in orthographic mode one world unit spans Zoom pixels.
type Camera3D struct {
	position   scene.Vec3
	projection Projection
	viewportW  float64
	viewportH  float64

	projectionMatrix  mgl64.Mat4
	projectionInverse mgl64.Mat4
	updates           uint64
}

func NewCamera3D(position scene.Vec3, projection Projection, viewportW, viewportH float64) *Camera3D {
	c := &Camera3D{
		position:   position,
		projection: projection,
		viewportW:  viewportW,
		viewportH:  viewportH,
	}
	c.UpdateProjectionMatrix()
	return c
}

func (c *Camera3D) Position() scene.Vec3 {
	return c.position
}

func (c *Camera3D) SetPosition(p scene.Vec3) {
	c.position = p
}

func (c *Camera3D) Projection() Projection {
	return c.projection
}

func (c *Camera3D) Viewport() (float64, float64) {
	return c.viewportW, c.viewportH
}

func (c *Camera3D) SetViewport(w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	c.viewportW, c.viewportH = w, h
	c.UpdateProjectionMatrix()
}

// ViewSize returns the visible world-space width and height at the focal
// plane.
func (c *Camera3D) ViewSize() (float64, float64) {
	if c.projection.Orthographic {
		return c.viewportW / c.projection.Zoom, c.viewportH / c.projection.Zoom
	}
	h := 2 * c.position.Z * math.Tan(c.projection.Fov*math.Pi/360) / c.projection.Zoom
	return h * c.aspect(), h
}

func (c *Camera3D) aspect() float64 {
	if c.viewportH == 0 {
		return 1
	}
	return c.viewportW / c.viewportH
}

// UpdateProjectionMatrix recomputes the projection from the current
// projection parameters and viewport.
func (c *Camera3D) UpdateProjectionMatrix() {
	p := c.projection
	zoom := p.Zoom
	if zoom == 0 {
		zoom = 1
	}

	if p.Orthographic {
		dx := c.viewportW / (2 * zoom)
		dy := c.viewportH / (2 * zoom)
		c.projectionMatrix = mgl64.Ortho(-dx, dx, -dy, dy, p.Near, p.Far)
	} else {
		top := p.Near * math.Tan(p.Fov*math.Pi/360) / zoom
		right := c.aspect() * top
		c.projectionMatrix = mgl64.Frustum(-right, right, -top, top, p.Near, p.Far)
	}

	if c.projectionMatrix.Det() == 0 {
		c.projectionInverse = mgl64.Ident4()
	} else {
		c.projectionInverse = c.projectionMatrix.Inv()
	}
	c.updates++
}

// ProjectionMatrix is column-major in the OpenGL clip convention.
func (c *Camera3D) ProjectionMatrix() mgl64.Mat4 {
	return c.projectionMatrix
}

func (c *Camera3D) ProjectionUpdates() uint64 {
	return c.updates
}

// ViewMatrix moves world space into camera space. The camera has no
// rotation, so this is a translation by -position.
func (c *Camera3D) ViewMatrix() mgl64.Mat4 {
	return mgl64.Translate3D(-c.position.X, -c.position.Y, -c.position.Z)
}

// Unproject maps a point in normalized device coordinates to world space.
func (c *Camera3D) Unproject(ndc scene.Vec3) scene.Vec3 {
	toWorld := mgl64.Translate3D(c.position.X, c.position.Y, c.position.Z).Mul4(c.projectionInverse)
	return scene.FromVec3(mgl64.TransformCoordinate(ndc.Vec(), toWorld))
}

// Project maps a world-space point to normalized device coordinates.
func (c *Camera3D) Project(world scene.Vec3) scene.Vec3 {
	return scene.FromVec3(mgl64.TransformCoordinate(world.Vec(), c.projectionMatrix.Mul4(c.ViewMatrix())))
}
