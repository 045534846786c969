package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"

	"cursor-escape/internal/scene"
)

func assertVec3(t *testing.T, want, got scene.Vec3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-9, "x")
	assert.InDelta(t, want.Y, got.Y, 1e-9, "y")
	assert.InDelta(t, want.Z, got.Z, 1e-9, "z")
}

func TestCamera3D_OrthographicUnproject(t *testing.T) {
	cam := NewCamera3D(scene.Vec3{X: 3, Y: 4, Z: 5}, DefaultProjection(), 800, 600)

	centre := cam.Unproject(scene.Vec3{Z: 0.5})
	assert.InDelta(t, 3, centre.X, 1e-9)
	assert.InDelta(t, 4, centre.Y, 1e-9)

	corner := cam.Unproject(scene.Vec3{X: 1, Y: 1, Z: 0.5})
	assert.InDelta(t, 3+80, corner.X, 1e-9)
	assert.InDelta(t, 4+60, corner.Y, 1e-9)

	w, h := cam.ViewSize()
	assert.InDelta(t, 160, w, 1e-9)
	assert.InDelta(t, 120, h, 1e-9)
}

func TestCamera3D_ProjectIsInverseOfUnproject(t *testing.T) {
	for _, proj := range []Projection{
		DefaultProjection(),
		{Orthographic: false, Zoom: 1, Near: 0.1, Far: 100, Fov: 50},
	} {
		cam := NewCamera3D(scene.Vec3{X: -2, Y: 7, Z: 5}, proj, 1280, 720)
		for _, ndc := range []scene.Vec3{{X: 0, Y: 0, Z: 0.5}, {X: -0.3, Y: 0.8, Z: 0.1}, {X: 1, Y: -1, Z: -0.5}} {
			world := cam.Unproject(ndc)
			assertVec3(t, ndc, cam.Project(world))
		}
	}
}

func TestCamera3D_ProjectionMatrix(t *testing.T) {
	ortho := NewCamera3D(scene.Vec3{Z: 5}, DefaultProjection(), 800, 600)
	assert.True(t, ortho.ProjectionMatrix().ApproxEqualThreshold(mgl64.Ortho(-80, 80, -60, 60, 0.1, 100), 1e-12))

	persp := NewCamera3D(scene.Vec3{Z: 5}, Projection{Zoom: 1, Near: 0.1, Far: 100, Fov: 90}, 800, 400)
	assert.True(t, persp.ProjectionMatrix().ApproxEqualThreshold(mgl64.Frustum(-0.2, 0.2, -0.1, 0.1, 0.1, 100), 1e-12))

	for _, cam := range []*Camera3D{ortho, persp} {
		product := cam.ProjectionMatrix().Mul4(cam.projectionInverse)
		assert.True(t, product.ApproxEqualThreshold(mgl64.Ident4(), 1e-9))
	}
}

func TestCamera3D_ViewMatrix(t *testing.T) {
	cam := NewCamera3D(scene.Vec3{X: 3, Y: -2, Z: 5}, DefaultProjection(), 800, 600)
	got := mgl64.TransformCoordinate(mgl64.Vec3{3, -2, 5}, cam.ViewMatrix())
	assert.True(t, got.ApproxEqual(mgl64.Vec3{}))
}

func TestCamera3D_SetViewport(t *testing.T) {
	cam := NewCamera3D(scene.Vec3{Z: 5}, DefaultProjection(), 800, 600)
	before := cam.ProjectionUpdates()

	cam.SetViewport(0, 100)
	assert.Equal(t, before, cam.ProjectionUpdates(), "invalid viewport ignored")

	cam.SetViewport(400, 300)
	assert.Equal(t, before+1, cam.ProjectionUpdates())
	corner := cam.Unproject(scene.Vec3{X: 1, Y: 1})
	assert.InDelta(t, 40, corner.X, 1e-9)
	assert.InDelta(t, 30, corner.Y, 1e-9)
}
