package debug

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"cursor-escape/internal/driver"
)

// DrawBoundaries draws the particle bounds and the avoid ring around the
// unprojected pointer. Call it inside BeginMode3D.
func (d *DebugOverlay) DrawBoundaries(drv *driver.Driver) {
	if !d.ShowBoundaries {
		return
	}

	cfg := drv.Field().Config()
	hw, hh := cfg.Bounds.HalfExtents()
	rl.DrawCubeWires(rl.NewVector3(0, 0, 0), float32(hw*2), float32(hh*2), 0, rl.NewColor(0, 255, 0, 255))

	p := drv.PointerWorld()
	rl.DrawCircle3D(
		rl.NewVector3(float32(p.X), float32(p.Y), 0),
		float32(cfg.AvoidRadius),
		rl.NewVector3(0, 0, 1), 0,
		rl.NewColor(255, 255, 0, 150),
	)
	rl.DrawCube(rl.NewVector3(float32(p.X), float32(p.Y), 0), 1, 1, 0, rl.Red)
}
