package debug

import (
	"fmt"

	"cursor-escape/internal/driver"
	"cursor-escape/internal/engine/particle"
	"cursor-escape/internal/input"
	"cursor-escape/internal/scene"
)

// Snapshot is the per-frame state shown on the simulation tab.
type Snapshot struct {
	Frame        uint64
	Stats        particle.Stats
	Config       particle.Config
	Camera       scene.Vec3
	Target       scene.Vec2
	Pointer      input.Sample
	PointerWorld scene.Vec3
}

func TakeSnapshot(drv *driver.Driver) Snapshot {
	return Snapshot{
		Frame:        drv.Frames(),
		Stats:        drv.Field().Stats(),
		Config:       drv.Field().Config(),
		Camera:       drv.Camera().Position(),
		Target:       drv.Tracker().Target(),
		Pointer:      drv.Pointer(),
		PointerWorld: drv.PointerWorld(),
	}
}

type Line struct {
	Text   string
	Header bool
}

func SimulationLines(s Snapshot) []Line {
	return []Line{
		{Text: "Particles:", Header: true},
		{Text: fmt.Sprintf("Count: %d", s.Stats.Count)},
		{Text: fmt.Sprintf("Avoiding: %d", s.Stats.Avoiding)},
		{Text: fmt.Sprintf("Reflected: %d", s.Stats.Reflected)},
		{Text: fmt.Sprintf("Avoid Radius: %.1f", s.Config.AvoidRadius)},
		{Text: fmt.Sprintf("Bounds: %.0f x %.0f", s.Config.Bounds.Width, s.Config.Bounds.Height)},
		{},
		{Text: "Camera:", Header: true},
		{Text: fmt.Sprintf("Position: (%.2f, %.2f, %.2f)", s.Camera.X, s.Camera.Y, s.Camera.Z)},
		{Text: fmt.Sprintf("Target: (%.2f, %.2f)", s.Target.X, s.Target.Y)},
		{},
		{Text: "Pointer:", Header: true},
		{Text: fmt.Sprintf("NDC: (%.3f, %.3f)", s.Pointer.X, s.Pointer.Y)},
		{Text: fmt.Sprintf("World: (%.2f, %.2f)", s.PointerWorld.X, s.PointerWorld.Y)},
		{Text: fmt.Sprintf("Frame: %d", s.Frame)},
	}
}
