package main

import (
	"context"

	rl "github.com/gen2brain/raylib-go/raylib"

	"cursor-escape/internal/config"
	"cursor-escape/internal/debug"
	"cursor-escape/internal/driver"
	"cursor-escape/internal/input"
	"cursor-escape/internal/utils"
)

type Window struct {
	drv      *driver.Driver
	pointer  *input.Broadcaster
	trackOwn bool

	camera     rl.Camera3D
	bgColor    rl.Color
	pointColor rl.Color
	pointSize  float32
	usePoints  bool

	screenWidth  int
	screenHeight int
	lastMouse    rl.Vector2

	debugOverlay *debug.DebugOverlay
}

// NewWindow draws drv into the current raylib window. When pointer is nil
// the window publishes its own mouse position; otherwise the driver is
// expected to be mounted on an external source.
func NewWindow(cfg config.Config, drv *driver.Driver, pointer *input.Broadcaster) *Window {
	window := &Window{
		drv:          drv,
		pointer:      pointer,
		bgColor:      rl.Black,
		pointColor:   pointColor(cfg.Window),
		pointSize:    float32(cfg.Window.PointSize / cfg.Camera.Projection.Zoom),
		usePoints:    cfg.Window.PointSize <= 1,
		debugOverlay: debug.NewDebugOverlay(),
	}
	if window.pointer == nil {
		window.pointer = input.NewBroadcaster()
		window.trackOwn = true
	}

	window.camera = rl.Camera3D{
		Up:         rl.NewVector3(0, 1, 0),
		Projection: rl.CameraOrthographic,
	}
	if !cfg.Camera.Projection.Orthographic {
		window.camera.Projection = rl.CameraPerspective
		window.camera.Fovy = float32(cfg.Camera.Projection.Fov)
	}
	return window
}

func pointColor(w config.WindowConfig) rl.Color {
	rgb, err := config.ParseHexColor(w.Color)
	if err != nil {
		return rl.White
	}
	return rl.NewColor(rgb.R, rgb.G, rgb.B, uint8(w.Opacity*255))
}

// Pointer is the source the driver should be mounted on.
func (window *Window) Pointer() *input.Broadcaster {
	return window.pointer
}

func (window *Window) Run(ctx context.Context, targetFPS int) {
	rl.SetTargetFPS(int32(targetFPS))

	for !rl.WindowShouldClose() && ctx.Err() == nil {
		window.Update()

		rl.BeginDrawing()
		window.Draw()
		rl.EndDrawing()
	}
	window.debugOverlay.Unload()
}

func (window *Window) Update() {
	screenWidth := rl.GetScreenWidth()
	screenHeight := rl.GetScreenHeight()
	if screenWidth != window.screenWidth || screenHeight != window.screenHeight {
		window.screenWidth, window.screenHeight = screenWidth, screenHeight
		window.drv.Resize(float64(screenWidth), float64(screenHeight))
		utils.Debug("Window resized to %dx%d", screenWidth, screenHeight)
	}

	if window.trackOwn {
		mPos := rl.GetMousePosition()
		if mPos != window.lastMouse {
			window.lastMouse = mPos
			window.pointer.Publish(input.FromScreen(
				float64(mPos.X), float64(mPos.Y),
				float64(screenWidth), float64(screenHeight),
			).Clamp())
		}
	}

	if rl.IsKeyPressed(rl.KeyF8) {
		utils.ShowDebugUI = !utils.ShowDebugUI
	}

	window.drv.Tick()

	if utils.ShowDebugUI {
		window.debugOverlay.Update()
	}
}

// syncCamera copies the simulated camera into the raylib camera.
func (window *Window) syncCamera() {
	cam := window.drv.Camera()
	pos := cam.Position()
	window.camera.Position = rl.NewVector3(float32(pos.X), float32(pos.Y), float32(pos.Z))
	window.camera.Target = rl.NewVector3(float32(pos.X), float32(pos.Y), 0)
	if window.camera.Projection == rl.CameraOrthographic {
		_, viewH := cam.ViewSize()
		window.camera.Fovy = float32(viewH)
	}
}

func (window *Window) Draw() {
	rl.ClearBackground(window.bgColor)
	window.syncCamera()

	rl.BeginMode3D(window.camera)

	buf := window.drv.Field().Buffer()
	data := buf.Data()
	size := rl.NewVector3(window.pointSize, window.pointSize, 0)
	for i := 0; i+2 < len(data); i += 3 {
		pos := rl.NewVector3(data[i], data[i+1], data[i+2])
		if window.usePoints {
			rl.DrawPoint3D(pos, window.pointColor)
		} else {
			rl.DrawCubeV(pos, size, window.pointColor)
		}
	}
	if buf.NeedsUpdate() {
		buf.MarkUploaded()
	}

	if utils.ShowDebugUI {
		window.debugOverlay.DrawBoundaries(window.drv)
	}
	rl.EndMode3D()

	if utils.ShowDebugUI {
		window.debugOverlay.Draw(window.drv)
	}
}
