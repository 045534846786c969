package debug

import (
	"math"
	"os"
	"runtime"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"cursor-escape/internal/driver"
)

type DebugTab int

const (
	TabSimulation DebugTab = iota
	TabPerformance
)

// DebugOverlay is the F8 panel of the window host.
type DebugOverlay struct {
	ActiveTab      DebugTab
	ShowBoundaries bool

	fontHeight   int
	lineHeight   int
	tabHeight    int
	sidebarWidth int
	uiScale      float64
	font         rl.Font

	prevLeftMouseButton bool
	mouseX, mouseY      int
	clicked             bool

	monitorWidth  int
	monitorHeight int

	lastUpdateTime time.Time
	frameCount     int
	fps            float64
	memStats       runtime.MemStats
}

func NewDebugOverlay() *DebugOverlay {
	monitor := rl.GetCurrentMonitor()

	d := &DebugOverlay{
		ActiveTab:      TabSimulation,
		ShowBoundaries: true,
		monitorWidth:   rl.GetMonitorWidth(monitor),
		monitorHeight:  rl.GetMonitorHeight(monitor),
		lastUpdateTime: time.Now(),
	}
	d.updateLayout()

	fontPaths := []string{
		"/usr/share/fonts/TTF/DejaVuSans.ttf",
		"/usr/share/fonts/truetype/ttf-dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/liberation/LiberationSans-Regular.ttf",
		"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
	}
	for _, path := range fontPaths {
		if _, err := os.Stat(path); err == nil {
			d.font = rl.LoadFontEx(path, 64, nil, 0)
			rl.SetTextureFilter(d.font.Texture, rl.FilterBilinear)
			break
		}
	}

	runtime.ReadMemStats(&d.memStats)
	return d
}

func (d *DebugOverlay) updateLayout() {
	scale := math.Max(1.0, float64(d.monitorHeight)/1080.0)
	d.fontHeight = int(16 * scale)
	d.lineHeight = int(24 * scale)
	d.tabHeight = int(32 * scale)
	d.sidebarWidth = int(360 * scale)
	d.uiScale = scale
}

func (d *DebugOverlay) Update() {
	d.frameCount++
	now := time.Now()
	if now.Sub(d.lastUpdateTime) >= time.Second {
		d.fps = float64(d.frameCount) / now.Sub(d.lastUpdateTime).Seconds()
		d.frameCount = 0
		d.lastUpdateTime = now
		runtime.ReadMemStats(&d.memStats)
	}

	mPos := rl.GetMousePosition()
	d.mouseX = int(mPos.X)
	d.mouseY = int(mPos.Y)

	leftPressed := rl.IsMouseButtonDown(rl.MouseLeftButton)
	d.clicked = leftPressed && !d.prevLeftMouseButton
	d.prevLeftMouseButton = leftPressed

	if d.clicked && d.mouseY < d.tabHeight && d.mouseX < d.sidebarWidth {
		tabWidth := d.sidebarWidth / 2
		d.ActiveTab = DebugTab(d.mouseX / tabWidth)
	}
}

// Draw renders the panel in screen space. Call it after EndMode3D.
func (d *DebugOverlay) Draw(drv *driver.Driver) {
	h := int32(rl.GetScreenHeight())
	rl.DrawRectangle(0, 0, int32(d.sidebarWidth), h, rl.NewColor(0, 0, 0, 180))
	d.drawTabs()

	startY := d.tabHeight + 8
	switch d.ActiveTab {
	case TabSimulation:
		p := d.newPanel(10, startY)
		if p.toggle("Show Boundaries", d.ShowBoundaries, d.mouseX, d.mouseY, d.clicked) {
			d.ShowBoundaries = !d.ShowBoundaries
		}
		p.lines(append([]Line{{}}, SimulationLines(TakeSnapshot(drv))...))
	case TabPerformance:
		d.drawPerformance(startY)
	}
}

func (d *DebugOverlay) drawTabs() {
	names := []string{"Simulation", "Performance"}
	tabWidth := d.sidebarWidth / len(names)
	for i, name := range names {
		x := int32(i * tabWidth)
		col := rl.NewColor(40, 40, 40, 255)
		if DebugTab(i) == d.ActiveTab {
			col = rl.NewColor(80, 80, 80, 255)
		}
		rl.DrawRectangle(x, 0, int32(tabWidth), int32(d.tabHeight), col)
		d.newPanel(int(x)+10, (d.tabHeight-d.fontHeight)/2).text(name, int(x)+10, rl.White)
	}
}

func (d *DebugOverlay) Unload() {
	if d.font.BaseSize > 0 {
		rl.UnloadFont(d.font)
	}
}
