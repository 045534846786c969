// Package tui renders the particle field in a terminal with tcell. Mouse
// motion over the terminal drives the pointer.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"cursor-escape/internal/driver"
	"cursor-escape/internal/input"
	"cursor-escape/internal/scene"
	"cursor-escape/internal/utils"
)

// cellAspect is the height of a terminal cell relative to its width.
const cellAspect = 2

var glyphs = []rune{'·', '∘', '•', '●'}

type Options struct {
	FPS int
	// CellPixels is the virtual pixel width of one terminal cell, so that a
	// terminal shows roughly what a window of the same pixel size would.
	CellPixels float64
	Color      tcell.Color
	Background tcell.Color
}

func DefaultOptions() Options {
	return Options{
		FPS:        30,
		CellPixels: 16,
		Color:      tcell.NewRGBColor(0xe4, 0xe4, 0xe7),
		Background: tcell.ColorBlack,
	}
}

// Host owns the frame loop of a terminal session. The screen must already
// be initialised; Host never calls Fini.
type Host struct {
	screen  tcell.Screen
	drv     *driver.Driver
	pointer *input.Broadcaster
	limiter *rate.Limiter

	cellPixels float64
	style      tcell.Style
	dimStyle   tcell.Style
	cols       int
	rows       int
	densities  []int
}

func New(screen tcell.Screen, drv *driver.Driver, opts Options) *Host {
	def := DefaultOptions()
	if opts.FPS <= 0 {
		opts.FPS = def.FPS
	}
	if opts.CellPixels <= 0 {
		opts.CellPixels = def.CellPixels
	}
	base := tcell.StyleDefault.Background(opts.Background)
	return &Host{
		screen:     screen,
		drv:        drv,
		pointer:    input.NewBroadcaster(),
		limiter:    rate.NewLimiter(rate.Every(time.Second/time.Duration(opts.FPS)), 1),
		cellPixels: opts.CellPixels,
		style:      base.Foreground(opts.Color),
		dimStyle:   base.Foreground(tcell.ColorGray),
	}
}

// Pointer is the Source fed by terminal mouse events.
func (h *Host) Pointer() *input.Broadcaster {
	return h.pointer
}

// Run mounts the driver on the terminal pointer and runs the event pump and
// the frame loop until ctx is done or the user quits.
func (h *Host) Run(ctx context.Context) error {
	h.drv.Mount(h.pointer)
	defer h.drv.Unmount()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return h.pumpEvents(ctx, cancel)
	})
	g.Go(func() error {
		// Wake the pump so it can observe the cancelled context.
		defer h.screen.PostEvent(tcell.NewEventInterrupt(nil))
		return h.frameLoop(ctx)
	})
	return g.Wait()
}

func (h *Host) pumpEvents(ctx context.Context, quit context.CancelFunc) error {
	for {
		ev := h.screen.PollEvent()
		if ev == nil || ctx.Err() != nil {
			return nil
		}

		switch ev := ev.(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
				(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
				utils.Debug("terminal quit requested")
				quit()
				return nil
			}
		case *tcell.EventMouse:
			x, y := ev.Position()
			cols, rows := h.screen.Size()
			h.pointer.Publish(input.FromScreen(float64(x)+0.5, float64(y)+0.5, float64(cols), float64(rows)).Clamp())
		case *tcell.EventResize:
			h.screen.Sync()
		}
	}
}

func (h *Host) frameLoop(ctx context.Context) error {
	for {
		// Wait only fails once ctx is done or its deadline is too close.
		if err := h.limiter.Wait(ctx); err != nil {
			return nil
		}
		h.drv.Tick()
		h.Render()
	}
}

// Render rasterises the current positions into terminal cells and shows
// the screen. It also follows terminal resizes.
func (h *Host) Render() {
	cols, rows := h.screen.Size()
	if cols != h.cols || rows != h.rows {
		h.cols, h.rows = cols, rows
		h.drv.Resize(float64(cols)*h.cellPixels, float64(rows)*h.cellPixels*cellAspect)
		h.densities = make([]int, cols*rows)
	}
	if cols <= 0 || rows <= 0 {
		return
	}

	for i := range h.densities {
		h.densities[i] = 0
	}

	cam := h.drv.Camera()
	buf := h.drv.Field().Buffer()
	data := buf.Data()
	for i := 0; i+2 < len(data); i += 3 {
		ndc := cam.Project(scene.Vec3{X: float64(data[i]), Y: float64(data[i+1]), Z: float64(data[i+2])})
		cx := int((ndc.X + 1) / 2 * float64(cols))
		cy := int((1 - ndc.Y) / 2 * float64(rows))
		if cx < 0 || cx >= cols || cy < 0 || cy >= rows {
			continue
		}
		h.densities[cy*cols+cx]++
	}
	buf.MarkUploaded()

	h.screen.Clear()
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			n := h.densities[cy*cols+cx]
			if n == 0 {
				continue
			}
			if n > len(glyphs) {
				n = len(glyphs)
			}
			h.screen.SetContent(cx, cy, glyphs[n-1], nil, h.style)
		}
	}
	h.drawStatus(cols)
	h.screen.Show()
}

func (h *Host) drawStatus(cols int) {
	stats := h.drv.Field().Stats()
	line := fmt.Sprintf(" %d particles  %d avoiding  q to quit ", stats.Count, stats.Avoiding)
	for i, r := range []rune(line) {
		if i >= cols {
			break
		}
		h.screen.SetContent(i, 0, r, nil, h.dimStyle)
	}
}
