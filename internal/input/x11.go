package input

import (
	"context"
	"fmt"
	"time"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"golang.org/x/time/rate"

	"cursor-escape/internal/utils"
)

// Querier reports the global pointer position in root-window pixels.
type Querier interface {
	QueryPointer() (int, int, error)
	ScreenSize() (int, int)
}

// X11Display queries the pointer on the default screen's root window, so
// the position is tracked even when our window is not focused.
type X11Display struct {
	conn   *xgb.Conn
	root   xproto.Window
	width  int
	height int
}

func OpenX11() (*X11Display, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %w", err)
	}

	screen := xproto.Setup(conn).DefaultScreen(conn)
	return &X11Display{
		conn:   conn,
		root:   screen.Root,
		width:  int(screen.WidthInPixels),
		height: int(screen.HeightInPixels),
	}, nil
}

func (d *X11Display) QueryPointer() (int, int, error) {
	reply, err := xproto.QueryPointer(d.conn, d.root).Reply()
	if err != nil {
		return 0, 0, err
	}
	return int(reply.RootX), int(reply.RootY), nil
}

func (d *X11Display) ScreenSize() (int, int) {
	return d.width, d.height
}

func (d *X11Display) Close() {
	d.conn.Close()
}

// Poller turns a Querier into a Source by sampling it at a fixed rate and
// publishing a Sample whenever the pointer moved.
type Poller struct {
	*Broadcaster
	querier Querier
	limiter *rate.Limiter
}

func NewPoller(q Querier, hz float64) *Poller {
	if hz <= 0 {
		hz = 60
	}
	return &Poller{
		Broadcaster: NewBroadcaster(),
		querier:     q,
		limiter:     rate.NewLimiter(rate.Every(time.Duration(float64(time.Second)/hz)), 1),
	}
}

// Run polls until ctx is done. Query errors are logged and skipped.
func (p *Poller) Run(ctx context.Context) error {
	lastX, lastY := -1, -1
	for {
		// Wait only fails once ctx is done or its deadline is too close.
		if err := p.limiter.Wait(ctx); err != nil {
			return nil
		}

		x, y, err := p.querier.QueryPointer()
		if err != nil {
			utils.Debug("pointer query failed: %v", err)
			continue
		}
		if x == lastX && y == lastY {
			continue
		}
		lastX, lastY = x, y

		w, h := p.querier.ScreenSize()
		p.Publish(FromScreen(float64(x), float64(y), float64(w), float64(h)).Clamp())
	}
}
