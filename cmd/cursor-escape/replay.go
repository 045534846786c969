package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"cursor-escape/internal/trace"
	"cursor-escape/internal/utils"
)

type replayOptions struct {
	tracePath string
	frames    int
	loop      bool
	radius    float64
	period    int
	width     float64
	height    float64
}

func newReplayCmd(a *app) *cobra.Command {
	opts := replayOptions{}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Run the simulation headless from a recorded or synthetic pointer trace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.replay(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.tracePath, "trace", "", "pointer trace recorded with --record (default: synthetic orbit)")
	flags.IntVar(&opts.frames, "frames", 0, "number of frames to run (default: trace length, or 600 for the orbit)")
	flags.BoolVar(&opts.loop, "loop", false, "restart the trace when it runs out")
	flags.Float64Var(&opts.radius, "orbit-radius", 0.8, "radius of the synthetic orbit in NDC")
	flags.IntVar(&opts.period, "orbit-period", 240, "frames per synthetic orbit")
	flags.Float64Var(&opts.width, "width", 0, "viewport width in pixels (default: window width)")
	flags.Float64Var(&opts.height, "height", 0, "viewport height in pixels (default: window height)")
	return cmd
}

// replaySummary is what the replay command reports after the last frame.
type replaySummary struct {
	Frames       uint64
	Particles    int
	Avoiding     int
	Reflected    int
	MaxAvoiding  int
	CameraX      float64
	CameraY      float64
	Elapsed      time.Duration
	OutOfBounds  int
	TraceSamples int
}

func (a *app) replay(cmd *cobra.Command, opts replayOptions) error {
	frames, err := loadReplayFrames(opts)
	if err != nil {
		return err
	}

	w, h := opts.width, opts.height
	if w <= 0 || h <= 0 {
		w, h = float64(a.cfg.Window.Width), float64(a.cfg.Window.Height)
	}
	drv, err := a.newDriver(w, h)
	if err != nil {
		return err
	}

	player := trace.NewPlayer(frames, opts.loop)
	drv.Mount(player)
	defer drv.Unmount()

	n := opts.frames
	if n <= 0 {
		n = player.Len()
	}

	summary := replaySummary{TraceSamples: player.Len()}
	start := time.Now()
	for i := 0; i < n; i++ {
		if !player.Advance() {
			break
		}
		drv.Tick()
		if avoiding := drv.Field().Stats().Avoiding; avoiding > summary.MaxAvoiding {
			summary.MaxAvoiding = avoiding
		}
	}
	summary.Elapsed = time.Since(start)

	stats := drv.Field().Stats()
	cam := drv.Camera().Position()
	summary.Frames = drv.Frames()
	summary.Particles = stats.Count
	summary.Avoiding = stats.Avoiding
	summary.Reflected = stats.Reflected
	summary.CameraX, summary.CameraY = cam.X, cam.Y

	bounds := drv.Field().Config().Bounds
	state := drv.Field().State()
	for i := 0; i < state.Count(); i++ {
		if !bounds.Contains(float64(state.Positions[3*i]), float64(state.Positions[3*i+1])) {
			summary.OutOfBounds++
		}
	}

	utils.With(
		"frames", summary.Frames,
		"particles", summary.Particles,
		"maxAvoiding", summary.MaxAvoiding,
		"elapsed", summary.Elapsed,
	).Info("Replay finished")

	fmt.Fprintf(cmd.OutOrStdout(),
		"frames: %d\nparticles: %d\navoiding: %d\nmax avoiding: %d\nreflected: %d\nout of bounds: %d\ncamera: %.3f %.3f\n",
		summary.Frames, summary.Particles, summary.Avoiding, summary.MaxAvoiding,
		summary.Reflected, summary.OutOfBounds, summary.CameraX, summary.CameraY)
	return nil
}

func loadReplayFrames(opts replayOptions) ([]trace.Frame, error) {
	if opts.tracePath == "" {
		n := opts.frames
		if n <= 0 {
			n = 600
		}
		return trace.Orbit(n, opts.period, opts.radius), nil
	}

	f, err := os.Open(opts.tracePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace: %w", err)
	}
	defer f.Close()

	frames, err := trace.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read trace %s: %w", opts.tracePath, err)
	}
	utils.Info("Loaded %d frames from %s", len(frames), opts.tracePath)
	return frames, nil
}
