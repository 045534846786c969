package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"cursor-escape/internal/input"
	"cursor-escape/internal/utils"
)

func newRunCmd(a *app) *cobra.Command {
	var recordPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open a window and render the particle field",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.runWindow(ctx, recordPath)
		},
	}

	cmd.Flags().Bool("global-pointer", false, "follow the X11 pointer even outside the window")
	_ = a.v.BindPFlag("pointer.global", cmd.Flags().Lookup("global-pointer"))
	cmd.Flags().BoolVar(&utils.ShowDebugUI, "debug-ui", false, "start with the debug overlay open (toggle with F8)")
	addRecordFlag(cmd, &recordPath)
	return cmd
}

func (a *app) runWindow(ctx context.Context, recordPath string) error {
	cfg := a.cfg

	rl.SetTraceLogCallback(utils.RaylibLogCallback)
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), cfg.Window.Title)
	defer rl.CloseWindow()

	drv, err := a.newDriver(float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight()))
	if err != nil {
		return err
	}
	rec, err := startRecording(recordPath, drv)
	if err != nil {
		return err
	}
	defer rec.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	var pointer *input.Broadcaster
	if cfg.Pointer.Global {
		display, err := input.OpenX11()
		if err != nil {
			return fmt.Errorf("global pointer: %w", err)
		}
		defer display.Close()

		poller := input.NewPoller(display, cfg.Pointer.PollHz)
		pointer = poller.Broadcaster
		g.Go(func() error {
			return poller.Run(ctx)
		})
		utils.Info("Following the global X11 pointer at %.0f Hz", cfg.Pointer.PollHz)
	}

	window := NewWindow(cfg, drv, pointer)
	drv.Mount(window.Pointer())
	defer drv.Unmount()

	window.Run(ctx, cfg.Window.TargetFPS)
	cancel()

	if err := g.Wait(); err != nil {
		return err
	}
	utils.Info("Window closed after %d frames", drv.Frames())
	return nil
}
