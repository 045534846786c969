package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"cursor-escape/internal/config"
	"cursor-escape/internal/tui"
)

func newTerminalCmd(a *app) *cobra.Command {
	var recordPath string

	cmd := &cobra.Command{
		Use:   "terminal",
		Short: "Render the particle field in the terminal, driven by the mouse",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("failed to open terminal: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("failed to initialise terminal: %w", err)
			}
			defer screen.Fini()
			screen.EnableMouse(tcell.MouseMotionEvents)
			screen.HideCursor()

			cols, rows := screen.Size()
			opts := tui.DefaultOptions()
			if rgb, err := config.ParseHexColor(a.cfg.Window.Color); err == nil {
				opts.Color = tcell.NewRGBColor(int32(rgb.R), int32(rgb.G), int32(rgb.B))
			}
			opts.FPS = min(a.cfg.Window.TargetFPS, 60)

			drv, err := a.newDriver(float64(cols)*opts.CellPixels, float64(rows)*opts.CellPixels*2)
			if err != nil {
				return err
			}
			rec, err := startRecording(recordPath, drv)
			if err != nil {
				return err
			}
			defer rec.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return tui.New(screen, drv, opts).Run(ctx)
		},
	}
	addRecordFlag(cmd, &recordPath)
	return cmd
}
