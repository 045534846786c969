package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"cursor-escape/internal/config"
	"cursor-escape/internal/driver"
	"cursor-escape/internal/utils"
)

// app carries what every subcommand needs once the root pre-run loaded
// the configuration.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "cursor-escape",
		Short:         "A particle field that flees the pointer while the camera follows it.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	flags := root.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "config file (default searches ./config.yaml and ~/.config/cursor-escape)")
	flags.BoolVar(&utils.DebugMode, "debug", false, "enable debug logging")
	flags.BoolVar(&utils.ShowRaylibInfo, "raylib-info", false, "show raylib info messages")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-file", "", "also write JSON logs to this rotating file")
	flags.Int("count", 0, "number of particles")
	flags.Float64("avoid-radius", 0, "pointer avoidance radius in world units")
	flags.Int64("seed", 0, "random seed for particle placement (0 picks one)")

	bind := map[string]string{
		"logger.level":          "log-level",
		"logger.file":           "log-file",
		"particles.count":       "count",
		"particles.avoidRadius": "avoid-radius",
		"seed":                  "seed",
	}
	for key, name := range bind {
		// Unchanged flags fall through to file, env and default values.
		_ = a.v.BindPFlag(key, flags.Lookup(name))
	}

	root.AddCommand(
		newRunCmd(a),
		newTerminalCmd(a),
		newReplayCmd(a),
		newConfigCmd(a),
	)
	return root
}

func (a *app) load(cmd *cobra.Command) error {
	if err := config.Read(a.v, a.cfgFile); err != nil {
		utils.InitLogger(utils.LogOptions{Level: "warn"}, cmd.ErrOrStderr())
		return err
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		utils.InitLogger(utils.LogOptions{Level: "warn"}, cmd.ErrOrStderr())
		return err
	}
	a.cfg = cfg

	utils.InitLogger(cfg.Logger.Options(), cmd.ErrOrStderr())
	utils.Debug("Starting cursor-escape %s (%s)", Version, cmd.Name())
	return nil
}

// newDriver builds the simulation for a viewport of w×h pixels.
func (a *app) newDriver(w, h float64) (*driver.Driver, error) {
	opts := a.cfg.DriverOptions()
	opts.ViewportW, opts.ViewportH = w, h

	seed := a.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	opts.Rand = rand.New(rand.NewSource(seed))

	drv, err := driver.New(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}
	utils.Info("Scene ready: %d particles, seed %d", drv.Field().Len(), seed)
	return drv, nil
}
