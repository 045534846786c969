// Package config loads the application configuration from defaults, an
// optional YAML file, CURSOR_ESCAPE_* environment variables and CLI flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"cursor-escape/internal/driver"
	"cursor-escape/internal/engine/camera"
	"cursor-escape/internal/engine/particle"
	"cursor-escape/internal/utils"
)

const (
	AppName   = "cursor-escape"
	EnvPrefix = "CURSOR_ESCAPE"
)

type Config struct {
	Particles particle.Config `mapstructure:"particles" yaml:"particles"`
	Camera    CameraConfig    `mapstructure:"camera" yaml:"camera"`
	Window    WindowConfig    `mapstructure:"window" yaml:"window"`
	Pointer   PointerConfig   `mapstructure:"pointer" yaml:"pointer"`
	Logger    LoggerConfig    `mapstructure:"logger" yaml:"logger"`
	// Seed fixes particle placement; 0 picks a time-based seed.
	Seed int64 `mapstructure:"seed" yaml:"seed"`
}

type CameraConfig struct {
	Tracker    camera.TrackerConfig `mapstructure:"tracker" yaml:"tracker"`
	Projection camera.Projection    `mapstructure:"projection" yaml:"projection"`
	PositionZ  float64              `mapstructure:"positionZ" yaml:"positionZ"`
}

type WindowConfig struct {
	Width     int     `mapstructure:"width" yaml:"width"`
	Height    int     `mapstructure:"height" yaml:"height"`
	Title     string  `mapstructure:"title" yaml:"title"`
	TargetFPS int     `mapstructure:"targetFPS" yaml:"targetFPS"`
	PointSize float64 `mapstructure:"pointSize" yaml:"pointSize"`
	Color     string  `mapstructure:"color" yaml:"color"`
	Opacity   float64 `mapstructure:"opacity" yaml:"opacity"`
}

type PointerConfig struct {
	// Global reads the pointer from the X11 root window instead of the
	// application window.
	Global bool    `mapstructure:"global" yaml:"global"`
	PollHz float64 `mapstructure:"pollHz" yaml:"pollHz"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	Format     string `mapstructure:"format" yaml:"format"`
	File       string `mapstructure:"file" yaml:"file"`
	MaxSizeMB  int    `mapstructure:"maxSizeMB" yaml:"maxSizeMB"`
	MaxBackups int    `mapstructure:"maxBackups" yaml:"maxBackups"`
	MaxAgeDays int    `mapstructure:"maxAgeDays" yaml:"maxAgeDays"`
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

func (l LoggerConfig) Options() utils.LogOptions {
	return utils.LogOptions{
		Level:      l.Level,
		Format:     l.Format,
		File:       l.File,
		MaxSizeMB:  l.MaxSizeMB,
		MaxBackups: l.MaxBackups,
		MaxAgeDays: l.MaxAgeDays,
		Compress:   l.Compress,
	}
}

func Default() Config {
	return Config{
		Particles: particle.DefaultConfig(),
		Camera: CameraConfig{
			Tracker:    camera.DefaultTrackerConfig(),
			Projection: camera.DefaultProjection(),
			PositionZ:  5,
		},
		Window: WindowConfig{
			Width:     1280,
			Height:    720,
			Title:     "cursor-driven-escape",
			TargetFPS: 60,
			PointSize: 1.5,
			Color:     "#e4e4e7",
			Opacity:   0.75,
		},
		Pointer: PointerConfig{PollHz: 120},
		Logger: LoggerConfig{
			Level:      "warn",
			Format:     "console",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
	}
}

// SetDefaults registers every default on v so that environment variables
// and flags can override individual keys.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("particles.count", d.Particles.Count)
	v.SetDefault("particles.avoidRadius", d.Particles.AvoidRadius)
	v.SetDefault("particles.bounds.width", d.Particles.Bounds.Width)
	v.SetDefault("particles.bounds.height", d.Particles.Bounds.Height)

	v.SetDefault("camera.tracker.bounds.width", d.Camera.Tracker.Bounds.Width)
	v.SetDefault("camera.tracker.bounds.height", d.Camera.Tracker.Bounds.Height)
	v.SetDefault("camera.tracker.lerpSpeed", d.Camera.Tracker.LerpSpeed)
	v.SetDefault("camera.projection.orthographic", d.Camera.Projection.Orthographic)
	v.SetDefault("camera.projection.zoom", d.Camera.Projection.Zoom)
	v.SetDefault("camera.projection.near", d.Camera.Projection.Near)
	v.SetDefault("camera.projection.far", d.Camera.Projection.Far)
	v.SetDefault("camera.projection.fov", d.Camera.Projection.Fov)
	v.SetDefault("camera.positionZ", d.Camera.PositionZ)

	v.SetDefault("window.width", d.Window.Width)
	v.SetDefault("window.height", d.Window.Height)
	v.SetDefault("window.title", d.Window.Title)
	v.SetDefault("window.targetFPS", d.Window.TargetFPS)
	v.SetDefault("window.pointSize", d.Window.PointSize)
	v.SetDefault("window.color", d.Window.Color)
	v.SetDefault("window.opacity", d.Window.Opacity)

	v.SetDefault("pointer.global", d.Pointer.Global)
	v.SetDefault("pointer.pollHz", d.Pointer.PollHz)

	v.SetDefault("logger.level", d.Logger.Level)
	v.SetDefault("logger.format", d.Logger.Format)
	v.SetDefault("logger.file", d.Logger.File)
	v.SetDefault("logger.maxSizeMB", d.Logger.MaxSizeMB)
	v.SetDefault("logger.maxBackups", d.Logger.MaxBackups)
	v.SetDefault("logger.maxAgeDays", d.Logger.MaxAgeDays)
	v.SetDefault("logger.compress", d.Logger.Compress)

	v.SetDefault("seed", d.Seed)
}

// Read points v at file, or at config.yaml in the standard directories
// when file is empty, and reads it. A missing default file is not an error.
func Read(v *viper.Viper, file string) error {
	SetDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		for _, dir := range utils.ConfigDirs(AppName) {
			v.AddConfigPath(dir)
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
		utils.Debug("No config file found, using defaults")
		return nil
	}
	utils.Info("Using config file: %s", v.ConfigFileUsed())
	return nil
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := c.Particles.Validate(); err != nil {
		return err
	}
	if err := c.Camera.Tracker.Validate(); err != nil {
		return err
	}

	p := c.Camera.Projection
	if !(p.Zoom > 0) {
		return fmt.Errorf("camera zoom must be positive, got %v", p.Zoom)
	}
	if !(p.Near > 0) || !(p.Far > p.Near) {
		return fmt.Errorf("camera clip planes invalid: near %v, far %v", p.Near, p.Far)
	}
	if !p.Orthographic && !(p.Fov > 0 && p.Fov < 180) {
		return fmt.Errorf("camera fov must be in (0,180), got %v", p.Fov)
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size invalid: %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.TargetFPS <= 0 {
		return fmt.Errorf("target fps must be positive, got %d", c.Window.TargetFPS)
	}
	if c.Window.Opacity < 0 || c.Window.Opacity > 1 {
		return fmt.Errorf("opacity must be in [0,1], got %v", c.Window.Opacity)
	}
	if _, err := ParseHexColor(c.Window.Color); err != nil {
		return err
	}
	if c.Pointer.PollHz <= 0 {
		return fmt.Errorf("pointer poll rate must be positive, got %v", c.Pointer.PollHz)
	}
	return nil
}

// DriverOptions builds the simulation options for a viewport of the
// configured window size.
func (c Config) DriverOptions() driver.Options {
	return driver.Options{
		Particles:  c.Particles,
		Tracker:    c.Camera.Tracker,
		Projection: c.Camera.Projection,
		CameraZ:    c.Camera.PositionZ,
		ViewportW:  float64(c.Window.Width),
		ViewportH:  float64(c.Window.Height),
	}
}

func (c Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
