package utils

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	DebugMode      bool
	ShowRaylibInfo bool
	ShowDebugUI    bool

	// RunID tags every entry written during this process lifetime.
	RunID = uuid.NewString()
)

func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	}
	return "UNKNOWN"
}

func (l LogLevel) zapLevel() zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelInfo:
		return zapcore.InfoLevel
	case LevelError:
		return zapcore.ErrorLevel
	}
	return zapcore.WarnLevel
}

func ParseLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "error":
		return LevelError
	}
	return LevelWarn
}

// LogOptions selects the log level, console encoding and an optional
// rotating log file.
type LogOptions struct {
	Level      string
	Format     string // "console" or "json"
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

var (
	mu     sync.RWMutex
	level  = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	sugar  = newSugar(zapcore.Lock(os.Stderr), "console", nil)
	closer io.Closer
)

func encoder(format string) zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	if format == "json" {
		return zapcore.NewJSONEncoder(cfg)
	}
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(cfg)
}

func newSugar(console zapcore.WriteSyncer, format string, file zapcore.WriteSyncer) *zap.SugaredLogger {
	cores := []zapcore.Core{zapcore.NewCore(encoder(format), console, level)}
	if file != nil {
		cores = append(cores, zapcore.NewCore(encoder("json"), file, level))
	}
	logger := zap.New(zapcore.NewTee(cores...), zap.AddStacktrace(zapcore.ErrorLevel))
	return logger.Sugar().With("run", RunID)
}

// InitLogger replaces the process logger. Console output goes to console;
// when opts.File is set entries are also written as JSON to a rotating file.
func InitLogger(opts LogOptions, console io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	lvl := ParseLevel(opts.Level)
	if DebugMode {
		lvl = LevelDebug
	}
	level.SetLevel(lvl.zapLevel())

	var file zapcore.WriteSyncer
	if closer != nil {
		closer.Close()
		closer = nil
	}
	if opts.File != "" {
		lj := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   opts.Compress,
		}
		closer = lj
		file = zapcore.AddSync(lj)
	}

	if sugar != nil {
		_ = sugar.Sync()
	}
	sugar = newSugar(zapcore.Lock(zapcore.AddSync(console)), opts.Format, file)
}

func CurrentLevel() LogLevel {
	switch level.Level() {
	case zapcore.DebugLevel:
		return LevelDebug
	case zapcore.InfoLevel:
		return LevelInfo
	case zapcore.WarnLevel:
		return LevelWarn
	}
	return LevelError
}

// SyncLogger flushes buffered entries and closes the rotating file, if any.
func SyncLogger() {
	mu.Lock()
	defer mu.Unlock()
	_ = sugar.Sync()
	if closer != nil {
		closer.Close()
		closer = nil
	}
}

func logger() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

func Info(format string, v ...interface{})  { logger().Infof(format, v...) }
func Debug(format string, v ...interface{}) { logger().Debugf(format, v...) }
func Warn(format string, v ...interface{})  { logger().Warnf(format, v...) }
func Error(format string, v ...interface{}) { logger().Errorf(format, v...) }

// With returns a structured logger carrying the given key/value pairs.
func With(kv ...interface{}) *zap.SugaredLogger {
	return logger().With(kv...)
}

func RaylibLogCallback(level int, text string) {
	formattedText := "[RAYLIB] " + text
	switch level {
	case 1, 2: // LOG_TRACE, LOG_DEBUG
		Debug("%s", formattedText)
	case 3: // LOG_INFO
		if ShowRaylibInfo {
			Info("%s", formattedText)
		} else {
			Debug("%s", formattedText)
		}
	case 4: // LOG_WARNING
		Warn("%s", formattedText)
	case 5, 6: // LOG_ERROR, LOG_FATAL
		Error("%s", formattedText)
	}
}
