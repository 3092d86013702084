package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/abhisek/orientation/internal/config"
)

// Off disables file logging when used as the log file name.
const Off = "off"

// New builds a logger writing JSON lines to a rotating file. The TUI owns
// stdout, so nothing is written to the console. The returned function
// flushes and closes the file.
func New(cfg *config.Config) (*zap.Logger, func(), error) {
	lc := cfg.Log
	if lc.File == "" || strings.EqualFold(lc.File, Off) {
		return zap.NewNop(), func() {}, nil
	}

	level, err := zapcore.ParseLevel(lc.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("parse log level %q: %w", lc.Level, err)
	}

	if err := os.MkdirAll(filepath.Dir(lc.File), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}

	rotator := &lumberjack.Logger{
		Filename:   lc.File,
		MaxSize:    lc.MaxSizeMB,
		MaxBackups: lc.MaxBackups,
		MaxAge:     lc.MaxAgeDays,
		Compress:   true,
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	encoder := zapcore.NewJSONEncoder(encoderConfig)
	if cfg.IsDevelopment() {
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(rotator), level)
	opts := []zap.Option{zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel)}
	if cfg.IsDevelopment() {
		opts = append(opts, zap.Development())
	}

	log := zap.New(core, opts...).With(zap.Int("pid", os.Getpid()))
	closeFn := func() {
		_ = log.Sync()
		_ = rotator.Close()
	}
	return log, closeFn, nil
}
