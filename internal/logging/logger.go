package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options describes logger construction parameters.
type Options struct {
	// Verbose enables debug output; otherwise only warnings and errors
	// are written.
	Verbose bool

	// Output receives log lines. Defaults to os.Stderr.
	Output io.Writer
}

// New constructs a console zap logger. Diagnostics go to stderr so the
// progress lines on stdout stay readable.
func New(opts Options) *zap.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	level := zapcore.WarnLevel
	if opts.Verbose {
		level = zapcore.DebugLevel
	}

	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderCfg.CallerKey = ""

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(out),
		level,
	)
	return zap.New(core)
}

// WithShow returns a child logger tagged with a show number.
func WithShow(logger *zap.Logger, number int) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger.With(zap.Int("show", number))
}
