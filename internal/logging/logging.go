// Package logging renders diagnostics through zap.
package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/LegacyCodeHQ/bagsakan/diag"
)

// DebugEnv enables verbose diagnostics when set to any value.
const DebugEnv = "BAGSAKAN_DEBUG"

// DebugEnabled reports whether DebugEnv is set.
func DebugEnabled() bool {
	_, ok := os.LookupEnv(DebugEnv)
	return ok
}

// New builds a console logger writing to w. debug lowers the level to Debug.
func New(w io.Writer, debug bool) *zap.Logger {
	level := zap.InfoLevel
	if debug {
		level = zap.DebugLevel
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = ""
	encoderConfig.CallerKey = ""
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	return zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(w),
		level,
	))
}

// Sink logs diagnostics. Without debug only missing type declarations and
// file failures are shown; with debug every diagnostic is logged.
type Sink struct {
	logger *zap.Logger
	debug  bool
}

// NewSink wraps logger.
func NewSink(logger *zap.Logger, debug bool) *Sink {
	return &Sink{logger: logger, debug: debug}
}

func (s *Sink) Report(d diag.Diagnostic) {
	fields := []zap.Field{zap.String("kind", string(d.Kind)), zap.String("file", d.Path)}
	if d.Detail != "" {
		fields = append(fields, zap.String("detail", d.Detail))
	}

	switch d.Kind {
	case diag.NoTypeDeclarations:
		s.logger.Warn("no TypeScript declarations found", fields...)
	case diag.ParseFailure:
		s.logger.Warn("skipping file that failed to parse", fields...)
	case diag.ReadFailure:
		s.logger.Warn("skipping unreadable file", fields...)
	default:
		if s.debug {
			s.logger.Debug(string(d.Kind), fields...)
		}
	}
}
