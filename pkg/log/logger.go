// Package log provides structured logging for quantfit estimation runs.
//
// The front-end is the standard log/slog API. The handler chain attaches
// stack traces extracted from cockroachdb/errors values, and the warning
// path of pkg/errors can be bridged onto a zerolog logger so that warning
// types carrying zerolog object marshalers are emitted as structured events.
package log

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/rs/zerolog"

	"github.com/Farmhouse121/quantfit/pkg/errors"
)

// SetupLogger installs the default slog logger for the process.
func SetupLogger(loglevel string) {
	ops := slog.HandlerOptions{
		AddSource: true,
		Level:     ToLogLevel(loglevel),
	}
	handler := slog.NewJSONHandler(os.Stdout, &ops)
	errFmtHandler := WrapByErrFmtHandler(handler)
	slog.SetDefault(slog.New(errFmtHandler))
}

// ToLogLevel converts a level name to a slog.Level.
func ToLogLevel(level string) slog.Level {
	switch level {
	case "info":
		return slog.LevelInfo
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		panic(fmt.Sprintf("invalid log level :%s", level))
	}
}

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// ErrAttr is a wrapper to pass err to slog.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}

// BridgeWarnings routes pkg/errors warnings onto a zerolog logger. Warning
// types that implement zerolog.LogObjectMarshaler are embedded as structured
// objects; anything else is logged as a plain error field.
func BridgeWarnings(zl zerolog.Logger) {
	errors.SetZerologWarnFunc(func(warning error) {
		ev := zl.Warn()
		if m, ok := warning.(zerolog.LogObjectMarshaler); ok {
			ev.EmbedObject(m).Msg("warning")
			return
		}
		ev.Err(warning).Msg("warning")
	})
}
