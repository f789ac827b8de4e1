package asn1

/*
logger.go provides the ambient tracing hook used by the codecs. The
teacher library gates an equivalent facility behind the "asn1debug"
build tag (trc_on.go/trc_off.go, ll_on.go/ll_off.go), compiling two
different binaries depending on whether tracing is wanted. This package
instead takes a Logger at Codec construction time and defaults to a
no-op: the tracing calls are always compiled in, but cost nothing when
the caller doesn't supply a real logger, so there is no second build
configuration to keep in sync.
*/

import (
	"github.com/rs/zerolog"
)

// Logger is the leveled tracing sink consulted by Codec during
// Encode/Decode. Fields is a flat list of alternating key/value pairs,
// matching zerolog's chained-field style.
type Logger interface {
	Trace(msg string, fields ...any)
	Debug(msg string, fields ...any)
	Error(msg string, err error, fields ...any)
}

// NopLogger discards everything. It is the default Logger for a Codec
// constructed without WithLogger.
type NopLogger struct{}

func (NopLogger) Trace(string, ...any)        {}
func (NopLogger) Debug(string, ...any)        {}
func (NopLogger) Error(string, error, ...any) {}

// ZerologLogger adapts a zerolog.Logger to the Logger interface.
type ZerologLogger struct {
	Log zerolog.Logger
}

// NewZerologLogger returns a Logger backed by log.
func NewZerologLogger(log zerolog.Logger) ZerologLogger {
	return ZerologLogger{Log: log}
}

func (z ZerologLogger) Trace(msg string, fields ...any) {
	logWithFields(z.Log.Trace(), msg, fields...)
}

func (z ZerologLogger) Debug(msg string, fields ...any) {
	logWithFields(z.Log.Debug(), msg, fields...)
}

func (z ZerologLogger) Error(msg string, err error, fields ...any) {
	logWithFields(z.Log.Error().Err(err), msg, fields...)
}

func logWithFields(e *zerolog.Event, msg string, fields ...any) {
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		e = e.Interface(key, fields[i+1])
	}
	e.Msg(msg)
}
