package log

import (
	"context"

	"github.com/rs/zerolog"
)

// GooseLogger routes goose migration output through the context logger.
type GooseLogger struct {
	l *zerolog.Logger
}

func NewGooseLoggerFromCtx(ctx context.Context) *GooseLogger {
	return &GooseLogger{l: FromCtx(ctx)}
}

func (g *GooseLogger) Printf(format string, v ...any) {
	g.l.Info().Msgf(format, v...)
}

func (g *GooseLogger) Fatalf(format string, v ...any) {
	g.l.Fatal().Msgf(format, v...)
}
