// Package logging wires up logcore's zap logger from a simple level string,
// grounded on the "production vs. development preset" pattern used to
// provide a logger elsewhere in the retrieved pack.
package logging

import "go.uber.org/zap"

// New builds a zap.Logger for level, one of "debug", "info", "warn", "error"
// (case-insensitive). An unrecognized level falls back to "info" rather than
// erroring, since a bad log-level flag should never prevent the store from
// starting.
func New(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = parseLevel(level)
	cfg.Encoding = "console"
	cfg.EncoderConfig.TimeKey = "ts"
	return cfg.Build()
}

func parseLevel(level string) zap.AtomicLevel {
	l := zap.NewAtomicLevel()
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l.SetLevel(zap.InfoLevel)
	}
	return l
}
