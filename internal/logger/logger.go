package logger

import "go.uber.org/zap"

// New returns a development logger when verbose diagnostics are wanted and
// a no-op logger otherwise. User-facing output stays on stdout either way.
func New(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewNop(), nil
}
