package deckicon

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var logger atomic.Pointer[zap.Logger]

func init() {
	logger.Store(zap.NewNop())
}

// SetLogger sets the logger used by the package.
// By default nothing is logged. Passing nil restores the no-op logger.
//
// SetLogger is safe for concurrent use.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger.Store(l)
}

// Logger returns the logger used by the package.
func Logger() *zap.Logger {
	return logger.Load()
}
