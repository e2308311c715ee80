package logger

import (
	"sync"
)

// Level strings accepted from configuration (log_level in config.yml).
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

var (
	global *Logger
	once   sync.Once
)

// Get returns the process-wide logger, building it on first use at the
// given level. Later calls return the same instance and ignore the level.
func Get(level string) *Logger {
	once.Do(func() {
		global = newZapLogger(level)
	})
	return global
}
