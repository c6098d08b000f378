// Package logging configures the process logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New returns a logger that writes JSON to file, or to w when file is
// empty. Events carrying a context get its run and document fields. The
// returned closer releases the file.
//
// The level parameter can be one of: trace, debug, info, warn, error, fatal.
func New(level, file string, w io.Writer) (zerolog.Logger, func(), error) {
	closer := func() {}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, closer, err
	}

	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return zerolog.Logger{}, closer, fmt.Errorf("create logs dir: %w", err)
		}
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Logger{}, closer, err
		}
		closer = func() { _ = f.Close() }
		w = f
	}
	if w == nil {
		w = io.Discard
	}

	l := zerolog.New(w).
		With().
		Timestamp().
		Logger().
		Level(lvl).
		Hook(ContextHook{})

	return l, closer, nil
}

// SetDefault installs l as the global logger used by Component.
func SetDefault(l zerolog.Logger) {
	log.Logger = l
}

// Component creates a logger tagged with a component name.
func Component(name string) zerolog.Logger {
	return log.With().Str("cmp", name).Logger()
}
