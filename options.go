package cubestate

import (
	"io"

	"github.com/charmbracelet/log"
)

// Option configures Session behavior.
type Option func(*config)

type config struct {
	history bool
	logger  *log.Logger
}

func defaultConfig() *config {
	return &config{
		history: true,
		logger:  log.New(io.Discard),
	}
}

// WithHistory enables or disables move history tracking.
// When enabled (default), applied moves are kept for Moves and Undo.
// Disable this for long-running sessions to bound memory.
func WithHistory(enabled bool) Option {
	return func(c *config) {
		c.history = enabled
	}
}

// WithLogger sets the logger used for debug output of applied moves.
// The default logger discards everything.
func WithLogger(l *log.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
