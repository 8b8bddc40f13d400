package world

import (
	"github.com/rs/zerolog"
)

// Option represents an option that can be used to augment how the World will
// be created.
type Option func(*World)

// WithNamespace sets the World's namespace. The default is "world". The
// namespace identifies the world in logs and in the allocator's ownership
// records.
func WithNamespace(namespace string) Option {
	return func(w *World) {
		if namespace != "" {
			w.namespace = namespace
		}
	}
}

// WithLogger sets the logger the world derives its namespace-scoped logger
// from. The default is the global zerolog logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(w *World) {
		w.Logger = logger
	}
}
