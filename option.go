package lifecycle

import (
	"github.com/rs/zerolog"
)

// Option represents an option that can be used to augment how the Allocator
// will behave.
type Option func(*Allocator)

// WithDefaultSize sets the default ID capacity. The default is 100000. This
// is the capacity the allocator starts with and returns to on Reset; it also
// anchors the recycle threshold, which is a fraction of this value.
func WithDefaultSize(size int) Option {
	return func(a *Allocator) {
		if size > 0 {
			a.defaultSize = size
		}
	}
}

// WithRecycleThreshold sets the fraction of the default capacity the recycle
// pool must exceed before removed IDs are reused. The default is 0.01. Values
// outside [0, 1] are ignored.
func WithRecycleThreshold(threshold float64) Option {
	return func(a *Allocator) {
		if threshold >= 0 && threshold <= 1 {
			a.reuseThreshold = threshold
		}
	}
}

// WithLogger sets the logger used for capacity and reset events. The default
// is the global zerolog logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *Allocator) {
		a.Logger = logger
	}
}
