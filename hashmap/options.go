package hashmap

import (
	"github.com/rs/zerolog"

	"github.com/pavanmanishd/memkit/hashing"
)

type options[K any] struct {
	hasher hashing.Hasher[K]
	log    zerolog.Logger
	scrub  bool
}

// Option configures a Map or Set.
type Option[K any] func(*options[K])

// WithHasher replaces the hasher resolved by hashing.For.
func WithHasher[K any](h hashing.Hasher[K]) Option[K] {
	return func(o *options[K]) { o.hasher = h }
}

// WithLogger sets the logger for table growth events.
func WithLogger[K any](l zerolog.Logger) Option[K] {
	return func(o *options[K]) { o.log = l }
}

// WithScrub fills removed slots, cleared tables and tables dropped by growth
// or Deinit with memkit.ScrubByte. Tables on Heap are never scrubbed.
func WithScrub[K any](enabled bool) Option[K] {
	return func(o *options[K]) { o.scrub = enabled }
}

func buildOptions[K any](opts []Option[K]) options[K] {
	o := options[K]{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.hasher == nil {
		o.hasher = hashing.For[K]()
	}
	return o
}
