package cast

import "github.com/quartzdb/dtype/internal/dtype"

// DeprecationFunc receives the deprecation notice emitted by paths that
// still execute but are scheduled to become hard errors.
type DeprecationFunc func(msg string)

// Options controls a nan-safe cast.
type Options struct {
	// Copy forces a fresh output buffer even when a view would be legal.
	// Either side being object kind forces a copy regardless.
	Copy bool

	// SkipNulls leaves nulls untouched when casting to a string target.
	// When false, nulls are stringified like any other element.
	SkipNulls bool

	// Parser resolves temporal strings when re-typing object arrays.
	// Nil uses the stdlib RFC 3339 fallback.
	Parser dtype.TemporalParser

	// Deprecate receives deprecation notices. Nil discards them.
	Deprecate DeprecationFunc
}

func (o Options) deprecate(msg string) {
	if o.Deprecate != nil {
		o.Deprecate(msg)
	}
}
