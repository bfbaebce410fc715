package dtype

// ExtensionType is the capability contract an extension type implements.
// The engine depends on exactly these operations and never on a concrete
// extension implementation; instances are injected through Descriptor.Ext.
type ExtensionType interface {
	// Name uniquely identifies the extension type. Descriptors of the
	// same extension compare equal by name.
	Name() string

	// NullValue is the extension's declared null marker.
	NullValue() Scalar

	// CommonWith answers the "common dtype with list" capability: given
	// the full deduplicated type list being joined, return the joined
	// descriptor, or false if this extension has no answer.
	CommonWith(types []Descriptor) (Descriptor, bool)

	// FromSequence answers the "construct array from sequence"
	// capability: build the extension's array representation from plain
	// element values. The copy flag is passed through from the caller.
	FromSequence(seq []any, d Descriptor, copy bool) (any, error)
}

// TemporalParser is the string-to-temporal parser contract. The engine
// consumes it when re-typing object arrays; calendar-aware parsing lives
// behind it, outside this module.
type TemporalParser func(values []any, strict bool) ([]int64, Unit, error)
