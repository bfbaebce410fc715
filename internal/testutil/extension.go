package testutil

import (
	"errors"

	"github.com/quartzdb/dtype/internal/dtype"
)

// CategoryType is a minimal extension capability used by engine tests.
// It joins with itself and with signed integer descriptors, builds its
// array form as a plain value slice, and declares the generic missing
// marker as its null.
type CategoryType struct {
	// FailFromSequence forces FromSequence to error, for exercising the
	// construction failure path.
	FailFromSequence bool
}

func (CategoryType) Name() string { return "category" }

func (CategoryType) NullValue() dtype.Scalar { return dtype.Missing{} }

func (c CategoryType) CommonWith(types []dtype.Descriptor) (dtype.Descriptor, bool) {
	for _, t := range types {
		switch t.Kind {
		case dtype.KindExtension:
			if t.Ext == nil || t.Ext.Name() != c.Name() {
				return dtype.Descriptor{}, false
			}
		case dtype.KindInt:
		default:
			return dtype.Descriptor{}, false
		}
	}
	return dtype.ExtensionOf(c), true
}

func (c CategoryType) FromSequence(seq []any, d dtype.Descriptor, copy bool) (any, error) {
	if c.FailFromSequence {
		return nil, errors.New("category construction failed")
	}
	if copy {
		seq = append([]any(nil), seq...)
	}
	return seq, nil
}
