package cast

import (
	"github.com/quartzdb/dtype/internal/dtype"
)

// BoxTemporal converts a raw fixed-width temporal value into its
// structured scalar wrapper, unless the caller's declared type is
// explicitly object - then the raw value is left untouched.
func BoxTemporal(v any, declared dtype.Descriptor) dtype.Scalar {
	s, ok := dtype.AsScalar(v)
	if !ok {
		return dtype.Object{Value: v}
	}
	if declared.IsObject() {
		return s
	}
	switch x := s.(type) {
	case dtype.Instant:
		return x
	case dtype.Duration:
		return x
	case dtype.Int:
		// A raw count is interpreted at the declared resolution.
		switch declared.Kind {
		case dtype.KindInstant:
			return dtype.Instant{Unit: declared.Unit, Count: int64(x), Zone: declared.Zone}
		case dtype.KindDuration:
			return dtype.Duration{Unit: declared.Unit, Count: int64(x)}
		}
	}
	return s
}

// UnboxTemporal maps a structured temporal scalar back to the count
// representation of the target descriptor. The generic missing marker
// (and every other null) maps to the kind-appropriate sentinel. Unboxing
// a duration against an instant target, or vice versa, is a cross-kind
// reinterpretation and fails.
func UnboxTemporal(s dtype.Scalar, target dtype.Descriptor) (int64, error) {
	if !target.Kind.IsTemporal() {
		return 0, dtype.NewConfigurationError("unbox target must be a temporal type")
	}
	if !target.HasUnit() {
		return 0, dtype.NewMissingUnitError(target.Kind)
	}

	switch v := s.(type) {
	case dtype.Instant:
		if target.Kind != dtype.KindInstant {
			return 0, dtype.NewIncompatibleCast(dtype.InstantType(v.Unit), target)
		}
		if v.Count == dtype.NullCount {
			return dtype.NullCount, nil
		}
		return dtype.ConvertUnit(v.Count, v.Unit, target.Unit), nil
	case dtype.Duration:
		if target.Kind != dtype.KindDuration {
			return 0, dtype.NewIncompatibleCast(dtype.DurationType(v.Unit), target)
		}
		if v.Count == dtype.NullCount {
			return dtype.NullCount, nil
		}
		return dtype.ConvertUnit(v.Count, v.Unit, target.Unit), nil
	}

	if dtype.IsNull(s) {
		return dtype.NullCount, nil
	}
	return 0, dtype.NewConfigurationError("value is not a temporal scalar")
}
