// Package infer classifies bare scalars and array-likes into type
// descriptors. It implements the generic kind classifier vocabulary the
// rest of the engine consumes, plus temporal re-inference of object
// arrays.
package infer

import (
	"math"
	"time"

	"github.com/quartzdb/dtype/internal/array"
	"github.com/quartzdb/dtype/internal/dtype"
)

// InferredKind is the classifier's answer vocabulary.
type InferredKind string

const (
	KindBoolean           InferredKind = "boolean"
	KindInteger           InferredKind = "integer"
	KindFloating          InferredKind = "floating"
	KindMixedIntegerFloat InferredKind = "mixed-integer-float"
	KindComplex           InferredKind = "complex"
	KindString            InferredKind = "string"
	KindBytes             InferredKind = "bytes"
	KindInstant           InferredKind = "instant"
	KindDuration          InferredKind = "duration"
	KindMixed             InferredKind = "mixed"
	KindMixedInteger      InferredKind = "mixed-integer"
	KindNullOnly          InferredKind = "null-only"
	KindEmpty             InferredKind = "empty"
)

// FromScalar interprets the descriptor of a bare scalar, returning the
// descriptor together with the resolved scalar value.
//
// When extended is false, values whose natural type is outside the plain
// storage kinds (zoned instants) infer as object with the value kept
// as-is; extended inference retains their zone.
func FromScalar(v any, extended bool) (dtype.Descriptor, dtype.Scalar, error) {
	s, ok := dtype.AsScalar(v)
	if !ok {
		return dtype.Descriptor{}, nil, dtype.NewConfigurationError("invalid array passed to scalar inference")
	}

	switch x := s.(type) {
	case dtype.Bool:
		return dtype.BoolType(), s, nil
	case dtype.Int:
		return dtype.Int64(), s, nil
	case dtype.Uint:
		return dtype.Uint64(), s, nil
	case dtype.Float:
		return dtype.Float64(), s, nil
	case dtype.NaN:
		return dtype.Float64(), s, nil
	case dtype.Complex:
		return dtype.Complex128(), s, nil
	case dtype.Str:
		// Strings infer as object, never as a fixed width guessed from
		// one value.
		return dtype.ObjectType(), s, nil
	case dtype.Instant:
		if x.Zone == "" || x.Count == dtype.NullCount {
			return dtype.InstantType(dtype.UnitNano),
				dtype.Instant{Unit: dtype.UnitNano, Count: dtype.ConvertUnit(x.Count, x.Unit, dtype.UnitNano)}, nil
		}
		if extended {
			return dtype.ZonedInstantType(dtype.UnitNano, x.Zone),
				dtype.Instant{Unit: dtype.UnitNano, Count: dtype.ConvertUnit(x.Count, x.Unit, dtype.UnitNano), Zone: x.Zone}, nil
		}
		return dtype.ObjectType(), s, nil
	case dtype.Duration:
		return dtype.DurationType(dtype.UnitNano),
			dtype.Duration{Unit: dtype.UnitNano, Count: dtype.ConvertUnit(x.Count, x.Unit, dtype.UnitNano)}, nil
	case dtype.NullTime:
		return dtype.InstantType(dtype.UnitNano),
			dtype.Instant{Unit: dtype.UnitNano, Count: dtype.NullCount}, nil
	}
	return dtype.ObjectType(), s, nil
}

// FromArray interprets the descriptor of an array-like. Typed arrays
// answer with their own descriptor; plain sequences are classified, with
// string/bytes/mixed classes pinned to object so nothing is coerced by
// stringification.
func FromArray(v any) (dtype.Descriptor, error) {
	switch arr := v.(type) {
	case *array.TypedArray:
		return arr.Desc(), nil
	case []any:
		return classifyToDescriptor(arr), nil
	}
	return dtype.Descriptor{}, dtype.NewConfigurationError("input must be array-like")
}

func classifyToDescriptor(values []any) dtype.Descriptor {
	switch Classify(values, true) {
	case KindBoolean:
		return dtype.BoolType()
	case KindInteger:
		return dtype.Int64()
	case KindFloating, KindMixedIntegerFloat:
		return dtype.Float64()
	case KindComplex:
		return dtype.Complex128()
	case KindInstant:
		return dtype.InstantType(dtype.UnitNano)
	case KindDuration:
		return dtype.DurationType(dtype.UnitNano)
	}
	return dtype.ObjectType()
}

// Classify reports the value class of a sequence using the generic kind
// vocabulary. With skipNull set, null markers do not influence the class;
// without it, any null alongside typed values degrades to mixed.
func Classify(values []any, skipNull bool) InferredKind {
	if len(values) == 0 {
		return KindEmpty
	}

	var (
		bools, ints, floats, complexes int
		strs, bytez                    int
		instants, durations            int
		nulls, others                  int
	)

	for _, v := range values {
		if _, isBytes := v.([]byte); isBytes {
			bytez++
			continue
		}
		s, ok := dtype.AsScalar(v)
		if !ok {
			others++
			continue
		}
		if dtype.IsNull(s) {
			// A null instant still tells us the family.
			switch s.(type) {
			case dtype.Instant:
				instants++
			case dtype.Duration:
				durations++
			default:
				nulls++
			}
			continue
		}
		switch s.(type) {
		case dtype.Bool:
			bools++
		case dtype.Int, dtype.Uint:
			ints++
		case dtype.Float:
			floats++
		case dtype.Complex:
			complexes++
		case dtype.Str:
			strs++
		case dtype.Instant:
			instants++
		case dtype.Duration:
			durations++
		default:
			others++
		}
	}

	typed := bools + ints + floats + complexes + strs + bytez + instants + durations + others
	if typed == 0 {
		return KindNullOnly
	}
	if !skipNull && nulls > 0 {
		// Nulls count as values: only float-compatible classes survive.
		switch {
		case typed == floats:
			return KindFloating
		case typed == ints || typed == ints+floats:
			return KindMixedIntegerFloat
		}
		return KindMixed
	}

	switch {
	case typed == bools:
		return KindBoolean
	case typed == ints:
		return KindInteger
	case typed == floats:
		return KindFloating
	case typed == ints+floats:
		return KindMixedIntegerFloat
	case typed == complexes || typed == complexes+floats+ints:
		return KindComplex
	case typed == strs:
		return KindString
	case typed == bytez:
		return KindBytes
	case typed == instants:
		return KindInstant
	case typed == durations:
		return KindDuration
	case ints > 0:
		return KindMixedInteger
	}
	return KindMixed
}

// LooksIntegral reports whether every non-null float in the array is an
// exact integer, for the downcast advisor's "floating that looks
// integral" classification.
func LooksIntegral(a *array.TypedArray) bool {
	if a.Desc().Kind != dtype.KindFloat {
		return false
	}
	for i, f := range a.Floats() {
		if a.IsNull(i) {
			continue
		}
		if f != math.Trunc(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// DefaultTemporalParser is the stdlib fallback for the string-to-temporal
// parser contract: RFC 3339 instants only. Calendar-aware parsing is a
// collaborator concern injected by callers.
func DefaultTemporalParser(values []any, strict bool) ([]int64, dtype.Unit, error) {
	out := make([]int64, len(values))
	for i, v := range values {
		s, ok := dtype.AsScalar(v)
		if ok && dtype.IsNull(s) {
			out[i] = dtype.NullCount
			continue
		}
		str, isStr := v.(string)
		if !isStr {
			if inst, isInst := s.(dtype.Instant); isInst {
				out[i] = dtype.ConvertUnit(inst.Count, inst.Unit, dtype.UnitNano)
				continue
			}
			if strict {
				return nil, dtype.UnitNone, dtype.NewConfigurationError("element is not a temporal string")
			}
			out[i] = dtype.NullCount
			continue
		}
		t, err := time.Parse(time.RFC3339Nano, str)
		if err != nil {
			if strict {
				return nil, dtype.UnitNone, dtype.NewConfigurationError("cannot parse temporal string " + str)
			}
			out[i] = dtype.NullCount
			continue
		}
		out[i] = t.UnixNano()
	}
	return out, dtype.UnitNano, nil
}
