package cast

import (
	"math"

	"github.com/quartzdb/dtype/internal/array"
	"github.com/quartzdb/dtype/internal/dtype"
	"github.com/quartzdb/dtype/internal/infer"
)

// downcastTolerance is the absolute tolerance of the numeric round-trip
// check: zero relative tolerance, small fixed absolute slack. The object
// path uses exact equality instead; the two are not numerically identical
// at extreme magnitudes and both are kept deliberately.
const downcastTolerance = 1e-8

// DowncastInfer classifies an object-kind result by value inspection and
// attempts the classified type. Non-object inputs attempt their
// conventional narrowing. The advisor is heuristic: on any doubt the
// input comes back unchanged, never an error.
func DowncastInfer(a *array.TypedArray) *array.TypedArray {
	target := dtype.ObjectType()
	round := false

	if a.Desc().IsObject() {
		switch infer.Classify(a.Objects(), false) {
		case infer.KindBoolean:
			target = dtype.BoolType()
		case infer.KindInteger:
			target = dtype.Int64()
		case infer.KindInstant:
			target = dtype.InstantType(dtype.UnitNano)
		case infer.KindDuration:
			target = dtype.DurationType(dtype.UnitNano)
		case infer.KindFloating, infer.KindMixedIntegerFloat:
			target = dtype.Int64()
			round = true
		default:
			return a
		}
	} else if a.Desc().Kind == dtype.KindFloat && infer.LooksIntegral(a) {
		target = dtype.Int64()
		round = true
	} else {
		return a
	}

	if target.Kind.IsTemporal() {
		out, err := Array(a, target, Options{})
		if err != nil {
			return a
		}
		return out
	}
	return Downcast(a, target, round)
}

// Downcast attempts to narrow a computed result to an explicit target,
// accepting the conversion only if round-tripping back equals the
// pre-conversion result. Rejections return the input unchanged.
//
// The optional rounding pre-step serves aggregate results that carry
// float noise (e.g. sums) and is applied before anything is compared.
func Downcast(a *array.TypedArray, target dtype.Descriptor, round bool) *array.TypedArray {
	src := a.Desc()

	// No gratuitous upcast: same kind at equal-or-narrower width on a
	// non-empty array stays as it is.
	if src.Kind == target.Kind && src.Width <= target.Width && a.Len() > 0 {
		return a
	}

	switch target.Kind {
	case dtype.KindBool, dtype.KindInt, dtype.KindUint:
		if a.Len() == 0 {
			out, err := Array(maybeRound(a, round), target, Options{})
			if err != nil {
				return a
			}
			return out
		}
		if a.HasNull() {
			return a
		}
		if !comparableSample(a) {
			return a
		}

		// Rounding applies to the converted side only; the comparison is
		// always against the pre-conversion result.
		converted, err := Array(maybeRound(a, round), target, Options{})
		if err != nil {
			return a
		}
		if roundTripEqual(a, converted) {
			return converted
		}
		return a
	case dtype.KindFloat:
		if src.Kind == dtype.KindBool || src.Kind == dtype.KindString || src.IsObject() {
			return a
		}
		out, err := Array(a, target, Options{})
		if err != nil {
			return a
		}
		return out
	case dtype.KindInstant, dtype.KindDuration:
		// Integer or float results reinterpret as counts.
		if src.Kind != dtype.KindInt && src.Kind != dtype.KindFloat {
			return a
		}
		counts := make([]int64, a.Len())
		for i := 0; i < a.Len(); i++ {
			if a.IsNull(i) {
				counts[i] = dtype.NullCount
				continue
			}
			if src.Kind == dtype.KindInt {
				counts[i] = a.Ints()[i]
			} else {
				counts[i] = int64(a.Floats()[i])
			}
		}
		out, err := array.NewTemporal(target, counts)
		if err != nil {
			return a
		}
		return out
	}
	return a
}

// comparableSample checks the first element: only plain numeric or
// boolean comparables qualify for the round-trip check. Object arrays may
// carry anything.
func comparableSample(a *array.TypedArray) bool {
	if a.Len() == 0 {
		return false
	}
	if !a.Desc().IsObject() {
		return a.Desc().Kind.IsNumeric() || a.Desc().Kind == dtype.KindBool
	}
	s, ok := dtype.AsScalar(a.Objects()[0])
	if !ok {
		return false
	}
	switch s.(type) {
	case dtype.Int, dtype.Uint, dtype.Float, dtype.Bool:
		return true
	}
	return false
}

func maybeRound(a *array.TypedArray, round bool) *array.TypedArray {
	if !round || a.Desc().Kind != dtype.KindFloat {
		return a
	}
	out := a.Clone()
	floats := out.Floats()
	for i := range floats {
		floats[i] = math.RoundToEven(floats[i])
	}
	return out
}

// roundTripEqual compares pre- and post-conversion values: exact equality
// for object-kind comparisons, absolute closeness for numeric ones.
func roundTripEqual(before, after *array.TypedArray) bool {
	n := before.Len()
	exact := before.Desc().IsObject() || after.Desc().IsObject()
	for i := 0; i < n; i++ {
		b := numericValue(before, i)
		c := numericValue(after, i)
		if exact {
			if b != c {
				return false
			}
			continue
		}
		if math.Abs(b-c) > downcastTolerance {
			return false
		}
	}
	return true
}

func numericValue(a *array.TypedArray, i int) float64 {
	switch a.Desc().Kind {
	case dtype.KindInt:
		return float64(a.Ints()[i])
	case dtype.KindUint:
		return float64(a.Uints()[i])
	case dtype.KindFloat:
		return a.Floats()[i]
	case dtype.KindBool:
		if a.Bools()[i] {
			return 1
		}
		return 0
	case dtype.KindObject:
		s, ok := dtype.AsScalar(a.Objects()[i])
		if !ok {
			return math.NaN()
		}
		switch v := s.(type) {
		case dtype.Int:
			return float64(v)
		case dtype.Uint:
			return float64(v)
		case dtype.Float:
			return float64(v)
		case dtype.Bool:
			if v {
				return 1
			}
			return 0
		}
	}
	return math.NaN()
}

// ResultDescriptor returns the desired result type of an aggregation
// given the input type and how the result was computed. Sum-like
// aggregations on booleans widen to int64; mean-like ones widen to
// float64.
func ResultDescriptor(d dtype.Descriptor, how string) dtype.Descriptor {
	switch how {
	case "add", "cumsum", "sum", "prod":
		if d.Kind == dtype.KindBool {
			return dtype.Int64()
		}
	case "mean", "median", "var":
		if d.Kind == dtype.KindBool {
			return dtype.Float64()
		}
	}
	return d
}
