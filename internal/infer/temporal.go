package infer

import (
	"math"

	spf13cast "github.com/spf13/cast"

	"github.com/quartzdb/dtype/internal/array"
	"github.com/quartzdb/dtype/internal/dtype"
)

// MaybeTemporal re-infers an object array as a well-typed temporal array
// when its elements are instants, durations, temporal strings, or nulls.
// Anything else returns the input unchanged. This is strict: a temporal
// value (not just nulls and strings) must actually be present, or the
// parser must resolve every element.
//
// A nil parser falls back to DefaultTemporalParser.
func MaybeTemporal(a *array.TypedArray, parser dtype.TemporalParser) *array.TypedArray {
	if !a.Desc().IsObject() || a.Len() == 0 {
		return a
	}
	if parser == nil {
		parser = DefaultTemporalParser
	}

	values := a.Objects()
	switch Classify(values, true) {
	case KindInstant:
		counts, unit, err := parser(values, false)
		if err != nil {
			return a
		}
		out, err := array.NewTemporal(dtype.InstantType(unit), counts)
		if err != nil {
			return a
		}
		return out
	case KindDuration:
		counts := make([]int64, len(values))
		for i, v := range values {
			s, _ := dtype.AsScalar(v)
			if dtype.IsNull(s) {
				counts[i] = dtype.NullCount
				continue
			}
			d, ok := s.(dtype.Duration)
			if !ok {
				return a
			}
			counts[i] = dtype.ConvertUnit(d.Count, d.Unit, dtype.UnitNano)
		}
		out, err := array.NewTemporal(dtype.DurationType(dtype.UnitNano), counts)
		if err != nil {
			return a
		}
		return out
	case KindString:
		counts, unit, err := parser(values, true)
		if err != nil {
			return a
		}
		out, err := array.NewTemporal(dtype.InstantType(unit), counts)
		if err != nil {
			return a
		}
		return out
	case KindNullOnly:
		counts := make([]int64, len(values))
		for i := range counts {
			counts[i] = dtype.NullCount
		}
		out, err := array.NewTemporal(dtype.InstantType(dtype.UnitNano), counts)
		if err != nil {
			return a
		}
		return out
	}
	return a
}

// SoftConvertOptions selects which conversions SoftConvert attempts.
// At least one must be enabled.
type SoftConvertOptions struct {
	Temporal bool
	Numeric  bool
	Copy     bool
	Parser   dtype.TemporalParser
}

// SoftConvert tries to coerce an object array to an inferred well-typed
// array, temporal first, then numeric. The input is returned unchanged
// when nothing converts, or when a numeric conversion would produce only
// nulls.
func SoftConvert(a *array.TypedArray, opts SoftConvertOptions) (*array.TypedArray, error) {
	if !opts.Temporal && !opts.Numeric {
		return nil, dtype.NewConfigurationError("at least one of temporal or numeric must be enabled")
	}
	if !a.Desc().IsObject() {
		return a, nil
	}

	out := a
	if opts.Temporal {
		out = MaybeTemporal(out, opts.Parser)
	}

	if opts.Numeric && out.Desc().IsObject() {
		floats := make([]float64, out.Len())
		allNull := true
		ok := true
		for i, v := range out.Objects() {
			s, isScalar := dtype.AsScalar(v)
			if isScalar && dtype.IsNull(s) {
				floats[i] = math.NaN()
				continue
			}
			f, err := spf13cast.ToFloat64E(v)
			if err != nil {
				ok = false
				break
			}
			floats[i] = f
			allNull = false
		}
		if ok && !allNull {
			return array.NewFloats(dtype.Float64(), floats)
		}
	}

	if opts.Copy && out == a {
		return a.Clone(), nil
	}
	return out, nil
}
