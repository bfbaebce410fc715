package array

import (
	"fmt"
	"math"

	"github.com/quartzdb/dtype/internal/dtype"
)

// Full builds a length-n array of the given descriptor filled with one
// value. Integer descriptors holding a null fill coerce to float64,
// string descriptors coerce to object so the value is kept whole, and
// temporal fills are unboxed to counts.
func Full(value any, length int, d dtype.Descriptor) (*TypedArray, error) {
	s, ok := dtype.AsScalar(value)
	if !ok {
		if !d.IsObject() {
			return nil, dtype.NewConfigurationError("fill value must be a scalar")
		}
		s = dtype.Object{Value: value}
	}

	if length > 0 && (d.Kind == dtype.KindInt || d.Kind == dtype.KindUint) && dtype.IsNull(s) {
		d = dtype.Float64()
	}
	if d.Kind == dtype.KindString {
		d = dtype.ObjectType()
	}

	switch d.Kind {
	case dtype.KindBool:
		b, ok := s.(dtype.Bool)
		if !ok {
			return nil, dtype.NewConfigurationError("bool array needs a bool fill")
		}
		vals := make([]bool, length)
		for i := range vals {
			vals[i] = bool(b)
		}
		return NewBools(vals), nil
	case dtype.KindInt:
		v, ok := s.(dtype.Int)
		if !ok {
			return nil, dtype.NewConfigurationError(fmt.Sprintf("%s array needs an integer fill", d))
		}
		vals := make([]int64, length)
		for i := range vals {
			vals[i] = int64(v)
		}
		return NewInts(d, vals)
	case dtype.KindUint:
		v, ok := s.(dtype.Uint)
		if !ok {
			if iv, isInt := s.(dtype.Int); isInt && iv >= 0 {
				v = dtype.Uint(iv)
			} else {
				return nil, dtype.NewConfigurationError(fmt.Sprintf("%s array needs an unsigned fill", d))
			}
		}
		vals := make([]uint64, length)
		for i := range vals {
			vals[i] = uint64(v)
		}
		return NewUints(d, vals)
	case dtype.KindFloat:
		f := math.NaN()
		switch v := s.(type) {
		case dtype.Float:
			f = float64(v)
		case dtype.Int:
			f = float64(v)
		case dtype.Uint:
			f = float64(v)
		case dtype.NaN:
		default:
			if !dtype.IsNull(s) {
				return nil, dtype.NewConfigurationError(fmt.Sprintf("%s array needs a numeric fill", d))
			}
		}
		vals := make([]float64, length)
		for i := range vals {
			vals[i] = f
		}
		return NewFloats(d, vals)
	case dtype.KindComplex:
		c := complex(math.NaN(), 0)
		switch v := s.(type) {
		case dtype.Complex:
			c = complex128(v)
		case dtype.Float:
			c = complex(float64(v), 0)
		case dtype.Int:
			c = complex(float64(v), 0)
		case dtype.NaN:
		default:
			if !dtype.IsNull(s) {
				return nil, dtype.NewConfigurationError(fmt.Sprintf("%s array needs a numeric fill", d))
			}
		}
		vals := make([]complex128, length)
		for i := range vals {
			vals[i] = c
		}
		return NewComplexes(d, vals)
	case dtype.KindInstant, dtype.KindDuration:
		count, err := unboxCount(s, d)
		if err != nil {
			return nil, err
		}
		vals := make([]int64, length)
		for i := range vals {
			vals[i] = count
		}
		return NewTemporal(d, vals)
	case dtype.KindExtension:
		if d.Ext == nil {
			return nil, dtype.NewConfigurationError("extension descriptor without capability")
		}
		seq := make([]any, length)
		for i := range seq {
			seq[i] = dtype.GoValue(s)
		}
		data, err := d.Ext.FromSequence(seq, d, false)
		if err != nil {
			return nil, err
		}
		return NewExtension(d, data, length)
	}

	vals := make([]any, length)
	v := dtype.GoValue(s)
	if _, isMissing := s.(dtype.Missing); isMissing {
		v = dtype.Missing{}
	}
	for i := range vals {
		vals[i] = v
	}
	return NewObjects(vals), nil
}

// unboxCount maps a scalar to the count representation of a temporal
// descriptor, with null markers becoming the sentinel.
func unboxCount(s dtype.Scalar, d dtype.Descriptor) (int64, error) {
	if dtype.IsNull(s) {
		return dtype.NullCount, nil
	}
	switch v := s.(type) {
	case dtype.Instant:
		if d.Kind != dtype.KindInstant {
			return 0, dtype.NewIncompatibleCast(dtype.InstantType(v.Unit), d)
		}
		return dtype.ConvertUnit(v.Count, v.Unit, d.Unit), nil
	case dtype.Duration:
		if d.Kind != dtype.KindDuration {
			return 0, dtype.NewIncompatibleCast(dtype.DurationType(v.Unit), d)
		}
		return dtype.ConvertUnit(v.Count, v.Unit, d.Unit), nil
	}
	return 0, dtype.NewConfigurationError(fmt.Sprintf("%s array needs a temporal fill", d))
}

// SmallestIndexer returns the narrowest signed integer descriptor whose
// range covers category indices up to n.
func SmallestIndexer(n int) dtype.Descriptor {
	switch {
	case n < dtype.MaxInt8:
		return dtype.Int8()
	case n < dtype.MaxInt16:
		return dtype.Int16()
	case n < dtype.MaxInt32:
		return dtype.Int32()
	}
	return dtype.Int64()
}

// NormalizeTemporal converts a temporal array of any resolution to the
// canonical nanosecond resolution. Non-temporal arrays and arrays already
// at nanosecond pass through unchanged. Sentinels are preserved.
func NormalizeTemporal(a *TypedArray) *TypedArray {
	d := a.Desc()
	if !d.Kind.IsTemporal() || d.Unit == dtype.UnitNano {
		return a
	}
	counts := make([]int64, a.Len())
	for i, c := range a.Ints() {
		counts[i] = dtype.ConvertUnit(c, d.Unit, dtype.UnitNano)
	}
	nd := d
	nd.Unit = dtype.UnitNano
	out := &TypedArray{desc: nd, shape: append([]int(nil), a.shape...), ints: counts}
	return out
}
