// Package promote implements the promotion lattice: the pairwise
// (type, fill value) resolver and the n-ary common-type join.
//
// Promotion never silently discards a null, and a result type always
// represents both operands' value domains plus the null sentinel
// appropriate to the result kind. When no narrower answer exists the
// resolver falls back to the object type - that is the lattice's safe
// top element, not an error.
package promote

import (
	"fmt"

	"github.com/quartzdb/dtype/internal/array"
	"github.com/quartzdb/dtype/internal/dtype"
)

// Promote finds the narrowest descriptor able to hold both d and the
// fill value, returning the promoted descriptor and the fill re-typed
// for it. The returned fill is boxed for the result type except when the
// result is object or extension, which take the value as-is.
func Promote(d dtype.Descriptor, fill any) (dtype.Descriptor, dtype.Scalar, error) {
	if arr, ok := fill.(*array.TypedArray); ok {
		return promoteArrayFill(d, arr)
	}

	s, ok := dtype.AsScalar(fill)
	if !ok {
		if d.IsObject() {
			// Object holds anything; there is nothing to promote.
			return d, dtype.Object{Value: fill}, nil
		}
		return dtype.Descriptor{}, nil, dtype.NewConfigurationError("fill value must be a scalar")
	}
	return promoteScalar(d, s)
}

// promoteArrayFill resolves an array-valued fill before entering the
// scalar rules: temporal fills collapse to the temporal null, object
// fills force the object type, everything else fills with NaN.
func promoteArrayFill(d dtype.Descriptor, arr *array.TypedArray) (dtype.Descriptor, dtype.Scalar, error) {
	var s dtype.Scalar
	if arr.Desc().Kind.IsTemporal() {
		s = dtype.NullTime{}
	} else {
		if arr.Desc().IsObject() {
			d = dtype.ObjectType()
		}
		s = dtype.NaN{}
	}
	if d.IsObject() || d.Kind == dtype.KindString {
		return dtype.ObjectType(), dtype.NaN{}, nil
	}
	return promoteScalar(d, s)
}

func promoteScalar(d dtype.Descriptor, s dtype.Scalar) (dtype.Descriptor, dtype.Scalar, error) {
	nd, ns := promoteRules(d, s)

	// Fixed-width strings never grow at this layer.
	if nd.Kind == dtype.KindString {
		nd = dtype.ObjectType()
	}

	return nd, ensureBoxed(ns, nd), nil
}

// promoteRules is the ordered rule table. First match wins.
func promoteRules(d dtype.Descriptor, s dtype.Scalar) (dtype.Descriptor, dtype.Scalar) {
	switch d.Kind {
	case dtype.KindInstant:
		return promoteInstant(d, s)
	case dtype.KindDuration:
		return promoteDuration(d, s)
	case dtype.KindExtension:
		return promoteExtension(d, s)
	case dtype.KindString:
		// No dynamic string growth: escalate regardless of the fill.
		return dtype.ObjectType(), s
	case dtype.KindPeriod, dtype.KindInterval:
		return dtype.ObjectType(), s
	}

	switch v := s.(type) {
	case dtype.Float:
		if dtype.IsNull(s) {
			// A raw NaN float is a null, not a value: it follows the
			// marker rules and comes back as the NaN marker.
			return promoteNullFill(d, s)
		}
		return promoteFloatFill(d, float64(v), s)
	case dtype.NaN:
		return promoteNullFill(d, s)
	case dtype.Bool:
		if d.Kind == dtype.KindBool {
			return d, s
		}
		// Booleans never silently merge with numeric domains.
		return dtype.ObjectType(), s
	case dtype.Int:
		return promoteIntFill(d, int64(v), s)
	case dtype.Uint:
		return promoteUintFill(d, uint64(v), s)
	case dtype.Complex:
		return promoteComplexFill(d, complex128(v), s)
	case dtype.Missing:
		return promoteNullFill(d, s)
	case nil:
		return promoteNullFill(d, s)
	}

	// Strings, temporal scalars, NullTime and object payloads against a
	// plain numeric or boolean type: no common narrower type exists.
	return dtype.ObjectType(), s
}

func promoteInstant(d dtype.Descriptor, s dtype.Scalar) (dtype.Descriptor, dtype.Scalar) {
	sentinel := dtype.Instant{Unit: d.Unit, Count: dtype.NullCount, Zone: d.Zone}

	if d.Zone == "" {
		switch v := s.(type) {
		case dtype.Instant:
			if v.Count == dtype.NullCount {
				return d, sentinel
			}
			if v.Zone != "" {
				// Cannot mix zoned into naive.
				return dtype.ObjectType(), s
			}
			return d, dtype.Instant{Unit: d.Unit, Count: dtype.ConvertUnit(v.Count, v.Unit, d.Unit)}
		case dtype.Int, dtype.Uint:
			// A bare number targeting an instant is ambiguous.
			return dtype.ObjectType(), s
		case dtype.Float:
			if dtype.IsNull(s) {
				return d, sentinel
			}
			return dtype.ObjectType(), s
		}
		if dtype.ValidNullFor(s, d) {
			return d, sentinel
		}
		return dtype.ObjectType(), s
	}

	// Zoned instants only absorb instants in the same zone.
	if dtype.IsNull(s) {
		if v, ok := s.(dtype.Instant); ok && v.Zone != "" && v.Zone != d.Zone {
			return dtype.ObjectType(), s
		}
		return d, sentinel
	}
	if v, ok := s.(dtype.Instant); ok {
		if v.Zone == "" || v.Zone != d.Zone {
			return dtype.ObjectType(), s
		}
		return d, dtype.Instant{Unit: d.Unit, Count: dtype.ConvertUnit(v.Count, v.Unit, d.Unit), Zone: d.Zone}
	}
	return dtype.ObjectType(), s
}

func promoteDuration(d dtype.Descriptor, s dtype.Scalar) (dtype.Descriptor, dtype.Scalar) {
	sentinel := dtype.Duration{Unit: d.Unit, Count: dtype.NullCount}

	switch v := s.(type) {
	case dtype.Duration:
		if v.Count == dtype.NullCount {
			return d, sentinel
		}
		return d, dtype.Duration{Unit: d.Unit, Count: dtype.ConvertUnit(v.Count, v.Unit, d.Unit)}
	case dtype.Int, dtype.Uint, dtype.Str:
		// Bare numbers and strings targeting a duration are ambiguous.
		return dtype.ObjectType(), s
	case dtype.Float:
		if dtype.IsNull(s) {
			return d, sentinel
		}
		return dtype.ObjectType(), s
	}
	if dtype.ValidNullFor(s, d) {
		return d, sentinel
	}
	return dtype.ObjectType(), s
}

func promoteExtension(d dtype.Descriptor, s dtype.Scalar) (dtype.Descriptor, dtype.Scalar) {
	if dtype.IsNull(s) {
		if d.Ext != nil {
			return d, d.Ext.NullValue()
		}
		return d, dtype.Missing{}
	}
	if d.Ext != nil {
		if joined, ok := d.Ext.CommonWith([]dtype.Descriptor{d, scalarType(s)}); ok {
			return joined, s
		}
	}
	return dtype.ObjectType(), s
}

func promoteFloatFill(d dtype.Descriptor, v float64, s dtype.Scalar) (dtype.Descriptor, dtype.Scalar) {
	switch d.Kind {
	case dtype.KindBool:
		return dtype.ObjectType(), s
	case dtype.KindInt, dtype.KindUint:
		return dtype.Float64(), s
	case dtype.KindFloat:
		w := d.Width
		if mw := dtype.MinFloatWidth(v); mw > w {
			w = mw
		}
		return dtype.FloatType(w), s
	case dtype.KindComplex:
		w := d.Width
		if mw := 2 * dtype.MinFloatWidth(v); mw > w {
			w = mw
		}
		return dtype.ComplexType(w), s
	}
	return dtype.ObjectType(), s
}

func promoteIntFill(d dtype.Descriptor, v int64, s dtype.Scalar) (dtype.Descriptor, dtype.Scalar) {
	switch d.Kind {
	case dtype.KindBool:
		return dtype.ObjectType(), s
	case dtype.KindInt:
		lo, hi := dtype.IntRange(d.Width)
		if v >= lo && v <= hi {
			return d, s
		}
		w := dtype.MinIntWidthFor(v)
		if d.Width > w {
			w = d.Width
		}
		return dtype.IntType(w), s
	case dtype.KindUint:
		if v < 0 {
			// Joining a negative with unsigned storage needs a signed
			// width covering both ranges; past 64 bits there is none.
			if w, ok := signedWidthCovering(d.Width, dtype.MinIntWidthFor(v)); ok {
				return dtype.IntType(w), s
			}
			return dtype.ObjectType(), s
		}
		if uint64(v) <= dtype.UintMax(d.Width) {
			return d, s
		}
		w := dtype.MinUintWidthFor(uint64(v))
		if d.Width > w {
			w = d.Width
		}
		return dtype.UintType(w), s
	case dtype.KindFloat, dtype.KindComplex:
		return d, s
	}
	return dtype.ObjectType(), s
}

func promoteUintFill(d dtype.Descriptor, v uint64, s dtype.Scalar) (dtype.Descriptor, dtype.Scalar) {
	switch d.Kind {
	case dtype.KindBool:
		return dtype.ObjectType(), s
	case dtype.KindUint:
		if v <= dtype.UintMax(d.Width) {
			return d, s
		}
		w := dtype.MinUintWidthFor(v)
		if d.Width > w {
			w = d.Width
		}
		return dtype.UintType(w), s
	case dtype.KindInt:
		if v <= dtype.MaxInt64 {
			_, hi := dtype.IntRange(d.Width)
			if v <= uint64(hi) {
				return d, s
			}
			w := dtype.MinIntWidthFor(int64(v))
			if d.Width > w {
				w = d.Width
			}
			return dtype.IntType(w), s
		}
		// uint64 beyond signed range: both widths exhausted.
		return dtype.ObjectType(), s
	case dtype.KindFloat, dtype.KindComplex:
		return d, s
	}
	return dtype.ObjectType(), s
}

func promoteComplexFill(d dtype.Descriptor, v complex128, s dtype.Scalar) (dtype.Descriptor, dtype.Scalar) {
	switch d.Kind {
	case dtype.KindBool:
		return dtype.ObjectType(), s
	case dtype.KindInt, dtype.KindUint:
		// Integers wider than 16 bits exceed a float32 mantissa, so the
		// component type is float64 and the join is complex128.
		w := 64
		if d.Width > 16 {
			w = 128
		}
		if mw := dtype.MinComplexWidth(v); mw > w {
			w = mw
		}
		return dtype.ComplexType(w), s
	case dtype.KindFloat:
		w := 2 * d.Width
		if mw := dtype.MinComplexWidth(v); mw > w {
			w = mw
		}
		return dtype.ComplexType(w), s
	case dtype.KindComplex:
		w := d.Width
		if mw := dtype.MinComplexWidth(v); mw > w {
			w = mw
		}
		return dtype.ComplexType(w), s
	}
	return dtype.ObjectType(), s
}

// promoteNullFill applies the generic null marker rules: floats and
// complexes absorb NaN in place, integers widen to float64, everything
// else escalates to object with the marker preserved.
func promoteNullFill(d dtype.Descriptor, s dtype.Scalar) (dtype.Descriptor, dtype.Scalar) {
	switch d.Kind {
	case dtype.KindFloat, dtype.KindComplex:
		return d, dtype.NaN{}
	case dtype.KindInt, dtype.KindUint:
		return dtype.Float64(), dtype.NaN{}
	}
	if _, isMissing := s.(dtype.Missing); isMissing {
		return dtype.ObjectType(), dtype.Missing{}
	}
	return dtype.ObjectType(), dtype.NaN{}
}

// signedWidthCovering returns the signed width holding both a full
// unsigned range of uw bits and a signed range of sw bits, if one exists.
func signedWidthCovering(uw, sw int) (int, bool) {
	need := uw * 2
	if need < sw {
		need = sw
	}
	if need > 64 {
		return 0, false
	}
	for _, w := range []int{8, 16, 32, 64} {
		if w >= need {
			return w, true
		}
	}
	return 0, false
}

// ensureBoxed re-types the fill for the promoted descriptor. Object and
// extension results take the value as-is, and null markers are never
// coerced into concrete storage types.
func ensureBoxed(s dtype.Scalar, d dtype.Descriptor) dtype.Scalar {
	if d.Kind == dtype.KindObject || d.Kind == dtype.KindExtension {
		return s
	}
	if dtype.IsNull(s) {
		if d.Kind.IsTemporal() {
			if sent, ok := d.NullSentinel(); ok {
				return sent
			}
		}
		return s
	}
	switch v := s.(type) {
	case dtype.Int:
		switch d.Kind {
		case dtype.KindFloat:
			return boxFloat(float64(v), d)
		case dtype.KindComplex:
			return dtype.Complex(complex(float64(v), 0))
		case dtype.KindUint:
			return dtype.Uint(uint64(v))
		}
	case dtype.Uint:
		switch d.Kind {
		case dtype.KindFloat:
			return boxFloat(float64(v), d)
		case dtype.KindComplex:
			return dtype.Complex(complex(float64(v), 0))
		case dtype.KindInt:
			return dtype.Int(int64(v))
		}
	case dtype.Float:
		switch d.Kind {
		case dtype.KindFloat:
			return boxFloat(float64(v), d)
		case dtype.KindComplex:
			return dtype.Complex(complex(float64(v), 0))
		}
	}
	return s
}

func boxFloat(v float64, d dtype.Descriptor) dtype.Scalar {
	if d.Width == 32 {
		return dtype.Float(float64(float32(v)))
	}
	return dtype.Float(v)
}

// scalarType returns the descriptor a bare scalar would infer to, used
// when delegating to an extension's common-type capability.
func scalarType(s dtype.Scalar) dtype.Descriptor {
	switch v := s.(type) {
	case dtype.Bool:
		return dtype.BoolType()
	case dtype.Int:
		return dtype.Int64()
	case dtype.Uint:
		return dtype.Uint64()
	case dtype.Float, dtype.NaN:
		return dtype.Float64()
	case dtype.Complex:
		return dtype.Complex128()
	case dtype.Instant:
		if v.Zone != "" {
			return dtype.ZonedInstantType(dtype.UnitNano, v.Zone)
		}
		return dtype.InstantType(dtype.UnitNano)
	case dtype.Duration:
		return dtype.DurationType(dtype.UnitNano)
	}
	return dtype.ObjectType()
}

// Describe renders a promotion result for diagnostics.
func Describe(d dtype.Descriptor, s dtype.Scalar) string {
	return fmt.Sprintf("%s <- %s", d, dtype.FormatScalar(s))
}
