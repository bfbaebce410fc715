// Package cast converts typed arrays across type boundaries while
// preserving null positions and numeric correctness.
//
// ARCHITECTURE:
//
// Every conversion is a total dispatch over (source kind, target kind).
// Pairs with no rule fail with an incompatible-cast error rather than
// guessing. Null positions in the source always equal null positions in
// the target; when an intermediate step (like duration resampling) does
// arithmetic, nulls are re-applied after the arithmetic so sentinels
// never participate.
//
// Copy semantics: an explicit copy flag, or either side being object
// kind, forces a fresh buffer. Cross-kind reinterpretation is never a
// free view. Otherwise a same-type cast returns the input as a view.
package cast

import (
	"fmt"
	"math"

	spf13cast "github.com/spf13/cast"

	"github.com/quartzdb/dtype/internal/array"
	"github.com/quartzdb/dtype/internal/dtype"
	"github.com/quartzdb/dtype/internal/infer"
	"github.com/quartzdb/dtype/internal/promote"
)

// Array casts a typed array to the target descriptor in a nan-safe
// manner.
func Array(a *array.TypedArray, target dtype.Descriptor, opts Options) (*array.TypedArray, error) {
	// Multi-dimensional input: flatten in traversal order, recurse,
	// reshape back. Layout is never transposed.
	if a.NDim() > 1 {
		shape := a.Shape()
		flat, err := Array(a.Flatten(), target, opts)
		if err != nil {
			return nil, err
		}
		return flat.Reshape(shape)
	}

	if target.Kind.IsTemporal() && !target.HasUnit() {
		return nil, dtype.NewMissingUnitError(target.Kind)
	}

	// Extension sources are opaque to this engine; only an identity cast
	// is answerable without the extension's own conversion machinery.
	if a.Desc().Kind == dtype.KindExtension {
		if target.Equal(a.Desc()) {
			return a, nil
		}
		return nil, dtype.NewIncompatibleCast(a.Desc(), target)
	}

	if target.Kind == dtype.KindExtension {
		if target.Ext == nil {
			return nil, dtype.NewConfigurationError("extension descriptor without capability")
		}
		data, err := target.Ext.FromSequence(a.Values(), target, opts.Copy)
		if err != nil {
			return nil, fmt.Errorf("extension %s from sequence: %w", target, err)
		}
		return array.NewExtension(target, data, a.Len())
	}

	src := a.Desc()

	// Temporal sources convert to string/object through structured
	// scalar boxing, never raw integer reinterpretation.
	if src.Kind.IsTemporal() && (target.Kind == dtype.KindString || target.IsObject()) {
		if target.Kind == dtype.KindString {
			return stringify(a, opts.SkipNulls)
		}
		out := make([]any, a.Len())
		for i := range out {
			if a.IsNull(i) {
				out[i] = dtype.NullTime{}
				continue
			}
			out[i] = a.At(i)
		}
		return array.NewObjects(out), nil
	}

	if target.Kind == dtype.KindString {
		return stringify(a, opts.SkipNulls)
	}

	switch src.Kind {
	case dtype.KindInstant:
		return castInstant(a, target, opts)
	case dtype.KindDuration:
		return castDuration(a, target, opts)
	case dtype.KindFloat:
		if target.Kind == dtype.KindInt || target.Kind == dtype.KindUint {
			for _, f := range a.Floats() {
				if math.IsNaN(f) || math.IsInf(f, 0) {
					return nil, dtype.NewNonFiniteError("cannot convert non-finite values (NA or inf) to integer", target)
				}
			}
		}
	case dtype.KindObject:
		return castObject(a, target, opts)
	}

	if src.Equal(target) {
		if opts.Copy || src.IsObject() {
			return a.Clone(), nil
		}
		return a, nil
	}

	return castNumeric(a, target, opts)
}

// stringify is the string-target path: per-element string representation
// into object storage. With skipNulls set, null elements stay as their
// scalar markers instead of rendering.
func stringify(a *array.TypedArray, skipNulls bool) (*array.TypedArray, error) {
	out := make([]any, a.Len())
	for i := range out {
		if a.IsNull(i) && skipNulls {
			out[i] = a.At(i)
			continue
		}
		out[i] = dtype.FormatScalar(a.At(i))
	}
	return array.NewObjects(out), nil
}

func castInstant(a *array.TypedArray, target dtype.Descriptor, opts Options) (*array.TypedArray, error) {
	src := a.Desc()

	if target.Kind == dtype.KindInt && target.Width == 64 {
		// Deprecated reinterpretation path: still executes for one
		// transition period, then becomes a hard error.
		opts.deprecate(fmt.Sprintf(
			"casting %s values to int64 is deprecated and will raise in a future version; use a view instead", src))
		if a.HasNull() {
			return nil, dtype.NewNonFiniteError("cannot convert null instant values to integer", target)
		}
		return array.NewInts(target, append([]int64(nil), a.Ints()...))
	}

	if target.Kind == dtype.KindInstant {
		// Resolution resampling is always allowed.
		counts := make([]int64, a.Len())
		for i, c := range a.Ints() {
			counts[i] = dtype.ConvertUnit(c, src.Unit, target.Unit)
		}
		return array.NewTemporal(target, counts)
	}

	return nil, dtype.NewIncompatibleCast(src, target)
}

func castDuration(a *array.TypedArray, target dtype.Descriptor, opts Options) (*array.TypedArray, error) {
	src := a.Desc()

	if target.Kind == dtype.KindInt && target.Width == 64 {
		opts.deprecate(fmt.Sprintf(
			"casting %s values to int64 is deprecated and will raise in a future version; use a view instead", src))
		if a.HasNull() {
			return nil, dtype.NewNonFiniteError("cannot convert null instant values to integer", target)
		}
		return array.NewInts(target, append([]int64(nil), a.Ints()...))
	}

	if target.Kind == dtype.KindDuration {
		if src.Unit == target.Unit {
			if opts.Copy {
				return a.Clone(), nil
			}
			return a, nil
		}
		if target.Unit == dtype.UnitNano {
			// Refining to the canonical resolution is exact and keeps
			// integer counts, same as the instant path.
			counts := make([]int64, a.Len())
			for i, c := range a.Ints() {
				counts[i] = dtype.ConvertUnit(c, src.Unit, dtype.UnitNano)
			}
			return array.NewTemporal(target, counts)
		}
		// Coarsening the resolution divides counts into a floating
		// quotient; nulls are re-applied after the division so the
		// sentinel never enters the arithmetic.
		ratio := unitRatio(src.Unit, target.Unit)
		out := make([]float64, a.Len())
		for i, c := range a.Ints() {
			out[i] = float64(c) * ratio
		}
		for i := range out {
			if a.IsNull(i) {
				out[i] = math.NaN()
			}
		}
		return array.NewFloats(dtype.Float64(), out)
	}

	return nil, dtype.NewIncompatibleCast(src, target)
}

// unitRatio is the multiplier taking counts at from-resolution to
// multiples of to-resolution.
func unitRatio(from, to dtype.Unit) float64 {
	nf := float64(unitNanos(from))
	nt := float64(unitNanos(to))
	return nf / nt
}

func unitNanos(u dtype.Unit) int64 {
	return dtype.ConvertUnit(1, u, dtype.UnitNano)
}

func castObject(a *array.TypedArray, target dtype.Descriptor, opts Options) (*array.TypedArray, error) {
	switch target.Kind {
	case dtype.KindInt, dtype.KindUint:
		return objectToInteger(a, target)
	case dtype.KindInstant, dtype.KindDuration:
		// Re-infer a well-typed array first, then recurse.
		retyped := infer.MaybeTemporal(a, opts.Parser)
		if retyped.Desc().IsObject() {
			return nil, dtype.NewIncompatibleCast(a.Desc(), target)
		}
		return Array(retyped, target, opts)
	case dtype.KindFloat:
		out := make([]float64, a.Len())
		for i, v := range a.Objects() {
			s, ok := dtype.AsScalar(v)
			if ok && dtype.IsNull(s) {
				out[i] = math.NaN()
				continue
			}
			f, err := spf13cast.ToFloat64E(v)
			if err != nil {
				return nil, dtype.NewIncompatibleCast(a.Desc(), target)
			}
			out[i] = f
		}
		return array.NewFloats(target, out)
	case dtype.KindComplex:
		out := make([]complex128, a.Len())
		for i, v := range a.Objects() {
			s, ok := dtype.AsScalar(v)
			if ok && dtype.IsNull(s) {
				out[i] = complex(math.NaN(), 0)
				continue
			}
			if c, isC := s.(dtype.Complex); isC {
				out[i] = complex128(c)
				continue
			}
			f, err := spf13cast.ToFloat64E(v)
			if err != nil {
				return nil, dtype.NewIncompatibleCast(a.Desc(), target)
			}
			out[i] = complex(f, 0)
		}
		return array.NewComplexes(target, out)
	case dtype.KindBool:
		out := make([]bool, a.Len())
		for i, v := range a.Objects() {
			b, err := spf13cast.ToBoolE(v)
			if err != nil {
				return nil, dtype.NewIncompatibleCast(a.Desc(), target)
			}
			out[i] = b
		}
		return array.NewBools(out), nil
	case dtype.KindObject:
		// Object to object still copies: views from object are never free.
		return a.Clone(), nil
	}
	return nil, dtype.NewIncompatibleCast(a.Desc(), target)
}

// objectToInteger is the element-wise conversion that fails if any
// element cannot convert losslessly.
func objectToInteger(a *array.TypedArray, target dtype.Descriptor) (*array.TypedArray, error) {
	signed := target.Kind == dtype.KindInt
	ints := make([]int64, 0, a.Len())
	uints := make([]uint64, 0, a.Len())
	for _, v := range a.Objects() {
		s, ok := dtype.AsScalar(v)
		if ok && dtype.IsNull(s) {
			return nil, dtype.NewNonFiniteError("cannot convert non-finite values (NA or inf) to integer", target)
		}
		if f, isF := s.(dtype.Float); isF {
			if float64(f) != math.Trunc(float64(f)) {
				return nil, dtype.NewPrecisionLossError("float values cannot coerce to integers losslessly", target)
			}
		}
		if signed {
			n, err := spf13cast.ToInt64E(v)
			if err != nil {
				return nil, dtype.NewIncompatibleCast(a.Desc(), target)
			}
			ints = append(ints, n)
		} else {
			n, err := spf13cast.ToUint64E(v)
			if err != nil {
				return nil, dtype.NewIncompatibleCast(a.Desc(), target)
			}
			uints = append(uints, n)
		}
	}
	if signed {
		return array.NewInts(target, ints)
	}
	return array.NewUints(target, uints)
}

// castNumeric handles the remaining numeric and boolean kind pairs.
func castNumeric(a *array.TypedArray, target dtype.Descriptor, opts Options) (*array.TypedArray, error) {
	src := a.Desc()
	n := a.Len()

	// Element reader as float64; exact integer paths below avoid it.
	get := func(i int) (float64, bool) {
		switch src.Kind {
		case dtype.KindInt:
			return float64(a.Ints()[i]), true
		case dtype.KindUint:
			return float64(a.Uints()[i]), true
		case dtype.KindFloat:
			return a.Floats()[i], true
		case dtype.KindComplex:
			return real(a.Complexes()[i]), true
		case dtype.KindBool:
			if a.Bools()[i] {
				return 1, true
			}
			return 0, true
		}
		return 0, false
	}

	switch target.Kind {
	case dtype.KindInt:
		out := make([]int64, n)
		for i := 0; i < n; i++ {
			switch src.Kind {
			case dtype.KindInt:
				out[i] = a.Ints()[i]
			case dtype.KindUint:
				u := a.Uints()[i]
				if u > uint64(dtype.MaxInt64) {
					return nil, dtype.NewOverflowError("value does not fit the target range", target)
				}
				out[i] = int64(u)
			default:
				f, ok := get(i)
				if !ok {
					return nil, dtype.NewIncompatibleCast(src, target)
				}
				out[i] = int64(f)
			}
		}
		return array.NewInts(target, out)
	case dtype.KindUint:
		out := make([]uint64, n)
		for i := 0; i < n; i++ {
			switch src.Kind {
			case dtype.KindUint:
				out[i] = a.Uints()[i]
			case dtype.KindInt:
				v := a.Ints()[i]
				if v < 0 {
					return nil, dtype.NewOverflowError("negative values cannot coerce to unsigned", target)
				}
				out[i] = uint64(v)
			default:
				f, ok := get(i)
				if !ok {
					return nil, dtype.NewIncompatibleCast(src, target)
				}
				if f < 0 {
					return nil, dtype.NewOverflowError("negative values cannot coerce to unsigned", target)
				}
				out[i] = uint64(f)
			}
		}
		return array.NewUints(target, out)
	case dtype.KindFloat:
		out := make([]float64, n)
		for i := 0; i < n; i++ {
			f, ok := get(i)
			if !ok {
				return nil, dtype.NewIncompatibleCast(src, target)
			}
			out[i] = f
		}
		return array.NewFloats(target, out)
	case dtype.KindComplex:
		out := make([]complex128, n)
		for i := 0; i < n; i++ {
			if src.Kind == dtype.KindComplex {
				out[i] = a.Complexes()[i]
				continue
			}
			f, ok := get(i)
			if !ok {
				return nil, dtype.NewIncompatibleCast(src, target)
			}
			out[i] = complex(f, 0)
		}
		return array.NewComplexes(target, out)
	case dtype.KindBool:
		out := make([]bool, n)
		for i := 0; i < n; i++ {
			f, ok := get(i)
			if !ok {
				return nil, dtype.NewIncompatibleCast(src, target)
			}
			out[i] = f != 0
		}
		return array.NewBools(out), nil
	case dtype.KindObject:
		out := make([]any, n)
		for i := 0; i < n; i++ {
			if a.IsNull(i) {
				out[i] = dtype.Missing{}
				continue
			}
			out[i] = dtype.GoValue(a.At(i))
		}
		return array.NewObjects(out), nil
	}

	return nil, dtype.NewIncompatibleCast(src, target)
}

// Upcast promotes the array's type to hold the fill value and casts to
// the promoted type, returning the cast array and the re-typed fill.
// A copy is made in every case except an identity cast without the copy
// flag.
func Upcast(a *array.TypedArray, fill any, opts Options) (*array.TypedArray, dtype.Scalar, error) {
	nd, nf, err := promote.Promote(a.Desc(), fill)
	if err != nil {
		return nil, nil, err
	}
	out, err := Array(a, nd, opts)
	if err != nil {
		return nil, nil, err
	}
	return out, nf, nil
}

// FillMasked places NaN at mask positions, widening the array first when
// its type cannot hold a null. The destination is mutated in place only
// when no widening is required; otherwise a new array is allocated and
// returned. Callers must use the returned reference.
func FillMasked(a *array.TypedArray, mask []bool) (*array.TypedArray, error) {
	if len(mask) != a.Len() {
		return nil, dtype.NewConfigurationError("mask length does not match array length")
	}
	masked := false
	for _, m := range mask {
		if m {
			masked = true
			break
		}
	}
	if !masked {
		return a, nil
	}

	nd, _, err := promote.Promote(a.Desc(), math.NaN())
	if err != nil {
		return nil, err
	}
	out := a
	if !nd.Equal(a.Desc()) {
		out, err = Array(a, nd, Options{Copy: true})
		if err != nil {
			return nil, err
		}
	}
	switch out.Desc().Kind {
	case dtype.KindFloat:
		for i, m := range mask {
			if m {
				out.Floats()[i] = math.NaN()
			}
		}
	case dtype.KindComplex:
		for i, m := range mask {
			if m {
				out.Complexes()[i] = complex(math.NaN(), 0)
			}
		}
	case dtype.KindObject:
		for i, m := range mask {
			if m {
				out.Objects()[i] = dtype.Missing{}
			}
		}
	case dtype.KindInstant, dtype.KindDuration:
		for i, m := range mask {
			if m {
				out.Ints()[i] = dtype.NullCount
			}
		}
	default:
		return nil, dtype.NewIncompatibleCast(a.Desc(), out.Desc())
	}
	return out, nil
}
