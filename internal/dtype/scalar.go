package dtype

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Scalar is a sealed interface over the tagged scalar variants the engine
// moves between arrays. Only the types in this file implement it.
//
// Three null markers exist and they are distinct on purpose: NaN is the
// float-kind null, Missing is the generic marker, NullTime is the
// temporal "not-a-time". Promotion decides which one a result type gets.
type Scalar interface {
	scalar() // sealed
}

// Int is a signed integer scalar.
type Int int64

func (Int) scalar() {}

// Uint is an unsigned integer scalar.
type Uint uint64

func (Uint) scalar() {}

// Float is a floating scalar. A NaN-valued Float is still a value, not a
// null marker; use the NaN variant for the marker itself.
type Float float64

func (Float) scalar() {}

// Complex is a complex scalar.
type Complex complex128

func (Complex) scalar() {}

// Bool is a boolean scalar.
type Bool bool

func (Bool) scalar() {}

// Str is a string scalar.
type Str string

func (Str) scalar() {}

// Object wraps an arbitrary value for object-kind storage.
type Object struct{ Value any }

func (Object) scalar() {}

// Instant is a structured point-in-time scalar: a sub-unit count at a
// fixed resolution, optionally zoned.
type Instant struct {
	Unit  Unit
	Count int64
	Zone  string
}

func (Instant) scalar() {}

// Duration is a structured elapsed-time scalar.
type Duration struct {
	Unit  Unit
	Count int64
}

func (Duration) scalar() {}

// NaN is the float-kind null marker.
type NaN struct{}

func (NaN) scalar() {}

// Missing is the generic null marker used by object and extension kinds.
type Missing struct{}

func (Missing) scalar() {}

// NullTime is the kind-specific temporal null ("not-a-time").
type NullTime struct{}

func (NullTime) scalar() {}

// IsNull reports whether s is any of the three null markers, or a
// temporal scalar carrying the null sentinel, or a NaN-valued float.
func IsNull(s Scalar) bool {
	switch v := s.(type) {
	case nil:
		return true
	case NaN, Missing, NullTime:
		return true
	case Float:
		return math.IsNaN(float64(v))
	case Complex:
		return cmplx.IsNaN(complex128(v))
	case Instant:
		return v.Count == NullCount
	case Duration:
		return v.Count == NullCount
	case Object:
		return v.Value == nil
	default:
		return false
	}
}

// ValidNullFor reports whether the null marker s is an acceptable null
// for d's kind: NullTime (or NaN, or Missing) for temporal kinds, NaN or
// Missing for float/complex, Missing for object/extension.
func ValidNullFor(s Scalar, d Descriptor) bool {
	if !IsNull(s) {
		return false
	}
	switch d.Kind {
	case KindInstant, KindDuration:
		switch s.(type) {
		case NullTime, NaN, Missing, nil:
			return true
		case Instant:
			return d.Kind == KindInstant
		case Duration:
			return d.Kind == KindDuration
		case Float:
			return true
		}
		return false
	case KindFloat, KindComplex:
		switch s.(type) {
		case NaN, Missing, nil, Float, Complex:
			return true
		}
		return false
	case KindObject, KindExtension:
		return true
	default:
		return false
	}
}

// IsFiniteFloat reports whether s is a float scalar holding a finite
// value.
func IsFiniteFloat(s Scalar) bool {
	f, ok := s.(Float)
	if !ok {
		return false
	}
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}

// GoValue unwraps a scalar to its plain Go representation, mainly for
// object-kind storage and display.
func GoValue(s Scalar) any {
	switch v := s.(type) {
	case Int:
		return int64(v)
	case Uint:
		return uint64(v)
	case Float:
		return float64(v)
	case Complex:
		return complex128(v)
	case Bool:
		return bool(v)
	case Str:
		return string(v)
	case Object:
		return v.Value
	case Instant, Duration:
		return v
	case NaN:
		return math.NaN()
	case Missing, NullTime, nil:
		return nil
	}
	return s
}

// FormatScalar renders a scalar for string-target casts and CLI output.
func FormatScalar(s Scalar) string {
	switch v := s.(type) {
	case Int:
		return fmt.Sprintf("%d", int64(v))
	case Uint:
		return fmt.Sprintf("%d", uint64(v))
	case Float:
		return fmt.Sprintf("%g", float64(v))
	case Complex:
		return fmt.Sprintf("%v", complex128(v))
	case Bool:
		return fmt.Sprintf("%t", bool(v))
	case Str:
		return string(v)
	case Object:
		return fmt.Sprintf("%v", v.Value)
	case Instant:
		if v.Count == NullCount {
			return "NaT"
		}
		return fmt.Sprintf("instant(%d%s)", v.Count, v.Unit)
	case Duration:
		if v.Count == NullCount {
			return "NaT"
		}
		return fmt.Sprintf("duration(%d%s)", v.Count, v.Unit)
	case NaN:
		return "NaN"
	case Missing:
		return "NA"
	case NullTime:
		return "NaT"
	}
	return fmt.Sprintf("%v", s)
}
