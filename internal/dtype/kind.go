package dtype

import "math"

// Kind identifies the storage family of a Descriptor.
//
// The set is closed: every cast and promotion rule is written as a total
// switch over Kind pairs, with unhandled pairs routed to the Object
// fallback. Do not add kinds without extending those switches.
type Kind string

const (
	// KindBool is a plain boolean. No in-band null representation.
	KindBool Kind = "bool"

	// KindInt is a signed integer of Descriptor.Width bits.
	// No in-band null representation.
	KindInt Kind = "int"

	// KindUint is an unsigned integer of Descriptor.Width bits.
	// No in-band null representation.
	KindUint Kind = "uint"

	// KindFloat is an IEEE float of Descriptor.Width bits. Null is NaN.
	KindFloat Kind = "float"

	// KindComplex is a complex number of Descriptor.Width total bits.
	// Null is NaN in either component.
	KindComplex Kind = "complex"

	// KindObject is the heterogeneous fallback. Null is the Missing marker.
	// Object is the safe top element of the promotion lattice.
	KindObject Kind = "object"

	// KindInstant is a point in time stored as an int64 sub-unit count.
	// Null is the NullCount sentinel.
	KindInstant Kind = "instant"

	// KindDuration is elapsed time stored as an int64 sub-unit count.
	// Null is the NullCount sentinel.
	KindDuration Kind = "duration"

	// KindExtension delegates storage and null semantics to an injected
	// ExtensionType capability.
	KindExtension Kind = "extension"

	// KindPeriod is a calendar period with a frequency tag. Promotion
	// treats it as opaque: anything mixed with it joins to object.
	KindPeriod Kind = "period"

	// KindInterval is an interval over an element subtype. Opaque to
	// promotion like KindPeriod.
	KindInterval Kind = "interval"

	// KindString is a fixed-width string. Promotion always escalates it
	// to object: there is no dynamic string growth at this layer.
	KindString Kind = "string"
)

// Unit is the sub-second resolution of a temporal Descriptor.
//
// The zero value UnitNone marks a temporal family named without a
// resolution; arrays never carry it (MissingUnitError on use).
type Unit string

const (
	UnitNone   Unit = ""
	UnitSecond Unit = "s"
	UnitMilli  Unit = "ms"
	UnitMicro  Unit = "us"
	UnitNano   Unit = "ns"
)

// nanosPer returns how many nanoseconds one count of u spans.
func nanosPer(u Unit) int64 {
	switch u {
	case UnitSecond:
		return 1_000_000_000
	case UnitMilli:
		return 1_000_000
	case UnitMicro:
		return 1_000
	default:
		return 1
	}
}

// ConvertUnit rescales a temporal count from one resolution to another.
// Refining divides toward zero; the null sentinel passes through
// untouched so it never participates in arithmetic.
func ConvertUnit(count int64, from, to Unit) int64 {
	if count == NullCount || from == to {
		return count
	}
	nf, nt := nanosPer(from), nanosPer(to)
	if nf > nt {
		return count * (nf / nt)
	}
	return count / (nt / nf)
}

// NullCount is the reserved out-of-range sentinel standing for "missing"
// in instant and duration storage.
const NullCount int64 = math.MinInt64

// Width limits for the integer kinds, by bit width.
const (
	MaxInt8  = math.MaxInt8
	MaxInt16 = math.MaxInt16
	MaxInt32 = math.MaxInt32
	MaxInt64 = math.MaxInt64

	MinInt8  = math.MinInt8
	MinInt16 = math.MinInt16
	MinInt32 = math.MinInt32
	MinInt64 = math.MinInt64

	MaxUint8  = math.MaxUint8
	MaxUint16 = math.MaxUint16
	MaxUint32 = math.MaxUint32
	MaxUint64 = math.MaxUint64
)

// IntRange returns the inclusive [min, max] value range of a signed
// integer width.
func IntRange(width int) (int64, int64) {
	switch width {
	case 8:
		return MinInt8, MaxInt8
	case 16:
		return MinInt16, MaxInt16
	case 32:
		return MinInt32, MaxInt32
	default:
		return MinInt64, MaxInt64
	}
}

// UintMax returns the maximum value of an unsigned integer width.
func UintMax(width int) uint64 {
	switch width {
	case 8:
		return MaxUint8
	case 16:
		return MaxUint16
	case 32:
		return MaxUint32
	default:
		return MaxUint64
	}
}

// MinIntWidthFor returns the narrowest signed width holding v.
func MinIntWidthFor(v int64) int {
	switch {
	case v >= MinInt8 && v <= MaxInt8:
		return 8
	case v >= MinInt16 && v <= MaxInt16:
		return 16
	case v >= MinInt32 && v <= MaxInt32:
		return 32
	default:
		return 64
	}
}

// MinUintWidthFor returns the narrowest unsigned width holding v.
func MinUintWidthFor(v uint64) int {
	switch {
	case v <= MaxUint8:
		return 8
	case v <= MaxUint16:
		return 16
	case v <= MaxUint32:
		return 32
	default:
		return 64
	}
}

// IsNumeric reports whether k participates in numeric widening.
// Bool is excluded: booleans never silently merge with numeric domains.
func (k Kind) IsNumeric() bool {
	switch k {
	case KindInt, KindUint, KindFloat, KindComplex:
		return true
	default:
		return false
	}
}

// IsTemporal reports whether k stores sub-unit counts.
func (k Kind) IsTemporal() bool {
	return k == KindInstant || k == KindDuration
}
