package dtype

import (
	"math"
	"time"
)

// AsScalar resolves an arbitrary Go value into a tagged Scalar exactly
// once, at the engine boundary. It returns false for anything that is not
// a scalar (slices, maps, arrays); callers decide whether non-scalar
// input is an error or object payload.
//
// nil resolves to the untyped null (a nil Scalar) rather than Missing:
// the two are promoted differently.
func AsScalar(v any) (Scalar, bool) {
	switch x := v.(type) {
	case nil:
		return nil, true
	case Scalar:
		return x, true
	case bool:
		return Bool(x), true
	case int:
		return Int(x), true
	case int8:
		return Int(x), true
	case int16:
		return Int(x), true
	case int32:
		return Int(x), true
	case int64:
		return Int(x), true
	case uint:
		return Uint(x), true
	case uint8:
		return Uint(x), true
	case uint16:
		return Uint(x), true
	case uint32:
		return Uint(x), true
	case uint64:
		return Uint(x), true
	case float32:
		return Float(x), true
	case float64:
		return Float(x), true
	case complex64:
		return Complex(x), true
	case complex128:
		return Complex(x), true
	case string:
		return Str(x), true
	case time.Time:
		zone := ""
		if x.Location() != time.UTC {
			zone = x.Location().String()
		}
		return Instant{Unit: UnitNano, Count: x.UnixNano(), Zone: zone}, true
	case time.Duration:
		return Duration{Unit: UnitNano, Count: int64(x)}, true
	}
	return nil, false
}

// MinFloatWidth returns the narrowest float width representing v exactly.
// Non-finite values fit in 32 bits.
func MinFloatWidth(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 32
	}
	if float64(float32(v)) == v {
		return 32
	}
	return 64
}

// MinComplexWidth returns the narrowest complex width representing v
// exactly.
func MinComplexWidth(v complex128) int {
	if MinFloatWidth(real(v)) == 32 && MinFloatWidth(imag(v)) == 32 {
		return 64
	}
	return 128
}
