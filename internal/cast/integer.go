package cast

import (
	"math"

	"github.com/quartzdb/dtype/internal/array"
	"github.com/quartzdb/dtype/internal/dtype"
)

// ToInteger casts array-like data into an integer or unsigned target with
// zero tolerance for loss. The conversion itself is attempted first; a
// width overflow during conversion fails naming the target type. The
// converted values are then verified element-wise against the originals,
// which catches precision loss a width check alone would miss, such as
// fractional floats.
func ToInteger(v any, target dtype.Descriptor, copyData bool) (*array.TypedArray, error) {
	if target.Kind != dtype.KindInt && target.Kind != dtype.KindUint {
		return nil, dtype.NewConfigurationError("target must be an integer type")
	}

	a, err := asArray(v)
	if err != nil {
		return nil, err
	}

	casted, convErr := convertForValidation(a, target)
	if convErr != nil {
		if dtype.IsOverflow(convErr) {
			return nil, dtype.NewOverflowError(
				"the elements provided in the data cannot all be cast to "+target.String(), target)
		}
		return nil, convErr
	}

	if valuesEqual(a, casted) {
		if copyData {
			return casted.Clone(), nil
		}
		return casted, nil
	}

	if target.Kind == dtype.KindUint && hasNegative(a) {
		return nil, dtype.NewOverflowError("negative values cannot coerce to unsigned", target)
	}
	if a.Desc().Kind == dtype.KindFloat || a.Desc().IsObject() {
		return nil, dtype.NewPrecisionLossError("float values cannot coerce to integers losslessly", target)
	}
	return nil, dtype.NewOverflowError("values changed during integer conversion", target)
}

func asArray(v any) (*array.TypedArray, error) {
	switch x := v.(type) {
	case *array.TypedArray:
		return x, nil
	case []any:
		return array.NewObjects(x), nil
	case []int64:
		return array.NewInts(dtype.Int64(), x)
	case []float64:
		return array.NewFloats(dtype.Float64(), x)
	case []uint64:
		return array.NewUints(dtype.Uint64(), x)
	}
	return nil, dtype.NewConfigurationError("input must be array-like")
}

// convertForValidation is a tolerant conversion: fractional floats
// truncate instead of failing, so the equality check afterwards can make
// the precise diagnosis.
func convertForValidation(a *array.TypedArray, target dtype.Descriptor) (*array.TypedArray, error) {
	src := a.Desc()
	n := a.Len()

	signed := target.Kind == dtype.KindInt
	ints := make([]int64, 0, n)
	uints := make([]uint64, 0, n)

	push := func(f float64) error {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return dtype.NewNonFiniteError("cannot convert non-finite values (NA or inf) to integer", target)
		}
		if signed {
			ints = append(ints, int64(f))
		} else {
			if f < 0 {
				// Keep the truncated bit pattern; the verify step turns
				// this into the negative-to-unsigned diagnosis.
				uints = append(uints, uint64(int64(f)))
			} else {
				uints = append(uints, uint64(f))
			}
		}
		return nil
	}

	for i := 0; i < n; i++ {
		switch src.Kind {
		case dtype.KindInt:
			v := a.Ints()[i]
			if signed {
				ints = append(ints, v)
			} else {
				uints = append(uints, uint64(v))
			}
		case dtype.KindUint:
			v := a.Uints()[i]
			if signed {
				ints = append(ints, int64(v))
			} else {
				uints = append(uints, v)
			}
		case dtype.KindFloat:
			if err := push(a.Floats()[i]); err != nil {
				return nil, err
			}
		case dtype.KindBool:
			if a.Bools()[i] {
				if err := push(1); err != nil {
					return nil, err
				}
			} else if err := push(0); err != nil {
				return nil, err
			}
		case dtype.KindObject:
			s, ok := dtype.AsScalar(a.Objects()[i])
			if !ok {
				return nil, dtype.NewIncompatibleCast(src, target)
			}
			switch x := s.(type) {
			case dtype.Int:
				if signed {
					ints = append(ints, int64(x))
				} else {
					uints = append(uints, uint64(int64(x)))
				}
			case dtype.Uint:
				if signed {
					ints = append(ints, int64(uint64(x)))
				} else {
					uints = append(uints, uint64(x))
				}
			case dtype.Float:
				if err := push(float64(x)); err != nil {
					return nil, err
				}
			case dtype.Bool:
				f := 0.0
				if x {
					f = 1
				}
				if err := push(f); err != nil {
					return nil, err
				}
			default:
				return nil, dtype.NewIncompatibleCast(src, target)
			}
		default:
			return nil, dtype.NewIncompatibleCast(src, target)
		}
	}

	// Width validation lives in the constructors; failures surface as
	// overflow errors naming the target.
	if signed {
		return array.NewInts(target, ints)
	}
	return array.NewUints(target, uints)
}

// valuesEqual compares the original and converted arrays element-wise.
func valuesEqual(orig, casted *array.TypedArray) bool {
	n := orig.Len()
	if n != casted.Len() {
		return false
	}
	for i := 0; i < n; i++ {
		var cv float64
		var cNeg bool
		if casted.Desc().Kind == dtype.KindInt {
			v := casted.Ints()[i]
			cv = float64(v)
			cNeg = v < 0
		} else {
			cv = float64(casted.Uints()[i])
		}

		switch orig.Desc().Kind {
		case dtype.KindInt:
			if float64(orig.Ints()[i]) != cv || (orig.Ints()[i] < 0) != cNeg {
				return false
			}
		case dtype.KindUint:
			if float64(orig.Uints()[i]) != cv || cNeg {
				return false
			}
		case dtype.KindFloat:
			if orig.Floats()[i] != cv {
				return false
			}
		case dtype.KindBool:
			f := 0.0
			if orig.Bools()[i] {
				f = 1
			}
			if f != cv {
				return false
			}
		case dtype.KindObject:
			s, ok := dtype.AsScalar(orig.Objects()[i])
			if !ok {
				return false
			}
			switch x := s.(type) {
			case dtype.Int:
				if float64(x) != cv || (x < 0) != cNeg {
					return false
				}
			case dtype.Uint:
				if float64(x) != cv || cNeg {
					return false
				}
			case dtype.Float:
				if float64(x) != cv {
					return false
				}
			case dtype.Bool:
				f := 0.0
				if x {
					f = 1
				}
				if f != cv {
					return false
				}
			default:
				return false
			}
		default:
			return false
		}
	}
	return true
}

func hasNegative(a *array.TypedArray) bool {
	switch a.Desc().Kind {
	case dtype.KindInt:
		for _, v := range a.Ints() {
			if v < 0 {
				return true
			}
		}
	case dtype.KindFloat:
		for _, v := range a.Floats() {
			if v < 0 {
				return true
			}
		}
	case dtype.KindObject:
		for _, v := range a.Objects() {
			s, ok := dtype.AsScalar(v)
			if !ok {
				continue
			}
			switch x := s.(type) {
			case dtype.Int:
				if x < 0 {
					return true
				}
			case dtype.Float:
				if x < 0 {
					return true
				}
			}
		}
	}
	return false
}

// ValidateScalarInsert checks that a single value can be inserted into
// storage of the given descriptor without corrupting it: NaN never enters
// integer or boolean storage, and booleans never enter strictly numeric
// storage.
func ValidateScalarInsert(d dtype.Descriptor, v any) error {
	s, ok := dtype.AsScalar(v)
	if !ok {
		return dtype.NewConfigurationError("inserted value must be a scalar")
	}

	switch d.Kind {
	case dtype.KindInt, dtype.KindUint, dtype.KindBool:
		if f, isF := s.(dtype.Float); isF && math.IsNaN(float64(f)) {
			return dtype.NewNonFiniteError("cannot insert NaN into "+d.String()+" storage", d)
		}
		if _, isNaN := s.(dtype.NaN); isNaN {
			return dtype.NewNonFiniteError("cannot insert NaN into "+d.String()+" storage", d)
		}
	}

	if d.Kind.IsNumeric() {
		if _, isBool := s.(dtype.Bool); isBool {
			return &dtype.CastError{
				Code:    dtype.ErrCodeIncompatibleCast,
				Message: "cannot insert a boolean into numeric storage",
				To:      d.String(),
			}
		}
	}
	return nil
}

// PrepareScalarInsert converts a scalar for insertion into an array of
// the given descriptor: temporal targets box then unbox the value to its
// count representation, everything else is validated in place.
func PrepareScalarInsert(d dtype.Descriptor, v any) (dtype.Scalar, error) {
	if d.Kind.IsTemporal() {
		boxed := BoxTemporal(v, d)
		count, err := UnboxTemporal(boxed, d)
		if err != nil {
			return nil, err
		}
		if d.Kind == dtype.KindInstant {
			return dtype.Instant{Unit: d.Unit, Count: count, Zone: d.Zone}, nil
		}
		return dtype.Duration{Unit: d.Unit, Count: count}, nil
	}
	if err := ValidateScalarInsert(d, v); err != nil {
		return nil, err
	}
	s, _ := dtype.AsScalar(v)
	return s, nil
}
