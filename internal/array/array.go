package array

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/quartzdb/dtype/internal/dtype"
)

// TypedArray is a length-tagged homogeneous buffer plus its descriptor.
// Exactly one backing slice is populated, selected by the descriptor's
// kind. Storage is always flat in row-major order; Shape only records how
// callers view it, and reshape never reorders elements.
//
// Arrays are immutable by convention. The operations that mutate in place
// say so explicitly; everything else returns a new array or a view.
type TypedArray struct {
	desc  dtype.Descriptor
	shape []int

	ints      []int64
	uints     []uint64
	floats    []float64
	complexes []complex128
	bools     []bool
	strs      []string
	objects   []any

	// ext holds the opaque array built by an extension's FromSequence.
	ext    any
	extLen int
}

func validateDesc(d dtype.Descriptor) error {
	if d.Kind.IsTemporal() && !d.HasUnit() {
		return dtype.NewMissingUnitError(d.Kind)
	}
	return nil
}

// NewInts builds a signed integer array. Values must be representable at
// the descriptor's width.
func NewInts(d dtype.Descriptor, values []int64) (*TypedArray, error) {
	if d.Kind != dtype.KindInt {
		return nil, dtype.NewConfigurationError(fmt.Sprintf("NewInts with %s descriptor", d))
	}
	lo, hi := dtype.IntRange(d.Width)
	for i, v := range values {
		if v < lo || v > hi {
			return nil, dtype.NewOverflowError(fmt.Sprintf("value %d at index %d does not fit", v, i), d)
		}
	}
	return &TypedArray{desc: d, shape: []int{len(values)}, ints: values}, nil
}

// NewUints builds an unsigned integer array.
func NewUints(d dtype.Descriptor, values []uint64) (*TypedArray, error) {
	if d.Kind != dtype.KindUint {
		return nil, dtype.NewConfigurationError(fmt.Sprintf("NewUints with %s descriptor", d))
	}
	hi := dtype.UintMax(d.Width)
	for i, v := range values {
		if v > hi {
			return nil, dtype.NewOverflowError(fmt.Sprintf("value %d at index %d does not fit", v, i), d)
		}
	}
	return &TypedArray{desc: d, shape: []int{len(values)}, uints: values}, nil
}

// NewFloats builds a float array. At 32-bit width values are rounded
// through float32 so every element is representable by the descriptor.
func NewFloats(d dtype.Descriptor, values []float64) (*TypedArray, error) {
	if d.Kind != dtype.KindFloat {
		return nil, dtype.NewConfigurationError(fmt.Sprintf("NewFloats with %s descriptor", d))
	}
	if d.Width == 32 {
		rounded := make([]float64, len(values))
		for i, v := range values {
			rounded[i] = float64(float32(v))
		}
		values = rounded
	}
	return &TypedArray{desc: d, shape: []int{len(values)}, floats: values}, nil
}

// NewComplexes builds a complex array.
func NewComplexes(d dtype.Descriptor, values []complex128) (*TypedArray, error) {
	if d.Kind != dtype.KindComplex {
		return nil, dtype.NewConfigurationError(fmt.Sprintf("NewComplexes with %s descriptor", d))
	}
	return &TypedArray{desc: d, shape: []int{len(values)}, complexes: values}, nil
}

// NewBools builds a boolean array.
func NewBools(values []bool) *TypedArray {
	return &TypedArray{desc: dtype.BoolType(), shape: []int{len(values)}, bools: values}
}

// NewStrings builds a fixed-width string array.
func NewStrings(d dtype.Descriptor, values []string) (*TypedArray, error) {
	if d.Kind != dtype.KindString {
		return nil, dtype.NewConfigurationError(fmt.Sprintf("NewStrings with %s descriptor", d))
	}
	return &TypedArray{desc: d, shape: []int{len(values)}, strs: values}, nil
}

// NewObjects builds an object array. Nil elements are nulls.
func NewObjects(values []any) *TypedArray {
	return &TypedArray{desc: dtype.ObjectType(), shape: []int{len(values)}, objects: values}
}

// NewTemporal builds an instant or duration array from sub-unit counts.
// The descriptor must carry a resolution; NullCount elements are nulls.
func NewTemporal(d dtype.Descriptor, counts []int64) (*TypedArray, error) {
	if !d.Kind.IsTemporal() {
		return nil, dtype.NewConfigurationError(fmt.Sprintf("NewTemporal with %s descriptor", d))
	}
	if err := validateDesc(d); err != nil {
		return nil, err
	}
	return &TypedArray{desc: d, shape: []int{len(counts)}, ints: counts}, nil
}

// NewExtension wraps an opaque extension array together with its length.
func NewExtension(d dtype.Descriptor, data any, length int) (*TypedArray, error) {
	if d.Kind != dtype.KindExtension {
		return nil, dtype.NewConfigurationError(fmt.Sprintf("NewExtension with %s descriptor", d))
	}
	return &TypedArray{desc: d, shape: []int{length}, ext: data, extLen: length}, nil
}

// Desc returns the array's descriptor.
func (a *TypedArray) Desc() dtype.Descriptor { return a.desc }

// Shape returns the array's dimensions.
func (a *TypedArray) Shape() []int { return a.shape }

// NDim returns the number of dimensions.
func (a *TypedArray) NDim() int { return len(a.shape) }

// Len returns the total element count.
func (a *TypedArray) Len() int {
	n := 1
	for _, s := range a.shape {
		n *= s
	}
	if len(a.shape) == 0 {
		return 0
	}
	return n
}

// Reshape returns a view of the same buffer under a new shape. Element
// order is the existing flat traversal order; nothing is transposed.
func (a *TypedArray) Reshape(shape []int) (*TypedArray, error) {
	n := 1
	for _, s := range shape {
		n *= s
	}
	if n != a.Len() {
		return nil, dtype.NewConfigurationError(
			fmt.Sprintf("cannot reshape %d elements into %v", a.Len(), shape))
	}
	out := *a
	out.shape = append([]int(nil), shape...)
	return &out, nil
}

// Flatten returns a one-dimensional view of the same buffer.
func (a *TypedArray) Flatten() *TypedArray {
	out := *a
	out.shape = []int{a.Len()}
	return &out
}

// Raw buffer accessors. Callers must not mutate through them unless the
// operation documents in-place behavior.
func (a *TypedArray) Ints() []int64           { return a.ints }
func (a *TypedArray) Uints() []uint64         { return a.uints }
func (a *TypedArray) Floats() []float64       { return a.floats }
func (a *TypedArray) Complexes() []complex128 { return a.complexes }
func (a *TypedArray) Bools() []bool           { return a.bools }
func (a *TypedArray) Strings() []string       { return a.strs }
func (a *TypedArray) Objects() []any          { return a.objects }

// Extension returns the opaque extension array, if any.
func (a *TypedArray) Extension() any { return a.ext }

// At returns the element at flat index i as a tagged scalar.
func (a *TypedArray) At(i int) dtype.Scalar {
	switch a.desc.Kind {
	case dtype.KindInt:
		return dtype.Int(a.ints[i])
	case dtype.KindUint:
		return dtype.Uint(a.uints[i])
	case dtype.KindFloat:
		return dtype.Float(a.floats[i])
	case dtype.KindComplex:
		return dtype.Complex(a.complexes[i])
	case dtype.KindBool:
		return dtype.Bool(a.bools[i])
	case dtype.KindString:
		return dtype.Str(a.strs[i])
	case dtype.KindInstant:
		return dtype.Instant{Unit: a.desc.Unit, Count: a.ints[i], Zone: a.desc.Zone}
	case dtype.KindDuration:
		return dtype.Duration{Unit: a.desc.Unit, Count: a.ints[i]}
	case dtype.KindObject:
		v := a.objects[i]
		if v == nil {
			return dtype.Missing{}
		}
		if s, ok := v.(dtype.Scalar); ok {
			return s
		}
		return dtype.Object{Value: v}
	}
	return dtype.Missing{}
}

// IsNull reports whether the element at flat index i is missing under the
// array's null strategy.
func (a *TypedArray) IsNull(i int) bool {
	switch a.desc.Kind {
	case dtype.KindFloat:
		return math.IsNaN(a.floats[i])
	case dtype.KindComplex:
		return cmplx.IsNaN(a.complexes[i])
	case dtype.KindInstant, dtype.KindDuration:
		return a.ints[i] == dtype.NullCount
	case dtype.KindObject:
		return dtype.IsNull(a.At(i))
	default:
		return false
	}
}

// NullMask returns the per-element null positions.
func (a *TypedArray) NullMask() []bool {
	mask := make([]bool, a.Len())
	if a.desc.Kind == dtype.KindExtension {
		return mask
	}
	for i := range mask {
		mask[i] = a.IsNull(i)
	}
	return mask
}

// HasNull reports whether any element is missing.
func (a *TypedArray) HasNull() bool {
	n := a.Len()
	if a.desc.Kind == dtype.KindExtension {
		return false
	}
	for i := 0; i < n; i++ {
		if a.IsNull(i) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the array's buffer and shape.
func (a *TypedArray) Clone() *TypedArray {
	out := &TypedArray{desc: a.desc, shape: append([]int(nil), a.shape...), ext: a.ext, extLen: a.extLen}
	out.ints = append([]int64(nil), a.ints...)
	out.uints = append([]uint64(nil), a.uints...)
	out.floats = append([]float64(nil), a.floats...)
	out.complexes = append([]complex128(nil), a.complexes...)
	out.bools = append([]bool(nil), a.bools...)
	out.strs = append([]string(nil), a.strs...)
	out.objects = append([]any(nil), a.objects...)
	return out
}

// Values returns every element as a plain Go value, the shape extension
// FromSequence and classifiers consume.
func (a *TypedArray) Values() []any {
	n := a.Len()
	out := make([]any, n)
	for i := 0; i < n; i++ {
		out[i] = dtype.GoValue(a.At(i))
	}
	return out
}
