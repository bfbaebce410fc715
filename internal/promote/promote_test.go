package promote

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quartzdb/dtype/internal/array"
	"github.com/quartzdb/dtype/internal/dtype"
	"github.com/quartzdb/dtype/internal/testutil"
)

func TestPromoteBoolWithNaN(t *testing.T) {
	// Boolean storage has no null representation, so a NaN fill escalates
	// all the way to object rather than to float.
	d, s, err := Promote(dtype.BoolType(), math.NaN())
	require.NoError(t, err)
	assert.Equal(t, dtype.ObjectType(), d)
	assert.Equal(t, dtype.NaN{}, s)
}

func TestPromoteIntWidening(t *testing.T) {
	tests := []struct {
		name string
		d    dtype.Descriptor
		fill any
		want dtype.Descriptor
	}{
		{"fits in place", dtype.Int32(), int64(7), dtype.Int32()},
		{"widens past 32 bits", dtype.Int32(), int64(1) << 40, dtype.Int64()},
		{"int8 grows to int16", dtype.Int8(), int64(300), dtype.Int16()},
		{"negative into uint8", dtype.Uint8(), int64(-1), dtype.Int16()},
		{"negative into uint32", dtype.Uint32(), int64(-1), dtype.Int64()},
		{"negative into uint64", dtype.Uint64(), int64(-1), dtype.ObjectType()},
		{"uint fill fits", dtype.Uint8(), uint64(200), dtype.Uint8()},
		{"uint fill grows", dtype.Uint8(), uint64(300), dtype.Uint16()},
		{"huge uint into int", dtype.Int64(), uint64(math.MaxUint64), dtype.ObjectType()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _, err := Promote(tt.d, tt.fill)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d)
		})
	}
}

func TestPromoteFloatFill(t *testing.T) {
	// Integer storage with a float fill widens to float64.
	d, s, err := Promote(dtype.Int64(), 2.5)
	require.NoError(t, err)
	assert.Equal(t, dtype.Float64(), d)
	assert.Equal(t, dtype.Float(2.5), s)

	// float32 keeps its width for representable fills.
	d, _, err = Promote(dtype.Float32(), 1.5)
	require.NoError(t, err)
	assert.Equal(t, dtype.Float32(), d)

	// A fill needing the full mantissa pushes float32 up.
	d, _, err = Promote(dtype.Float32(), 1.0000000001)
	require.NoError(t, err)
	assert.Equal(t, dtype.Float64(), d)

	// Bool with a float fill has no numeric join.
	d, _, err = Promote(dtype.BoolType(), 1.5)
	require.NoError(t, err)
	assert.Equal(t, dtype.ObjectType(), d)
}

func TestPromoteNullFill(t *testing.T) {
	// Floats absorb null in place.
	d, s, err := Promote(dtype.Float64(), nil)
	require.NoError(t, err)
	assert.Equal(t, dtype.Float64(), d)
	assert.Equal(t, dtype.NaN{}, s)

	// Integers widen so the null has somewhere to live.
	d, s, err = Promote(dtype.Int64(), nil)
	require.NoError(t, err)
	assert.Equal(t, dtype.Float64(), d)
	assert.Equal(t, dtype.NaN{}, s)

	// The generic marker survives the escalation to object.
	d, s, err = Promote(dtype.BoolType(), dtype.Missing{})
	require.NoError(t, err)
	assert.Equal(t, dtype.ObjectType(), d)
	assert.Equal(t, dtype.Missing{}, s)
}

func TestPromoteRawNaNIsNullFill(t *testing.T) {
	// A raw float NaN follows the null rules, never the float-value
	// rules, and always comes back as the marker.
	d, s, err := Promote(dtype.Int64(), math.NaN())
	require.NoError(t, err)
	assert.Equal(t, dtype.Float64(), d)
	assert.Equal(t, dtype.NaN{}, s)

	d, s, err = Promote(dtype.Float32(), math.NaN())
	require.NoError(t, err)
	assert.Equal(t, dtype.Float32(), d)
	assert.Equal(t, dtype.NaN{}, s)

	d, s, err = Promote(dtype.InstantType(dtype.UnitNano), math.NaN())
	require.NoError(t, err)
	assert.Equal(t, dtype.InstantType(dtype.UnitNano), d)
	assert.Equal(t, dtype.Instant{Unit: dtype.UnitNano, Count: dtype.NullCount}, s)
}

func TestPromoteComplexFill(t *testing.T) {
	// Narrow integers join a small complex fill at complex64; wide
	// integers need the float64 component type.
	d, _, err := Promote(dtype.Int16(), complex(1, 1))
	require.NoError(t, err)
	assert.Equal(t, dtype.Complex64(), d)

	d, _, err = Promote(dtype.Int32(), complex(1, 1))
	require.NoError(t, err)
	assert.Equal(t, dtype.Complex128(), d)

	d, _, err = Promote(dtype.Uint64(), complex(1, 1))
	require.NoError(t, err)
	assert.Equal(t, dtype.Complex128(), d)

	// Float columns double into complex at matching component width.
	d, _, err = Promote(dtype.Float32(), complex(1, 1))
	require.NoError(t, err)
	assert.Equal(t, dtype.Complex64(), d)
}

func TestPromoteBoolFill(t *testing.T) {
	d, s, err := Promote(dtype.BoolType(), true)
	require.NoError(t, err)
	assert.Equal(t, dtype.BoolType(), d)
	assert.Equal(t, dtype.Bool(true), s)

	// Booleans never merge into numeric storage.
	d, _, err = Promote(dtype.Int64(), true)
	require.NoError(t, err)
	assert.Equal(t, dtype.ObjectType(), d)
}

func TestPromoteInstant(t *testing.T) {
	ns := dtype.InstantType(dtype.UnitNano)

	// Null fills take the sentinel in place.
	d, s, err := Promote(ns, nil)
	require.NoError(t, err)
	assert.Equal(t, ns, d)
	assert.Equal(t, dtype.Instant{Unit: dtype.UnitNano, Count: dtype.NullCount}, s)

	d, s, err = Promote(ns, dtype.NullTime{})
	require.NoError(t, err)
	assert.Equal(t, ns, d)
	assert.Equal(t, dtype.Instant{Unit: dtype.UnitNano, Count: dtype.NullCount}, s)

	// Instant fills resample to the column's resolution.
	d, s, err = Promote(ns, dtype.Instant{Unit: dtype.UnitMilli, Count: 3})
	require.NoError(t, err)
	assert.Equal(t, ns, d)
	assert.Equal(t, dtype.Instant{Unit: dtype.UnitNano, Count: 3_000_000}, s)

	// Bare numbers are ambiguous against an instant column.
	d, _, err = Promote(ns, int64(5))
	require.NoError(t, err)
	assert.Equal(t, dtype.ObjectType(), d)

	// Zoned fills cannot enter naive storage.
	d, _, err = Promote(ns, dtype.Instant{Unit: dtype.UnitNano, Count: 1, Zone: "UTC"})
	require.NoError(t, err)
	assert.Equal(t, dtype.ObjectType(), d)
}

func TestPromoteZonedInstant(t *testing.T) {
	zoned := dtype.ZonedInstantType(dtype.UnitNano, "America/New_York")

	// Same-zone instants stay in place.
	d, s, err := Promote(zoned, dtype.Instant{Unit: dtype.UnitNano, Count: 9, Zone: "America/New_York"})
	require.NoError(t, err)
	assert.Equal(t, zoned, d)
	assert.Equal(t, dtype.Instant{Unit: dtype.UnitNano, Count: 9, Zone: "America/New_York"}, s)

	// A different zone escalates.
	d, _, err = Promote(zoned, dtype.Instant{Unit: dtype.UnitNano, Count: 9, Zone: "UTC"})
	require.NoError(t, err)
	assert.Equal(t, dtype.ObjectType(), d)

	// Nulls still fit.
	d, s, err = Promote(zoned, nil)
	require.NoError(t, err)
	assert.Equal(t, zoned, d)
	assert.Equal(t, dtype.Instant{Unit: dtype.UnitNano, Count: dtype.NullCount, Zone: "America/New_York"}, s)
}

func TestPromoteDuration(t *testing.T) {
	ms := dtype.DurationType(dtype.UnitMilli)

	d, s, err := Promote(ms, dtype.Duration{Unit: dtype.UnitSecond, Count: 2})
	require.NoError(t, err)
	assert.Equal(t, ms, d)
	assert.Equal(t, dtype.Duration{Unit: dtype.UnitMilli, Count: 2000}, s)

	// Bare numbers and strings are ambiguous against durations.
	d, _, err = Promote(ms, int64(5))
	require.NoError(t, err)
	assert.Equal(t, dtype.ObjectType(), d)

	d, _, err = Promote(ms, "1h")
	require.NoError(t, err)
	assert.Equal(t, dtype.ObjectType(), d)

	d, s, err = Promote(ms, nil)
	require.NoError(t, err)
	assert.Equal(t, ms, d)
	assert.Equal(t, dtype.Duration{Unit: dtype.UnitMilli, Count: dtype.NullCount}, s)
}

func TestPromoteExtension(t *testing.T) {
	cat := dtype.ExtensionOf(testutil.CategoryType{})

	// Null fills take the extension's declared null.
	d, s, err := Promote(cat, nil)
	require.NoError(t, err)
	assert.Equal(t, cat, d)
	assert.Equal(t, dtype.Missing{}, s)

	// The extension answers joins it recognizes.
	d, s, err = Promote(cat, int64(3))
	require.NoError(t, err)
	assert.Equal(t, cat, d)
	assert.Equal(t, dtype.Int(3), s)

	// Everything else escalates to object with the fill untouched.
	d, s, err = Promote(cat, 2.5)
	require.NoError(t, err)
	assert.Equal(t, dtype.ObjectType(), d)
	assert.Equal(t, dtype.Float(2.5), s)
}

func TestPromoteStringAndPeriod(t *testing.T) {
	d, _, err := Promote(dtype.StringType(8), int64(1))
	require.NoError(t, err)
	assert.Equal(t, dtype.ObjectType(), d)

	d, _, err = Promote(dtype.PeriodType("D"), int64(1))
	require.NoError(t, err)
	assert.Equal(t, dtype.ObjectType(), d)
}

func TestPromoteArrayFill(t *testing.T) {
	ints, err := array.NewInts(dtype.Int64(), []int64{1, 2})
	require.NoError(t, err)

	// An integer column with an array fill widens as if filled with NaN.
	d, s, err := Promote(dtype.Int64(), ints)
	require.NoError(t, err)
	assert.Equal(t, dtype.Float64(), d)
	assert.Equal(t, dtype.NaN{}, s)

	// Temporal array fills become the temporal null.
	inst, err := array.NewTemporal(dtype.InstantType(dtype.UnitNano), []int64{1})
	require.NoError(t, err)
	d, s, err = Promote(dtype.InstantType(dtype.UnitNano), inst)
	require.NoError(t, err)
	assert.Equal(t, dtype.InstantType(dtype.UnitNano), d)
	assert.Equal(t, dtype.Instant{Unit: dtype.UnitNano, Count: dtype.NullCount}, s)

	// Object array fills force the object type.
	d, s, err = Promote(dtype.Int64(), array.NewObjects([]any{"x"}))
	require.NoError(t, err)
	assert.Equal(t, dtype.ObjectType(), d)
	assert.Equal(t, dtype.NaN{}, s)
}

func TestPromoteRejectsNonScalarFill(t *testing.T) {
	_, _, err := Promote(dtype.Int64(), map[string]int{"a": 1})
	require.Error(t, err)
	assert.True(t, dtype.IsConfiguration(err))

	// Object columns hold anything.
	d, s, err := Promote(dtype.ObjectType(), map[string]int{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, dtype.ObjectType(), d)
	_, isObject := s.(dtype.Object)
	assert.True(t, isObject)
}

func TestPromoteBoxesFill(t *testing.T) {
	// An integer fill entering float storage is re-typed for it.
	d, s, err := Promote(dtype.Float64(), int64(3))
	require.NoError(t, err)
	assert.Equal(t, dtype.Float64(), d)
	assert.Equal(t, dtype.Float(3), s)

	// At 32-bit width boxing rounds through float32.
	d, s, err = Promote(dtype.Float32(), int64(1)<<25+1)
	require.NoError(t, err)
	assert.Equal(t, dtype.Float32(), d)
	assert.Equal(t, dtype.Float(float64(float32(1<<25+1))), s)
}
