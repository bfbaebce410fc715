package dtype

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalarSealed(t *testing.T) {
	// Verify all variants implement Scalar (compile-time check via assignment)
	var _ Scalar = Int(0)
	var _ Scalar = Uint(0)
	var _ Scalar = Float(0)
	var _ Scalar = Complex(0)
	var _ Scalar = Bool(false)
	var _ Scalar = Str("")
	var _ Scalar = Object{}
	var _ Scalar = Instant{}
	var _ Scalar = Duration{}
	var _ Scalar = NaN{}
	var _ Scalar = Missing{}
	var _ Scalar = NullTime{}
}

func TestIsNull(t *testing.T) {
	tests := []struct {
		name string
		s    Scalar
		want bool
	}{
		{"nil", nil, true},
		{"nan marker", NaN{}, true},
		{"missing marker", Missing{}, true},
		{"null time marker", NullTime{}, true},
		{"nan float", Float(math.NaN()), true},
		{"finite float", Float(1.5), false},
		{"nan complex", Complex(complex(math.NaN(), 0)), true},
		{"null instant", Instant{Unit: UnitNano, Count: NullCount}, true},
		{"live instant", Instant{Unit: UnitNano, Count: 1}, false},
		{"null duration", Duration{Unit: UnitNano, Count: NullCount}, true},
		{"nil object", Object{}, true},
		{"live object", Object{Value: "x"}, false},
		{"int", Int(0), false},
		{"bool", Bool(false), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNull(tt.s))
		})
	}
}

func TestValidNullFor(t *testing.T) {
	assert.True(t, ValidNullFor(NaN{}, Float64()))
	assert.True(t, ValidNullFor(Missing{}, Float64()))
	assert.True(t, ValidNullFor(NullTime{}, InstantType(UnitNano)))
	assert.True(t, ValidNullFor(NaN{}, InstantType(UnitNano)))
	assert.True(t, ValidNullFor(Missing{}, ObjectType()))
	assert.True(t, ValidNullFor(Instant{Unit: UnitNano, Count: NullCount}, InstantType(UnitNano)))

	// Family crossing is not a valid null.
	assert.False(t, ValidNullFor(Instant{Unit: UnitNano, Count: NullCount}, DurationType(UnitNano)))

	// Kinds without in-band nulls accept none.
	assert.False(t, ValidNullFor(NaN{}, Int64()))
	assert.False(t, ValidNullFor(Missing{}, BoolType()))

	// Live values are never nulls.
	assert.False(t, ValidNullFor(Float(1.0), Float64()))
}

func TestAsScalar(t *testing.T) {
	s, ok := AsScalar(int32(7))
	require.True(t, ok)
	assert.Equal(t, Int(7), s)

	s, ok = AsScalar(uint16(7))
	require.True(t, ok)
	assert.Equal(t, Uint(7), s)

	s, ok = AsScalar(2.5)
	require.True(t, ok)
	assert.Equal(t, Float(2.5), s)

	s, ok = AsScalar(true)
	require.True(t, ok)
	assert.Equal(t, Bool(true), s)

	s, ok = AsScalar("hi")
	require.True(t, ok)
	assert.Equal(t, Str("hi"), s)

	s, ok = AsScalar(nil)
	require.True(t, ok)
	assert.Nil(t, s)

	// Scalars pass through unchanged.
	s, ok = AsScalar(NaN{})
	require.True(t, ok)
	assert.Equal(t, NaN{}, s)
}

func TestAsScalarTime(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s, ok := AsScalar(ts)
	require.True(t, ok)
	in, isInstant := s.(Instant)
	require.True(t, isInstant)
	assert.Equal(t, UnitNano, in.Unit)
	assert.Equal(t, ts.UnixNano(), in.Count)
	assert.Empty(t, in.Zone)

	s, ok = AsScalar(90 * time.Second)
	require.True(t, ok)
	du, isDuration := s.(Duration)
	require.True(t, isDuration)
	assert.Equal(t, UnitNano, du.Unit)
	assert.Equal(t, int64(90_000_000_000), du.Count)
}

func TestFormatScalar(t *testing.T) {
	assert.Equal(t, "42", FormatScalar(Int(42)))
	assert.Equal(t, "2.5", FormatScalar(Float(2.5)))
	assert.Equal(t, "true", FormatScalar(Bool(true)))
	assert.Equal(t, "NaN", FormatScalar(NaN{}))
	assert.Equal(t, "NA", FormatScalar(Missing{}))
	assert.Equal(t, "NaT", FormatScalar(NullTime{}))
	assert.Equal(t, "NaT", FormatScalar(Instant{Unit: UnitNano, Count: NullCount}))
	assert.Equal(t, "instant(5ns)", FormatScalar(Instant{Unit: UnitNano, Count: 5}))
	assert.Equal(t, "duration(5ms)", FormatScalar(Duration{Unit: UnitMilli, Count: 5}))
}

func TestGoValue(t *testing.T) {
	assert.Equal(t, int64(3), GoValue(Int(3)))
	assert.Equal(t, "x", GoValue(Str("x")))
	assert.Nil(t, GoValue(Missing{}))
	assert.Nil(t, GoValue(NullTime{}))
	v, isFloat := GoValue(NaN{}).(float64)
	require.True(t, isFloat)
	assert.True(t, math.IsNaN(v))
}
