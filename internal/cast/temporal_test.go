package cast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quartzdb/dtype/internal/dtype"
)

func TestBoxTemporal(t *testing.T) {
	// Raw counts are interpreted at the declared resolution.
	s := BoxTemporal(int64(5), dtype.InstantType(dtype.UnitMilli))
	assert.Equal(t, dtype.Instant{Unit: dtype.UnitMilli, Count: 5}, s)

	s = BoxTemporal(int64(5), dtype.DurationType(dtype.UnitSecond))
	assert.Equal(t, dtype.Duration{Unit: dtype.UnitSecond, Count: 5}, s)

	// Structured scalars pass through.
	in := dtype.Instant{Unit: dtype.UnitNano, Count: 9}
	assert.Equal(t, in, BoxTemporal(in, dtype.InstantType(dtype.UnitNano)))

	// An explicitly object declaration leaves raw values untouched.
	s = BoxTemporal(int64(5), dtype.ObjectType())
	assert.Equal(t, dtype.Int(5), s)

	// Non-scalars become object payloads.
	s = BoxTemporal([]int{1}, dtype.InstantType(dtype.UnitNano))
	_, isObject := s.(dtype.Object)
	assert.True(t, isObject)
}

func TestUnboxTemporal(t *testing.T) {
	count, err := UnboxTemporal(dtype.Instant{Unit: dtype.UnitMilli, Count: 2}, dtype.InstantType(dtype.UnitNano))
	require.NoError(t, err)
	assert.Equal(t, int64(2_000_000), count)

	// Nulls of any spelling map to the sentinel.
	for _, s := range []dtype.Scalar{nil, dtype.NullTime{}, dtype.NaN{}, dtype.Missing{}} {
		count, err = UnboxTemporal(s, dtype.DurationType(dtype.UnitNano))
		require.NoError(t, err)
		assert.Equal(t, dtype.NullCount, count)
	}

	count, err = UnboxTemporal(dtype.Instant{Unit: dtype.UnitNano, Count: dtype.NullCount}, dtype.InstantType(dtype.UnitSecond))
	require.NoError(t, err)
	assert.Equal(t, dtype.NullCount, count)
}

func TestUnboxTemporalRejectsCrossings(t *testing.T) {
	// Instant and duration do not reinterpret into each other.
	_, err := UnboxTemporal(dtype.Duration{Unit: dtype.UnitNano, Count: 1}, dtype.InstantType(dtype.UnitNano))
	require.Error(t, err)
	assert.True(t, dtype.IsIncompatibleCast(err))

	_, err = UnboxTemporal(dtype.Instant{Unit: dtype.UnitNano, Count: 1}, dtype.DurationType(dtype.UnitNano))
	require.Error(t, err)
	assert.True(t, dtype.IsIncompatibleCast(err))

	_, err = UnboxTemporal(dtype.Int(1), dtype.InstantType(dtype.UnitNano))
	require.Error(t, err)
	assert.True(t, dtype.IsConfiguration(err))

	_, err = UnboxTemporal(dtype.Instant{Unit: dtype.UnitNano, Count: 1}, dtype.Int64())
	require.Error(t, err)
	assert.True(t, dtype.IsConfiguration(err))

	bare, err2 := dtype.Parse("instant")
	require.NoError(t, err2)
	_, err = UnboxTemporal(dtype.Instant{Unit: dtype.UnitNano, Count: 1}, bare)
	require.Error(t, err)
	assert.True(t, dtype.IsMissingUnit(err))
}
