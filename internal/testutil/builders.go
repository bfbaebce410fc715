// Package testutil provides deterministic helpers shared by engine tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quartzdb/dtype/internal/array"
	"github.com/quartzdb/dtype/internal/dtype"
)

// Ints builds an integer array or fails the test.
func Ints(t *testing.T, d dtype.Descriptor, values ...int64) *array.TypedArray {
	t.Helper()
	a, err := array.NewInts(d, values)
	require.NoError(t, err)
	return a
}

// Uints builds an unsigned integer array or fails the test.
func Uints(t *testing.T, d dtype.Descriptor, values ...uint64) *array.TypedArray {
	t.Helper()
	a, err := array.NewUints(d, values)
	require.NoError(t, err)
	return a
}

// Floats builds a float array or fails the test.
func Floats(t *testing.T, d dtype.Descriptor, values ...float64) *array.TypedArray {
	t.Helper()
	a, err := array.NewFloats(d, values)
	require.NoError(t, err)
	return a
}

// Temporal builds an instant or duration array from raw counts or
// fails the test. Use dtype.NullCount for missing elements.
func Temporal(t *testing.T, d dtype.Descriptor, counts ...int64) *array.TypedArray {
	t.Helper()
	a, err := array.NewTemporal(d, counts)
	require.NoError(t, err)
	return a
}

// Objects builds an object array from raw values.
func Objects(values ...any) *array.TypedArray {
	return array.NewObjects(values)
}
