package cli

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quartzdb/dtype/internal/dtype"
)

func TestParseLiteral(t *testing.T) {
	tests := []struct {
		tok  string
		want any
	}{
		{"null", nil},
		{"None", nil},
		{"NA", nil},
		{"NaT", dtype.NullTime{}},
		{"true", true},
		{"False", false},
		{"42", int64(42)},
		{"-7", int64(-7)},
		{"18446744073709551615", uint64(math.MaxUint64)},
		{"2.5", 2.5},
		{"1e3", 1000.0},
		{"(1+2i)", complex(1, 2)},
		{"1h30m", 90 * time.Minute},
		{"hello", "hello"},
		{"2024-01-02", "2024-01-02"},
	}

	for _, tt := range tests {
		t.Run(tt.tok, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLiteral(tt.tok))
		})
	}
}

func TestParseLiteralNaN(t *testing.T) {
	v, ok := ParseLiteral("nan").(float64)
	require.True(t, ok)
	assert.True(t, math.IsNaN(v))
}

func TestParseLiteralTimestamp(t *testing.T) {
	v, ok := ParseLiteral("2024-01-02T03:04:05Z").(time.Time)
	require.True(t, ok)
	assert.Equal(t, 2024, v.Year())
	assert.Equal(t, time.UTC, v.Location())
}

func TestParseLiterals(t *testing.T) {
	got := ParseLiterals([]string{"1", "nat", "x"})
	require.Len(t, got, 3)
	assert.Equal(t, int64(1), got[0])
	assert.Equal(t, dtype.NullTime{}, got[1])
	assert.Equal(t, "x", got[2])
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, "CONFIGURATION", errorCode(dtype.NewConfigurationError("bad")))
	assert.Equal(t, "MISSING_UNIT", errorCode(dtype.NewMissingUnitError(dtype.KindInstant)))

	wrapped := fmt.Errorf("step 3: %w", dtype.NewOverflowError("too big", dtype.Int8()))
	assert.Equal(t, "OVERFLOW", errorCode(wrapped))

	assert.Equal(t, "COMMAND", errorCode(fmt.Errorf("plain")))
}
