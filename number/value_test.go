package number

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntPromotesOutOfRange(t *testing.T) {
	t.Parallel()

	assert.Equal(t, KindInt, Int(MaxFixnum).Kind())
	assert.Equal(t, KindInt, Int(MinFixnum).Kind())

	v := Int(MaxFixnum + 1)
	require.Equal(t, KindBig, v.Kind())
	assert.Equal(t, big.NewInt(MaxFixnum+1), v.BigInt())

	v = Int(MinFixnum - 1)
	require.Equal(t, KindBig, v.Kind())
	assert.Equal(t, big.NewInt(MinFixnum-1), v.BigInt())
}

func TestBigCopiesInput(t *testing.T) {
	t.Parallel()

	b := big.NewInt(7)
	v := Big(b)
	b.SetInt64(8)
	assert.Equal(t, "7", v.String())

	out := v.BigInt()
	out.SetInt64(9)
	assert.Equal(t, "7", v.String())
}

func TestNeg(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Int(-5), Int(5).Neg())
	assert.Equal(t, Float(-1.5), Float(1.5).Neg())

	v := Int(MinFixnum).Neg()
	require.Equal(t, KindBig, v.Kind())
	assert.Equal(t, new(big.Int).Neg(big.NewInt(MinFixnum)), v.BigInt())

	// The bignum MaxFixnum+1 negates into the fixnum range.
	v = Int(MaxFixnum + 1).Neg()
	require.Equal(t, KindInt, v.Kind())
	assert.Equal(t, MinFixnum, v.Int64())
}

func TestIsZero(t *testing.T) {
	t.Parallel()

	assert.True(t, Int(0).IsZero())
	assert.True(t, Float(0).IsZero())
	assert.True(t, Float(math.Copysign(0, -1)).IsZero())
	assert.True(t, adoptBig(new(big.Int)).IsZero())
	assert.False(t, Int(1).IsZero())
	assert.False(t, Float(math.NaN()).IsZero())
}

func TestString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		v    Value
		want string
	}{
		{Int(42), "42"},
		{Int(-1), "-1"},
		{Float(1), "1.0"},
		{Float(-0.5), "-0.5"},
		{Float(1e21), "1e+21"},
		{Float(math.Inf(1)), "1.0e+INF"},
		{Float(math.Inf(-1)), "-1.0e+INF"},
		{Float(math.NaN()), "0.0e+NaN"},
		{Int(MaxFixnum + 1), "36028797018963968"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.v.String())
	}
}

func TestParseFloat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want float64
	}{
		{"2.1", 2.1},
		{"-0.5", -0.5},
		{".25", 0.25},
		{"1e3", 1000},
		{"1.5E-2", 0.015},
		{"1.0e+INF", math.Inf(1)},
		{"-1.0e+INF", math.Inf(-1)},
		{"1e400", math.Inf(1)},
	}
	for _, tt := range tests {
		got, err := ParseFloat(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	nan, err := ParseFloat("0.0e+NaN")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(nan))

	neg, err := ParseFloat("-0.0e+NaN")
	require.NoError(t, err)
	assert.True(t, math.Signbit(neg))

	_, err = ParseFloat("two")
	assert.Error(t, err)

	// Every printed double reads back exactly.
	for _, f := range []float64{0.1, 2.1, 0.1 + 0.2, 1e-300, math.MaxFloat64} {
		got, err := ParseFloat(FormatFloat(f))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
}
