package elisp

import (
	"math"
	"math/big"
	"testing"

	"github.com/steelseries/golisp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elarith/object"
)

func TestArenaTags(t *testing.T) {
	t.Parallel()
	a := NewArena(object.Shared)

	assert.Equal(t, object.TagNil, a.Tag(nil))
	assert.Equal(t, object.TagInt, a.Tag(golisp.IntegerWithValue(3)))
	assert.Equal(t, object.TagFloat, a.Tag(golisp.FloatWithValue(1.5)))
	assert.Equal(t, object.TagString, a.Tag(golisp.StringWithValue("x")))
	assert.Equal(t, object.TagSymbol, a.Tag(golisp.Intern("foo")))
	assert.Equal(t, object.TagBig, a.Tag(a.AddBig(big.NewInt(1))))
	assert.Equal(t, object.TagUnibyte, a.Tag(a.AddBytes([]byte{1})))
	assert.Equal(t, object.TagFloat, a.Tag(a.AddFloat(0.1)))
	assert.Equal(t, object.TagOther, a.Tag(golisp.BooleanWithValue(true)))
}

func TestArenaFloatPrecision(t *testing.T) {
	t.Parallel()
	a := NewArena(object.Shared)

	// 0.5 fits a golisp float, 0.1 needs the boxed double.
	half := a.AddFloat(0.5).(*golisp.Data)
	assert.True(t, golisp.FloatP(half))
	assert.Equal(t, 0.5, a.Float(half))

	tenth := a.AddFloat(0.1).(*golisp.Data)
	assert.True(t, golisp.ObjectP(tenth))
	assert.Equal(t, 0.1, a.Float(tenth))

	inf := a.AddFloat(math.Inf(-1))
	assert.True(t, math.IsInf(a.Float(inf), -1))
	assert.Equal(t, 3, a.Allocs())
}

func TestArenaOwnership(t *testing.T) {
	t.Parallel()

	t.Run("exclusive copies", func(t *testing.T) {
		a := NewArena(object.Exclusive)
		b := big.NewInt(41)
		obj := a.AddBig(b)
		b.SetInt64(0)
		assert.Equal(t, big.NewInt(41), a.Big(obj))

		raw := []byte("ab")
		bytesObj := a.AddBytes(raw)
		raw[0] = 'z'
		assert.Equal(t, []byte("ab"), a.Bytes(bytesObj))
	})

	t.Run("shared adopts", func(t *testing.T) {
		a := NewArena(object.Shared)
		b := big.NewInt(41)
		obj := a.AddBig(b)
		b.SetInt64(0)
		assert.Equal(t, big.NewInt(0), a.Big(obj))

		raw := []byte("ab")
		bytesObj := a.AddBytes(raw)
		raw[0] = 'z'
		assert.Equal(t, []byte("zb"), a.Bytes(bytesObj))
	})

	t.Run("extraction copies", func(t *testing.T) {
		a := NewArena(object.Shared)
		obj := a.AddBig(big.NewInt(5))
		a.Big(obj).SetInt64(6)
		assert.Equal(t, big.NewInt(5), a.Big(obj))
	})
}

func TestArenaTruthy(t *testing.T) {
	t.Parallel()
	a := NewArena(object.Shared)

	assert.False(t, a.Truthy(nil))
	assert.False(t, a.Truthy(golisp.BooleanWithValue(false)))
	assert.True(t, a.Truthy(golisp.BooleanWithValue(true)))
	assert.True(t, a.Truthy(golisp.IntegerWithValue(0)))
	assert.True(t, a.Truthy(golisp.Intern("t")))
}

func TestArenaImmediates(t *testing.T) {
	t.Parallel()
	a := NewArena(object.Exclusive)

	n := a.FromInt(-9)
	require.Equal(t, object.TagInt, a.Tag(n))
	assert.Equal(t, int64(-9), a.Int(n))
	assert.Equal(t, 0, a.Allocs())
	assert.Equal(t, object.Exclusive, a.Mode())
}
