package number

import (
	"math"
	"math/big"
	"math/bits"
)

// Ops holds one implementation of a binary operator per promotion class.
//
// Int reports ok=false when the true result does not fit an int64; the
// dispatcher then recomputes with Big. Big must not modify its operands.
type Ops struct {
	Int   func(x, y int64) (z int64, ok bool)
	Float func(x, y float64) float64
	Big   func(x, y *big.Int) *big.Int
}

// pairing of operand kinds, one constant per cell of the promotion matrix.
type pairing uint8

const (
	intInt pairing = iota
	intFloat
	intBig
	floatInt
	floatFloat
	floatBig
	bigInt
	bigFloat
	bigBig
)

func pairOf(a, b Value) pairing {
	return pairing(uint8(a.kind)*3 + uint8(b.kind))
}

// Combine applies ops to a and b after promotion:
//
//	a \ b   Int        Float       Big
//	Int     Int        Float       Big
//	Float   Float      Float       Float (big demoted)
//	Big     Big        Float       Big
//
// Fixnum results that leave the fixnum range are promoted to bignums, and
// bignum results that fit the range are narrowed. A bignum demoted to
// float saturates to a signed infinity when it exceeds the float64 range.
func Combine(a, b Value, ops Ops) Value {
	switch pairOf(a, b) {
	case intInt:
		if z, ok := ops.Int(a.i, b.i); ok {
			return Int(z)
		}
		return adoptBig(ops.Big(big.NewInt(a.i), big.NewInt(b.i))).narrow()
	case intFloat:
		return Float(ops.Float(float64(a.i), b.f))
	case intBig:
		return adoptBig(ops.Big(big.NewInt(a.i), b.b)).narrow()
	case floatInt:
		return Float(ops.Float(a.f, float64(b.i)))
	case floatFloat:
		return Float(ops.Float(a.f, b.f))
	case floatBig:
		y, _ := bigToFloat(b.b)
		return Float(ops.Float(a.f, y))
	case bigInt:
		return adoptBig(ops.Big(a.b, big.NewInt(b.i))).narrow()
	case bigFloat:
		x, _ := bigToFloat(a.b)
		return Float(ops.Float(x, b.f))
	case bigBig:
		return adoptBig(ops.Big(a.b, b.b)).narrow()
	}
	panic("number: invalid operand kinds " + a.kind.String() + ", " + b.kind.String())
}

var AddOps = Ops{
	Int: func(x, y int64) (int64, bool) {
		z := x + y
		return z, (z > x) == (y > 0)
	},
	Float: func(x, y float64) float64 { return x + y },
	Big:   func(x, y *big.Int) *big.Int { return new(big.Int).Add(x, y) },
}

var SubOps = Ops{
	Int: func(x, y int64) (int64, bool) {
		z := x - y
		return z, (z < x) == (y > 0)
	},
	Float: func(x, y float64) float64 { return x - y },
	Big:   func(x, y *big.Int) *big.Int { return new(big.Int).Sub(x, y) },
}

var MulOps = Ops{
	Int:   mulInt64,
	Float: func(x, y float64) float64 { return x * y },
	Big:   func(x, y *big.Int) *big.Int { return new(big.Int).Mul(x, y) },
}

// QuoOps truncates integer quotients toward zero. Callers must rule out
// an integer zero divisor first; see Quo.
var QuoOps = Ops{
	Int: func(x, y int64) (int64, bool) {
		if x == math.MinInt64 && y == -1 {
			return 0, false
		}
		return x / y, true
	},
	Float: func(x, y float64) float64 { return x / y },
	Big:   func(x, y *big.Int) *big.Int { return new(big.Int).Quo(x, y) },
}

// RemOps is the truncated remainder: the result takes the sign of the
// dividend.
var RemOps = Ops{
	Int: func(x, y int64) (int64, bool) {
		if y == -1 {
			return 0, true
		}
		return x % y, true
	},
	Float: math.Mod,
	Big:   func(x, y *big.Int) *big.Int { return new(big.Int).Rem(x, y) },
}

// ModOps is the floored modulo: the result takes the sign of the divisor.
var ModOps = Ops{
	Int: func(x, y int64) (int64, bool) {
		if y == -1 {
			return 0, true
		}
		r := x % y
		if r != 0 && (r < 0) != (y < 0) {
			r += y
		}
		return r, true
	},
	Float: func(x, y float64) float64 {
		r := math.Mod(x, y)
		if r != 0 && (r < 0) != (y < 0) {
			r += y
		}
		return r
	},
	Big: func(x, y *big.Int) *big.Int {
		r := new(big.Int).Rem(x, y)
		if r.Sign() != 0 && r.Sign() != y.Sign() {
			r.Add(r, y)
		}
		return r
	},
}

func mulInt64(x, y int64) (int64, bool) {
	if x == 0 || y == 0 {
		return 0, true
	}
	neg := (x < 0) != (y < 0)
	hi, lo := bits.Mul64(absUint64(x), absUint64(y))
	if hi != 0 {
		return 0, false
	}
	if neg {
		if lo > 1<<63 {
			return 0, false
		}
		return int64(-lo), true
	}
	if lo > math.MaxInt64 {
		return 0, false
	}
	return int64(lo), true
}

func absUint64(x int64) uint64 {
	if x < 0 {
		return uint64(-x)
	}
	return uint64(x)
}

// Quo divides a by b. An integer divided by an integer zero fails with
// ErrArithmetic; any float operand follows IEEE semantics instead.
func Quo(a, b Value) (Value, error) {
	if a.IsInteger() && b.IsInteger() && b.IsZero() {
		return Value{}, divideByZero("division")
	}
	return Combine(a, b, QuoOps), nil
}

// Rem is the truncated remainder of a by b.
func Rem(a, b Value) (Value, error) {
	if a.IsInteger() && b.IsInteger() && b.IsZero() {
		return Value{}, divideByZero("remainder")
	}
	return Combine(a, b, RemOps), nil
}

// Mod is the floored modulo of a by b.
func Mod(a, b Value) (Value, error) {
	if a.IsInteger() && b.IsInteger() && b.IsZero() {
		return Value{}, divideByZero("modulo")
	}
	return Combine(a, b, ModOps), nil
}
