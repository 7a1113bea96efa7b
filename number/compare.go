package number

import (
	"math"
	"math/big"
)

// floatULPs is the tolerance, in units in the last place, for any
// equality test that involves a float operand.
const floatULPs = 2

// ApproxEqual reports whether x and y are within machine epsilon of each
// other or at most two representable doubles apart. NaN equals nothing.
func ApproxEqual(x, y float64) bool {
	if math.IsNaN(x) || math.IsNaN(y) {
		return false
	}
	if x == y {
		return true
	}
	if math.Abs(x-y) <= epsilon {
		return true
	}
	if math.Signbit(x) != math.Signbit(y) {
		return false
	}
	dx, dy := int64(math.Float64bits(x)), int64(math.Float64bits(y))
	d := dx - dy
	if d < 0 {
		d = -d
	}
	return d <= floatULPs
}

// epsilon is the difference between 1.0 and the next representable float64.
var epsilon = math.Nextafter(1, 2) - 1

// EqualInt reports whether v equals n. Integer variants compare exactly.
func (v Value) EqualInt(n int64) bool {
	switch v.kind {
	case KindInt:
		return v.i == n
	case KindFloat:
		return ApproxEqual(v.f, float64(n))
	case KindBig:
		return v.b.IsInt64() && v.b.Int64() == n
	}
	panic("number: invalid kind " + v.kind.String())
}

// EqualFloat reports whether v is within tolerance of f. A bignum that
// has no finite float64 value is never equal to f.
func (v Value) EqualFloat(f float64) bool {
	switch v.kind {
	case KindInt:
		return ApproxEqual(float64(v.i), f)
	case KindFloat:
		return ApproxEqual(v.f, f)
	case KindBig:
		x, ok := bigToFloat(v.b)
		return ok && ApproxEqual(x, f)
	}
	panic("number: invalid kind " + v.kind.String())
}

// EqualBig reports whether v equals b.
func (v Value) EqualBig(b *big.Int) bool {
	switch v.kind {
	case KindInt:
		return b.IsInt64() && b.Int64() == v.i
	case KindFloat:
		y, ok := bigToFloat(b)
		return ok && ApproxEqual(v.f, y)
	case KindBig:
		return v.b.Cmp(b) == 0
	}
	panic("number: invalid kind " + v.kind.String())
}

// Equal reports numeric equality of a and b under the tolerance rules of
// EqualInt, EqualFloat and EqualBig.
func Equal(a, b Value) bool {
	switch b.kind {
	case KindInt:
		return a.EqualInt(b.i)
	case KindFloat:
		return a.EqualFloat(b.f)
	case KindBig:
		return a.EqualBig(b.b)
	}
	panic("number: invalid kind " + b.kind.String())
}

// Compare orders a against b, returning -1, 0 or +1. ok is false when
// the pair has no defined order: a NaN operand, or a bignum whose float
// conversion is not finite when compared against a float.
func Compare(a, b Value) (c int, ok bool) {
	switch pairOf(a, b) {
	case intInt:
		return cmpInt64(a.i, b.i), true
	case intFloat:
		return cmpFloat(float64(a.i), b.f)
	case intBig:
		return big.NewInt(a.i).Cmp(b.b), true
	case floatInt:
		return cmpFloat(a.f, float64(b.i))
	case floatFloat:
		return cmpFloat(a.f, b.f)
	case floatBig:
		y, fin := bigToFloat(b.b)
		if !fin {
			return 0, false
		}
		return cmpFloat(a.f, y)
	case bigInt:
		return a.b.Cmp(big.NewInt(b.i)), true
	case bigFloat:
		x, fin := bigToFloat(a.b)
		if !fin {
			return 0, false
		}
		return cmpFloat(x, b.f)
	case bigBig:
		return a.b.Cmp(b.b), true
	}
	panic("number: invalid operand kinds " + a.kind.String() + ", " + b.kind.String())
}

func cmpInt64(x, y int64) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

func cmpFloat(x, y float64) (int, bool) {
	switch {
	case x < y:
		return -1, true
	case x > y:
		return 1, true
	case x == y:
		return 0, true
	}
	return 0, false
}

// Less, LessEqual, Greater and GreaterEqual are the ordered relations.
// An incomparable pair satisfies none of them.
func Less(a, b Value) bool {
	c, ok := Compare(a, b)
	return ok && c < 0
}

func LessEqual(a, b Value) bool {
	c, ok := Compare(a, b)
	return ok && c <= 0
}

func Greater(a, b Value) bool {
	c, ok := Compare(a, b)
	return ok && c > 0
}

func GreaterEqual(a, b Value) bool {
	c, ok := Compare(a, b)
	return ok && c >= 0
}
