package number

import (
	"math"
	"math/big"
)

// CoerceInteger narrows v to the smallest integer variant that holds it.
// Floats are truncated toward zero; a float that is NaN or infinite has
// no integer value and yields a *ConversionError. Fixnums pass through.
func CoerceInteger(v Value) (Value, error) {
	switch v.kind {
	case KindInt:
		return v, nil
	case KindFloat:
		x := v.f
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return Value{}, &ConversionError{Target: "integer", Value: FormatFloat(x)}
		}
		if x <= float64(MaxFixnum) && x >= float64(MinFixnum) {
			return Int(int64(x)), nil
		}
		b, _ := new(big.Float).SetFloat64(x).Int(nil)
		return adoptBig(b).narrow(), nil
	case KindBig:
		return v.narrow(), nil
	}
	panic("number: invalid kind " + v.kind.String())
}

// ToFloat widens v to a float. Bignums beyond the float64 range
// saturate to a signed infinity.
func ToFloat(v Value) Value {
	switch v.kind {
	case KindInt:
		return Float(float64(v.i))
	case KindFloat:
		return v
	case KindBig:
		f, _ := bigToFloat(v.b)
		return Float(f)
	}
	panic("number: invalid kind " + v.kind.String())
}
