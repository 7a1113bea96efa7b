package number

import (
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Fixnum bounds. Eight bits of a 64-bit word are reserved for tagging.
const (
	MaxFixnum int64 = math.MaxInt64 >> 8
	MinFixnum int64 = math.MinInt64 >> 8
)

var (
	maxFixnumBig = big.NewInt(MaxFixnum)
	minFixnumBig = big.NewInt(MinFixnum)
)

// Kind identifies the active variant of a Value.
type Kind uint8

const (
	KindInt Kind = iota
	KindFloat
	KindBig
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "fixnum"
	case KindFloat:
		return "float"
	case KindBig:
		return "bignum"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is one rung of the numeric tower. Exactly one of the payload
// fields is meaningful, selected by kind. A Value owns its big payload;
// nothing outside the package mutates it.
type Value struct {
	kind Kind
	i    int64
	f    float64
	b    *big.Int
}

// Int returns a fixnum. Values outside the fixnum range come back as a
// bignum so the range invariant of KindInt always holds.
func Int(n int64) Value {
	if n > MaxFixnum || n < MinFixnum {
		return Value{kind: KindBig, b: big.NewInt(n)}
	}
	return Value{kind: KindInt, i: n}
}

// Float returns a float value.
func Float(f float64) Value {
	return Value{kind: KindFloat, f: f}
}

// Big returns a bignum holding a copy of b. It does not narrow; use
// CoerceInteger for that.
func Big(b *big.Int) Value {
	return Value{kind: KindBig, b: new(big.Int).Set(b)}
}

// adoptBig wraps b without copying. Callers must not retain b.
func adoptBig(b *big.Int) Value {
	return Value{kind: KindBig, b: b}
}

func (v Value) Kind() Kind { return v.kind }

// Int64 returns the fixnum payload. It is zero for other kinds.
func (v Value) Int64() int64 { return v.i }

// Float64 returns the float payload. It is zero for other kinds.
func (v Value) Float64() float64 { return v.f }

// BigInt returns a copy of the bignum payload, or nil for other kinds.
func (v Value) BigInt() *big.Int {
	if v.kind != KindBig {
		return nil
	}
	return new(big.Int).Set(v.b)
}

// Neg negates v within its variant. The fixnum range is asymmetric, so
// negating MinFixnum yields a bignum.
func (v Value) Neg() Value {
	switch v.kind {
	case KindInt:
		return Int(-v.i)
	case KindFloat:
		return Float(-v.f)
	case KindBig:
		return adoptBig(new(big.Int).Neg(v.b)).narrow()
	}
	panic("number: invalid kind " + v.kind.String())
}

// IsZero reports whether v is zero in its own variant.
func (v Value) IsZero() bool {
	switch v.kind {
	case KindInt:
		return v.i == 0
	case KindFloat:
		return v.f == 0
	case KindBig:
		return v.b.Sign() == 0
	}
	panic("number: invalid kind " + v.kind.String())
}

// IsInteger reports whether v is a fixnum or a bignum.
func (v Value) IsInteger() bool {
	return v.kind == KindInt || v.kind == KindBig
}

// narrow restores the bignum invariant: a bignum that fits the fixnum
// range becomes a fixnum.
func (v Value) narrow() Value {
	if v.kind == KindBig && fitsFixnum(v.b) {
		return Value{kind: KindInt, i: v.b.Int64()}
	}
	return v
}

func fitsFixnum(b *big.Int) bool {
	return b.Cmp(minFixnumBig) >= 0 && b.Cmp(maxFixnumBig) <= 0
}

// bigToFloat converts b to the nearest float64. Magnitudes beyond the
// float64 range saturate to a signed infinity and report ok=false.
func bigToFloat(b *big.Int) (f float64, ok bool) {
	f, _ = new(big.Float).SetInt(b).Float64()
	return f, !math.IsInf(f, 0)
}

// String renders v in Emacs print syntax.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return FormatFloat(v.f)
	case KindBig:
		return v.b.String()
	}
	return "#<invalid number>"
}

// FormatFloat prints f the way the Emacs printer does: integral floats
// keep a trailing ".0" and non-finite values use the e+INF/e+NaN forms.
func FormatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "1.0e+INF"
	case math.IsInf(f, -1):
		return "-1.0e+INF"
	case math.IsNaN(f):
		if math.Signbit(f) {
			return "-0.0e+NaN"
		}
		return "0.0e+NaN"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// ParseFloat reads a float in the syntax FormatFloat prints, including
// the e+INF and e+NaN forms. Magnitudes beyond the float64 range read as
// a signed infinity.
func ParseFloat(s string) (float64, error) {
	mantissa, special, ok := strings.Cut(s, "e+")
	if ok && (special == "INF" || special == "NaN") {
		sign := 1.0
		if strings.HasPrefix(mantissa, "-") {
			sign = -1
		}
		if special == "INF" {
			return math.Inf(int(sign)), nil
		}
		return math.Copysign(math.NaN(), sign), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, &ConversionError{Target: "float", Value: s}
	}
	return f, nil
}
