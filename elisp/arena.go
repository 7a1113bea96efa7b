package elisp

import (
	"math/big"
	"unsafe"

	"github.com/steelseries/golisp"

	"elarith/object"
)

// Object type names used to box values golisp has no native type for.
const (
	floatObjectType   = "float64"
	bignumObjectType  = "bignum"
	unibyteObjectType = "unibyte-string"
)

// Arena adapts the golisp heap to object.Arena. golisp integers serve as
// fixnum immediates. golisp floats are single precision, so only floats
// that survive a float32 round trip use them; the rest are boxed.
type Arena struct {
	mode   object.Mode
	allocs int
}

var _ object.Arena = (*Arena)(nil)

func NewArena(mode object.Mode) *Arena {
	return &Arena{mode: mode}
}

func (a *Arena) Mode() object.Mode { return a.mode }

// Allocs returns the number of heap objects placed through a.
func (a *Arena) Allocs() int { return a.allocs }

func data(obj object.Object) *golisp.Data {
	d, _ := obj.(*golisp.Data)
	return d
}

func (a *Arena) Tag(obj object.Object) object.Tag {
	d := data(obj)
	switch {
	case d == nil || golisp.NilP(d):
		return object.TagNil
	case golisp.IntegerP(d):
		return object.TagInt
	case golisp.FloatP(d):
		return object.TagFloat
	case golisp.StringP(d):
		return object.TagString
	case golisp.SymbolP(d):
		return object.TagSymbol
	case golisp.ObjectP(d):
		switch golisp.ObjectType(d) {
		case floatObjectType:
			return object.TagFloat
		case bignumObjectType:
			return object.TagBig
		case unibyteObjectType:
			return object.TagUnibyte
		}
	}
	return object.TagOther
}

func (a *Arena) Int(obj object.Object) int64 {
	return golisp.IntegerValue(data(obj))
}

func (a *Arena) Float(obj object.Object) float64 {
	d := data(obj)
	if golisp.ObjectP(d) {
		return *(*float64)(golisp.ObjectValue(d))
	}
	return float64(golisp.FloatValue(d))
}

func (a *Arena) Big(obj object.Object) *big.Int {
	b := (*big.Int)(golisp.ObjectValue(data(obj)))
	return new(big.Int).Set(b)
}

func (a *Arena) Text(obj object.Object) string {
	return golisp.StringValue(data(obj))
}

func (a *Arena) Bytes(obj object.Object) []byte {
	b := *(*[]byte)(golisp.ObjectValue(data(obj)))
	return append([]byte(nil), b...)
}

// Truthy follows Lisp truth: everything except nil and #f.
func (a *Arena) Truthy(obj object.Object) bool {
	d := data(obj)
	if d == nil || golisp.NilP(d) {
		return false
	}
	if golisp.BooleanP(d) {
		return golisp.BooleanValue(d)
	}
	return true
}

func (a *Arena) FromInt(n int64) object.Object {
	return golisp.IntegerWithValue(n)
}

func (a *Arena) FromBool(b bool) object.Object {
	return golisp.BooleanWithValue(b)
}

func (a *Arena) AddFloat(f float64) object.Object {
	a.allocs++
	if float64(float32(f)) == f {
		return golisp.FloatWithValue(float32(f))
	}
	p := new(float64)
	*p = f
	return golisp.ObjectWithTypeAndValue(floatObjectType, unsafe.Pointer(p))
}

func (a *Arena) AddBig(b *big.Int) object.Object {
	a.allocs++
	if a.mode == object.Exclusive {
		b = new(big.Int).Set(b)
	}
	return golisp.ObjectWithTypeAndValue(bignumObjectType, unsafe.Pointer(b))
}

func (a *Arena) AddText(s string) object.Object {
	a.allocs++
	return golisp.StringWithValue(s)
}

func (a *Arena) AddBytes(b []byte) object.Object {
	a.allocs++
	if a.mode == object.Exclusive {
		b = append([]byte(nil), b...)
	}
	return golisp.ObjectWithTypeAndValue(unibyteObjectType, unsafe.Pointer(&b))
}
