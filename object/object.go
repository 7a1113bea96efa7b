// Package object describes the tagged-value heap that numeric and text
// primitives consume. The heap itself (tagging, placement, collection)
// belongs to the host runtime; primitives only see it through Arena.
package object

import "math/big"

// Object is an opaque handle to a tagged value owned by an Arena.
type Object any

// Tag identifies what an Object holds.
type Tag uint8

const (
	TagNil Tag = iota
	TagInt
	TagFloat
	TagBig
	TagString
	TagUnibyte
	TagSymbol
	TagOther
)

var tagNames = [...]string{
	TagNil:     "nil",
	TagInt:     "fixnum",
	TagFloat:   "float",
	TagBig:     "bignum",
	TagString:  "string",
	TagUnibyte: "unibyte-string",
	TagSymbol:  "symbol",
	TagOther:   "object",
}

func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return "unknown"
}

// IsNumber reports whether t is one of the numeric tower tags.
func (t Tag) IsNumber() bool {
	return t == TagInt || t == TagFloat || t == TagBig
}

// Mode selects how an Arena takes ownership of allocated payloads.
type Mode uint8

const (
	// Exclusive arenas are fresh and unshared: every payload handed to
	// them is copied, so the resulting object aliases nothing.
	Exclusive Mode = iota
	// Shared arenas belong to a running heap that other code mutates.
	// Payloads are adopted as-is and the caller gives up its reference.
	Shared
)

func (m Mode) String() string {
	if m == Exclusive {
		return "exclusive"
	}
	return "shared"
}

// Arena is the capability the host runtime grants to primitives. Each
// allocation may trigger a collection inside the host; callers hold no
// invariants across an Add call that the host does not guarantee.
type Arena interface {
	Mode() Mode

	// Tag inspects obj without extracting it.
	Tag(obj Object) Tag

	// Extraction. Each accessor assumes Tag(obj) matched; Big returns a
	// copy the caller owns.
	Int(obj Object) int64
	Float(obj Object) float64
	Big(obj Object) *big.Int
	Text(obj Object) string
	Bytes(obj Object) []byte
	Truthy(obj Object) bool

	// Construction. Fixnums and booleans are immediates; the Add family
	// places a new object on the heap.
	FromInt(n int64) Object
	FromBool(b bool) Object
	AddFloat(f float64) Object
	AddBig(b *big.Int) Object
	AddText(s string) Object
	AddBytes(b []byte) Object
}
