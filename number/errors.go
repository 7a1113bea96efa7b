package number

import (
	"errors"
	"fmt"
)

// ErrArithmetic is returned for integer division or modulo by zero.
var ErrArithmetic = errors.New("arith-error")

// ErrWrongType is returned when an operand is not of the kind an
// operation accepts.
var ErrWrongType = errors.New("wrong-type-argument")

// ConversionError reports a value that cannot be represented in the
// target domain: a byte, a Unicode scalar, or an integer converted from a
// non-finite float.
type ConversionError struct {
	Target string
	Value  any
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("cannot convert %v to %s", e.Value, e.Target)
}

// WrongType builds an ErrWrongType naming the expected predicate, in the
// shape of Emacs' (wrong-type-argument numberp x).
func WrongType(predicate string, v any) error {
	return fmt.Errorf("%w: %s %v", ErrWrongType, predicate, v)
}

func divideByZero(op string) error {
	return fmt.Errorf("%w: %s by zero", ErrArithmetic, op)
}
