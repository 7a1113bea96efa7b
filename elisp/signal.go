package elisp

import (
	"errors"

	"elarith/number"
)

// Signal is an Emacs-style error condition raised by a primitive. Err
// keeps the underlying Go error for errors.Is and errors.As.
type Signal struct {
	Condition string
	Err       error
}

func (s Signal) Error() string {
	if s.Err == nil {
		return "signal: " + s.Condition
	}
	return "signal: " + s.Condition + ": " + s.Err.Error()
}

func (s Signal) Unwrap() error { return s.Err }

// errorParents mirrors the standard condition hierarchy for the
// conditions primitives raise.
var errorParents = map[string]string{
	"error":               "",
	"arith-error":         "error",
	"overflow-error":      "arith-error",
	"args-out-of-range":   "error",
	"wrong-type-argument": "error",
}

// ConditionIs reports whether condition is cond or inherits from it.
func ConditionIs(condition, cond string) bool {
	for c := condition; c != ""; c = errorParents[c] {
		if c == cond {
			return true
		}
	}
	return false
}

// signal converts a core error into the condition a Lisp caller sees.
func signal(err error) error {
	if err == nil {
		return nil
	}
	var sig Signal
	if errors.As(err, &sig) {
		return err
	}
	var conv *number.ConversionError
	switch {
	case errors.Is(err, number.ErrArithmetic):
		return Signal{Condition: "arith-error", Err: err}
	case errors.Is(err, number.ErrWrongType):
		return Signal{Condition: "wrong-type-argument", Err: err}
	case errors.As(err, &conv):
		if conv.Target == "integer" {
			return Signal{Condition: "overflow-error", Err: err}
		}
		return Signal{Condition: "args-out-of-range", Err: err}
	}
	return Signal{Condition: "error", Err: err}
}
