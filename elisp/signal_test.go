package elisp

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elarith/number"
)

func TestSignalConditions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("divisor 1: %w", number.ErrArithmetic), "arith-error"},
		{number.WrongType("numberp", "x"), "wrong-type-argument"},
		{&number.ConversionError{Target: "integer", Value: "1.0e+INF"}, "overflow-error"},
		{&number.ConversionError{Target: "byte", Value: 256}, "args-out-of-range"},
		{&number.ConversionError{Target: "character", Value: -1}, "args-out-of-range"},
		{errors.New("boom"), "error"},
	}
	for _, tt := range tests {
		err := signal(tt.err)
		var sig Signal
		require.True(t, errors.As(err, &sig), "%v", tt.err)
		assert.Equal(t, tt.want, sig.Condition)
		assert.ErrorIs(t, err, tt.err)
	}

	assert.NoError(t, signal(nil))

	existing := Signal{Condition: "arith-error"}
	assert.Equal(t, error(existing), signal(existing))
}

func TestSignalMessage(t *testing.T) {
	t.Parallel()

	assert.EqualError(t, Signal{Condition: "error"}, "signal: error")
	err := signal(number.WrongType("fixnump", 1.5))
	assert.EqualError(t, err, "signal: wrong-type-argument: wrong-type-argument: fixnump 1.5")
}

func TestConditionIs(t *testing.T) {
	t.Parallel()

	assert.True(t, ConditionIs("overflow-error", "arith-error"))
	assert.True(t, ConditionIs("overflow-error", "error"))
	assert.True(t, ConditionIs("args-out-of-range", "args-out-of-range"))
	assert.False(t, ConditionIs("arith-error", "overflow-error"))
	assert.False(t, ConditionIs("wrong-type-argument", "arith-error"))
	assert.False(t, ConditionIs("void-function", "error"))
}
