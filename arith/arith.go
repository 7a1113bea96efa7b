// Package arith implements the variadic arithmetic procedures of the
// runtime on top of the numeric tower in package number. Each function
// folds its operands left to right.
package arith

import (
	"fmt"

	"elarith/number"
)

var one = number.Int(1)

// Add implements +. With no operands the result is 0.
func Add(nums []number.Value) number.Value {
	acc := number.Int(0)
	for _, n := range nums {
		acc = number.Combine(acc, n, number.AddOps)
	}
	return acc
}

// Sub implements -. A nil first operand yields 0, a lone operand is
// negated, otherwise nums are subtracted from first in order.
func Sub(first *number.Value, nums []number.Value) number.Value {
	if first == nil {
		return number.Int(0)
	}
	if len(nums) == 0 {
		return first.Neg()
	}
	acc := *first
	for _, n := range nums {
		acc = number.Combine(acc, n, number.SubOps)
	}
	return acc
}

// Mul implements *. With no operands the result is 1.
func Mul(nums []number.Value) number.Value {
	acc := one
	for _, n := range nums {
		acc = number.Combine(acc, n, number.MulOps)
	}
	return acc
}

// Div implements /. Without divisors first is returned unchanged. The
// fold stops at the first integer zero divisor.
func Div(first number.Value, divisors []number.Value) (number.Value, error) {
	acc := first
	for i, d := range divisors {
		q, err := number.Quo(acc, d)
		if err != nil {
			return number.Value{}, fmt.Errorf("divisor %d: %w", i+1, err)
		}
		acc = q
	}
	return acc, nil
}

// AddOne implements 1+.
func AddOne(n number.Value) number.Value {
	return number.Combine(n, one, number.AddOps)
}

// SubOne implements 1-.
func SubOne(n number.Value) number.Value {
	return number.Combine(n, one, number.SubOps)
}

// Mod implements mod, the floored modulo over the whole tower.
func Mod(x, y number.Value) (number.Value, error) {
	return number.Mod(x, y)
}

// Rem implements %, the truncated remainder of two fixnums.
func Rem(x, y int64) (int64, error) {
	r, err := number.Rem(number.Int(x), number.Int(y))
	if err != nil {
		return 0, err
	}
	return r.Int64(), nil
}

// Equal implements =: first must equal every other operand.
func Equal(first number.Value, nums []number.Value) bool {
	for _, n := range nums {
		if !number.Equal(first, n) {
			return false
		}
	}
	return true
}

// NotEqual implements /=: first must differ from every other operand.
func NotEqual(first number.Value, nums []number.Value) bool {
	for _, n := range nums {
		if number.Equal(first, n) {
			return false
		}
	}
	return true
}

// chain checks rel between each operand and the one immediately before
// it, carrying the running operand forward after every success.
func chain(first number.Value, nums []number.Value, rel func(a, b number.Value) bool) bool {
	acc := first
	for _, n := range nums {
		if !rel(acc, n) {
			return false
		}
		acc = n
	}
	return true
}

func Less(first number.Value, nums []number.Value) bool {
	return chain(first, nums, number.Less)
}

func LessEqual(first number.Value, nums []number.Value) bool {
	return chain(first, nums, number.LessEqual)
}

func Greater(first number.Value, nums []number.Value) bool {
	return chain(first, nums, number.Greater)
}

func GreaterEqual(first number.Value, nums []number.Value) bool {
	return chain(first, nums, number.GreaterEqual)
}

// Max returns the largest operand. On a tie, or when a pair has no
// order, the later operand replaces the running maximum.
func Max(first number.Value, nums []number.Value) number.Value {
	acc := first
	for _, n := range nums {
		if !number.Greater(acc, n) {
			acc = n
		}
	}
	return acc
}

// Min returns the smallest operand, with the same rightmost tie-break
// as Max.
func Min(first number.Value, nums []number.Value) number.Value {
	acc := first
	for _, n := range nums {
		if !number.Less(acc, n) {
			acc = n
		}
	}
	return acc
}

// LogIor is the bitwise OR of fixnums; 0 with no operands.
func LogIor(ints []int64) int64 {
	var acc int64
	for _, n := range ints {
		acc |= n
	}
	return acc
}

// LogAnd is the bitwise AND of fixnums; -1 (all bits set) with no
// operands.
func LogAnd(ints []int64) int64 {
	acc := int64(-1)
	for _, n := range ints {
		acc &= n
	}
	return acc
}

// LogXor is the bitwise exclusive OR of fixnums; 0 with no operands.
func LogXor(ints []int64) int64 {
	var acc int64
	for _, n := range ints {
		acc ^= n
	}
	return acc
}
