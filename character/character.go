// Package character validates character codes and builds text and byte
// buffers from them.
package character

import (
	"math"
	"unicode/utf8"

	"elarith/number"
)

const (
	// MaxUnicode is the largest Unicode scalar value.
	MaxUnicode = utf8.MaxRune
	// MaxChar is the largest character code the runtime's unibyte
	// compatible character space admits.
	MaxChar = 0x3FFFFF

	// MaxBytes bounds the encoded size of a MakeString buffer.
	MaxBytes = math.MaxInt32
)

// IsCharacter reports whether n is a valid Unicode scalar value.
func IsCharacter(n int64) bool {
	_, err := FromInt(n)
	return err == nil
}

// FromInt validates n as a Unicode scalar value. Negative values, values
// above MaxUnicode and surrogates are rejected.
func FromInt(n int64) (rune, error) {
	if n < 0 || n > MaxUnicode || !utf8.ValidRune(rune(n)) {
		return 0, &number.ConversionError{Target: "character", Value: n}
	}
	return rune(n), nil
}

// ByteFromInt validates n as an 8-bit byte.
func ByteFromInt(n int64) (byte, error) {
	if n < 0 || n > 0xFF {
		return 0, &number.ConversionError{Target: "byte", Value: n}
	}
	return byte(n), nil
}

// MaxCharacter returns MaxUnicode when unicode is set and MaxChar
// otherwise.
func MaxCharacter(unicode bool) int64 {
	if unicode {
		return MaxUnicode
	}
	return MaxChar
}

// String concatenates points as UTF-8 text. The first invalid point
// aborts the build and nothing is returned.
func String(points []int64) (string, error) {
	runes := make([]rune, len(points))
	for i, p := range points {
		r, err := FromInt(p)
		if err != nil {
			return "", err
		}
		runes[i] = r
	}
	return string(runes), nil
}

// UnibyteString converts values to raw bytes, failing on the first value
// outside [0, 255].
func UnibyteString(values []int64) ([]byte, error) {
	out := make([]byte, len(values))
	for i, v := range values {
		b, err := ByteFromInt(v)
		if err != nil {
			return nil, err
		}
		out[i] = b
	}
	return out, nil
}

// Buffer is the result of MakeString: UTF-8 text when Multibyte is set,
// raw bytes otherwise. The layout is fixed when the buffer is built.
type Buffer struct {
	Multibyte bool
	Data      []byte
}

// Text returns the buffer contents as a string.
func (b Buffer) Text() string {
	return string(b.Data)
}

// MakeString builds a buffer of length copies of init. With multibyte set
// init must be a Unicode scalar and is stored UTF-8 encoded; otherwise it
// must be a byte. The encoded size is checked against MaxBytes and the
// full capacity reserved before filling.
func MakeString(length, init int64, multibyte bool) (Buffer, error) {
	if length < 0 {
		return Buffer{}, &number.ConversionError{Target: "length", Value: length}
	}
	if multibyte {
		r, err := FromInt(init)
		if err != nil {
			return Buffer{}, err
		}
		size := int64(utf8.RuneLen(r))
		if length > MaxBytes/size {
			return Buffer{}, &number.ConversionError{Target: "length", Value: length}
		}
		data := make([]byte, 0, length*size)
		for range length {
			data = utf8.AppendRune(data, r)
		}
		return Buffer{Multibyte: true, Data: data}, nil
	}
	b, err := ByteFromInt(init)
	if err != nil {
		return Buffer{}, err
	}
	if length > MaxBytes {
		return Buffer{}, &number.ConversionError{Target: "length", Value: length}
	}
	data := make([]byte, length)
	for i := range data {
		data[i] = b
	}
	return Buffer{Data: data}, nil
}
