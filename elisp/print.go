package elisp

import (
	"strconv"
	"strings"

	"github.com/steelseries/golisp"

	"elarith/number"
	"elarith/object"
)

// Format renders d in Emacs print syntax. Boxed numbers and unibyte
// strings print as their values; everything else defers to golisp.
func Format(a object.Arena, d *golisp.Data) string {
	switch a.Tag(d) {
	case object.TagInt:
		return strconv.FormatInt(a.Int(d), 10)
	case object.TagFloat:
		return number.FormatFloat(a.Float(d))
	case object.TagBig:
		return number.Big(a.Big(d)).String()
	case object.TagString:
		return quoteText(a.Text(d))
	case object.TagUnibyte:
		return quoteBytes(a.Bytes(d))
	case object.TagNil:
		return "nil"
	}
	return golisp.String(d)
}

func quoteText(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for _, r := range s {
		if r == '"' || r == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	sb.WriteByte('"')
	return sb.String()
}

// quoteBytes prints non-ASCII bytes as octal escapes, the way unibyte
// strings print.
func quoteBytes(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b) + 2)
	sb.WriteByte('"')
	for _, c := range b {
		switch {
		case c == '"' || c == '\\':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		case c >= 0x80:
			sb.WriteByte('\\')
			sb.WriteString(strconv.FormatUint(uint64(c), 8))
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
