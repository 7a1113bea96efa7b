package main

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// floatLiteralPattern matches the Emacs decimal float syntax. A trailing
// dot without digits ("1.") reads as an integer and is left alone.
var floatLiteralPattern = regexp.MustCompile(
	`^[+-]?(\d*\.\d+([eE][+-]?\d+)?|\d+(\.\d*)?[eE][+-]?\d+|\d+\.\d+e\+(INF|NaN))$`)

// preprocessElisp rewrites the Emacs Lisp syntax golisp cannot read:
// ?x character literals and #x/#o/#b radix literals become decimal
// integers, #'f becomes 'f, the 1+/1- symbols are renamed so they are
// not read as numbers, and float literals become (el-float "text") so
// they keep double precision.
func preprocessElisp(src string) (string, error) {
	var out strings.Builder
	out.Grow(len(src))
	inString := false
	inComment := false
	escaped := false

	for i := 0; i < len(src); {
		ch := src[i]

		if inComment {
			out.WriteByte(ch)
			if ch == '\n' {
				inComment = false
			}
			i++
			continue
		}

		if inString {
			out.WriteByte(ch)
			if escaped {
				escaped = false
			} else if ch == '\\' {
				escaped = true
			} else if ch == '"' {
				inString = false
			}
			i++
			continue
		}

		switch ch {
		case ';':
			inComment = true
			out.WriteByte(ch)
			i++
			continue
		case '"':
			inString = true
			out.WriteByte(ch)
			i++
			continue
		case '[', ']':
			return "", errors.New("vector literals are not supported")
		case '#':
			if i+1 < len(src) && src[i+1] == '\'' {
				out.WriteByte('\'')
				i += 2
				continue
			}
			if repl, consumed, ok := parseRadixLiteral(src[i:]); ok {
				out.WriteString(repl)
				i += consumed
				continue
			}
		case '?':
			if i == 0 || isDelimiter(src[i-1]) {
				if repl, consumed, ok := parseCharLiteral(src[i:]); ok {
					out.WriteString(repl)
					i += consumed
					continue
				}
			}
		case '1':
			if i+1 < len(src) && (src[i+1] == '+' || src[i+1] == '-') {
				prev := byte(0)
				if i > 0 {
					prev = src[i-1]
				}
				next := byte(0)
				if i+2 < len(src) {
					next = src[i+2]
				}
				if isDelimiter(prev) && isDelimiter(next) {
					if src[i+1] == '+' {
						out.WriteString("el-1+")
					} else {
						out.WriteString("el-1-")
					}
					i += 2
					continue
				}
			}
		}

		if i == 0 || isDelimiter(src[i-1]) {
			if tok := atomAt(src[i:]); floatLiteralPattern.MatchString(tok) {
				out.WriteString(`(el-float "` + tok + `")`)
				i += len(tok)
				continue
			}
		}

		out.WriteByte(ch)
		i++
	}

	if inString {
		return "", errors.New("unterminated string literal")
	}
	return out.String(), nil
}

// atomAt returns the text from the start of s up to the next delimiter.
func atomAt(s string) string {
	for j := 0; j < len(s); j++ {
		if isDelimiter(s[j]) || s[j] == ';' {
			return s[:j]
		}
	}
	return s
}

func parseCharLiteral(s string) (string, int, bool) {
	if len(s) < 2 || s[0] != '?' {
		return "", 0, false
	}
	if len(s) >= 3 && s[1] == '\\' {
		if len(s) >= 5 && isOctal(s[2]) && isOctal(s[3]) && isOctal(s[4]) {
			v, err := strconv.ParseInt(s[2:5], 8, 32)
			if err != nil {
				return "", 0, false
			}
			return strconv.Itoa(int(v)), 5, true
		}
		switch s[2] {
		case 'n':
			return "10", 3, true
		case 't':
			return "9", 3, true
		case 'r':
			return "13", 3, true
		case 'f':
			return "12", 3, true
		case 'b':
			return "8", 3, true
		case 'e':
			return "27", 3, true
		case 's':
			return "32", 3, true
		case 'x':
			if repl, consumed, ok := parseHexEscape(s[3:]); ok {
				return repl, 3 + consumed, true
			}
			return "", 0, false
		}
		r, width := utf8.DecodeRuneInString(s[2:])
		return strconv.Itoa(int(r)), 2 + width, true
	}
	r, width := utf8.DecodeRuneInString(s[1:])
	if r == utf8.RuneError && width <= 1 {
		return "", 0, false
	}
	return strconv.Itoa(int(r)), 1 + width, true
}

func parseHexEscape(s string) (string, int, bool) {
	j := 0
	for j < len(s) && isHex(s[j]) {
		j++
	}
	if j == 0 {
		return "", 0, false
	}
	v, err := strconv.ParseInt(s[:j], 16, 64)
	if err != nil {
		return "", 0, false
	}
	return strconv.FormatInt(v, 10), j, true
}

func parseRadixLiteral(s string) (string, int, bool) {
	if len(s) < 3 || s[0] != '#' {
		return "", 0, false
	}
	base := 0
	switch s[1] {
	case 'o', 'O':
		base = 8
	case 'x', 'X':
		base = 16
	case 'b', 'B':
		base = 2
	default:
		return "", 0, false
	}
	j := 2
	if s[j] == '-' || s[j] == '+' {
		j++
	}
	start := j
	for j < len(s) {
		c := s[j]
		if (c >= '0' && c <= '9') || (base == 16 && isHex(c)) {
			j++
			continue
		}
		break
	}
	if j == start {
		return "", 0, false
	}
	v, err := strconv.ParseInt(s[2:j], base, 64)
	if err != nil {
		return "", 0, false
	}
	return strconv.FormatInt(v, 10), j, true
}

// splitForms cuts preprocessed source into its top-level forms so each
// can be evaluated and reported on its own.
func splitForms(src string) ([]string, error) {
	var forms []string
	depth := 0
	start := -1
	inString := false
	inComment := false
	escaped := false

	flush := func(end int) {
		if start >= 0 {
			forms = append(forms, strings.TrimSpace(src[start:end]))
			start = -1
		}
	}

	for i := 0; i < len(src); i++ {
		ch := src[i]
		switch {
		case inComment:
			if ch == '\n' {
				inComment = false
			}
			continue
		case inString:
			if escaped {
				escaped = false
			} else if ch == '\\' {
				escaped = true
			} else if ch == '"' {
				inString = false
				if depth == 0 {
					flush(i + 1)
				}
			}
			continue
		}

		switch ch {
		case ';':
			if depth == 0 {
				flush(i)
			}
			inComment = true
		case '"':
			if start < 0 {
				start = i
			}
			inString = true
		case '(':
			if start < 0 {
				start = i
			}
			depth++
		case ')':
			if depth == 0 {
				return nil, errors.New("unmatched ) in elisp source")
			}
			depth--
			if depth == 0 {
				flush(i + 1)
			}
		case ' ', '\t', '\n', '\r':
			if depth == 0 && start >= 0 && strings.Trim(src[start:i], "'`,") != "" {
				flush(i)
			}
		case '?':
			if start < 0 {
				start = i
			}
			// ?( and ?\" are characters, not structure.
			if i == 0 || isDelimiter(src[i-1]) {
				if i+1 < len(src) && src[i+1] == '\\' {
					i++
				}
				i++
			}
		default:
			if start < 0 {
				start = i
			}
		}
	}
	if inString {
		return nil, errors.New("unterminated string literal")
	}
	if depth != 0 {
		return nil, errors.New("unmatched ( in elisp source")
	}
	flush(len(src))
	return forms, nil
}

func isDelimiter(b byte) bool {
	if b == 0 {
		return true
	}
	switch b {
	case ' ', '\t', '\n', '\r', '(', ')', '[', ']', '\'', '`', ',', '"':
		return true
	default:
		return false
	}
}

func isOctal(b byte) bool {
	return b >= '0' && b <= '7'
}

func isHex(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
