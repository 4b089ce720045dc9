package token

import (
	"encoding/hex"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"
)

// KPathQuoteField returns true if a field name needs to be quoted in a kinded path.
// A field needs quoting if it is empty, contains whitespace, control characters
// or quotes, or contains any of the path syntax characters: ".", "[", "]".
func KPathQuoteField(v string) bool {
	if v == "" {
		return true
	}
	for _, r := range v {
		switch r {
		case '.', '[', ']', '"', '\'', '\\':
			return true
		}
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return true
		}
	}
	return false
}

// Quote returns v as a JSON string literal.
func Quote(v string) string {
	d := make([]byte, 1, len(v)+2)
	d[0] = '"'
	ucs := []byte{0, 0}
	cps := []byte{0, 0, 0, 0}
	for _, r := range v {
		switch r {
		case '"':
			d = append(d, '\\', '"')
		case '\\':
			d = append(d, '\\', '\\')
		case '\b':
			d = append(d, '\\', 'b')
		case '\f':
			d = append(d, '\\', 'f')
		case '\n':
			d = append(d, '\\', 'n')
		case '\r':
			d = append(d, '\\', 'r')
		case '\t':
			d = append(d, '\\', 't')
		default:
			if unicode.IsControl(r) || r == '\u2028' || r == '\u2029' {
				ucs[0] = byte(r >> 8)
				ucs[1] = byte(r)
				cps = hex.AppendEncode(cps[:0], ucs)
				d = append(d, '\\', 'u', cps[0], cps[1], cps[2], cps[3])
			} else {
				d = utf8.AppendRune(d, r)
			}
		}
	}
	d = append(d, '"')
	return string(d)
}

// Unquote validates the JSON string literal v and returns its value.
func Unquote(v string) (string, error) {
	b := []byte(v)
	n, err := bsEscQuoted(b)
	if err != nil {
		return "", err
	}
	if n != len(v) {
		return "", ErrUnterminated
	}
	return QuotedToString(b), nil
}

// bsEscQuoted returns the length of the string literal at the start of d,
// including both quotes.
func bsEscQuoted(d []byte) (int, error) {
	if len(d) == 0 || d[0] != '"' {
		return 0, ErrLiteral
	}
	escaped := false
	start := 1
	n := len(d)
	for start < n {
		r, sz := utf8.DecodeRune(d[start:])
		if r == utf8.RuneError && sz <= 1 {
			return start, ErrBadUTF8
		}
		start += sz
		if escaped {
			escaped = false
			switch r {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
			case 'u':
				if start+4 > n {
					return start, ErrUnterminated
				}
				if !allHex(d[start : start+4]) {
					return start, ErrBadUnicode
				}
				start += 4
			default:
				return start, ErrBadEscape
			}
			continue
		}
		switch r {
		case '"':
			return start, nil
		case '\\':
			escaped = true
		default:
			if r < 0x20 {
				return start, ErrUnicodeControl
			}
		}
	}
	return start, ErrUnterminated
}

func allHex(d []byte) bool {
	for _, c := range d {
		if c >= '0' && c <= '9' {
			continue
		}
		if c >= 'a' && c <= 'f' {
			continue
		}
		if c >= 'A' && c <= 'F' {
			continue
		}
		return false
	}
	return true
}

// QuotedToString decodes a string literal already validated by the tokenizer.
func QuotedToString(d []byte) string {
	if len(d) < 2 {
		return ""
	}
	body := d[1 : len(d)-1]
	if !strings.ContainsRune(string(body), '\\') {
		return string(body)
	}
	b := &strings.Builder{}
	b.Grow(len(body))
	i := 0
	for i < len(body) {
		c := body[i]
		if c != '\\' {
			r, sz := utf8.DecodeRune(body[i:])
			b.WriteRune(r)
			i += sz
			continue
		}
		i++
		switch body[i] {
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'u':
			r := hexRune(body[i+1 : i+5])
			i += 4
			if utf16.IsSurrogate(r) {
				r2 := utf8.RuneError
				if i+7 <= len(body) && body[i+1] == '\\' && body[i+2] == 'u' {
					r2 = utf16.DecodeRune(r, hexRune(body[i+3:i+7]))
					if r2 != utf8.RuneError {
						i += 6
					}
				}
				r = r2
			}
			b.WriteRune(r)
		default:
			// '"', '\\', '/'
			b.WriteByte(body[i])
		}
		i++
	}
	return b.String()
}

func hexRune(d []byte) rune {
	var r rune
	for _, c := range d {
		r <<= 4
		switch {
		case c >= '0' && c <= '9':
			r |= rune(c - '0')
		case c >= 'a' && c <= 'f':
			r |= rune(c-'a') + 10
		case c >= 'A' && c <= 'F':
			r |= rune(c-'A') + 10
		}
	}
	return r
}
