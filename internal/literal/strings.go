package literal

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// lexString scans a string or bytes literal. l.pos is at the opening
// quote and prefix holds any r/u/b letters that preceded it.
func (l *lexer) lexString(start int, prefix string) (token, error) {
	lower := strings.ToLower(prefix)
	if strings.Contains(lower, "f") {
		return token{}, valueErrorf(start, "f-strings are not literals")
	}
	raw := strings.Contains(lower, "r")
	isBytes := strings.Contains(lower, "b")

	quote := l.src[l.pos]
	triple := l.peekByte(1) == quote && l.peekByte(2) == quote
	if triple {
		l.pos += 3
	} else {
		l.pos++
	}

	var b strings.Builder
	for {
		if l.pos >= len(l.src) {
			if triple {
				return token{}, syntaxErrorf(start, "unterminated triple-quoted string literal")
			}
			return token{}, syntaxErrorf(start, "unterminated string literal")
		}
		c := l.src[l.pos]
		switch {
		case c == quote && !triple:
			l.pos++
			return l.stringToken(start, b.String(), isBytes)
		case c == quote && l.peekByte(1) == quote && l.peekByte(2) == quote:
			l.pos += 3
			return l.stringToken(start, b.String(), isBytes)
		case c == '\n' && !triple:
			return token{}, syntaxErrorf(start, "unterminated string literal")
		case c == '\\':
			if l.pos+1 >= len(l.src) {
				l.pos++
				continue
			}
			if raw {
				// the escaped character is kept and never closes the literal
				b.WriteByte('\\')
				_, size := utf8.DecodeRuneInString(l.src[l.pos+1:])
				b.WriteString(l.src[l.pos+1 : l.pos+1+size])
				l.pos += 1 + size
				continue
			}
			if err := l.decodeEscape(&b, isBytes); err != nil {
				return token{}, err
			}
		default:
			if isBytes && c >= utf8.RuneSelf {
				return token{}, syntaxErrorf(l.pos, "bytes can only contain ASCII literal characters")
			}
			_, size := utf8.DecodeRuneInString(l.src[l.pos:])
			b.WriteString(l.src[l.pos : l.pos+size])
			l.pos += size
		}
	}
}

func (l *lexer) stringToken(start int, s string, isBytes bool) (token, error) {
	return token{kind: tokString, pos: start, text: l.src[start:l.pos], str: s, bytes: isBytes}, nil
}

// decodeEscape decodes the escape sequence at l.pos into b.
func (l *lexer) decodeEscape(b *strings.Builder, isBytes bool) error {
	at := l.pos
	c := l.src[l.pos+1]
	l.pos += 2

	simple := map[byte]byte{
		'\\': '\\', '\'': '\'', '"': '"',
		'a': '\a', 'b': '\b', 'f': '\f', 'n': '\n', 'r': '\r', 't': '\t', 'v': '\v',
	}
	if out, ok := simple[c]; ok {
		b.WriteByte(out)
		return nil
	}

	switch {
	case c == '\n':
		return nil
	case c == '\r':
		if l.peekByte(0) == '\n' {
			l.pos++
		}
		return nil
	case c >= '0' && c <= '7':
		end := l.pos - 1
		for end < len(l.src) && end < l.pos+2 && l.src[end] >= '0' && l.src[end] <= '7' {
			end++
		}
		v, _ := strconv.ParseUint(l.src[l.pos-1:end], 8, 32)
		l.pos = end
		if isBytes {
			b.WriteByte(byte(v))
		} else {
			b.WriteRune(rune(v))
		}
		return nil
	case c == 'x':
		return l.decodeHex(b, at, 2, isBytes, "\\xXX")
	case c == 'u' && !isBytes:
		return l.decodeHex(b, at, 4, isBytes, "\\uXXXX")
	case c == 'U' && !isBytes:
		return l.decodeHex(b, at, 8, isBytes, "\\UXXXXXXXX")
	case c == 'N' && !isBytes:
		return l.decodeName(b, at)
	}

	// unknown escapes keep the backslash
	b.WriteByte('\\')
	_, size := utf8.DecodeRuneInString(l.src[at+1:])
	b.WriteString(l.src[at+1 : at+1+size])
	l.pos = at + 1 + size
	return nil
}

func (l *lexer) decodeHex(b *strings.Builder, at, n int, isBytes bool, form string) error {
	if l.pos+n > len(l.src) {
		return syntaxErrorf(at, "truncated %s escape", form)
	}
	digits := l.src[l.pos : l.pos+n]
	for i := 0; i < n; i++ {
		if !isHex(digits[i]) {
			return syntaxErrorf(at, "truncated %s escape", form)
		}
	}
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return syntaxErrorf(at, "truncated %s escape", form)
	}
	l.pos += n
	switch {
	case isBytes:
		b.WriteByte(byte(v))
	case v > utf8.MaxRune:
		return syntaxErrorf(at, "illegal Unicode character")
	default:
		b.WriteRune(rune(v))
	}
	return nil
}

// decodeName decodes a \N{name} escape. l.pos is just past the N.
func (l *lexer) decodeName(b *strings.Builder, at int) error {
	if l.peekByte(0) != '{' {
		return syntaxErrorf(at, "malformed \\N character escape")
	}
	end := l.pos + 1
	for end < len(l.src) && isNameByte(l.src[end]) {
		end++
	}
	if end == l.pos+1 || end >= len(l.src) || l.src[end] != '}' {
		return syntaxErrorf(at, "malformed \\N character escape")
	}
	r, ok := lookupRuneName(l.src[l.pos+1 : end])
	if !ok {
		return syntaxErrorf(at, "unknown Unicode character name")
	}
	b.WriteRune(r)
	l.pos = end + 1
	return nil
}

func isNameByte(c byte) bool {
	return c == ' ' || c == '-' ||
		(c >= '0' && c <= '9') || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
