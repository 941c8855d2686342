package literal

import (
	"math/big"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokLBrace
	tokRBrace
	tokLBrack
	tokRBrack
	tokLParen
	tokRParen
	tokColon
	tokComma
	tokPlus
	tokMinus
	tokEllipsis
	tokString
	tokNumber
	tokName
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokLBrace:
		return "'{'"
	case tokRBrace:
		return "'}'"
	case tokLBrack:
		return "'['"
	case tokRBrack:
		return "']'"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokColon:
		return "':'"
	case tokComma:
		return "','"
	case tokPlus:
		return "'+'"
	case tokMinus:
		return "'-'"
	case tokEllipsis:
		return "'...'"
	case tokString:
		return "string"
	case tokNumber:
		return "number"
	case tokName:
		return "name"
	default:
		return "token"
	}
}

type token struct {
	kind  tokenKind
	pos   int
	text  string
	str   string // decoded contents of a string token
	bytes bool   // string token is a bytes literal
	num   Value  // *big.Int, float64 or complex128 for number tokens
}

type lexer struct {
	src string
	pos int
}

func (l *lexer) peekByte(off int) byte {
	if l.pos+off < len(l.src) {
		return l.src[l.pos+off]
	}
	return 0
}

func (l *lexer) skipSpace() error {
	for l.pos < len(l.src) {
		switch c := l.src[l.pos]; c {
		case ' ', '\t', '\f', '\r', '\n':
			l.pos++
		case '#':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		case '\\':
			// explicit line joining
			switch {
			case l.peekByte(1) == '\n':
				l.pos += 2
			case l.peekByte(1) == '\r' && l.peekByte(2) == '\n':
				l.pos += 3
			default:
				return syntaxErrorf(l.pos, "unexpected character after line continuation character")
			}
		default:
			return nil
		}
	}
	return nil
}

func (l *lexer) next() (token, error) {
	if err := l.skipSpace(); err != nil {
		return token{}, err
	}
	start := l.pos
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, pos: start}, nil
	}

	c := l.src[l.pos]
	single := map[byte]tokenKind{
		'{': tokLBrace, '}': tokRBrace,
		'[': tokLBrack, ']': tokRBrack,
		'(': tokLParen, ')': tokRParen,
		':': tokColon, ',': tokComma,
		'+': tokPlus, '-': tokMinus,
	}
	if kind, ok := single[c]; ok {
		l.pos++
		return token{kind: kind, pos: start, text: string(c)}, nil
	}

	switch {
	case c == '.' && l.peekByte(1) == '.' && l.peekByte(2) == '.':
		l.pos += 3
		return token{kind: tokEllipsis, pos: start, text: "..."}, nil
	case c == '.' && isDecimal(l.peekByte(1)), isDecimal(c):
		return l.lexNumber()
	case c == '\'' || c == '"':
		return l.lexString(start, "")
	}

	r, size := utf8.DecodeRuneInString(l.src[l.pos:])
	if r == utf8.RuneError && size <= 1 {
		return token{}, syntaxErrorf(start, "invalid utf-8 byte 0x%02x", c)
	}
	if isIdentStart(r) {
		end := l.pos
		for end < len(l.src) {
			r, size := utf8.DecodeRuneInString(l.src[end:])
			if !isIdentContinue(r) {
				break
			}
			end += size
		}
		word := l.src[l.pos:end]
		if end < len(l.src) && (l.src[end] == '\'' || l.src[end] == '"') && isStringPrefix(word) {
			l.pos = end
			return l.lexString(start, word)
		}
		l.pos = end
		return token{kind: tokName, pos: start, text: word}, nil
	}

	if unicode.IsSpace(r) || !unicode.IsPrint(r) {
		return token{}, syntaxErrorf(start, "invalid non-printable character U+%04X", r)
	}
	return token{}, syntaxErrorf(start, "invalid character '%c' (U+%04X)", r, r)
}

func isDecimal(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r) || unicode.In(r, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc)
}

func isStringPrefix(word string) bool {
	switch strings.ToLower(word) {
	case "r", "u", "b", "br", "rb", "f", "fr", "rf":
		return true
	}
	return false
}

// lexNumber scans an integer, float or imaginary literal.
func (l *lexer) lexNumber() (token, error) {
	start := l.pos

	if l.src[l.pos] == '0' {
		var base int
		var digit func(byte) bool
		switch l.peekByte(1) {
		case 'x', 'X':
			base, digit = 16, isHex
		case 'o', 'O':
			base, digit = 8, func(c byte) bool { return c >= '0' && c <= '7' }
		case 'b', 'B':
			base, digit = 2, func(c byte) bool { return c == '0' || c == '1' }
		}
		if base != 0 {
			l.pos += 2
			bodyStart := l.pos
			for l.pos < len(l.src) && (digit(l.src[l.pos]) || l.src[l.pos] == '_') {
				l.pos++
			}
			body := l.src[bodyStart:l.pos]
			// a single leading underscore is allowed after the prefix
			if !validDigits(strings.TrimPrefix(body, "_"), digit) {
				return token{}, syntaxErrorf(start, "invalid base-%d literal", base)
			}
			if err := l.checkNumberEnd(start); err != nil {
				return token{}, err
			}
			n, ok := new(big.Int).SetString(strings.ReplaceAll(body, "_", ""), base)
			if !ok {
				return token{}, syntaxErrorf(start, "invalid base-%d literal", base)
			}
			return token{kind: tokNumber, pos: start, text: l.src[start:l.pos], num: n}, nil
		}
	}

	intPart := l.scanDigits()
	isFloat := false
	fracPart := ""
	if l.pos < len(l.src) && l.src[l.pos] == '.' {
		isFloat = true
		l.pos++
		fracPart = l.scanDigits()
	}
	if (intPart != "" && !validDigits(intPart, isDecimal)) || (fracPart != "" && !validDigits(fracPart, isDecimal)) {
		return token{}, syntaxErrorf(start, "invalid decimal literal")
	}

	if c := l.peekByte(0); c == 'e' || c == 'E' {
		off := 1
		if s := l.peekByte(1); s == '+' || s == '-' {
			off = 2
		}
		if isDecimal(l.peekByte(off)) {
			isFloat = true
			l.pos += off
			exp := l.scanDigits()
			if !validDigits(exp, isDecimal) {
				return token{}, syntaxErrorf(start, "invalid decimal literal")
			}
		}
	}

	imaginary := false
	if c := l.peekByte(0); c == 'j' || c == 'J' {
		imaginary = true
		l.pos++
	}
	if err := l.checkNumberEnd(start); err != nil {
		return token{}, err
	}

	text := l.src[start:l.pos]
	clean := strings.ReplaceAll(strings.TrimRight(text, "jJ"), "_", "")

	switch {
	case imaginary:
		f, err := strconv.ParseFloat(clean, 64)
		if err != nil && !isRangeErr(err) {
			return token{}, syntaxErrorf(start, "invalid imaginary literal")
		}
		return token{kind: tokNumber, pos: start, text: text, num: complex(0, f)}, nil
	case isFloat:
		f, err := strconv.ParseFloat(clean, 64)
		if err != nil && !isRangeErr(err) {
			return token{}, syntaxErrorf(start, "invalid float literal")
		}
		return token{kind: tokNumber, pos: start, text: text, num: f}, nil
	default:
		if len(clean) > 1 && clean[0] == '0' && strings.Trim(clean, "0") != "" {
			return token{}, syntaxErrorf(start, "leading zeros in decimal integer literals are not permitted")
		}
		n, ok := new(big.Int).SetString(clean, 10)
		if !ok {
			return token{}, syntaxErrorf(start, "invalid decimal literal")
		}
		return token{kind: tokNumber, pos: start, text: text, num: n}, nil
	}
}

func (l *lexer) scanDigits() string {
	start := l.pos
	for l.pos < len(l.src) && (isDecimal(l.src[l.pos]) || l.src[l.pos] == '_') {
		l.pos++
	}
	return l.src[start:l.pos]
}

// checkNumberEnd rejects a number immediately followed by a name
// character, as in 12abc.
func (l *lexer) checkNumberEnd(start int) error {
	if l.pos >= len(l.src) {
		return nil
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.pos:])
	if isIdentContinue(r) || r == '.' {
		return syntaxErrorf(start, "invalid decimal literal")
	}
	return nil
}

// validDigits reports whether s is a run of digits with single
// underscores only between digits.
func validDigits(s string, digit func(byte) bool) bool {
	if s == "" {
		return false
	}
	prevUnderscore := true
	for i := 0; i < len(s); i++ {
		if s[i] == '_' {
			if prevUnderscore {
				return false
			}
			prevUnderscore = true
			continue
		}
		if !digit(s[i]) {
			return false
		}
		prevUnderscore = false
	}
	return !prevUnderscore
}

func isHex(c byte) bool {
	return isDecimal(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isRangeErr(err error) bool {
	ne, ok := err.(*strconv.NumError)
	return ok && ne.Err == strconv.ErrRange
}
