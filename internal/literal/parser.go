package literal

import (
	"math/big"
)

// MaxDepth bounds container nesting so hostile input cannot exhaust the
// stack.
const MaxDepth = 200

type parser struct {
	lex   lexer
	tok   token
	depth int
}

// Parse parses src as a single literal. Leading and trailing whitespace
// and comments are ignored; anything else after the literal is an error.
func Parse(src string) (Value, error) {
	p := &parser{lex: lexer{src: src}}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.tok.kind == tokEOF {
		return nil, syntaxErrorf(0, "empty input")
	}
	v, err := p.value()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, syntaxErrorf(p.tok.pos, "invalid syntax: unexpected %s after literal", p.tok.kind)
	}
	return v, nil
}

// ParseDict parses src and requires the result to be a mapping.
func ParseDict(src string) (*Dict, error) {
	v, err := Parse(src)
	if err != nil {
		return nil, err
	}
	d, ok := v.(*Dict)
	if !ok {
		return nil, &Error{Kind: KindType, Offset: -1, Msg: "expected dict, got " + TypeName(v)}
	}
	return d, nil
}

func (p *parser) advance() error {
	t, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

func (p *parser) expect(kind tokenKind) error {
	if p.tok.kind != kind {
		return syntaxErrorf(p.tok.pos, "invalid syntax: expected %s, found %s", kind, p.tok.kind)
	}
	return p.advance()
}

func (p *parser) enter() error {
	p.depth++
	if p.depth > MaxDepth {
		return syntaxErrorf(p.tok.pos, "too many nested parentheses")
	}
	return nil
}

func (p *parser) leave() { p.depth-- }

func (p *parser) value() (Value, error) {
	switch p.tok.kind {
	case tokLBrace:
		return p.braced()
	case tokLBrack:
		return p.list()
	case tokLParen:
		return p.parenthesized()
	case tokString:
		return p.stringLiteral()
	case tokNumber, tokPlus, tokMinus:
		return p.number()
	case tokEllipsis:
		return Ellipsis, p.advance()
	case tokName:
		return p.name()
	case tokEOF:
		return nil, syntaxErrorf(p.tok.pos, "invalid syntax: unexpected end of input")
	default:
		return nil, syntaxErrorf(p.tok.pos, "invalid syntax: unexpected %s", p.tok.kind)
	}
}

func (p *parser) name() (Value, error) {
	t := p.tok
	if err := p.advance(); err != nil {
		return nil, err
	}
	switch t.text {
	case "True":
		return true, nil
	case "False":
		return false, nil
	case "None":
		return None, nil
	case "set":
		if p.tok.kind == tokLParen {
			if err := p.advance(); err != nil {
				return nil, err
			}
			if p.tok.kind == tokRParen {
				return NewSet(), p.advance()
			}
		}
	}
	return nil, valueErrorf(t.pos, "malformed node or string: name %q", t.text)
}

// stringLiteral parses one or more adjacent string literals, which concatenate.
func (p *parser) stringLiteral() (Value, error) {
	first := p.tok
	s := first.str
	for {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.kind != tokString {
			break
		}
		if p.tok.bytes != first.bytes {
			return nil, syntaxErrorf(p.tok.pos, "cannot mix bytes and nonbytes literals")
		}
		s += p.tok.str
	}
	if first.bytes {
		return Bytes(s), nil
	}
	return s, nil
}

// number parses a signed real number, optionally followed by a signed
// imaginary part.
func (p *parser) number() (Value, error) {
	start := p.tok.pos
	left, err := p.signedNumber()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokPlus && p.tok.kind != tokMinus {
		return left, nil
	}

	negative := p.tok.kind == tokMinus
	if _, isComplex := left.(complex128); isComplex {
		return nil, valueErrorf(start, "malformed node or string: complex number on the left of '%s'", p.tok.text)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	operand, err := p.numberOperand()
	if err != nil {
		return nil, err
	}
	im, ok := operand.(complex128)
	if !ok {
		return nil, valueErrorf(start, "malformed node or string: expected imaginary number")
	}
	if negative {
		im = -im
	}
	return complex(toFloat(left), 0) + im, nil
}

func (p *parser) signedNumber() (Value, error) {
	negative := false
	signed := p.tok.kind == tokPlus || p.tok.kind == tokMinus
	if signed {
		negative = p.tok.kind == tokMinus
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if !signed && p.tok.kind != tokNumber {
		return nil, valueErrorf(p.tok.pos, "malformed node or string: expected number, found %s", p.tok.kind)
	}
	v, err := p.numberOperand()
	if err != nil {
		return nil, err
	}
	if !negative {
		return v, nil
	}
	switch n := v.(type) {
	case *big.Int:
		return new(big.Int).Neg(n), nil
	case float64:
		return -n, nil
	case complex128:
		return -n, nil
	}
	return v, nil
}

// numberOperand reads the number after a sign or the imaginary part of a
// complex literal. The number may be wrapped in parentheses: -(1) is -1.
func (p *parser) numberOperand() (Value, error) {
	if p.tok.kind == tokLParen {
		if err := p.enter(); err != nil {
			return nil, err
		}
		defer p.leave()
		if err := p.advance(); err != nil {
			return nil, err
		}
		v, err := p.numberOperand()
		if err != nil {
			return nil, err
		}
		return v, p.expect(tokRParen)
	}
	if p.tok.kind != tokNumber {
		return nil, valueErrorf(p.tok.pos, "malformed node or string: expected number, found %s", p.tok.kind)
	}
	v := p.tok.num
	return v, p.advance()
}

func toFloat(v Value) float64 {
	switch n := v.(type) {
	case *big.Int:
		f, _ := new(big.Float).SetInt(n).Float64()
		return f
	case float64:
		return n
	}
	return 0
}

// items parses comma-separated values up to the closing token, allowing
// a trailing comma.
func (p *parser) items(closing tokenKind, each func() error) error {
	for p.tok.kind != closing {
		if err := each(); err != nil {
			return err
		}
		if p.tok.kind == tokComma {
			if err := p.advance(); err != nil {
				return err
			}
			continue
		}
		if p.tok.kind != closing {
			return syntaxErrorf(p.tok.pos, "invalid syntax: expected ',' or %s, found %s", closing, p.tok.kind)
		}
	}
	return p.advance()
}

func (p *parser) list() (Value, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	if err := p.advance(); err != nil {
		return nil, err
	}
	out := List{}
	err := p.items(tokRBrack, func() error {
		v, err := p.value()
		if err != nil {
			return err
		}
		out = append(out, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (p *parser) parenthesized() (Value, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.tok.kind == tokRParen {
		return Tuple{}, p.advance()
	}
	first, err := p.value()
	if err != nil {
		return nil, err
	}
	if p.tok.kind == tokRParen {
		return first, p.advance()
	}
	if err := p.expect(tokComma); err != nil {
		return nil, err
	}
	out := Tuple{first}
	err = p.items(tokRParen, func() error {
		v, err := p.value()
		if err != nil {
			return err
		}
		out = append(out, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// braced parses a dict or a set; the first entry decides which.
func (p *parser) braced() (Value, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	open := p.tok.pos
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.tok.kind == tokRBrace {
		return NewDict(), p.advance()
	}

	firstPos := p.tok.pos
	first, err := p.value()
	if err != nil {
		return nil, err
	}

	if p.tok.kind != tokColon {
		set := NewSet()
		if err := set.Add(first); err != nil {
			return nil, positioned(err, firstPos)
		}
		if p.tok.kind == tokRBrace {
			return set, p.advance()
		}
		if err := p.expect(tokComma); err != nil {
			return nil, err
		}
		err := p.items(tokRBrace, func() error {
			at := p.tok.pos
			v, err := p.value()
			if err != nil {
				return err
			}
			return positioned(set.Add(v), at)
		})
		if err != nil {
			return nil, err
		}
		return set, nil
	}

	dict := NewDict()
	entry := func(key Value, keyPos int) error {
		if err := p.expect(tokColon); err != nil {
			return err
		}
		v, err := p.value()
		if err != nil {
			return err
		}
		return positioned(dict.Set(key, v), keyPos)
	}
	if err := entry(first, firstPos); err != nil {
		return nil, err
	}
	if p.tok.kind == tokRBrace {
		return dict, p.advance()
	}
	if err := p.expect(tokComma); err != nil {
		return nil, err
	}
	err = p.items(tokRBrace, func() error {
		at := p.tok.pos
		k, err := p.value()
		if err != nil {
			return err
		}
		return entry(k, at)
	})
	if err != nil {
		if e, ok := err.(*Error); ok && e.Offset < 0 {
			e.Offset = open
		}
		return nil, err
	}
	return dict, nil
}

func positioned(err error, offset int) error {
	if e, ok := err.(*Error); ok && e.Offset < 0 {
		e.Offset = offset
	}
	return err
}
