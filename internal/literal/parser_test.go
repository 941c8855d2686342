package literal

import (
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// plain converts parsed values into comparable Go values for cmp.Diff.
func plain(v Value) interface{} {
	switch x := v.(type) {
	case *big.Int:
		return x.String()
	case List:
		out := make([]interface{}, len(x))
		for i, item := range x {
			out[i] = plain(item)
		}
		return out
	case Tuple:
		out := []interface{}{"tuple"}
		for _, item := range x {
			out = append(out, plain(item))
		}
		return out
	case *Set:
		out := []interface{}{"set"}
		for _, item := range x.Items() {
			out = append(out, plain(item))
		}
		return out
	case *Dict:
		out := [][2]interface{}{}
		for i := 0; i < x.Len(); i++ {
			k, val := x.Entry(i)
			out = append(out, [2]interface{}{plain(k), plain(val)})
		}
		return out
	case Bytes:
		return "bytes:" + string(x)
	default:
		return v
	}
}

func TestParseScalars(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want interface{}
	}{
		{"single quoted", `'abc'`, "abc"},
		{"double quoted", `"abc"`, "abc"},
		{"triple quoted", `'''a'b'''`, "a'b"},
		{"escaped quote", `'it\'s'`, "it's"},
		{"newline escape", `'a\nb'`, "a\nb"},
		{"hex escape", `'\x41'`, "A"},
		{"unicode escape", `'\u4e2d'`, "中"},
		{"wide unicode escape", `'\U0001F600'`, "😀"},
		{"octal escape", `'\101'`, "A"},
		{"unknown escape kept", `'\d'`, `\d`},
		{"raw string", `r'\d+'`, `\d+`},
		{"unicode prefix", `u'x'`, "x"},
		{"non-ascii text", `'人工智能'`, "人工智能"},
		{"adjacent concatenation", `'ab' "cd"`, "abcd"},
		{"bytes", `b'\x00a'`, "bytes:\x00a"},
		{"int", `42`, "42"},
		{"negative int", `-7`, "-7"},
		{"big int", `123456789012345678901234567890`, "123456789012345678901234567890"},
		{"hex int", `0xff`, "255"},
		{"octal int", `0o17`, "15"},
		{"binary int", `0b101`, "5"},
		{"underscores", `1_000`, "1000"},
		{"zeros", `000`, "0"},
		{"float", `1.5`, 1.5},
		{"leading dot float", `.5`, 0.5},
		{"trailing dot float", `2.`, 2.0},
		{"exponent", `1e3`, 1000.0},
		{"imaginary", `2j`, complex(0, 2)},
		{"complex sum", `1+2j`, complex(1, 2)},
		{"complex difference", `-1-2j`, complex(-1, -2)},
		{"parenthesized operand", `-(1)`, "-1"},
		{"nested parenthesized operand", `-((2.5))`, -2.5},
		{"parenthesized imaginary part", `1+(2j)`, complex(1, 2)},
		{"named escape", `'\N{EM DASH}'`, "\u2014"},
		{"named escape ignores case", `'caf\N{latin small letter e with acute}'`, "caf\u00e9"},
		{"ideograph name", `'\N{CJK UNIFIED IDEOGRAPH-4E2D}'`, "\u4e2d"},
		{"true", `True`, true},
		{"false", `False`, false},
		{"none", `None`, None},
		{"ellipsis", `...`, Ellipsis},
		{"surrounding space and comment", "  'x'  # trailing", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.src)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, plain(got)); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.src, diff)
			}
		})
	}
}

func TestParseContainers(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want interface{}
	}{
		{"empty list", `[]`, []interface{}{}},
		{"list trailing comma", `['a', 'b',]`, []interface{}{"a", "b"}},
		{"nested list", `[[1], []]`, []interface{}{[]interface{}{"1"}, []interface{}{}}},
		{"empty tuple", `()`, []interface{}{"tuple"}},
		{"one tuple", `(1,)`, []interface{}{"tuple", "1"}},
		{"parenthesized value", `('a')`, "a"},
		{"tuple", `('a', 2)`, []interface{}{"tuple", "a", "2"}},
		{"empty dict", `{}`, [][2]interface{}{}},
		{"set", `{'a', 'b', 'a'}`, []interface{}{"set", "a", "b"}},
		{"empty set call", `set()`, []interface{}{"set"}},
		{
			"dict keeps insertion order",
			`{'b': 1, 'a': 2}`,
			[][2]interface{}{{"b", "1"}, {"a", "2"}},
		},
		{
			"repeated key replaces in place",
			`{'a': 1, 'b': 2, 'a': 3}`,
			[][2]interface{}{{"a", "3"}, {"b", "2"}},
		},
		{
			"equal numeric keys collide",
			`{1: 'int', 1.0: 'float', True: 'bool'}`,
			[][2]interface{}{{"1", "bool"}},
		},
		{
			"tuple key",
			`{(1, 'a'): None}`,
			[][2]interface{}{{[]interface{}{"tuple", "1", "a"}, None}},
		},
		{
			"record",
			`{'C1': {'sub': {'dir': ['x', 'y']}}}`,
			[][2]interface{}{{"C1", [][2]interface{}{{"sub", [][2]interface{}{{"dir", []interface{}{"x", "y"}}}}}}},
		},
		{
			"multiline inside brackets",
			"{'a':\n  [1,\n   2]}",
			[][2]interface{}{{"a", []interface{}{"1", "2"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.src)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, plain(got)); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.src, diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind ErrorKind
	}{
		{"empty", ``, KindSyntax},
		{"only comment", `# nothing`, KindSyntax},
		{"bare words", `not a dict at all`, KindValue},
		{"unknown name", `{'a': x}`, KindValue},
		{"call", `{'a': len('x')}`, KindValue},
		{"f-string", `f'{x}'`, KindValue},
		{"unterminated string", `{'a': 'b}`, KindSyntax},
		{"unclosed brace", `{'a': 1`, KindSyntax},
		{"two dicts", `{'a': 1}{'b': 2}`, KindSyntax},
		{"missing comma", `['a' 1]`, KindSyntax},
		{"missing colon", `{'a': 1, 'b'}`, KindSyntax},
		{"leading zero", `012`, KindSyntax},
		{"double underscore", `1__0`, KindSyntax},
		{"number then name", `12abc`, KindSyntax},
		{"double sign", `--1`, KindValue},
		{"sign on bool", `-True`, KindValue},
		{"real plus real", `1+2`, KindValue},
		{"sign inside parentheses", `-(-1)`, KindValue},
		{"unclosed operand parenthesis", `-(1`, KindSyntax},
		{"unknown character name", `'\N{NOT A CHARACTER NAME}'`, KindSyntax},
		{"name escape without braces", `'\N'`, KindSyntax},
		{"unterminated name escape", `'\N{EM DASH'`, KindSyntax},
		{"unhashable key", `{[1]: 2}`, KindType},
		{"unhashable member", `{{}, 1}`, KindType},
		{"mixed bytes", `b'a' 'b'`, KindSyntax},
		{"non-ascii bytes", `b'é'`, KindSyntax},
		{"bad hex escape", `'\x4'`, KindSyntax},
		{"json null", `{"a": null}`, KindValue},
		{"stray character", `{'a': 1;}`, KindSyntax},
		{"non-breaking space", "{'a':\u00a01}", KindSyntax},
		{"star unpack", `{**a}`, KindSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			require.Error(t, err)
			var lerr *Error
			require.ErrorAs(t, err, &lerr)
			assert.Equal(t, tt.kind, lerr.Kind, "error: %v", err)
		})
	}
}

func TestParseErrorOffsets(t *testing.T) {
	_, err := Parse(`{'a': 1}  {'b': 2}`)
	require.Error(t, err)
	var lerr *Error
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, 10, lerr.Offset)
	assert.Contains(t, err.Error(), "offset 10")
}

func TestParseDepthLimit(t *testing.T) {
	deep := ""
	for i := 0; i <= MaxDepth; i++ {
		deep += "["
	}
	_, err := Parse(deep)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too many nested")
}

func TestParseDict(t *testing.T) {
	d, err := ParseDict(`{'C7': {}}`)
	require.NoError(t, err)
	assert.Equal(t, 1, d.Len())

	v, ok := d.Get("C7")
	require.True(t, ok)
	assert.IsType(t, &Dict{}, v)

	_, err = ParseDict(`['C7']`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected dict, got list")
}

func TestTruthy(t *testing.T) {
	falsy := []string{`None`, `False`, `0`, `0.0`, `0j`, `''`, `b''`, `[]`, `()`, `{}`, `set()`}
	for _, src := range falsy {
		v, err := Parse(src)
		require.NoError(t, err, src)
		assert.False(t, Truthy(v), src)
	}

	truthy := []string{`True`, `1`, `-0.5`, `'x'`, `[0]`, `(None,)`, `{'a': None}`, `{0}`, `...`}
	for _, src := range truthy {
		v, err := Parse(src)
		require.NoError(t, err, src)
		assert.True(t, Truthy(v), src)
	}
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "list", TypeName(List{}))
	assert.Equal(t, "dict", TypeName(NewDict()))
	assert.Equal(t, "NoneType", TypeName(None))
	assert.Equal(t, "int", TypeName(big.NewInt(3)))
	assert.Equal(t, "str", TypeName("s"))
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "SyntaxError", KindSyntax.String())
	assert.Equal(t, "ValueError", KindValue.String())
	assert.Equal(t, "TypeError", KindType.String())
}
