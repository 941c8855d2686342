package literal

import "fmt"

// ErrorKind classifies a parse failure the way a literal evaluator would
// report it.
type ErrorKind int

const (
	// KindSyntax is a lexical or grammatical error.
	KindSyntax ErrorKind = iota
	// KindValue is well-formed input that is not a literal, such as a name
	// or a call.
	KindValue
	// KindType is a literal that cannot be built, such as an unhashable key.
	KindType
)

// String returns the conventional exception name for the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindSyntax:
		return "SyntaxError"
	case KindValue:
		return "ValueError"
	case KindType:
		return "TypeError"
	default:
		return "Error"
	}
}

// Error describes why a text is not a literal. Offset is the byte offset
// into the parsed text, or -1 when no position applies.
type Error struct {
	Kind   ErrorKind
	Offset int
	Msg    string
}

func (e *Error) Error() string {
	if e.Offset < 0 {
		return e.Msg
	}
	return fmt.Sprintf("%s (offset %d)", e.Msg, e.Offset)
}

func syntaxErrorf(offset int, format string, args ...interface{}) *Error {
	return &Error{Kind: KindSyntax, Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

func valueErrorf(offset int, format string, args ...interface{}) *Error {
	return &Error{Kind: KindValue, Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

// KindName returns the name of the error kind.
func (e *Error) KindName() string { return e.Kind.String() }
