package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Wrap wraps an error with additional context, creating a MergeError if the input is not already one
func Wrap(err error, errType ErrorType, code, message string) *MergeError {
	if err == nil {
		return nil
	}

	// If it's already a MergeError, preserve its location but update the message
	var me *MergeError
	if errors.As(err, &me) {
		return &MergeError{
			Type:        errType,
			Code:        code,
			Message:     message,
			Cause:       me,
			Context:     me.Context,
			File:        me.File,
			Line:        me.Line,
			Column:      me.Column,
			Recoverable: me.Recoverable,
		}
	}

	return &MergeError{
		Type:        errType,
		Code:        code,
		Message:     message,
		Cause:       err,
		Recoverable: errType == ErrorTypeParse || errType == ErrorTypeRecord || errType == ErrorTypeSplit,
	}
}

// WrapParse wraps a literal parse failure.
func WrapParse(err error, message string) *MergeError {
	if err == nil {
		return nil
	}
	return NewParseError(ErrCodeInvalidLiteral, message, err)
}

// WrapIO wraps an error as an I/O error
func WrapIO(err error, code, message string) *MergeError {
	if err == nil {
		return nil
	}
	return NewIOError(code, message, err)
}

// WrapConfig wraps an error as a configuration error
func WrapConfig(err error, code, message string) *MergeError {
	me := Wrap(err, ErrorTypeConfig, code, message)
	if me != nil {
		me.Recoverable = false
	}
	return me
}

type kindNamer interface {
	KindName() string
}

// Kind names the kind of err for diagnostics: the code of a MergeError,
// the kind reported by an error that names one, or the Go type of err.
func Kind(err error) string {
	if err == nil {
		return ""
	}

	var me *MergeError
	if errors.As(err, &me) && me.Code != "" {
		return me.Code
	}

	var kn kindNamer
	if errors.As(err, &kn) {
		return kn.KindName()
	}

	return strings.TrimPrefix(fmt.Sprintf("%T", err), "*")
}

// FormatErrorWithSuggestions formats an error with suggestions for ValidationError types
func FormatErrorWithSuggestions(err error) string {
	if err == nil {
		return ""
	}

	var vec *ValidationErrorCollection
	if errors.As(err, &vec) {
		var b strings.Builder
		for i, ve := range vec.Errors {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(formatValidationError(ve))
		}
		return b.String()
	}

	var ve ValidationError
	if errors.As(err, &ve) {
		return formatValidationError(ve)
	}

	return err.Error()
}

func formatValidationError(ve ValidationError) string {
	result := ve.Error()
	suggestions := ve.Suggestions()
	if len(suggestions) > 0 {
		result += "\n\nSuggestions:"
		for _, suggestion := range suggestions {
			result += fmt.Sprintf("\n  • %s", suggestion)
		}
	}
	return result
}

// GetErrorContext extracts context information from a MergeError as
// alternating key/value pairs suitable for structured logging.
func GetErrorContext(err error) []interface{} {
	var me *MergeError
	if !errors.As(err, &me) {
		return []interface{}{"error_type", Kind(err)}
	}

	fields := []interface{}{"error_type", Kind(err), "error_kind", string(me.Type)}
	if me.File != "" {
		fields = append(fields, "file", me.File)
	}
	if me.Line > 0 {
		fields = append(fields, "line", me.Line)
	}
	if me.Column > 0 {
		fields = append(fields, "column", me.Column)
	}
	for k, v := range me.Context {
		fields = append(fields, k, v)
	}
	return fields
}
