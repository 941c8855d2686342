// Package errors defines the structured error type used across keywordmerge.
//
// A MergeError carries a kind (parse, record, split, io, config, internal),
// a stable code, and the input location it refers to. Line-level kinds are
// recoverable and only produce diagnostics; io and config errors stop the run.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents different categories of errors.
type ErrorType string

const (
	ErrorTypeParse    ErrorType = "parse"
	ErrorTypeRecord   ErrorType = "record"
	ErrorTypeSplit    ErrorType = "split"
	ErrorTypeIO       ErrorType = "io"
	ErrorTypeConfig   ErrorType = "config"
	ErrorTypeInternal ErrorType = "internal"
)

// Common error codes.
const (
	ErrCodeInvalidLiteral     = "ERR_INVALID_LITERAL"
	ErrCodeNotMapping         = "ERR_NOT_MAPPING"
	ErrCodeEmptyRecord        = "ERR_EMPTY_RECORD"
	ErrCodeCategoryType       = "ERR_CATEGORY_TYPE"
	ErrCodeSubcategoryType    = "ERR_SUBCATEGORY_TYPE"
	ErrCodeKeywordType        = "ERR_KEYWORD_TYPE"
	ErrCodeNoFragments        = "ERR_NO_FRAGMENTS"
	ErrCodeUnbalancedFragment = "ERR_UNBALANCED_FRAGMENT"
	ErrCodeFileOpen           = "ERR_FILE_OPEN"
	ErrCodeFileRead           = "ERR_FILE_READ"
	ErrCodeFileWrite          = "ERR_FILE_WRITE"
	ErrCodeConfigInvalid      = "ERR_CONFIG_INVALID"
	ErrCodeValidationFailed   = "ERR_VALIDATION_FAILED"
	ErrCodeInternalError      = "ERR_INTERNAL"
	ErrCodeUnsupportedFormat  = "ERR_UNSUPPORTED_FORMAT"
)

// MergeError is a structured error type with context.
type MergeError struct {
	Type        ErrorType
	Code        string
	Message     string
	Cause       error
	Context     map[string]interface{}
	File        string
	Line        int
	Column      int
	Recoverable bool
}

// Error implements the error interface.
func (e *MergeError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}

	if e.File != "" {
		location := e.File
		if e.Line > 0 {
			location += fmt.Sprintf(":%d", e.Line)
			if e.Column > 0 {
				location += fmt.Sprintf(":%d", e.Column)
			}
		}
		parts = append(parts, location)
	}

	parts = append(parts, e.Message)

	result := strings.Join(parts, " ")

	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Unwrap returns the underlying cause error.
func (e *MergeError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison on type and code.
func (e *MergeError) Is(target error) bool {
	var t *MergeError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}

	return false
}

// WithContext adds context information to the error.
func (e *MergeError) WithContext(key string, value interface{}) *MergeError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value

	return e
}

// WithLocation adds input location information.
func (e *MergeError) WithLocation(file string, line, column int) *MergeError {
	e.File = file
	e.Line = line
	e.Column = column

	return e
}

// NewParseError creates an error for text that is not a literal.
func NewParseError(code, message string, cause error) *MergeError {
	return &MergeError{
		Type:        ErrorTypeParse,
		Code:        code,
		Message:     message,
		Cause:       cause,
		Recoverable: true,
	}
}

// NewRecordError creates an error for a literal with the wrong shape.
func NewRecordError(code, message string) *MergeError {
	return &MergeError{
		Type:        ErrorTypeRecord,
		Code:        code,
		Message:     message,
		Recoverable: true,
	}
}

// NewSplitError creates an error for a line or fragment the fallback split
// could not use.
func NewSplitError(code, message string) *MergeError {
	return &MergeError{
		Type:        ErrorTypeSplit,
		Code:        code,
		Message:     message,
		Recoverable: true,
	}
}

// NewIOError creates an I/O error.
func NewIOError(code, message string, cause error) *MergeError {
	return &MergeError{
		Type:        ErrorTypeIO,
		Code:        code,
		Message:     message,
		Cause:       cause,
		Recoverable: false,
	}
}

// NewConfigError creates a configuration error.
func NewConfigError(code, message string) *MergeError {
	return &MergeError{
		Type:        ErrorTypeConfig,
		Code:        code,
		Message:     message,
		Recoverable: false,
	}
}

// NewInternalError creates an internal error.
func NewInternalError(code, message string, cause error) *MergeError {
	return &MergeError{
		Type:        ErrorTypeInternal,
		Code:        code,
		Message:     message,
		Cause:       cause,
		Recoverable: false,
	}
}

// IsType reports whether err is a MergeError of the given type.
func IsType(err error, errType ErrorType) bool {
	var me *MergeError
	if errors.As(err, &me) {
		return me.Type == errType
	}

	return false
}

// ValidationError is a field-specific validation failure.
type ValidationError interface {
	error
	Field() string
	Value() interface{}
	Suggestions() []string
}

// FieldValidationError implements ValidationError for specific field errors.
type FieldValidationError struct {
	FieldName    string
	FieldValue   interface{}
	ErrorMessage string
	HelpText     []string
}

// Error implements the error interface.
func (fve *FieldValidationError) Error() string {
	return fmt.Sprintf("validation error in field '%s': %s", fve.FieldName, fve.ErrorMessage)
}

// Field returns the field name that failed validation.
func (fve *FieldValidationError) Field() string {
	return fve.FieldName
}

// Value returns the invalid value.
func (fve *FieldValidationError) Value() interface{} {
	return fve.FieldValue
}

// Suggestions returns helpful suggestions for fixing the error.
func (fve *FieldValidationError) Suggestions() []string {
	return fve.HelpText
}

// NewFieldValidationError creates a new field validation error.
func NewFieldValidationError(
	field string,
	value interface{},
	message string,
	suggestions ...string,
) *FieldValidationError {
	return &FieldValidationError{
		FieldName:    field,
		FieldValue:   value,
		ErrorMessage: message,
		HelpText:     suggestions,
	}
}

// ValidationErrorCollection represents a collection of validation errors.
type ValidationErrorCollection struct {
	Errors []ValidationError
}

// Error implements the error interface.
func (vec *ValidationErrorCollection) Error() string {
	if len(vec.Errors) == 0 {
		return "no validation errors"
	}
	if len(vec.Errors) == 1 {
		return vec.Errors[0].Error()
	}

	messages := make([]string, len(vec.Errors))
	for i, err := range vec.Errors {
		messages[i] = err.Error()
	}
	return fmt.Sprintf("validation failed with %d errors: %s", len(vec.Errors), strings.Join(messages, "; "))
}

// AddField adds a field validation error to the collection.
func (vec *ValidationErrorCollection) AddField(
	field string,
	value interface{},
	message string,
	suggestions ...string,
) {
	vec.Errors = append(vec.Errors, NewFieldValidationError(field, value, message, suggestions...))
}

// HasErrors returns true if there are any validation errors.
func (vec *ValidationErrorCollection) HasErrors() bool {
	return len(vec.Errors) > 0
}

// ToMergeError converts the collection to a config MergeError, or nil when
// the collection is empty.
func (vec *ValidationErrorCollection) ToMergeError() *MergeError {
	if !vec.HasErrors() {
		return nil
	}

	context := make(map[string]interface{})
	for _, err := range vec.Errors {
		context[err.Field()] = map[string]interface{}{
			"value":       err.Value(),
			"suggestions": err.Suggestions(),
		}
	}

	return &MergeError{
		Type:        ErrorTypeConfig,
		Code:        ErrCodeValidationFailed,
		Message:     "invalid configuration",
		Cause:       vec,
		Context:     context,
		Recoverable: false,
	}
}
