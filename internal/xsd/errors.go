package xsd

import (
	"errors"
	"fmt"
)

// ParseError represents an error detected while parsing a schema
// document. Parse errors are recoverable at the document level: a caller
// may skip the offending element or abort the whole document.
//
// Global-invariant violations (duplicate allocator construction, identity
// exhaustion) are deliberately not ParseErrors; those panic, because they
// indicate misuse rather than bad input.
type ParseError struct {
	// Code identifies the error category.
	Code ParseErrorCode

	// Detail names the attribute, type or node the error refers to.
	Detail string

	// Err is the opaque underlying tokenizer failure, if any.
	Err error
}

// ParseErrorCode categorizes parse errors.
type ParseErrorCode string

const (
	// ErrCodeUnexpectedEOF indicates the document ended before the
	// element under parse was closed.
	ErrCodeUnexpectedEOF ParseErrorCode = "UNEXPECTED_EOF"

	// ErrCodeUnexpected wraps an opaque failure from the underlying
	// tokenizer.
	ErrCodeUnexpected ParseErrorCode = "UNEXPECTED_ERROR"

	// ErrCodeMissingAttribute indicates a required attribute is absent.
	ErrCodeMissingAttribute ParseErrorCode = "MISSING_ATTRIBUTE"

	// ErrCodeMalformedAttribute indicates an attribute value could not
	// be interpreted.
	ErrCodeMalformedAttribute ParseErrorCode = "MALFORMED_ATTRIBUTE"

	// ErrCodeUnsupportedBaseType indicates a type reference is missing
	// or names an unsupported built-in.
	ErrCodeUnsupportedBaseType ParseErrorCode = "UNSUPPORTED_BASE_TYPE"

	// ErrCodeUnresolvedNamespace indicates a namespace alias has no
	// xmlns declaration in scope.
	ErrCodeUnresolvedNamespace ParseErrorCode = "UNRESOLVED_NAMESPACE"

	// ErrCodeUnexpectedNode indicates an element started where it is
	// not allowed.
	ErrCodeUnexpectedNode ParseErrorCode = "UNEXPECTED_NODE"

	// ErrCodeUnreadableFile indicates an input file could not be opened
	// or read.
	ErrCodeUnreadableFile ParseErrorCode = "UNREADABLE_FILE"
)

// Error implements the error interface.
func (e *ParseError) Error() string {
	switch {
	case e.Detail != "" && e.Err != nil:
		return fmt.Sprintf("%s: %q: %v", e.Code, e.Detail, e.Err)
	case e.Detail != "":
		return fmt.Sprintf("%s: %q", e.Code, e.Detail)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	default:
		return string(e.Code)
	}
}

// Unwrap exposes the underlying tokenizer failure for errors.Is/As.
func (e *ParseError) Unwrap() error { return e.Err }

// IsEOFError returns true if the error is an unexpected-end-of-file
// condition. Uses errors.As to handle wrapped errors.
func IsEOFError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe) && pe.Code == ErrCodeUnexpectedEOF
}

// IsMissingAttribute returns true if the error reports an absent
// attribute. Element parsers use it to branch between "typed element"
// and "element with inline type".
func IsMissingAttribute(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe) && pe.Code == ErrCodeMissingAttribute
}

// NewEOFError creates a ParseError for a document that ended early.
func NewEOFError(element string) *ParseError {
	return &ParseError{Code: ErrCodeUnexpectedEOF, Detail: element}
}

// NewUnexpectedError wraps an opaque tokenizer failure.
func NewUnexpectedError(err error) *ParseError {
	return &ParseError{Code: ErrCodeUnexpected, Err: err}
}

// NewMissingAttributeError creates a ParseError for an absent attribute.
func NewMissingAttributeError(name string) *ParseError {
	return &ParseError{Code: ErrCodeMissingAttribute, Detail: name}
}

// NewMalformedAttributeError creates a ParseError for an attribute value
// that could not be interpreted.
func NewMalformedAttributeError(name string, err error) *ParseError {
	return &ParseError{Code: ErrCodeMalformedAttribute, Detail: name, Err: err}
}

// NewUnsupportedBaseTypeError creates a ParseError for a missing or
// unsupported base type reference.
func NewUnsupportedBaseTypeError(typeName string) *ParseError {
	return &ParseError{Code: ErrCodeUnsupportedBaseType, Detail: typeName}
}

// NewUnresolvedNamespaceError creates a ParseError for an alias with no
// matching xmlns declaration.
func NewUnresolvedNamespaceError(alias string) *ParseError {
	return &ParseError{Code: ErrCodeUnresolvedNamespace, Detail: alias}
}

// NewUnexpectedNodeError creates a ParseError for an element that
// started where it is not allowed.
func NewUnexpectedNodeError(element string) *ParseError {
	return &ParseError{Code: ErrCodeUnexpectedNode, Detail: element}
}

// NewUnreadableFileError creates a ParseError for an unreadable input.
func NewUnreadableFileError(path string, err error) *ParseError {
	return &ParseError{Code: ErrCodeUnreadableFile, Detail: path, Err: err}
}
