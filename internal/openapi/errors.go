package openapi

import (
	"errors"
	"fmt"
)

// DocumentError represents a failure to load or interpret an OpenAPI
// document.
type DocumentError struct {
	// Code identifies the error category.
	Code DocumentErrorCode

	// Detail names the file, reference or schema the error refers to.
	Detail string

	// Err is the underlying cause, if any.
	Err error
}

// DocumentErrorCode categorizes document errors.
type DocumentErrorCode string

const (
	// ErrCodeUnreadableFile indicates the input file could not be read.
	ErrCodeUnreadableFile DocumentErrorCode = "UNREADABLE_FILE"

	// ErrCodeUnsupportedFormat indicates the file extension maps to no
	// known document format.
	ErrCodeUnsupportedFormat DocumentErrorCode = "UNSUPPORTED_FORMAT"

	// ErrCodeMalformedDocument indicates the document could not be
	// decoded.
	ErrCodeMalformedDocument DocumentErrorCode = "MALFORMED_DOCUMENT"

	// ErrCodeUnresolvedRef indicates a $ref points at nothing in the
	// document.
	ErrCodeUnresolvedRef DocumentErrorCode = "UNRESOLVED_REF"

	// ErrCodeInvalidSchema indicates a schema breaks a structural rule,
	// such as an array without items.
	ErrCodeInvalidSchema DocumentErrorCode = "INVALID_SCHEMA"
)

// Error implements the error interface.
func (e *DocumentError) Error() string {
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

// Unwrap exposes the underlying cause for errors.Is/As.
func (e *DocumentError) Unwrap() error { return e.Err }

// IsUnresolvedRef returns true if the error reports a dangling $ref.
func IsUnresolvedRef(err error) bool {
	var de *DocumentError
	return errors.As(err, &de) && de.Code == ErrCodeUnresolvedRef
}

// NewUnreadableFileError creates a DocumentError for an unreadable input.
func NewUnreadableFileError(path string, err error) *DocumentError {
	return &DocumentError{Code: ErrCodeUnreadableFile, Detail: path, Err: err}
}

// NewUnsupportedFormatError creates a DocumentError for an unknown file
// extension.
func NewUnsupportedFormatError(path string) *DocumentError {
	return &DocumentError{Code: ErrCodeUnsupportedFormat, Detail: path}
}

// NewMalformedDocumentError creates a DocumentError for a document that
// could not be decoded.
func NewMalformedDocumentError(path string, err error) *DocumentError {
	return &DocumentError{Code: ErrCodeMalformedDocument, Detail: path, Err: err}
}

// NewUnresolvedRefError creates a DocumentError for a dangling $ref.
func NewUnresolvedRefError(ref string) *DocumentError {
	return &DocumentError{Code: ErrCodeUnresolvedRef, Detail: ref}
}

// NewInvalidSchemaError creates a DocumentError for a structurally
// invalid schema.
func NewInvalidSchemaError(name, detail string) *DocumentError {
	return &DocumentError{Code: ErrCodeInvalidSchema, Detail: name + ": " + detail}
}
