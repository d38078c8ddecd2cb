package form

import "errors"

var (
	// ErrNoImport is returned when applying an import that was never made
	// or has been discarded.
	ErrNoImport = errors.New("no extracted data to apply")

	// ErrUnsupportedDocument is returned for uploads outside the accepted
	// document types.
	ErrUnsupportedDocument = errors.New("please upload PDF, DOCX, or TXT files only")

	// ErrUnknownField is returned by Update for a field name the form does
	// not have.
	ErrUnknownField = errors.New("unknown form field")

	// ErrInvalidValue is returned by Update when the value is outside the
	// field's allowed set or format.
	ErrInvalidValue = errors.New("invalid field value")
)
