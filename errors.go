package gmi

import "errors"

// Sentinel errors for library operations.
var (
	ErrDocumentReleased   = errors.New("document already released")
	ErrNegativeLineNumber = errors.New("line number cannot be negative")
	ErrLineNumberOrder    = errors.New("line number must increase")
	ErrUnknownLineType    = errors.New("unknown line type")

	// Line supply errors.
	ErrLineTooLong = errors.New("line exceeds maximum length")
	ErrReadInput   = errors.New("failed to read input")

	// Option validation errors.
	ErrInvalidExtensionSearch = errors.New("invalid extension search mode")
	ErrInvalidImageExtension  = errors.New("invalid image extension")
)
