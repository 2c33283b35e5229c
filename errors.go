package draftex

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptySource   = errors.New("source document cannot be empty")
	ErrNoPreview     = errors.New("no rendered preview available")
	ErrUnknownFormat = errors.New("unknown export format")

	// Edit pipeline errors.
	ErrEditPending = errors.New("a user edit is awaiting recompute")

	// Assistant integration errors.
	ErrAssistantUnavailable = errors.New("assistant service unreachable")
	ErrAssistantResponse    = errors.New("assistant returned an invalid response")

	// PDF artifact errors.
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrPDFInvalid     = errors.New("generated PDF failed validation")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// DOCX artifact errors.
	ErrDocxEncode = errors.New("DOCX encoding failed")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Template errors.
	ErrTemplateNotFound = errors.New("template not found")
)
