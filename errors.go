package md2pdf

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown  = errors.New("markdown content cannot be empty")
	ErrReadMarkdown   = errors.New("failed to read markdown file")
	ErrAssemble       = errors.New("document assembly failed")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrInvalidPDF     = errors.New("generated PDF is invalid")
	ErrWritePDF       = errors.New("failed to write PDF file")
	ErrWriteHTML      = errors.New("failed to write HTML file")

	// Option validation errors.
	ErrInvalidEngine  = errors.New("invalid render engine")
	ErrInvalidTimeout = errors.New("invalid timeout")

	// Asset loading errors.
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
