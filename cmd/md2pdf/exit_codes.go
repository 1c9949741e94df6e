package main

import (
	"context"
	"errors"
	"os"

	md2pdf "github.com/alnah/md2pdf-angebot"
)

// Exit codes for md2pdf CLI.
const (
	ExitSuccess = 0 // Every file converted
	ExitFailure = 1 // At least one file failed
	ExitUsage   = 2 // Invalid flags or arguments
)

// Sentinel errors for CLI operations.
var (
	ErrUsage            = errors.New("invalid usage")
	ErrOutputWithBatch  = errors.New("--output needs exactly one input file")
	ErrConverterInit    = errors.New("failed to initialize converter")
	ErrOutputIsInput    = errors.New("output path equals input path")
	ErrUnsupportedInput = errors.New("input is a directory")
)

// exitCodeFor maps a run-level error to an exit code.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrUsage),
		errors.Is(err, ErrOutputWithBatch),
		errors.Is(err, md2pdf.ErrInvalidEngine),
		errors.Is(err, md2pdf.ErrInvalidTimeout),
		errors.Is(err, md2pdf.ErrInvalidAssetPath):
		return ExitUsage
	default:
		return ExitFailure
	}
}

// failureKind classifies a per-file error for the log.
func failureKind(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, md2pdf.ErrReadMarkdown),
		errors.Is(err, ErrUnsupportedInput),
		errors.Is(err, os.ErrNotExist):
		return "input"
	case errors.Is(err, md2pdf.ErrBrowserConnect),
		errors.Is(err, md2pdf.ErrPageCreate),
		errors.Is(err, md2pdf.ErrPageLoad),
		errors.Is(err, md2pdf.ErrPDFGeneration),
		errors.Is(err, md2pdf.ErrInvalidPDF):
		return "browser"
	case errors.Is(err, md2pdf.ErrWritePDF),
		errors.Is(err, md2pdf.ErrWriteHTML),
		errors.Is(err, ErrOutputIsInput):
		return "output"
	default:
		return "convert"
	}
}

// errBatchFailed reports per-file failures that were already logged.
var errBatchFailed = errors.New("one or more files failed")
