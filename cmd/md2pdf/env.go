package main

import (
	"context"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	md2pdf "github.com/alnah/md2pdf-angebot"
)

// Converter is the conversion service used by the batch.
type Converter interface {
	Convert(ctx context.Context, input md2pdf.Input) (*md2pdf.ConvertResult, error)
	Close() error
}

// Compile-time interface implementation check.
var _ Converter = (*md2pdf.Converter)(nil)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, logging, and side effects on the desktop.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer

	// Logger overrides the logger built from -q/-v.
	Logger *zap.Logger

	// Opener shows finished PDFs.
	Opener Opener

	// NewConverter builds the conversion service.
	NewConverter func(opts ...md2pdf.Option) (Converter, error)

	// WorkDir receives md2pdf-debug.html. Empty means the process cwd.
	WorkDir string

	// ConfigDir is searched for angebot.yaml. Empty means the executable's directory.
	ConfigDir string
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Opener: processOpener{},
		NewConverter: func(opts ...md2pdf.Option) (Converter, error) {
			return md2pdf.NewConverter(opts...)
		},
	}
}
