package main

import (
	"context"

	"github.com/alnah/md2pdf-angebot/internal/process"
)

// Opener displays a file with the system viewer.
type Opener interface {
	Open(ctx context.Context, path string) error
}

type processOpener struct{}

func (processOpener) Open(ctx context.Context, path string) error {
	return process.Open(ctx, path)
}
