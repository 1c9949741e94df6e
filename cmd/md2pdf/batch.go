package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/alnah/md2pdf-angebot/internal/hints"
)

// batchResult counts per-file outcomes.
type batchResult struct {
	Succeeded int
	Failed    int
}

// convertFunc converts a single input path.
type convertFunc func(ctx context.Context, path string) error

// expandArgs expands glob patterns in args. Patterns are sorted lexically by
// filepath.Glob; literal arguments pass through untouched so that a missing
// file surfaces as a per-file failure.
func expandArgs(args []string, logger *zap.Logger) []string {
	var files []string
	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[") {
			files = append(files, arg)
			continue
		}

		matches, err := filepath.Glob(arg)
		if err != nil {
			logger.Warn("invalid pattern", zap.String("pattern", arg), zap.Error(err))
			continue
		}
		if len(matches) == 0 {
			logger.Warn("no files match pattern"+hints.ForNoMatches(), zap.String("pattern", arg))
			continue
		}
		files = append(files, matches...)
	}
	return files
}

// runBatch converts files one after another in argument order. A failing
// file is logged and counted; only context cancellation stops the batch.
func runBatch(ctx context.Context, files []string, convert convertFunc, logger *zap.Logger) (batchResult, error) {
	var res batchResult
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		if err := convert(ctx, file); err != nil {
			res.Failed++
			logger.Error("conversion failed",
				zap.String("file", file),
				zap.String("kind", failureKind(err)),
				zap.Error(err),
			)
			if errors.Is(err, context.Canceled) && ctx.Err() != nil {
				return res, ctx.Err()
			}
			continue
		}
		res.Succeeded++
	}

	if res.Failed > 0 {
		return res, errBatchFailed
	}
	return res, nil
}

// printSummary writes the totals line after a multi-file batch.
func printSummary(w io.Writer, res batchResult) {
	fmt.Fprintf(w, "\n%d succeeded, %d failed\n", res.Succeeded, res.Failed)
}
