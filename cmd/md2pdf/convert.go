package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	md2pdf "github.com/alnah/md2pdf-angebot"
	"github.com/alnah/md2pdf-angebot/internal/config"
	"github.com/alnah/md2pdf-angebot/internal/fileutil"
	"github.com/alnah/md2pdf-angebot/internal/hints"
)

// DebugHTMLName is the file written by --save-html.
const DebugHTMLName = "md2pdf-debug.html"

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// run converts every input named by positional and reports the outcome.
func run(ctx context.Context, f *cliFlags, positional []string, env *Environment, logger *zap.Logger) error {
	opts, err := f.options()
	if err != nil {
		return err
	}

	inputs, output := splitOutputArg(positional)
	if f.output != "" {
		if output != "" {
			return fmt.Errorf("%w: output given both as argument and with --output", ErrUsage)
		}
		output = f.output
	}

	files := expandArgs(inputs, logger)
	if output != "" && len(files) > 1 {
		return ErrOutputWithBatch
	}

	conv, err := env.NewConverter(
		md2pdf.WithTimeout(opts.Timeout),
		md2pdf.WithEngine(opts.Engine),
		md2pdf.WithAssetPath(f.assetPath),
		md2pdf.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConverterInit, err)
	}
	defer func() { _ = conv.Close() }()

	fc := &fileConverter{
		conv:    conv,
		opts:    opts,
		env:     env,
		logger:  logger,
		output:  output,
		quiet:   f.quiet,
		verbose: f.verbose,
	}
	if opts.Angebot {
		fc.branding = loadBranding(f.config, env.ConfigDir, logger)
	}

	res, err := runBatch(ctx, files, fc.convert, logger)
	if len(files) > 1 && !f.quiet {
		printSummary(env.Stdout, res)
	}
	return err
}

// loadBranding reads the branding config once per run. It never fails:
// problems are logged and defaults used.
func loadBranding(path, dir string, logger *zap.Logger) *md2pdf.Branding {
	loader := config.NewLoader(logger)
	loader.Path = path
	loader.Dir = dir
	cfg := loader.Load()
	b := md2pdf.BrandingFromConfig(cfg, loader.ResolveLogo(cfg))
	return &b
}

// fileConverter holds what every file in a batch shares.
type fileConverter struct {
	conv     Converter
	opts     runOptions
	branding *md2pdf.Branding
	env      *Environment
	logger   *zap.Logger
	output   string // explicit output, single-file runs only
	quiet    bool
	verbose  bool
}

// convert converts one Markdown file to PDF, or to the debug HTML file.
func (c *fileConverter) convert(ctx context.Context, path string) error {
	start := c.env.Now()

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return fmt.Errorf("%w: %s", ErrUnsupportedInput, path)
	}

	input, err := md2pdf.ReadInput(path)
	if err != nil {
		return err
	}
	input.Angebot = c.opts.Angebot
	input.ShowHeaderFooter = c.opts.ShowHeaderFooter
	input.Branding = c.branding
	input.Now = start
	input.HTMLOnly = c.opts.SaveHTML

	res, err := c.conv.Convert(ctx, input)
	if err != nil {
		return withHint(err, c.opts.Engine)
	}

	if c.opts.SaveHTML {
		return c.writeHTML(res.HTML)
	}

	out := c.output
	if out == "" {
		out = fileutil.ReplaceExtension(path, ".pdf")
	}
	if filepath.Clean(out) == filepath.Clean(path) {
		return fmt.Errorf("%w: %s", ErrOutputIsInput, out)
	}
	if err := writePDF(out, res.PDF); err != nil {
		return err
	}

	if !c.quiet {
		if c.verbose {
			elapsed := c.env.Now().Sub(start).Round(time.Millisecond)
			fmt.Fprintf(c.env.Stdout, "Created %s (%d pages, %s)\n", out, res.Pages, elapsed)
		} else {
			fmt.Fprintf(c.env.Stdout, "Created %s\n", out)
		}
	}

	if c.opts.OpenAfter && c.env.Opener != nil {
		if err := c.env.Opener.Open(ctx, out); err != nil {
			c.logger.Warn("cannot open PDF", zap.String("file", out), zap.Error(err))
		}
	}
	return nil
}

func (c *fileConverter) writeHTML(html []byte) error {
	path := filepath.Join(c.env.WorkDir, DebugHTMLName)
	if err := fileutil.WriteFileAtomic(path, html, filePermissions); err != nil {
		return fmt.Errorf("%w: %v%s", md2pdf.ErrWriteHTML, err, hints.ForOutputDirectory())
	}
	if !c.quiet {
		fmt.Fprintf(c.env.Stdout, "Saved HTML to %s\n", path)
	}
	return nil
}

func writePDF(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return fmt.Errorf("%w: %v%s", md2pdf.ErrWritePDF, err, hints.ForOutputDirectory())
		}
	}
	if err := fileutil.WriteFileAtomic(path, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %v%s", md2pdf.ErrWritePDF, err, hints.ForOutputDirectory())
	}
	return nil
}

// withHint appends an actionable hint to browser and timeout errors.
func withHint(err error, engine string) error {
	switch {
	case errors.Is(err, md2pdf.ErrBrowserConnect):
		return fmt.Errorf("%w%s", err, hints.ForBrowserConnect(engine))
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w%s", err, hints.ForTimeout())
	default:
		return err
	}
}
