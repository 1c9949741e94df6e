package md2pdf

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/md2pdf-angebot/internal/fileutil"
	"github.com/alnah/md2pdf-angebot/internal/process"
)

// pdfConverter abstracts HTML to PDF conversion to allow different backends.
type pdfConverter interface {
	ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error)
	Close() error
}

// pdfRenderer abstracts PDF rendering from an HTML file to enable testing without a browser.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error)
}

// pdfOptions holds options for PDF generation.
type pdfOptions struct {
	HeaderTemplate string // empty with FooterTemplate: no header/footer band
	FooterTemplate string
	Angebot        bool
}

// A4 page in inches, margins converted from cm and CSS px.
const (
	paperWidthInches  = 8.27
	paperHeightInches = 11.69
	cmPerInch         = 2.54
	cssPxPerInch      = 96

	marginInches      = 2 / cmPerInch
	quoteBottomInches = 100.0 / cssPxPerInch // room for the three-column footer
)

// pageLayout is the engine-neutral print setup.
type pageLayout struct {
	marginTop, marginBottom, marginLeft, marginRight float64

	displayHeaderFooter bool
	headerTemplate      string
	footerTemplate      string
}

// layoutFor derives margins and header/footer bands from opts.
func layoutFor(opts *pdfOptions) pageLayout {
	l := pageLayout{
		marginTop:    marginInches,
		marginBottom: marginInches,
		marginLeft:   marginInches,
		marginRight:  marginInches,
	}
	if opts == nil {
		return l
	}
	if opts.Angebot {
		l.marginBottom = quoteBottomInches
	}
	if opts.HeaderTemplate != "" || opts.FooterTemplate != "" {
		l.displayHeaderFooter = true
		l.headerTemplate = emptyIfBlank(opts.HeaderTemplate)
		l.footerTemplate = emptyIfBlank(opts.FooterTemplate)
	}
	return l
}

// emptyIfBlank keeps Chrome from printing its default date/title/url band.
func emptyIfBlank(tmpl string) string {
	if tmpl == "" {
		return "<span></span>"
	}
	return tmpl
}

// browserEnv collects the environment knobs shared by both engines.
type browserEnv struct {
	bin       string
	noSandbox bool
}

func readBrowserEnv() browserEnv {
	bin := os.Getenv("ROD_BROWSER_BIN")
	// NoSandbox required for CI and containerized environments
	noSandbox := os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" || bin != ""
	return browserEnv{bin: bin, noSandbox: noSandbox}
}

// rodRenderer implements pdfRenderer using go-rod. Every call launches its
// own browser and tears it down before returning.
// Rod automatically downloads Chromium on first run if not found.
type rodRenderer struct {
	timeout time.Duration
}

func newRodRenderer(timeout time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout}
}

// RenderFromFile opens a local HTML file in headless Chrome and renders it to PDF.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	env := readBrowserEnv()
	l := launcher.New().Context(ctx)
	if env.bin != "" {
		l = l.Bin(env.bin)
	}
	if env.noSandbox {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		l.Kill()
		return nil, wrapRenderErr(ctx, ErrBrowserConnect, err)
	}
	defer func() {
		if pid := l.PID(); pid > 0 {
			_ = process.KillProcessGroup(pid)
		}
		l.Kill()
		l.Cleanup()
	}()

	browser := rod.New().ControlURL(u).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, wrapRenderErr(ctx, ErrBrowserConnect, err)
	}
	defer func() { _ = browser.Close() }()

	page, err := browser.Page(proto.TargetCreateTarget{URL: fileURL(filePath)})
	if err != nil {
		return nil, wrapRenderErr(ctx, ErrPageCreate, err)
	}

	if err := page.WaitLoad(); err != nil {
		return nil, wrapRenderErr(ctx, ErrPageLoad, err)
	}
	// Web fonts and images may still be settling after the load event.
	if err := page.WaitIdle(time.Second); err != nil {
		return nil, wrapRenderErr(ctx, ErrPageLoad, err)
	}

	reader, err := page.PDF(buildPDFOptions(opts))
	if err != nil {
		return nil, wrapRenderErr(ctx, ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return pdfBuf, nil
}

// buildPDFOptions maps the page layout onto rod's print parameters.
func buildPDFOptions(opts *pdfOptions) *proto.PagePrintToPDF {
	l := layoutFor(opts)
	return &proto.PagePrintToPDF{
		PaperWidth:          floatPtr(paperWidthInches),
		PaperHeight:         floatPtr(paperHeightInches),
		MarginTop:           floatPtr(l.marginTop),
		MarginBottom:        floatPtr(l.marginBottom),
		MarginLeft:          floatPtr(l.marginLeft),
		MarginRight:         floatPtr(l.marginRight),
		PrintBackground:     true,
		DisplayHeaderFooter: l.displayHeaderFooter,
		HeaderTemplate:      l.headerTemplate,
		FooterTemplate:      l.footerTemplate,
	}
}

// wrapRenderErr tags err with sentinel, keeping a context error visible to
// errors.Is when the deadline or a signal caused the failure.
func wrapRenderErr(ctx context.Context, sentinel, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%w: %w", sentinel, ctxErr)
	}
	return fmt.Errorf("%w: %v", sentinel, err)
}

// fileURL converts a local path to a file:// URL.
func fileURL(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	p := filepath.ToSlash(path)
	if p[0] != '/' {
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}

// htmlFileConverter writes the HTML to a temp file and hands it to a
// renderer, so relative resources and file:// images load in the browser.
type htmlFileConverter struct {
	renderer pdfRenderer
}

func newRodConverter(timeout time.Duration) *htmlFileConverter {
	return &htmlFileConverter{renderer: newRodRenderer(timeout)}
}

// ToPDF converts HTML content to PDF bytes (A4).
func (c *htmlFileConverter) ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return c.renderer.RenderFromFile(ctx, tmpPath, opts)
}

// Close is a no-op: browsers live only for the duration of one render.
func (c *htmlFileConverter) Close() error {
	return nil
}
