package md2pdf

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

// chromedpRenderer implements pdfRenderer with chromedp. Like rodRenderer it
// starts a fresh browser per call; cancelling the allocator context kills it.
type chromedpRenderer struct {
	timeout time.Duration
}

func newChromedpRenderer(timeout time.Duration) *chromedpRenderer {
	return &chromedpRenderer{timeout: timeout}
}

func newChromedpConverter(timeout time.Duration) *htmlFileConverter {
	return &htmlFileConverter{renderer: newChromedpRenderer(timeout)}
}

// allocatorOptions returns the exec allocator flags for the current environment.
func allocatorOptions(env browserEnv) []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("font-render-hinting", "none"),
		// file:// pages load file:// images from other directories.
		chromedp.Flag("allow-file-access-from-files", true),
	)
	if env.bin != "" {
		opts = append(opts, chromedp.ExecPath(env.bin))
	}
	if env.noSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}
	return opts
}

// settleScript resolves after the load event once web fonts are ready, the
// page has had an idle period (at most one second) and every image, including
// ones added by late scripts, has loaded or failed. This matches what rod's
// WaitLoad plus WaitIdle give.
const settleScript = `new Promise(resolve => {
	const images = () => Promise.all(Array.from(document.images)
		.filter(img => !img.complete)
		.map(img => new Promise(done => { img.onload = img.onerror = done; })));
	const idle = () => new Promise(done => requestIdleCallback(done, {timeout: 1000}));
	const settle = () => document.fonts.ready.then(idle).then(images).then(() => resolve(true));
	if (document.readyState === 'complete') {
		settle();
	} else {
		window.addEventListener('load', settle, {once: true});
	}
})`

// settleActions waits until the page is ready to paginate.
func settleActions() chromedp.Tasks {
	var settled bool
	return chromedp.Tasks{
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Evaluate(settleScript, &settled, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithAwaitPromise(true)
		}),
	}
}

// RenderFromFile navigates to the file and prints it.
func (r *chromedpRenderer) RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocatorOptions(readBrowserEnv())...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	// An empty Run starts the browser.
	if err := chromedp.Run(browserCtx); err != nil {
		return nil, wrapRenderErr(ctx, ErrBrowserConnect, err)
	}

	if err := chromedp.Run(browserCtx,
		chromedp.Navigate(fileURL(filePath)),
		settleActions(),
	); err != nil {
		return nil, wrapRenderErr(ctx, ErrPageLoad, err)
	}

	l := layoutFor(opts)
	var pdf []byte
	err := chromedp.Run(browserCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		data, _, err := page.PrintToPDF().
			WithPrintBackground(true).
			WithPaperWidth(paperWidthInches).
			WithPaperHeight(paperHeightInches).
			WithMarginTop(l.marginTop).
			WithMarginBottom(l.marginBottom).
			WithMarginLeft(l.marginLeft).
			WithMarginRight(l.marginRight).
			WithDisplayHeaderFooter(l.displayHeaderFooter).
			WithHeaderTemplate(l.headerTemplate).
			WithFooterTemplate(l.footerTemplate).
			Do(ctx)
		if err != nil {
			return err
		}
		pdf = data
		return nil
	}))
	if err != nil {
		return nil, wrapRenderErr(ctx, ErrPDFGeneration, err)
	}
	if len(pdf) == 0 {
		return nil, fmt.Errorf("%w: empty output", ErrPDFGeneration)
	}
	return pdf, nil
}
