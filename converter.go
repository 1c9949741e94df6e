package md2pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/alnah/md2pdf-angebot/internal/fileutil"
	"github.com/alnah/md2pdf-angebot/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.CSSInjector          = (*pipeline.CSSInjection)(nil)
	_ pdfConverter                  = (*htmlFileConverter)(nil)
	_ pdfRenderer                   = (*rodRenderer)(nil)
	_ pdfRenderer                   = (*chromedpRenderer)(nil)
)

// Converter runs assembly and rendering for one file at a time.
// Create with NewConverter(), use Convert() for conversion, and Close() when done.
type Converter struct {
	cfg          converterConfig
	logger       *zap.Logger
	assembler    *Assembler
	pdfConverter pdfConverter
	verify       func([]byte) (int, error)
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithEngine, WithAssetPath).
// Returns error if the engine is unknown or assets fail to load.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:    converterConfig{timeout: DefaultTimeout, engine: EngineRod},
		logger: zap.NewNop(),
		verify: verifyPDF,
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := validateEngine(c.cfg.engine); err != nil {
		return nil, err
	}

	if c.assembler == nil {
		a, err := NewAssembler(c.cfg.assetPath)
		if err != nil {
			return nil, err
		}
		c.assembler = a
	}

	// Create PDF converter if not injected (e.g., by tests)
	if c.pdfConverter == nil {
		switch c.cfg.engine {
		case EngineChromedp:
			c.pdfConverter = newChromedpConverter(c.cfg.timeout)
		default:
			c.pdfConverter = newRodConverter(c.cfg.timeout)
		}
	}

	return c, nil
}

// Convert assembles the document and, unless input.HTMLOnly, renders and
// verifies the PDF. Recovers from internal panics to prevent crashes from
// propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	doc, err := c.assembler.Assemble(ctx, input)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("document assembled",
		zap.String("title", doc.Title),
		zap.Bool("angebot", doc.Angebot),
		zap.Int("html_bytes", len(doc.HTML)),
	)

	res := &ConvertResult{
		Document: doc,
		HTML:     []byte(doc.HTML),
	}
	if input.HTMLOnly {
		return res, nil
	}

	pdfBytes, err := c.pdfConverter.ToPDF(ctx, doc.HTML, &pdfOptions{
		HeaderTemplate: doc.HeaderHTML,
		FooterTemplate: doc.FooterHTML,
		Angebot:        doc.Angebot,
	})
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}

	pages, err := c.verify(pdfBytes)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("pdf rendered",
		zap.String("engine", c.cfg.engine),
		zap.Int("pages", pages),
		zap.Int("bytes", len(pdfBytes)),
	)

	res.PDF = pdfBytes
	res.Pages = pages
	return res, nil
}

// Close releases renderer resources.
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}

// ReadInput reads a Markdown file and fills Markdown, Name, and SourceDir.
func ReadInput(path string) (Input, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return Input{}, fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}
	return Input{
		Markdown:  string(content),
		Name:      fileutil.BaseName(path),
		SourceDir: filepath.Dir(path),
	}, nil
}
