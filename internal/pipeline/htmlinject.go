package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

// Sentinel errors for block templates.
var (
	ErrTemplateParse  = errors.New("template parsing failed")
	ErrTemplateRender = errors.New("template rendering failed")
)

// CSSInjector defines the contract for CSS injection into HTML.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) string
}

// CSSInjection injects CSS as a <style> block into HTML content.
type CSSInjection struct{}

// InjectCSS inserts a <style> block before </head>, else right after the
// opening <body> tag, else at the start of the content.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if cssContent == "" || ctx.Err() != nil {
		return htmlContent
	}

	styleBlock := "<style>" + sanitizeCSS(cssContent) + "</style>"

	if idx := strings.Index(strings.ToLower(htmlContent), "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}
	return InjectAfterBody(htmlContent, styleBlock)
}

// sanitizeCSS escapes "</" so the stylesheet cannot close its <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// InjectAfterBody inserts block right after the opening <body> tag. Content
// without a <body> tag gets the block prepended.
func InjectAfterBody(htmlContent, block string) string {
	if block == "" {
		return htmlContent
	}
	if pos := bodyContentStart(htmlContent); pos != -1 {
		return htmlContent[:pos] + block + htmlContent[pos:]
	}
	return block + htmlContent
}

// bodyContentStart returns the index just past the opening <body ...> tag,
// or -1.
func bodyContentStart(htmlContent string) int {
	lower := strings.ToLower(htmlContent)
	for from := 0; ; {
		idx := strings.Index(lower[from:], "<body")
		if idx == -1 {
			return -1
		}
		idx += from
		// Skip tags like <bodyguard>.
		next := idx + len("<body")
		if next < len(lower) && !strings.ContainsRune("> \t\r\n/", rune(lower[next])) {
			from = next
			continue
		}
		closeIdx := strings.IndexByte(htmlContent[idx:], '>')
		if closeIdx == -1 {
			return -1
		}
		return idx + closeIdx + 1
	}
}

// BlockTemplate renders an HTML snippet (banner, recipient, footer) from a
// named html/template. Every interpolated value is escaped.
type BlockTemplate struct {
	name string
	tmpl *template.Template
}

// NewBlockTemplate parses content as an html/template.
func NewBlockTemplate(name, content string) (*BlockTemplate, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateParse, name, err)
	}
	return &BlockTemplate{name: name, tmpl: tmpl}, nil
}

// Name returns the template name.
func (b *BlockTemplate) Name() string { return b.name }

// Render executes the template with data.
func (b *BlockTemplate) Render(ctx context.Context, data any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := b.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrTemplateRender, b.name, err)
	}
	return buf.String(), nil
}
