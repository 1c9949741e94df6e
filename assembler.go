package md2pdf

import (
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/alnah/md2pdf-angebot/internal/assets"
	"github.com/alnah/md2pdf-angebot/internal/dateutil"
	"github.com/alnah/md2pdf-angebot/internal/pipeline"
)

// DefaultValidityPeriod is printed when a quotation has no Gültigkeitsdauer line.
const DefaultValidityPeriod = "30 Tage"

// Assembler turns Markdown plus branding into a complete HTML document.
// It holds only parsed templates and stylesheets, so one Assembler can
// serve every file of a batch.
type Assembler struct {
	preprocessor  pipeline.MarkdownPreprocessor
	htmlConverter pipeline.HTMLConverter
	cssInjector   pipeline.CSSInjector

	contentCSS string // content stylesheet plus highlight classes
	chromeCSS  string // quotation stylesheet with color tokens

	banner    *pipeline.BlockTemplate
	recipient *pipeline.BlockTemplate
	footer    *pipeline.BlockTemplate
}

// NewAssembler loads styles and templates, from assetPath when set with the
// embedded set as fallback.
func NewAssembler(assetPath string) (*Assembler, error) {
	var loader assets.AssetLoader = assets.NewEmbeddedLoader()
	if assetPath != "" {
		resolver, err := assets.NewAssetResolver(assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		loader = resolver
	}
	return newAssembler(loader)
}

func newAssembler(loader assets.AssetLoader) (*Assembler, error) {
	bundle, err := assets.LoadBundle(loader)
	if err != nil {
		return nil, err
	}

	highlightCSS, err := pipeline.HighlightCSS()
	if err != nil {
		return nil, err
	}

	a := &Assembler{
		preprocessor:  &pipeline.CommonMarkPreprocessor{},
		htmlConverter: pipeline.NewGoldmarkConverter(),
		cssInjector:   &pipeline.CSSInjection{},
		contentCSS:    bundle.ContentCSS + "\n" + highlightCSS,
		chromeCSS:     bundle.ChromeCSS,
	}

	blocks := []struct {
		name    string
		content string
		dst     **pipeline.BlockTemplate
	}{
		{assets.TemplateBanner, bundle.BannerTemplate, &a.banner},
		{assets.TemplateRecipient, bundle.RecipientTemplate, &a.recipient},
		{assets.TemplateFooter, bundle.FooterTemplate, &a.footer},
	}
	for _, b := range blocks {
		tmpl, err := pipeline.NewBlockTemplate(b.name, b.content)
		if err != nil {
			return nil, err
		}
		*b.dst = tmpl
	}
	return a, nil
}

// Assemble extracts fields, renders the Markdown, and builds the document.
// The result depends only on input; nothing is carried between calls.
func (a *Assembler) Assemble(ctx context.Context, input Input) (*Document, error) {
	if strings.TrimSpace(input.Markdown) == "" {
		return nil, ErrEmptyMarkdown
	}

	branding := brandingOrDefault(input.Branding)
	now := input.Now
	if now.IsZero() {
		now = time.Now()
	}

	fields, body := pipeline.ExtractFields(input.Markdown)
	title := pipeline.ExtractTitle(body, input.Name)

	md := a.preprocessor.PreprocessMarkdown(ctx, body)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fragment, err := a.htmlConverter.ToHTML(ctx, md)
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}
	fragment, err = pipeline.ResolveLocalImages(fragment, input.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("%w: resolving image paths: %v", ErrAssemble, err)
	}

	page, err := pipeline.BuildDocument(title, fragment)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssemble, err)
	}

	doc := &Document{
		Title:    title,
		Fields:   fields,
		BodyHTML: fragment,
		Angebot:  input.Angebot,
		Branding: branding,
	}
	css := a.contentCSS

	switch {
	case input.Angebot:
		chromeCSS, err := a.assembleQuote(ctx, doc, now)
		if err != nil {
			return nil, err
		}
		page = pipeline.InjectAfterBody(page, doc.BannerHTML+doc.RecipientHTML)
		css += "\n" + chromeCSS
	case input.ShowHeaderFooter:
		doc.HeaderHTML = pipeline.PageHeader(title)
		doc.FooterHTML = pipeline.PageFooter()
	}

	doc.HTML = a.cssInjector.InjectCSS(ctx, page, css)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return doc, nil
}

// assembleQuote fills quotation defaults and renders banner, recipient, and
// footer into doc. It returns the colored chrome stylesheet.
func (a *Assembler) assembleQuote(ctx context.Context, doc *Document, now time.Time) (string, error) {
	fields, err := withQuoteDefaults(doc.Fields, now)
	if err != nil {
		return "", err
	}
	doc.Fields = fields

	b := doc.Branding
	chromeCSS := pipeline.ApplyColors(a.chromeCSS, b.PrimaryColor, b.TextColor)

	doc.BannerHTML, err = a.banner.Render(ctx, pipeline.BannerData{
		Logo:           template.URL(b.Logo), // #nosec G203 -- data URI built from a sniffed image
		LogoWidth:      b.LogoWidth,
		CompanyName:    b.CompanyName,
		CompanyAddress: b.CompanyAddress,
		CompanyCity:    b.CompanyCity,
		QuoteNumber:    fields.QuoteNumber,
		Date:           fields.Date,
		ValidityPeriod: fields.ValidityPeriod,
		Issuer:         fields.Issuer,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssemble, err)
	}

	if fields.Client != "" || fields.Address != "" {
		doc.RecipientHTML, err = a.recipient.Render(ctx, pipeline.RecipientData{
			Client:  fields.Client,
			Address: fields.Address,
		})
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrAssemble, err)
		}
	}

	doc.HeaderHTML = pipeline.EmptyPageHeader
	doc.FooterHTML, err = a.footer.Render(ctx, pipeline.FooterData{
		CSS:            pipeline.FooterCSS(chromeCSS),
		CompanyName:    b.CompanyName,
		CompanyAddress: b.CompanyAddress,
		CompanyCity:    b.CompanyCity,
		UstID:          b.UstID,
		BankName:       b.BankName,
		IBAN:           b.IBAN,
		BIC:            b.BIC,
		Website:        b.Website,
		Email:          b.Email,
		Phone:          b.Phone,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssemble, err)
	}
	return chromeCSS, nil
}

// withQuoteDefaults stamps missing quote number, date, and validity period.
func withQuoteDefaults(f Fields, now time.Time) (Fields, error) {
	if f.QuoteNumber == "" {
		s, err := dateutil.Format(now, dateutil.QuoteNumberFormat)
		if err != nil {
			return f, fmt.Errorf("%w: quote number: %v", ErrAssemble, err)
		}
		f.QuoteNumber = s
	}
	if f.Date == "" {
		s, err := dateutil.Format(now, dateutil.GermanDateFormat)
		if err != nil {
			return f, fmt.Errorf("%w: date: %v", ErrAssemble, err)
		}
		f.Date = s
	}
	if f.ValidityPeriod == "" {
		f.ValidityPeriod = DefaultValidityPeriod
	}
	return f, nil
}

// brandingOrDefault copies b, filling empty colors from the defaults so the
// chrome stylesheet never ends up with blank declarations.
func brandingOrDefault(b *Branding) Branding {
	def := DefaultBranding()
	if b == nil {
		return def
	}
	out := *b
	if out.PrimaryColor == "" {
		out.PrimaryColor = def.PrimaryColor
	}
	if out.TextColor == "" {
		out.TextColor = def.TextColor
	}
	return out
}
