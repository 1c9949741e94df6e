package md2pdf

import (
	"fmt"
	"strings"
	"time"

	"github.com/alnah/md2pdf-angebot/internal/config"
	"github.com/alnah/md2pdf-angebot/internal/pipeline"
	"go.uber.org/zap"
)

// Render engines.
const (
	EngineRod      = "rod"
	EngineChromedp = "chromedp"
)

// DefaultTimeout bounds a single render when no timeout is specified.
const DefaultTimeout = 60 * time.Second

// Fields holds the metadata extracted from "**Label:** value" lines.
type Fields = pipeline.Fields

// Branding is the company identity printed in quotation mode.
type Branding struct {
	CompanyName    string
	CompanyAddress string
	CompanyCity    string
	UstID          string
	Email          string
	Phone          string
	Website        string

	BankName string
	IBAN     string
	BIC      string

	PrimaryColor string
	TextColor    string

	Logo      string // data URI, empty for no logo
	LogoWidth int    // px, 0 for natural size
}

// BrandingFromConfig maps a loaded config onto Branding. The logo is passed
// separately since resolving it reads the filesystem.
func BrandingFromConfig(cfg *config.Config, logo string) Branding {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return Branding{
		CompanyName:    cfg.Company.Name,
		CompanyAddress: cfg.Company.Address,
		CompanyCity:    cfg.Company.City,
		UstID:          cfg.Company.UstID,
		Email:          cfg.Company.Email,
		Phone:          cfg.Company.Phone,
		Website:        cfg.Company.Website,
		BankName:       cfg.Bank.Name,
		IBAN:           cfg.Bank.IBAN,
		BIC:            cfg.Bank.BIC,
		PrimaryColor:   cfg.Colors.Primary,
		TextColor:      cfg.Colors.Text,
		Logo:           logo,
		LogoWidth:      cfg.Logo.Width,
	}
}

// DefaultBranding returns the built-in placeholder company.
func DefaultBranding() Branding {
	return BrandingFromConfig(config.DefaultConfig(), "")
}

// Document is the assembled HTML for one input file.
type Document struct {
	Title         string
	Fields        Fields
	HTML          string // full document handed to the browser
	BodyHTML      string // rendered Markdown only
	BannerHTML    string // quotation mode
	RecipientHTML string // quotation mode, when client or address present
	HeaderHTML    string // Chrome header template, empty when disabled
	FooterHTML    string // Chrome footer template, empty when disabled
	Angebot       bool
	Branding      Branding
}

func validateEngine(engine string) error {
	switch strings.ToLower(engine) {
	case EngineRod, EngineChromedp:
		return nil
	}
	return fmt.Errorf("%w: %q (want %q or %q)", ErrInvalidEngine, engine, EngineRod, EngineChromedp)
}

// Input is one conversion request. Layout switches live here; converter-wide
// settings (timeout, engine, assets) are Options passed to NewConverter.
type Input struct {
	Markdown  string
	Name      string // title fallback, usually the file base name
	SourceDir string // for relative image paths

	Angebot          bool
	ShowHeaderFooter bool
	Branding         *Branding // nil uses DefaultBranding

	// Now stamps default quote numbers and dates. Zero means time.Now.
	Now time.Time

	// HTMLOnly skips PDF generation.
	HTMLOnly bool
}

// ConvertResult contains the outputs of a conversion.
type ConvertResult struct {
	Document *Document
	HTML     []byte
	PDF      []byte // nil when HTMLOnly
	Pages    int    // page count of PDF
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout   time.Duration
	engine    string
	assetPath string
}

// WithTimeout sets the render timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("md2pdf: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithEngine selects the browser driver (EngineRod or EngineChromedp).
func WithEngine(engine string) Option {
	return func(c *Converter) {
		c.cfg.engine = strings.ToLower(engine)
	}
}

// WithAssetPath overrides embedded styles and templates with files from dir.
// Missing files fall back to the embedded ones.
func WithAssetPath(dir string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = dir
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}
