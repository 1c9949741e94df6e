package assets

import "fmt"

// Asset names.
const (
	StyleContent      = "content"
	StyleChrome       = "chrome"
	TemplateBanner    = "banner"
	TemplateRecipient = "recipient"
	TemplateFooter    = "footer"
)

// Bundle holds every asset needed to assemble a document.
type Bundle struct {
	ContentCSS string
	ChromeCSS  string

	BannerTemplate    string
	RecipientTemplate string
	FooterTemplate    string
}

// LoadBundle loads all assets through loader.
func LoadBundle(loader AssetLoader) (*Bundle, error) {
	var b Bundle
	styles := []struct {
		name string
		dst  *string
	}{
		{StyleContent, &b.ContentCSS},
		{StyleChrome, &b.ChromeCSS},
	}
	for _, s := range styles {
		css, err := loader.LoadStyle(s.name)
		if err != nil {
			return nil, fmt.Errorf("loading style %q: %w", s.name, err)
		}
		*s.dst = css
	}

	tmpls := []struct {
		name string
		dst  *string
	}{
		{TemplateBanner, &b.BannerTemplate},
		{TemplateRecipient, &b.RecipientTemplate},
		{TemplateFooter, &b.FooterTemplate},
	}
	for _, t := range tmpls {
		content, err := loader.LoadTemplate(t.name)
		if err != nil {
			return nil, fmt.Errorf("loading template %q: %w", t.name, err)
		}
		*t.dst = content
	}
	return &b, nil
}
