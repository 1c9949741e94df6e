package pipeline

import (
	"html/template"
	"strings"
)

// BannerData fills the quotation banner template.
type BannerData struct {
	Logo           template.URL // data URI or empty
	LogoWidth      int
	CompanyName    string
	CompanyAddress string
	CompanyCity    string
	QuoteNumber    string
	Date           string
	ValidityPeriod string
	Issuer         string
}

// RecipientData fills the recipient block template.
type RecipientData struct {
	Client  string
	Address string
}

// FooterData fills the repeating quotation footer template.
type FooterData struct {
	CSS            template.CSS
	CompanyName    string
	CompanyAddress string
	CompanyCity    string
	UstID          string
	BankName       string
	IBAN           string
	BIC            string
	Website        string
	Email          string
	Phone          string
}

// FooterCSS marks a stylesheet as safe for the footer <style> element.
func FooterCSS(css string) template.CSS {
	return template.CSS(sanitizeCSS(css)) // #nosec G203 -- embedded or user asset, colors validated
}

// ApplyColors replaces the {{primary}} and {{text}} tokens of the chrome
// stylesheet.
func ApplyColors(css, primary, text string) string {
	return strings.NewReplacer("{{primary}}", primary, "{{text}}", text).Replace(css)
}
