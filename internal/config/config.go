// Package config loads the branding configuration used in quotation mode.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/alnah/md2pdf-angebot/internal/fileutil"
	"github.com/alnah/md2pdf-angebot/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrFieldTooLong   = errors.New("field exceeds maximum length")
	ErrInvalidColor   = errors.New("invalid color")
	ErrInvalidWidth   = errors.New("invalid logo width")
)

// FileNames are tried in order inside the search directory.
var FileNames = []string{"angebot.yaml", "angebot.yml", "angebot.json"}

// Field length limits.
const (
	MaxNameLength    = 100
	MaxAddressLength = 200
	MaxTaxIDLength   = 30
	MaxEmailLength   = 254 // RFC 5321
	MaxPhoneLength   = 50
	MaxURLLength     = 2048
	MaxIBANLength    = 42 // 34 chars plus grouping spaces
	MaxBICLength     = 11
	MaxPathLength    = 4096
	MaxLogoWidth     = 2000 // px
)

// colorPattern accepts hex colors and plain CSS color names; anything else
// would end up verbatim in the chrome stylesheet.
var colorPattern = regexp.MustCompile(`^(#[0-9a-fA-F]{3,8}|[a-zA-Z]{3,20})$`)

// Config holds the branding shown in the quotation banner and footer.
type Config struct {
	Company CompanyConfig `yaml:"company"`
	Bank    BankConfig    `yaml:"bank"`
	Colors  ColorsConfig  `yaml:"colors"`
	Logo    LogoConfig    `yaml:"logo"`

	// BaseDir is the directory relative logo paths are resolved against.
	BaseDir string `yaml:"-"`
}

// CompanyConfig identifies the issuing company.
type CompanyConfig struct {
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
	City    string `yaml:"city"`
	UstID   string `yaml:"ustId"` // Umsatzsteuer-Identifikationsnummer
	Email   string `yaml:"email"`
	Phone   string `yaml:"phone"`
	Website string `yaml:"website"`
}

// BankConfig holds the bank details printed in the footer.
type BankConfig struct {
	Name string `yaml:"name"`
	IBAN string `yaml:"iban"`
	BIC  string `yaml:"bic"`
}

// ColorsConfig holds the chrome stylesheet colors.
type ColorsConfig struct {
	Primary string `yaml:"primary"`
	Text    string `yaml:"text"`
}

// LogoConfig locates the banner logo.
type LogoConfig struct {
	File  string `yaml:"file"`  // Relative to the config file directory
	Width int    `yaml:"width"` // Display width in px
}

// DefaultConfig returns the built-in branding used when no file is found.
func DefaultConfig() *Config {
	return &Config{
		Company: CompanyConfig{
			Name:    "Musterfirma GmbH",
			Address: "Musterstraße 1",
			City:    "12345 Musterstadt",
			UstID:   "DE123456789",
			Email:   "info@musterfirma.de",
			Phone:   "+49 30 1234567",
			Website: "www.musterfirma.de",
		},
		Bank: BankConfig{
			Name: "Musterbank",
			IBAN: "DE00 1234 5678 9012 3456 78",
			BIC:  "MUSTDEFFXXX",
		},
		Colors: ColorsConfig{
			Primary: "#3498db",
			Text:    "#333333",
		},
		Logo: LogoConfig{Width: 150},
	}
}

// Validate checks field lengths, colors, and logo width.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"company.name", c.Company.Name, MaxNameLength},
		{"company.address", c.Company.Address, MaxAddressLength},
		{"company.city", c.Company.City, MaxAddressLength},
		{"company.ustId", c.Company.UstID, MaxTaxIDLength},
		{"company.email", c.Company.Email, MaxEmailLength},
		{"company.phone", c.Company.Phone, MaxPhoneLength},
		{"company.website", c.Company.Website, MaxURLLength},
		{"bank.name", c.Bank.Name, MaxNameLength},
		{"bank.iban", c.Bank.IBAN, MaxIBANLength},
		{"bank.bic", c.Bank.BIC, MaxBICLength},
		{"logo.file", c.Logo.File, MaxPathLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if err := validateColor("colors.primary", c.Colors.Primary); err != nil {
		return err
	}
	if err := validateColor("colors.text", c.Colors.Text); err != nil {
		return err
	}

	if c.Logo.Width < 0 || c.Logo.Width > MaxLogoWidth {
		return fmt.Errorf("%w: logo.width must be between 0 and %d, got %d", ErrInvalidWidth, MaxLogoWidth, c.Logo.Width)
	}
	return nil
}

func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateColor allows empty values; they are filled from defaults.
func validateColor(fieldName, value string) error {
	if value == "" || colorPattern.MatchString(value) {
		return nil
	}
	return fmt.Errorf("%w: %s %q (use #rgb, #rrggbb or a color name)", ErrInvalidColor, fieldName, value)
}

// LoadConfig reads the file at path and merges it over DefaultConfig.
// Missing keys keep their default value. BaseDir is set to the file's directory.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var loaded Config
	if err := yamlutil.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := loaded.Validate(); err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	cfg.merge(&loaded)
	cfg.BaseDir = filepath.Dir(path)
	return cfg, nil
}

// FindConfig returns the first of FileNames present in dir.
func FindConfig(dir string) (string, bool) {
	for _, name := range FileNames {
		p := filepath.Join(dir, name)
		if fileutil.FileExists(p) {
			return p, true
		}
	}
	return "", false
}

// merge overrides c with every non-zero value of o.
func (c *Config) merge(o *Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&c.Company.Name, o.Company.Name)
	set(&c.Company.Address, o.Company.Address)
	set(&c.Company.City, o.Company.City)
	set(&c.Company.UstID, o.Company.UstID)
	set(&c.Company.Email, o.Company.Email)
	set(&c.Company.Phone, o.Company.Phone)
	set(&c.Company.Website, o.Company.Website)
	set(&c.Bank.Name, o.Bank.Name)
	set(&c.Bank.IBAN, o.Bank.IBAN)
	set(&c.Bank.BIC, o.Bank.BIC)
	set(&c.Colors.Primary, o.Colors.Primary)
	set(&c.Colors.Text, o.Colors.Text)
	set(&c.Logo.File, o.Logo.File)
	if o.Logo.Width > 0 {
		c.Logo.Width = o.Logo.Width
	}
}
