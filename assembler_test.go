package md2pdf

// Notes:
// - Assembly is exercised end to end with the embedded assets; no browser.
// - Now is fixed so quotation defaults are deterministic.

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var testNow = time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)

const quoteMarkdown = `**Auftraggeber:** Beispiel AG
**Adresse:** Hafenweg 7, 20095 Hamburg
**Angebotssteller:** Erika Muster
**Angebotsnummer:** 2024-017

# Website-Relaunch

Wir bieten an:

| Position | Preis |
|----------|-------|
| Design   | 1.200 € |
`

func newTestAssembler(t *testing.T) *Assembler {
	t.Helper()
	a, err := NewAssembler("")
	if err != nil {
		t.Fatalf("NewAssembler() error = %v", err)
	}
	return a
}

func assertContains(t *testing.T, label, got string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(got, w) {
			t.Errorf("%s missing %q", label, w)
		}
	}
}

func assertNotContains(t *testing.T, label, got string, notWant ...string) {
	t.Helper()
	for _, w := range notWant {
		if strings.Contains(got, w) {
			t.Errorf("%s should not contain %q", label, w)
		}
	}
}

// ---------------------------------------------------------------------------
// TestAssembler_Assemble - normal mode
// ---------------------------------------------------------------------------

func TestAssembler_Assemble_Normal(t *testing.T) {
	t.Parallel()

	a := newTestAssembler(t)

	doc, err := a.Assemble(context.Background(), Input{
		Markdown:         "# Bericht\n\nHallo ==Welt==.",
		Name:             "bericht",
		ShowHeaderFooter: true,
		Now:              testNow,
	})
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	if doc.Title != "Bericht" {
		t.Errorf("Title = %q, want %q", doc.Title, "Bericht")
	}
	assertContains(t, "HTML", doc.HTML,
		"<!DOCTYPE html>",
		`<html lang="de">`,
		"<title>Bericht</title>",
		"<style>",
		"@import",
		".chroma",
		"<mark>Welt</mark>",
	)
	assertNotContains(t, "HTML", doc.HTML, "angebot-banner\">", "Angebotsnummer")
	if doc.BannerHTML != "" || doc.RecipientHTML != "" {
		t.Error("normal mode should not render quotation blocks")
	}
	assertContains(t, "HeaderHTML", doc.HeaderHTML, "Bericht")
	assertContains(t, "FooterHTML", doc.FooterHTML, "Seite", "pageNumber", "totalPages")
}

// Notes:
// - code spans and fenced blocks are taken literally: no <mark> from "==",
//   no page break from a "\newpage" line inside a fence
func TestAssembler_Assemble_CodeIsVerbatim(t *testing.T) {
	t.Parallel()

	a := newTestAssembler(t)

	doc, err := a.Assemble(context.Background(), Input{
		Markdown: "# Code\n\nUse `x == 1 and y == 2` here.\n\n" +
			"```python\nif x == 1 and y == 2:\n    pass\n```\n\n" +
			"```latex\n\\newpage\n```\n",
		Now: testNow,
	})
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	assertContains(t, "BodyHTML", doc.BodyHTML, "<code>x == 1 and y == 2</code>", "newpage")
	assertNotContains(t, "BodyHTML", doc.BodyHTML, "<mark>", `class="page-break"`)
}

func TestAssembler_Assemble_NoHeaderFooter(t *testing.T) {
	t.Parallel()

	doc, err := newTestAssembler(t).Assemble(context.Background(), Input{
		Markdown: "Text",
		Name:     "notiz",
	})
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if doc.HeaderHTML != "" || doc.FooterHTML != "" {
		t.Errorf("header/footer should be empty, got %q / %q", doc.HeaderHTML, doc.FooterHTML)
	}
}

func TestAssembler_Assemble_Title(t *testing.T) {
	t.Parallel()

	a := newTestAssembler(t)

	tests := []struct {
		name     string
		markdown string
		fallback string
		want     string
	}{
		{"first h1", "Intro\n\n# Titel\n\n# Zweiter", "datei", "Titel"},
		{"fallback to file name", "## Nur H2\n\nText", "angebot-2024", "angebot-2024"},
		{"title escaped", "# A <b> & C", "x", "A <b> & C"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, err := a.Assemble(context.Background(), Input{Markdown: tt.markdown, Name: tt.fallback})
			if err != nil {
				t.Fatalf("Assemble() error = %v", err)
			}
			if doc.Title != tt.want {
				t.Errorf("Title = %q, want %q", doc.Title, tt.want)
			}
			assertNotContains(t, "HTML", doc.HTML, "<title>A <b>")
		})
	}
}

func TestAssembler_Assemble_FieldsRemovedInNormalMode(t *testing.T) {
	t.Parallel()

	doc, err := newTestAssembler(t).Assemble(context.Background(), Input{
		Markdown: quoteMarkdown,
		Name:     "angebot",
	})
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if doc.Fields.Client != "Beispiel AG" {
		t.Errorf("Fields.Client = %q", doc.Fields.Client)
	}
	assertNotContains(t, "BodyHTML", doc.BodyHTML, "Auftraggeber", "Hafenweg")
	// No defaults outside quotation mode.
	if doc.Fields.Date != "" || doc.Fields.ValidityPeriod != "" {
		t.Errorf("normal mode should not stamp defaults: %+v", doc.Fields)
	}
}

// ---------------------------------------------------------------------------
// TestAssembler_Assemble - quotation mode
// ---------------------------------------------------------------------------

func TestAssembler_Assemble_Angebot(t *testing.T) {
	t.Parallel()

	branding := DefaultBranding()
	branding.CompanyName = "Acme & Söhne GmbH"
	branding.PrimaryColor = "#c0392b"
	branding.Logo = "data:image/png;base64,iVBORw0KGgo="
	branding.LogoWidth = 120

	doc, err := newTestAssembler(t).Assemble(context.Background(), Input{
		Markdown: quoteMarkdown,
		Name:     "angebot",
		Angebot:  true,
		Branding: &branding,
		Now:      testNow,
	})
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	if doc.Title != "Website-Relaunch" {
		t.Errorf("Title = %q", doc.Title)
	}

	assertContains(t, "BannerHTML", doc.BannerHTML,
		"Acme &amp; Söhne GmbH",
		`src="data:image/png;base64,iVBORw0KGgo="`,
		`width="120"`,
		"2024-017",
		"05.03.2024",
		"30 Tage",
		"Erika Muster",
	)
	assertContains(t, "RecipientHTML", doc.RecipientHTML, "Beispiel AG", "Hafenweg 7, 20095 Hamburg")
	assertContains(t, "FooterHTML", doc.FooterHTML,
		"<style>", "#c0392b", "Musterbank", "IBAN", "pageNumber", "totalPages",
	)
	assertNotContains(t, "FooterHTML", doc.FooterHTML, "{{primary}}")
	if doc.HeaderHTML == "" {
		t.Error("HeaderHTML should suppress Chrome's default header")
	}

	// Banner, then recipient, then content.
	banner := strings.Index(doc.HTML, `class="angebot-banner"`)
	recipient := strings.Index(doc.HTML, `class="angebot-recipient"`)
	content := strings.Index(doc.HTML, "<h1")
	if banner == -1 || recipient == -1 || content == -1 || !(banner < recipient && recipient < content) {
		t.Errorf("order banner=%d recipient=%d content=%d", banner, recipient, content)
	}
	assertContains(t, "HTML", doc.HTML, ".angebot-banner", "#c0392b")
	assertNotContains(t, "HTML", doc.HTML, "**Auftraggeber:**", "{{text}}")
}

func TestAssembler_Assemble_AngebotDefaults(t *testing.T) {
	t.Parallel()

	doc, err := newTestAssembler(t).Assemble(context.Background(), Input{
		Markdown: "# Angebot\n\nText",
		Name:     "a",
		Angebot:  true,
		Now:      testNow,
	})
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	want := Fields{QuoteNumber: "2024-03-05", Date: "05.03.2024", ValidityPeriod: "30 Tage"}
	if doc.Fields != want {
		t.Errorf("Fields = %+v, want %+v", doc.Fields, want)
	}
	if doc.RecipientHTML != "" {
		t.Errorf("RecipientHTML should be empty without client/address, got %q", doc.RecipientHTML)
	}
	assertNotContains(t, "BannerHTML", doc.BannerHTML, "<img", "Angebotssteller")
	assertContains(t, "BannerHTML", doc.BannerHTML, "Musterfirma GmbH")
}

func TestAssembler_Assemble_AngebotEmptyColorsUseDefaults(t *testing.T) {
	t.Parallel()

	doc, err := newTestAssembler(t).Assemble(context.Background(), Input{
		Markdown: "Text",
		Angebot:  true,
		Branding: &Branding{CompanyName: "X"},
		Now:      testNow,
	})
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	assertContains(t, "HTML", doc.HTML, "#3498db", "#333333")
}

func TestAssembler_Assemble_IsPure(t *testing.T) {
	t.Parallel()

	a := newTestAssembler(t)
	in := Input{Markdown: quoteMarkdown, Name: "a", Angebot: true, Now: testNow}

	first, err := a.Assemble(context.Background(), in)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if _, err := a.Assemble(context.Background(), Input{Markdown: "# Anderes", Angebot: true, Now: testNow}); err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	again, err := a.Assemble(context.Background(), in)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if first.HTML != again.HTML || first.FooterHTML != again.FooterHTML {
		t.Error("same input should produce identical documents")
	}
}

func TestAssembler_Assemble_Sanitizes(t *testing.T) {
	t.Parallel()

	doc, err := newTestAssembler(t).Assemble(context.Background(), Input{
		Markdown: "**Auftraggeber:** <script>alert(1)</script>\n\n# T\n\n<script>alert(2)</script>\n\n<div class=\"page-break\"></div>",
		Angebot:  true,
		Now:      testNow,
	})
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	assertNotContains(t, "HTML", doc.HTML, "<script>")
	assertContains(t, "HTML", doc.HTML, "&lt;script&gt;alert(1)", `<div class="page-break">`)
}

func TestAssembler_Assemble_LocalImages(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bild.png"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	doc, err := newTestAssembler(t).Assemble(context.Background(), Input{
		Markdown:  "![Bild](bild.png)",
		SourceDir: dir,
	})
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	assertContains(t, "BodyHTML", doc.BodyHTML, `src="file://`, "bild.png")
}

func TestAssembler_Assemble_Errors(t *testing.T) {
	t.Parallel()

	a := newTestAssembler(t)

	t.Run("empty markdown", func(t *testing.T) {
		t.Parallel()

		_, err := a.Assemble(context.Background(), Input{Markdown: "  \n\t"})
		if !errors.Is(err, ErrEmptyMarkdown) {
			t.Errorf("error = %v, want ErrEmptyMarkdown", err)
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := a.Assemble(ctx, Input{Markdown: "# x"})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
	})
}

func TestNewAssembler_AssetPath(t *testing.T) {
	t.Parallel()

	t.Run("custom content style overrides embedded", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		if err := os.MkdirAll(filepath.Join(dir, "styles"), 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, "styles", "content.css"), []byte("body{color:teal}"), 0o600); err != nil {
			t.Fatal(err)
		}

		a, err := NewAssembler(dir)
		if err != nil {
			t.Fatalf("NewAssembler() error = %v", err)
		}
		doc, err := a.Assemble(context.Background(), Input{Markdown: "x", Angebot: true, Now: testNow})
		if err != nil {
			t.Fatalf("Assemble() error = %v", err)
		}
		assertContains(t, "HTML", doc.HTML, "body{color:teal}", ".angebot-banner")
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		_, err := NewAssembler(filepath.Join(t.TempDir(), "missing"))
		if !errors.Is(err, ErrInvalidAssetPath) {
			t.Errorf("error = %v, want ErrInvalidAssetPath", err)
		}
	})
}

func TestWithQuoteDefaults_KeepsExtracted(t *testing.T) {
	t.Parallel()

	in := Fields{QuoteNumber: "Q-1", Date: "1. April", ValidityPeriod: "14 Tage"}
	got, err := withQuoteDefaults(in, testNow)
	if err != nil {
		t.Fatalf("withQuoteDefaults() error = %v", err)
	}
	if got != in {
		t.Errorf("got %+v, want %+v", got, in)
	}
}
