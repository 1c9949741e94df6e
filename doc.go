// Package md2pdf converts Markdown documents to PDF using headless Chrome,
// with an optional quotation ("Angebot") layout carrying company branding.
//
// # Quick Start
//
// Create a converter, convert markdown, and close when done:
//
//	conv, err := md2pdf.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	input, err := md2pdf.ReadInput("angebot.md")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	input.ShowHeaderFooter = true
//	result, err := conv.Convert(ctx, input)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("angebot.pdf", result.PDF, 0644)
//
// The result contains the PDF bytes (result.PDF), its page count, and the
// assembled document (result.Document, result.HTML) for debugging. Use
// Input.HTMLOnly to skip PDF generation.
//
// # Conversion Pipeline
//
//  1. Field extraction: "**Auftraggeber:** ..." style lines are removed from
//     the text and returned as Fields
//  2. Markdown preprocessing (line normalization, page breaks outside code)
//  3. Markdown to HTML via Goldmark (GFM, footnotes, ==highlight==, syntax
//     highlighting), sanitized with bluemonday
//  4. Document assembly: title, stylesheets, and in quotation mode the
//     banner, recipient block, and repeating footer
//  5. PDF rendering via headless Chrome (go-rod, or chromedp with
//     WithEngine(EngineChromedp)), verified with pdfcpu
//
// # Quotation Mode
//
// Set Input.Angebot and pass the company data as Input.Branding. Missing
// quote number, date, and validity period default to today's date
// (YYYY-MM-DD), today's date (DD.MM.YYYY), and "30 Tage".
//
//	result, err := conv.Convert(ctx, md2pdf.Input{
//	    Markdown: content,
//	    Angebot:  true,
//	    Branding: &md2pdf.Branding{CompanyName: "Acme GmbH", PrimaryColor: "#c0392b"},
//	})
//
// # Custom Assets
//
// Override the embedded stylesheets and templates with WithAssetPath:
//
//	assets/
//	├── styles/
//	│   ├── content.css
//	│   └── chrome.css
//	└── templates/
//	    ├── banner.html
//	    ├── recipient.html
//	    └── footer.html
//
// Missing files fall back to the embedded ones.
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/);
// chromedp expects Chrome on PATH.
//
// For containers and CI environments, set ROD_NO_SANDBOX=1 to disable the
// Chrome sandbox. Use ROD_BROWSER_BIN to specify a custom Chrome binary
// (both engines honor it).
package md2pdf
