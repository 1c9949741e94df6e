package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2pdf [options] <file-or-glob> [<file-or-glob> ...]")
	fmt.Fprintln(w, "       md2pdf [options] <file.md> <output.pdf>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert Markdown files to PDF.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Mode:")
	fmt.Fprintln(w, "      --angebot             Quotation layout: banner, recipient, branded footer")
	fmt.Fprintln(w, "      --no-open             Do not open the PDF afterwards")
	fmt.Fprintln(w, "      --save-html           Write md2pdf-debug.html instead of a PDF")
	fmt.Fprintln(w, "      --no-header           Disable title header and page numbers")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output PDF (single input only)")
	fmt.Fprintln(w, "  -c, --config <path>       Branding config (default: angebot.yaml next to the binary)")
	fmt.Fprintln(w, "  -t, --timeout <dur>       Render timeout per file (default 60s)")
	fmt.Fprintln(w, "      --engine <name>       Browser driver: rod (default), chromedp")
	fmt.Fprintln(w, "      --asset-path <dir>    Override styles/ and templates/")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug output and timing")
	fmt.Fprintln(w, "      --version             Show version")
	fmt.Fprintln(w, "  -h, --help                Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Quotation fields (lines removed from the text):")
	fmt.Fprintln(w, "  **Auftraggeber:** ...     **Adresse:** ...           **Angebotssteller:** ...")
	fmt.Fprintln(w, "  **Datum:** ...            **Gültigkeitsdauer:** ...  **Angebotsnummer:** ...")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  md2pdf notes.md")
	fmt.Fprintln(w, "  md2pdf --angebot angebot.md")
	fmt.Fprintln(w, "  md2pdf --no-open 'docs/*.md'")
}
