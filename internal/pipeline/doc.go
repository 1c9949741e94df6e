// Package pipeline implements the text and HTML stages of a conversion.
//
// Stages, in the order the assembler runs them:
//   - field extraction from "**Label:** value" lines (ExtractFields)
//   - Markdown preprocessing (line endings, page breaks)
//   - Markdown to sanitized HTML via goldmark and bluemonday
//   - local image resolution to file:// URLs
//   - document wrapping, stylesheet injection and block templates
//     (quotation banner, recipient, footer)
//
// PDF generation lives in the root md2pdf package, which drives headless
// Chrome. This package never touches the browser.
package pipeline
