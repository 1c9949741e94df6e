package pipeline

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

var documentTemplate = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html lang="de">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
</head>
<body>
{{.Body}}
</body>
</html>
`))

// BuildDocument wraps an already sanitized body fragment into a complete
// HTML5 document. The title is escaped; the body is inserted as is.
func BuildDocument(title, body string) (string, error) {
	var buf bytes.Buffer
	err := documentTemplate.Execute(&buf, struct {
		Title string
		Body  template.HTML
	}{
		Title: title,
		Body:  template.HTML(body), // #nosec G203 -- sanitized by GoldmarkConverter
	})
	if err != nil {
		return "", fmt.Errorf("%w: document: %v", ErrTemplateRender, err)
	}
	return buf.String(), nil
}

// pageChromeStyle is inlined because Chrome renders header and footer
// templates in isolation from the page stylesheets.
const pageChromeStyle = "width:100%;font-size:10px;color:#666;font-family:Helvetica,Arial,sans-serif;text-align:center;"

var (
	pageHeaderTemplate = template.Must(template.New("header").Parse(
		`<div style="` + pageChromeStyle + `"><span>{{.}}</span></div>`))

	pageFooterHTML = `<div style="` + pageChromeStyle + `">Seite <span class="pageNumber"></span> von <span class="totalPages"></span></div>`
)

// PageHeader returns Chrome's running header showing the escaped title.
func PageHeader(title string) string {
	var b strings.Builder
	// Executing a constant template with a string cannot fail.
	_ = pageHeaderTemplate.Execute(&b, title)
	return b.String()
}

// PageFooter returns Chrome's running page counter.
func PageFooter() string {
	return pageFooterHTML
}

// EmptyPageHeader suppresses Chrome's default header (date and title).
const EmptyPageHeader = "<span></span>"
