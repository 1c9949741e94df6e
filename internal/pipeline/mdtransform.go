package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// PageBreakHTML is emitted for a page break marker line.
const PageBreakHTML = `<div class="page-break"></div>`

var (
	crlfOrCR           = regexp.MustCompile(`\r\n?`)
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
	fenceOpener        = regexp.MustCompile("^ {0,3}(`{3,}|~{3,})(.*)$")

	// A line holding only \pagebreak or \newpage (LaTeX habit) or <!-- pagebreak -->.
	// Four spaces of indentation make it indented code, so those lines are left alone.
	pageBreakPattern = regexp.MustCompile(`(?m)^ {0,3}(?:\\pagebreak|\\newpage|<!--\s*pagebreak\s*-->)[ \t]*$`)
)

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// CommonMarkPreprocessor normalizes markdown before conversion.
type CommonMarkPreprocessor struct{}

// PreprocessMarkdown normalizes line endings, replaces page break markers and
// compresses blank lines. Fenced code blocks are passed through verbatim.
// ==text== highlighting is handled by goldmark (see MarkExtension).
func (p *CommonMarkPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}

	content = normalizeLineEndings(content)
	return outsideFences(content, func(prose string) string {
		return compressBlankLines(convertPageBreaks(prose))
	})
}

func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// compressBlankLines limits consecutive blank lines to one.
func compressBlankLines(content string) string {
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}

// convertPageBreaks surrounds the break with blank lines so goldmark treats
// it as an HTML block.
func convertPageBreaks(content string) string {
	return pageBreakPattern.ReplaceAllLiteralString(content, "\n"+PageBreakHTML+"\n")
}

// outsideFences applies fn to every stretch of content outside fenced code
// blocks. Fence lines and their bodies are copied unchanged. An unclosed
// fence runs to the end of the document.
func outsideFences(content string, fn func(string) string) string {
	lines := strings.SplitAfter(content, "\n")

	var out, prose strings.Builder
	flush := func() {
		if prose.Len() > 0 {
			out.WriteString(fn(prose.String()))
			prose.Reset()
		}
	}

	var fence string
	for _, line := range lines {
		if fence == "" {
			if f, ok := openingFence(line); ok {
				flush()
				fence = f
				out.WriteString(line)
				continue
			}
			prose.WriteString(line)
			continue
		}
		out.WriteString(line)
		if closesFence(line, fence) {
			fence = ""
		}
	}
	flush()
	return out.String()
}

// openingFence reports the fence marker a line opens with, if any.
func openingFence(line string) (string, bool) {
	m := fenceOpener.FindStringSubmatch(strings.TrimRight(line, "\n"))
	if m == nil {
		return "", false
	}
	// Backtick info strings may not contain backticks.
	if m[1][0] == '`' && strings.Contains(m[2], "`") {
		return "", false
	}
	return m[1], true
}

// closesFence reports whether line closes a block opened with fence: the same
// character, at least as long, indented at most three spaces, nothing after.
func closesFence(line, fence string) bool {
	s := strings.TrimRight(line, "\n")
	indent := len(s) - len(strings.TrimLeft(s, " "))
	if indent > 3 {
		return false
	}
	s = strings.TrimRight(s[indent:], " \t")
	if len(s) < len(fence) {
		return false
	}
	return strings.Trim(s, fence[:1]) == ""
}
