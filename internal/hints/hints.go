// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/md2pdf-angebot/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

func inCI() bool {
	return os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""
}

// ForBrowserConnect returns hints for browser launch errors of the given engine
// ("rod" or "chromedp").
func ForBrowserConnect(engine string) string {
	var hints []string

	if (inCI() || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}

	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use a local Chrome")
	}

	if engine == "chromedp" {
		hints = append(hints, "chromedp needs Chrome on PATH, or try --engine rod")
	}

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing timeout for slow renders.
func ForTimeout() string {
	return format("for large documents, use --timeout flag")
}

// ForOutputDirectory returns hints for PDF or HTML write errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForLogo returns hints for logo files that cannot be embedded.
func ForLogo() string {
	return format("logo.file must be a PNG, JPG, GIF, WebP or SVG image, relative to the config file")
}

// ForNoMatches returns hints for glob patterns that matched nothing.
func ForNoMatches() string {
	return format("quote patterns like '*.md' only when the shell should not expand them")
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
