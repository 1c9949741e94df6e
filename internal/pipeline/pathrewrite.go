package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ResolveLocalImages rewrites relative img[src] values in an HTML fragment to
// absolute file:// URLs under sourceDir, so Chrome can load images that sit
// next to the Markdown file. An empty sourceDir leaves the fragment unchanged.
//
// URLs, data URIs, anchors and absolute paths are left alone, as are paths
// that escape sourceDir.
func ResolveLocalImages(fragment, sourceDir string) (string, error) {
	if sourceDir == "" || !strings.Contains(fragment, "<img") {
		return fragment, nil
	}

	absDir, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", err
	}

	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	for _, n := range nodes {
		walkImages(n, func(img *html.Node) { resolveSrc(img, absDir) })
		if err := html.Render(&buf, n); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func walkImages(n *html.Node, fn func(*html.Node)) {
	if n.Type == html.ElementNode && n.DataAtom == atom.Img {
		fn(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkImages(c, fn)
	}
}

func resolveSrc(img *html.Node, dir string) {
	for i, attr := range img.Attr {
		if attr.Key != "src" || !isLocalRelative(attr.Val) {
			continue
		}
		// Markdown image paths may be percent-encoded ("my%20logo.png").
		p, err := url.PathUnescape(attr.Val)
		if err != nil {
			p = attr.Val
		}
		abs := filepath.Join(dir, filepath.FromSlash(p))
		if !withinDir(abs, dir) {
			continue
		}
		img.Attr[i].Val = fileURL(abs)
	}
}

func isLocalRelative(p string) bool {
	if p == "" || strings.HasPrefix(p, "#") || strings.HasPrefix(p, "//") {
		return false
	}
	if u, err := url.Parse(p); err == nil && u.Scheme != "" {
		// "C:" parses as a scheme on Windows paths; IsAbs below catches it.
		if len(u.Scheme) > 1 {
			return false
		}
	}
	return !filepath.IsAbs(p) && !strings.HasPrefix(p, "/")
}

func withinDir(abs, dir string) bool {
	rel, err := filepath.Rel(dir, abs)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func fileURL(abs string) string {
	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}
