package pipeline

import (
	"net/url"
	"path"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RewriteMarkdownLinks points relative links to sibling markdown documents at
// the pages generated from them: a[href] values ending in .md or .markdown,
// optionally followed by a query or fragment, get an .html extension.
//
// Left untouched:
//   - absolute URLs, protocol-relative URLs and anchors
//   - links to any other file type
//   - img, video, audio and source elements
func RewriteMarkdownLinks(fragment string) (string, error) {
	if !strings.Contains(fragment, ".md") && !strings.Contains(fragment, ".markdown") {
		return fragment, nil
	}

	doc, isFragment, err := parseHTML(fragment)
	if err != nil {
		return "", err
	}

	if !rewriteLinks(doc) {
		return fragment, nil
	}

	return renderHTML(doc, isFragment)
}

// parseHTML parses HTML content, handling both full documents and fragments.
// Returns the parsed node and whether it was a fragment.
func parseHTML(content string) (*html.Node, bool, error) {
	trimmed := strings.ToLower(strings.TrimSpace(content))

	if strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	// Fragment: parse with body context to avoid wrapping
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, true, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, true, nil
}

// renderHTML renders the tree back to a string. Fragments render their
// children only so no <html><body> wrapper is added.
func renderHTML(doc *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder

	if isFragment {
		for c := doc.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&buf, c); err != nil {
				return "", err
			}
		}
		return buf.String(), nil
	}

	if err := html.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// rewriteLinks walks the tree and reports whether any href changed.
func rewriteLinks(n *html.Node) bool {
	changed := false
	if n.Type == html.ElementNode && n.DataAtom == atom.A {
		for i, attr := range n.Attr {
			if attr.Key != "href" {
				continue
			}
			if v, ok := markdownToHTMLHref(attr.Val); ok {
				n.Attr[i].Val = v
				changed = true
			}
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if rewriteLinks(c) {
			changed = true
		}
	}
	return changed
}

// markdownToHTMLHref returns href with its markdown extension replaced,
// or false when href is not a relative link to a markdown document.
func markdownToHTMLHref(href string) (string, bool) {
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "//") {
		return "", false
	}

	u, err := url.Parse(href)
	if err != nil || u.Scheme != "" || u.Host != "" || u.Path == "" {
		return "", false
	}
	if strings.HasPrefix(u.Path, "/") {
		return "", false
	}

	ext := path.Ext(u.Path)
	switch strings.ToLower(ext) {
	case ".md", ".markdown":
	default:
		return "", false
	}

	// Swap the extension in the raw text so escaping of the rest is preserved.
	end := len(href)
	if i := strings.IndexAny(href, "?#"); i >= 0 {
		end = i
	}
	rawPath := href[:end]
	if !strings.HasSuffix(strings.ToLower(rawPath), strings.ToLower(ext)) {
		return "", false
	}
	return rawPath[:len(rawPath)-len(ext)] + ".html" + href[end:], true
}
