package pipeline

import "strings"

// StyleInjector places one stylesheet into every composed page.
// The <style> block is built once and shared by all pages.
type StyleInjector struct {
	block string
}

// NewStyleInjector prepares the <style> block for css.
// An empty css yields an injector that leaves pages untouched.
func NewStyleInjector(css string) *StyleInjector {
	if css == "" {
		return &StyleInjector{}
	}
	return &StyleInjector{block: "<style>" + escapeStyleText(css) + "</style>"}
}

// Inject returns page with the stylesheet at the end of <head>, else right
// after the opening <body> tag, else at the very start.
func (s *StyleInjector) Inject(page string) string {
	if s.block == "" {
		return page
	}
	at := styleInsertionPoint(page)
	return page[:at] + s.block + page[at:]
}

// styleInsertionPoint finds where a <style> block belongs in page.
// Tag matching ignores case, as layouts are hand-written.
func styleInsertionPoint(page string) int {
	lower := strings.ToLower(page)
	if i := strings.Index(lower, "</head>"); i >= 0 {
		return i
	}
	if i := strings.Index(lower, "<body"); i >= 0 {
		if end := strings.IndexByte(page[i:], '>'); end >= 0 {
			return i + end + 1
		}
	}
	return 0
}

// escapeStyleText keeps css from closing its <style> element early.
func escapeStyleText(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
