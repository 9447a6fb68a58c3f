package layout

// Page pairs a layout with the navigation bar it embeds.
type Page struct {
	Layout *Template
	NavBar *Template // nil for no navigation bar
}

// Compose renders a full page. The navigation bar is rendered with the same
// metadata and embedded in every page except the site root.
func (p *Page) Compose(content string, meta map[string]string, isRoot bool) string {
	nav := ""
	if p.NavBar != nil && !isRoot {
		nav = p.NavBar.Execute(Data{Metadata: meta})
	}
	return p.Layout.Execute(Data{
		Content:       content,
		NavigationBar: nav,
		Metadata:      meta,
	})
}

// Missing lists metadata keys referenced by the layout or navigation bar
// that have no value, without duplicates.
func (p *Page) Missing(meta map[string]string, isRoot bool) []string {
	missing := p.Layout.Missing(meta)
	if p.NavBar == nil || isRoot {
		return missing
	}
	seen := make(map[string]bool, len(missing))
	for _, k := range missing {
		seen[k] = true
	}
	for _, k := range p.NavBar.Missing(meta) {
		if !seen[k] {
			missing = append(missing, k)
		}
	}
	return missing
}
