package assets

// TemplateSet holds the templates every page is composed from.
type TemplateSet struct {
	Name   string // Identifier (name or directory path)
	Layout string // Page layout, must contain {{ content }}
	NavBar string // Navigation bar, embedded as {{ navigationBar }}
}

// Template file names inside a template set directory.
const (
	LayoutFile = "layout.html"
	NavBarFile = "navbar.html"
)

// DefaultTemplateSetName is the name of the built-in template set.
const DefaultTemplateSetName = "default"

// DefaultStyleName is the name of the built-in stylesheet.
const DefaultStyleName = "default"
