package assets

// defaultLoader serves the package-level helpers from embedded assets.
var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads an embedded stylesheet by name (without .css).
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// LoadTemplateSet loads an embedded template set by name.
func LoadTemplateSet(name string) (*TemplateSet, error) {
	return defaultLoader.LoadTemplateSet(name)
}
