package assets

// AssetLoader defines the contract for loading stylesheets and template sets.
type AssetLoader interface {
	// LoadStyle loads a stylesheet by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)

	// LoadTemplateSet loads the layout and navigation bar of a template set.
	// Returns ErrTemplateSetNotFound if the set doesn't exist and
	// ErrIncompleteTemplateSet if one of its files is missing.
	LoadTemplateSet(name string) (*TemplateSet, error)
}
