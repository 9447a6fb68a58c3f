package mdsite

import (
	"errors"

	"github.com/alnah/go-mdsite/internal/assets"
)

// Asset name constants for built-in styles and templates.
const (
	// DefaultStyle is the name of the built-in site stylesheet.
	DefaultStyle = assets.DefaultStyleName

	// DefaultTemplateSet is the name of the built-in template set.
	DefaultTemplateSet = assets.DefaultTemplateSetName
)

// AssetLoader defines the contract for loading site styles and page templates.
//
// NewAssetLoader provides filesystem-based loading with fallback to the
// embedded defaults. Implement this interface for other backends.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)

	// LoadTemplateSet loads the layout and navigation bar templates by name.
	// Returns ErrTemplateSetNotFound if the template set doesn't exist.
	// Returns ErrIncompleteTemplateSet if one of the templates is missing.
	LoadTemplateSet(name string) (*TemplateSet, error)
}

// TemplateSet holds the page layout and the navigation bar embedded in it.
// Both use {{ key }} placeholders; the layout also receives {{ content }} and
// {{ navigationBar }}.
type TemplateSet struct {
	Name   string // Identifier (name or path)
	Layout string // Page layout HTML
	NavBar string // Navigation bar HTML, may be empty
}

// NewTemplateSet creates a TemplateSet from layout and navigation bar HTML.
func NewTemplateSet(name, layout, navBar string) *TemplateSet {
	return &TemplateSet{Name: name, Layout: layout, NavBar: navBar}
}

// NewAssetLoader creates an AssetLoader for the given base path.
// If basePath is empty, returns a loader using only embedded assets.
// If basePath is set, custom assets take precedence with fallback to embedded.
//
// The basePath directory should contain:
//   - styles/{name}.css for site styles
//   - templates/{name}/layout.html and navbar.html for template sets
//
// Returns ErrInvalidAssetPath if basePath is set but not a readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &assetLoaderAdapter{resolver: resolver}, nil
}

// assetLoaderAdapter wraps the internal AssetResolver to return public types.
type assetLoaderAdapter struct {
	resolver *assets.AssetResolver
}

func (a *assetLoaderAdapter) LoadStyle(name string) (string, error) {
	content, err := a.resolver.LoadStyle(name)
	if err != nil {
		return "", convertAssetError(err)
	}
	return content, nil
}

func (a *assetLoaderAdapter) LoadTemplateSet(name string) (*TemplateSet, error) {
	ts, err := a.resolver.LoadTemplateSet(name)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return NewTemplateSet(ts.Name, ts.Layout, ts.NavBar), nil
}

// convertAssetError maps internal asset errors to public errors.
func convertAssetError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, assets.ErrStyleNotFound):
		return wrapError(ErrStyleNotFound, err)
	case errors.Is(err, assets.ErrTemplateSetNotFound):
		return wrapError(ErrTemplateSetNotFound, err)
	case errors.Is(err, assets.ErrIncompleteTemplateSet):
		return wrapError(ErrIncompleteTemplateSet, err)
	case errors.Is(err, assets.ErrInvalidBasePath),
		errors.Is(err, assets.ErrPathTraversal):
		return wrapError(ErrInvalidAssetPath, err)
	case errors.Is(err, assets.ErrInvalidAssetName):
		return wrapError(ErrTemplateSetNotFound, err) // invalid name means not found
	default:
		return err
	}
}

// wrapError keeps the original message and matches the public sentinel
// with errors.Is.
func wrapError(sentinel, original error) error {
	return &wrappedAssetError{sentinel: sentinel, original: original}
}

type wrappedAssetError struct {
	sentinel error
	original error
}

func (e *wrappedAssetError) Error() string {
	return e.original.Error()
}

// Unwrap returns the public sentinel; internal errors stay unexported.
func (e *wrappedAssetError) Unwrap() error {
	return e.sentinel
}

// Compile-time interface check.
var _ AssetLoader = (*assetLoaderAdapter)(nil)
