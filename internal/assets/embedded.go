package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
)

//go:embed styles/*.css
var styles embed.FS

//go:embed templates
var templates embed.FS

// EmbeddedLoader loads assets compiled into the binary.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle loads an embedded stylesheet by name.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := styles.ReadFile("styles/" + name + ".css")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}
	return string(content), nil
}

// LoadTemplateSet loads an embedded template set by name.
func (e *EmbeddedLoader) LoadTemplateSet(name string) (*TemplateSet, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}
	return readTemplateSet(templates, path.Join("templates", name), name)
}

// TemplateSetNames lists the embedded template sets in lexical order.
func (e *EmbeddedLoader) TemplateSetNames() []string {
	entries, err := fs.ReadDir(templates, "templates")
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names
}

// readTemplateSet reads layout.html and navbar.html from dir in fsys.
func readTemplateSet(fsys fs.FS, dir, name string) (*TemplateSet, error) {
	layout, layoutErr := fs.ReadFile(fsys, path.Join(dir, LayoutFile))
	navbar, navErr := fs.ReadFile(fsys, path.Join(dir, NavBarFile))

	layoutMissing := errors.Is(layoutErr, fs.ErrNotExist)
	navMissing := errors.Is(navErr, fs.ErrNotExist)

	switch {
	case layoutMissing && navMissing:
		return nil, fmt.Errorf("%w: %q", ErrTemplateSetNotFound, name)
	case layoutErr != nil && !layoutMissing:
		return nil, fmt.Errorf("%w: reading %s: %v", ErrAssetRead, LayoutFile, layoutErr)
	case navErr != nil && !navMissing:
		return nil, fmt.Errorf("%w: reading %s: %v", ErrAssetRead, NavBarFile, navErr)
	case layoutMissing:
		return nil, fmt.Errorf("%w: %q missing %s", ErrIncompleteTemplateSet, name, LayoutFile)
	case navMissing:
		return nil, fmt.Errorf("%w: %q missing %s", ErrIncompleteTemplateSet, name, NavBarFile)
	}

	return &TemplateSet{
		Name:   name,
		Layout: string(layout),
		NavBar: string(navbar),
	}, nil
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
