package assets

import "errors"

// AssetResolver tries a custom loader first and falls back to the embedded
// assets when the custom directory does not provide an asset.
type AssetResolver struct {
	custom   AssetLoader // nil if no custom path configured
	embedded AssetLoader
}

// NewAssetResolver creates an AssetResolver. An empty customBasePath uses
// embedded assets only; an invalid one returns ErrInvalidBasePath.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	resolver := &AssetResolver{embedded: NewEmbeddedLoader()}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}

	return resolver, nil
}

// LoadStyle loads a stylesheet, custom first.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return withFallback(r, func(l AssetLoader) (string, error) {
		return l.LoadStyle(name)
	})
}

// LoadTemplateSet loads a template set, custom first.
// An incomplete custom set is an error, not a reason to fall back.
func (r *AssetResolver) LoadTemplateSet(name string) (*TemplateSet, error) {
	return withFallback(r, func(l AssetLoader) (*TemplateSet, error) {
		return l.LoadTemplateSet(name)
	})
}

// withFallback only falls back on not-found errors; validation and I/O
// errors from the custom loader are returned as is.
func withFallback[T any](r *AssetResolver, load func(AssetLoader) (T, error)) (T, error) {
	if r.custom == nil {
		return load(r.embedded)
	}

	v, err := load(r.custom)
	if err == nil || !isNotFoundError(err) {
		return v, err
	}
	return load(r.embedded)
}

func isNotFoundError(err error) bool {
	return errors.Is(err, ErrStyleNotFound) || errors.Is(err, ErrTemplateSetNotFound)
}

// HasCustomLoader returns true if a custom asset loader is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

// Compile-time interface check.
var _ AssetLoader = (*AssetResolver)(nil)
