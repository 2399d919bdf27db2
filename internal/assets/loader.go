package assets

// AssetLoader defines the contract for loading page styles and templates.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// LoadTemplateSet loads the page templates of a named set.
	// Returns ErrTemplateSetNotFound if no template of the set exists,
	// ErrIncompleteTemplateSet if only some of them exist.
	LoadTemplateSet(name string) (*TemplateSet, error)
}
