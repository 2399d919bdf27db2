package assets

// Template file names inside a template set directory.
const (
	LayoutTemplateFile     = "layout.html"
	HubTemplateFile        = "hub.html"
	CollectionTemplateFile = "collection.html"
)

// TemplateSet holds the HTML templates for one site look.
// Layout defines the blocks shared by both pages; Hub and Collection are
// the page bodies that use them.
type TemplateSet struct {
	Name       string // Identifier (name or directory path)
	Layout     string
	Hub        string
	Collection string
}

// templateFiles lists the files a complete set must provide, in a stable order.
func templateFiles() []string {
	return []string{LayoutTemplateFile, HubTemplateFile, CollectionTemplateFile}
}

// newTemplateSet builds a TemplateSet from file contents keyed by file name.
func newTemplateSet(name string, files map[string]string) *TemplateSet {
	return &TemplateSet{
		Name:       name,
		Layout:     files[LayoutTemplateFile],
		Hub:        files[HubTemplateFile],
		Collection: files[CollectionTemplateFile],
	}
}

// DefaultTemplateSetName is the name of the built-in template set.
const DefaultTemplateSetName = "default"

// DefaultStyleName is the name of the built-in CSS style.
const DefaultStyleName = "default"
