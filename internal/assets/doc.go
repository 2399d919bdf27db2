// Package assets provides the HTML page templates and CSS styles used to
// assemble the site.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in templates and styles (go:embed)
//	    ├── FilesystemLoader  - templates and styles from a directory on disk
//	    └── AssetResolver     - custom directory first, embedded fallback
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css            # page stylesheet
//	└── templates/
//	    └── {name}/
//	        ├── layout.html       # shared head, header, navigation, viewer
//	        ├── hub.html          # hub page (combined download + two documents)
//	        └── collection.html   # collection page (one section per PDF)
//
// Templates are parsed with html/template by the caller, so every value
// they print is escaped for its context.
//
// # Security
//
// Asset names are validated to prevent path traversal. FilesystemLoader
// resolves symlinks and verifies paths stay within basePath.
package assets
