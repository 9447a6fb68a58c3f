// Package assets provides the page templates and stylesheets of generated sites.
// Assets can be loaded from embedded files or a custom directory.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from the go:embed filesystem
//	    ├── FilesystemLoader  - loads from a directory on disk
//	    └── AssetResolver     - custom first, embedded as fallback
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css           # Site stylesheet
//	└── templates/
//	    └── {name}/
//	        ├── layout.html      # Page layout with {{ content }}
//	        └── navbar.html      # Navigation bar fragment
//
// # Security
//
// Asset names are validated to prevent path traversal. FilesystemLoader
// resolves symlinks and verifies paths stay within basePath.
package assets
