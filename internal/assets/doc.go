// Package assets provides the stylesheets and HTML templates used to assemble
// documents.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in assets)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver tries the custom directory first and falls back to the
// embedded asset when a file is missing, so a custom directory may override
// a single template.
//
// # Directory Structure
//
//	{dir}/
//	├── styles/
//	│   ├── content.css      # Document typography
//	│   └── chrome.css       # Banner, recipient block, footer
//	└── templates/
//	    ├── banner.html      # First-page quotation banner
//	    ├── recipient.html   # Client / address block
//	    └── footer.html      # Repeating quotation footer
//
// # Security
//
// Asset names must be plain stems ([A-Za-z0-9_-]+). FilesystemLoader reads
// through os.Root, so a symlink pointing outside the directory fails with
// ErrAssetRead instead of being followed.
package assets
