package assets

import (
	"embed"
	"io/fs"
)

//go:embed styles templates
var builtin embed.FS

// EmbeddedLoader serves the assets compiled into the binary.
type EmbeddedLoader struct {
	fsys fs.FS
}

func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{fsys: builtin}
}

func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	return readAsset(e.fsys, styleKind, name)
}

func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	return readAsset(e.fsys, templateKind, name)
}

var _ AssetLoader = (*EmbeddedLoader)(nil)
