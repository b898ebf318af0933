package templates

import (
	"embed"
	"io/fs"
)

//go:embed files
var bundledFiles embed.FS

// Bundled returns the template files shipped inside the binary.
func Bundled() fs.FS {
	sub, err := fs.Sub(bundledFiles, "files")
	if err != nil {
		panic(err)
	}
	return sub
}
