package uischema

import (
	"embed"
	"fmt"
	"io/fs"
)

// DefaultDocument names the bundled PSUR presentation document.
const DefaultDocument = "psur.yaml"

//go:embed presentation/*.yaml
var embeddedPresentation embed.FS

// EmbeddedFS returns the bundled presentation documents. Callers may pass
// this filesystem to LoadFS.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedPresentation, "presentation")
	if err != nil {
		panic(fmt.Sprintf("uischema: bundled presentation directory: %v", err))
	}
	return sub
}
