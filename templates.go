package shinytangle

import (
	"io/fs"

	htmlrenderer "github.com/coatless-rpkg/shinytangle/pkg/renderers/html"
)

// EmbeddedTemplates exposes the built-in html renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return htmlrenderer.TemplatesFS()
}
