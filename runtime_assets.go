package shinytangle

import (
	"io/fs"

	htmlrenderer "github.com/coatless-rpkg/shinytangle/pkg/renderers/html"
)

// RuntimeAssetsFS exposes the browser runtime (stylesheet plus drag handler
// script) so Go applications can serve the assets instead of inlining them.
//
// Typical mount:
//
//	mux.Handle("/runtime/",
//	  http.StripPrefix("/runtime/",
//	    http.FileServerFS(shinytangle.RuntimeAssetsFS()),
//	  ),
//	)
func RuntimeAssetsFS() fs.FS {
	return htmlrenderer.AssetsFS()
}
