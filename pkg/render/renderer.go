// Package render defines the renderer contract shared by the HTML and
// terminal renderers, plus the named registry generators resolve against.
package render

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/coatless-rpkg/shinytangle/pkg/document"
)

// Renderer converts a tangle document into a byte representation.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, doc document.Document, options Options) ([]byte, error)
}

// Options describe per-request data renderers can use without mutating the
// document itself.
type Options struct {
	// Values overrides initial control values keyed by control identifier.
	Values map[string]float64
	// Outputs supplies pre-rendered output text keyed by output identifier.
	// Slots without an entry render empty and are filled client-side.
	Outputs map[string]string
	// Theme carries a resolved go-theme configuration; renderers translate its
	// tokens into CSS custom properties.
	Theme *theme.RendererConfig
	// AssetBase is the URL prefix the page loads the shared runtime bundle
	// from. Empty means inline the bundle into the page.
	AssetBase string
}

// Value returns the effective initial value for a control identifier,
// preferring a per-request override.
func (o Options) Value(id string, declared float64) float64 {
	if v, ok := o.Values[id]; ok {
		return v
	}
	return declared
}
