package html

import (
	"html"
	"sort"
	"strings"
)

// bundleTangle is the shared styling/behaviour bundle every control depends
// on. Declaring N controls on one page must include it exactly once.
const bundleTangle = "tangle"

// assetRegistry tracks which asset bundles a page render has already included.
// It is scoped to one render, not process-wide, so concurrent renders keep
// independent inclusion state.
type assetRegistry struct {
	included map[string]struct{}
}

func newAssetRegistry() *assetRegistry {
	return &assetRegistry{included: make(map[string]struct{})}
}

// include records a bundle requirement and reports whether this was the first
// time the bundle was requested for the page.
func (r *assetRegistry) include(bundle string) bool {
	if _, seen := r.included[bundle]; seen {
		return false
	}
	r.included[bundle] = struct{}{}
	return true
}

// bundles returns the included bundle identifiers, sorted.
func (r *assetRegistry) bundles() []string {
	names := make([]string, 0, len(r.included))
	for name := range r.included {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// headMarkup emits stylesheet markup for the included bundles. With an asset
// base the page links the shared file; otherwise the stylesheet is inlined.
func (r *assetRegistry) headMarkup(assetBase string) string {
	var b strings.Builder
	for _, bundle := range r.bundles() {
		if bundle != bundleTangle {
			continue
		}
		if assetBase != "" {
			b.WriteString(`<link rel="stylesheet" href="`)
			b.WriteString(html.EscapeString(joinAssetPath(assetBase, StylesheetName)))
			b.WriteString("\">\n")
			continue
		}
		if css := assetContents(StylesheetName); css != "" {
			b.WriteString("<style>\n")
			b.WriteString(css)
			b.WriteString("</style>\n")
		}
	}
	return b.String()
}

// scriptMarkup emits script markup for the included bundles.
func (r *assetRegistry) scriptMarkup(assetBase string) string {
	var b strings.Builder
	for _, bundle := range r.bundles() {
		if bundle != bundleTangle {
			continue
		}
		if assetBase != "" {
			b.WriteString(`<script src="`)
			b.WriteString(html.EscapeString(joinAssetPath(assetBase, RuntimeScriptName)))
			b.WriteString("\" defer></script>\n")
			continue
		}
		if js := assetContents(RuntimeScriptName); js != "" {
			b.WriteString("<script>\n")
			b.WriteString(js)
			b.WriteString("</script>\n")
		}
	}
	return b.String()
}

func joinAssetPath(base, name string) string {
	return strings.TrimRight(base, "/") + "/" + name
}
