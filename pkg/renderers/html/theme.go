package html

import (
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// themeStyle translates a resolved theme configuration into a :root CSS
// custom-property block. Explicit CSSVars win; otherwise manifest tokens are
// exposed under a tangle prefix so the stylesheet can consume them.
func themeStyle(cfg *theme.RendererConfig) string {
	if cfg == nil {
		return ""
	}

	vars := cfg.CSSVars
	if len(vars) == 0 && len(cfg.Tokens) > 0 {
		vars = make(map[string]string, len(cfg.Tokens))
		for token, value := range cfg.Tokens {
			vars["--tangle-"+token] = value
		}
	}
	if len(vars) == 0 {
		return ""
	}

	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString("  ")
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}
