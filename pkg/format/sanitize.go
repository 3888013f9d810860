package format

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// Sanitize strips any markup from text destined for inline rendering and
// returns plain text. The policy entity-escapes what it keeps, so the result
// is unescaped again; escaping is the job of the surface that embeds the text
// (template autoescape on the page, textContent on the client), and doing it
// here too would double-escape.
func Sanitize(raw string) string {
	if raw == "" {
		return ""
	}
	clean := textSanitizer().Sanitize(raw)
	return strings.TrimSpace(html.UnescapeString(clean))
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}
