package template

import (
	"regexp"
	"strings"
)

var namedPlaceholder = regexp.MustCompile(`\{\{[^{}]+\}\}`)

// Render substitutes variables into a placeholder template. Named {{key}}
// placeholders take their value from vars; the legacy {ID} form reads the
// "ID" variable. Placeholders with no matching variable are replaced with
// the empty string. Output is trimmed.
//
// Render is idempotent: a string with no remaining placeholders passes
// through unchanged apart from trimming.
func Render(tmpl string, vars map[string]string) string {
	out := namedPlaceholder.ReplaceAllStringFunc(tmpl, func(ph string) string {
		key := strings.TrimSpace(ph[2 : len(ph)-2])
		return vars[key]
	})

	id := vars["ID"]
	out = strings.ReplaceAll(out, "{ID}", id)

	return strings.TrimSpace(out)
}

// RenderID renders a single-placeholder template with the given tracking ID.
func RenderID(tmpl, id string) string {
	return Render(tmpl, map[string]string{"ID": id})
}

// Preview joins rendered blocks the way the admin preview pane shows them,
// one blank line between snippets.
func Preview(blocks []string) string {
	nonEmpty := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if b = strings.TrimSpace(b); b != "" {
			nonEmpty = append(nonEmpty, b)
		}
	}
	return strings.Join(nonEmpty, "\n\n")
}
