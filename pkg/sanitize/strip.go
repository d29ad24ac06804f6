package sanitize

import (
	"regexp"
	"strings"
)

// strippedPatterns are removed from code outright before the per-block scan.
var strippedPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)<script[^>]*>\s*eval\s*\(`),
	regexp.MustCompile(`(?i)<script[^>]*>\s*Function\s*\(`),
	regexp.MustCompile(`(?i)javascript\s*:\s*void`),
	regexp.MustCompile(`(?i)data:text/html`),
	regexp.MustCompile(`(?i)vbscript:`),
}

// blockedCalls inside a script block cause the whole block to be replaced.
// Matching is a case-insensitive substring check, not a parse.
var blockedCalls = []string{
	"eval(",
	"function(",
	"execscript(",
	`settimeout("`,
	"settimeout('",
	`setinterval("`,
	"setinterval('",
	"document.write(",
	"document.writeln(",
	"window.location=",
	"location.href=",
	"location.replace(",
}

const blockedScriptComment = "<!-- Blocked potentially dangerous script -->"

// Strip is the save-time defense-in-depth pass. It removes known-dangerous
// fragments and replaces any script block that invokes a blocked function
// with an HTML comment. Strip never rejects; use Validator for that.
func Strip(code string) string {
	for _, p := range strippedPatterns {
		code = p.ReplaceAllString(code, "")
	}

	code = scriptBlockPattern.ReplaceAllStringFunc(code, func(block string) string {
		inner := strings.ToLower(scriptBlockPattern.FindStringSubmatch(block)[1])
		for _, blocked := range blockedCalls {
			if strings.Contains(inner, blocked) {
				return blockedScriptComment
			}
		}
		return block
	})

	return strings.TrimSpace(code)
}
