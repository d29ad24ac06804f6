package sanitize

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind identifies the language of the code under validation. It selects
// which syntax heuristics apply; the security denylist runs for every kind.
type Kind string

const (
	KindHTML       Kind = "html"
	KindJavaScript Kind = "javascript"
	KindCSS        Kind = "css"
)

// Result is the outcome of one validation run. Errors preserves the order
// in which violations were found.
type Result struct {
	OK     bool
	Errors []string
}

// Config bounds and scopes a Validator. Zero values fall back to defaults.
type Config struct {
	// MaxLength is the largest accepted code size in bytes.
	MaxLength int

	// MinLength rejects non-empty code shorter than this; real tracking
	// code is never a handful of characters.
	MinLength int

	// AllowedDomains, when non-empty, restricts external URLs to these
	// hosts and their subdomains.
	AllowedDomains []string

	// SuspiciousDomains are rejected outright.
	SuspiciousDomains []string
}

// DefaultConfig returns the validation bounds and domain lists used when no
// overrides are configured.
func DefaultConfig() Config {
	return Config{
		MaxLength: 50000,
		MinLength: 10,
		AllowedDomains: []string{
			"googletagmanager.com",
			"google-analytics.com",
			"googleadservices.com",
			"facebook.com",
			"facebook.net",
			"connect.facebook.net",
			"hotjar.com",
			"clarity.ms",
			"tiktok.com",
			"linkedin.com",
			"twitter.com",
			"pinterest.com",
			"snapchat.com",
			"googleoptimize.com",
			"crazyegg.com",
			"mixpanel.com",
			"amplitude.com",
			"ads-twitter.com",
			"pinimg.com",
			"licdn.com",
			"sc-static.net",
			"snap.licdn.com",
			"cdn.amplitude.com",
			"cdn4.mxpnl.com",
			"script.crazyegg.com",
		},
		SuspiciousDomains: []string{
			"bit.ly",
			"tinyurl.com",
			"goo.gl",
			"t.co",
			"ow.ly",
			"malware.com",
			"virus.com",
			"phishing.com",
			"suspicious.com",
			"malicious.com",
			"hack.com",
			"exploit.com",
		},
	}
}

// denyRule pairs a dangerous-construct pattern with the message shown to
// the operator when it matches.
type denyRule struct {
	pattern *regexp.Regexp
	message string
}

var denyRules = []denyRule{
	{regexp.MustCompile(`(?i)\beval\s*\(`), "eval() function is not allowed for security reasons"},
	{regexp.MustCompile(`(?i)\bFunction\s*\(`), "Function() constructor is not allowed for security reasons"},
	{regexp.MustCompile(`(?i)\bsetTimeout\s*\(\s*["'][^"']*["']`), "setTimeout with string argument is not allowed for security reasons"},
	{regexp.MustCompile(`(?i)\bsetInterval\s*\(\s*["'][^"']*["']`), "setInterval with string argument is not allowed for security reasons"},
	{regexp.MustCompile(`(?i)\bdocument\.write\s*\(`), "document.write() is discouraged and may not work properly"},
	{regexp.MustCompile(`(?i)\bwindow\.location\s*=\s*["'][^"']*["']`), "Redirecting window.location is not allowed"},
	{regexp.MustCompile(`(?i)\bwindow\.open\s*\(`), "window.open() is not allowed for security reasons"},
	{regexp.MustCompile(`(?i)\balert\s*\(`), "alert() is not allowed in tracking codes"},
	{regexp.MustCompile(`(?i)\bconfirm\s*\(`), "confirm() is not allowed in tracking codes"},
	{regexp.MustCompile(`(?i)\bprompt\s*\(`), "prompt() is not allowed in tracking codes"},
	{regexp.MustCompile(`(?i)javascript\s*:`), "javascript: protocol is not allowed"},
	{regexp.MustCompile(`(?i)<\s*iframe[^>]*src\s*=\s*["']?javascript:`), "javascript: protocol in iframe src is not allowed"},
	{regexp.MustCompile(`(?i)<\s*object[^>]*data\s*=\s*["']?javascript:`), "javascript: protocol in object data is not allowed"},
	{regexp.MustCompile(`(?i)<\s*embed[^>]*src\s*=\s*["']?javascript:`), "javascript: protocol in embed src is not allowed"},
	{regexp.MustCompile(`(?i)\bExecScript\s*\(`), "ExecScript is not allowed for security reasons"},
	{regexp.MustCompile(`(?i)\bexecCommand\s*\(`), "execCommand is not allowed for security reasons"},
}

var (
	externalURLPattern  = regexp.MustCompile(`(?i)https?://([^/\s"'<>]+)`)
	nestedScriptPattern = regexp.MustCompile(`(?is)<script[^>]*>.*?<script`)
	scriptOpenPattern   = regexp.MustCompile(`(?i)<script[^>]*>`)
	scriptBlockPattern  = regexp.MustCompile(`(?is)<script[^>]*>(.*?)</script>`)
)

// Validator runs the ordered check classes against snippet code. A Validator
// is stateless and safe for concurrent use.
type Validator struct {
	cfg Config
}

// NewValidator creates a validator. Zero-valued Config fields take their
// defaults from DefaultConfig.
func NewValidator(cfg Config) *Validator {
	def := DefaultConfig()
	if cfg.MaxLength <= 0 {
		cfg.MaxLength = def.MaxLength
	}
	if cfg.MinLength <= 0 {
		cfg.MinLength = def.MinLength
	}
	if cfg.AllowedDomains == nil {
		cfg.AllowedDomains = def.AllowedDomains
	}
	if cfg.SuspiciousDomains == nil {
		cfg.SuspiciousDomains = def.SuspiciousDomains
	}
	return &Validator{cfg: cfg}
}

// Validate checks code of the given kind and returns a pass/fail result
// with ordered error messages. Check classes run in order and stop at the
// first failing class; errors within a class are all collected.
func (v *Validator) Validate(code string, kind Kind) Result {
	code = strings.TrimSpace(code)

	for _, class := range []func(string, Kind) []string{
		v.checkStructure,
		v.checkLength,
		v.checkSecurity,
		v.checkDomains,
		v.checkSyntax,
	} {
		if errs := class(code, kind); len(errs) > 0 {
			return Result{OK: false, Errors: errs}
		}
	}
	return Result{OK: true}
}

// checkStructure verifies script and noscript tags open and close in pairs
// and rejects script tags nested inside script tags.
func (v *Validator) checkStructure(code string, kind Kind) []string {
	var errs []string

	if strings.Contains(code, "<script") {
		opens := strings.Count(code, "<script")
		closes := strings.Count(code, "</script>")
		if opens != closes {
			errs = append(errs, "Mismatched script tags detected. Each <script> must have a closing </script>")
		}
		if nestedScriptPattern.MatchString(code) {
			errs = append(errs, "Nested script tags are not allowed")
		}
	}

	if strings.Contains(code, "<noscript") {
		opens := strings.Count(code, "<noscript")
		closes := strings.Count(code, "</noscript>")
		if opens != closes {
			errs = append(errs, "Mismatched noscript tags detected. Each <noscript> must have a closing </noscript>")
		}
	}

	return errs
}

func (v *Validator) checkLength(code string, kind Kind) []string {
	switch {
	case code == "":
		return []string{"Custom code cannot be empty when enabled"}
	case len(code) > v.cfg.MaxLength:
		return []string{fmt.Sprintf("Custom code is too long (maximum %d characters)", v.cfg.MaxLength)}
	case len(code) < v.cfg.MinLength:
		return []string{"Custom code seems too short to be valid tracking code"}
	}
	return nil
}

func (v *Validator) checkSecurity(code string, kind Kind) []string {
	var errs []string
	for _, rule := range denyRules {
		if rule.pattern.MatchString(code) {
			errs = append(errs, rule.message)
		}
	}
	return errs
}

// checkDomains extracts every external URL host and rejects hosts on the
// suspicious list, or hosts outside the allow-list when one is configured.
func (v *Validator) checkDomains(code string, kind Kind) []string {
	var errs []string
	seen := make(map[string]bool)

	for _, m := range externalURLPattern.FindAllStringSubmatch(code, -1) {
		domain := strings.ToLower(strings.TrimSpace(m[1]))
		if seen[domain] {
			continue
		}
		seen[domain] = true

		if containsString(v.cfg.SuspiciousDomains, domain) {
			errs = append(errs, "Suspicious domain detected: "+domain)
			continue
		}
		if len(v.cfg.AllowedDomains) > 0 && !v.domainAllowed(domain) {
			errs = append(errs, "Domain not in allowed list: "+domain)
		}
	}

	return errs
}

// domainAllowed accepts exact matches and subdomains of allow-listed hosts.
func (v *Validator) domainAllowed(domain string) bool {
	for _, allowed := range v.cfg.AllowedDomains {
		if domain == allowed || strings.HasSuffix(domain, "."+allowed) {
			return true
		}
	}
	return false
}

// checkSyntax applies cheap balance heuristics to the code's script payload.
// It is not a parser; it exists to catch truncated paste jobs.
func (v *Validator) checkSyntax(code string, kind Kind) []string {
	var payload string
	switch kind {
	case KindJavaScript:
		payload = code
	case KindCSS:
		if !balanced(code, '{', '}') || !balanced(code, '(', ')') {
			return []string{"CSS structure appears to be invalid"}
		}
		return nil
	default:
		if !scriptOpenPattern.MatchString(code) {
			return nil
		}
		var b strings.Builder
		for _, m := range scriptBlockPattern.FindAllStringSubmatch(code, -1) {
			b.WriteString(m[1])
		}
		payload = b.String()
	}

	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil
	}

	ok := balanced(payload, '(', ')') &&
		balanced(payload, '[', ']') &&
		balanced(payload, '{', '}') &&
		strings.Count(payload, "'")%2 == 0 &&
		strings.Count(payload, `"`)%2 == 0
	if !ok {
		return []string{"JavaScript syntax appears to be invalid"}
	}
	return nil
}

func balanced(code string, open, close byte) bool {
	return strings.Count(code, string(open)) == strings.Count(code, string(close))
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
