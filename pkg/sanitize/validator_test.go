package sanitize

import (
	"strings"
	"testing"
)

const validGASnippet = `<script async src="https://www.googletagmanager.com/gtag/js?id=G-ABCDEF1234"></script>
<script>
  window.dataLayer = window.dataLayer || [];
  function gtag(){dataLayer.push(arguments);}
  gtag('js', new Date());
  gtag('config', 'G-ABCDEF1234');
</script>`

func TestValidateAcceptsRealTrackingCode(t *testing.T) {
	v := NewValidator(Config{})

	result := v.Validate(validGASnippet, KindHTML)
	if !result.OK {
		t.Fatalf("valid tracking code rejected: %v", result.Errors)
	}
	if len(result.Errors) != 0 {
		t.Errorf("passing result carries errors: %v", result.Errors)
	}
}

func TestValidateStructure(t *testing.T) {
	v := NewValidator(Config{})

	tests := []struct {
		name    string
		code    string
		wantErr string
	}{
		{
			"unclosed script",
			`<script>var x = 1;`,
			"Mismatched script tags",
		},
		{
			"nested script",
			`<script>var a;<script>var b;</script></script>`,
			"Nested script tags are not allowed",
		},
		{
			"unclosed noscript",
			`<noscript><img src="https://facebook.com/tr"/>`,
			"Mismatched noscript tags",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.Validate(tt.code, KindHTML)
			if result.OK {
				t.Fatal("structurally broken code accepted")
			}
			if !containsSubstring(result.Errors, tt.wantErr) {
				t.Errorf("errors %v missing %q", result.Errors, tt.wantErr)
			}
		})
	}
}

func TestValidateLength(t *testing.T) {
	v := NewValidator(Config{})

	tests := []struct {
		name    string
		code    string
		wantErr string
	}{
		{"empty", "   ", "Custom code cannot be empty when enabled"},
		{"too short", "var x;", "too short"},
		{"too long", strings.Repeat("a", 50001), "too long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.Validate(tt.code, KindJavaScript)
			if result.OK {
				t.Fatal("out-of-bounds code accepted")
			}
			if !containsSubstring(result.Errors, tt.wantErr) {
				t.Errorf("errors %v missing %q", result.Errors, tt.wantErr)
			}
		})
	}
}

func TestValidateSecurityDenylist(t *testing.T) {
	v := NewValidator(Config{})

	tests := []struct {
		name    string
		code    string
		wantErr string
	}{
		{"eval", `<script>eval("alert(1)")</script>`, "eval() function is not allowed"},
		{"function constructor", `<script>var f = Function("return 1");</script>`, "Function() constructor is not allowed"},
		{"setTimeout string", `<script>setTimeout("doEvil()", 100);</script>`, "setTimeout with string argument"},
		{"document.write", `<script>document.write("<p>hi</p>");</script>`, "document.write() is discouraged"},
		{"window.location", `<script>window.location = "https://evil.test";</script>`, "Redirecting window.location"},
		{"window.open", `<script>window.open("https://popup.test");</script>`, "window.open() is not allowed"},
		{"alert", `<script>alert("gotcha, friend");</script>`, "alert() is not allowed"},
		{"javascript uri", `<a href="javascript:doThing()">click here now</a>`, "javascript: protocol is not allowed"},
		{"iframe javascript src", `<iframe src="javascript:parent.x()"></iframe>`, "javascript: protocol in iframe src"},
		{"execCommand", `<script>document.execCommand("copy");</script>`, "execCommand is not allowed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.Validate(tt.code, KindHTML)
			if result.OK {
				t.Fatalf("dangerous code accepted: %s", tt.code)
			}
			if !containsSubstring(result.Errors, tt.wantErr) {
				t.Errorf("errors %v missing %q", result.Errors, tt.wantErr)
			}
		})
	}
}

func TestValidateCollectsAllErrorsOfOneClass(t *testing.T) {
	v := NewValidator(Config{})

	code := `<script>eval("x"); window.open("https://a.test");</script>`
	result := v.Validate(code, KindHTML)
	if result.OK {
		t.Fatal("dangerous code accepted")
	}
	if len(result.Errors) < 2 {
		t.Errorf("want both security violations reported, got %v", result.Errors)
	}
}

func TestValidateDomains(t *testing.T) {
	t.Run("suspicious domain rejected", func(t *testing.T) {
		v := NewValidator(Config{})
		code := `<script src="https://bit.ly/3abcdef"></script>`
		result := v.Validate(code, KindHTML)
		if result.OK {
			t.Fatal("link shortener accepted")
		}
		if !containsSubstring(result.Errors, "Suspicious domain detected: bit.ly") {
			t.Errorf("errors %v missing suspicious-domain message", result.Errors)
		}
	})

	t.Run("unlisted domain rejected when allow-list set", func(t *testing.T) {
		v := NewValidator(Config{AllowedDomains: []string{"googletagmanager.com"}})
		code := `<script src="https://cdn.example.org/t.js"></script>`
		result := v.Validate(code, KindHTML)
		if result.OK {
			t.Fatal("unlisted domain accepted")
		}
		if !containsSubstring(result.Errors, "Domain not in allowed list: cdn.example.org") {
			t.Errorf("errors %v missing allow-list message", result.Errors)
		}
	})

	t.Run("subdomain of allowed host accepted", func(t *testing.T) {
		v := NewValidator(Config{AllowedDomains: []string{"googletagmanager.com"}})
		code := `<script src="https://www.googletagmanager.com/gtm.js"></script>`
		if result := v.Validate(code, KindHTML); !result.OK {
			t.Errorf("subdomain of allowed host rejected: %v", result.Errors)
		}
	})
}

func TestValidateSyntaxHeuristics(t *testing.T) {
	v := NewValidator(Config{})

	tests := []struct {
		name string
		code string
		kind Kind
		ok   bool
	}{
		{"unbalanced parens", `<script>track(("pageview");</script>`, KindHTML, false},
		{"odd quote count", `<script>var s = "unterminated;</script>`, KindHTML, false},
		{"bare js checked whole", `track(("pageview"); // oops`, KindJavaScript, false},
		{"balanced css", `.banner { color: red; }`, KindCSS, true},
		{"unbalanced css", `.banner { color: red;`, KindCSS, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.Validate(tt.code, tt.kind)
			if result.OK != tt.ok {
				t.Errorf("Validate(%q) OK = %v, want %v (errors: %v)", tt.code, result.OK, tt.ok, result.Errors)
			}
		})
	}
}

func TestValidateClassOrdering(t *testing.T) {
	// Structure fails first; the eval violation in the same code is not
	// reported because security is a later class.
	v := NewValidator(Config{})
	code := `<script>eval("x");`
	result := v.Validate(code, KindHTML)
	if result.OK {
		t.Fatal("broken code accepted")
	}
	if !containsSubstring(result.Errors, "Mismatched script tags") {
		t.Errorf("want structural error first, got %v", result.Errors)
	}
	if containsSubstring(result.Errors, "eval()") {
		t.Errorf("later class leaked into failing run: %v", result.Errors)
	}
}

func TestStrip(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{
			"clean code untouched",
			`<script>var x = track('pageview');</script>`,
			`<script>var x = track('pageview');</script>`,
		},
		{
			"blocked call replaces whole block",
			`<p>keep</p><script>document.write("x");</script>`,
			`<p>keep</p><!-- Blocked potentially dangerous script -->`,
		},
		{
			"location assignment blocked",
			`<script>location.href="https://evil.test";</script>`,
			`<!-- Blocked potentially dangerous script -->`,
		},
		{
			"vbscript fragment removed",
			`<a href="vbscript:MsgBox(1)">x</a>`,
			`<a href="MsgBox(1)">x</a>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Strip(tt.code); got != tt.want {
				t.Errorf("Strip() = %q, want %q", got, tt.want)
			}
		})
	}
}

func containsSubstring(errs []string, substr string) bool {
	for _, e := range errs {
		if strings.Contains(e, substr) {
			return true
		}
	}
	return false
}
