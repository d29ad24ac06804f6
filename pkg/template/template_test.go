package template

import (
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		tmpl string
		vars map[string]string
		want string
	}{
		{
			"named placeholder",
			`<script src="https://example.com/{{path}}.js"></script>`,
			map[string]string{"path": "tag"},
			`<script src="https://example.com/tag.js"></script>`,
		},
		{
			"legacy ID placeholder",
			`gtag("config", "{ID}");`,
			map[string]string{"ID": "G-ABCDEF1234"},
			`gtag("config", "G-ABCDEF1234");`,
		},
		{
			"repeated placeholder replaced everywhere",
			`{ID} and {ID}`,
			map[string]string{"ID": "x"},
			`x and x`,
		},
		{
			"unresolved named placeholder stripped",
			`before {{missing}} after`,
			nil,
			`before  after`,
		},
		{
			"unresolved ID stripped",
			`id={ID}`,
			nil,
			`id=`,
		},
		{
			"output trimmed",
			"  \n text \n ",
			nil,
			"text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.tmpl, tt.vars); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderIdempotent(t *testing.T) {
	tmpl := `<script>gtag("config", "{ID}"); {{extra}}</script>`
	vars := map[string]string{"ID": "G-ABCDEF1234"}

	once := Render(tmpl, vars)
	twice := Render(once, vars)
	if once != twice {
		t.Errorf("second render changed output:\nonce:  %q\ntwice: %q", once, twice)
	}
}

func TestPreview(t *testing.T) {
	got := Preview([]string{"<script>a</script>", "", "  ", "<script>b</script>"})
	want := "<script>a</script>\n\n<script>b</script>"
	if got != want {
		t.Errorf("Preview() = %q, want %q", got, want)
	}
}

func TestCatalogComplete(t *testing.T) {
	all := All()
	if len(all) != 16 {
		t.Fatalf("catalog has %d services, want 16", len(all))
	}
	for _, s := range all {
		if s == nil {
			t.Fatal("All() returned a nil service; order list out of sync with catalog")
		}
		if s.Key == "" || s.Name == "" || s.Field == "" || s.DefaultPosition == "" {
			t.Errorf("service %q has incomplete metadata", s.Key)
		}
		if len(s.templates) == 0 {
			t.Errorf("service %q has no templates", s.Key)
		}
	}
}

func TestServiceCode(t *testing.T) {
	t.Run("ga4 variant by prefix", func(t *testing.T) {
		s, _ := Lookup("google_analytics")
		code := s.Code("G-ABCDEF1234", "head")
		if !strings.Contains(code, "Google Analytics 4") {
			t.Errorf("G- ID rendered wrong variant: %q", firstLine(code))
		}
		if strings.Contains(code, "{ID}") {
			t.Error("placeholder survived rendering")
		}
	})

	t.Run("ua variant by prefix", func(t *testing.T) {
		s, _ := Lookup("google_analytics")
		code := s.Code("UA-123456-2", "head")
		if !strings.Contains(code, "Universal Analytics") {
			t.Errorf("UA- ID rendered wrong variant: %q", firstLine(code))
		}
	})

	t.Run("gtm head and body differ", func(t *testing.T) {
		s, _ := Lookup("google_tag_manager")
		head := s.Code("GTM-ABC1234", "head")
		body := s.Code("GTM-ABC1234", "body")
		if head == "" || body == "" {
			t.Fatal("dual-position service missing a variant")
		}
		if !strings.Contains(head, "gtm.js") {
			t.Error("head variant missing loader script")
		}
		if !strings.Contains(body, "<noscript>") {
			t.Error("body variant missing noscript frame")
		}
	})

	t.Run("single-template service ignores position", func(t *testing.T) {
		s, _ := Lookup("facebook_pixel")
		code := s.Code("111222333444555", "footer")
		if !strings.Contains(code, `fbq("init", "111222333444555")`) {
			t.Errorf("pixel ID not substituted: %q", firstLine(code))
		}
	})
}

func TestValidateID(t *testing.T) {
	tests := []struct {
		service string
		id      string
		wantErr string
	}{
		{"google_analytics", "G-ABCDEF1234", ""},
		{"google_analytics", "UA-123456-2", ""},
		{"google_analytics", "G-SHORT", "Invalid Google Analytics format"},
		{"google_analytics", "G-XXXXXXXXXX", "not allowed for security reasons"},
		{"google_tag_manager", "GTM-ABC1234", ""},
		{"google_tag_manager", "GTM-XXXXXXX", "not allowed for security reasons"},
		{"google_tag_manager", "gtm-abc1234", "Invalid Google Tag Manager format"},
		{"facebook_pixel", "111222333444555", ""},
		{"facebook_pixel", "000000000000000", "not allowed for security reasons"},
		{"facebook_pixel", "123", "Invalid Facebook Pixel format"},
		{"matomo", "5", ""},
		{"matomo", "1000000", "between 1 and 999999"},
		{"matomo", "", "cannot be empty"},
		{"hotjar", "1234567", ""},
		{"hotjar", "12345678", "Invalid Hotjar format"},
	}

	for _, tt := range tests {
		t.Run(tt.service+"/"+tt.id, func(t *testing.T) {
			s, ok := Lookup(tt.service)
			if !ok {
				t.Fatalf("unknown service %q", tt.service)
			}
			err := s.ValidateID(tt.id)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("ValidateID(%q) = %v, want nil", tt.id, err)
				}
				return
			}
			if err == nil {
				t.Fatalf("ValidateID(%q) accepted, want error containing %q", tt.id, tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ValidateID(%q) = %q, want substring %q", tt.id, err, tt.wantErr)
			}
		})
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
