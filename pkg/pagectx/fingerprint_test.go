package pagectx

import (
	"testing"
	"time"
)

func TestFingerprintDeterministic(t *testing.T) {
	ctx := Context{
		PageType: PageTypeSingle,
		EntityID: 42,
		LoggedIn: true,
		Roles:    []string{"editor", "author"},
		Device:   DeviceDesktop,
	}

	if ctx.Fingerprint() != ctx.Fingerprint() {
		t.Error("fingerprint is not deterministic for identical contexts")
	}
}

func TestFingerprintRoleOrderInsensitive(t *testing.T) {
	a := Context{PageType: PageTypeHome, LoggedIn: true, Roles: []string{"editor", "author"}}
	b := Context{PageType: PageTypeHome, LoggedIn: true, Roles: []string{"author", "editor"}}

	if a.Fingerprint() != b.Fingerprint() {
		t.Error("role ordering should not change the fingerprint")
	}
}

func TestFingerprintIgnoresRolesWhenLoggedOut(t *testing.T) {
	a := Context{PageType: PageTypeHome, Roles: []string{"editor"}}
	b := Context{PageType: PageTypeHome}

	if a.Fingerprint() != b.Fingerprint() {
		t.Error("roles must not affect the fingerprint for logged-out visitors")
	}
}

func TestFingerprintVariesByCacheRelevantFields(t *testing.T) {
	base := Context{PageType: PageTypeSingle, EntityID: 1}

	tests := []struct {
		name  string
		other Context
	}{
		{"page type", Context{PageType: PageTypeArchive, EntityID: 1}},
		{"entity id", Context{PageType: PageTypeSingle, EntityID: 2}},
		{"auth state", Context{PageType: PageTypeSingle, EntityID: 1, LoggedIn: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if base.Fingerprint() == tt.other.Fingerprint() {
				t.Errorf("fingerprint should differ when %s differs", tt.name)
			}
		})
	}
}

func TestFingerprintIgnoresNonCacheFields(t *testing.T) {
	a := Context{PageType: PageTypeSingle, EntityID: 1, URL: "/a", Now: time.Unix(100, 0)}
	b := Context{PageType: PageTypeSingle, EntityID: 1, URL: "/b", Now: time.Unix(200, 0)}

	if a.Fingerprint() != b.Fingerprint() {
		t.Error("URL and time must not fragment the output cache key")
	}
}

func TestDigestCoversAllFields(t *testing.T) {
	a := Context{PageType: PageTypeSingle, EntityID: 1, URL: "/a"}
	b := Context{PageType: PageTypeSingle, EntityID: 1, URL: "/b"}

	if a.Digest() == b.Digest() {
		t.Error("digest should differ when URL differs")
	}
}

func TestProviderFunc(t *testing.T) {
	p := ProviderFunc(func() Context { return Context{PageType: PageTypeSearch} })
	if got := p.Current().PageType; got != PageTypeSearch {
		t.Errorf("Current().PageType = %q, want %q", got, PageTypeSearch)
	}
}

func TestHasRole(t *testing.T) {
	ctx := Context{Roles: []string{"editor"}}
	if !ctx.HasRole("editor") {
		t.Error("expected HasRole(editor) = true")
	}
	if ctx.HasRole("admin") {
		t.Error("expected HasRole(admin) = false")
	}
}
