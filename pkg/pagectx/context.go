package pagectx

import (
	"time"
)

// Device classifies the requesting client.
type Device string

const (
	DeviceDesktop Device = "desktop"
	DeviceMobile  Device = "mobile"
	DeviceTablet  Device = "tablet"
)

// Well-known page types. The set is open: hosts may report any string and
// rules compare by equality.
const (
	PageTypeHome     = "home"
	PageTypeSingle   = "single"
	PageTypePage     = "page"
	PageTypeArchive  = "archive"
	PageTypeCategory = "category"
	PageTypeTag      = "tag"
	PageTypeSearch   = "search"
	PageTypeNotFound = "404"
	PageTypeAuthor   = "author"
	PageTypeDate     = "date"
)

// Context is an immutable snapshot of the visibility-relevant facts about
// one page request. It is built by the host and passed by value into every
// evaluation call.
type Context struct {
	// PageType is the host's classification of the current page
	// (home, single, archive, ...).
	PageType string

	// EntityID identifies the primary entity of the page (post ID on a
	// single page, term ID on an archive). Zero when not applicable.
	EntityID int64

	// Categories holds the category slugs or IDs relevant to the request:
	// the post's categories on a single page, the queried term on a
	// category archive.
	Categories []string

	// Tags holds the tag slugs or IDs relevant to the request.
	Tags []string

	// LoggedIn reports whether the visitor is authenticated.
	LoggedIn bool

	// Roles holds the visitor's roles. Empty when logged out.
	Roles []string

	// Device is the client device class.
	Device Device

	// URL is the request path including query string.
	URL string

	// Now is the request time in the site's timezone.
	Now time.Time
}

// Provider supplies the current request context. Implemented by the host;
// the engine only ever consumes it.
type Provider interface {
	Current() Context
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func() Context

// Current returns f().
func (f ProviderFunc) Current() Context { return f() }

// HasRole reports whether the visitor holds the given role.
func (c Context) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}
