package template

import (
	"regexp"
)

// Variant keys for services that ship more than one template.
const (
	VariantGA4  = "G-"
	VariantUA   = "UA-"
	VariantHead = "head"
	VariantBody = "body"

	variantDefault = ""
)

// Service describes one catalog entry: a third-party tracking product with
// a known embed template and tracking-ID format.
type Service struct {
	// Key is the stable identifier settings are stored under.
	Key string

	// Name is the operator-facing display name.
	Name string

	// Field names the settings field holding the tracking ID, e.g.
	// "tracking_id" or "container_id".
	Field string

	// Placeholder is the example value shown in the admin form.
	Placeholder string

	// DefaultPosition is where the rendered code lands unless overridden.
	DefaultPosition string

	// DualPosition marks services that emit into both head and body from
	// one configuration (tag-manager containers and their noscript frame).
	DualPosition bool

	pattern   *regexp.Regexp
	templates map[string]string
}

var catalog = buildCatalog()

func buildCatalog() map[string]*Service {
	services := []*Service{
		{
			Key:             "google_analytics",
			Name:            "Google Analytics",
			Field:           "tracking_id",
			Placeholder:     "G-XXXXXXXXXX or UA-XXXXXXXXX-X",
			DefaultPosition: "head",
			pattern:         regexp.MustCompile(`^(G-[A-Z0-9]{10}|UA-[0-9]+-[0-9]+)$`),
			templates: map[string]string{
				VariantGA4: googleAnalyticsGA4Template,
				VariantUA:  googleAnalyticsUATemplate,
			},
		},
		{
			Key:             "google_tag_manager",
			Name:            "Google Tag Manager",
			Field:           "container_id",
			Placeholder:     "GTM-XXXXXXX",
			DefaultPosition: "head",
			DualPosition:    true,
			pattern:         regexp.MustCompile(`^GTM-[A-Z0-9]{7}$`),
			templates: map[string]string{
				VariantHead: googleTagManagerHeadTemplate,
				VariantBody: googleTagManagerBodyTemplate,
			},
		},
		{
			Key:             "facebook_pixel",
			Name:            "Facebook Pixel",
			Field:           "pixel_id",
			Placeholder:     "123456789012345",
			DefaultPosition: "head",
			pattern:         regexp.MustCompile(`^[0-9]{15}$`),
			templates:       map[string]string{variantDefault: facebookPixelTemplate},
		},
		{
			Key:             "google_ads",
			Name:            "Google Ads",
			Field:           "conversion_id",
			Placeholder:     "AW-123456789",
			DefaultPosition: "head",
			pattern:         regexp.MustCompile(`^AW-[0-9]{10}$`),
			templates:       map[string]string{variantDefault: googleAdsTemplate},
		},
		{
			Key:             "microsoft_clarity",
			Name:            "Microsoft Clarity",
			Field:           "project_id",
			Placeholder:     "abcdefghij",
			DefaultPosition: "head",
			pattern:         regexp.MustCompile(`^[a-z0-9]{10}$`),
			templates:       map[string]string{variantDefault: microsoftClarityTemplate},
		},
		{
			Key:             "hotjar",
			Name:            "Hotjar",
			Field:           "site_id",
			Placeholder:     "1234567",
			DefaultPosition: "head",
			pattern:         regexp.MustCompile(`^[0-9]{7}$`),
			templates:       map[string]string{variantDefault: hotjarTemplate},
		},
		{
			Key:             "tiktok_pixel",
			Name:            "TikTok Pixel",
			Field:           "pixel_id",
			Placeholder:     "ABCDEFGHIJKLMNOPQRSTUVWXYZ123456",
			DefaultPosition: "head",
			pattern:         regexp.MustCompile(`^[A-Z0-9]{26}$`),
			templates:       map[string]string{variantDefault: tiktokPixelTemplate},
		},
		{
			Key:             "linkedin_insight",
			Name:            "LinkedIn Insight Tag",
			Field:           "partner_id",
			Placeholder:     "1234567",
			DefaultPosition: "footer",
			pattern:         regexp.MustCompile(`^[0-9]{7}$`),
			templates:       map[string]string{variantDefault: linkedinInsightTemplate},
		},
		{
			Key:             "twitter_pixel",
			Name:            "Twitter Pixel",
			Field:           "pixel_id",
			Placeholder:     "o1234",
			DefaultPosition: "head",
			pattern:         regexp.MustCompile(`^o[0-9]{4}$`),
			templates:       map[string]string{variantDefault: twitterPixelTemplate},
		},
		{
			Key:             "pinterest_pixel",
			Name:            "Pinterest Pixel",
			Field:           "pixel_id",
			Placeholder:     "1234567890123456",
			DefaultPosition: "head",
			pattern:         regexp.MustCompile(`^[0-9]{16}$`),
			templates:       map[string]string{variantDefault: pinterestPixelTemplate},
		},
		{
			Key:             "snapchat_pixel",
			Name:            "Snapchat Pixel",
			Field:           "pixel_id",
			Placeholder:     "abcdefgh-1234-5678-9012-abcdefghijkl",
			DefaultPosition: "head",
			pattern:         regexp.MustCompile(`^[a-f0-9]{8}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{12}$`),
			templates:       map[string]string{variantDefault: snapchatPixelTemplate},
		},
		{
			Key:             "google_optimize",
			Name:            "Google Optimize",
			Field:           "container_id",
			Placeholder:     "GTM-XXXXXXX",
			DefaultPosition: "head",
			pattern:         regexp.MustCompile(`^GTM-[A-Z0-9]{7}$`),
			templates:       map[string]string{variantDefault: googleOptimizeTemplate},
		},
		{
			Key:             "crazyegg",
			Name:            "Crazy Egg",
			Field:           "account_id",
			Placeholder:     "12345678",
			DefaultPosition: "head",
			pattern:         regexp.MustCompile(`^[0-9]{8}$`),
			templates:       map[string]string{variantDefault: crazyeggTemplate},
		},
		{
			Key:             "mixpanel",
			Name:            "Mixpanel",
			Field:           "project_token",
			Placeholder:     "abcdefghijklmnopqrstuvwxyz123456",
			DefaultPosition: "head",
			pattern:         regexp.MustCompile(`^[a-z0-9]{32}$`),
			templates:       map[string]string{variantDefault: mixpanelTemplate},
		},
		{
			Key:             "amplitude",
			Name:            "Amplitude",
			Field:           "api_key",
			Placeholder:     "abcdefghijklmnopqrstuvwxyz123456",
			DefaultPosition: "head",
			pattern:         regexp.MustCompile(`^[a-z0-9]{32}$`),
			templates:       map[string]string{variantDefault: amplitudeTemplate},
		},
		{
			Key:             "matomo",
			Name:            "Matomo",
			Field:           "site_id",
			Placeholder:     "1",
			DefaultPosition: "head",
			pattern:         regexp.MustCompile(`^[0-9]+$`),
			templates:       map[string]string{variantDefault: matomoTemplate},
		},
	}

	byKey := make(map[string]*Service, len(services))
	for _, s := range services {
		byKey[s.Key] = s
	}
	return byKey
}

// serviceOrder fixes the iteration order of All. It matches the order
// services appear in the admin UI.
var serviceOrder = []string{
	"google_analytics",
	"google_tag_manager",
	"facebook_pixel",
	"google_ads",
	"microsoft_clarity",
	"hotjar",
	"tiktok_pixel",
	"linkedin_insight",
	"twitter_pixel",
	"pinterest_pixel",
	"snapchat_pixel",
	"google_optimize",
	"crazyegg",
	"mixpanel",
	"amplitude",
	"matomo",
}

// Lookup returns the catalog entry for a service key.
func Lookup(key string) (*Service, bool) {
	s, ok := catalog[key]
	return s, ok
}

// All returns every catalog service in stable display order.
func All() []*Service {
	out := make([]*Service, 0, len(serviceOrder))
	for _, key := range serviceOrder {
		out = append(out, catalog[key])
	}
	return out
}

// TemplateFor selects the raw template for a tracking ID at a position.
// Google Analytics picks its variant from the ID prefix; dual-position
// services pick theirs from the position. The bool is false when the
// service has nothing to emit there.
func (s *Service) TemplateFor(id, position string) (string, bool) {
	switch {
	case len(s.templates) == 1:
		tmpl, ok := s.templates[variantDefault]
		return tmpl, ok
	case s.DualPosition:
		tmpl, ok := s.templates[position]
		return tmpl, ok
	default:
		for prefix, tmpl := range s.templates {
			if len(id) >= len(prefix) && id[:len(prefix)] == prefix {
				return tmpl, true
			}
		}
		return "", false
	}
}

// Code renders the service's template for the given ID and position.
// It returns "" when the service has no template for that position.
func (s *Service) Code(id, position string) string {
	tmpl, ok := s.TemplateFor(id, position)
	if !ok {
		return ""
	}
	return RenderID(tmpl, id)
}
