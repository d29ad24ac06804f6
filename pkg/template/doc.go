// Package template renders snippet code from placeholder templates and
// carries the built-in catalog of third-party tracking services.
//
// Two placeholder forms are supported: named {{key}} placeholders and the
// single-value {ID} form the legacy catalog templates use. Unresolved
// placeholders are stripped, never emitted literally, so a missing variable
// degrades to slightly broken markup instead of leaking template syntax to
// visitors.
//
// The catalog maps service keys (google_analytics, facebook_pixel, ...) to
// their display name, tracking-ID field, ID validation pattern, and raw
// code templates. Catalog templates are static data, not user input.
package template
