// Package pagectx defines the immutable per-request context snapshot that
// snippet visibility rules are evaluated against, and the deterministic
// fingerprint used to key cached render output.
//
// The engine never reads ambient host state. Whatever framework embeds it
// builds a Context once per page request (via a Provider) and passes it by
// value into every evaluation call.
package pagectx
