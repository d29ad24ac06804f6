// Package sanitize statically validates untrusted snippet code before it is
// persisted.
//
// Validation runs check classes in a fixed order: structure, length,
// security denylist, external domains, syntax heuristics. The first class
// that fails stops the run, but every error inside that class is collected,
// so the operator sees all structural problems at once rather than one per
// save. Messages are surfaced verbatim in the admin UI.
//
// Validation happens at authoring time only. The render path trusts code
// that already passed; the one render-adjacent safety net is Strip, a
// defensive pass applied at save time that replaces script blocks invoking
// blocked functions with an HTML comment.
package sanitize
