// Package engine evaluates snippet visibility conditions against a page
// request context.
//
// A condition is a tree of groups and rules. Groups combine their children
// with AND or OR logic and nest arbitrarily; rules compare one fact from the
// request context (page type, device, URL, time, ...) against an encoded
// value using a type-specific operator. A nil or empty tree always matches.
//
// Rule types dispatch through a Registry so hosts can add their own types
// without touching the core. Unrecognized types evaluate to true, matching
// the permissive behavior of the systems this engine is designed to host:
// a rule the site does not understand must not suppress output it was never
// configured to gate. Hosts that prefer fail-closed register an evaluator
// returning false.
//
// Within one page render, identical (tree, context) pairs are memoized by
// content hash so snippets sharing a condition tree evaluate it once.
package engine
