// Package render is the output side of the engine: it selects the snippets
// eligible for a position, renders them into one HTML block wrapped in
// managed comment markers, and caches the result.
//
// The cache key combines position, a generation counter, and the request
// context fingerprint. Bumping the generation (InvalidateAll) orphans every
// cached entry at once without touching the backing store; TTL expiry
// collects the orphans. Empty output is cached too, so positions with no
// matching snippets cost one lookup instead of a full selection pass.
//
// Per-snippet failures never break a page: a snippet that cannot render is
// logged and skipped, and the rest of the block still ships.
package render
