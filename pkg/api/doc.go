// Package api exposes the engine over HTTP: position rendering for host
// pages, authoring-time code validation, service template previews, snippet
// CRUD, cache invalidation, operator stats, and Prometheus metrics.
package api
