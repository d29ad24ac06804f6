// Package snippet defines the snippet record, its enumerations, and the
// storage interfaces the rendering pipeline reads through.
//
// A snippet is one block of operator-authored code bound to an output
// position, gated by an optional condition tree, ordered by priority.
// Storage backends implement Store (read path, all the renderer needs) and
// Writer (authoring path); pkg/snippet/sqlitestore is the default backend
// and pkg/snippet/filesource loads read-only snippet sets from YAML files.
package snippet
