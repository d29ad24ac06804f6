// Package cli holds shared helpers for the tagforge command line: typed
// command errors, output formatting, and signal-aware contexts.
package cli
