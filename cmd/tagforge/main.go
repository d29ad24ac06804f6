// Tagforge is a conditional snippet rendering engine for third-party
// tracking and marketing code.
//
// It stores operator-authored code snippets and built-in service templates
// (Google Analytics, Tag Manager, Facebook Pixel, and others), evaluates
// visibility condition trees against the requesting page context, and
// serves assembled output blocks per page position over HTTP, with
// validation, caching, and Prometheus metrics.
//
// Usage:
//
//	# Start the server with default configuration
//	tagforge run
//
//	# Start with a custom configuration file
//	tagforge run --config /etc/tagforge/config.yaml
//
//	# Validate a snippet file offline
//	tagforge validate --file snippets/analytics.yaml
//
//	# Show version information
//	tagforge version
package main

func main() {
	Execute()
}
