/*
Package config defines the root configuration for the tagforge server and
its loading pipeline: parse YAML, apply defaults, apply environment
overrides, validate.

	cfg, err := config.LoadConfig("tagforge.yaml")
	if err != nil {
		log.Fatal(err)
	}

Environment variables named TAGFORGE_SECTION_FIELD override file values,
e.g. TAGFORGE_SERVER_LISTEN_ADDRESS.
*/
package config
