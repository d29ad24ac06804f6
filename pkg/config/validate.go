package config

import (
	"fmt"
	"strings"

	"tagforge-hq/tagforge/pkg/snippet"
	"tagforge-hq/tagforge/pkg/template"
)

// FieldError reports a validation failure on one configuration field.
type FieldError struct {
	// Field is the dotted path to the field (e.g. "server.listen_address").
	Field string

	// Message is a human-readable error message.
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError collects every validation failure in a configuration.
type ValidationError struct {
	Errors []FieldError
}

func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "configuration validation failed with %d errors:\n", len(e.Errors))
	for _, err := range e.Errors {
		fmt.Fprintf(&sb, "  - %s\n", err.Error())
	}
	return sb.String()
}

// Validate checks the whole configuration and returns a ValidationError
// listing every problem found, or nil when valid.
func Validate(cfg *Config) error {
	var errs []FieldError

	if cfg.Server.ListenAddress == "" {
		errs = append(errs, FieldError{"server.listen_address", "must not be empty"})
	}

	switch cfg.Store.Backend {
	case "sqlite", "file":
	default:
		errs = append(errs, FieldError{"store.backend", fmt.Sprintf("unknown backend %q (want sqlite or file)", cfg.Store.Backend)})
	}

	switch cfg.Cache.Backend {
	case "memory", "otter":
	default:
		errs = append(errs, FieldError{"cache.backend", fmt.Sprintf("unknown backend %q (want memory or otter)", cfg.Cache.Backend)})
	}
	if cfg.Cache.TTL < 0 {
		errs = append(errs, FieldError{"cache.ttl", "must not be negative"})
	}
	if cfg.Cache.MaxEntries < 0 {
		errs = append(errs, FieldError{"cache.max_entries", "must not be negative"})
	}

	if cfg.Validation.MaxCodeLength < cfg.Validation.MinCodeLength {
		errs = append(errs, FieldError{"validation.max_code_length", "must be at least min_code_length"})
	}

	errs = append(errs, validateServices(cfg.Services)...)

	switch cfg.Telemetry.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, FieldError{"telemetry.logging.level", fmt.Sprintf("unknown level %q", cfg.Telemetry.Logging.Level)})
	}
	switch cfg.Telemetry.Logging.Format {
	case "json", "text":
	default:
		errs = append(errs, FieldError{"telemetry.logging.format", fmt.Sprintf("unknown format %q", cfg.Telemetry.Logging.Format)})
	}

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

func validateServices(services map[string]ServiceConfig) []FieldError {
	var errs []FieldError

	for key, svc := range services {
		field := func(name string) string { return "services." + key + "." + name }

		def, known := template.Lookup(key)
		if !known {
			errs = append(errs, FieldError{"services." + key, "unknown service"})
			continue
		}
		if !svc.Enabled {
			continue
		}

		if svc.TemplateEnabled() {
			if err := def.ValidateID(svc.TrackingID); err != nil {
				errs = append(errs, FieldError{field("tracking_id"), err.Error()})
			}
		} else if strings.TrimSpace(svc.CustomCode) == "" {
			errs = append(errs, FieldError{field("custom_code"), "must not be empty when the template is disabled"})
		}

		if svc.Position != "" && !validServicePosition(svc.Position) {
			errs = append(errs, FieldError{field("position"), fmt.Sprintf("unknown position %q", svc.Position)})
		}
		if svc.Priority < snippet.MinPriority || svc.Priority > snippet.MaxPriority {
			errs = append(errs, FieldError{field("priority"), "must be between 1 and 999"})
		}
		switch snippet.DeviceTarget(svc.Device) {
		case snippet.DeviceAll, snippet.DeviceDesktop, snippet.DeviceMobile, snippet.DeviceTablet:
		default:
			errs = append(errs, FieldError{field("device"), fmt.Sprintf("unknown device %q", svc.Device)})
		}
	}

	return errs
}

func validServicePosition(p string) bool {
	for _, pos := range snippet.Positions() {
		if p == string(pos) {
			return true
		}
	}
	return false
}
