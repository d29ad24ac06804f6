package config

import (
	"strings"
	"testing"
	"time"
)

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := parse([]byte(`{}`))
	if err != nil {
		t.Fatalf("parse() failed: %v", err)
	}

	if cfg.Server.ListenAddress != DefaultListenAddress {
		t.Errorf("ListenAddress = %q, want %q", cfg.Server.ListenAddress, DefaultListenAddress)
	}
	if cfg.Store.Backend != "sqlite" {
		t.Errorf("store backend = %q, want sqlite", cfg.Store.Backend)
	}
	if !cfg.Store.SQLite.WALMode {
		t.Error("WAL mode should default to true")
	}
	if cfg.Cache.TTL != time.Hour {
		t.Errorf("cache TTL = %v, want 1h", cfg.Cache.TTL)
	}
	if cfg.Validation.MaxCodeLength != DefaultMaxCodeLength {
		t.Errorf("MaxCodeLength = %d, want %d", cfg.Validation.MaxCodeLength, DefaultMaxCodeLength)
	}
	if !cfg.Telemetry.Metrics.Enabled {
		t.Error("metrics should default to enabled")
	}
}

func TestParseExplicitFalseSurvives(t *testing.T) {
	cfg, err := parse([]byte(`
store:
  sqlite:
    wal_mode: false
telemetry:
  metrics:
    enabled: false
`))
	if err != nil {
		t.Fatalf("parse() failed: %v", err)
	}
	if cfg.Store.SQLite.WALMode {
		t.Error("explicit wal_mode: false was overridden")
	}
	if cfg.Telemetry.Metrics.Enabled {
		t.Error("explicit metrics enabled: false was overridden")
	}
}

func TestParseServiceSettings(t *testing.T) {
	cfg, err := parse([]byte(`
services:
  google_analytics:
    enabled: true
    tracking_id: G-ABCDEF1234
  google_tag_manager:
    enabled: true
    tracking_id: GTM-ABC1234
    priority: 5
    conditions:
      logic: AND
      rules:
        - type: page_type
          operator: equals
          value: single
`))
	if err != nil {
		t.Fatalf("parse() failed: %v", err)
	}

	ga := cfg.Services["google_analytics"]
	if !ga.Enabled || ga.TrackingID != "G-ABCDEF1234" {
		t.Errorf("google_analytics settings wrong: %+v", ga)
	}
	if ga.Priority != DefaultServicePriority {
		t.Errorf("defaulted priority = %d, want %d", ga.Priority, DefaultServicePriority)
	}
	if ga.Device != DefaultServiceDevice {
		t.Errorf("defaulted device = %q, want all", ga.Device)
	}
	if !ga.TemplateEnabled() {
		t.Error("UseTemplate should default to true")
	}

	gtm := cfg.Services["google_tag_manager"]
	if gtm.Conditions == nil || len(gtm.Conditions.Rules) != 1 {
		t.Fatalf("conditions not parsed: %+v", gtm.Conditions)
	}
	if gtm.Conditions.Rules[0].Value != "single" {
		t.Errorf("condition value = %q", gtm.Conditions.Rules[0].Value)
	}
}

func TestValidateCollectsErrors(t *testing.T) {
	_, err := parse([]byte(`
store:
  backend: postgres
cache:
  backend: redis
services:
  google_analytics:
    enabled: true
    tracking_id: not-a-real-id
  nonexistent_service:
    enabled: true
`))
	if err == nil {
		t.Fatal("parse() accepted invalid configuration")
	}

	msg := err.Error()
	for _, want := range []string{
		"store.backend",
		"cache.backend",
		"services.google_analytics.tracking_id",
		"services.nonexistent_service",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q missing %q", msg, want)
		}
	}
}

func TestValidateDisabledServiceSkipsIDCheck(t *testing.T) {
	_, err := parse([]byte(`
services:
  google_analytics:
    enabled: false
    tracking_id: garbage
`))
	if err != nil {
		t.Errorf("disabled service should not be validated: %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TAGFORGE_SERVER_LISTEN_ADDRESS", "0.0.0.0:9090")
	t.Setenv("TAGFORGE_CACHE_TTL", "30m")

	cfg, err := parse([]byte(`{}`))
	if err != nil {
		t.Fatalf("parse() failed: %v", err)
	}
	if cfg.Server.ListenAddress != "0.0.0.0:9090" {
		t.Errorf("env override ignored: %q", cfg.Server.ListenAddress)
	}
	if cfg.Cache.TTL != 30*time.Minute {
		t.Errorf("cache TTL = %v, want 30m", cfg.Cache.TTL)
	}
}
