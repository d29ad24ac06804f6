package snippet

import (
	"errors"
	"testing"
)

func validSnippet() *Snippet {
	return &Snippet{
		ID:         "b3b2e1b0-0000-4000-8000-000000000001",
		Name:       "Header pixel",
		Code:       `<script src="https://connect.facebook.net/en_US/fbevents.js"></script>`,
		CodeType:   CodeHTML,
		Position:   PositionHead,
		Priority:   10,
		Status:     StatusEnabled,
		Device:     DeviceAll,
		LoadMethod: LoadNormal,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Snippet)
		wantField string
	}{
		{"valid", func(s *Snippet) {}, ""},
		{"missing name", func(s *Snippet) { s.Name = "  " }, "name"},
		{"missing code", func(s *Snippet) { s.Code = "" }, "code"},
		{"bad position", func(s *Snippet) { s.Position = "sidebar" }, "position"},
		{"priority too low", func(s *Snippet) { s.Priority = 0 }, "priority"},
		{"priority too high", func(s *Snippet) { s.Priority = 1000 }, "priority"},
		{"bad code type", func(s *Snippet) { s.CodeType = "php" }, "code_type"},
		{"bad status", func(s *Snippet) { s.Status = "paused" }, "status"},
		{"bad device", func(s *Snippet) { s.Device = "watch" }, "device"},
		{"bad load method", func(s *Snippet) { s.LoadMethod = "eager" }, "load_method"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSnippet()
			tt.mutate(s)
			err := s.Validate()

			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() = %v, want *ValidationError", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("failed field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	s := &Snippet{Name: "bare", Code: "<script>x()</script>"}
	s.ApplyDefaults()

	if s.CodeType != CodeHTML {
		t.Errorf("CodeType = %q, want %q", s.CodeType, CodeHTML)
	}
	if s.Position != PositionHead {
		t.Errorf("Position = %q, want %q", s.Position, PositionHead)
	}
	if s.Priority != DefaultPriority {
		t.Errorf("Priority = %d, want %d", s.Priority, DefaultPriority)
	}
	if s.Status != StatusEnabled {
		t.Errorf("Status = %q, want %q", s.Status, StatusEnabled)
	}
	if s.Device != DeviceAll {
		t.Errorf("Device = %q, want %q", s.Device, DeviceAll)
	}
	if s.LoadMethod != LoadNormal {
		t.Errorf("LoadMethod = %q, want %q", s.LoadMethod, LoadNormal)
	}

	if err := s.Validate(); err != nil {
		t.Errorf("defaulted snippet fails validation: %v", err)
	}
}
