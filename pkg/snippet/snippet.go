package snippet

import (
	"strings"
	"time"

	"tagforge-hq/tagforge/pkg/engine"
)

// Position is an output slot in the host page.
type Position string

const (
	PositionHead          Position = "head"
	PositionBody          Position = "body"
	PositionFooter        Position = "footer"
	PositionBeforeContent Position = "before_content"
	PositionAfterContent  Position = "after_content"
)

// Positions lists every valid output position in document order.
func Positions() []Position {
	return []Position{
		PositionHead,
		PositionBody,
		PositionBeforeContent,
		PositionAfterContent,
		PositionFooter,
	}
}

// CodeType is the language of a snippet's code, which selects the
// validation rules applied at authoring time.
type CodeType string

const (
	CodeHTML       CodeType = "html"
	CodeJavaScript CodeType = "javascript"
	CodeCSS        CodeType = "css"
)

// LoadMethod controls how script snippets are emitted.
type LoadMethod string

const (
	LoadNormal LoadMethod = "normal"
	LoadAsync  LoadMethod = "async"
	LoadDefer  LoadMethod = "defer"
)

// Status gates whether a snippet is eligible for rendering at all.
type Status string

const (
	StatusEnabled  Status = "enabled"
	StatusDisabled Status = "disabled"
)

// DeviceTarget restricts a snippet to one device class. DeviceAll matches
// every visitor.
type DeviceTarget string

const (
	DeviceAll     DeviceTarget = "all"
	DeviceDesktop DeviceTarget = "desktop"
	DeviceMobile  DeviceTarget = "mobile"
	DeviceTablet  DeviceTarget = "tablet"
)

// Snippet categories, for admin grouping only. The renderer ignores them.
const (
	CategoryStatistics  = "statistics"
	CategoryMarketing   = "marketing"
	CategoryAdvertising = "advertising"
	CategorySEO         = "seo"
	CategoryCustom      = "custom"
)

const (
	// MinPriority and MaxPriority bound snippet ordering. Lower renders
	// earlier.
	MinPriority = 1
	MaxPriority = 999

	// DefaultPriority is assigned when the operator does not pick one.
	DefaultPriority = 10
)

// Snippet is one operator-authored code block.
type Snippet struct {
	ID          string       `json:"id" yaml:"id"`
	Name        string       `json:"name" yaml:"name"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	Category    string       `json:"category,omitempty" yaml:"category,omitempty"`
	Code        string       `json:"code" yaml:"code"`
	CodeType    CodeType     `json:"code_type" yaml:"code_type"`
	Position    Position     `json:"position" yaml:"position"`
	Priority    int          `json:"priority" yaml:"priority"`
	Status      Status       `json:"status" yaml:"status"`
	Device      DeviceTarget `json:"device" yaml:"device"`
	LoadMethod  LoadMethod   `json:"load_method" yaml:"load_method"`
	Conditions  *engine.Node `json:"conditions,omitempty" yaml:"conditions,omitempty"`
	CreatedAt   time.Time    `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt   time.Time    `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// Enabled reports whether the snippet may render at all.
func (s *Snippet) Enabled() bool {
	return s.Status == StatusEnabled
}

// ApplyDefaults fills zero-valued fields with their stored defaults.
func (s *Snippet) ApplyDefaults() {
	if s.CodeType == "" {
		s.CodeType = CodeHTML
	}
	if s.Position == "" {
		s.Position = PositionHead
	}
	if s.Priority == 0 {
		s.Priority = DefaultPriority
	}
	if s.Status == "" {
		s.Status = StatusEnabled
	}
	if s.Device == "" {
		s.Device = DeviceAll
	}
	if s.LoadMethod == "" {
		s.LoadMethod = LoadNormal
	}
}

// Validate checks field-level integrity. Code content checks are the
// sanitize package's job; this only guards the record shape.
func (s *Snippet) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if strings.TrimSpace(s.Code) == "" {
		return &ValidationError{Field: "code", Message: "code is required"}
	}
	if !validPosition(s.Position) {
		return &ValidationError{Field: "position", Message: "unknown position " + string(s.Position)}
	}
	if s.Priority < MinPriority || s.Priority > MaxPriority {
		return &ValidationError{Field: "priority", Message: "priority must be between 1 and 999"}
	}
	switch s.CodeType {
	case CodeHTML, CodeJavaScript, CodeCSS:
	default:
		return &ValidationError{Field: "code_type", Message: "unknown code type " + string(s.CodeType)}
	}
	switch s.Status {
	case StatusEnabled, StatusDisabled:
	default:
		return &ValidationError{Field: "status", Message: "unknown status " + string(s.Status)}
	}
	switch s.Device {
	case DeviceAll, DeviceDesktop, DeviceMobile, DeviceTablet:
	default:
		return &ValidationError{Field: "device", Message: "unknown device target " + string(s.Device)}
	}
	switch s.LoadMethod {
	case LoadNormal, LoadAsync, LoadDefer:
	default:
		return &ValidationError{Field: "load_method", Message: "unknown load method " + string(s.LoadMethod)}
	}
	return nil
}

func validPosition(p Position) bool {
	for _, pos := range Positions() {
		if p == pos {
			return true
		}
	}
	return false
}
