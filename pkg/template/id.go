package template

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

var (
	ga4IDPattern = regexp.MustCompile(`^G-[A-Z0-9]{10}$`)
	uaIDPattern  = regexp.MustCompile(`^UA-[0-9]+-[0-9]+$`)
)

// blockedIDs are placeholder and test identifiers that must never reach
// production markup.
var blockedIDs = map[string][]string{
	"google_analytics":   {"G-XXXXXXXXXX", "UA-XXXXXXX-X", "G-TEST123456", "UA-123456-1"},
	"google_tag_manager": {"GTM-XXXXXXX", "GTM-TEST123"},
	"facebook_pixel":     {"123456789012345", "000000000000000"},
}

// ValidateID checks a tracking ID against the service's format pattern,
// service-specific rules, and the blocked-placeholder list. The returned
// error message is shown to the operator as-is.
func (s *Service) ValidateID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errors.New("The " + strings.ReplaceAll(s.Field, "_", " ") + " field cannot be empty")
	}

	if s.pattern != nil && !s.pattern.MatchString(id) {
		return errors.New("Invalid " + s.Name + " format. Expected format: " + s.Placeholder)
	}

	if err := s.validateSpecificRules(id); err != nil {
		return err
	}

	for _, blocked := range blockedIDs[s.Key] {
		if id == blocked {
			return errors.New("This ID is not allowed for security reasons.")
		}
	}

	return nil
}

func (s *Service) validateSpecificRules(id string) error {
	switch s.Key {
	case "google_analytics":
		switch {
		case strings.HasPrefix(id, "G-"):
			if !ga4IDPattern.MatchString(id) {
				return errors.New("Invalid Google Analytics 4 ID format. Should be G- followed by 10 alphanumeric characters.")
			}
		case strings.HasPrefix(id, "UA-"):
			if !uaIDPattern.MatchString(id) {
				return errors.New("Invalid Universal Analytics ID format. Should be UA-XXXXXX-X.")
			}
		default:
			return errors.New("Google Analytics ID must start with G- (GA4) or UA- (Universal Analytics).")
		}
	case "matomo":
		n, err := strconv.Atoi(id)
		if err != nil {
			return errors.New("Invalid Matomo Site ID format. Should be numeric.")
		}
		if n < 1 || n > 999999 {
			return errors.New("Matomo Site ID should be between 1 and 999999.")
		}
	}
	return nil
}
