package validation

import (
	"regexp"
	"strings"
)

// emailPattern is the historical registration rule: ASCII local part of
// letters, digits and . _ % + -, any domain, and a top-level domain that
// must be ".com" in any casing. Length is not bounded.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[cC][oO][mM]$`)

// EmailValid reports whether s satisfies the platform's email rule.
func EmailValid(s string) bool {
	return emailPattern.MatchString(s)
}

// PasswordValid requires at least 8 characters with at least one ASCII
// digit and one ASCII letter. No uppercase or symbol requirement.
func PasswordValid(s string) bool {
	if len(s) < 8 {
		return false
	}
	var hasDigit, hasLetter bool
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
			hasDigit = true
		case (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
			hasLetter = true
		}
	}
	return hasDigit && hasLetter
}

// OrganizerValid reports whether the organization requirement holds for
// the given role: organizers must carry a non-blank organization, every
// other role is unconstrained.
func OrganizerValid(role, organization string) bool {
	if role != "Organizer" {
		return true
	}
	return strings.TrimSpace(organization) != ""
}
