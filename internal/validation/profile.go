// Package validation contains input validation rules for user-supplied fields.
package validation

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{2,30}$`)
	colorRegex    = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
)

const (
	MaxNameLength = 50
	MaxBioLength  = 160
)

// ValidateUsername checks the username format: 2-30 characters, letters,
// digits, underscores, and hyphens only.
func ValidateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username must be 2-30 characters and contain only letters, numbers, underscores, and hyphens")
	}
	return nil
}

// ValidateName checks the display name length.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return fmt.Errorf("name must be at most %d characters", MaxNameLength)
	}
	return nil
}

// ValidateBio checks the bio length. An empty bio is fine.
func ValidateBio(bio string) error {
	if utf8.RuneCountInString(bio) > MaxBioLength {
		return fmt.Errorf("bio must be at most %d characters", MaxBioLength)
	}
	return nil
}

// ValidateColor checks a profile color in #RRGGBB form.
func ValidateColor(color string) error {
	if !colorRegex.MatchString(color) {
		return fmt.Errorf("color must be a hex value like #1a2b3c")
	}
	return nil
}
