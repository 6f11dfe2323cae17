package errors

import (
	"regexp"
	"unicode"
)

// crateNameRegex matches the names cargo accepts for packages: alphanumeric
// characters, hyphens, and underscores. crates.io is stricter (the first
// character must be alphabetic) but local workspace members are not bound by
// registry rules, so leading digits and underscores are allowed here.
var crateNameRegex = regexp.MustCompile(`^[a-zA-Z0-9_][a-zA-Z0-9_-]*$`)

// ValidateCrateName validates a crate name before it is used for lookups.
//
// The rules are intentionally conservative:
//   - No empty names
//   - No control characters or null bytes
//   - Maximum length of 64 characters (the crates.io limit)
//   - Only alphanumerics, hyphens, and underscores
func ValidateCrateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPackage, "crate name cannot be empty")
	}

	if len(name) > 64 {
		return New(ErrCodeInvalidPackage, "crate name too long (max 64 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPackage, "crate name contains control characters")
		}
	}

	if !crateNameRegex.MatchString(name) {
		return New(ErrCodeInvalidPackage, "invalid crate name: %q", name)
	}

	return nil
}
