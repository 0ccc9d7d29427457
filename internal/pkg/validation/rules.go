package validation

import (
	"regexp"
	"strings"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`

	// Matric number pattern, e.g. FUL/2021/0042
	MatricPattern = `^[A-Za-z]{2,5}/\d{4}/\d{3,6}$`

	// Password min length for trainer activation
	PasswordMinLength = 6

	NameMinLength = 2
	NameMaxLength = 150
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email  *regexp.Regexp
	Matric *regexp.Regexp
}{
	Email:  regexp.MustCompile(EmailPattern),
	Matric: regexp.MustCompile(MatricPattern),
}

// NormalizeEmail trims and lowercases an email for case-insensitive matching
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmail reports whether the value looks like an email address
func ValidEmail(email string) bool {
	return CompiledPatterns.Email.MatchString(strings.TrimSpace(email))
}

// ValidName reports whether the value is an acceptable person/entity name
func ValidName(name string) bool {
	n := len(strings.TrimSpace(name))
	return n >= NameMinLength && n <= NameMaxLength
}
