package auth

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

var emailFolder = cases.Fold()

// NormalizeEmail trims surrounding whitespace and case-folds the address.
// The folded form is the unique key for users and subscribers.
func NormalizeEmail(email string) string {
	return emailFolder.String(strings.TrimSpace(email))
}

// IsValidEmail performs a shape check only; deliverability is not verified.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
