package database

import (
	"strings"
)

// IsUniqueViolation reports whether err is a SQLite uniqueness constraint
// failure. The modernc driver exposes constraint errors only through the
// message text.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
