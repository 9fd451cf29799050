package persistence

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// isDuplicateKeyError reports whether err is a unique-constraint violation.
// GORM's TranslateError covers postgres; the string checks cover drivers
// that predate translation, and sqlite used in tests.
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}
