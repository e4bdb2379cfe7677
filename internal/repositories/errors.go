package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"betsy/internal/apperrors"
)

// isDuplicate reports whether err is a unique-constraint violation. GORM
// translates these to ErrDuplicatedKey when the dialect supports it; the
// string checks cover sqlite and postgres messages that slip through.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}

// translate maps a GORM error to the data layer's typed error vocabulary.
func translate(err error, entity, ref string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.NotFound(entity, ref)
	case isDuplicate(err):
		return apperrors.Conflict(entity, ref, entity+" already exists")
	default:
		return apperrors.IO("store error on "+entity, err)
	}
}
