package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yeremiapane/mealbox-app/utils"
	"gorm.io/gorm"
)

// translate maps driver errors onto application error kinds.
func translate(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return utils.WrapKind(utils.KindNotFound, err, format, args...)
	case errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err):
		return utils.WrapKind(utils.KindConflict, err, format, args...)
	default:
		return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
	}
}

// isUniqueViolation covers connections opened without TranslateError.
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "Duplicate entry")
}
