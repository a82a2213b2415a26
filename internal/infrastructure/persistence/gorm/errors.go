package gorm

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/nutriplan/v1/internal/ports/outbound"
)

// TranslateError maps driver errors onto the outbound sentinels so callers
// never depend on which database backs the repository
func TranslateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return outbound.ErrNotFound
	case isDuplicate(err):
		return outbound.ErrDuplicate
	default:
		return err
	}
}

// isDuplicate recognises unique violations from sqlite and postgres
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "SQLSTATE 23505")
}
