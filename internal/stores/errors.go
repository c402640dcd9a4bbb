package stores

import (
	"errors"

	"gorm.io/gorm"
)

// Domain error kinds surfaced by the store layer. Handlers translate these
// into HTTP statuses; nothing here is process-fatal.
var (
	ErrNotFound            = errors.New("record not found")
	ErrDuplicateMembership = errors.New("user is already a member of this project")
	ErrConstraint          = errors.New("required reference is missing")
)

// notFound maps gorm's sentinel onto the domain one so callers only ever
// match against stores errors.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
