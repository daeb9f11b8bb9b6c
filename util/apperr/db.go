package apperr

import (
	"webbooks/util/database"
)

// FromDB classifies a repository error for the object named what.
// Errors it does not recognise are returned unchanged.
func FromDB(err error, what string) error {
	if err == nil {
		return nil
	}
	if database.IsNoRows(err) {
		return Wrap(ErrNotFound, what+" not found", err)
	}
	if _, ok := database.ForeignKeyViolation(err); ok {
		return Wrap(ErrInvalid, what+" refers to an unknown object", err)
	}
	if c, ok := database.UniqueViolation(err); ok {
		return Wrap(ErrConflict, what+" already exists ("+c+")", err)
	}
	return err
}
